package paymentdto

import "github.com/shopspring/decimal"

type AttemptPaymentInput struct {
	OrderID           string
	UserID            string
	AccountNumber     string
	PlanNumber        string
	Amount            decimal.Decimal
	TicketNumber      string
	MerchantReference string
	Locale            string
	SourceIP          string
}
