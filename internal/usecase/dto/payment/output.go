package paymentdto

import (
	"github.com/shopspring/decimal"

	"github.com/crestline/financing-service/internal/domain"
)

type PaymentState string

const (
	PaymentComplete PaymentState = "COMPLETE"
	PaymentDeclined PaymentState = "DECLINED"
)

type AttemptPaymentOutput struct {
	State    PaymentState
	Amount   decimal.Decimal
	Transfer *domain.Transfer
	Attempts int
	Message  string
}
