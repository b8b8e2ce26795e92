package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

// Provider transaction type codes. Each code maps to exactly one gateway
// path, see the transaction connector.
const (
	TransactionAuthorization       TransactionType = "5"
	TransactionCancelAuthorization TransactionType = "CA"
	TransactionTimeoutAuthCharge   TransactionType = "9"
	TransactionReturnCredit        TransactionType = "4"
	TransactionVoidSale            TransactionType = "7"
	TransactionVoidReturn          TransactionType = "8"
)

type TransferStatus string

const (
	TransferStatusApproved      TransferStatus = "A1"
	TransferStatusPending       TransferStatus = "A2"
	TransferStatusDenied        TransferStatus = "D1"
	TransferStatusFormatError   TransferStatus = "E1"
	TransferStatusProviderError TransferStatus = "E9"
)

// Transfer is one attempted financial transaction against a financing
// account. Rows are append-only: the only mutation ever applied is a one-time
// purge of the encrypted account number.
type Transfer struct {
	ID                     string
	UserID                 string
	MerchantNumber         string
	MerchantReference      string
	Last4AccountNumber     string
	EncryptedAccountNumber []byte
	Amount                 decimal.Decimal
	Type                   TransactionType
	TicketNumber           string
	PlanNumber             string
	AuthorizationNumber    string
	Status                 TransferStatus
	Message                string
	Disclosure             string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// MaskedAccountNumber derives the display form from the last-4 field only,
// so it stays stable after the ciphertext is purged.
func (t *Transfer) MaskedAccountNumber() string {
	return MaskAccountNumber(t.Last4AccountNumber)
}

// TransactionRequest is the internal request a connector maps onto the
// provider wire format.
type TransactionRequest struct {
	UserID            string
	MerchantReference string
	AccountNumber     string
	PlanNumber        string
	Amount            decimal.Decimal
	TicketNumber      string
	Type              TransactionType
	Locale            string
}
