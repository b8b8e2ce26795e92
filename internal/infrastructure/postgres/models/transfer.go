package models

import (
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferModel struct {
	ID                     string `gorm:"primaryKey;type:uuid"`
	UserID                 string `gorm:"index:idx_transfer_user"`
	MerchantNumber         string
	MerchantReference      string `gorm:"index:idx_transfer_reference"`
	Last4AccountNumber     string
	EncryptedAccountNumber []byte          `gorm:"type:bytea"`
	Amount                 decimal.Decimal `gorm:"type:numeric(12,2)"`
	Type                   domain.TransactionType `gorm:"index:idx_transfer_reference"`
	TicketNumber           string
	PlanNumber             string
	AuthorizationNumber    string
	Status                 domain.TransferStatus `gorm:"index:idx_transfer_status"`
	Message                string
	Disclosure             string
	CreatedAt              time.Time `gorm:"index:idx_transfer_created_at"`
	UpdatedAt              time.Time
}
