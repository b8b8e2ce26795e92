package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountInquiryModel struct {
	ID                     string `gorm:"primaryKey;type:uuid"`
	Last4AccountNumber     string
	EncryptedAccountNumber []byte          `gorm:"type:bytea"`
	MainApplicantFullName  string
	JointApplicantFullName string
	MainAddressID          *string         `gorm:"type:uuid"`
	MainAddress            *AddressModel   `gorm:"foreignKey:MainAddressID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	JointAddressID         *string         `gorm:"type:uuid"`
	JointAddress           *AddressModel   `gorm:"foreignKey:JointAddressID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	CreditLimit            decimal.Decimal `gorm:"type:numeric(12,2)"`
	AvailableCredit        decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreditApplicationID    string          `gorm:"index:idx_inquiry_application"`
	PrequalResponseID      string          `gorm:"index:idx_inquiry_prequal"`
	CreatedAt              time.Time
}
