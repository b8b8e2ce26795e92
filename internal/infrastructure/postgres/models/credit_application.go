package models

import (
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/shopspring/decimal"
)

type AddressModel struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	Line1    string
	Line2    string
	City     string
	Region   string
	PostCode string
	Country  string
}

// ApplicantModel stores the masked SSN only. There is deliberately no date
// of birth column anywhere in the schema.
type ApplicantModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	ApplicationID string `gorm:"type:uuid;index:idx_applicant_application"`
	Role          string // main, joint
	FirstName     string
	MiddleInitial string
	LastName      string
	MaskedSSN     string
	AnnualIncome  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Email         string
	HomePhone     string
	MobilePhone   string
	EmployerName  string
	EmployerPhone string
	AddressID     string       `gorm:"type:uuid"`
	Address       AddressModel `gorm:"foreignKey:AddressID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
}

type CreditApplicationModel struct {
	ID                   string `gorm:"primaryKey;type:uuid"`
	Variant              domain.ApplicationVariant
	TransactionCode      string
	RequestedCreditLimit decimal.Decimal          `gorm:"type:numeric(12,2)"`
	Language             string
	Salesperson          string
	Status               domain.ApplicationStatus `gorm:"index:idx_application_status"`
	SubmittingUserID     string
	OwnerUserID          string `gorm:"index:idx_application_owner"`
	SourceIP             string
	Applicants           []ApplicantModel `gorm:"foreignKey:ApplicationID;references:ID"`
	CreatedAt            time.Time        `gorm:"index:idx_application_created_at"`
	UpdatedAt            time.Time
}
