package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApplicationStatus string

const (
	ApplicationStatusUnknown       ApplicationStatus = ""
	ApplicationStatusApproved      ApplicationStatus = "APPROVED"
	ApplicationStatusPending       ApplicationStatus = "PENDING"
	ApplicationStatusDenied        ApplicationStatus = "DENIED"
	ApplicationStatusFormatError   ApplicationStatus = "FORMAT_ERROR"
	ApplicationStatusProviderError ApplicationStatus = "PROVIDER_ERROR"
)

// ApplicationVariant replaces the region/joint mixin hierarchy of older
// integrations with a flat tagged variant.
type ApplicationVariant string

const (
	VariantUSIndividual ApplicationVariant = "US_INDIVIDUAL"
	VariantUSJoint      ApplicationVariant = "US_JOINT"
	VariantCAIndividual ApplicationVariant = "CA_INDIVIDUAL"
	VariantCAJoint      ApplicationVariant = "CA_JOINT"
)

func (v ApplicationVariant) HasJoint() bool {
	return v == VariantUSJoint || v == VariantCAJoint
}

type Address struct {
	ID       string
	Line1    string
	Line2    string
	City     string
	Region   string
	PostCode string
	Country  string
}

// Applicant is the persisted applicant record. The SSN is stored masked
// only; date of birth is validated on input but never persisted.
type Applicant struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	MaskedSSN     string
	AnnualIncome  decimal.Decimal
	Email         string
	HomePhone     string
	MobilePhone   string
	EmployerName  string
	EmployerPhone string
	Address       Address
}

// ApplicantInput carries the one-time submission fields, including the raw
// SSN and date of birth that exist only for the provider call.
type ApplicantInput struct {
	FirstName     string `validate:"required,max=30"`
	MiddleInitial string `validate:"max=1"`
	LastName      string `validate:"required,max=30"`
	SSN           string `validate:"required,len=9,numeric"`
	DateOfBirth   string `validate:"required,datetime=2006-01-02"`
	AnnualIncome  decimal.Decimal
	Email         string `validate:"omitempty,email"`
	HomePhone     string `validate:"required"`
	MobilePhone   string
	EmployerName  string
	EmployerPhone string
	Address       AddressInput `validate:"required"`
}

type AddressInput struct {
	Line1    string `validate:"required,max=40"`
	Line2    string `validate:"max=40"`
	City     string `validate:"required,max=30"`
	Region   string `validate:"required,max=2"`
	PostCode string `validate:"required,max=10"`
	Country  string `validate:"required,oneof=US CA"`
}

// CreditApplicationSubmission is the connector input for one application
// attempt.
type CreditApplicationSubmission struct {
	Variant              ApplicationVariant `validate:"required,oneof=US_INDIVIDUAL US_JOINT CA_INDIVIDUAL CA_JOINT"`
	TransactionCode      string             `validate:"required"`
	RequestedCreditLimit decimal.Decimal
	Language             string `validate:"omitempty,oneof=E F"`
	Salesperson          string
	MainApplicant        ApplicantInput  `validate:"required"`
	JointApplicant       *ApplicantInput `validate:"omitempty"`
	SubmittingUserID     string
	OwnerUserID          string
	SourceIP             string
}

// CreditApplication is one application attempt. Created regardless of the
// outcome; the status is set exactly once from the provider response and the
// record is immutable afterward.
type CreditApplication struct {
	ID                   string
	Variant              ApplicationVariant
	TransactionCode      string
	RequestedCreditLimit decimal.Decimal
	Language             string
	Salesperson          string
	MainApplicant        Applicant
	JointApplicant       *Applicant
	Status               ApplicationStatus
	SubmittingUserID     string
	OwnerUserID          string
	SourceIP             string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
