package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PrequalStatus string

const (
	PrequalStatusApproved    PrequalStatus = "A"
	PrequalStatusDenied      PrequalStatus = "D"
	PrequalStatusSystemError PrequalStatus = "E"
)

// CustomerResponse records what the shopper eventually did with a
// pre-qualification offer.
type CustomerResponse string

const (
	CustomerResponseNone         CustomerResponse = ""
	CustomerResponseClosed       CustomerResponse = "CLOSE"
	CustomerResponseAccepted     CustomerResponse = "ACK"
	CustomerResponseRejected     CustomerResponse = "REJECT"
	CustomerResponseSDKPresented CustomerResponse = "SDK"
)

func ValidCustomerResponse(cr CustomerResponse) bool {
	switch cr {
	case CustomerResponseNone, CustomerResponseClosed, CustomerResponseAccepted,
		CustomerResponseRejected, CustomerResponseSDKPresented:
		return true
	}
	return false
}

// PreQualificationRequest is created at initiation. The merchant number is
// stored on the row before the provider call so a crash mid-call still
// records provenance.
type PreQualificationRequest struct {
	ID             string
	EntryPoint     string
	FirstName      string
	MiddleInitial  string
	LastName       string
	Address        Address
	MerchantNumber string
	CreatedAt      time.Time
}

// PreQualificationResponse is the provider's answer; one per request.
type PreQualificationResponse struct {
	ID               string
	RequestID        string
	Status           PrequalStatus
	CreditLimit      decimal.Decimal
	ResponseID       string
	ApplicationURL   string
	CustomerResponse CustomerResponse
	CustomerOrderID  string
	ReportedAt       *time.Time
	CreatedAt        time.Time
}

// PreQualificationSDKApplicationResult records the outcome of an application
// the shopper completed through the provider SDK after seeing the offer. At
// most one per response.
type PreQualificationSDKApplicationResult struct {
	ID                string
	PrequalResponseID string
	ApplicationID     string
	FirstName         string
	LastName          string
	ApplicationStatus ApplicationStatus
	CreatedAt         time.Time
}
