package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountInquiryResult is a snapshot of one successful (or partial) account
// lookup. Names and addresses are denormalized copies, not references: the
// provider's view of the account may differ from what was submitted on the
// application. Created once, never updated.
type AccountInquiryResult struct {
	ID                     string
	Last4AccountNumber     string
	EncryptedAccountNumber []byte
	MainApplicantFullName  string
	JointApplicantFullName string
	MainAddress            *Address
	JointAddress           *Address
	CreditLimit            decimal.Decimal
	AvailableCredit        decimal.Decimal
	CreditApplicationID    string
	PrequalResponseID      string
	CreatedAt              time.Time
}

func (r *AccountInquiryResult) MaskedAccountNumber() string {
	return MaskAccountNumber(r.Last4AccountNumber)
}

// AccountMetadata is the identity-match lookup input. At least 3 populated
// fields are required before the inquiry is transmitted.
type AccountMetadata struct {
	FirstName   string
	LastName    string
	DateOfBirth string // 2006-01-02
	SSNLast4    string
	PostCode    string
	Phone       string
}

// PopulatedFields counts the non-empty identity fields.
func (m *AccountMetadata) PopulatedFields() int {
	n := 0
	for _, v := range []string{m.FirstName, m.LastName, m.DateOfBirth, m.SSNLast4, m.PostCode, m.Phone} {
		if v != "" {
			n++
		}
	}
	return n
}
