package connectors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/gateway"
	"github.com/google/uuid"
)

const accountDetailPath = "/credit/accounts/detail"

// Identity-match lookups need at least this many populated metadata fields.
const minMetadataFields = 3

type AccountConnector struct {
	gateway     Gateway
	inquiries   domain.AccountInquiryRepository
	credentials domain.CredentialsSelector
	encryptor   domain.Encryptor
}

func NewAccountConnector(
	gw Gateway,
	inquiries domain.AccountInquiryRepository,
	credentials domain.CredentialsSelector,
	encryptor domain.Encryptor) *AccountConnector {

	return &AccountConnector{
		gateway:     gw,
		inquiries:   inquiries,
		credentials: credentials,
		encryptor:   encryptor,
	}
}

// Empty fields are stripped from the wire body via omitempty.
type accountLookupPayload struct {
	PrequalResponseID string `json:"prequal_response_id,omitempty"`
	AccountNumber     string `json:"account_number,omitempty"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	DateOfBirth       string `json:"date_of_birth,omitempty"`
	SSNLast4          string `json:"ssn_last4,omitempty"`
	PostCode          string `json:"postal_code,omitempty"`
	Phone             string `json:"phone,omitempty"`
}

type accountApplicantDetail struct {
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Address   *addressPayload `json:"address"`
}

type accountDetailResponse struct {
	AccountNumber   string                  `json:"account_number"`
	CreditLimit     string                  `json:"credit_limit"`
	AvailableCredit string                  `json:"available_credit"`
	MainApplicant   accountApplicantDetail  `json:"main_applicant"`
	JointApplicant  *accountApplicantDetail `json:"joint_applicant"`
}

// LookupByPrequalID looks the account up through the unique
// pre-qualification response identifier.
func (c *AccountConnector) LookupByPrequalID(ctx context.Context, userID, prequalResponseID string) (*domain.AccountInquiryResult, error) {
	result, err := c.lookup(ctx, userID, accountLookupPayload{PrequalResponseID: prequalResponseID})
	if err != nil || result == nil {
		return result, err
	}
	result.PrequalResponseID = prequalResponseID
	if err := c.inquiries.Create(result); err != nil {
		return nil, fmt.Errorf("record inquiry: %w", err)
	}
	return result, nil
}

// LookupByMetadata matches on identity metadata; at least 3 populated fields
// are required before anything is transmitted.
func (c *AccountConnector) LookupByMetadata(ctx context.Context, userID string, meta *domain.AccountMetadata) (*domain.AccountInquiryResult, error) {
	if meta.PopulatedFields() < minMetadataFields {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "metadata", Message: fmt.Sprintf("at least %d identity fields required", minMetadataFields)},
		}}
	}
	result, err := c.lookup(ctx, userID, accountLookupPayload{
		FirstName:   meta.FirstName,
		LastName:    meta.LastName,
		DateOfBirth: formatDOBMMYY(meta.DateOfBirth),
		SSNLast4:    domain.DigitsOnly(meta.SSNLast4),
		PostCode:    meta.PostCode,
		Phone:       nationalSignificantDigits(meta.Phone),
	})
	if err != nil || result == nil {
		return result, err
	}
	if err := c.inquiries.Create(result); err != nil {
		return nil, fmt.Errorf("record inquiry: %w", err)
	}
	return result, nil
}

// LookupByAccountNumber looks the account up by its full number.
func (c *AccountConnector) LookupByAccountNumber(ctx context.Context, userID, accountNumber string) (*domain.AccountInquiryResult, error) {
	result, err := c.lookup(ctx, userID, accountLookupPayload{AccountNumber: domain.DigitsOnly(accountNumber)})
	if err != nil || result == nil {
		return result, err
	}
	if err := c.inquiries.Create(result); err != nil {
		return nil, fmt.Errorf("record inquiry: %w", err)
	}
	return result, nil
}

// lookup funnels all three modes into one request/response cycle. A
// response without an account number means the account is not ready yet:
// nil result, no error. Address sub-records are persisted before the result
// that references them.
func (c *AccountConnector) lookup(ctx context.Context, userID string, payload accountLookupPayload) (*domain.AccountInquiryResult, error) {
	creds, err := c.credentials.Select(domain.CredentialsAPI, userID)
	if err != nil {
		return nil, err
	}

	var out accountDetailResponse
	if err := c.gateway.Do(ctx, http.MethodPost, accountDetailPath,
		gateway.RequestOptions{MerchantNumber: creds.MerchantNumber},
		payload, &out); err != nil {
		return nil, err
	}

	if out.AccountNumber == "" {
		return nil, nil
	}

	encryptedAccount, err := c.encryptor.Encrypt(out.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("encrypt account number: %w", err)
	}

	result := &domain.AccountInquiryResult{
		ID:                     uuid.NewString(),
		Last4AccountNumber:     domain.Last4(out.AccountNumber),
		EncryptedAccountNumber: encryptedAccount,
		MainApplicantFullName:  out.MainApplicant.FirstName + " " + out.MainApplicant.LastName,
		CreditLimit:            parseDecimal(out.CreditLimit),
		AvailableCredit:        parseDecimal(out.AvailableCredit),
		CreatedAt:              time.Now(),
	}
	if out.MainApplicant.Address != nil {
		address, err := c.persistAddress(out.MainApplicant.Address)
		if err != nil {
			return nil, err
		}
		result.MainAddress = address
	}
	if out.JointApplicant != nil {
		result.JointApplicantFullName = out.JointApplicant.FirstName + " " + out.JointApplicant.LastName
		if out.JointApplicant.Address != nil {
			address, err := c.persistAddress(out.JointApplicant.Address)
			if err != nil {
				return nil, err
			}
			result.JointAddress = address
		}
	}
	return result, nil
}

func (c *AccountConnector) persistAddress(payload *addressPayload) (*domain.Address, error) {
	address := &domain.Address{
		ID:       uuid.NewString(),
		Line1:    payload.Line1,
		Line2:    payload.Line2,
		City:     payload.City,
		Region:   payload.Region,
		PostCode: payload.PostCode,
		Country:  payload.Country,
	}
	if err := c.inquiries.CreateAddress(address); err != nil {
		return nil, fmt.Errorf("record address: %w", err)
	}
	return address, nil
}
