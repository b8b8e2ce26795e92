package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Encryptor tokenizes sensitive values at rest. Decrypt never fails: a
// malformed or foreign-key ciphertext yields ok=false so callers can fall
// back to the masked display form.
type Encryptor interface {
	Encrypt(plaintext string) ([]byte, error)
	Decrypt(ciphertext []byte) (plaintext string, ok bool)
}

// TokenCache is the shared store for encrypted short-lived bearer tokens.
type TokenCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type TransferRepository interface {
	Create(transfer *Transfer) error
	// GetByMerchantReference returns the most recent transfer for the
	// reference and type, tolerating duplicate attempts for one reference.
	GetByMerchantReference(reference string, transactionType TransactionType) (*Transfer, error)
	// PurgeAccountNumber nulls the ciphertext only; the last-4 field and the
	// derived masked form are untouched.
	PurgeAccountNumber(transferID string) error
}

type CreditApplicationRepository interface {
	Create(application *CreditApplication) error
	GetByID(applicationID string) (*CreditApplication, error)
}

type AccountInquiryRepository interface {
	// CreateAddress persists an address sub-record before the result that
	// references it, since addresses are independently referenced.
	CreateAddress(address *Address) error
	Create(result *AccountInquiryResult) error
}

type PreQualificationRepository interface {
	CreateRequest(request *PreQualificationRequest) error
	CreateResponse(response *PreQualificationResponse) error
	GetResponseByID(responseID string) (*PreQualificationResponse, error)
	RecordCustomerResponse(responseID string, customerResponse CustomerResponse) error
	LinkCustomerOrder(responseID, orderID string, reportedAt time.Time) error
	CreateSDKResult(result *PreQualificationSDKApplicationResult) error
}

type MerchantCredentialsRepository interface {
	// ListByKind returns credentials ordered by descending priority.
	ListByKind(kind CredentialsKind) ([]*MerchantCredentials, error)
}

// CredentialsSelector resolves which merchant identity an acting user's
// calls go out under.
type CredentialsSelector interface {
	Select(kind CredentialsKind, userID string) (*MerchantCredentials, error)
}

// UserGroupResolver is the external auth collaborator mapping a user to its
// group memberships.
type UserGroupResolver interface {
	Groups(userID string) ([]string, error)
}

// TransactionSubmitter is the transaction connector seen from the payment
// orchestrator. persist=false is used for speculative compensating calls
// that must not be recorded as first-class transfers.
type TransactionSubmitter interface {
	Submit(ctx context.Context, req *TransactionRequest, persist bool) (*Transfer, error)
}

// PaymentLedger allocates an authorized amount against the order's payment
// source and records the payment event. Owned by the surrounding checkout.
type PaymentLedger interface {
	Allocate(orderID string, amount decimal.Decimal, reference string) error
}
