package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownTransactionType  = errors.New("unknown transaction type code")
	ErrNoMerchantCredentials   = errors.New("no merchant credentials configured")
	ErrTransferNotFound        = errors.New("transfer not found")
	ErrApplicationNotFound     = errors.New("credit application not found")
	ErrPrequalResponseNotFound = errors.New("pre-qualification response not found")
)

// TransportError wraps a network-level failure (timeout, connection error)
// on a gateway call. It is the only error class the payment orchestrator
// retries.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "gateway transport failure: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-400 error status from the gateway; it always fails
// fast.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gateway returned HTTP %d: %s", e.StatusCode, e.Body)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field-level errors of a rejected request,
// either parsed from an HTTP 400 body or produced by local input validation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// TransactionDeniedError carries the provider's definitive decline of a
// transaction. Never retried.
type TransactionDeniedError struct {
	Status  TransferStatus
	Message string
}

func (e *TransactionDeniedError) Error() string {
	return fmt.Sprintf("transaction denied (status %s): %s", e.Status, e.Message)
}

// CreditApplicationDeniedError carries the provider's decline of a credit
// application.
type CreditApplicationDeniedError struct {
	Status  ApplicationStatus
	Message string
}

func (e *CreditApplicationDeniedError) Error() string {
	return fmt.Sprintf("credit application denied (status %s): %s", e.Status, e.Message)
}

// CreditApplicationPendingError signals an application that will resolve
// out-of-band. It carries the partial inquiry snapshot so the caller can
// still display the data the provider did return.
type CreditApplicationPendingError struct {
	Application *CreditApplication
	Inquiry     *AccountInquiryResult
}

func (e *CreditApplicationPendingError) Error() string {
	return "credit application pending"
}
