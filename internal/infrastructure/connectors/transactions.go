package connectors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/gateway"
	"github.com/crestline/financing-service/internal/infrastructure/metrics"
	"github.com/google/uuid"
)

// One gateway path per transaction type code. Anything outside this map is a
// programming error, not a business failure.
var transactionPaths = map[domain.TransactionType]string{
	domain.TransactionAuthorization:       "/credit/transactions/authorization",
	domain.TransactionCancelAuthorization: "/credit/transactions/cancel-authorization",
	domain.TransactionTimeoutAuthCharge:   "/credit/transactions/timeout-authorization-charge",
	domain.TransactionReturnCredit:        "/credit/transactions/return",
	domain.TransactionVoidSale:            "/credit/transactions/void-sale",
	domain.TransactionVoidReturn:          "/credit/transactions/void-return",
}

type TransactionConnector struct {
	gateway     Gateway
	transfers   domain.TransferRepository
	credentials domain.CredentialsSelector
	encryptor   domain.Encryptor

	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.FinancingMetrics
}

func NewTransactionConnector(
	gw Gateway,
	transfers domain.TransferRepository,
	credentials domain.CredentialsSelector,
	encryptor domain.Encryptor) *TransactionConnector {

	return &TransactionConnector{
		gateway:     gw,
		transfers:   transfers,
		credentials: credentials,
		encryptor:   encryptor,
	}
}

type transactionPayload struct {
	AccountNumber string `json:"account_number"`
	PlanNumber    string `json:"plan_number"`
	Amount        string `json:"amount"`
	TicketNumber  string `json:"ticket_number,omitempty"`
	Locale        string `json:"locale,omitempty"`
}

type transactionResponse struct {
	Status              string `json:"status"`
	AuthorizationNumber string `json:"authorization_number"`
	Amount              string `json:"amount"`
	Message             string `json:"message"`
	Disclosure          string `json:"disclosure"`
}

// Submit sends one transaction to the gateway and records the attempt. A
// Transfer row is persisted even on denial or failure; persist=false is for
// speculative compensating calls that must not appear as first-class
// transfers. A non-approved provider status comes back as a typed
// *domain.TransactionDeniedError.
func (c *TransactionConnector) Submit(ctx context.Context, req *domain.TransactionRequest, persist bool) (*domain.Transfer, error) {
	path, ok := transactionPaths[req.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTransactionType, req.Type)
	}

	creds, err := c.credentials.Select(domain.CredentialsAPI, req.UserID)
	if err != nil {
		return nil, err
	}

	reference := req.MerchantReference
	if reference == "" {
		reference = uuid.NewString()
	}

	encryptedAccount, err := c.encryptor.Encrypt(req.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("encrypt account number: %w", err)
	}

	transfer := &domain.Transfer{
		ID:                     uuid.NewString(),
		UserID:                 req.UserID,
		MerchantNumber:         creds.MerchantNumber,
		MerchantReference:      reference,
		Last4AccountNumber:     domain.Last4(req.AccountNumber),
		EncryptedAccountNumber: encryptedAccount,
		Amount:                 req.Amount,
		Type:                   req.Type,
		TicketNumber:           req.TicketNumber,
		PlanNumber:             req.PlanNumber,
		CreatedAt:              time.Now(),
	}

	payload := transactionPayload{
		AccountNumber: domain.DigitsOnly(req.AccountNumber),
		PlanNumber:    req.PlanNumber,
		Amount:        req.Amount.StringFixed(2),
		TicketNumber:  req.TicketNumber,
		Locale:        req.Locale,
	}

	var out transactionResponse
	callErr := c.gateway.Do(ctx, http.MethodPost, path,
		gateway.RequestOptions{ClientRequestID: reference, MerchantNumber: creds.MerchantNumber},
		payload, &out)
	if callErr != nil {
		transfer.Status = failureStatus(callErr)
		transfer.Message = callErr.Error()
		c.observeTransfer(transfer)
		if persist {
			if err := c.transfers.Create(transfer); err != nil {
				slog.Error("failed to record failed transfer", "reference", reference, "error", err.Error())
			}
		}
		return nil, callErr
	}

	transfer.Status = mapTransferStatus(out.Status)
	transfer.AuthorizationNumber = out.AuthorizationNumber
	transfer.Message = out.Message
	if transfer.Status == domain.TransferStatusProviderError && out.Status != string(domain.TransferStatusProviderError) {
		transfer.Message = fmt.Sprintf("unrecognized provider status %q: %s", out.Status, out.Message)
	}
	transfer.Disclosure = out.Disclosure
	if out.Amount != "" {
		transfer.Amount = parseDecimal(out.Amount)
	}
	c.observeTransfer(transfer)

	if persist {
		if err := c.transfers.Create(transfer); err != nil {
			return nil, fmt.Errorf("record transfer: %w", err)
		}
	}

	if transfer.Status != domain.TransferStatusApproved {
		return transfer, &domain.TransactionDeniedError{Status: transfer.Status, Message: transfer.Message}
	}
	return transfer, nil
}

// mapTransferStatus clamps the provider's status code to the fixed
// enumeration; anything unrecognized persists as a provider error with the
// raw code kept in the message.
func mapTransferStatus(code string) domain.TransferStatus {
	switch status := domain.TransferStatus(code); status {
	case domain.TransferStatusApproved, domain.TransferStatusPending,
		domain.TransferStatusDenied, domain.TransferStatusFormatError,
		domain.TransferStatusProviderError:
		return status
	}
	return domain.TransferStatusProviderError
}

func (c *TransactionConnector) observeTransfer(transfer *domain.Transfer) {
	if c.Metrics != nil {
		c.Metrics.RecordTransfer(string(transfer.Type), string(transfer.Status), transfer.Amount.InexactFloat64())
	}
}

func failureStatus(err error) domain.TransferStatus {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return domain.TransferStatusFormatError
	}
	return domain.TransferStatusProviderError
}
