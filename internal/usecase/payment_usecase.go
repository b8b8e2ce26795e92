package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/metrics"
	paymentdto "github.com/crestline/financing-service/internal/usecase/dto/payment"
)

const defaultMaxAttempts = 2

type PaymentUsecase interface {
	AttemptPayment(ctx context.Context, input *paymentdto.AttemptPaymentInput) (*paymentdto.AttemptPaymentOutput, error)
}

// DefaultPaymentUsecase drives one checkout payment: fraud screen, bounded
// authorization attempts with a compensating cancel after every transport
// timeout, then ledger allocation on approval.
type DefaultPaymentUsecase struct {
	Submitter   domain.TransactionSubmitter
	Fraud       domain.FraudScreen
	Ledger      domain.PaymentLedger
	Metrics     *metrics.FinancingMetrics
	MaxAttempts int
}

func NewDefaultPaymentUsecase(
	submitter domain.TransactionSubmitter,
	fraud domain.FraudScreen,
	ledger domain.PaymentLedger,
	financingMetrics *metrics.FinancingMetrics,
	maxAttempts int) *DefaultPaymentUsecase {

	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &DefaultPaymentUsecase{
		Submitter:   submitter,
		Fraud:       fraud,
		Ledger:      ledger,
		Metrics:     financingMetrics,
		MaxAttempts: maxAttempts,
	}
}

// AttemptPayment returns Declined for business rejections (fraud, provider
// denial, bad input) and an error only for unresolved infrastructure
// failures, timeout exhaustion included.
func (uc *DefaultPaymentUsecase) AttemptPayment(ctx context.Context, input *paymentdto.AttemptPaymentInput) (*paymentdto.AttemptPaymentOutput, error) {
	decision, err := uc.Fraud.Screen(ctx, &domain.FraudScreenRequest{
		OrderID:           input.OrderID,
		UserID:            input.UserID,
		Amount:            input.Amount,
		MerchantReference: input.MerchantReference,
		SourceIP:          input.SourceIP,
	})
	if err != nil {
		return nil, fmt.Errorf("fraud screen: %w", err)
	}
	if decision != domain.FraudDecisionAccept && decision != domain.FraudDecisionReview {
		slog.Warn("payment blocked by fraud screen",
			"order_id", input.OrderID, "decision", string(decision))
		return &paymentdto.AttemptPaymentOutput{
			State:   paymentdto.PaymentDeclined,
			Amount:  input.Amount,
			Message: "blocked by fraud screening",
		}, nil
	}

	authRequest := &domain.TransactionRequest{
		UserID:            input.UserID,
		MerchantReference: input.MerchantReference,
		AccountNumber:     input.AccountNumber,
		PlanNumber:        input.PlanNumber,
		Amount:            input.Amount,
		TicketNumber:      input.TicketNumber,
		Type:              domain.TransactionAuthorization,
		Locale:            input.Locale,
	}
	cancelRequest := &domain.TransactionRequest{
		UserID:            input.UserID,
		MerchantReference: input.MerchantReference,
		AccountNumber:     input.AccountNumber,
		PlanNumber:        input.PlanNumber,
		Amount:            input.Amount,
		TicketNumber:      input.TicketNumber,
		Type:              domain.TransactionCancelAuthorization,
		Locale:            input.Locale,
	}

	var lastTransportErr error
	for attempt := 1; attempt <= uc.MaxAttempts; attempt++ {
		transfer, err := uc.Submitter.Submit(ctx, authRequest, true)
		if err == nil {
			uc.recordAttempt(attempt, "approved")
			if err := uc.Ledger.Allocate(input.OrderID, transfer.Amount, transfer.MerchantReference); err != nil {
				return nil, fmt.Errorf("allocate payment: %w", err)
			}
			return &paymentdto.AttemptPaymentOutput{
				State:    paymentdto.PaymentComplete,
				Amount:   transfer.Amount,
				Transfer: transfer,
				Attempts: attempt,
			}, nil
		}

		var transportErr *domain.TransportError
		if errors.As(err, &transportErr) {
			uc.recordAttempt(attempt, "timeout")
			lastTransportErr = err
			// The authorization may have landed despite the timeout;
			// speculatively cancel it before retrying. The cancel is not
			// recorded as a first-class transfer.
			uc.compensate(ctx, cancelRequest, input.OrderID)
			continue
		}

		var denied *domain.TransactionDeniedError
		if errors.As(err, &denied) {
			uc.recordAttempt(attempt, "denied")
			return &paymentdto.AttemptPaymentOutput{
				State:    paymentdto.PaymentDeclined,
				Amount:   input.Amount,
				Transfer: transfer,
				Attempts: attempt,
				Message:  denied.Message,
			}, nil
		}

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			uc.recordAttempt(attempt, "rejected")
			return &paymentdto.AttemptPaymentOutput{
				State:    paymentdto.PaymentDeclined,
				Amount:   input.Amount,
				Attempts: attempt,
				Message:  validationErr.Error(),
			}, nil
		}

		uc.recordAttempt(attempt, "error")
		return nil, err
	}

	return nil, fmt.Errorf("payment attempts exhausted after %d tries: %w", uc.MaxAttempts, lastTransportErr)
}

func (uc *DefaultPaymentUsecase) compensate(ctx context.Context, cancelRequest *domain.TransactionRequest, orderID string) {
	_, err := uc.Submitter.Submit(ctx, cancelRequest, false)
	outcome := "ok"
	if err != nil {
		outcome = "failed"
		slog.Warn("compensating cancel failed",
			"order_id", orderID, "error", err.Error())
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordCompensatingCancel(outcome)
	}
}

func (uc *DefaultPaymentUsecase) recordAttempt(attempt int, outcome string) {
	if uc.Metrics != nil {
		uc.Metrics.RecordPaymentAttempt(strconv.Itoa(attempt), outcome)
	}
}
