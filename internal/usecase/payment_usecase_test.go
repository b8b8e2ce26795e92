package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/crestline/financing-service/internal/domain"
	paymentdto "github.com/crestline/financing-service/internal/usecase/dto/payment"
	"github.com/shopspring/decimal"
)

type submitCall struct {
	req     *domain.TransactionRequest
	persist bool
}

// scriptedSubmitter replays one outcome per authorization attempt and
// records every call, cancels included.
type scriptedSubmitter struct {
	calls    []submitCall
	outcomes []func(req *domain.TransactionRequest) (*domain.Transfer, error)
	authSeen int
}

func (s *scriptedSubmitter) Submit(ctx context.Context, req *domain.TransactionRequest, persist bool) (*domain.Transfer, error) {
	s.calls = append(s.calls, submitCall{req: req, persist: persist})
	if req.Type == domain.TransactionCancelAuthorization {
		return &domain.Transfer{Type: req.Type, Status: domain.TransferStatusApproved}, nil
	}
	outcome := s.outcomes[s.authSeen]
	s.authSeen++
	return outcome(req)
}

func (s *scriptedSubmitter) cancels() []submitCall {
	var out []submitCall
	for _, c := range s.calls {
		if c.req.Type == domain.TransactionCancelAuthorization {
			out = append(out, c)
		}
	}
	return out
}

type staticFraud struct {
	decision domain.FraudDecision
	err      error
	screens  int
}

func (f *staticFraud) Screen(ctx context.Context, req *domain.FraudScreenRequest) (domain.FraudDecision, error) {
	f.screens++
	return f.decision, f.err
}

type allocation struct {
	orderID   string
	amount    decimal.Decimal
	reference string
}

type fakeLedger struct {
	allocations []allocation
}

func (l *fakeLedger) Allocate(orderID string, amount decimal.Decimal, reference string) error {
	l.allocations = append(l.allocations, allocation{orderID: orderID, amount: amount, reference: reference})
	return nil
}

func approvedOutcome(amount string) func(req *domain.TransactionRequest) (*domain.Transfer, error) {
	return func(req *domain.TransactionRequest) (*domain.Transfer, error) {
		return &domain.Transfer{
			Type:              req.Type,
			MerchantReference: req.MerchantReference,
			Amount:            decimal.RequireFromString(amount),
			Status:            domain.TransferStatusApproved,
		}, nil
	}
}

func timeoutOutcome(req *domain.TransactionRequest) (*domain.Transfer, error) {
	return nil, &domain.TransportError{Err: errors.New("request timed out")}
}

func paymentInput() *paymentdto.AttemptPaymentInput {
	return &paymentdto.AttemptPaymentInput{
		OrderID:           "order-1",
		UserID:            "user-1",
		AccountNumber:     "9999999999999999",
		PlanNumber:        "1001",
		Amount:            decimal.RequireFromString("250.00"),
		MerchantReference: "ref-1",
	}
}

func TestAttemptPaymentFirstTry(t *testing.T) {
	submitter := &scriptedSubmitter{outcomes: []func(*domain.TransactionRequest) (*domain.Transfer, error){
		approvedOutcome("250.00"),
	}}
	ledger := &fakeLedger{}
	uc := NewDefaultPaymentUsecase(submitter, &staticFraud{decision: domain.FraudDecisionAccept}, ledger, nil, 2)

	out, err := uc.AttemptPayment(context.Background(), paymentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != paymentdto.PaymentComplete {
		t.Fatalf("unexpected state %s", out.State)
	}
	if out.Attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", out.Attempts)
	}
	if len(submitter.cancels()) != 0 {
		t.Fatalf("no cancel may be issued on a clean approval")
	}
	if len(ledger.allocations) != 1 || !ledger.allocations[0].amount.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("unexpected allocations %+v", ledger.allocations)
	}
}

func TestAttemptPaymentRetriesAfterTimeout(t *testing.T) {
	submitter := &scriptedSubmitter{outcomes: []func(*domain.TransactionRequest) (*domain.Transfer, error){
		timeoutOutcome,
		approvedOutcome("245.00"), // provider may settle a different amount on retry
	}}
	ledger := &fakeLedger{}
	uc := NewDefaultPaymentUsecase(submitter, &staticFraud{decision: domain.FraudDecisionAccept}, ledger, nil, 2)

	out, err := uc.AttemptPayment(context.Background(), paymentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != paymentdto.PaymentComplete {
		t.Fatalf("unexpected state %s", out.State)
	}
	if out.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", out.Attempts)
	}
	if !out.Amount.Equal(decimal.RequireFromString("245.00")) {
		t.Fatalf("completed amount must come from the approved attempt, got %s", out.Amount)
	}

	cancels := submitter.cancels()
	if len(cancels) != 1 {
		t.Fatalf("expected exactly one compensating cancel, got %d", len(cancels))
	}
	if cancels[0].persist {
		t.Fatal("compensating cancel must not be persisted as a first-class transfer")
	}
	if !ledger.allocations[0].amount.Equal(decimal.RequireFromString("245.00")) {
		t.Fatalf("ledger must be allocated the approved amount, got %s", ledger.allocations[0].amount)
	}
}

func TestAttemptPaymentExhaustsAttempts(t *testing.T) {
	submitter := &scriptedSubmitter{outcomes: []func(*domain.TransactionRequest) (*domain.Transfer, error){
		timeoutOutcome,
		timeoutOutcome,
	}}
	ledger := &fakeLedger{}
	uc := NewDefaultPaymentUsecase(submitter, &staticFraud{decision: domain.FraudDecisionAccept}, ledger, nil, 2)

	_, err := uc.AttemptPayment(context.Background(), paymentInput())

	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("exhaustion must surface the last transport error, got %v", err)
	}
	if len(submitter.cancels()) != 2 {
		t.Fatalf("each timeout gets a compensating cancel, got %d", len(submitter.cancels()))
	}
	if len(ledger.allocations) != 0 {
		t.Fatal("nothing may be allocated without an approval")
	}
}

func TestAttemptPaymentFraudReject(t *testing.T) {
	submitter := &scriptedSubmitter{}
	uc := NewDefaultPaymentUsecase(submitter, &staticFraud{decision: domain.FraudDecisionReject}, &fakeLedger{}, nil, 2)

	out, err := uc.AttemptPayment(context.Background(), paymentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != paymentdto.PaymentDeclined {
		t.Fatalf("unexpected state %s", out.State)
	}
	if len(submitter.calls) != 0 {
		t.Fatal("a fraud reject must not contact the provider")
	}
}

func TestAttemptPaymentFraudReviewProceeds(t *testing.T) {
	submitter := &scriptedSubmitter{outcomes: []func(*domain.TransactionRequest) (*domain.Transfer, error){
		approvedOutcome("250.00"),
	}}
	uc := NewDefaultPaymentUsecase(submitter, &staticFraud{decision: domain.FraudDecisionReview}, &fakeLedger{}, nil, 2)

	out, err := uc.AttemptPayment(context.Background(), paymentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != paymentdto.PaymentComplete {
		t.Fatalf("review must still proceed, got %s", out.State)
	}
}

func TestAttemptPaymentProviderDenial(t *testing.T) {
	submitter := &scriptedSubmitter{outcomes: []func(*domain.TransactionRequest) (*domain.Transfer, error){
		func(req *domain.TransactionRequest) (*domain.Transfer, error) {
			transfer := &domain.Transfer{Type: req.Type, Status: domain.TransferStatusDenied}
			return transfer, &domain.TransactionDeniedError{Status: domain.TransferStatusDenied, Message: "insufficient open to buy"}
		},
	}}
	ledger := &fakeLedger{}
	uc := NewDefaultPaymentUsecase(submitter, &staticFraud{decision: domain.FraudDecisionAccept}, ledger, nil, 3)

	out, err := uc.AttemptPayment(context.Background(), paymentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != paymentdto.PaymentDeclined {
		t.Fatalf("unexpected state %s", out.State)
	}
	if !strings.Contains(out.Message, "insufficient") {
		t.Fatalf("decline message lost: %q", out.Message)
	}
	if len(submitter.cancels()) != 0 {
		t.Fatal("a definitive denial is never retried or compensated")
	}
	if submitter.authSeen != 1 {
		t.Fatalf("a denial must not be retried, saw %d attempts", submitter.authSeen)
	}
	if len(ledger.allocations) != 0 {
		t.Fatal("nothing may be allocated on a denial")
	}
}

func TestAttemptPaymentValidationDeclines(t *testing.T) {
	submitter := &scriptedSubmitter{outcomes: []func(*domain.TransactionRequest) (*domain.Transfer, error){
		func(req *domain.TransactionRequest) (*domain.Transfer, error) {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "plan_number", Message: "unknown plan"},
			}}
		},
	}}
	uc := NewDefaultPaymentUsecase(submitter, &staticFraud{decision: domain.FraudDecisionAccept}, &fakeLedger{}, nil, 2)

	out, err := uc.AttemptPayment(context.Background(), paymentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.State != paymentdto.PaymentDeclined {
		t.Fatalf("unexpected state %s", out.State)
	}
	if submitter.authSeen != 1 {
		t.Fatalf("a validation rejection must not be retried, saw %d attempts", submitter.authSeen)
	}
}
