package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type FraudDecision string

const (
	FraudDecisionAccept FraudDecision = "ACCEPT"
	FraudDecisionReview FraudDecision = "REVIEW"
	FraudDecisionReject FraudDecision = "REJECT"
)

type FraudScreenRequest struct {
	OrderID           string
	UserID            string
	Amount            decimal.Decimal
	MerchantReference string
	SourceIP          string
}

// FraudScreen is the external scoring collaborator. Anything other than
// accept or review blocks the checkout before the provider is contacted.
type FraudScreen interface {
	Screen(ctx context.Context, req *FraudScreenRequest) (FraudDecision, error)
}
