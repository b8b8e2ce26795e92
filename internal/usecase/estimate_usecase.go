package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FinancingPlan describes one provider financing plan offered at checkout.
type FinancingPlan struct {
	PlanNumber string
	Name       string
	Months     int
	AnnualRate decimal.Decimal // percent, e.g. 9.99
}

// PlanEstimate is the shopper-facing cost preview for one plan.
type PlanEstimate struct {
	PlanNumber     string
	MonthlyPayment decimal.Decimal
	LoanCost       decimal.Decimal
}

type EstimateUsecase interface {
	EstimatePlanPayment(amount decimal.Decimal, plan FinancingPlan) (*PlanEstimate, error)
	EstimateByPlanNumber(amount decimal.Decimal, planNumber string) (*PlanEstimate, error)
}

type DefaultEstimateUsecase struct {
	Plans []FinancingPlan
}

func NewDefaultEstimateUsecase(plans []FinancingPlan) *DefaultEstimateUsecase {
	return &DefaultEstimateUsecase{Plans: plans}
}

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// EstimatePlanPayment amortizes the amount over the plan term. The monthly
// payment is rounded up to the cent, so the provider never bills more than
// the quoted figure; the loan cost is the overpayment at that rounded rate.
func (uc *DefaultEstimateUsecase) EstimatePlanPayment(amount decimal.Decimal, plan FinancingPlan) (*PlanEstimate, error) {
	if plan.Months <= 0 {
		return nil, fmt.Errorf("plan %s: term must be positive", plan.PlanNumber)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	months := decimal.NewFromInt(int64(plan.Months))

	var monthly decimal.Decimal
	if plan.AnnualRate.IsZero() {
		monthly = ceilToCent(amount.Div(months))
	} else {
		// payment = P * r * (1+r)^n / ((1+r)^n - 1)
		monthlyRate := plan.AnnualRate.Div(twelve).Div(hundred)
		compound := one.Add(monthlyRate).Pow(months)
		monthly = ceilToCent(amount.Mul(monthlyRate).Mul(compound).Div(compound.Sub(one)))
	}

	loanCost := monthly.Mul(months).Sub(amount)
	if loanCost.Sign() < 0 {
		loanCost = decimal.Zero
	}

	return &PlanEstimate{
		PlanNumber:     plan.PlanNumber,
		MonthlyPayment: monthly,
		LoanCost:       loanCost,
	}, nil
}

func (uc *DefaultEstimateUsecase) EstimateByPlanNumber(amount decimal.Decimal, planNumber string) (*PlanEstimate, error) {
	for _, plan := range uc.Plans {
		if plan.PlanNumber == planNumber {
			return uc.EstimatePlanPayment(amount, plan)
		}
	}
	return nil, fmt.Errorf("unknown financing plan %q", planNumber)
}

func ceilToCent(d decimal.Decimal) decimal.Decimal {
	return d.Mul(hundred).Ceil().Div(hundred)
}
