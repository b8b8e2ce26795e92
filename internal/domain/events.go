package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationApprovedEvent is broadcast when the provider approves a credit
// application, for interested external collaborators (welcome email,
// eligibility refresh).
type ApplicationApprovedEvent struct {
	ApplicationID      string          `json:"application_id"`
	OwnerUserID        string          `json:"owner_user_id"`
	Last4AccountNumber string          `json:"last4_account_number"`
	CreditLimit        decimal.Decimal `json:"credit_limit"`
	ApprovedAt         time.Time       `json:"approved_at"`
}

// EventPublisher replaces implicit signal dispatch with an explicit
// publisher port the connector calls directly.
type EventPublisher interface {
	PublishApplicationApproved(event ApplicationApprovedEvent) error
}
