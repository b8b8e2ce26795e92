package connectors

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/gateway"
	"github.com/crestline/financing-service/internal/infrastructure/metrics"
	"github.com/jaevor/go-nanoid"
)

const prequalPath = "/credit/prescreens"

type PrequalConnector struct {
	gateway     Gateway
	prequals    domain.PreQualificationRepository
	credentials domain.CredentialsSelector

	// Metrics is optional; a nil value disables instrumentation.
	Metrics *metrics.FinancingMetrics
}

func NewPrequalConnector(
	gw Gateway,
	prequals domain.PreQualificationRepository,
	credentials domain.CredentialsSelector) *PrequalConnector {

	return &PrequalConnector{
		gateway:     gw,
		prequals:    prequals,
		credentials: credentials,
	}
}

type prequalPayload struct {
	EntryPoint    string         `json:"entry_point"`
	FirstName     string         `json:"first_name"`
	MiddleInitial string         `json:"middle_initial,omitempty"`
	LastName      string         `json:"last_name"`
	Address       addressPayload `json:"address"`
}

type prequalResponsePayload struct {
	Status         string `json:"status"`
	CreditLimit    string `json:"credit_limit"`
	ResponseID     string `json:"response_id"`
	ApplicationURL string `json:"application_url"`
}

// Submit runs one soft-inquiry prescreen. The merchant number is written to
// the request row before the provider call, so a crash mid-call still
// records which identity was used. A missing status field in the response
// defaults to the system-error code.
func (c *PrequalConnector) Submit(ctx context.Context, userID string, req *domain.PreQualificationRequest) (*domain.PreQualificationResponse, error) {
	creds, err := c.credentials.Select(domain.CredentialsSDK, userID)
	if err != nil {
		return nil, err
	}

	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("prequal id generator: %w", err)
	}

	if req.ID == "" {
		req.ID = idGenerator()
	}
	req.MerchantNumber = creds.MerchantNumber
	req.CreatedAt = time.Now()
	if err := c.prequals.CreateRequest(req); err != nil {
		return nil, fmt.Errorf("record prequal request: %w", err)
	}

	payload := prequalPayload{
		EntryPoint:    req.EntryPoint,
		FirstName:     req.FirstName,
		MiddleInitial: req.MiddleInitial,
		LastName:      req.LastName,
		Address: addressPayload{
			Line1:    req.Address.Line1,
			Line2:    req.Address.Line2,
			City:     req.Address.City,
			Region:   req.Address.Region,
			PostCode: req.Address.PostCode,
			Country:  req.Address.Country,
		},
	}

	var out prequalResponsePayload
	if err := c.gateway.Do(ctx, http.MethodPost, prequalPath,
		gateway.RequestOptions{MerchantNumber: creds.MerchantNumber},
		payload, &out); err != nil {
		return nil, err
	}

	response := &domain.PreQualificationResponse{
		ID:             idGenerator(),
		RequestID:      req.ID,
		Status:         mapPrequalStatus(out.Status),
		CreditLimit:    parseDecimal(out.CreditLimit),
		ResponseID:     out.ResponseID,
		ApplicationURL: out.ApplicationURL,
		CreatedAt:      time.Now(),
	}
	if err := c.prequals.CreateResponse(response); err != nil {
		return nil, fmt.Errorf("record prequal response: %w", err)
	}
	if c.Metrics != nil {
		c.Metrics.RecordPrequal(string(response.Status))
	}
	return response, nil
}

func mapPrequalStatus(code string) domain.PrequalStatus {
	switch domain.PrequalStatus(code) {
	case domain.PrequalStatusApproved:
		return domain.PrequalStatusApproved
	case domain.PrequalStatusDenied:
		return domain.PrequalStatusDenied
	default:
		return domain.PrequalStatusSystemError
	}
}
