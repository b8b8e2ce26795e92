package fraud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/crestline/financing-service/internal/domain"
)

// AcceptAllStrategy waives screening. Used in environments without a scoring
// collaborator; every checkout passes straight to the provider.
type AcceptAllStrategy struct{}

func NewAcceptAllStrategy() *AcceptAllStrategy {
	return &AcceptAllStrategy{}
}

func (s *AcceptAllStrategy) Name() string {
	return "accept_all"
}

func (s *AcceptAllStrategy) Screen(ctx context.Context, req *domain.FraudScreenRequest) (domain.FraudDecision, error) {
	return domain.FraudDecisionAccept, nil
}

// ScoreThresholdStrategy asks an external scorer over HTTP and maps the
// returned risk score against a configured threshold. Scores under the
// threshold are accepted; scores at or above it within twice the threshold
// go to review; anything beyond is rejected.
type ScoreThresholdStrategy struct {
	host       string
	threshold  float64
	httpClient *http.Client
}

func NewScoreThresholdStrategy(host string, threshold float64) *ScoreThresholdStrategy {
	return &ScoreThresholdStrategy{
		host:      host,
		threshold: threshold,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *ScoreThresholdStrategy) Name() string {
	return "score_threshold"
}

type scoreRequest struct {
	OrderID           string `json:"order_id"`
	UserID            string `json:"user_id"`
	Amount            string `json:"amount"`
	MerchantReference string `json:"merchant_reference"`
	SourceIP          string `json:"source_ip,omitempty"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

func (s *ScoreThresholdStrategy) Screen(ctx context.Context, req *domain.FraudScreenRequest) (domain.FraudDecision, error) {
	body, err := json.Marshal(scoreRequest{
		OrderID:           req.OrderID,
		UserID:            req.UserID,
		Amount:            req.Amount.StringFixed(2),
		MerchantReference: req.MerchantReference,
		SourceIP:          req.SourceIP,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.host+"/v1/score", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("fraud scorer unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fraud scorer returned HTTP %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode fraud score: %w", err)
	}

	switch {
	case out.Score < s.threshold:
		return domain.FraudDecisionAccept, nil
	case out.Score < 2*s.threshold:
		return domain.FraudDecisionReview, nil
	default:
		return domain.FraudDecisionReject, nil
	}
}
