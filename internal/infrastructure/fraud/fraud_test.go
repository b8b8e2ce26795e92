package fraud

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crestline/financing-service/internal/config"
	"github.com/crestline/financing-service/internal/domain"
	"github.com/shopspring/decimal"
)

func screenRequest() *domain.FraudScreenRequest {
	return &domain.FraudScreenRequest{
		OrderID:           "order-1",
		UserID:            "user-1",
		Amount:            decimal.RequireFromString("250.00"),
		MerchantReference: "ref-1",
	}
}

func TestAcceptAllStrategy(t *testing.T) {
	decision, err := NewAcceptAllStrategy().Screen(context.Background(), screenRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision != domain.FraudDecisionAccept {
		t.Fatalf("unexpected decision %s", decision)
	}
}

func TestScoreThresholdMapping(t *testing.T) {
	tests := []struct {
		score    float64
		expected domain.FraudDecision
	}{
		{10, domain.FraudDecisionAccept},
		{49.9, domain.FraudDecisionAccept},
		{50, domain.FraudDecisionReview},
		{99, domain.FraudDecisionReview},
		{100, domain.FraudDecisionReject},
		{500, domain.FraudDecisionReject},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("score %.1f", tc.score), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/score" {
					t.Fatalf("unexpected path %s", r.URL.Path)
				}
				fmt.Fprintf(w, `{"score": %f}`, tc.score)
			}))
			defer server.Close()

			strategy := NewScoreThresholdStrategy(server.URL, 50)
			decision, err := strategy.Screen(context.Background(), screenRequest())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision != tc.expected {
				t.Fatalf("score %.1f: expected %s, got %s", tc.score, tc.expected, decision)
			}
		})
	}
}

func TestScoreThresholdScorerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	strategy := NewScoreThresholdStrategy(server.URL, 50)
	if _, err := strategy.Screen(context.Background(), screenRequest()); err == nil {
		t.Fatal("expected an error from an unreachable scorer")
	}
}

func TestRegistry(t *testing.T) {
	if _, err := New(config.Fraud{Strategy: "accept_all"}); err != nil {
		t.Fatalf("accept_all must resolve: %v", err)
	}
	if _, err := New(config.Fraud{}); err != nil {
		t.Fatalf("empty strategy must default to accept_all: %v", err)
	}
	if _, err := New(config.Fraud{Strategy: "score_threshold", Host: "http://scorer", Threshold: 50}); err != nil {
		t.Fatalf("score_threshold must resolve: %v", err)
	}
	if _, err := New(config.Fraud{Strategy: "score_threshold"}); err == nil {
		t.Fatal("score_threshold without a host must fail")
	}
	if _, err := New(config.Fraud{Strategy: "nope"}); err == nil {
		t.Fatal("unknown strategy must fail")
	}
}
