package connectors

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/shopspring/decimal"
)

func newTestAccountConnector(gw *fakeGateway) (*AccountConnector, *fakeInquiryRepo) {
	inquiries := &fakeInquiryRepo{}
	connector := NewAccountConnector(gw, inquiries, &fakeCredentials{merchantNumber: "900300"}, fakeEncryptor{})
	return connector, inquiries
}

func accountDetailHandler(t *testing.T, captured *accountLookupPayload) func(call gatewayCall, out any) error {
	return func(call gatewayCall, out any) error {
		raw, err := json.Marshal(call.body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		if err := json.Unmarshal(raw, captured); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		return respond(out, map[string]any{
			"account_number":   "9999999999999999",
			"credit_limit":     "7500.00",
			"available_credit": "6100.25",
			"main_applicant": map[string]any{
				"first_name": "Carol",
				"last_name":  "Shopper",
				"address": map[string]any{
					"address_line_1": "12 Main St",
					"city":           "Columbus",
					"region":         "OH",
					"postal_code":    "43004",
					"country":        "US",
				},
			},
		})
	}
}

func TestAccountLookupByMetadataRequiresThreeFields(t *testing.T) {
	gw := &fakeGateway{}
	connector, inquiries := newTestAccountConnector(gw)

	_, err := connector.LookupByMetadata(context.Background(), "user-1", &domain.AccountMetadata{
		FirstName: "Carol",
		LastName:  "Shopper",
	})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(gw.calls) != 0 {
		t.Fatalf("under-populated metadata must not reach the gateway")
	}
	if len(inquiries.results) != 0 {
		t.Fatalf("no inquiry may be recorded without a lookup")
	}
}

func TestAccountLookupByMetadataNormalizesPayload(t *testing.T) {
	var captured accountLookupPayload
	gw := &fakeGateway{handler: accountDetailHandler(t, &captured)}
	connector, _ := newTestAccountConnector(gw)

	result, err := connector.LookupByMetadata(context.Background(), "user-1", &domain.AccountMetadata{
		FirstName:   "Carol",
		LastName:    "Shopper",
		DateOfBirth: "1985-04-12",
		Phone:       "+1 (416) 555-0188",
		SSNLast4:    "9991",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}

	if captured.DateOfBirth != "0485" {
		t.Fatalf("date of birth must be sent as MMYY, got %q", captured.DateOfBirth)
	}
	if captured.Phone != "4165550188" {
		t.Fatalf("phone must be national significant digits, got %q", captured.Phone)
	}
	if captured.SSNLast4 != "9991" {
		t.Fatalf("unexpected ssn last4 %q", captured.SSNLast4)
	}
	if captured.AccountNumber != "" || captured.PrequalResponseID != "" {
		t.Fatalf("metadata lookup must not set other mode fields")
	}
}

func TestAccountLookupPendingAccount(t *testing.T) {
	gw := &fakeGateway{handler: func(call gatewayCall, out any) error {
		return respond(out, map[string]any{"account_number": ""})
	}}
	connector, inquiries := newTestAccountConnector(gw)

	result, err := connector.LookupByAccountNumber(context.Background(), "user-1", "9999 9999 9999 9999")
	if err != nil {
		t.Fatalf("pending account must not be an error, got %v", err)
	}
	if result != nil {
		t.Fatalf("pending account must return a nil result")
	}
	if len(inquiries.results) != 0 {
		t.Fatalf("pending account must not be recorded")
	}
}

func TestAccountLookupByPrequalID(t *testing.T) {
	var captured accountLookupPayload
	gw := &fakeGateway{handler: accountDetailHandler(t, &captured)}
	connector, inquiries := newTestAccountConnector(gw)

	result, err := connector.LookupByPrequalID(context.Background(), "user-1", "pq-resp-77")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.PrequalResponseID != "pq-resp-77" {
		t.Fatalf("unexpected wire payload %+v", captured)
	}
	if result.PrequalResponseID != "pq-resp-77" {
		t.Fatalf("result must carry the prequal response id")
	}
	if !result.AvailableCredit.Equal(decimal.RequireFromString("6100.25")) {
		t.Fatalf("unexpected available credit %s", result.AvailableCredit)
	}
	if result.MainApplicantFullName != "Carol Shopper" {
		t.Fatalf("unexpected applicant name %q", result.MainApplicantFullName)
	}
	if plain, ok := (fakeEncryptor{}).Decrypt(result.EncryptedAccountNumber); !ok || plain != "9999999999999999" {
		t.Fatalf("account number must be stored encrypted")
	}
	if len(inquiries.results) != 1 {
		t.Fatalf("expected 1 recorded inquiry, got %d", len(inquiries.results))
	}
}

func TestAccountLookupPersistsJointApplicantAddress(t *testing.T) {
	gw := &fakeGateway{handler: func(call gatewayCall, out any) error {
		return respond(out, map[string]any{
			"account_number": "9999999999999999",
			"credit_limit":   "7500.00",
			"main_applicant": map[string]any{
				"first_name": "Carol",
				"last_name":  "Shopper",
				"address": map[string]any{
					"address_line_1": "12 Main St",
					"city":           "Columbus",
					"region":         "OH",
					"postal_code":    "43004",
					"country":        "US",
				},
			},
			"joint_applicant": map[string]any{
				"first_name": "Dan",
				"last_name":  "Shopper",
				"address": map[string]any{
					"address_line_1": "88 Elm Ave",
					"city":           "Dayton",
					"region":         "OH",
					"postal_code":    "45402",
					"country":        "US",
				},
			},
		})
	}}
	connector, inquiries := newTestAccountConnector(gw)

	result, err := connector.LookupByAccountNumber(context.Background(), "user-1", "9999999999999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inquiries.addresses) != 2 {
		t.Fatalf("expected 2 persisted addresses (main+joint), got %d", len(inquiries.addresses))
	}
	if result.JointApplicantFullName != "Dan Shopper" {
		t.Fatalf("unexpected joint applicant name %q", result.JointApplicantFullName)
	}
	if result.JointAddress == nil || result.JointAddress.City != "Dayton" {
		t.Fatalf("result must reference the persisted joint address")
	}
	if result.MainAddress == nil || result.MainAddress.ID == result.JointAddress.ID {
		t.Fatalf("main and joint addresses must be distinct rows")
	}
	if inquiries.ops[len(inquiries.ops)-1] != "result" {
		t.Fatalf("addresses must be persisted before the result, got %v", inquiries.ops)
	}
}

func TestAccountLookupPersistsAddressBeforeResult(t *testing.T) {
	var captured accountLookupPayload
	gw := &fakeGateway{handler: accountDetailHandler(t, &captured)}
	connector, inquiries := newTestAccountConnector(gw)

	result, err := connector.LookupByAccountNumber(context.Background(), "user-1", "9999999999999999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inquiries.ops) != 2 || inquiries.ops[0] != "address" || inquiries.ops[1] != "result" {
		t.Fatalf("address must be persisted before the result, got %v", inquiries.ops)
	}
	if result.MainAddress == nil || result.MainAddress.City != "Columbus" {
		t.Fatalf("result must reference the persisted address")
	}
}
