package connectors

import (
	"context"
	"encoding/json"
	"time"

	"github.com/crestline/financing-service/internal/domain"
	"github.com/crestline/financing-service/internal/infrastructure/gateway"
)

type gatewayCall struct {
	method string
	path   string
	opts   gateway.RequestOptions
	body   any
}

type fakeGateway struct {
	calls   []gatewayCall
	handler func(call gatewayCall, out any) error
}

func (f *fakeGateway) Do(ctx context.Context, method, path string, opts gateway.RequestOptions, body, out any) error {
	call := gatewayCall{method: method, path: path, opts: opts, body: body}
	f.calls = append(f.calls, call)
	if f.handler == nil {
		return nil
	}
	return f.handler(call, out)
}

// respond fills the connector's out struct through a JSON round trip, the
// same way the real client decodes a body.
func respond(out any, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

type fakeTransferRepo struct {
	transfers []*domain.Transfer
}

func (f *fakeTransferRepo) Create(t *domain.Transfer) error {
	f.transfers = append(f.transfers, t)
	return nil
}

func (f *fakeTransferRepo) GetByMerchantReference(reference string, tt domain.TransactionType) (*domain.Transfer, error) {
	for i := len(f.transfers) - 1; i >= 0; i-- {
		if f.transfers[i].MerchantReference == reference && f.transfers[i].Type == tt {
			return f.transfers[i], nil
		}
	}
	return nil, domain.ErrTransferNotFound
}

func (f *fakeTransferRepo) PurgeAccountNumber(transferID string) error {
	for _, t := range f.transfers {
		if t.ID == transferID {
			t.EncryptedAccountNumber = nil
		}
	}
	return nil
}

type fakeApplicationRepo struct {
	applications []*domain.CreditApplication
}

func (f *fakeApplicationRepo) Create(app *domain.CreditApplication) error {
	f.applications = append(f.applications, app)
	return nil
}

func (f *fakeApplicationRepo) GetByID(id string) (*domain.CreditApplication, error) {
	for _, app := range f.applications {
		if app.ID == id {
			return app, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

// fakeInquiryRepo records operation order so tests can assert addresses are
// persisted before the results referencing them.
type fakeInquiryRepo struct {
	ops       []string
	addresses []*domain.Address
	results   []*domain.AccountInquiryResult
}

func (f *fakeInquiryRepo) CreateAddress(a *domain.Address) error {
	f.ops = append(f.ops, "address")
	f.addresses = append(f.addresses, a)
	return nil
}

func (f *fakeInquiryRepo) Create(r *domain.AccountInquiryResult) error {
	f.ops = append(f.ops, "result")
	f.results = append(f.results, r)
	return nil
}

type fakePrequalRepo struct {
	requests  []*domain.PreQualificationRequest
	responses []*domain.PreQualificationResponse
}

func (f *fakePrequalRepo) CreateRequest(r *domain.PreQualificationRequest) error {
	f.requests = append(f.requests, r)
	return nil
}

func (f *fakePrequalRepo) CreateResponse(r *domain.PreQualificationResponse) error {
	f.responses = append(f.responses, r)
	return nil
}

func (f *fakePrequalRepo) GetResponseByID(id string) (*domain.PreQualificationResponse, error) {
	for _, r := range f.responses {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, domain.ErrPrequalResponseNotFound
}

func (f *fakePrequalRepo) RecordCustomerResponse(id string, cr domain.CustomerResponse) error {
	return nil
}

func (f *fakePrequalRepo) LinkCustomerOrder(id, orderID string, reportedAt time.Time) error {
	return nil
}

func (f *fakePrequalRepo) CreateSDKResult(r *domain.PreQualificationSDKApplicationResult) error {
	return nil
}

type fakeCredentials struct {
	merchantNumber string
}

func (f *fakeCredentials) Select(kind domain.CredentialsKind, userID string) (*domain.MerchantCredentials, error) {
	return &domain.MerchantCredentials{
		ID:             "cred-1",
		Kind:           kind,
		MerchantNumber: f.merchantNumber,
	}, nil
}

// fakeEncryptor is a reversible stand-in so tests can assert what went into
// the ciphertext column without key material.
type fakeEncryptor struct{}

func (fakeEncryptor) Encrypt(plaintext string) ([]byte, error) {
	return []byte("enc:" + plaintext), nil
}

func (fakeEncryptor) Decrypt(ciphertext []byte) (string, bool) {
	s := string(ciphertext)
	if len(s) < 4 || s[:4] != "enc:" {
		return "", false
	}
	return s[4:], true
}

type fakePublisher struct {
	events []domain.ApplicationApprovedEvent
}

func (f *fakePublisher) PublishApplicationApproved(ev domain.ApplicationApprovedEvent) error {
	f.events = append(f.events, ev)
	return nil
}
