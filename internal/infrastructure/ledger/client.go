package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

// HTTPLedgerClient records approved payment amounts against the surrounding
// checkout's payment ledger service.
type HTTPLedgerClient struct {
	Address string
}

func NewHTTPLedgerClient(address string) *HTTPLedgerClient {
	return &HTTPLedgerClient{Address: address}
}

type allocateRequest struct {
	OrderID   string `json:"order_id"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPLedgerClient) Allocate(orderID string, amount decimal.Decimal, reference string) error {
	requestBodyBytes, err := json.Marshal(allocateRequest{
		OrderID:   orderID,
		Amount:    amount.StringFixed(2),
		Reference: reference,
	})
	if err != nil {
		return err
	}

	response, err := http.Post(fmt.Sprintf("%s/ledger/allocations", c.Address), "application/json", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var parsed errorResponse
	if err := json.Unmarshal(responseBodyBytes, &parsed); err != nil {
		return fmt.Errorf("ledger: HTTP %d", response.StatusCode)
	}
	return errors.New(parsed.Error)
}
