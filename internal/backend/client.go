// Package backend is the HTTP client for the stripe2qbo API server.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"

	"github.com/stripe2qbo/console/internal/qbo"
	"github.com/stripe2qbo/console/internal/settings"
	"github.com/stripe2qbo/console/internal/stripe"
)

const defaultTimeout = 30 * time.Second

// Config locates the backend and carries its optional credential.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client talks to the backend's REST endpoints. Every method wraps failures
// with the operation name; non-2xx response bodies are captured into the
// returned error.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Compile-time check that Client covers the settings screen's needs.
var _ settings.API = (*Client)(nil)

// New creates a Client. A nil httpClient gets a default client with the
// configured timeout; tests pass one carrying a mock transport.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// builder starts a request to path with auth and error-body capture wired.
func (c *Client) builder(path string, errBody *bytes.Buffer) *requests.Builder {
	rb := requests.URL(c.cfg.BaseURL).
		Path(path).
		Client(c.httpClient).
		AddValidator(requests.ValidatorHandler(requests.DefaultValidator, requests.ToBytesBuffer(errBody)))
	if c.cfg.Token != "" {
		rb = rb.Header("Authorization", "Bearer "+c.cfg.Token)
	}
	return rb
}

// Transactions fetches the Stripe transactions in the given date range.
func (c *Client) Transactions(ctx context.Context, opts stripe.SyncOptions) ([]stripe.Transaction, error) {
	var (
		transactions []stripe.Transaction
		errBody      bytes.Buffer
	)
	err := c.builder("/stripe/transactions", &errBody).
		Param("from_date", opts.FromDate).
		Param("to_date", opts.ToDate).
		ToJSON(&transactions).
		Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching transactions: %w%s", err, bodySuffix(&errBody))
	}
	return transactions, nil
}

// Accounts fetches the QBO chart of accounts.
func (c *Client) Accounts(ctx context.Context) ([]qbo.Account, error) {
	var (
		accounts []qbo.Account
		errBody  bytes.Buffer
	)
	err := c.builder("/qbo/accounts", &errBody).
		ToJSON(&accounts).
		Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching accounts: %w%s", err, bodySuffix(&errBody))
	}
	return accounts, nil
}

// Vendors fetches the QBO vendors.
func (c *Client) Vendors(ctx context.Context) ([]qbo.Vendor, error) {
	var (
		vendors []qbo.Vendor
		errBody bytes.Buffer
	)
	err := c.builder("/qbo/vendors", &errBody).
		ToJSON(&vendors).
		Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching vendors: %w%s", err, bodySuffix(&errBody))
	}
	return vendors, nil
}

// TaxCodes fetches the QBO tax codes.
func (c *Client) TaxCodes(ctx context.Context) ([]qbo.TaxCode, error) {
	var (
		taxCodes []qbo.TaxCode
		errBody  bytes.Buffer
	)
	err := c.builder("/qbo/taxcodes", &errBody).
		ToJSON(&taxCodes).
		Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tax codes: %w%s", err, bodySuffix(&errBody))
	}
	return taxCodes, nil
}

// Settings fetches the saved settings. The backend returns JSON null when
// nothing was saved yet; that decodes to nil.
func (c *Client) Settings(ctx context.Context) (*settings.Settings, error) {
	var (
		saved   *settings.Settings
		errBody bytes.Buffer
	)
	err := c.builder("/settings", &errBody).
		ToJSON(&saved).
		Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w%s", err, bodySuffix(&errBody))
	}
	return saved, nil
}

// SaveSettings persists the full mapping. Only the response status is
// checked; the body is ignored.
func (c *Client) SaveSettings(ctx context.Context, s settings.Settings) error {
	var errBody bytes.Buffer
	err := c.builder("/settings", &errBody).
		Method(http.MethodPost).
		BodyJSON(s).
		Fetch(ctx)
	if err != nil {
		return fmt.Errorf("saving settings: %w%s", err, bodySuffix(&errBody))
	}
	return nil
}

// bodySuffix formats a captured error body for inclusion in a message.
func bodySuffix(b *bytes.Buffer) string {
	if b.Len() == 0 {
		return ""
	}
	return ": " + strings.TrimSpace(b.String())
}
