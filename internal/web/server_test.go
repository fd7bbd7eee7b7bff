package web_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jarcoal/httpmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stripe2qbo/console/internal/backend"
	"github.com/stripe2qbo/console/internal/importer"
	"github.com/stripe2qbo/console/internal/storage"
	"github.com/stripe2qbo/console/internal/store"
	"github.com/stripe2qbo/console/internal/web"
	"github.com/stripe2qbo/console/internal/web/dto"
)

const backendURL = "http://backend.test"

type fixture struct {
	store     *store.Store
	repo      *storage.MockRepository
	transport *httpmock.MockTransport
}

func newTestServer(t *testing.T) (*web.Server, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	transport := httpmock.NewMockTransport()
	client := backend.New(backend.Config{BaseURL: backendURL}, &http.Client{Transport: transport})

	st := store.New()
	repo := storage.NewMockRepository()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	imp := importer.New(client, st, repo, logger)

	server := web.NewServer(web.Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:5173"},
		Environment:    "test",
		Version:        "test",
	}, web.Deps{
		Store:    st,
		Importer: imp,
		Backend:  client,
		History:  repo,
		Logger:   logger,
	})

	return server, &fixture{store: st, repo: repo, transport: transport}
}

func get(server *web.Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func postForm(server *web.Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

// registerReferenceData stubs the four reads the settings screen joins.
func registerReferenceData(transport *httpmock.MockTransport, savedBody string) {
	transport.RegisterResponder(http.MethodGet, backendURL+"/qbo/accounts",
		httpmock.NewStringResponder(http.StatusOK, `[
			{"Id":"1","Name":"Savings","AccountType":"Bank","CurrencyRef":{"value":"USD"}},
			{"Id":"2","Name":"Business Checking","AccountType":"Bank","CurrencyRef":{"value":"USD"}},
			{"Id":"3","Name":"Stripe Clearing","AccountType":"Bank","CurrencyRef":{"value":"USD"}},
			{"Id":"5","Name":"Stripe Fees","AccountType":"Expense","CurrencyRef":{"value":"USD"}},
			{"Id":"6","Name":"Sales","AccountType":"Income","CurrencyRef":{"value":"USD"}}
		]`))
	transport.RegisterResponder(http.MethodGet, backendURL+"/qbo/vendors",
		httpmock.NewStringResponder(http.StatusOK, `[
			{"Id":"10","DisplayName":"Acme Hosting","CurrencyRef":{"value":"USD"}},
			{"Id":"11","DisplayName":"Stripe","CurrencyRef":{"value":"USD"}}
		]`))
	transport.RegisterResponder(http.MethodGet, backendURL+"/qbo/taxcodes",
		httpmock.NewStringResponder(http.StatusOK, `[
			{"Id":"20","Name":"TAX"},
			{"Id":"21","Name":"NON"}
		]`))
	transport.RegisterResponder(http.MethodGet, backendURL+"/settings",
		httpmock.NewStringResponder(http.StatusOK, savedBody))
}

func TestServer_HealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec := get(server, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "ok", response.Status)
	assert.Equal(t, "test", response.Version)
}

func TestServer_RootRedirectsToImport(t *testing.T) {
	server, _ := newTestServer(t)

	rec := get(server, "/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/import", rec.Header().Get("Location"))
}

func TestServer_ImportScreen(t *testing.T) {
	importForm := url.Values{
		"from_date": {"2023-08-28"},
		"to_date":   {"2023-09-01"},
	}

	t.Run("renders the empty state", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := get(server, "/import")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Import transactions")
		assert.Contains(t, rec.Body.String(), "No transactions imported yet")
	})

	t.Run("runs an import and redirects with the count", func(t *testing.T) {
		server, fx := newTestServer(t)
		fx.transport.RegisterResponder(http.MethodGet, backendURL+"/stripe/transactions",
			httpmock.NewStringResponder(http.StatusOK, `[
				{"id":"txn_1","created":1693180800,"type":"charge","amount":123456,"fee":88,"currency":"usd","description":"Big invoice"},
				{"id":"txn_2","created":1693267200,"type":"charge","amount":5000,"fee":175,"currency":"usd"}
			]`))

		rec := postForm(server, "/import", importForm)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/import?imported=2", rec.Header().Get("Location"))
		assert.Equal(t, 2, fx.store.TransactionCount())
		assert.True(t, fx.repo.CompleteImportRunCalled)

		page := get(server, "/import?imported=2")
		assert.Contains(t, page.Body.String(), "Imported 2 transaction(s).")
		assert.Contains(t, page.Body.String(), "Big invoice")
		assert.Contains(t, page.Body.String(), "1,234.56 USD")
	})

	t.Run("rejects missing dates", func(t *testing.T) {
		server, fx := newTestServer(t)

		rec := postForm(server, "/import", url.Values{})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/import?error=")
		assert.Zero(t, fx.store.TransactionCount())
		assert.Empty(t, fx.transport.GetCallCountInfo(), "no backend call expected")
	})

	t.Run("rejects a reversed range", func(t *testing.T) {
		server, fx := newTestServer(t)

		rec := postForm(server, "/import", url.Values{
			"from_date": {"2023-09-01"},
			"to_date":   {"2023-08-28"},
		})

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/import?error=")
		assert.Empty(t, fx.transport.GetCallCountInfo())
	})

	t.Run("surfaces a backend failure as a banner", func(t *testing.T) {
		server, fx := newTestServer(t)
		fx.transport.RegisterResponder(http.MethodGet, backendURL+"/stripe/transactions",
			httpmock.NewStringResponder(http.StatusBadGateway, `{"detail":"Stripe unavailable"}`))

		rec := postForm(server, "/import", importForm)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		location := rec.Header().Get("Location")
		assert.Contains(t, location, "/import?error=")
		assert.False(t, fx.store.IsSyncing())
		assert.True(t, fx.repo.FailImportRunCalled)

		page := get(server, location)
		assert.Contains(t, page.Body.String(), "banner-error")
		assert.Contains(t, page.Body.String(), "Stripe unavailable")
	})
}

func TestServer_SettingsScreen(t *testing.T) {
	fullForm := url.Values{
		"stripe_clearing_account_id": {"3"},
		"stripe_payout_account_id":   {"2"},
		"stripe_vendor_id":           {"11"},
		"stripe_fee_account_id":      {"5"},
		"default_income_account_id":  {"6"},
		"default_tax_code_id":        {"20"},
		"exempt_tax_code_id":         {"21"},
	}

	t.Run("renders defaults derived from reference data", func(t *testing.T) {
		server, fx := newTestServer(t)
		registerReferenceData(fx.transport, `null`)

		rec := get(server, "/settings")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `name="stripe_clearing_account_id"`)
		assert.Contains(t, body, `name="exempt_tax_code_id"`)
		assert.Contains(t, body, `value="3" selected`, "clearing defaults to the stripe-named bank account")
		assert.Contains(t, body, `value="2" selected`, "payout defaults to the checking account")
		assert.Contains(t, body, `value="11" selected`, "vendor defaults to Stripe")
		assert.Contains(t, body, "Stripe Clearing (USD)")
		assert.Contains(t, body, `<option value="">(none)</option>`, "income account is optional")
	})

	t.Run("prefers saved settings over defaults", func(t *testing.T) {
		server, fx := newTestServer(t)
		registerReferenceData(fx.transport, `{"stripeClearingAccountId":"1"}`)

		rec := get(server, "/settings")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `value="1" selected`, "saved clearing account wins")
		assert.NotContains(t, body, `value="3" selected`)
		assert.Contains(t, body, `value="11" selected`, "unsaved fields keep their defaults")
	})

	t.Run("shows the error page when reference data fails", func(t *testing.T) {
		server, fx := newTestServer(t)
		registerReferenceData(fx.transport, `null`)
		fx.transport.RegisterResponder(http.MethodGet, backendURL+"/qbo/accounts",
			httpmock.NewStringResponder(http.StatusInternalServerError, `{"detail":"QBO token expired"}`))

		rec := get(server, "/settings")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Something went wrong")
		assert.Contains(t, rec.Body.String(), "accounts")
	})

	t.Run("saves the full mapping and redirects", func(t *testing.T) {
		server, fx := newTestServer(t)

		var gotBody map[string]any
		fx.transport.RegisterResponder(http.MethodPost, backendURL+"/settings",
			func(req *http.Request) (*http.Response, error) {
				body, _ := io.ReadAll(req.Body)
				if err := json.Unmarshal(body, &gotBody); err != nil {
					return nil, err
				}
				return httpmock.NewStringResponse(http.StatusOK, `{"status":"ok"}`), nil
			})

		rec := postForm(server, "/settings", fullForm)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/settings?saved=1", rec.Header().Get("Location"))

		require.NotNil(t, gotBody)
		assert.Equal(t, "3", gotBody["stripeClearingAccountId"])
		assert.Equal(t, "2", gotBody["stripePayoutAccountId"])
		assert.Equal(t, "11", gotBody["stripeVendorId"])
		assert.Equal(t, "5", gotBody["stripeFeeAccountId"])
		assert.Equal(t, "6", gotBody["defaultIncomeAccountId"])
		assert.Equal(t, "20", gotBody["defaultTaxCodeId"])
		assert.Equal(t, "21", gotBody["exemptTaxCodeId"])
	})

	t.Run("a failed save redirects with an error and resets submitting", func(t *testing.T) {
		server, fx := newTestServer(t)
		fx.transport.RegisterResponder(http.MethodPost, backendURL+"/settings",
			httpmock.NewStringResponder(http.StatusInternalServerError, `{"detail":"database locked"}`))

		rec := postForm(server, "/settings", fullForm)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Location"), "/settings?error=")

		status := get(server, "/api/status")
		var response dto.StatusResponse
		require.NoError(t, json.NewDecoder(status.Body).Decode(&response))
		assert.False(t, response.SettingsSubmitting, "submitting must reset even on failure")
	})
}

func TestServer_StatusEndpoint(t *testing.T) {
	t.Run("reports the idle state", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := get(server, "/api/status")

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.StatusResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.False(t, response.IsSyncing)
		assert.Empty(t, response.SyncStatus)
		assert.Zero(t, response.TransactionCount)
		assert.False(t, response.SettingsSubmitting)
	})

	t.Run("reflects the store", func(t *testing.T) {
		server, fx := newTestServer(t)
		fx.store.SetSyncing(true)
		fx.store.SetSyncStatus("Importing transactions...")

		rec := get(server, "/api/status")

		var response dto.StatusResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.True(t, response.IsSyncing)
		assert.Equal(t, "Importing transactions...", response.SyncStatus)
	})
}

func TestServer_RunsEndpoint(t *testing.T) {
	t.Run("lists recent runs newest first", func(t *testing.T) {
		server, fx := newTestServer(t)
		for i := 0; i < 2; i++ {
			runID, err := fx.repo.StartImportRun("2023-08-28", "2023-09-01")
			require.NoError(t, err)
			require.NoError(t, fx.repo.CompleteImportRun(runID, 3, decimal.RequireFromString("62.95"), decimal.RequireFromString("2.63")))
		}

		rec := get(server, "/api/runs")

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.ImportRunListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 2, response.Count)
		require.Len(t, response.Runs, 2)
		assert.Equal(t, int64(2), response.Runs[0].ID)
		assert.Equal(t, "62.95", response.Runs[0].Gross)
	})

	t.Run("rejects a bad limit", func(t *testing.T) {
		server, _ := newTestServer(t)

		rec := get(server, "/api/runs?limit=abc")

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var response dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, dto.ErrCodeBadRequest, response.Code)
	})
}

func TestServer_HistoryScreen(t *testing.T) {
	t.Run("renders recorded runs", func(t *testing.T) {
		server, fx := newTestServer(t)
		runID, err := fx.repo.StartImportRun("2023-08-28", "2023-09-01")
		require.NoError(t, err)
		require.NoError(t, fx.repo.CompleteImportRun(runID, 3, decimal.RequireFromString("62.95"), decimal.RequireFromString("2.63")))

		rec := get(server, "/history")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "2023-08-28 to 2023-09-01")
		assert.Contains(t, body, "62.95")
		assert.Contains(t, body, "completed")
	})

	t.Run("shows the error page when storage fails", func(t *testing.T) {
		server, fx := newTestServer(t)
		fx.repo.RecentImportRunsErr = errors.New("disk gone")

		rec := get(server, "/history")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "could not load import history")
	})
}

func TestServer_Static(t *testing.T) {
	server, _ := newTestServer(t)

	rec := get(server, "/static/app.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), ".banner")
}

func TestServer_CORSPreflight(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
