package handlers

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"github.com/stripe2qbo/console/internal/qbo"
	"github.com/stripe2qbo/console/internal/settings"
)

// SelectField is one labeled dropdown on the settings form.
type SelectField struct {
	Label    string
	Name     string
	Options  []SelectOption
	Selected string
	Optional bool
}

// SelectOption is one choice inside a SelectField.
type SelectOption struct {
	Value string
	Label string
}

// SettingsHandler serves the settings screen and saves posted settings.
type SettingsHandler struct {
	api        settings.API
	logger     *slog.Logger
	submitting atomic.Bool
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(api settings.API, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{api: api, logger: logger}
}

// IsSubmitting reports whether a save is currently in flight.
func (h *SettingsHandler) IsSubmitting() bool {
	return h.submitting.Load()
}

// Show loads reference data and saved settings from the backend and renders
// the form with saved values taking precedence over derived defaults.
func (h *SettingsHandler) Show(c *gin.Context) {
	rd, err := settings.LoadReferenceData(c.Request.Context(), h.api)
	if err != nil {
		h.logger.Error("loading settings reference data", "error", err)
		c.HTML(http.StatusBadGateway, "error.html", gin.H{
			"Active":  "settings",
			"Message": err.Error(),
		})
		return
	}

	c.HTML(http.StatusOK, "settings.html", gin.H{
		"Active":     "settings",
		"Saved":      c.Query("saved") != "",
		"Error":      c.Query("error"),
		"Submitting": h.IsSubmitting(),
		"Fields":     buildFields(rd),
	})
}

// Save posts the full settings form to the backend and redirects back.
func (h *SettingsHandler) Save(c *gin.Context) {
	var s settings.Settings
	if err := c.ShouldBind(&s); err != nil {
		redirectWithError(c, "/settings", "invalid form submission")
		return
	}

	h.submitting.Store(true)
	defer h.submitting.Store(false)

	if err := h.api.SaveSettings(c.Request.Context(), s); err != nil {
		h.logger.Error("saving settings", "error", err)
		redirectWithError(c, "/settings", err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, "/settings?saved=1")
}

// buildFields lays out the seven dropdowns in form order with the effective
// settings preselected.
func buildFields(rd settings.ReferenceData) []SelectField {
	effective := rd.Effective()
	accounts := accountOptions(rd.Accounts)
	vendors := vendorOptions(rd.Vendors)
	taxCodes := taxCodeOptions(rd.TaxCodes)

	return []SelectField{
		{Label: "Stripe Clearing Account", Name: "stripe_clearing_account_id", Options: accounts, Selected: effective.StripeClearingAccountID},
		{Label: "Stripe Payout Account", Name: "stripe_payout_account_id", Options: accounts, Selected: effective.StripePayoutAccountID},
		{Label: "Stripe Vendor", Name: "stripe_vendor_id", Options: vendors, Selected: effective.StripeVendorID},
		{Label: "Stripe Fee Account", Name: "stripe_fee_account_id", Options: accounts, Selected: effective.StripeFeeAccountID},
		{Label: "Default Income Account", Name: "default_income_account_id", Options: accounts, Selected: effective.DefaultIncomeAccountID, Optional: true},
		{Label: "Default Tax Code", Name: "default_tax_code_id", Options: taxCodes, Selected: effective.DefaultTaxCodeID},
		{Label: "Exempt Tax Code", Name: "exempt_tax_code_id", Options: taxCodes, Selected: effective.ExemptTaxCodeID},
	}
}

func accountOptions(accounts []qbo.Account) []SelectOption {
	opts := make([]SelectOption, 0, len(accounts))
	for _, a := range accounts {
		label := a.Name
		if a.CurrencyRef.Value != "" {
			label += " (" + a.CurrencyRef.Value + ")"
		}
		opts = append(opts, SelectOption{Value: a.ID, Label: label})
	}
	return opts
}

func vendorOptions(vendors []qbo.Vendor) []SelectOption {
	opts := make([]SelectOption, 0, len(vendors))
	for _, v := range vendors {
		opts = append(opts, SelectOption{Value: v.ID, Label: v.DisplayName})
	}
	return opts
}

func taxCodeOptions(taxCodes []qbo.TaxCode) []SelectOption {
	opts := make([]SelectOption, 0, len(taxCodes))
	for _, tc := range taxCodes {
		opts = append(opts, SelectOption{Value: tc.ID, Label: tc.Name})
	}
	return opts
}
