// Package settings models the mapping from Stripe concepts to QBO entities
// and assembles the effective mapping the settings screen edits.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Settings maps each Stripe concept to a QBO account, vendor or tax code ID.
// Wire keys are camelCase, matching the backend's settings document. Unset
// fields are empty strings.
type Settings struct {
	StripeClearingAccountID string `json:"stripeClearingAccountId" form:"stripe_clearing_account_id"`
	StripePayoutAccountID   string `json:"stripePayoutAccountId" form:"stripe_payout_account_id"`
	StripeVendorID          string `json:"stripeVendorId" form:"stripe_vendor_id"`
	StripeFeeAccountID      string `json:"stripeFeeAccountId" form:"stripe_fee_account_id"`
	DefaultIncomeAccountID  string `json:"defaultIncomeAccountId,omitempty" form:"default_income_account_id"`
	DefaultTaxCodeID        string `json:"defaultTaxCodeId" form:"default_tax_code_id"`
	ExemptTaxCodeID         string `json:"exemptTaxCodeId" form:"exempt_tax_code_id"`
}

// Merge overlays override onto base field by field. Empty override fields
// keep the base value, so a partially saved mapping falls back to defaults.
func Merge(base, override Settings) Settings {
	merged := base
	if override.StripeClearingAccountID != "" {
		merged.StripeClearingAccountID = override.StripeClearingAccountID
	}
	if override.StripePayoutAccountID != "" {
		merged.StripePayoutAccountID = override.StripePayoutAccountID
	}
	if override.StripeVendorID != "" {
		merged.StripeVendorID = override.StripeVendorID
	}
	if override.StripeFeeAccountID != "" {
		merged.StripeFeeAccountID = override.StripeFeeAccountID
	}
	if override.DefaultIncomeAccountID != "" {
		merged.DefaultIncomeAccountID = override.DefaultIncomeAccountID
	}
	if override.DefaultTaxCodeID != "" {
		merged.DefaultTaxCodeID = override.DefaultTaxCodeID
	}
	if override.ExemptTaxCodeID != "" {
		merged.ExemptTaxCodeID = override.ExemptTaxCodeID
	}
	return merged
}

// LoadFile reads a settings file written by SaveFile or by the original
// backend. A missing file means nothing was saved yet and returns nil.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return &s, nil
}

// SaveFile writes the settings as indented JSON.
func SaveFile(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}
