package settings

import (
	"strings"

	"github.com/stripe2qbo/console/internal/qbo"
)

// Defaults computes a starting mapping from the loaded reference
// collections. Name matching is case-insensitive and "first" means response
// order. Empty collections produce the zero value.
func Defaults(accounts []qbo.Account, vendors []qbo.Vendor, taxCodes []qbo.TaxCode) Settings {
	return Settings{
		StripeClearingAccountID: accountByType(accounts, qbo.AccountTypeBank, "stripe"),
		StripePayoutAccountID:   accountByType(accounts, qbo.AccountTypeBank, "checking"),
		StripeVendorID:          vendorNamed(vendors, "stripe"),
		StripeFeeAccountID:      accountByType(accounts, qbo.AccountTypeExpense, "stripe"),
		DefaultIncomeAccountID:  accountByType(accounts, qbo.AccountTypeIncome, ""),
		DefaultTaxCodeID:        taxCodeNamed(taxCodes, "TAX"),
		ExemptTaxCodeID:         taxCodeNamed(taxCodes, "NON"),
	}
}

// accountByType returns the ID of the first account of the given type whose
// name contains nameHint, falling back to the first account of that type.
func accountByType(accounts []qbo.Account, accountType, nameHint string) string {
	fallback := ""
	for _, a := range accounts {
		if !strings.EqualFold(a.AccountType, accountType) {
			continue
		}
		if fallback == "" {
			fallback = a.ID
		}
		if nameHint != "" && strings.Contains(strings.ToLower(a.Name), nameHint) {
			return a.ID
		}
	}
	return fallback
}

// vendorNamed returns the ID of the vendor displayed as name, falling back
// to the first vendor.
func vendorNamed(vendors []qbo.Vendor, name string) string {
	for _, v := range vendors {
		if strings.EqualFold(v.DisplayName, name) {
			return v.ID
		}
	}
	if len(vendors) > 0 {
		return vendors[0].ID
	}
	return ""
}

// taxCodeNamed returns the ID of the tax code with the given name, falling
// back to the first tax code.
func taxCodeNamed(taxCodes []qbo.TaxCode, name string) string {
	for _, tc := range taxCodes {
		if strings.EqualFold(tc.Name, name) {
			return tc.ID
		}
	}
	if len(taxCodes) > 0 {
		return taxCodes[0].ID
	}
	return ""
}
