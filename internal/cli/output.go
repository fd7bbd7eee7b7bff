package cli

import (
	"fmt"
	"strings"

	"github.com/stripe2qbo/console/internal/importer"
	"github.com/stripe2qbo/console/internal/settings"
)

// PrintImportSummary prints the result of an import run.
func PrintImportSummary(result importer.Result) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Imported %d transaction(s)\n", result.TransactionCount)
	fmt.Printf("Gross: %s | Fees: %s\n", result.Gross.StringFixed(2), result.Fees.StringFixed(2))
	if result.RunID != 0 {
		fmt.Printf("Recorded as run #%d\n", result.RunID)
	}
}

// PrintSettings prints the effective settings with resolved entity names,
// noting whether they come from a saved record or derived defaults.
func PrintSettings(rd settings.ReferenceData) {
	source := "derived defaults"
	if rd.Saved != nil {
		source = "saved settings"
	}

	accounts := make(map[string]string, len(rd.Accounts))
	for _, a := range rd.Accounts {
		accounts[a.ID] = a.Name
	}
	vendors := make(map[string]string, len(rd.Vendors))
	for _, v := range rd.Vendors {
		vendors[v.ID] = v.DisplayName
	}
	taxCodes := make(map[string]string, len(rd.TaxCodes))
	for _, tc := range rd.TaxCodes {
		taxCodes[tc.ID] = tc.Name
	}

	s := rd.Effective()
	fmt.Printf("Source: %s\n\n", source)
	fmt.Printf("  Stripe clearing account: %s\n", labeled(s.StripeClearingAccountID, accounts))
	fmt.Printf("  Stripe payout account:   %s\n", labeled(s.StripePayoutAccountID, accounts))
	fmt.Printf("  Stripe vendor:           %s\n", labeled(s.StripeVendorID, vendors))
	fmt.Printf("  Stripe fee account:      %s\n", labeled(s.StripeFeeAccountID, accounts))
	fmt.Printf("  Default income account:  %s\n", labeled(s.DefaultIncomeAccountID, accounts))
	fmt.Printf("  Default tax code:        %s\n", labeled(s.DefaultTaxCodeID, taxCodes))
	fmt.Printf("  Exempt tax code:         %s\n", labeled(s.ExemptTaxCodeID, taxCodes))
}

// labeled formats "id (Name)" when the ID resolves in the loaded
// collections, the bare ID when it does not, and "(none)" when unset.
func labeled(id string, names map[string]string) string {
	if id == "" {
		return "(none)"
	}
	if name, ok := names[id]; ok {
		return fmt.Sprintf("%s (%s)", id, name)
	}
	return id
}
