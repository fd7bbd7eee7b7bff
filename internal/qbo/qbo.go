// Package qbo defines the QuickBooks Online reference entities served by the
// backend. JSON field names follow the QBO API's PascalCase convention.
package qbo

import "github.com/shopspring/decimal"

// Account types referenced when computing settings defaults.
const (
	AccountTypeBank    = "Bank"
	AccountTypeExpense = "Expense"
	AccountTypeIncome  = "Income"
)

// CurrencyRef is QBO's currency reference pair. The name is optional and
// often omitted by the API.
type CurrencyRef struct {
	Value string `json:"value"`
	Name  string `json:"name,omitempty"`
}

// Account is one chart-of-accounts entry.
type Account struct {
	ID             string          `json:"Id"`
	Name           string          `json:"Name"`
	AccountType    string          `json:"AccountType"`
	AccountSubType string          `json:"AccountSubType,omitempty"`
	CurrencyRef    CurrencyRef     `json:"CurrencyRef"`
	CurrentBalance decimal.Decimal `json:"CurrentBalance"`
}

// Vendor is a QBO vendor.
type Vendor struct {
	ID          string      `json:"Id"`
	DisplayName string      `json:"DisplayName"`
	CurrencyRef CurrencyRef `json:"CurrencyRef"`
}

// TaxCode is a QBO tax code.
type TaxCode struct {
	ID          string `json:"Id"`
	Name        string `json:"Name"`
	Description string `json:"Description,omitempty"`
}
