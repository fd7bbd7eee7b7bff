// Package views holds the embedded HTML templates and their helper funcs.
package views

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/app.css
var stylesheet []byte

// Stylesheet returns the embedded stylesheet bytes.
func Stylesheet() []byte {
	return stylesheet
}

// Templates parses the embedded templates with Funcs attached.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs()).ParseFS(templateFS, "templates/*.html"))
}

// Funcs returns the helpers available inside templates.
func Funcs() template.FuncMap {
	printer := message.NewPrinter(language.English)
	money := func(d decimal.Decimal) string {
		f, _ := d.Float64()
		return printer.Sprintf("%v", number.Decimal(f,
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	}
	return template.FuncMap{
		// amount renders a minor-unit amount as "1,234.56 USD".
		"amount": func(minor int64, currency string) string {
			return money(decimal.New(minor, -2)) + " " + strings.ToUpper(currency)
		},
		// decfmt renders a decimal with two fraction digits.
		"decfmt": money,
		// unixdate renders a unix timestamp as a UTC date.
		"unixdate": func(ts int64) string {
			return time.Unix(ts, 0).UTC().Format(time.DateOnly)
		},
		// datetime renders a timestamp down to the minute.
		"datetime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
	}
}
