// Package view holds the server-rendered printable receipt page.
package view

import (
	"embed"
	"html/template"
	"strings"

	"github.com/anviet/tuition-api/pkg/utils"
)

// ReceiptTemplate is the template name passed to gin's c.HTML.
const ReceiptTemplate = "receipt.html"

//go:embed *.html
var files embed.FS

// Funcs are the helpers available inside the receipt template.
var Funcs = template.FuncMap{
	"currency": utils.FormatCurrency,
	"percent":  utils.FormatPercent,
	"lines": func(s string) []string {
		return strings.Split(strings.TrimSpace(s), "\n")
	},
}

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(Funcs).ParseFS(files, "*.html"))
}
