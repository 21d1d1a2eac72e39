// Package templates renders the HTML bodies of notification emails.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

// Template names.
const (
	Welcome         = "welcome.html"
	ContractCreated = "contract_created.html"
	InvoiceReminder = "invoice_reminder.html"
)

//go:embed *.html
var files embed.FS

var parsed = template.Must(template.New("").Option("missingkey=error").ParseFS(files, "*.html"))

// Render executes the named template with data.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := parsed.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
