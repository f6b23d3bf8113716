// Package templates renders the reminder emails from embedded HTML and
// plain text sources. A template named "x" lives in x.html and x.txt.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var sources embed.FS

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(sources, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(sources, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Render returns both bodies of the named template. The text body is empty
// when only an HTML source exists.
func (r *Renderer) Render(name string, data any) (string, string, error) {
	if r.html.Lookup(name+".html") == nil {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}

	var html bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s.html: %w", name, err)
	}

	if r.text.Lookup(name+".txt") == nil {
		return html.String(), "", nil
	}
	var text bytes.Buffer
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("render %s.txt: %w", name, err)
	}
	return html.String(), text.String(), nil
}

// PeriodReminderData feeds period_reminder.
type PeriodReminderData struct {
	UserName           string `json:"user_name"`
	NextPeriodDate     string `json:"next_period_date"`
	DaysUntil          int    `json:"days_until"`
	ProbabilityPercent int    `json:"probability_percent"`
	DashboardURL       string `json:"dashboard_url"`
}

// FertileWindowReminderData feeds fertile_window_reminder.
type FertileWindowReminderData struct {
	UserName      string `json:"user_name"`
	WindowStart   string `json:"window_start"`
	WindowEnd     string `json:"window_end"`
	OvulationDate string `json:"ovulation_date"`
	CalendarURL   string `json:"calendar_url"`
}
