// Package core provides the template helper functions shared by every page.
package core

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/target/onboarding-portal/internal/http/uiutil"
)

const defaultStaticPrefix = "/static/"

// Deps carries what the helpers need from the renderer. Template points at
// the parsed set so renderSection can execute page bodies after parsing.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
	StaticPrefix       string
	Now                func() time.Time
}

// Funcs builds the FuncMap installed on the page templates.
func Funcs(deps Deps) template.FuncMap {
	if deps.StaticPrefix == "" {
		deps.StaticPrefix = defaultStaticPrefix
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return template.FuncMap{
		"add":           func(a, b int) int { return a + b },
		"asset":         deps.asset,
		"lines":         Lines,
		"renderSection": deps.renderSection,
		"scoreClass":    ScoreClass,
		"timeTag":       deps.timeTag,
		"truncateText":  TruncateText,
	}
}

func (d Deps) asset(name string) string {
	return d.StaticPrefix + strings.TrimPrefix(name, "/")
}

// renderSection executes the content template registered for page.
func (d Deps) renderSection(page string, data any) (template.HTML, error) {
	if d.Template == nil || *d.Template == nil {
		return "", errors.New("renderSection: templates not parsed")
	}
	var buf bytes.Buffer
	if err := (*d.Template).ExecuteTemplate(&buf, d.ContentTemplateFor(page), data); err != nil {
		return "", err
	}
	// #nosec G203 -- output of html/template, already escaped.
	return template.HTML(buf.String()), nil
}

// timeTag renders a <time> element: friendly text, RFC 3339 datetime and
// a relative title. Nil or zero times render nothing.
func (d Deps) timeTag(v any) template.HTML {
	var ts time.Time
	switch t := v.(type) {
	case time.Time:
		ts = t
	case *time.Time:
		if t != nil {
			ts = *t
		}
	}
	if ts.IsZero() {
		return ""
	}
	// #nosec G203 -- every interpolated value is escaped.
	return template.HTML(`<time datetime="` + ts.UTC().Format(time.RFC3339) +
		`" title="` + template.HTMLEscapeString(uiutil.Ago(ts, d.Now())) + `">` +
		template.HTMLEscapeString(uiutil.DateTime(ts)) + `</time>`)
}

// ScoreClass picks the badge style for a quiz result.
func ScoreClass(passed bool) string {
	if passed {
		return "badge-success"
	}
	return "badge-danger"
}

// Lines splits multi-line text into trimmed, non-empty paragraphs.
func Lines(s string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// TruncateText shortens s to maxLen runes. Templates pass untyped constants,
// so maxLen may be any integer or float; other types leave s unchanged.
func TruncateText(s string, maxLen any) string {
	var n int
	switch v := maxLen.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	default:
		return s
	}
	return uiutil.Truncate(s, n)
}
