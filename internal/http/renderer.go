package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	corefuncs "github.com/target/onboarding-portal/internal/http/templates/core"
)

const htmlContentType = "text/html; charset=utf-8"

// view names the top-level template a response executes.
type view string

const (
	viewFull    view = "layout"
	viewContent view = "content"
	viewError   view = "error-layout"
)

var templatePatterns = []string{"*.tmpl", "pages/*.tmpl", "partials/*.tmpl"}

// TemplateRenderer executes the parsed page templates.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig configures NewTemplateRenderer. TemplateFS is required.
type TemplateRendererConfig struct {
	TemplateFS fs.FS
	Logger     *slog.Logger
}

// NewTemplateRenderer parses every template under cfg.TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("template renderer: nil TemplateFS")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	root := template.New("root")
	root.Funcs(corefuncs.Funcs(corefuncs.Deps{
		Template:           &root,
		ContentTemplateFor: ContentTemplateFor,
	}))
	if _, err := root.ParseFS(cfg.TemplateFS, templatePatterns...); err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{t: root, logger: logger}, nil
}

// Render executes v and copies the result to w. Nothing is written when
// execution fails. A zero status leaves the status line to the caller.
func (r *TemplateRenderer) Render(w http.ResponseWriter, v view, status int, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, string(v), data); err != nil {
		r.logger.Error("template execution failed",
			slog.String("template", string(v)),
			slog.Any("error", err),
		)
		return err
	}

	w.Header().Set("Content-Type", htmlContentType)
	if status > 0 {
		w.WriteHeader(status)
	}
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Warn("response write failed",
			slog.String("template", string(v)),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
