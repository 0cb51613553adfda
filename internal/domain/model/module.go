//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const (
	maxModuleTitleLen = 200
	maxURLLen         = 2048
)

// ModuleContent is the structured body of a training module.
type ModuleContent struct {
	VideoURL        string `json:"videoUrl,omitempty"`
	ReadingMaterial string `json:"readingMaterial,omitempty"`
}

// Module is an onboarding training module. Order is unique across modules.
type Module struct {
	ID          int64         `json:"id"          db:"id"`
	Title       string        `json:"title"       db:"title"`
	Description string        `json:"description" db:"description"`
	Content     ModuleContent `json:"content"     db:"content"`
	Order       int           `json:"order"       db:"sort_order"`
	CreatedAt   time.Time     `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt"   db:"updated_at"`
}

// ModuleRequest carries the full mutable field set of a module.
// Create and update both use it; update replaces every field.
type ModuleRequest struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Content     ModuleContent `json:"content"`
	Order       *int          `json:"order"`
}

// Validate normalizes and validates the request.
func (r *ModuleRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Content.VideoURL = strings.TrimSpace(r.Content.VideoURL)

	if r.Title == "" {
		return apperrors.ValidationField("title", "title is required")
	}
	if utf8.RuneCountInString(r.Title) > maxModuleTitleLen {
		return apperrors.ValidationField("title", "title cannot exceed 200 characters")
	}
	if r.Order == nil {
		return apperrors.ValidationField("order", "order is required")
	}
	if *r.Order < 0 {
		return apperrors.ValidationField("order", "order must be >= 0")
	}
	if v := r.Content.VideoURL; v != "" {
		if len(v) > maxURLLen {
			return apperrors.ValidationField("content.videoUrl", "video URL is too long")
		}
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return apperrors.ValidationField("content.videoUrl", "video URL must be an absolute http(s) URL")
		}
	}
	return nil
}
