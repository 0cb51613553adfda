package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// FormParser parses form data from an HTTP request and returns the parsed data
// along with any field-level validation errors.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormSubmitter hands a parsed form to a service on behalf of actor.
type FormSubmitter[T any] func(ctx context.Context, actor *domainauth.Claims, req T) error

// FormRenderer is a function that renders the form template with the given data.
type FormRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// FormHandlerOpts contains all options needed to handle a form submission.
type FormHandlerOpts[T any] struct {
	W          http.ResponseWriter
	R          *http.Request
	Parser     FormParser[T]
	Submit     FormSubmitter[T]
	Renderer   FormRenderer
	SuccessURL string
	PageMeta   PageMeta
	FormKey    string // default "FormData"
	ExtraData  map[string]any
}

// HandleForm runs a create or edit form: parse, submit as the signed-in actor, then
// 303 to SuccessURL. Parse and service errors re-render the page with the
// submitted values under FormKey.
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if opts.Parser == nil || opts.Submit == nil || opts.Renderer == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}

	data, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.renderFormError(nil, fieldErrors, data)
		return
	}

	if err := opts.Submit(opts.R.Context(), ClaimsFrom(opts.R.Context()), data); err != nil {
		if errors.Is(err, context.Canceled) {
			http.Error(opts.W, "request canceled", http.StatusRequestTimeout)
			return
		}
		loggerFrom(opts.R).Info("form submission rejected",
			"path", opts.R.URL.Path,
			"code", string(apperrors.GetCode(err)),
			"error", err,
		)
		opts.renderFormError(err, nil, data)
		return
	}

	seeOther(opts.W, opts.R, opts.SuccessURL)
}

// renderFormError renders the form with errors and preserves form data.
func (fh FormHandlerOpts[T]) renderFormError(err error, fieldErrors map[string]string, data T) {
	key := fh.FormKey
	if key == "" {
		key = "FormData"
	}

	extra := make(map[string]any, len(fh.ExtraData)+1)
	for k, v := range fh.ExtraData {
		extra[k] = v
	}
	extra[key] = data

	RenderError(ErrorOpts{
		W:           fh.W,
		R:           fh.R,
		Err:         err,
		FieldErrors: fieldErrors,
		Renderer:    ErrorRenderer(fh.Renderer),
		PageMeta:    fh.PageMeta,
		Data:        extra,
		ShowToast:   err != nil,
	})
}
