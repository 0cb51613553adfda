package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// ErrorRenderer is a function that renders a page template with the given data.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, data map[string]any)

// ErrorOpts contains all options needed to render an error response.
type ErrorOpts struct {
	W   http.ResponseWriter
	R   *http.Request
	Err error
	// FieldErrors contains field-level validation errors (field name → error message)
	FieldErrors map[string]string
	Renderer    ErrorRenderer
	PageMeta    PageMeta
	// Data contains additional template data, e.g. the submitted form values.
	Data map[string]any
	// StatusCode overrides the status derived from Err.
	StatusCode int
	// ShowToast triggers a toast notification with the error message.
	ShowToast bool
}

// formFieldNames maps service field names onto the names used by HTML forms.
var formFieldNames = map[string]string{
	"content.videoUrl":        "video_url",
	"content.readingMaterial": "reading_material",
	"correctAnswer":           "correct_answer",
	"question":                "prompt",
	"moduleId":                "module_id",
	"userId":                  "user_id",
}

// DetermineErrorStatus returns the response status for err. Errors that are
// not AppErrors are internal.
func DetermineErrorStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// RenderError re-renders a page with a general error and any field errors.
// HTMX requests always get 200 so the swap happens.
func RenderError(opts ErrorOpts) {
	if opts.Renderer == nil {
		http.Error(opts.W, "misconfigured error renderer", http.StatusInternalServerError)
		return
	}

	data := newPageData(opts.R, opts.PageMeta)

	fieldErrors, generalError := formErrorsFrom(opts.Err)
	for k, v := range opts.FieldErrors {
		if fieldErrors == nil {
			fieldErrors = make(map[string]string, len(opts.FieldErrors))
		}
		fieldErrors[k] = v
	}

	if len(fieldErrors) > 0 {
		data.fieldErrors(fieldErrors)
	}
	switch {
	case generalError != "":
		data.fail(generalError)
	case len(fieldErrors) > 0:
		data.fail(errMsgFixBelow)
	}

	for k, v := range opts.Data {
		data.set(k, v)
	}

	if opts.ShowToast && generalError != "" {
		triggerToast(opts.W, generalError, "error")
	}

	status := opts.StatusCode
	if status == 0 {
		status = DetermineErrorStatus(opts.Err)
		if opts.Err == nil && len(fieldErrors) > 0 {
			status = http.StatusBadRequest
		}
	}
	if status != http.StatusOK && !IsHTMX(opts.R) {
		opts.W.WriteHeader(status)
	}

	opts.Renderer(opts.W, opts.R, data)
}

// formErrorsFrom translates a service error into form field errors and a
// general message safe to show the user.
func formErrorsFrom(err error) (map[string]string, string) {
	if err == nil {
		return nil, ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return nil, "Request timed out. Please try again."
	}
	if errors.Is(err, context.Canceled) {
		return nil, "Request was canceled."
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code == apperrors.ErrCodeInternal {
		return nil, "An error occurred. Please try again."
	}

	msg := sentence(appErr.Message)
	if appErr.Field != "" && (appErr.Code == apperrors.ErrCodeValidation || appErr.Code == apperrors.ErrCodeConflict) {
		return map[string]string{formFieldName(appErr.Field): msg}, errMsgFixBelow
	}
	return nil, msg
}

func formFieldName(field string) string {
	if name, ok := formFieldNames[field]; ok {
		return name
	}
	return field
}

// sentence capitalizes msg and ends it with a period.
func sentence(msg string) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return msg
	}
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}
