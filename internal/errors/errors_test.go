package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "module not found"},
			want: "module not found",
		},
		{
			name: "error with cause",
			err:  &AppError{Code: ErrCodeInternal, Message: "failed to process", Cause: errors.New("underlying error")},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrCodeValidation:   http.StatusBadRequest,
		ErrCodeUnauthorized: http.StatusUnauthorized,
		ErrCodeForbidden:    http.StatusForbidden,
		ErrCodeNotFound:     http.StatusNotFound,
		ErrCodeConflict:     http.StatusConflict,
		ErrCodeInternal:     http.StatusInternalServerError,
		ErrorCode("other"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := StatusFor(code); got != want {
			t.Errorf("StatusFor(%q) = %d, want %d", code, got, want)
		}
	}
	if got := Forbidden("no").HTTPStatus(); got != http.StatusForbidden {
		t.Errorf("HTTPStatus = %d", got)
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	sentinel := errors.New("module not found")
	err := Wrap(sentinel, ErrCodeNotFound, "module not found")

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should see the wrapped sentinel")
	}
	if !IsNotFound(err) {
		t.Error("expected not found code")
	}
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("Wrap(nil) must return nil")
	}
	if got := Wrap(sentinel, ErrCodeConflict, "taken").Error(); got != "taken: module not found" {
		t.Errorf("Wrap message = %q", got)
	}
}

func TestHelpers(t *testing.T) {
	err := ValidationField("email", "email is required")
	if !IsValidation(err) || GetField(err) != "email" {
		t.Errorf("unexpected validation error: %+v", err)
	}
	if !IsConflict(ConflictField("email", "taken")) {
		t.Error("expected conflict")
	}
	if GetCode(errors.New("plain")) != "" || GetField(errors.New("plain")) != "" {
		t.Error("plain errors carry no code or field")
	}
	if got := GetCode(Wrap(NotFound("inner"), ErrCodeInternal, "outer")); got != ErrCodeInternal {
		t.Errorf("outermost code should win, got %q", got)
	}
	if Unauthorized("x").Code != ErrCodeUnauthorized || Internal("x").Code != ErrCodeInternal || NotFound("x").Code != ErrCodeNotFound {
		t.Error("constructor codes")
	}
}
