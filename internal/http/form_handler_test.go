package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

type noteForm struct{ Text string }

func parseNoteForm(r *http.Request) (noteForm, map[string]string) {
	f := noteForm{Text: strings.TrimSpace(r.PostFormValue("text"))}
	if f.Text == "" {
		return f, map[string]string{"text": "Text is required."}
	}
	return f, nil
}

func postNote(text string, claims *domainauth.Claims) *http.Request {
	form := url.Values{"text": {text}}
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req.WithContext(SetClaimsInContext(req.Context(), claims))
}

func TestHandleForm(t *testing.T) {
	t.Parallel()
	admin := testClaims(4, domainauth.RoleAdmin)

	tests := []struct {
		name       string
		text       string
		submitErr  error
		wantStatus int
		wantSubmit bool
		wantErrors map[string]string
	}{
		{name: "success redirects", text: "hello", wantStatus: http.StatusSeeOther, wantSubmit: true},
		{name: "parser errors skip submit", text: " ", wantStatus: http.StatusBadRequest, wantErrors: map[string]string{"text": "Text is required."}},
		{
			name:       "service field error",
			text:       "dup",
			submitErr:  apperrors.ConflictField("title", "a module with this title already exists"),
			wantStatus: http.StatusConflict,
			wantSubmit: true,
			wantErrors: map[string]string{"title": "A module with this title already exists."},
		},
		{name: "canceled", text: "slow", submitErr: context.Canceled, wantStatus: http.StatusRequestTimeout, wantSubmit: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var (
				submitted bool
				actor     *domainauth.Claims
				rendered  map[string]any
			)
			rec := httptest.NewRecorder()
			HandleForm(FormHandlerOpts[noteForm]{
				W: rec, R: postNote(tt.text, admin),
				Parser: parseNoteForm,
				Submit: func(_ context.Context, a *domainauth.Claims, _ noteForm) error {
					submitted, actor = true, a
					return tt.submitErr
				},
				Renderer: func(_ http.ResponseWriter, _ *http.Request, data map[string]any) {
					rendered = data
				},
				SuccessURL: "/notes?notice=created",
				FormKey:    "NoteForm",
			})

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSubmit, submitted)
			if submitted {
				assert.Same(t, admin, actor)
			}
			if tt.wantStatus == http.StatusSeeOther {
				assert.Equal(t, "/notes?notice=created", rec.Header().Get("Location"))
				return
			}
			if tt.wantErrors != nil {
				require.NotNil(t, rendered)
				assert.Equal(t, tt.wantErrors, rendered["Errors"])
				assert.IsType(t, noteForm{}, rendered["NoteForm"])
			}
		})
	}
}

func TestHandleForm_Misconfigured(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	HandleForm(FormHandlerOpts[noteForm]{W: rec, R: postNote("x", nil)})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
