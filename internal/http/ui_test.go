package httpx

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/service"
)

func loginAs(role domainauth.Role, id int64) func(context.Context, model.LoginRequest) (*service.LoginResult, error) {
	return func(_ context.Context, req model.LoginRequest) (*service.LoginResult, error) {
		if req.Password != "correct-horse" {
			return nil, apperrors.Unauthorized("invalid email or password")
		}
		claims := testClaims(id, role)
		return &service.LoginResult{
			Identity: &domainauth.Identity{ID: id, Email: req.Email, Name: claims.Name, Role: role},
			Session:  domainauth.Session{Token: "issued-" + string(role), Claims: *claims},
		}, nil
	}
}

func TestUI_Home(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	rec := env.do(t, requestOpts{Path: "/"})
	require.Equal(t, http.StatusOK, rec.Code)
	assertContainsAll(t, rec.Body.String(),
		"<title>Welcome - Onboarding Portal</title>",
		`href="/auth/signup"`,
		`href="/static/css/app.css"`,
	)

	rec = env.do(t, requestOpts{Path: "/", Token: tokenEmployee})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))
}

func TestUI_SignInPageKeepsRedirect(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	rec := env.do(t, requestOpts{Path: "/auth/signin?redirect_uri=%2Fadmin%2Fdashboard"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="redirect_uri" value="/admin/dashboard"`)
	assert.Contains(t, body, `name="csrf_token" value="`+testCSRFToken+`"`)

	rec = env.do(t, requestOpts{Path: "/auth/signin?redirect_uri=https%3A%2F%2Fevil.example"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="redirect_uri" value=""`)
}

func TestUI_SignIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		role     domainauth.Role
		form     url.Values
		status   int
		location string
		contains []string
	}{
		{
			name:     "missing fields",
			role:     domainauth.RoleEmployee,
			form:     url.Values{"email": {""}, "password": {""}},
			status:   http.StatusBadRequest,
			contains: []string{"Email is required.", "Password is required.", errMsgFixBelow},
		},
		{
			name:     "wrong password",
			role:     domainauth.RoleEmployee,
			form:     url.Values{"email": {"eve@company.com"}, "password": {"nope"}},
			status:   http.StatusUnauthorized,
			contains: []string{"Invalid email or password.", `value="eve@company.com"`},
		},
		{
			name:     "employee lands on onboarding",
			role:     domainauth.RoleEmployee,
			form:     url.Values{"email": {"eve@company.com"}, "password": {"correct-horse"}},
			status:   http.StatusSeeOther,
			location: "/onboarding",
		},
		{
			name:     "pending lands on waiting page",
			role:     domainauth.RolePending,
			form:     url.Values{"email": {"new@company.com"}, "password": {"correct-horse"}},
			status:   http.StatusSeeOther,
			location: "/auth/pending-approval",
		},
		{
			name: "allowed redirect honoured",
			role: domainauth.RoleAdmin,
			form: url.Values{"email": {"admin@company.com"}, "password": {"correct-horse"},
				"redirect_uri": {"/manager/pending-approvals?x=1"}},
			status:   http.StatusSeeOther,
			location: "/manager/pending-approvals?x=1",
		},
		{
			name: "disallowed redirect replaced by landing page",
			role: domainauth.RoleManager,
			form: url.Values{"email": {"manager@company.com"}, "password": {"correct-horse"},
				"redirect_uri": {"/admin/dashboard"}},
			status:   http.StatusSeeOther,
			location: "/manager/pending-approvals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, true)
			env.auth.LoginFn = loginAs(tt.role, 20)

			rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/auth/signin", Form: tt.form})
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
				c := responseCookie(rec, DefaultSessionCookieName)
				require.NotNil(t, c)
				assert.Equal(t, "issued-"+string(tt.role), c.Value)
				return
			}
			assertContainsAll(t, rec.Body.String(), tt.contains...)
			assert.Nil(t, responseCookie(rec, DefaultSessionCookieName))
		})
	}
}

func TestUI_SignInRequiresCSRF(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	req := requestOpts{Method: http.MethodPost, Path: "/auth/signin"}
	rec := env.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUI_SignUp(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	var registered model.RegisterRequest
	env.auth.RegisterFn = func(_ context.Context, req model.RegisterRequest) (*domainauth.Identity, error) {
		if req.Email == "taken@company.com" {
			return nil, apperrors.ConflictField("email", "an account with this email already exists")
		}
		registered = req
		return &domainauth.Identity{ID: 30, Email: req.Email, Role: domainauth.RolePending}, nil
	}

	t.Run("mismatched passwords", func(t *testing.T) {
		rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/auth/signup", Form: url.Values{
			"name": {"Nia"}, "email": {"nia@company.com"}, "password": {"password1"}, "confirm_password": {"password2"},
		}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Passwords do not match.")
		assert.Contains(t, rec.Body.String(), `value="Nia"`)
	})

	t.Run("invalid email and short password", func(t *testing.T) {
		rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/auth/signup", Form: url.Values{
			"name": {"Nia"}, "email": {"nia"}, "password": {"short"}, "confirm_password": {"short"},
		}})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assertContainsAll(t, rec.Body.String(),
			"Enter a valid email address.",
			"Password must be at least 8 characters.",
		)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/auth/signup", Form: url.Values{
			"name": {"Nia"}, "email": {"taken@company.com"}, "password": {"password1"}, "confirm_password": {"password1"},
		}})
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "An account with this email already exists.")
	})

	t.Run("registered", func(t *testing.T) {
		rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/auth/signup", Form: url.Values{
			"name": {" Nia Lee "}, "email": {"nia@company.com"}, "password": {"password1"}, "confirm_password": {"password1"},
		}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth/signin?notice=registered", rec.Header().Get("Location"))
		assert.Equal(t, "Nia Lee", registered.Name)
	})

	t.Run("notice shown after redirect", func(t *testing.T) {
		rec := env.do(t, requestOpts{Path: "/auth/signin?notice=registered"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Registration received.")
	})
}

func TestUI_SignOut(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.auth.LogoutFn = func(context.Context, *domainauth.Claims) error { return assert.AnError }

	rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/auth/signout", Token: tokenEmployee, Form: url.Values{}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/signin?notice=signed-out", rec.Header().Get("Location"))
	c := responseCookie(rec, DefaultSessionCookieName)
	require.NotNil(t, c, "cookie is cleared even when revocation fails")
	assert.Equal(t, -1, c.MaxAge)
}

func TestUI_PendingApproval(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	rec := env.do(t, requestOpts{Path: "/auth/pending-approval", Token: tokenPending})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your account is awaiting approval")

	rec = env.do(t, requestOpts{Path: "/auth/pending-approval", Token: tokenEmployee})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))

	rec = env.do(t, requestOpts{Path: "/auth/pending-approval"})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), signInPath)
}

func quizOverview(latest *model.QuizResult) func(context.Context, *domainauth.Claims) (*model.OnboardingOverview, error) {
	return func(context.Context, *domainauth.Claims) (*model.OnboardingOverview, error) {
		return &model.OnboardingOverview{
			Modules: []model.Module{
				{ID: 1, Title: "Welcome to the Company", Order: 0, Content: model.ModuleContent{ReadingMaterial: "First paragraph.\n\nSecond paragraph."}},
				{ID: 2, Title: "Security Basics", Order: 1},
			},
			Questions: []model.QuestionView{
				{ID: 7, Prompt: "What is our core value?", Options: []string{"Speed", "Trust"}},
				{ID: 8, Prompt: "Who approves accounts?", Options: []string{"Managers", "Nobody"}},
			},
			CompletedModules: []int64{1},
			LatestResult:     latest,
			PassPercent:      70,
		}, nil
	}
}

func TestUI_OnboardingPage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.onboarding.OverviewFn = quizOverview(nil)

	rec := env.do(t, requestOpts{Path: "/onboarding?notice=module-completed", Token: tokenEmployee})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assertContainsAll(t, body,
		"1 of 2 modules complete",
		"50%",
		"Welcome to the Company",
		"<p>Second paragraph.</p>",
		`action="/onboarding/modules/2/complete"`,
		`name="q_7"`,
		"Module marked as complete.",
	)
	assert.NotContains(t, body, `action="/onboarding/modules/1/complete"`)
}

func TestUI_OnboardingPartial(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.onboarding.OverviewFn = quizOverview(nil)

	rec := env.do(t, requestOpts{Path: "/onboarding", Token: tokenEmployee, HTMX: true})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">My onboarding</h1>`)
	assert.NotContains(t, body, "<!DOCTYPE html>")
}

func TestUI_CompleteModule(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	var got int64
	env.onboarding.CompleteModuleFn = func(_ context.Context, _ *domainauth.Claims, id int64) (*model.Progress, error) {
		if id == 404 {
			return nil, apperrors.NotFound("module not found")
		}
		got = id
		return &model.Progress{ModuleID: id, Completed: true}, nil
	}

	rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/onboarding/modules/2/complete", Token: tokenEmployee, Form: url.Values{}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/onboarding?notice=module-completed#module-2", rec.Header().Get("Location"))
	assert.Equal(t, int64(2), got)

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/onboarding/modules/404/complete", Token: tokenEmployee, Form: url.Values{}})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Module not found.")
}

func TestUI_SubmitQuiz(t *testing.T) {
	t.Parallel()

	graded := func(passed bool) func(context.Context, *domainauth.Claims, model.QuizSubmission) (*service.SubmitResult, error) {
		return func(_ context.Context, _ *domainauth.Claims, sub model.QuizSubmission) (*service.SubmitResult, error) {
			score := 50
			if passed {
				score = 100
			}
			return &service.SubmitResult{
				Result:      &model.QuizResult{ID: 1, Score: score, Passed: passed, CompletedAt: time.Now()},
				Correct:     len(sub.Answers),
				Total:       2,
				PassPercent: 70,
			}, nil
		}
	}

	tests := []struct {
		name     string
		latest   *model.QuizResult
		submit   func(context.Context, *domainauth.Claims, model.QuizSubmission) (*service.SubmitResult, error)
		form     url.Values
		status   int
		location string
		contains []string
	}{
		{
			name:     "unanswered question",
			form:     url.Values{"q_7": {"Trust"}},
			status:   http.StatusBadRequest,
			contains: []string{"Choose an answer.", `value="Trust" checked`},
		},
		{
			name:     "passed",
			submit:   graded(true),
			form:     url.Values{"q_7": {"Trust"}, "q_8": {"Managers"}},
			status:   http.StatusSeeOther,
			location: "/onboarding/complete",
		},
		{
			name:     "failed",
			submit:   graded(false),
			form:     url.Values{"q_7": {"Speed"}, "q_8": {"Managers"}},
			status:   http.StatusSeeOther,
			location: "/onboarding?notice=quiz-failed#quiz",
		},
		{
			name:     "already passed",
			latest:   &model.QuizResult{Score: 100, Passed: true},
			form:     url.Values{"q_7": {"Trust"}, "q_8": {"Managers"}},
			status:   http.StatusSeeOther,
			location: "/onboarding/complete",
		},
		{
			name: "conflict from concurrent pass",
			submit: func(context.Context, *domainauth.Claims, model.QuizSubmission) (*service.SubmitResult, error) {
				return nil, apperrors.Conflict("quiz already passed")
			},
			form:     url.Values{"q_7": {"Trust"}, "q_8": {"Managers"}},
			status:   http.StatusSeeOther,
			location: "/onboarding/complete",
		},
		{
			name: "service failure",
			submit: func(context.Context, *domainauth.Claims, model.QuizSubmission) (*service.SubmitResult, error) {
				return nil, assert.AnError
			},
			form:     url.Values{"q_7": {"Trust"}, "q_8": {"Managers"}},
			status:   http.StatusInternalServerError,
			contains: []string{"An error occurred. Please try again."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, true)
			env.onboarding.OverviewFn = quizOverview(tt.latest)
			env.quiz.SubmitFn = tt.submit

			rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/onboarding/quiz", Token: tokenEmployee, Form: tt.form})
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
				return
			}
			assertContainsAll(t, rec.Body.String(), tt.contains...)
		})
	}
}

func TestUI_SubmitQuizWithoutQuestions(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/onboarding/quiz", Token: tokenEmployee, Form: url.Values{}})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "The quiz is not available yet.")
}

func TestUI_CompletePage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	rec := env.do(t, requestOpts{Path: "/onboarding/complete", Token: tokenEmployee})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))

	env.quiz.LatestFn = func(context.Context, *domainauth.Claims) (*model.QuizResult, error) {
		return &model.QuizResult{Score: 80, Passed: true, CompletedAt: time.Now()}, nil
	}
	rec = env.do(t, requestOpts{Path: "/onboarding/complete", Token: tokenEmployee})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "80%")
}

func TestUI_Approvals(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.users.ListPendingFn = func(context.Context, *domainauth.Claims) ([]*domainauth.Identity, error) {
		return []*domainauth.Identity{{ID: 12, Name: "Pat Pending", Email: "pat@company.com", Role: domainauth.RolePending}}, nil
	}
	var approvedBy int64
	env.users.ApproveFn = func(_ context.Context, actor *domainauth.Claims, id int64) (*domainauth.Identity, error) {
		approvedBy = actor.Subject
		return &domainauth.Identity{ID: id, Role: domainauth.RoleEmployee}, nil
	}

	rec := env.do(t, requestOpts{Path: "/manager/pending-approvals", Token: tokenManager})
	require.Equal(t, http.StatusOK, rec.Code)
	assertContainsAll(t, rec.Body.String(), "Pat Pending", "pat@company.com", "/manager/pending-approvals/12/approve")

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/manager/pending-approvals/12/approve", Token: tokenManager, Form: url.Values{}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/manager/pending-approvals?notice=approved", rec.Header().Get("Location"))
	assert.Equal(t, int64(3), approvedBy)

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/manager/pending-approvals/12/approve", Token: tokenAdmin, HTMX: true})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "/manager/pending-approvals?notice=approved", rec.Header().Get("Hx-Redirect"))
	assert.Contains(t, rec.Header().Get("Hx-Trigger"), "showToast")
}

func TestUI_AdminDashboard(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.modules.ListFn = func(context.Context, *domainauth.Claims) ([]*model.Module, error) {
		return []*model.Module{{ID: 1, Title: "Welcome", Order: 0}, {ID: 2, Title: "Security", Order: 4}}, nil
	}
	env.quiz.ScoresFn = func(context.Context, *domainauth.Claims, model.ScoresListOptions) ([]*model.ScoreEntry, error) {
		return []*model.ScoreEntry{
			{ResultID: 1, UserName: "Eve", UserEmail: "eve@company.com", Score: 80, Passed: true, CompletedAt: time.Now()},
			{ResultID: 2, UserName: "Bob", UserEmail: "bob@company.com", Score: 40, Passed: false, CompletedAt: time.Now()},
		}, nil
	}
	env.users.ListUsersFn = func(context.Context, *domainauth.Claims, model.UsersListOptions) ([]*domainauth.Identity, error) {
		return []*domainauth.Identity{
			{ID: 4, Name: "admin user", Email: "admin@company.com", Role: domainauth.RoleAdmin},
			{ID: 9, Name: "Eve", Email: "eve@company.com", Role: domainauth.RoleEmployee},
		}, nil
	}

	rec := env.do(t, requestOpts{Path: "/admin/dashboard", Token: tokenAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assertContainsAll(t, body,
		"Welcome",
		"eve@company.com",
		"1 / 2",
		`name="order" type="number" min="0" required value="5"`,
		"/admin/users/9/role",
	)
	assert.NotContains(t, body, "/admin/users/4/role")
}

func TestUI_AdminDashboardLoadFailure(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.questions.ListFn = func(context.Context, *domainauth.Claims) ([]*model.Question, error) {
		return nil, assert.AnError
	}

	rec := env.do(t, requestOpts{Path: "/admin/dashboard", Token: tokenAdmin})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestUI_AdminCreateModule(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	var created *model.ModuleRequest
	env.modules.CreateFn = func(_ context.Context, _ *domainauth.Claims, req *model.ModuleRequest) (*model.Module, error) {
		if err := req.Validate(); err != nil {
			return nil, err
		}
		created = req
		return &model.Module{ID: 3, Title: req.Title, Order: *req.Order}, nil
	}

	rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/modules", Token: tokenAdmin, Form: url.Values{
		"title": {""}, "order": {"-1"}, "video_url": {"ftp://files"},
	}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertContainsAll(t, rec.Body.String(),
		"Title is required.",
		"Order must be between 0 and 100000.",
		"Enter a valid http(s) URL.",
	)
	assert.Nil(t, created)

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/modules", Token: tokenAdmin, Form: url.Values{
		"title": {"Benefits"}, "order": {"2"}, "video_url": {"https://videos.example/benefits"},
		"reading_material": {"Line one\nLine two"},
	}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/admin/dashboard?notice=module-created#modules", rec.Header().Get("Location"))
	require.NotNil(t, created)
	assert.Equal(t, "Benefits", created.Title)
	assert.Equal(t, 2, *created.Order)
	assert.Equal(t, "https://videos.example/benefits", created.Content.VideoURL)
}

func TestUI_AdminCreateQuestion(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	var created *model.QuestionRequest
	env.questions.CreateFn = func(_ context.Context, _ *domainauth.Claims, req *model.QuestionRequest) (*model.Question, error) {
		created = req
		return &model.Question{ID: 5}, nil
	}

	rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/questions", Token: tokenAdmin, Form: url.Values{
		"prompt": {"Pick one"}, "options": {"Red\nBlue"}, "correct_answer": {"Green"},
	}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Correct answer must match one of the options exactly.")
	assert.Nil(t, created)

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/questions", Token: tokenAdmin, Form: url.Values{
		"prompt": {"Pick one"}, "options": {"Red\r\n Blue \n\n"}, "correct_answer": {"Blue"},
	}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, []string{"Red", "Blue"}, created.Options)
	assert.Equal(t, "Blue", created.CorrectAnswer)
}

func TestUI_AdminEditQuestion(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.questions.GetFn = func(_ context.Context, _ *domainauth.Claims, id int64) (*model.Question, error) {
		if id != 5 {
			return nil, apperrors.NotFound("question not found")
		}
		return &model.Question{ID: 5, Prompt: "Pick one", Options: []string{"Red", "Blue"}, CorrectAnswer: "Blue"}, nil
	}
	var updatedID int64
	var updated *model.QuestionRequest
	env.questions.UpdateFn = func(_ context.Context, _ *domainauth.Claims, id int64, req *model.QuestionRequest) (*model.Question, error) {
		updatedID, updated = id, req
		return &model.Question{ID: id}, nil
	}

	rec := env.do(t, requestOpts{Path: "/admin/questions/5/edit", Token: tokenAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	assertContainsAll(t, rec.Body.String(),
		"Edit question",
		`action="/admin/questions/5"`,
		`value="Pick one"`,
		"Save question",
	)

	rec = env.do(t, requestOpts{Path: "/admin/questions/99/edit", Token: tokenAdmin})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/questions/5", Token: tokenAdmin, Form: url.Values{
		"prompt": {"Pick one"}, "options": {"Red\nBlue"}, "correct_answer": {"Green"},
	}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assertContainsAll(t, rec.Body.String(),
		"Correct answer must match one of the options exactly.",
		`action="/admin/questions/5"`,
	)
	assert.Nil(t, updated)

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/questions/5", Token: tokenAdmin, Form: url.Values{
		"prompt": {"Pick a colour"}, "options": {"Red\nBlue\nGreen"}, "correct_answer": {"Green"},
	}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/admin/dashboard?notice=question-updated#questions", rec.Header().Get("Location"))
	assert.Equal(t, int64(5), updatedID)
	require.NotNil(t, updated)
	assert.Equal(t, "Pick a colour", updated.Prompt)
	assert.Equal(t, []string{"Red", "Blue", "Green"}, updated.Options)

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/questions/5", Token: tokenManager, Form: url.Values{}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUI_AdminDeletesAndRoles(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.users.SetRoleFn = func(_ context.Context, actor *domainauth.Claims, id int64, req model.SetRoleRequest) (*domainauth.Identity, error) {
		if id == actor.Subject {
			return nil, apperrors.Forbidden("you cannot change your own role")
		}
		return &domainauth.Identity{ID: id, Role: domainauth.Role(req.Role)}, nil
	}

	rec := env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/modules/3/delete", Token: tokenAdmin, Form: url.Values{}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard?notice=module-deleted#modules", rec.Header().Get("Location"))

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/questions/5/delete", Token: tokenAdmin, Form: url.Values{}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard?notice=question-deleted#questions", rec.Header().Get("Location"))

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/users/9/role", Token: tokenAdmin, Form: url.Values{"role": {"manager"}}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard?notice=role-updated#users", rec.Header().Get("Location"))

	rec = env.do(t, requestOpts{Method: http.MethodPost, Path: "/admin/users/4/role", Token: tokenAdmin, Form: url.Values{"role": {"employee"}}})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You cannot change your own role.")
}

func TestUI_ForbiddenAndNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	rec := env.do(t, requestOpts{Path: "/onboarding", Token: tokenManager})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your account does not have access to this page.")
	assert.Contains(t, rec.Body.String(), `href="/manager/pending-approvals"`)

	rec = env.do(t, requestOpts{Path: "/no-such-page"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assertContainsAll(t, rec.Body.String(), `class="error-code">404`, "no-such-page")

	rec = env.do(t, requestOpts{Method: http.MethodDelete, Path: "/auth/signin", HTMX: true})
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUI_NavFollowsRole(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	rec := env.do(t, requestOpts{Path: "/manager/pending-approvals", Token: tokenAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `href="/admin/dashboard"`)
	assert.Contains(t, body, `href="/manager/pending-approvals" class="active" aria-current="page"`)
	assert.Contains(t, body, "Administrator")
}
