package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/service"
)

const testCSRFToken = "test-csrf-token"

// fakeAuth resolves sessions from a fixed token table; the other methods are
// overridable per test.
type fakeAuth struct {
	sessions map[string]*domainauth.Claims

	RegisterFn        func(ctx context.Context, req model.RegisterRequest) (*domainauth.Identity, error)
	LoginFn           func(ctx context.Context, req model.LoginRequest) (*service.LoginResult, error)
	LogoutFn          func(ctx context.Context, claims *domainauth.Claims) error
	CurrentIdentityFn func(ctx context.Context, claims *domainauth.Claims) (*domainauth.Identity, error)
}

func (f *fakeAuth) Register(ctx context.Context, req model.RegisterRequest) (*domainauth.Identity, error) {
	if f.RegisterFn != nil {
		return f.RegisterFn(ctx, req)
	}
	return &domainauth.Identity{ID: 99, Email: req.Email, Name: req.Name, Role: domainauth.RolePending}, nil
}

func (f *fakeAuth) Login(ctx context.Context, req model.LoginRequest) (*service.LoginResult, error) {
	if f.LoginFn != nil {
		return f.LoginFn(ctx, req)
	}
	return nil, apperrors.Unauthorized("invalid email or password")
}

func (f *fakeAuth) ResolveSession(_ context.Context, token string) (*domainauth.Claims, error) {
	if c, ok := f.sessions[token]; ok {
		return c, nil
	}
	return nil, domainauth.ErrSessionMalformed
}

func (f *fakeAuth) Logout(ctx context.Context, claims *domainauth.Claims) error {
	if f.LogoutFn != nil {
		return f.LogoutFn(ctx, claims)
	}
	return nil
}

func (f *fakeAuth) CurrentIdentity(ctx context.Context, claims *domainauth.Claims) (*domainauth.Identity, error) {
	if f.CurrentIdentityFn != nil {
		return f.CurrentIdentityFn(ctx, claims)
	}
	return &domainauth.Identity{ID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}

func (f *fakeAuth) SessionTTL() time.Duration { return time.Hour }

type fakeUsers struct {
	ListPendingFn func(ctx context.Context, actor *domainauth.Claims) ([]*domainauth.Identity, error)
	ApproveFn     func(ctx context.Context, actor *domainauth.Claims, id int64) (*domainauth.Identity, error)
	ListUsersFn   func(ctx context.Context, actor *domainauth.Claims, opts model.UsersListOptions) ([]*domainauth.Identity, error)
	SetRoleFn     func(ctx context.Context, actor *domainauth.Claims, id int64, req model.SetRoleRequest) (*domainauth.Identity, error)
}

func (f *fakeUsers) ListPending(ctx context.Context, actor *domainauth.Claims) ([]*domainauth.Identity, error) {
	if f.ListPendingFn != nil {
		return f.ListPendingFn(ctx, actor)
	}
	return nil, nil
}

func (f *fakeUsers) Approve(ctx context.Context, actor *domainauth.Claims, id int64) (*domainauth.Identity, error) {
	if f.ApproveFn != nil {
		return f.ApproveFn(ctx, actor, id)
	}
	return &domainauth.Identity{ID: id, Role: domainauth.RoleEmployee}, nil
}

func (f *fakeUsers) ListUsers(ctx context.Context, actor *domainauth.Claims, opts model.UsersListOptions) ([]*domainauth.Identity, error) {
	if f.ListUsersFn != nil {
		return f.ListUsersFn(ctx, actor, opts)
	}
	return nil, nil
}

func (f *fakeUsers) SetRole(ctx context.Context, actor *domainauth.Claims, id int64, req model.SetRoleRequest) (*domainauth.Identity, error) {
	if f.SetRoleFn != nil {
		return f.SetRoleFn(ctx, actor, id, req)
	}
	return &domainauth.Identity{ID: id, Role: domainauth.Role(req.Role)}, nil
}

type fakeModules struct {
	ListFn   func(ctx context.Context, actor *domainauth.Claims) ([]*model.Module, error)
	GetFn    func(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Module, error)
	CreateFn func(ctx context.Context, actor *domainauth.Claims, req *model.ModuleRequest) (*model.Module, error)
	UpdateFn func(ctx context.Context, actor *domainauth.Claims, id int64, req *model.ModuleRequest) (*model.Module, error)
	DeleteFn func(ctx context.Context, actor *domainauth.Claims, id int64) error
}

func (f *fakeModules) List(ctx context.Context, actor *domainauth.Claims) ([]*model.Module, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, actor)
	}
	return nil, nil
}

func (f *fakeModules) Get(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Module, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, actor, id)
	}
	return nil, apperrors.NotFound("module not found")
}

func (f *fakeModules) Create(ctx context.Context, actor *domainauth.Claims, req *model.ModuleRequest) (*model.Module, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, actor, req)
	}
	return &model.Module{ID: 1, Title: req.Title, Order: *req.Order}, nil
}

func (f *fakeModules) Update(ctx context.Context, actor *domainauth.Claims, id int64, req *model.ModuleRequest) (*model.Module, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, actor, id, req)
	}
	return &model.Module{ID: id, Title: req.Title}, nil
}

func (f *fakeModules) Delete(ctx context.Context, actor *domainauth.Claims, id int64) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, actor, id)
	}
	return nil
}

type fakeQuestions struct {
	ListFn   func(ctx context.Context, actor *domainauth.Claims) ([]*model.Question, error)
	GetFn    func(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Question, error)
	CreateFn func(ctx context.Context, actor *domainauth.Claims, req *model.QuestionRequest) (*model.Question, error)
	UpdateFn func(ctx context.Context, actor *domainauth.Claims, id int64, req *model.QuestionRequest) (*model.Question, error)
	DeleteFn func(ctx context.Context, actor *domainauth.Claims, id int64) error
}

func (f *fakeQuestions) List(ctx context.Context, actor *domainauth.Claims) ([]*model.Question, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, actor)
	}
	return nil, nil
}

func (f *fakeQuestions) Get(ctx context.Context, actor *domainauth.Claims, id int64) (*model.Question, error) {
	if f.GetFn != nil {
		return f.GetFn(ctx, actor, id)
	}
	return nil, apperrors.NotFound("question not found")
}

func (f *fakeQuestions) Create(ctx context.Context, actor *domainauth.Claims, req *model.QuestionRequest) (*model.Question, error) {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, actor, req)
	}
	return &model.Question{ID: 1, Prompt: req.Prompt, Options: req.Options, CorrectAnswer: req.CorrectAnswer}, nil
}

func (f *fakeQuestions) Update(ctx context.Context, actor *domainauth.Claims, id int64, req *model.QuestionRequest) (*model.Question, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, actor, id, req)
	}
	return &model.Question{ID: id, Prompt: req.Prompt}, nil
}

func (f *fakeQuestions) Delete(ctx context.Context, actor *domainauth.Claims, id int64) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, actor, id)
	}
	return nil
}

type fakeQuiz struct {
	SubmitFn  func(ctx context.Context, actor *domainauth.Claims, sub model.QuizSubmission) (*service.SubmitResult, error)
	LatestFn  func(ctx context.Context, actor *domainauth.Claims) (*model.QuizResult, error)
	HistoryFn func(ctx context.Context, actor *domainauth.Claims, limit int) ([]*model.QuizResult, error)
	ScoresFn  func(ctx context.Context, actor *domainauth.Claims, opts model.ScoresListOptions) ([]*model.ScoreEntry, error)
}

func (f *fakeQuiz) Submit(ctx context.Context, actor *domainauth.Claims, sub model.QuizSubmission) (*service.SubmitResult, error) {
	if f.SubmitFn != nil {
		return f.SubmitFn(ctx, actor, sub)
	}
	return nil, apperrors.Internal("submit not configured")
}

func (f *fakeQuiz) Latest(ctx context.Context, actor *domainauth.Claims) (*model.QuizResult, error) {
	if f.LatestFn != nil {
		return f.LatestFn(ctx, actor)
	}
	return nil, nil
}

func (f *fakeQuiz) History(ctx context.Context, actor *domainauth.Claims, limit int) ([]*model.QuizResult, error) {
	if f.HistoryFn != nil {
		return f.HistoryFn(ctx, actor, limit)
	}
	return nil, nil
}

func (f *fakeQuiz) Scores(ctx context.Context, actor *domainauth.Claims, opts model.ScoresListOptions) ([]*model.ScoreEntry, error) {
	if f.ScoresFn != nil {
		return f.ScoresFn(ctx, actor, opts)
	}
	return nil, nil
}

type fakeOnboarding struct {
	OverviewFn       func(ctx context.Context, actor *domainauth.Claims) (*model.OnboardingOverview, error)
	CompleteModuleFn func(ctx context.Context, actor *domainauth.Claims, moduleID int64) (*model.Progress, error)
}

func (f *fakeOnboarding) Overview(ctx context.Context, actor *domainauth.Claims) (*model.OnboardingOverview, error) {
	if f.OverviewFn != nil {
		return f.OverviewFn(ctx, actor)
	}
	return &model.OnboardingOverview{PassPercent: 70}, nil
}

func (f *fakeOnboarding) CompleteModule(ctx context.Context, actor *domainauth.Claims, moduleID int64) (*model.Progress, error) {
	if f.CompleteModuleFn != nil {
		return f.CompleteModuleFn(ctx, actor, moduleID)
	}
	return &model.Progress{UserID: actor.Subject, ModuleID: moduleID, Completed: true}, nil
}

// testEnv bundles a router with the fakes behind it.
type testEnv struct {
	auth       *fakeAuth
	users      *fakeUsers
	modules    *fakeModules
	questions  *fakeQuestions
	quiz       *fakeQuiz
	onboarding *fakeOnboarding
	handler    http.Handler
}

// Session tokens understood by every testEnv.
const (
	tokenPending  = "tok-pending"
	tokenEmployee = "tok-employee"
	tokenManager  = "tok-manager"
	tokenAdmin    = "tok-admin"
)

func testClaims(id int64, role domainauth.Role) *domainauth.Claims {
	return &domainauth.Claims{
		Subject:   id,
		Role:      role,
		Name:      string(role) + " user",
		TokenID:   "jti-" + string(role),
		IssuedAt:  time.Now().Add(-time.Minute),
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// newTestEnv builds the full router. withTemplates loads the real templates
// so browser routes render; without them only the JSON API is served.
func newTestEnv(t *testing.T, withTemplates bool) *testEnv {
	t.Helper()
	env := &testEnv{
		auth: &fakeAuth{sessions: map[string]*domainauth.Claims{
			tokenPending:  testClaims(1, domainauth.RolePending),
			tokenEmployee: testClaims(2, domainauth.RoleEmployee),
			tokenManager:  testClaims(3, domainauth.RoleManager),
			tokenAdmin:    testClaims(4, domainauth.RoleAdmin),
		}},
		users:      &fakeUsers{},
		modules:    &fakeModules{},
		questions:  &fakeQuestions{},
		quiz:       &fakeQuiz{},
		onboarding: &fakeOnboarding{},
	}

	services := RouterServices{
		Auth:       env.auth,
		Users:      env.users,
		Modules:    env.modules,
		Questions:  env.questions,
		Quiz:       env.quiz,
		Onboarding: env.onboarding,
		Cookie:     SessionCookieConfig{TTL: time.Hour},
	}
	if !withTemplates {
		services.TemplateFS = os.DirFS(t.TempDir())
	}
	env.handler = NewRouter(services)
	return env
}

// requestOpts describes a request sent through testEnv.do.
type requestOpts struct {
	Method string
	Path   string
	Token  string
	Form   url.Values
	JSON   string
	HTMX   bool
}

func (e *testEnv) do(t *testing.T, o requestOpts) *httptest.ResponseRecorder {
	t.Helper()
	if o.Method == "" {
		o.Method = http.MethodGet
	}

	var req *http.Request
	switch {
	case o.Form != nil:
		if o.Method != http.MethodGet {
			o.Form.Set("csrf_token", testCSRFToken)
		}
		req = httptest.NewRequest(o.Method, o.Path, strings.NewReader(o.Form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case o.JSON != "":
		req = httptest.NewRequest(o.Method, o.Path, strings.NewReader(o.JSON))
		req.Header.Set("Content-Type", "application/json")
	default:
		req = httptest.NewRequest(o.Method, o.Path, nil)
	}

	if strings.HasPrefix(o.Path, "/api/") {
		req.Header.Set("Accept", "application/json")
	} else {
		req.Header.Set("Accept", "text/html")
	}
	if o.HTMX {
		req.Header.Set("Hx-Request", "true")
		req.Header.Set("X-Csrf-Token", testCSRFToken)
	}
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	if o.Token != "" {
		req.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: o.Token})
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
