package httpx

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	portal "github.com/target/onboarding-portal"
	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth       AuthService
	Users      UsersService
	Modules    ModulesService
	Questions  QuestionsService
	Quiz       QuizService
	Onboarding OnboardingService
	// Health lists the dependencies probed by /healthz.
	Health []HealthCheck
	Cookie SessionCookieConfig
	// Optional: defaults to domainauth.DefaultRoutePolicy().
	Policy *domainauth.RoutePolicy
	// Compression enables gzip for compressible responses when Level > 0.
	Compression CompressionConfig
	// TemplateFS overrides the template source (tests). Defaults to the
	// embedded templates, or the disk copy in dev mode.
	TemplateFS fs.FS
	IsDev      bool         // Development mode flag for hot reloading, etc.
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates and configures the HTTP handler: the route table wrapped
// by logging, panic recovery, browser detection, optional compression, CSRF
// protection and the role authorization gate.
func NewRouter(services RouterServices) http.Handler {
	if services.Policy == nil {
		services.Policy = domainauth.DefaultRoutePolicy()
	}
	mux := http.NewServeMux()

	registerAPIRoutes(mux, services)
	health := healthHandler(services.Health)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)

	// Static assets at /static
	// Dev mode: serve from disk for hot reloading
	// Prod mode: serve from embedded FS
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	uiHandlers := setupUIHandlers(services)
	if uiHandlers != nil {
		registerUIRoutes(mux, uiHandlers)
	}

	var handler http.Handler = &notFoundHandler{mux: mux, uiHandlers: uiHandlers}

	var forbidden http.Handler
	if uiHandlers != nil {
		forbidden = http.HandlerFunc(uiHandlers.Forbidden)
	}
	handler = RoleGate(GateConfig{
		Sessions: services.Auth,
		Policy:   services.Policy,
		Cookie:   services.Cookie,
	}, forbidden)(handler)

	handler = CSRFProtection(CSRFConfig{
		CookieDomain: services.Cookie.Domain,
		CookieTTL:    services.Cookie.TTL,
		Exempt:       ExemptAPI,
	})(handler)

	if services.Compression.Level > 0 {
		cfg := services.Compression
		if cfg.Logger == nil {
			cfg.Logger = services.logger()
		}
		handler = Compression(cfg)(handler)
	}

	handler = BrowserDetection()(handler)
	handler = Recover(services.logger())(handler)
	return Logging(services.logger())(handler)
}

func registerAPIRoutes(mux *http.ServeMux, s RouterServices) {
	auth := &AuthHandlers{Svc: s.Auth, Cookie: s.Cookie, Logger: s.Logger}
	mux.HandleFunc("POST /api/auth/register", auth.Register)
	mux.HandleFunc("POST /api/auth/login", auth.Login)
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/me", auth.Me)

	onboarding := &OnboardingHandlers{Onboarding: s.Onboarding, Quiz: s.Quiz}
	mux.HandleFunc("GET /api/onboarding/data", onboarding.Data)
	mux.HandleFunc("POST /api/onboarding/complete-module", onboarding.CompleteModule)
	mux.HandleFunc("GET /api/onboarding/quiz-result", onboarding.LatestResult)
	mux.HandleFunc("GET /api/onboarding/quiz-results", onboarding.Results)
	mux.HandleFunc("POST /api/onboarding/submit-quiz", onboarding.SubmitQuiz)

	manager := &ManagerHandlers{Users: s.Users}
	mux.HandleFunc("GET /api/manager/pending", manager.Pending)
	mux.HandleFunc("POST /api/manager/approve", manager.Approve)

	modules := &ModuleHandlers{Svc: s.Modules}
	registerCRUD(mux, crudRoutes{
		Base:    "/api/admin/modules",
		Create:  modules.Create,
		List:    modules.List,
		GetByID: modules.GetByID,
		Update:  modules.Update,
		Delete:  modules.Delete,
	})
	questions := &QuestionHandlers{Svc: s.Questions}
	registerCRUD(mux, crudRoutes{
		Base:    "/api/admin/questions",
		Create:  questions.Create,
		List:    questions.List,
		GetByID: questions.GetByID,
		Update:  questions.Update,
		Delete:  questions.Delete,
	})

	admin := &AdminHandlers{Users: s.Users, Quiz: s.Quiz}
	mux.HandleFunc("GET /api/admin/scores", admin.Scores)
	mux.HandleFunc("GET /api/admin/users", admin.ListUsers)
	mux.HandleFunc("PUT /api/admin/users/{id}/role", admin.SetRole)
}

// crudRoutes lists the standard handlers of a resource under Base.
type crudRoutes struct {
	Base    string
	Create  http.HandlerFunc
	List    http.HandlerFunc
	GetByID http.HandlerFunc
	Update  http.HandlerFunc
	Delete  http.HandlerFunc
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	mux.Handle("POST "+cfg.Base, cfg.Create)
	mux.Handle("GET "+cfg.Base, cfg.List)
	mux.Handle("GET "+cfg.Base+"/{id}", cfg.GetByID)
	mux.Handle("PUT "+cfg.Base+"/{id}", cfg.Update)
	mux.Handle("DELETE "+cfg.Base+"/{id}", cfg.Delete)
}

// registerUIRoutes wires the browser pages. Access control is applied by the
// role gate ahead of the mux.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.Home)

	mux.HandleFunc("GET /auth/signin", h.SignInPage)
	mux.HandleFunc("POST /auth/signin", h.SignIn)
	mux.HandleFunc("GET /auth/signup", h.SignUpPage)
	mux.HandleFunc("POST /auth/signup", h.SignUp)
	mux.HandleFunc("POST /auth/signout", h.SignOut)
	mux.HandleFunc("GET /auth/pending-approval", h.PendingApproval)

	mux.HandleFunc("GET /onboarding", h.OnboardingPage)
	mux.HandleFunc("POST /onboarding/modules/{id}/complete", h.CompleteModule)
	mux.HandleFunc("POST /onboarding/quiz", h.SubmitQuiz)
	mux.HandleFunc("GET /onboarding/complete", h.Complete)

	mux.HandleFunc("GET /manager/pending-approvals", h.Approvals)
	mux.HandleFunc("POST /manager/pending-approvals/{id}/approve", h.Approve)

	mux.HandleFunc("GET /admin/dashboard", h.AdminDashboard)
	mux.HandleFunc("POST /admin/modules", h.CreateModule)
	mux.HandleFunc("POST /admin/modules/{id}/delete", h.DeleteModule)
	mux.HandleFunc("POST /admin/questions", h.CreateQuestion)
	mux.HandleFunc("GET /admin/questions/{id}/edit", h.EditQuestion)
	mux.HandleFunc("POST /admin/questions/{id}", h.UpdateQuestion)
	mux.HandleFunc("POST /admin/questions/{id}/delete", h.DeleteQuestion)
	mux.HandleFunc("POST /admin/users/{id}/role", h.SetUserRole)
}

// templateFS returns the override when one is set, else the bundled or
// on-disk templates.
func templateFS(services RouterServices) fs.FS {
	if services.TemplateFS != nil {
		return services.TemplateFS
	}
	return portal.Templates(services.IsDev)
}

// setupUIHandlers creates UI handlers with a template renderer. A renderer
// failure leaves the router serving the JSON API only.
func setupUIHandlers(services RouterServices) *UIHandlers {
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS(services),
		Logger:     services.Logger,
	})
	if err != nil {
		services.logger().Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}

	return &UIHandlers{
		T:          tr,
		Auth:       services.Auth,
		Users:      services.Users,
		Modules:    services.Modules,
		Questions:  services.Questions,
		Quiz:       services.Quiz,
		Onboarding: services.Onboarding,
		Policy:     services.Policy,
		Cookie:     services.Cookie,
		IsDev:      services.IsDev,
		Logger:     services.Logger,
	}
}

// staticHandler serves /static/*. Bundled assets are cacheable for an hour;
// disk assets in dev mode are never cached.
func staticHandler(isDev bool) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(portal.Static(isDev))))
	cacheControl := "public, max-age=3600"
	if isDev {
		cacheControl = "no-cache, no-store, must-revalidate"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		files.ServeHTTP(w, r)
	})
}

// notFoundHandler wraps a ServeMux and provides custom 404 handling.
type notFoundHandler struct {
	mux        *http.ServeMux
	uiHandlers *UIHandlers
}

// ServeHTTP implements http.Handler. Unmatched routes get the HTML or JSON
// 404 instead of the mux's plain-text one.
func (h *notFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, pattern := h.mux.Handler(r); pattern != "" {
		h.mux.ServeHTTP(w, r)
		return
	}

	cw := newCaptureWriter()
	h.mux.ServeHTTP(cw, r)
	if cw.status != http.StatusNotFound {
		// 405 and redirects produced by the mux itself.
		cw.flushTo(w)
		return
	}
	if h.uiHandlers != nil {
		h.uiHandlers.NotFound(w, r)
		return
	}
	if IsBrowserRequest(r) {
		http.NotFound(w, r)
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found"})
}

// captureWriter buffers headers, status and body so we can decide post-dispatch.
type captureWriter struct {
	header http.Header
	status int
	buf    bytes.Buffer
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{header: make(http.Header), status: http.StatusOK}
}

func (c *captureWriter) Header() http.Header         { return c.header }
func (c *captureWriter) WriteHeader(code int)        { c.status = code }
func (c *captureWriter) Write(b []byte) (int, error) { return c.buf.Write(b) }

func (c *captureWriter) flushTo(w http.ResponseWriter) {
	for k, vs := range c.header {
		if strings.EqualFold(k, "Content-Length") {
			continue
		}
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(c.status)
	if _, err := w.Write(c.buf.Bytes()); err != nil {
		slog.Default().Error("failed to write captured response", slog.Any("error", err))
	}
}
