package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/target/onboarding-portal/internal/domain/auth"
	"github.com/target/onboarding-portal/internal/domain/model"
	"github.com/target/onboarding-portal/internal/http/validation"
)

const (
	dashboardScoreLimit = 50
	dashboardUserLimit  = 200
	maxModuleOrder      = 100000
	maxTitleLen         = 200
	maxReadingLen       = 20000
	maxURLLen           = 2048
	maxPromptLen        = 1000
	minOptions          = 2
	maxOptions          = 10
	adminDashboardPath  = "/admin/dashboard"
)

// moduleForm is the admin dashboard's new-module form.
type moduleForm struct {
	Title           string
	Description     string
	VideoURL        string
	ReadingMaterial string
	Order           string
}

func (f moduleForm) request() *model.ModuleRequest {
	order, _ := strconv.Atoi(strings.TrimSpace(f.Order))
	return &model.ModuleRequest{
		Title:       f.Title,
		Description: f.Description,
		Content: model.ModuleContent{
			VideoURL:        f.VideoURL,
			ReadingMaterial: f.ReadingMaterial,
		},
		Order: &order,
	}
}

// questionForm is the admin dashboard's question form. Options holds one
// option per line. A non-zero ID edits that question instead of adding one.
type questionForm struct {
	ID            int64
	Prompt        string
	Options       string
	CorrectAnswer string
}

func questionFormFrom(q *model.Question) questionForm {
	return questionForm{
		ID:            q.ID,
		Prompt:        q.Prompt,
		Options:       strings.Join(q.Options, "\n"),
		CorrectAnswer: q.CorrectAnswer,
	}
}

func (f questionForm) request() *model.QuestionRequest {
	return &model.QuestionRequest{
		Prompt:        f.Prompt,
		Options:       validation.SplitLines(f.Options),
		CorrectAnswer: strings.TrimSpace(f.CorrectAnswer),
	}
}

func parseModuleForm(r *http.Request) (moduleForm, map[string]string) {
	f := moduleForm{
		Title:           strings.TrimSpace(r.PostFormValue("title")),
		Description:     strings.TrimSpace(r.PostFormValue("description")),
		VideoURL:        strings.TrimSpace(r.PostFormValue("video_url")),
		ReadingMaterial: strings.TrimSpace(r.PostFormValue("reading_material")),
		Order:           strings.TrimSpace(r.PostFormValue("order")),
	}
	fv := validation.New().
		Validate("title", f.Title, validation.Required("Title", maxTitleLen)).
		Validate("description", f.Description, validation.Optional("Description", maxReadingLen)).
		Validate("video_url", f.VideoURL, validation.OptionalURL("Video URL", maxURLLen)).
		Validate("reading_material", f.ReadingMaterial, validation.Optional("Reading material", maxReadingLen)).
		Validate("order", f.Order, validation.IntRange("Order", 0, maxModuleOrder))
	return f, fv.Errors()
}

func parseQuestionForm(r *http.Request) (questionForm, map[string]string) {
	f := questionForm{
		Prompt:        strings.TrimSpace(r.PostFormValue("prompt")),
		Options:       r.PostFormValue("options"),
		CorrectAnswer: strings.TrimSpace(r.PostFormValue("correct_answer")),
	}
	fv := validation.New().
		Validate("prompt", f.Prompt, validation.Required("Question", maxPromptLen)).
		Validate("options", f.Options, validation.LineCount("Options", minOptions, maxOptions)).
		Validate("correct_answer", f.CorrectAnswer, validation.Required("Correct answer", maxPromptLen))
	if fv.Valid() {
		found := false
		for _, o := range validation.SplitLines(f.Options) {
			if o == f.CorrectAnswer {
				found = true
				break
			}
		}
		fv.Check(found, "correct_answer", "Correct answer must match one of the options exactly.")
	}
	return f, fv.Errors()
}

// dashboard is everything the admin dashboard lists.
type dashboard struct {
	Modules   []*model.Module
	Questions []*model.Question
	Scores    []*model.ScoreEntry
	Users     []*domainauth.Identity
}

// loadDashboard reads the four dashboard lists concurrently.
func (h *UIHandlers) loadDashboard(ctx context.Context, actor *domainauth.Claims) (*dashboard, error) {
	var d dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Modules, err = h.Modules.List(gctx, actor)
		return err
	})
	g.Go(func() (err error) {
		d.Questions, err = h.Questions.List(gctx, actor)
		return err
	})
	g.Go(func() (err error) {
		d.Scores, err = h.Quiz.Scores(gctx, actor, model.ScoresListOptions{Limit: dashboardScoreLimit})
		return err
	})
	g.Go(func() (err error) {
		d.Users, err = h.Users.ListUsers(gctx, actor, model.UsersListOptions{Limit: dashboardUserLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func nextModuleOrder(modules []*model.Module) int {
	next := 0
	for _, m := range modules {
		if m.Order >= next {
			next = m.Order + 1
		}
	}
	return next
}

// AdminDashboard serves GET /admin/dashboard.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderAdminDashboard(w, r, newPageData(r, pageMeta("Admin dashboard", PageAdminDashboard)))
}

// renderAdminDashboard fills in the dashboard lists and any form state the
// caller has not already provided.
func (h *UIHandlers) renderAdminDashboard(w http.ResponseWriter, r *http.Request, data map[string]any) {
	claims := ClaimsFrom(r.Context())
	d, err := h.loadDashboard(r.Context(), claims)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	passed := 0
	for _, s := range d.Scores {
		if s.Passed {
			passed++
		}
	}

	defaults := map[string]any{
		"Modules":      d.Modules,
		"Questions":    d.Questions,
		"Scores":       d.Scores,
		"Users":        d.Users,
		"PassedCount":  passed,
		"Roles":        domainauth.AllRoles(),
		"SelfID":       claims.Subject,
		"ModuleForm":   moduleForm{Order: strconv.Itoa(nextModuleOrder(d.Modules))},
		"QuestionForm": questionForm{},
	}
	for k, v := range defaults {
		if _, set := data[k]; !set {
			data[k] = v
		}
	}
	h.renderPage(w, r, data)
}

// CreateModule handles POST /admin/modules.
func (h *UIHandlers) CreateModule(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[moduleForm]{
		W: w, R: r,
		Parser: parseModuleForm,
		Submit: func(ctx context.Context, actor *domainauth.Claims, f moduleForm) error {
			_, err := h.Modules.Create(ctx, actor, f.request())
			return err
		},
		Renderer:   h.renderAdminDashboard,
		SuccessURL: withNotice(adminDashboardPath, "module-created") + "#modules",
		PageMeta:   pageMeta("Admin dashboard", PageAdminDashboard),
		FormKey:    "ModuleForm",
	})
}

// DeleteModule handles POST /admin/modules/{id}/delete.
func (h *UIHandlers) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Modules.Delete(r.Context(), ClaimsFrom(r.Context()), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	seeOther(w, r, withNotice(adminDashboardPath, "module-deleted")+"#modules")
}

// CreateQuestion handles POST /admin/questions.
func (h *UIHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[questionForm]{
		W: w, R: r,
		Parser: parseQuestionForm,
		Submit: func(ctx context.Context, actor *domainauth.Claims, f questionForm) error {
			_, err := h.Questions.Create(ctx, actor, f.request())
			return err
		},
		Renderer:   h.renderAdminDashboard,
		SuccessURL: withNotice(adminDashboardPath, "question-created") + "#questions",
		PageMeta:   pageMeta("Admin dashboard", PageAdminDashboard),
		FormKey:    "QuestionForm",
	})
}

// EditQuestion handles GET /admin/questions/{id}/edit: the dashboard with the
// question form filled in from the stored question.
func (h *UIHandlers) EditQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	q, err := h.Questions.Get(r.Context(), ClaimsFrom(r.Context()), id)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	data := newPageData(r, pageMeta("Edit question", PageAdminDashboard))
	data["QuestionForm"] = questionFormFrom(q)
	h.renderAdminDashboard(w, r, data)
}

// UpdateQuestion handles POST /admin/questions/{id}.
func (h *UIHandlers) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	HandleForm(FormHandlerOpts[questionForm]{
		W: w, R: r,
		Parser: func(r *http.Request) (questionForm, map[string]string) {
			f, errs := parseQuestionForm(r)
			f.ID = id
			return f, errs
		},
		Submit: func(ctx context.Context, actor *domainauth.Claims, f questionForm) error {
			_, err := h.Questions.Update(ctx, actor, f.ID, f.request())
			return err
		},
		Renderer:   h.renderAdminDashboard,
		SuccessURL: withNotice(adminDashboardPath, "question-updated") + "#questions",
		PageMeta:   pageMeta("Edit question", PageAdminDashboard),
		FormKey:    "QuestionForm",
	})
}

// DeleteQuestion handles POST /admin/questions/{id}/delete.
func (h *UIHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if err := h.Questions.Delete(r.Context(), ClaimsFrom(r.Context()), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	seeOther(w, r, withNotice(adminDashboardPath, "question-deleted")+"#questions")
}

// SetUserRole handles POST /admin/users/{id}/role.
func (h *UIHandlers) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	claims := ClaimsFrom(r.Context())
	role := strings.TrimSpace(r.PostFormValue("role"))
	identity, err := h.Users.SetRole(r.Context(), claims, id, model.SetRoleRequest{Role: role})
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.logger().Info("user role changed", "user_id", identity.ID, "role", string(identity.Role), "changed_by", claims.Subject)
	seeOther(w, r, withNotice(adminDashboardPath, "role-updated")+"#users")
}
