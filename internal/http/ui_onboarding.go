package httpx

import (
	"net/http"
	"strconv"

	"github.com/target/onboarding-portal/internal/domain/model"
	"github.com/target/onboarding-portal/internal/domain/quiz"
	apperrors "github.com/target/onboarding-portal/internal/errors"
	"github.com/target/onboarding-portal/internal/http/uiutil"
)

const answerFieldPrefix = "q_"

// moduleCard is a module as listed on the onboarding page.
type moduleCard struct {
	*model.Module
	Completed bool
}

func answerField(questionID int64) string {
	return answerFieldPrefix + strconv.FormatInt(questionID, 10)
}

// onboardingData shapes an overview for the onboarding template.
func onboardingData(o *model.OnboardingOverview) map[string]any {
	cards := make([]moduleCard, 0, len(o.Modules))
	completed := 0
	for i := range o.Modules {
		done := o.IsCompleted(o.Modules[i].ID)
		if done {
			completed++
		}
		cards = append(cards, moduleCard{Module: &o.Modules[i], Completed: done})
	}

	type questionField struct {
		model.QuestionView
		Field string
	}
	questions := make([]questionField, 0, len(o.Questions))
	for _, q := range o.Questions {
		questions = append(questions, questionField{QuestionView: q, Field: answerField(q.ID)})
	}

	return map[string]any{
		"Modules":         cards,
		"CompletedCount":  completed,
		"TotalModules":    len(cards),
		"ProgressPercent": uiutil.ProgressPercent(completed, len(cards)),
		"Questions":       questions,
		"QuizAvailable":   o.QuizAvailable(),
		"LatestResult":    o.LatestResult,
		"PassPercent":     o.PassPercent,
		"Answers":         map[string]string{},
	}
}

// OnboardingPage serves GET /onboarding.
func (h *UIHandlers) OnboardingPage(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Onboarding.Overview(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	h.renderOnboarding(w, r, newPageData(r, pageMeta("My onboarding", PageOnboarding)), overview)
}

func (h *UIHandlers) renderOnboarding(w http.ResponseWriter, r *http.Request, data map[string]any, o *model.OnboardingOverview) {
	for k, v := range onboardingData(o) {
		if _, set := data[k]; !set {
			data[k] = v
		}
	}
	h.renderPage(w, r, data)
}

// CompleteModule handles POST /onboarding/modules/{id}/complete.
func (h *UIHandlers) CompleteModule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if _, err := h.Onboarding.CompleteModule(r.Context(), ClaimsFrom(r.Context()), id); err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if IsHTMX(r) {
		triggerToast(w, noticeFor("module-completed"), "success")
	}
	seeOther(w, r, withNotice("/onboarding", "module-completed")+"#module-"+strconv.FormatInt(id, 10))
}

// SubmitQuiz handles POST /onboarding/quiz. Each question's answer arrives in
// the form field q_<question id>.
func (h *UIHandlers) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	claims := ClaimsFrom(r.Context())

	overview, err := h.Onboarding.Overview(r.Context(), claims)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	if overview.LatestResult != nil && overview.LatestResult.Passed {
		seeOther(w, r, "/onboarding/complete")
		return
	}
	if len(overview.Questions) == 0 {
		h.renderServiceError(w, r, apperrors.NotFound("the quiz is not available yet"))
		return
	}

	selected := make(map[string]string, len(overview.Questions))
	fieldErrors := make(map[string]string)
	sub := model.QuizSubmission{Answers: make([]quiz.Answer, 0, len(overview.Questions))}
	for _, q := range overview.Questions {
		field := answerField(q.ID)
		ans := r.PostFormValue(field)
		if ans == "" {
			fieldErrors[field] = "Choose an answer."
			continue
		}
		selected[field] = ans
		sub.Answers = append(sub.Answers, quiz.Answer{QuestionID: q.ID, Answer: ans})
	}

	meta := pageMeta("My onboarding", PageOnboarding)
	if len(fieldErrors) > 0 {
		RenderError(ErrorOpts{
			W: w, R: r, FieldErrors: fieldErrors, PageMeta: meta,
			Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
				data["Answers"] = selected
				h.renderOnboarding(w, r, data, overview)
			},
		})
		return
	}

	res, err := h.Quiz.Submit(r.Context(), claims, sub)
	if err != nil {
		if apperrors.IsConflict(err) {
			seeOther(w, r, "/onboarding/complete")
			return
		}
		RenderError(ErrorOpts{
			W: w, R: r, Err: err, PageMeta: meta, ShowToast: true,
			Renderer: func(w http.ResponseWriter, r *http.Request, data map[string]any) {
				data["Answers"] = selected
				h.renderOnboarding(w, r, data, overview)
			},
		})
		return
	}

	h.logger().Info("quiz submitted",
		"user_id", claims.Subject,
		"score", res.Result.Score,
		"passed", res.Result.Passed,
	)
	if res.Result.Passed {
		seeOther(w, r, "/onboarding/complete")
		return
	}
	seeOther(w, r, withNotice("/onboarding", "quiz-failed")+"#quiz")
}

// Complete serves GET /onboarding/complete once the employee has passed.
func (h *UIHandlers) Complete(w http.ResponseWriter, r *http.Request) {
	res, err := h.Quiz.Latest(r.Context(), ClaimsFrom(r.Context()))
	if err != nil && !apperrors.IsNotFound(err) {
		h.renderServiceError(w, r, err)
		return
	}
	if res == nil || !res.Passed {
		redirectBrowser(w, r, "/onboarding")
		return
	}
	data := newPageData(r, pageMeta("Onboarding complete", PageOnboardingComplete)).
		set("Result", res)
	h.renderPage(w, r, data)
}

// renderServiceError renders the error page for a failed service call.
func (h *UIHandlers) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := DetermineErrorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger().Error("request failed", "error", err, "path", r.URL.Path)
	}
	h.renderErrorPage(w, r, status, errorPageMessage(err))
}

// errorPageMessage prefers the field message over the generic form hint.
func errorPageMessage(err error) string {
	fieldErrors, msg := formErrorsFrom(err)
	for _, m := range fieldErrors {
		return m
	}
	return msg
}
