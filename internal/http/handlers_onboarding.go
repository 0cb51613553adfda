package httpx

import (
	"net/http"

	"github.com/target/onboarding-portal/internal/domain/model"
	apperrors "github.com/target/onboarding-portal/internal/errors"
)

const maxHistoryLimit = 100

// OnboardingHandlers serves the employee JSON endpoints.
type OnboardingHandlers struct {
	Onboarding OnboardingService
	Quiz       QuizService
}

// Data handles GET /api/onboarding/data.
func (h *OnboardingHandlers) Data(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Onboarding.Overview(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"modules":          overview.Modules,
		"questions":        overview.Questions,
		"completedModules": overview.CompletedModules,
		"latestResult":     overview.LatestResult,
		"passPercent":      overview.PassPercent,
		"quizAvailable":    overview.QuizAvailable(),
	})
}

// CompleteModule handles POST /api/onboarding/complete-module.
func (h *OnboardingHandlers) CompleteModule(w http.ResponseWriter, r *http.Request) {
	var req model.CompleteModuleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	progress, err := h.Onboarding.CompleteModule(r.Context(), ClaimsFrom(r.Context()), req.ModuleID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, progress)
}

// SubmitQuiz handles POST /api/onboarding/submit-quiz. The score is computed
// here from the stored questions.
func (h *OnboardingHandlers) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var sub model.QuizSubmission
	if !DecodeJSON(w, r, &sub) {
		return
	}

	res, err := h.Quiz.Submit(r.Context(), ClaimsFrom(r.Context()), sub)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]any{
		"result":      res.Result,
		"score":       res.Result.Score,
		"passed":      res.Result.Passed,
		"correct":     res.Correct,
		"total":       res.Total,
		"passPercent": res.PassPercent,
	})
}

// LatestResult handles GET /api/onboarding/quiz-result.
func (h *OnboardingHandlers) LatestResult(w http.ResponseWriter, r *http.Request) {
	res, err := h.Quiz.Latest(r.Context(), ClaimsFrom(r.Context()))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	if res == nil {
		WriteServiceError(w, r, apperrors.NotFound("no quiz result yet"))
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// Results handles GET /api/onboarding/quiz-results.
func (h *OnboardingHandlers) Results(w http.ResponseWriter, r *http.Request) {
	p := pageFromQuery(r, maxHistoryLimit, maxHistoryLimit)
	history, err := h.Quiz.History(r.Context(), ClaimsFrom(r.Context()), p.Limit)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"results": history})
}
