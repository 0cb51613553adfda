//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Progress records that an identity completed a module.
// There is at most one record per (user, module) pair.
type Progress struct {
	ID          int64     `json:"id"          db:"id"`
	UserID      int64     `json:"userId"      db:"user_id"`
	ModuleID    int64     `json:"moduleId"    db:"module_id"`
	Completed   bool      `json:"completed"   db:"completed"`
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`
}

// CompleteModuleRequest is the payload for marking a module complete.
type CompleteModuleRequest struct {
	ModuleID int64 `json:"moduleId"`
}

// OnboardingOverview is everything the onboarding page needs for one employee.
type OnboardingOverview struct {
	Modules          []Module       `json:"modules"`
	Questions        []QuestionView `json:"questions"`
	CompletedModules []int64        `json:"completedModules"`
	LatestResult     *QuizResult    `json:"latestResult,omitempty"`
	PassPercent      int            `json:"passPercent"`
}

// IsCompleted reports whether moduleID is among the completed modules.
func (o OnboardingOverview) IsCompleted(moduleID int64) bool {
	for _, id := range o.CompletedModules {
		if id == moduleID {
			return true
		}
	}
	return false
}

// QuizAvailable reports whether the quiz should be presented: there must be
// questions and the employee must not already have passed.
func (o OnboardingOverview) QuizAvailable() bool {
	if len(o.Questions) == 0 {
		return false
	}
	return o.LatestResult == nil || !o.LatestResult.Passed
}
