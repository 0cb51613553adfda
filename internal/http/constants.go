package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
const (
	PageHome               = "home"
	PageSignIn             = "signin"
	PageSignUp             = "signup"
	PagePendingApproval    = "pending-approval"
	PageOnboarding         = "onboarding"
	PageOnboardingComplete = "onboarding-complete"
	PageApprovals          = "approvals"
	PageAdminDashboard     = "admin-dashboard"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageHome:               "home-content",
	PageSignIn:             "signin-content",
	PageSignUp:             "signup-content",
	PagePendingApproval:    "pending-content",
	PageOnboarding:         "onboarding-content",
	PageOnboardingComplete: "onboarding-complete-content",
	PageApprovals:          "approvals-content",
	PageAdminDashboard:     "admin-dashboard-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "home-content"
}

// notices are the fixed flash messages selectable by the ?notice= query parameter.
//
//nolint:gochecknoglobals // static read-only lookup
var notices = map[string]string{
	"registered":       "Registration received. A manager or administrator must approve your account before you can start onboarding.",
	"signed-out":       "You have been signed out.",
	"session-expired":  "Your session has ended. Please sign in again.",
	"approved":         "The user was approved and can now sign in as an employee.",
	"module-completed": "Module marked as complete.",
	"quiz-failed":      "You did not reach the passing score. Review the modules and try again.",
	"module-created":   "Module created.",
	"module-deleted":   "Module deleted.",
	"question-created": "Question created.",
	"question-updated": "Question updated.",
	"question-deleted": "Question deleted.",
	"role-updated":     "Role updated. It takes effect the next time the user signs in.",
}

// noticeFor returns the flash message for key, or "" for unknown keys.
func noticeFor(key string) string { return notices[key] }
