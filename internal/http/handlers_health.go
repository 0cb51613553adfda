package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthCheckBudget = 2 * time.Second

// HealthCheck probes one dependency. Check must return within the context
// deadline.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler runs every check concurrently under healthCheckBudget and
// answers 200 when all pass, 503 otherwise. HEAD gets the status only.
func healthHandler(checks []HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := runHealthChecks(r, checks)
		status := http.StatusOK
		if report.Status != "ok" {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Cache-Control", "no-store")
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			return
		}
		WriteJSON(w, status, report)
	}
}

func runHealthChecks(r *http.Request, checks []HealthCheck) healthReport {
	report := healthReport{Status: "ok"}
	if len(checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckBudget)
	defer cancel()

	errs := make([]error, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			errs[i] = c.Check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	report.Checks = make(map[string]string, len(checks))
	for i, c := range checks {
		if errs[i] != nil {
			loggerFrom(r).WarnContext(r.Context(), "health check failed",
				"check", c.Name, "error", errs[i])
			report.Checks[c.Name] = "unavailable"
			report.Status = "unavailable"
			continue
		}
		report.Checks[c.Name] = "ok"
	}
	return report
}
