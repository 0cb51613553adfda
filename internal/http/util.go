package httpx

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/target/onboarding-portal/internal/errors"
)

// page is a limit/offset window read from ?limit= and ?offset=.
type page struct {
	Limit  int
	Offset int
}

// pageFromQuery reads the window from r. Missing or malformed values fall
// back to def and 0; limit is clamped to [1, maxLimit], offset to >= 0.
func pageFromQuery(r *http.Request, def, maxLimit int) page {
	q := r.URL.Query()
	p := page{Limit: atoiOr(q.Get("limit"), def), Offset: atoiOr(q.Get("offset"), 0)}
	p.Limit = min(max(p.Limit, 1), max(maxLimit, 1))
	p.Offset = max(p.Offset, 0)
	return p
}

func atoiOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return n
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationField(name, name+" must be a positive integer")
	}
	return id, nil
}
