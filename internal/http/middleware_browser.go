package httpx

import (
	"context"
	"net/http"
	"strings"
)

type browserRequestKey struct{}

// BrowserDetection classifies each request once, as a browser page load or
// an API call, and stores the answer for IsBrowserRequest.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, classifyBrowser(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest reports whether the response should be HTML. Requests
// that did not pass through BrowserDetection are classified on the spot.
func IsBrowserRequest(r *http.Request) bool {
	if v, ok := r.Context().Value(browserRequestKey{}).(bool); ok {
		return v
	}
	return classifyBrowser(r)
}

// classifyBrowser applies the first matching rule:
// /api and /static are never pages; htmx always is; XHR is not; otherwise
// the Accept header decides, with a missing header counting as a browser.
func classifyBrowser(r *http.Request) bool {
	p := r.URL.Path
	switch {
	case p == "/api" || strings.HasPrefix(p, "/api/"), strings.HasPrefix(p, "/static/"):
		return false
	case IsHTMX(r):
		return true
	case strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest"):
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	html := strings.Contains(accept, "text/html")
	if strings.Contains(accept, "application/json") && !html {
		return false
	}
	return html || strings.Contains(accept, "*/*")
}
