package httpx

import "net/http"

// pageData is the map every page template renders from. The layout reads the
// keys newPageData fills; content templates add their own with set.
type pageData map[string]any

// newPageData seeds the layout keys: titles, nav, the signed-in user, the
// CSRF token and any ?notice= flash message.
func newPageData(r *http.Request, meta PageMeta) pageData {
	layout := buildLayout(r, meta)
	d := pageData{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
		"Errors":          map[string]string{},
	}
	if layout.CSRFToken != "" {
		d["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		d["User"] = layout.User
	}
	return d.notice(noticeFor(r.URL.Query().Get("notice")))
}

func (d pageData) set(key string, value any) pageData {
	d[key] = value
	return d
}

// fail marks the form as failed with a message shown above it.
func (d pageData) fail(msg string) pageData {
	d["Error"] = true
	d["ErrorMessage"] = msg
	return d
}

func (d pageData) fieldErrors(errs map[string]string) pageData {
	if len(errs) > 0 {
		d["Errors"] = errs
	}
	return d
}

func (d pageData) notice(msg string) pageData {
	if msg != "" {
		d["Notice"] = msg
	}
	return d
}
