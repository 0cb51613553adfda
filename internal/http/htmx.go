package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

// htmx request and response headers the portal reads or writes.
const (
	hxRequestHeader        = "Hx-Request"
	hxHistoryRestoreHeader = "Hx-History-Restore-Request"
	hxCurrentURLHeader     = "Hx-Current-Url"
	hxRedirectHeader       = "Hx-Redirect"
	hxTriggerHeader        = "Hx-Trigger"
)

// IsHTMX reports whether the request was initiated by htmx.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get(hxRequestHeader), "true")
}

// WantsPartial reports whether only the page's content block should be
// rendered. History restores after a cache miss replace the whole body and
// need the full layout.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r) && !strings.EqualFold(r.Header.Get(hxHistoryRestoreHeader), "true")
}

// hxRedirect tells htmx to navigate the browser to target. Nothing may be
// written after it.
func hxRedirect(w http.ResponseWriter, target string, status int) {
	w.Header().Set(hxRedirectHeader, target)
	w.WriteHeader(status)
}

// AddHXTrigger queues a client-side event on the response. Events accumulate
// in one JSON object so a page swap can activate the nav and raise a toast
// together. A nil payload fires the event with true.
func AddHXTrigger(w http.ResponseWriter, event string, payload any) {
	if event == "" {
		return
	}
	events := pendingTriggers(w.Header().Get(hxTriggerHeader))
	if payload == nil {
		payload = true
	}
	events[event] = payload

	b, err := json.Marshal(events)
	if err != nil {
		// Payload could not be encoded; fire the bare event instead.
		events[event] = true
		if b, err = json.Marshal(events); err != nil {
			return
		}
	}
	w.Header().Set(hxTriggerHeader, string(b))
}

// pendingTriggers parses an existing Hx-Trigger value, which is either a JSON
// object or a comma separated list of event names.
func pendingTriggers(raw string) map[string]any {
	events := map[string]any{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return events
	}
	if err := json.Unmarshal([]byte(raw), &events); err == nil {
		return events
	}
	events = map[string]any{}
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			events[name] = true
		}
	}
	return events
}

// triggerToast raises the showToast event handled by app.js.
func triggerToast(w http.ResponseWriter, message, toastType string) {
	if w == nil || strings.TrimSpace(message) == "" {
		return
	}
	AddHXTrigger(w, "showToast", map[string]any{
		"message": message,
		"type":    strings.TrimSpace(toastType),
	})
}
