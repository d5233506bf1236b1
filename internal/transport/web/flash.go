package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// The notification channel: a cookie-backed queue of transient messages.
// Handlers push notifications, the next rendered page pops the whole queue,
// and the cookie is cleared in the same response. Fire-and-forget, no
// acknowledgment.

const flashCookie = "catalog_flash"

const (
	flashSuccess = "success"
	flashError   = "error"
)

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// pushFlash appends a notification to the queue carried by the flash cookie.
func pushFlash(w http.ResponseWriter, r *http.Request, level, message string) {
	queue := readFlashes(r)
	queue = append(queue, Flash{Level: level, Message: message})
	payload, err := json.Marshal(queue)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlashes drains the queue: it returns all pending notifications and
// clears the cookie.
func popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	queue := readFlashes(r)
	if _, err := r.Cookie(flashCookie); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
	}
	return queue
}

// readFlashes decodes the queue from the request cookie. A missing or
// malformed cookie is an empty queue.
func readFlashes(r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var queue []Flash
	if err := json.Unmarshal(payload, &queue); err != nil {
		return nil
	}
	return queue
}
