package web

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// flashCookie carries a flash message from one response to the next request.
const flashCookie = "monkeymesh_flash"

// Level is the severity of a flash message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Flash is a transient status message shown once on the next rendered page.
type Flash struct {
	Level   Level
	Message string
}

// SetFlash attaches a flash message to the response. It survives exactly one
// redirect: PopFlash on the next rendered page consumes it.
func SetFlash(w http.ResponseWriter, level Level, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(string(level) + ":" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the pending flash message. It returns nil when
// there is none or the cookie is garbled.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	level, message, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil
	}

	return &Flash{Level: Level(level), Message: message}
}
