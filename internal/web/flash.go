package web

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"

	sessionName = "pollos_session"
)

var flashCategories = []string{FlashSuccess, FlashWarning, FlashDanger}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// FlashStore keeps flash messages in a signed session cookie.
type FlashStore struct {
	store sessions.Store
}

func NewFlashStore(secret string) *FlashStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &FlashStore{store: store}
}

// Add queues a message; it must be called before the response is written.
func (f *FlashStore) Add(w http.ResponseWriter, r *http.Request, category, message string) error {
	session, err := f.store.Get(r, sessionName)
	if err != nil && session == nil {
		return fmt.Errorf("loading session: %w", err)
	}

	session.AddFlash(message, category)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Pop returns and clears all queued messages. A tampered or expired cookie
// yields no messages.
func (f *FlashStore) Pop(w http.ResponseWriter, r *http.Request) []Flash {
	session, err := f.store.Get(r, sessionName)
	if session == nil || (err != nil && session.IsNew) {
		return nil
	}

	var flashes []Flash
	for _, category := range flashCategories {
		for _, v := range session.Flashes(category) {
			if msg, ok := v.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: msg})
			}
		}
	}

	if len(flashes) > 0 {
		_ = session.Save(r, w)
	}
	return flashes
}
