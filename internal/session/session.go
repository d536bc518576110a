package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
)

const (
	AccessTokenCookie = "instagram_access_token"
	UserIDCookie      = "instagram_user_id"

	// Instagram long-lived tokens last 60 days; the cookies expire with them.
	TTL = 60 * 24 * time.Hour
)

var ErrNoSession = errors.New("instagram session not found")

// Store reads and writes the session cookies on one request/response pair.
// There is no server-side state: the cookie pair is the whole session.
type Store interface {
	// Get returns ErrNoSession when either cookie is missing.
	Get(r *http.Request) (domain.Session, error)
	Set(w http.ResponseWriter, sess domain.Session)
	Clear(w http.ResponseWriter)
}
