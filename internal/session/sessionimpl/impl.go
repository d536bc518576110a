package sessionimpl

import (
	"net/http"

	"github.com/vinifbn/instagram-insights-api/internal/domain"
	"github.com/vinifbn/instagram-insights-api/internal/session"
	"github.com/vinifbn/instagram-insights-api/pkg/config"
	"go.uber.org/fx"
)

type CookieStore struct {
	secure bool
}

type Opts struct {
	fx.In

	Config *config.Config
}

func New(opts Opts) *CookieStore {
	return &CookieStore{
		secure: opts.Config.App.Env == "production",
	}
}

var _ session.Store = (*CookieStore)(nil)

func (s *CookieStore) Get(r *http.Request) (domain.Session, error) {
	token, err := r.Cookie(session.AccessTokenCookie)
	if err != nil {
		return domain.Session{}, session.ErrNoSession
	}
	userID, err := r.Cookie(session.UserIDCookie)
	if err != nil {
		return domain.Session{}, session.ErrNoSession
	}

	sess := domain.Session{
		UserID:      userID.Value,
		AccessToken: token.Value,
	}
	if !sess.Valid() {
		return domain.Session{}, session.ErrNoSession
	}
	return sess, nil
}

func (s *CookieStore) Set(w http.ResponseWriter, sess domain.Session) {
	http.SetCookie(w, s.cookie(session.AccessTokenCookie, sess.AccessToken, int(session.TTL.Seconds())))
	http.SetCookie(w, s.cookie(session.UserIDCookie, sess.UserID, int(session.TTL.Seconds())))
}

func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(session.AccessTokenCookie, "", -1))
	http.SetCookie(w, s.cookie(session.UserIDCookie, "", -1))
}

func (s *CookieStore) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
