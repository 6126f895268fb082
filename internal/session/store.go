package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/jcpao/court-directory/internal/directory"
	"github.com/jcpao/court-directory/internal/utils"
)

// CookieName is the session cookie.
const CookieName = "directory_session"

const contextKey = "session"

type claims struct {
	Verified bool              `json:"verified,omitempty"`
	Email    string            `json:"email,omitempty"`
	Filters  directory.Filters `json:"filters"`
	Notices  []Notice          `json:"notices,omitempty"`
	jwt.RegisteredClaims
}

// Store keeps State in a signed cookie.  Nothing is stored server side,
// so any replica can serve any request.
type Store struct {
	secret string
	ttl    time.Duration
	secure bool
}

// NewStore returns a Store signing with secret.  secure marks the cookie
// HTTPS-only.
func NewStore(secret string, ttl time.Duration, secure bool) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{secret: secret, ttl: ttl, secure: secure}
}

// Encode signs st.
func (s *Store) Encode(st State) (string, error) {
	iat, exp := utils.Expiry(s.ttl)
	return utils.SignToken(s.secret, claims{
		Verified: st.Verified,
		Email:    st.Email,
		Filters:  st.Filters.Normalize(),
		Notices:  st.Notices,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        st.ID,
			IssuedAt:  iat,
			ExpiresAt: exp,
		},
	})
}

// Decode verifies raw and rebuilds the State.
func (s *Store) Decode(raw string) (State, error) {
	var cl claims
	if err := utils.ParseToken(s.secret, raw, &cl); err != nil {
		return State{}, err
	}
	st := State{
		ID:       cl.ID,
		Verified: cl.Verified,
		Email:    cl.Email,
		Filters:  cl.Filters.Normalize(),
		Notices:  cl.Notices,
	}
	if st.ID == "" {
		st.ID = New().ID
	}
	return st, nil
}

// Load reads the session from the request cookie.  A missing, tampered
// or expired cookie yields a fresh unverified session.
func (s *Store) Load(c echo.Context) State {
	ck, err := c.Cookie(CookieName)
	if err != nil || ck.Value == "" {
		return New()
	}
	st, err := s.Decode(ck.Value)
	if err != nil {
		return New()
	}
	return st
}

// Save writes st to the response cookie and to the request context.
func (s *Store) Save(c echo.Context, st State) error {
	raw, err := s.Encode(st)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    raw,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	Set(c, st)
	return nil
}

// Clear expires the cookie and leaves a fresh session in the context.
func (s *Store) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	Set(c, New())
}

// Set stores st in the request context.
func Set(c echo.Context, st State) { c.Set(contextKey, st) }

// FromContext returns the session placed in the context by the session
// middleware, or a fresh one.
func FromContext(c echo.Context) State {
	if st, ok := c.Get(contextKey).(State); ok {
		return st
	}
	return New()
}
