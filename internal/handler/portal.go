package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jcpao/court-directory/internal/service"
	"github.com/jcpao/court-directory/internal/session"
)

// PortalHandler serves the verification form and the login/logout
// transitions.
type PortalHandler struct {
	Gate     *service.Gate
	Sessions *session.Store
	Log      *zap.Logger
}

func NewPortalHandler(g *service.Gate, s *session.Store, log *zap.Logger) *PortalHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PortalHandler{Gate: g, Sessions: s, Log: log}
}

// PortalPage is the data for portal.html.
type PortalPage struct {
	Notices []session.Notice
}

// Index shows the form, or forwards verified visitors to the directory.
func (h *PortalHandler) Index(c echo.Context) error {
	st := session.FromContext(c)
	if st.Verified {
		return c.Redirect(http.StatusSeeOther, "/directory")
	}
	st, notices := st.DrainNotices()
	if len(notices) > 0 {
		if err := h.Sessions.Save(c, st); err != nil {
			h.Log.Error("session save failed", zap.Error(err))
		}
	}
	return c.Render(http.StatusOK, "portal.html", PortalPage{Notices: notices})
}

// Verify evaluates the submitted email and code.  The code is never
// stored or logged.
func (h *PortalHandler) Verify(c echo.Context) error {
	st := session.FromContext(c)
	email := strings.TrimSpace(c.FormValue("email"))
	code := c.FormValue("code")

	next, err := h.Gate.Evaluate(c.Request().Context(), st, email, code, c.RealIP())
	target := "/directory"
	if err != nil {
		if !errors.Is(err, service.ErrVerificationFailed) {
			h.Log.Error("verification error", zap.Error(err))
		}
		next = st.Notify(session.LevelError, service.MsgVerifyFailed)
		target = "/"
	}
	if err := h.Sessions.Save(c, next); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "session unavailable")
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Logout discards the session, filters included.
func (h *PortalHandler) Logout(c echo.Context) error {
	h.Sessions.Clear(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
