package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/jcpao/court-directory/internal/database"
	"github.com/jcpao/court-directory/internal/directory"
	"github.com/jcpao/court-directory/internal/model"
	"github.com/jcpao/court-directory/internal/photo"
	"github.com/jcpao/court-directory/internal/repository"
	"github.com/jcpao/court-directory/internal/session"
)

// Messages shown on the directory page.
const (
	MsgLoadFailed    = "The directory could not be loaded. Try Refresh Directory in a moment."
	MsgRefreshed     = "Directory refreshed."
	MsgRefreshFailed = "The directory cache could not be cleared."
)

// DirectorySource is the loaded dataset as seen by the handler.
type DirectorySource interface {
	Load(ctx context.Context) ([]model.Employee, error)
	Refresh(ctx context.Context) error
}

// DirectoryHandler renders the gated directory and owns the sidebar
// transitions.
type DirectoryHandler struct {
	Data     DirectorySource
	Photos   photo.Resolver
	Sessions *session.Store
	Log      *zap.Logger
}

func NewDirectoryHandler(d DirectorySource, p photo.Resolver, s *session.Store, log *zap.Logger) *DirectoryHandler {
	if p == nil {
		p = photo.Fallback{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DirectoryHandler{Data: d, Photos: p, Sessions: s, Log: log}
}

// Card is one profile in the main view.
type Card struct {
	Name        string
	JobTitle    string
	Badge       directory.Badge
	Location    string
	Email       string
	Phone       string
	Extension   string
	PhotoURL    string
	ServiceFact string
}

// DirectoryPage is the data for directory.html.
type DirectoryPage struct {
	Email           string
	Filters         directory.Filters
	PositionOptions []directory.Option
	UnitOptions     []directory.Option
	LocationOptions []directory.Option
	Legend          []directory.Badge
	Cards           []Card
	Contacts        []directory.Contact
	Notices         []session.Notice
}

// Show renders the filtered directory.  A load failure renders an empty
// page with a notice instead of an error status.
func (h *DirectoryHandler) Show(c echo.Context) error {
	st := session.FromContext(c)
	rows, loadErr := h.Data.Load(c.Request().Context())

	st, notices := st.DrainNotices()
	if len(notices) > 0 {
		if err := h.Sessions.Save(c, st); err != nil {
			h.Log.Error("session save failed", zap.Error(err))
		}
	}
	if loadErr != nil {
		notices = append(notices, loadNotice(loadErr))
	}

	f := st.Filters.Normalize()
	shown := directory.Apply(rows, f)
	page := DirectoryPage{
		Email:           st.Email,
		Filters:         f,
		PositionOptions: directory.PositionOptions,
		UnitOptions:     directory.UnitOptions,
		LocationOptions: directory.LocationOptions,
		Legend:          directory.BadgeLegend,
		Notices:         notices,
	}
	if f.View == directory.ViewContacts {
		page.Contacts = directory.Contacts(shown)
	} else {
		page.Cards = h.cards(shown)
	}
	return c.Render(http.StatusOK, "directory.html", page)
}

func (h *DirectoryHandler) cards(rows []model.Employee) []Card {
	out := make([]Card, 0, len(rows))
	for _, e := range rows {
		out = append(out, Card{
			Name:        e.FullName,
			JobTitle:    e.JobTitle,
			Badge:       directory.PositionBadge(e),
			Location:    directory.LocationLabel(e.OfficeLocation),
			Email:       e.WorkEmail,
			Phone:       directory.FormatPhone(e.WorkPhone),
			Extension:   directory.PhoneExtension(e.WorkPhone),
			PhotoURL:    h.Photos.URL(e.PhotoID),
			ServiceFact: directory.ServiceFact(e.ServiceDays, e.ServicePercentile),
		})
	}
	return out
}

func loadNotice(err error) session.Notice {
	if errors.Is(err, repository.ErrNoPool) {
		return session.Notice{Level: session.LevelError, Text: database.RemediationMessage}
	}
	return session.Notice{Level: session.LevelError, Text: MsgLoadFailed}
}

// UpdateFilters stores the submitted sidebar values.
func (h *DirectoryHandler) UpdateFilters(c echo.Context) error {
	st := session.FromContext(c)
	f := directory.Filters{
		Position: c.FormValue("position"),
		Unit:     c.FormValue("unit"),
		Location: c.FormValue("location"),
		Search:   c.FormValue("q"),
		View:     c.FormValue("view"),
	}
	return h.saveAndReturn(c, st.WithFilters(f))
}

// ResetFilters restores the default sidebar, keeping the view.
func (h *DirectoryHandler) ResetFilters(c echo.Context) error {
	return h.saveAndReturn(c, session.FromContext(c).ResetFilters())
}

// Refresh drops the loaded dataset and the query cache.
func (h *DirectoryHandler) Refresh(c echo.Context) error {
	st := session.FromContext(c)
	if err := h.Data.Refresh(c.Request().Context()); err != nil {
		h.Log.Warn("cache clear failed", zap.Error(err))
		st = st.Notify(session.LevelWarning, MsgRefreshFailed)
	} else {
		st = st.Notify(session.LevelSuccess, MsgRefreshed)
	}
	return h.saveAndReturn(c, st)
}

func (h *DirectoryHandler) saveAndReturn(c echo.Context, st session.State) error {
	if err := h.Sessions.Save(c, st); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "session unavailable")
	}
	return c.Redirect(http.StatusSeeOther, "/directory")
}
