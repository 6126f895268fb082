package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jcpao/court-directory/internal/database"
	"github.com/jcpao/court-directory/internal/directory"
	"github.com/jcpao/court-directory/internal/handler"
	"github.com/jcpao/court-directory/internal/model"
	"github.com/jcpao/court-directory/internal/photo"
	"github.com/jcpao/court-directory/internal/repository"
	"github.com/jcpao/court-directory/internal/router"
	"github.com/jcpao/court-directory/internal/service"
	"github.com/jcpao/court-directory/internal/session"
	"github.com/jcpao/court-directory/internal/view"
)

type fakeSource struct {
	rows      []model.Employee
	err       error
	refreshed int
}

func (f *fakeSource) Load(context.Context) ([]model.Employee, error) { return f.rows, f.err }
func (f *fakeSource) Refresh(context.Context) error {
	f.refreshed++
	return nil
}

type countingActivity struct{ emails []string }

func (a *countingActivity) LogActivity(_ context.Context, email string) error {
	a.emails = append(a.emails, email)
	return nil
}

type fixture struct {
	e        *echo.Echo
	store    *session.Store
	src      *fakeSource
	activity *countingActivity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r, err := view.NewRenderer()
	require.NoError(t, err)

	f := &fixture{
		store: session.NewStore("test-secret", time.Hour, false),
		src: &fakeSource{rows: []model.Employee{
			{FullName: "Ada Lovelace", FirstName: "Ada", LastName: "Lovelace", Position: "APA",
				AssignedUnit: []string{"GCU"}, OfficeLocation: "Dt-11", WorkEmail: "ada@jacksongov.org", WorkPhone: "8168815555"},
			{FullName: "Grace Hopper", FirstName: "Grace", LastName: "Hopper", Position: "TTL",
				AssignedUnit: []string{"SVU"}, OfficeLocation: "Indy", WorkEmail: "grace@jacksongov.org", WorkPhone: "8165550000"},
		}},
		activity: &countingActivity{},
	}
	gate := service.NewGate("open-sesame", []string{"jacksongov.org", "courts.mo.gov"}, f.activity, zap.NewNop())

	e := echo.New()
	e.Renderer = r
	router.RegisterRoutes(e)
	router.RegisterPortal(e, handler.NewPortalHandler(gate, f.store, zap.NewNop()), f.store)
	router.RegisterDirectory(e, handler.NewDirectoryHandler(f.src, photo.Fallback{}, f.store, zap.NewNop()), f.store)
	f.e = e
	return f
}

func (f *fixture) do(t *testing.T, method, path string, form url.Values, st *session.State) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if st != nil {
		raw, err := f.store.Encode(*st)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: raw})
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

// state decodes the session cookie written by the response.
func (f *fixture) state(t *testing.T, rec *httptest.ResponseRecorder) session.State {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			st, err := f.store.Decode(ck.Value)
			require.NoError(t, err)
			return st
		}
	}
	t.Fatalf("no %s cookie in response", session.CookieName)
	return session.State{}
}

func verified() *session.State {
	st := session.New().Verify("ada@jacksongov.org")
	return &st
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAssetsServed(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/assets/logo.svg", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestIndexShowsForm(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/verify"`)
}

func TestIndexRedirectsVerified(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/", nil, verified())
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/directory", rec.Header().Get(echo.HeaderLocation))
}

func TestVerify(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		code     string
		location string
		verified bool
		logged   int
	}{
		{"allowed", "  Ada@JacksonGov.org ", "open-sesame", "/directory", true, 1},
		{"second domain", "clerk@courts.mo.gov", "open-sesame", "/directory", true, 1},
		{"wrong domain", "ada@gmail.com", "open-sesame", "/", false, 0},
		{"wrong code", "ada@jacksongov.org", "Open-Sesame", "/", false, 0},
		{"empty code", "ada@jacksongov.org", "", "/", false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			rec := f.do(t, http.MethodPost, "/verify", url.Values{"email": {tc.email}, "code": {tc.code}}, nil)

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get(echo.HeaderLocation))
			st := f.state(t, rec)
			assert.Equal(t, tc.verified, st.Verified)
			assert.Len(t, f.activity.emails, tc.logged)
			require.NotEmpty(t, st.Notices)
			if tc.verified {
				assert.Equal(t, session.LevelSuccess, st.Notices[len(st.Notices)-1].Level)
			} else {
				assert.Equal(t, service.MsgVerifyFailed, st.Notices[0].Text)
			}
		})
	}
}

func TestFailedVerifyNoticeShownOnce(t *testing.T) {
	f := newFixture(t)
	st := session.New().Notify(session.LevelError, service.MsgVerifyFailed)

	rec := f.do(t, http.MethodGet, "/", nil, &st)
	assert.Contains(t, rec.Body.String(), "Failed to verify user")
	assert.Empty(t, f.state(t, rec).Notices)
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/logout", nil, verified())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			cleared = ck.MaxAge < 0 && ck.Value == ""
		}
	}
	assert.True(t, cleared)
}

func TestDirectoryRequiresVerification(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/directory", "/directory/filters", "/directory/reset", "/directory/refresh"} {
		method := http.MethodPost
		if path == "/directory" {
			method = http.MethodGet
		}
		rec := f.do(t, method, path, nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation), path)
	}
	assert.Zero(t, f.src.refreshed)
}

func TestDirectoryShowsCards(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/directory", nil, verified())

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "Grace Hopper")
	assert.Contains(t, body, "Assistant Prosecuting Attorney - GCU")
	assert.Contains(t, body, "816-881-5555")
	assert.Contains(t, body, "(ext. 5555)")
	assert.Contains(t, body, photo.DefaultLogo)
}

func TestDirectoryAppliesSessionFilters(t *testing.T) {
	f := newFixture(t)
	st := verified().WithFilters(directory.Filters{Position: "TTL"})

	body := f.do(t, http.MethodGet, "/directory", nil, &st).Body.String()
	assert.Contains(t, body, "Grace Hopper")
	assert.NotContains(t, body, "Ada Lovelace")
}

func TestDirectoryNoMatches(t *testing.T) {
	f := newFixture(t)
	st := verified().WithFilters(directory.Filters{Search: "nobody"})

	body := f.do(t, http.MethodGet, "/directory", nil, &st).Body.String()
	assert.Contains(t, body, "No attorneys found matching the search criteria.")
}

func TestDirectoryContactView(t *testing.T) {
	f := newFixture(t)
	st := verified().WithFilters(directory.Filters{View: directory.ViewContacts})

	body := f.do(t, http.MethodGet, "/directory", nil, &st).Body.String()
	assert.Contains(t, body, `<table class="contacts">`)
	assert.Less(t, strings.Index(body, "Grace Hopper"), strings.Index(body, "Ada Lovelace"))
	assert.Contains(t, body, "816-555-0000")
}

func TestDirectoryLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"no pool", fmt.Errorf("load: %w", repository.ErrNoPool), database.RemediationMessage},
		{"query failed", errors.New("relation does not exist"), handler.MsgLoadFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.src.rows, f.src.err = nil, tc.err

			rec := f.do(t, http.MethodGet, "/directory", nil, verified())
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
			assert.Contains(t, rec.Body.String(), "No attorneys found")
		})
	}
}

func TestUpdateFilters(t *testing.T) {
	f := newFixture(t)
	form := url.Values{"position": {"APA"}, "unit": {"GCU"}, "location": {""}, "q": {" ada "}, "view": {"contacts"}}
	rec := f.do(t, http.MethodPost, "/directory/filters", form, verified())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/directory", rec.Header().Get(echo.HeaderLocation))
	got := f.state(t, rec).Filters
	assert.Equal(t, directory.Filters{Position: "APA", Unit: "GCU", Location: directory.All, Search: " ada ", View: directory.ViewContacts}, got)
}

func TestResetKeepsView(t *testing.T) {
	f := newFixture(t)
	st := verified().WithFilters(directory.Filters{Position: "APA", Search: "x", View: directory.ViewContacts})

	rec := f.do(t, http.MethodPost, "/directory/reset", nil, &st)
	want := directory.DefaultFilters()
	want.View = directory.ViewContacts
	assert.Equal(t, want, f.state(t, rec).Filters)
	assert.True(t, f.state(t, rec).Verified)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/directory/refresh", nil, verified())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, f.src.refreshed)
	st := f.state(t, rec)
	require.Len(t, st.Notices, 1)
	assert.Equal(t, handler.MsgRefreshed, st.Notices[0].Text)
}
