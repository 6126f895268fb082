package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	q "github.com/jcpao/court-directory/internal/queue"
	"github.com/jcpao/court-directory/internal/session"
	"github.com/jcpao/court-directory/internal/utils"
)

// ErrVerificationFailed is returned for a wrong domain or a wrong code.
// The two cases are indistinguishable to the visitor.
var ErrVerificationFailed = errors.New("verification failed")

// Visitor-facing messages.
const (
	MsgVerifyFailed   = "Failed to verify user. Please try again with an authorized email and security code."
	MsgActivityFailed = "Your visit could not be recorded. You can keep using the directory."
)

// ActivityLogger records a successful verification.
type ActivityLogger interface {
	LogActivity(ctx context.Context, email string) error
}

// ActivityPublisher broadcasts a successful verification.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, ev q.ActivityEvent) error
}

// Gate checks a submitted email against the allow-listed domains and a
// submitted code against the shared secret.  There is no lockout and no
// attempt counting: it is a shared-secret gate, not per-user
// authentication.  See EmailAllowed for the exact domain rule.
type Gate struct {
	code       string
	domains    []string
	activity   ActivityLogger
	publisher  ActivityPublisher
	log        *zap.Logger
	logTimeout time.Duration
	now        func() time.Time
}

// NewGate builds a gate.  domains are bare domains ("jacksongov.org");
// activity may be nil.
func NewGate(code string, domains []string, activity ActivityLogger, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	suffixes := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d != "" {
			suffixes = append(suffixes, "@"+d)
		}
	}
	return &Gate{
		code:       code,
		domains:    suffixes,
		activity:   activity,
		log:        log,
		logTimeout: 5 * time.Second,
		now:        time.Now,
	}
}

// WithPublisher attaches an event publisher.
func (g *Gate) WithPublisher(p ActivityPublisher) *Gate {
	g.publisher = p
	return g
}

// EmailAllowed reports whether email ends with an allow-listed domain.
// The match is stricter than a plain suffix test: it ignores case and
// surrounding spaces, and a bare "@jacksongov.org" with no local part is
// rejected.
func (g *Gate) EmailAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, suffix := range g.domains {
		if strings.HasSuffix(email, suffix) && len(email) > len(suffix) {
			return true
		}
	}
	return false
}

// Evaluate runs the UNVERIFIED → VERIFIED transition.  On success the
// activity log is written and an event published; neither can fail the
// transition.  On failure st is returned unchanged with
// ErrVerificationFailed.
func (g *Gate) Evaluate(ctx context.Context, st session.State, email, code, remoteAddr string) (session.State, error) {
	if st.Verified {
		return st, nil
	}
	email = strings.TrimSpace(email)
	if !g.EmailAllowed(email) || !utils.CodeMatches(g.code, code) {
		g.log.Info("verification rejected", zap.String("session", st.ID), zap.Bool("domain_ok", g.EmailAllowed(email)))
		return st, ErrVerificationFailed
	}

	next := st.Verify(email)
	if err := g.recordActivity(ctx, email); err != nil {
		g.log.Warn("activity log failed", zap.String("email", email), zap.Error(err))
		next = next.Notify(session.LevelWarning, MsgActivityFailed)
	}
	g.publish(ctx, next, remoteAddr)

	g.log.Info("visitor verified", zap.String("email", email), zap.String("session", next.ID))
	return next.Notify(session.LevelSuccess, "Verification successful: "+email), nil
}

func (g *Gate) recordActivity(ctx context.Context, email string) error {
	if g.activity == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, g.logTimeout)
	defer cancel()
	return g.activity.LogActivity(ctx, email)
}

func (g *Gate) publish(ctx context.Context, st session.State, remoteAddr string) {
	if g.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	ev := q.ActivityEvent{
		ID:         uuid.NewString(),
		Kind:       q.KindLogin,
		Email:      st.Email,
		SessionID:  st.ID,
		RemoteAddr: remoteAddr,
		OccurredAt: g.now().UTC().Format(time.RFC3339),
	}
	if err := g.publisher.PublishActivity(ctx, ev); err != nil {
		g.log.Warn("activity event not published", zap.Error(err))
	}
}
