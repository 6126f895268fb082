package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const insertActivitySQL = "INSERT INTO courts_log (user_email) VALUES ($1)"

// ActivityRepo appends rows to the activity log.  There is no update or
// delete path.
type ActivityRepo struct {
	pool   Pool
	policy RetryPolicy
	log    *zap.Logger
}

// NewActivityRepo retries stale connections once; pool may be nil.
func NewActivityRepo(pool Pool, log *zap.Logger) *ActivityRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityRepo{pool: pool, policy: StaleConnPolicy, log: log}
}

// WithPolicy returns a copy of the repo that retries under p.
func (r *ActivityRepo) WithPolicy(p RetryPolicy) *ActivityRepo {
	cp := *r
	cp.policy = p
	return &cp
}

// LogActivity records that email passed the verification gate.  A stale
// connection is retried once on a fresh checkout; the final error is
// returned and callers treat it as lost telemetry.
func (r *ActivityRepo) LogActivity(ctx context.Context, email string) error {
	if r.pool == nil {
		return ErrNoPool
	}
	email = strings.TrimSpace(email)
	attempt := 0
	err := r.policy.Do(ctx, func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			r.log.Info("reconnecting to log activity", zap.Int("attempt", attempt))
		}
		_, err := r.pool.Exec(ctx, insertActivitySQL, email)
		return err
	})
	if err != nil {
		return fmt.Errorf("log activity: %w", err)
	}
	return nil
}
