package repository

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// RetryPolicy is a bounded retry: fn runs at most MaxAttempts times and
// is repeated only while Retryable reports the last error as transient.
// A zero MaxAttempts behaves like 1.
type RetryPolicy struct {
	MaxAttempts int
	Retryable   func(error) bool
}

// StaleConnPolicy retries once when the first attempt hit a dead connection.
var StaleConnPolicy = RetryPolicy{MaxAttempts: 2, Retryable: IsStaleConn}

// Do runs fn under the policy and returns the error of the last attempt.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if p.Retryable == nil || !p.Retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

// IsStaleConn reports whether err means the connection itself was bad
// (closed by the server, reset, timed out mid-flight) rather than the
// statement being rejected.
func IsStaleConn(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgconn.SafeToRetry(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08 connection exceptions, 57P01..57P03 server shutdown
		return strings.HasPrefix(pgErr.Code, "08") ||
			pgErr.Code == "57P01" || pgErr.Code == "57P02" || pgErr.Code == "57P03"
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "conn closed") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "connection reset")
}
