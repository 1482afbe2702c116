// Package resilience provides retry and transient-error classification for
// external registry calls.
package resilience

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"
)

// Unavailable wraps an error from an external collaborator that should be
// treated as "no evidence from this source" rather than a record failure.
type Unavailable struct {
	Source string
	Err    error
}

func (e *Unavailable) Error() string {
	return e.Source + " unavailable: " + e.Err.Error()
}

func (e *Unavailable) Unwrap() error {
	return e.Err
}

// NewUnavailable marks an error as a non-fatal source outage.
func NewUnavailable(source string, err error) *Unavailable {
	return &Unavailable{Source: source, Err: err}
}

// IsUnavailable reports whether the error chain contains an Unavailable
// marker or a timeout/cancellation, meaning the lookup should degrade to
// missing evidence.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var u *Unavailable
	if errors.As(err, &u) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	return IsTransient(err)
}

// IsTransient reports whether the error looks like a retryable network-level
// failure (timeouts, resets, DNS).
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"connection reset by peer",
		"broken pipe",
		"temporary failure in name resolution",
		"no such host",
		"tls handshake timeout",
		"i/o timeout",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
