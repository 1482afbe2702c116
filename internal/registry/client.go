// Package registry defines the external identity-registry collaborators the
// verification engine consults: the national NPI registry and the state
// licensing boards. The engine never owns these — implementations are
// injected at construction.
package registry

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/medguard-ai/verify-cli/internal/resilience"
)

// Record is one authoritative registry entry for an NPI.
type Record struct {
	NPI          string `json:"npi"`
	ProviderName string `json:"provider_name"`
	Taxonomy     string `json:"taxonomy"`
	Status       string `json:"status,omitempty"`
}

// LicenseRecord is one state-board verification result.
type LicenseRecord struct {
	LicenseNumber string `json:"license_number"`
	State         string `json:"state"`
	Status        string `json:"status"`
	Expiration    string `json:"expiration,omitempty"`
}

// Client looks up an identifier in the national registry. The boolean
// reports whether the identifier exists; an error means the registry could
// not be reached and the caller should degrade to missing evidence.
type Client interface {
	Lookup(ctx context.Context, npi string) (*Record, bool, error)
}

// BoardClient verifies a license with the issuing state's board.
type BoardClient interface {
	VerifyLicense(ctx context.Context, licenseNumber, state string) (*LicenseRecord, bool, error)
}

// Limited wraps a Client with a token-bucket limiter, a per-call timeout,
// and transient-error retries. Successive registry calls are paced by the
// limiter rather than fixed sleeps, so concurrent records share one budget.
type Limited struct {
	inner   Client
	limiter *rate.Limiter
	timeout time.Duration
	retry   resilience.RetryConfig
}

// NewLimited builds a rate-limited registry client. A non-positive timeout
// defaults to 5s; a non-positive rate disables pacing.
func NewLimited(inner Client, perSecond float64, burst int, timeout time.Duration) *Limited {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	var limiter *rate.Limiter
	if perSecond > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return &Limited{
		inner:   inner,
		limiter: limiter,
		timeout: timeout,
		retry:   resilience.DefaultRetryConfig(),
	}
}

type lookupResult struct {
	rec   *Record
	found bool
}

// Lookup paces, bounds, and retries the wrapped lookup. Timeouts and
// transport failures come back wrapped as Unavailable.
func (l *Limited) Lookup(ctx context.Context, npi string) (*Record, bool, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, false, resilience.NewUnavailable("npi_registry", err)
		}
	}

	res, err := resilience.Retry(ctx, l.retry, func(ctx context.Context) (lookupResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, l.timeout)
		defer cancel()
		rec, found, err := l.inner.Lookup(callCtx, npi)
		if err != nil {
			return lookupResult{}, err
		}
		return lookupResult{rec: rec, found: found}, nil
	})
	if err != nil {
		return nil, false, resilience.NewUnavailable("npi_registry", err)
	}
	return res.rec, res.found, nil
}
