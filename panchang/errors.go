/*
errors.go - Error taxonomy shared by the derivation core and its callers

PURPOSE:
  All failure surfaces of the panchang engine originate at the boundary to
  external collaborators (ephemeris and festival providers); the element
  calculators themselves are total over finite input. This file centralizes
  the sentinel and structured errors so that the calendar facade and the
  HTTP layer can classify failures with errors.Is/As.

ERROR CATEGORIES:
  1. Input errors    - non-finite longitudes reaching the calculator boundary
  2. Upstream errors - an ephemeris or festival provider call failed
  3. Cache errors    - defensive; a cache slot disagreeing with its key

USAGE:
  var perr *panchang.ProviderError
  if errors.As(err, &perr) {
      log.Warn("provider failed", "provider", perr.Provider, "date", perr.Date)
  }

SEE ALSO:
  - calendar/facade.go: wraps per-day failures before they reach callers
  - api/handlers.go: maps these to HTTP status codes
*/
package panchang

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNonFiniteLongitude is returned when a NaN or infinite longitude
	// reaches the calculator boundary. Providers returning such values are
	// broken; the value is rejected rather than clamped.
	ErrNonFiniteLongitude = errors.New("non-finite ecliptic longitude")

	// ErrUpstreamUnavailable is the class of all provider failures
	// (timeout, network, malformed payload). The engine does not retry;
	// retry policy belongs to the provider or the caller.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

	// ErrCacheInconsistent should never occur: a cached view whose stored
	// key disagrees with its data. Treated as a bug and failed closed
	// (the slot is dropped and the view recomputed).
	ErrCacheInconsistent = errors.New("cache slot inconsistent with key")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidLongitudeError reports the offending non-finite value.
type InvalidLongitudeError struct {
	Value float64
}

func (e *InvalidLongitudeError) Error() string {
	return fmt.Sprintf("non-finite ecliptic longitude: %v", e.Value)
}

func (e *InvalidLongitudeError) Unwrap() error { return ErrNonFiniteLongitude }

// ProviderError identifies which external call failed and for which date,
// so a month-level failure can name the single day that sank it.
type ProviderError struct {
	Provider string    // "longitude", "riseset", "festival"
	Date     time.Time // The civil date being computed, midnight local
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider failed for %s: %v",
		e.Provider, e.Date.Format("2006-01-02"), e.Err)
}

// Unwrap exposes both the upstream classification and the underlying
// cause, so errors.Is works against either.
func (e *ProviderError) Unwrap() []error { return []error{ErrUpstreamUnavailable, e.Err} }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsUpstream returns true if the error was caused by an external provider.
func IsUpstream(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNonFiniteLongitude)
}
