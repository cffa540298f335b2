package usecase

import "errors"

// ErrUnusableRecord marks a raw record whose name and email both resolved
// empty. Callers drop the candidate and count it as skipped.
var ErrUnusableRecord = errors.New("record has neither name nor email")

// ErrNotConfigured is returned by external pollers when credentials are
// absent or still placeholder values. Scheduled polls treat it as a soft
// "zero new leads" outcome, never a crash.
var ErrNotConfigured = errors.New("external API not configured")

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ExternalAPIError wraps a failed third-party call (Meta, Google, URL fetch).
type ExternalAPIError struct {
	Service string
	Err     error
}

func (e *ExternalAPIError) Error() string {
	return e.Service + " API error: " + e.Err.Error()
}

func (e *ExternalAPIError) Unwrap() error {
	return e.Err
}
