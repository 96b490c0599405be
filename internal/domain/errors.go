package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoConnection          = errors.New("no upstream connection for user")
	ErrTokenUnavailable      = errors.New("token expired and no refresh token available")
	ErrConnectionInvalidated = errors.New("connection invalidated, user must reauthorize")
	ErrAuthExpired           = errors.New("upstream rejected token after refresh")
	ErrRunInProgress         = errors.New("sync run already in progress")
)

// TransientRefreshError is a token refresh failure that may succeed on a later attempt.
type TransientRefreshError struct {
	Err error
}

func (e *TransientRefreshError) Error() string {
	return fmt.Sprintf("refresh token: %v", e.Err)
}

func (e *TransientRefreshError) Unwrap() error {
	return e.Err
}

// UpstreamError is a failed upstream API call. Status is 0 when no response
// was received.
type UpstreamError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the same request later may succeed.
func (e *UpstreamError) Temporary() bool {
	return e.Status == 0 || e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// WriterError wraps a failed batch write into the track store.
type WriterError struct {
	Err error
}

func (e *WriterError) Error() string {
	return fmt.Sprintf("write tracks: %v", e.Err)
}

func (e *WriterError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is an upstream 401.
func IsUnauthorized(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.Status == http.StatusUnauthorized
}

// IsInterruption reports whether err leaves a run resumable rather than failed.
func IsInterruption(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var refreshErr *TransientRefreshError
	if errors.As(err, &refreshErr) {
		return true
	}
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.Temporary()
}
