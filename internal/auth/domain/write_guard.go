package domain

import (
	"fmt"
	"time"

	"github.com/onionboard/backend/internal/errors"
)

// IsPermitted reports whether an action may run at now given the instant of the
// same user's previous action of the same kind. A nil last means no prior
// action. An elapsed time of exactly minInterval is rejected.
func IsPermitted(last *time.Time, minInterval time.Duration, now time.Time) bool {
	if last == nil {
		return true
	}
	return now.Sub(*last) > minInterval
}

// WritePolicy maps each ActionKind to its minimum interval.
type WritePolicy map[ActionKind]time.Duration

// DefaultWritePolicy returns the built-in intervals.
func DefaultWritePolicy() WritePolicy {
	return WritePolicy{
		ArticleWrite: DefaultArticleWriteInterval,
		ArticleEdit:  DefaultArticleEditInterval,
		CommentWrite: DefaultCommentWriteInterval,
		CommentEdit:  DefaultCommentEditInterval,
	}
}

// Interval returns the configured interval for kind.
func (p WritePolicy) Interval(kind ActionKind) (time.Duration, error) {
	interval, ok := p[kind]
	if !ok {
		return 0, errors.Wrap(ErrUnknownActionKind, string(kind))
	}
	return interval, nil
}

// RateLimitedError is returned when a write arrives before its interval elapsed.
// It unwraps to errors.ErrRateLimited and tells the caller how long to wait.
type RateLimitedError struct {
	Kind ActionKind
	Wait time.Duration
}

// Error implements error.
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s rejected, retry in %s", e.Kind, e.Wait.Round(time.Second))
}

// Unwrap exposes the sentinel for errors.Is.
func (e *RateLimitedError) Unwrap() error {
	return errors.ErrRateLimited
}

// RetryAfter returns the remaining wait.
func (e *RateLimitedError) RetryAfter() time.Duration {
	return e.Wait
}

// NextPermittedAt returns the first instant at which an action following last is permitted.
func NextPermittedAt(last time.Time, minInterval time.Duration) time.Time {
	// Strictly greater than minInterval; one nanosecond past the boundary.
	return last.Add(minInterval + time.Nanosecond)
}
