package rate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
)

const (
	submissionMinuteWindow = time.Minute
	submission10SecWindow  = 10 * time.Second
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

// Limiter bounds how fast one author can submit content of a given
// type, with a short burst window and a sustained per-minute window.
type Limiter struct {
	store     WindowStore
	perMinute int
	per10Sec  int
}

func NewLimiter(store WindowStore, perMinute, per10Sec int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}
	if per10Sec < 0 {
		per10Sec = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
		per10Sec:  per10Sec,
	}
}

// AllowSubmission counts the submission against both windows and
// reports how long the author must wait if either is exhausted.
func (l *Limiter) AllowSubmission(ctx context.Context, authorID string, contentType enums.ContentType) (int64, bool, error) {
	if strings.TrimSpace(authorID) == "" {
		return 0, false, fmt.Errorf("author id is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perMinute > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, minuteKey(authorID, contentType), submissionMinuteWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perMinute) {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.per10Sec > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, tenSecKey(authorID, contentType), submission10SecWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.per10Sec) {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

// RetryAfter inspects the windows without consuming a slot.
func (l *Limiter) RetryAfter(ctx context.Context, authorID string, contentType enums.ContentType) (int64, error) {
	if strings.TrimSpace(authorID) == "" {
		return 0, fmt.Errorf("author id is required")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perMinute > 0 {
		count, ttl, err := l.store.WindowState(ctx, minuteKey(authorID, contentType))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.perMinute) {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.per10Sec > 0 {
		count, ttl, err := l.store.WindowState(ctx, tenSecKey(authorID, contentType))
		if err != nil {
			return 0, err
		}
		if count >= int64(l.per10Sec) {
			retryAfterSec = max(retryAfterSec, ceilSeconds(ttl))
		}
	}

	return retryAfterSec, nil
}

func minuteKey(authorID string, contentType enums.ContentType) string {
	return "rate:submit:min:" + contentType.String() + ":" + authorID
}

func tenSecKey(authorID string, contentType enums.ContentType) string {
	return "rate:submit:10s:" + contentType.String() + ":" + authorID
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
