package rate

import (
	"context"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
)

// SubmissionGuard adapts the Redis-backed Limiter to the classifier's
// synchronous rate-check capability. Store failures fail open: a
// broken Redis must not block every submission on the platform.
type SubmissionGuard struct {
	limiter *Limiter
}

func NewSubmissionGuard(limiter *Limiter) *SubmissionGuard {
	return &SubmissionGuard{limiter: limiter}
}

func (g *SubmissionGuard) Allow(authorID string, contentType enums.ContentType) bool {
	if g.limiter == nil {
		return true
	}
	_, allowed, err := g.limiter.AllowSubmission(context.Background(), authorID, contentType)
	if err != nil {
		return true
	}
	return allowed
}
