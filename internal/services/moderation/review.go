package moderation

import (
	"errors"
	"time"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
)

var ErrReviewItemNotFound = errors.New("review item not found")

// ReviewItem is one flagged submission waiting for a human moderator.
// It snapshots the verdict's reasons and severity at classification
// time; re-running the classifier later may give different results if
// the word lists changed.
type ReviewItem struct {
	ID          string                 `json:"id"`
	ContentID   string                 `json:"content_id"`
	ContentType enums.ContentType      `json:"content_type"`
	CityID      string                 `json:"city_id"`
	AuthorID    string                 `json:"author_id"`
	Reasons     []string               `json:"reasons"`
	Severity    enums.Severity         `json:"severity"`
	Status      enums.ModerationStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}

func (i ReviewItem) TenantID() string {
	return i.CityID
}
