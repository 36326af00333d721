package dto

import (
	"time"

	"github.com/posdenous/kinza-backend/internal/services/moderation"
)

type ModerateRequest struct {
	Text        string `json:"text"`
	ContentType string `json:"content_type"`
	CityID      string `json:"city_id,omitempty"`
}

type VerdictResponse struct {
	Approved            bool     `json:"approved"`
	Flagged             bool     `json:"flagged"`
	Reasons             []string `json:"reasons,omitempty"`
	Severity            string   `json:"severity"`
	RequiresHumanReview bool     `json:"requires_human_review"`
	SuggestedActions    []string `json:"suggested_actions,omitempty"`
}

func VerdictFromModel(v moderation.Verdict) VerdictResponse {
	return VerdictResponse{
		Approved:            v.Approved,
		Flagged:             v.Flagged,
		Reasons:             v.Reasons,
		Severity:            v.SeverityLabel,
		RequiresHumanReview: v.RequiresHumanReview,
		SuggestedActions:    v.SuggestedActions,
	}
}

type ReviewItemResponse struct {
	ID          string    `json:"id"`
	ContentID   string    `json:"content_id"`
	ContentType string    `json:"content_type"`
	CityID      string    `json:"city_id"`
	AuthorID    string    `json:"author_id"`
	Reasons     []string  `json:"reasons"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func ReviewItemFromModel(item moderation.ReviewItem) ReviewItemResponse {
	return ReviewItemResponse{
		ID:          item.ID,
		ContentID:   item.ContentID,
		ContentType: item.ContentType.String(),
		CityID:      item.CityID,
		AuthorID:    item.AuthorID,
		Reasons:     item.Reasons,
		Severity:    item.Severity.String(),
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
	}
}

type ReviewQueueResponse struct {
	Items []ReviewItemResponse `json:"items"`
}

type ResolveReviewRequest struct {
	Status string `json:"status"`
}

type ResolveReviewResponse struct {
	OK bool `json:"ok"`
}
