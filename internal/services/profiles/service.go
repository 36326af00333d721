package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
	"github.com/posdenous/kinza-backend/internal/services/moderation"
)

var ErrRejected = errors.New("bio rejected")

type BioStore interface {
	SaveBio(ctx context.Context, userID, cityID, bio string) error
}

type ReviewStore interface {
	Enqueue(ctx context.Context, item moderation.ReviewItem) error
}

// Service moderates profile bios before they are saved. A bio is
// always scoped to the author's home city.
type Service struct {
	store      BioStore
	classifier *moderation.Classifier
	reviews    ReviewStore
	now        func() time.Time
}

func NewService(store BioStore, classifier *moderation.Classifier, reviews ReviewStore) *Service {
	return &Service{
		store:      store,
		classifier: classifier,
		reviews:    reviews,
		now:        time.Now,
	}
}

func (s *Service) UpdateBio(ctx context.Context, actor model.User, bio string) (moderation.Verdict, error) {
	if s.store == nil || s.classifier == nil {
		return moderation.Verdict{}, fmt.Errorf("profile service dependencies are not configured")
	}

	verdict := s.classifier.Moderate(moderation.Input{
		Text:   bio,
		Author: actor,
		CityID: actor.CityID,
		Type:   enums.ContentTypeProfileBio,
	})

	if verdict.Flagged && s.reviews != nil {
		item := moderation.ReviewItem{
			ID:          uuid.NewString(),
			ContentID:   actor.ID,
			ContentType: enums.ContentTypeProfileBio,
			CityID:      actor.CityID,
			AuthorID:    actor.ID,
			Reasons:     verdict.Reasons,
			Severity:    verdict.Severity,
			Status:      enums.ModerationStatusPending,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.reviews.Enqueue(ctx, item); err != nil {
			return verdict, fmt.Errorf("enqueue review item: %w", err)
		}
	}
	if !verdict.Approved {
		return verdict, ErrRejected
	}

	if err := s.store.SaveBio(ctx, actor.ID, actor.CityID, bio); err != nil {
		return verdict, fmt.Errorf("save bio: %w", err)
	}
	return verdict, nil
}
