package profiles

import (
	"context"
	"errors"
	"testing"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
	"github.com/posdenous/kinza-backend/internal/services/access"
	"github.com/posdenous/kinza-backend/internal/services/moderation"
)

type fakeBioStore struct {
	userID string
	cityID string
	bio    string
	calls  int
}

func (f *fakeBioStore) SaveBio(_ context.Context, userID, cityID, bio string) error {
	f.userID = userID
	f.cityID = cityID
	f.bio = bio
	f.calls++
	return nil
}

type fakeReviewStore struct {
	items []moderation.ReviewItem
}

func (f *fakeReviewStore) Enqueue(_ context.Context, item moderation.ReviewItem) error {
	f.items = append(f.items, item)
	return nil
}

func newFixture() (*Service, *fakeBioStore, *fakeReviewStore) {
	tenants := access.NewService([]model.City{{ID: "berlin"}, {ID: "munich"}})
	classifier := moderation.NewClassifier(moderation.Config{
		Profanity: []string{"damn"},
	}, tenants)

	store := &fakeBioStore{}
	reviews := &fakeReviewStore{}
	return NewService(store, classifier, reviews), store, reviews
}

func TestUpdateBioSavesCleanText(t *testing.T) {
	svc, store, reviews := newFixture()
	actor := model.User{ID: "u1", CityID: "berlin", Role: enums.RoleParent}

	verdict, err := svc.UpdateBio(context.Background(), actor, "Parent of two, always up for playground meetups.")
	if err != nil {
		t.Fatalf("update bio: %v", err)
	}
	if !verdict.Approved {
		t.Fatalf("clean bio rejected: %v", verdict.Reasons)
	}
	if store.calls != 1 || store.userID != "u1" || store.cityID != "berlin" {
		t.Fatalf("unexpected store call: %+v", store)
	}
	if len(reviews.items) != 0 {
		t.Fatalf("clean bio must not be queued for review")
	}
}

func TestUpdateBioRejectsOverLongText(t *testing.T) {
	svc, store, _ := newFixture()
	actor := model.User{ID: "u1", CityID: "berlin", Role: enums.RoleParent}

	long := make([]byte, 301)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.UpdateBio(context.Background(), actor, string(long))
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("rejected bio must not be saved")
	}
}

func TestUpdateBioRejectsProfanityAndQueuesReview(t *testing.T) {
	svc, store, reviews := newFixture()
	actor := model.User{ID: "u1", CityID: "berlin", Role: enums.RoleParent}

	verdict, err := svc.UpdateBio(context.Background(), actor, "damn proud parent of three")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	if verdict.Approved || !verdict.Flagged {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	if len(reviews.items) != 1 {
		t.Fatalf("flagged bio must be queued for review, got %d items", len(reviews.items))
	}
	if reviews.items[0].ContentType != enums.ContentTypeProfileBio {
		t.Fatalf("unexpected review content type: %s", reviews.items[0].ContentType)
	}
	if store.calls != 0 {
		t.Fatalf("rejected bio must not be saved")
	}
}
