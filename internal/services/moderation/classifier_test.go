package moderation

import (
	"reflect"
	"strings"
	"testing"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
	"github.com/posdenous/kinza-backend/internal/services/access"
)

func newTestClassifier() *Classifier {
	tenants := access.NewService([]model.City{
		{ID: "berlin"}, {ID: "munich"}, {ID: "hamburg"},
	})
	return NewClassifier(Config{
		PlatformDomain:      "kinza.app",
		Profanity:           []string{"damn", "crap"},
		SpamPhrases:         []string{"buy now", "click here", "free money", "limited offer"},
		ViolenceTerms:       []string{"kill", "weapon", "attack"},
		AdultTerms:          []string{"explicit"},
		DiscriminationTerms: []string{"bigot"},
	}, tenants)
}

func berlinParent() model.User {
	return model.User{ID: "u1", CityID: "berlin", Role: enums.RoleParent}
}

func TestModerateApprovesCleanComment(t *testing.T) {
	classifier := newTestClassifier()

	verdict := classifier.Moderate(Input{
		Text:   "This is a great event for kids!",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})

	if !verdict.Approved {
		t.Fatalf("clean comment rejected: %v", verdict.Reasons)
	}
	if verdict.Flagged {
		t.Fatalf("clean comment flagged")
	}
	if verdict.Severity != enums.SeverityLow {
		t.Fatalf("unexpected severity: got=%s want=low", verdict.Severity)
	}
}

func TestModerateRejectsSpamShouting(t *testing.T) {
	classifier := newTestClassifier()

	verdict := classifier.Moderate(Input{
		Text:   "BUY NOW BUY NOW BUY NOW CLICK HERE FOR FREE MONEY!!!",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})

	if verdict.Approved {
		t.Fatalf("spam comment approved")
	}
	if !verdict.RequiresHumanReview {
		t.Fatalf("spam must require human review")
	}
	if verdict.Severity != enums.SeverityHigh {
		t.Fatalf("unexpected severity: got=%s want=high", verdict.Severity)
	}
	if len(verdict.Reasons) == 0 || !strings.Contains(verdict.Reasons[0], "Spam indicators detected") {
		t.Fatalf("missing spam reason: %v", verdict.Reasons)
	}
	if !strings.Contains(verdict.Reasons[0], "promotional phrases") || !strings.Contains(verdict.Reasons[0], "excessive capitalization") {
		t.Fatalf("expected both spam signals in reason: %q", verdict.Reasons[0])
	}
}

func TestModerateMissingFieldsShortCircuits(t *testing.T) {
	classifier := newTestClassifier()

	verdict := classifier.Moderate(Input{
		Text:   "   ",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})

	if verdict.Approved {
		t.Fatalf("blank text approved")
	}
	want := []string{"Missing required content fields"}
	if !reflect.DeepEqual(verdict.Reasons, want) {
		t.Fatalf("expected short-circuit reasons %v, got %v", want, verdict.Reasons)
	}
	if verdict.Severity != enums.SeverityHigh {
		t.Fatalf("unexpected severity: got=%s want=high", verdict.Severity)
	}
}

func TestModerateProfanityReportsEveryToken(t *testing.T) {
	classifier := newTestClassifier()

	verdict := classifier.Moderate(Input{
		Text:   "Damn this crap venue, damn it",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})

	if verdict.Approved {
		t.Fatalf("profane comment approved")
	}
	if verdict.Reasons[0] != "Profanity detected: damn, crap, damn" {
		t.Fatalf("unexpected profanity reason: %q", verdict.Reasons[0])
	}
	if verdict.Severity != enums.SeverityMedium {
		t.Fatalf("unexpected severity: got=%s want=medium", verdict.Severity)
	}
	if !reflect.DeepEqual(verdict.SuggestedActions, []string{"Filter profanity"}) {
		t.Fatalf("unexpected actions: %v", verdict.SuggestedActions)
	}
}

func TestModerateCriticalCategoryAlwaysWins(t *testing.T) {
	classifier := newTestClassifier()

	// Profanity (medium) and spam (high) are both present; the violence
	// keyword must still escalate the verdict to critical.
	verdict := classifier.Moderate(Input{
		Text:   "damn BUY NOW BUY NOW CLICK HERE THIS IS A WEAPON attack plan",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})

	if verdict.Severity != enums.SeverityCritical {
		t.Fatalf("unexpected severity: got=%s want=critical", verdict.Severity)
	}
	if !verdict.RequiresHumanReview || !verdict.Flagged {
		t.Fatalf("critical verdict must be flagged for review: %+v", verdict)
	}

	wantActions := []string{"Filter profanity", "Flag for human review", "Block content", "Review user account"}
	if !reflect.DeepEqual(verdict.SuggestedActions, wantActions) {
		t.Fatalf("unexpected actions: got=%v want=%v", verdict.SuggestedActions, wantActions)
	}
}

func TestModerateReasonsKeepCheckOrder(t *testing.T) {
	classifier := newTestClassifier()

	verdict := classifier.Moderate(Input{
		Text:   "damn free money kill",
		Author: berlinParent(),
		CityID: "munich",
		Type:   enums.ContentTypeComment,
	})

	if len(verdict.Reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %v", verdict.Reasons)
	}
	if !strings.HasPrefix(verdict.Reasons[0], "Profanity detected") {
		t.Fatalf("reasons[0] must be profanity: %q", verdict.Reasons[0])
	}
	if !strings.HasPrefix(verdict.Reasons[1], "Spam indicators detected") {
		t.Fatalf("reasons[1] must be spam: %q", verdict.Reasons[1])
	}
	if !strings.HasPrefix(verdict.Reasons[2], "Inappropriate content detected") {
		t.Fatalf("reasons[2] must be inappropriate content: %q", verdict.Reasons[2])
	}
	if verdict.Reasons[3] != "Content city does not match author's accessible cities" {
		t.Fatalf("reasons[3] must be city scope: %q", verdict.Reasons[3])
	}
}

func TestModerateCityMismatchRejected(t *testing.T) {
	classifier := newTestClassifier()

	verdict := classifier.Moderate(Input{
		Text:   "Lovely playground meetup",
		Author: berlinParent(),
		CityID: "munich",
		Type:   enums.ContentTypeComment,
	})

	if verdict.Approved {
		t.Fatalf("cross-city content approved for parent")
	}
	if verdict.Severity != enums.SeverityHigh {
		t.Fatalf("unexpected severity: got=%s want=high", verdict.Severity)
	}

	admin := model.User{ID: "a1", CityID: "berlin", Role: enums.RoleAdmin}
	adminVerdict := classifier.Moderate(Input{
		Text:   "Lovely playground meetup",
		Author: admin,
		CityID: "munich",
		Type:   enums.ContentTypeComment,
	})
	if !adminVerdict.Approved {
		t.Fatalf("admin cross-city content rejected: %v", adminVerdict.Reasons)
	}
}

func TestModerateLengthCeilingPerContentType(t *testing.T) {
	classifier := newTestClassifier()

	long := strings.Repeat("a", 501)
	verdict := classifier.Moderate(Input{
		Text:   long,
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})
	if verdict.Approved {
		t.Fatalf("over-length comment approved")
	}
	if verdict.Reasons[0] != "Content exceeds maximum length of 500 characters for comment" {
		t.Fatalf("unexpected length reason: %q", verdict.Reasons[0])
	}

	// The same text is fine as an event description (ceiling 2000).
	asDescription := classifier.Moderate(Input{
		Text:   long,
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeEventDescription,
	})
	if !asDescription.Approved {
		t.Fatalf("501-char description rejected: %v", asDescription.Reasons)
	}
}

func TestModerateRepeatedWordsAndExternalLinks(t *testing.T) {
	classifier := newTestClassifier()

	repeated := classifier.Moderate(Input{
		Text:   "party party party party party party tonight",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})
	if repeated.Approved || !strings.Contains(repeated.Reasons[0], "repeated words") {
		t.Fatalf("repeated-word spam not detected: %+v", repeated)
	}

	external := classifier.Moderate(Input{
		Text:   "More details at http://cheap-tickets.example/deal",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})
	if external.Approved || !strings.Contains(external.Reasons[0], "external links") {
		t.Fatalf("external link spam not detected: %+v", external)
	}

	internal := classifier.Moderate(Input{
		Text:   "More details at https://kinza.app/events/42",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})
	if !internal.Approved {
		t.Fatalf("platform link rejected: %v", internal.Reasons)
	}
}

type denyLimiter struct {
	calls []string
}

func (d *denyLimiter) Allow(authorID string, contentType enums.ContentType) bool {
	d.calls = append(d.calls, authorID+"/"+contentType.String())
	return false
}

func TestModerateRateLimiterHook(t *testing.T) {
	classifier := newTestClassifier()
	limiter := &denyLimiter{}
	classifier.AttachRateLimiter(limiter)

	verdict := classifier.Moderate(Input{
		Text:   "Weekend picnic in the park",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	})

	if verdict.Approved {
		t.Fatalf("rate-limited submission approved")
	}
	if verdict.Reasons[len(verdict.Reasons)-1] != "Submission rate limit exceeded" {
		t.Fatalf("missing rate limit reason: %v", verdict.Reasons)
	}
	if !reflect.DeepEqual(limiter.calls, []string{"u1/comment"}) {
		t.Fatalf("limiter called with unexpected args: %v", limiter.calls)
	}
}

func TestModerateIsIdempotent(t *testing.T) {
	classifier := newTestClassifier()
	input := Input{
		Text:   "damn BUY NOW click here",
		Author: berlinParent(),
		CityID: "berlin",
		Type:   enums.ContentTypeComment,
	}

	first := classifier.Moderate(input)
	for i := 0; i < 10; i++ {
		if got := classifier.Moderate(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("verdict not deterministic on run #%d: got=%+v want=%+v", i, got, first)
		}
	}
}
