package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	redrepo "github.com/posdenous/kinza-backend/internal/repo/redis"
)

func TestLimiterBlocksOn10SecondWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 100, 2)

	ctx := context.Background()
	author := "u42"

	for i := 0; i < 2; i++ {
		retryAfter, allowed, err := limiter.AllowSubmission(ctx, author, enums.ContentTypeComment)
		if err != nil {
			t.Fatalf("allow submission #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowSubmission(ctx, author, enums.ContentTypeComment)
	if err != nil {
		t.Fatalf("allow submission #3: %v", err)
	}
	if allowed {
		t.Fatalf("expected limiter block on third submission in 10s window")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}

	currentRetry, err := limiter.RetryAfter(ctx, author, enums.ContentTypeComment)
	if err != nil {
		t.Fatalf("retry_after state: %v", err)
	}
	if currentRetry <= 0 {
		t.Fatalf("expected positive retry_after state, got %d", currentRetry)
	}

	mr.FastForward(11 * time.Second)

	retryAfter, allowed, err = limiter.AllowSubmission(ctx, author, enums.ContentTypeComment)
	if err != nil {
		t.Fatalf("allow submission after 10s window: %v", err)
	}
	if !allowed || retryAfter != 0 {
		t.Fatalf("unexpected result after fast forward: allowed=%v retry_after=%d", allowed, retryAfter)
	}
}

func TestLimiterBlocksOnMinuteWindow(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 3, 100)

	ctx := context.Background()
	author := "u77"

	for i := 0; i < 3; i++ {
		retryAfter, allowed, err := limiter.AllowSubmission(ctx, author, enums.ContentTypeComment)
		if err != nil {
			t.Fatalf("allow submission #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowSubmission(ctx, author, enums.ContentTypeComment)
	if err != nil {
		t.Fatalf("allow submission #4: %v", err)
	}
	if allowed {
		t.Fatalf("expected limiter block on fourth submission in minute window")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}
}

func TestLimiterKeysAreScopedPerContentType(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 100, 1)

	ctx := context.Background()
	author := "u11"

	if _, allowed, err := limiter.AllowSubmission(ctx, author, enums.ContentTypeComment); err != nil || !allowed {
		t.Fatalf("first comment blocked: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowSubmission(ctx, author, enums.ContentTypeComment); err != nil || allowed {
		t.Fatalf("second comment in burst window must block: allowed=%v err=%v", allowed, err)
	}

	// A different content type uses its own windows.
	if _, allowed, err := limiter.AllowSubmission(ctx, author, enums.ContentTypeProfileBio); err != nil || !allowed {
		t.Fatalf("bio submission blocked by comment window: allowed=%v err=%v", allowed, err)
	}
}

func TestSubmissionGuardFailsOpenWithoutLimiter(t *testing.T) {
	guard := NewSubmissionGuard(nil)
	if !guard.Allow("u1", enums.ContentTypeComment) {
		t.Fatalf("guard without limiter must allow")
	}
}

func TestSubmissionGuardBlocksOverLimit(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	guard := NewSubmissionGuard(NewLimiter(repo, 100, 1))

	if !guard.Allow("u9", enums.ContentTypeComment) {
		t.Fatalf("first submission must be allowed")
	}
	if guard.Allow("u9", enums.ContentTypeComment) {
		t.Fatalf("second submission in burst window must be blocked")
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
