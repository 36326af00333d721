package moderation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/posdenous/kinza-backend/internal/domain/enums"
	"github.com/posdenous/kinza-backend/internal/domain/model"
	"github.com/posdenous/kinza-backend/internal/services/access"
)

const (
	defaultMinLength          = 3
	defaultWordRepeatLimit    = 5
	defaultUppercaseRatio     = 0.5
	defaultUppercaseMinLength = 20
	defaultPlatformDomain     = "kinza.app"
)

// Config carries every tunable surface of the classifier. Word lists
// and ceilings are injected so they can be updated and tested apart
// from the check logic.
type Config struct {
	PlatformDomain      string
	Profanity           []string
	SpamPhrases         []string
	ViolenceTerms       []string
	AdultTerms          []string
	DiscriminationTerms []string
	MaxLengths          map[enums.ContentType]int
	MinLength           int
	WordRepeatLimit     int
	UppercaseRatio      float64
	UppercaseMinLength  int
}

// RateLimiter is the substitutable rate-check capability. The built-in
// limiter always allows; a Redis-backed limiter is attached at wiring
// time.
type RateLimiter interface {
	Allow(authorID string, contentType enums.ContentType) bool
}

type allowAll struct{}

func (allowAll) Allow(string, enums.ContentType) bool { return true }

// Input is one text submission plus the metadata the checks need.
type Input struct {
	Text   string
	Author model.User
	CityID string
	Type   enums.ContentType
}

// Verdict is constructed fresh on every call and never mutated.
// Reasons keep check-execution order: required fields, length,
// profanity, spam, inappropriate content, city scope, rate limit.
type Verdict struct {
	Approved            bool           `json:"approved"`
	Flagged             bool           `json:"flagged"`
	Reasons             []string       `json:"reasons"`
	Severity            enums.Severity `json:"severity"`
	SeverityLabel       string         `json:"severity_label"`
	RequiresHumanReview bool           `json:"requires_human_review"`
	SuggestedActions    []string       `json:"suggested_actions"`
}

// Classifier runs every moderation check over a single submission. It
// holds no mutable state: identical inputs produce identical verdicts
// from any number of goroutines.
type Classifier struct {
	cfg     Config
	tenants *access.Service
	limiter RateLimiter
}

func NewClassifier(cfg Config, tenants *access.Service) *Classifier {
	if cfg.PlatformDomain == "" {
		cfg.PlatformDomain = defaultPlatformDomain
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = defaultMinLength
	}
	if cfg.WordRepeatLimit <= 0 {
		cfg.WordRepeatLimit = defaultWordRepeatLimit
	}
	if cfg.UppercaseRatio <= 0 {
		cfg.UppercaseRatio = defaultUppercaseRatio
	}
	if cfg.UppercaseMinLength <= 0 {
		cfg.UppercaseMinLength = defaultUppercaseMinLength
	}
	if len(cfg.MaxLengths) == 0 {
		cfg.MaxLengths = map[enums.ContentType]int{
			enums.ContentTypeComment:          500,
			enums.ContentTypeEventDescription: 2000,
			enums.ContentTypeProfileBio:       300,
			enums.ContentTypeEventTitle:       100,
		}
	}

	return &Classifier{
		cfg:     cfg,
		tenants: tenants,
		limiter: allowAll{},
	}
}

// AttachRateLimiter replaces the built-in allow-all rate check.
func (c *Classifier) AttachRateLimiter(limiter RateLimiter) {
	if limiter != nil {
		c.limiter = limiter
	}
}

// Moderate classifies one submission. It never returns an error:
// malformed input degrades to a denial verdict with a reason.
func (c *Classifier) Moderate(input Input) Verdict {
	v := verdictBuilder{severity: enums.SeverityLow}

	if strings.TrimSpace(input.Text) == "" || input.Author.ID == "" || input.CityID == "" {
		v.fail("Missing required content fields", enums.SeverityHigh)
		return v.build()
	}

	c.checkLength(&v, input)
	c.checkProfanity(&v, input.Text)
	c.checkSpam(&v, input.Text)
	c.checkInappropriate(&v, input.Text)
	c.checkScope(&v, input)
	c.checkRate(&v, input)

	return v.build()
}

func (c *Classifier) checkLength(v *verdictBuilder, input Input) {
	trimmed := strings.TrimSpace(input.Text)
	if len([]rune(trimmed)) < c.cfg.MinLength {
		v.fail(fmt.Sprintf("Content must be at least %d characters", c.cfg.MinLength), enums.SeverityMedium)
		return
	}
	limit, ok := c.cfg.MaxLengths[input.Type]
	if !ok {
		return
	}
	if len([]rune(input.Text)) > limit {
		v.fail(fmt.Sprintf("Content exceeds maximum length of %d characters for %s", limit, input.Type), enums.SeverityMedium)
	}
}

func (c *Classifier) checkProfanity(v *verdictBuilder, text string) {
	matched := matchTokens(text, c.cfg.Profanity)
	if len(matched) == 0 {
		return
	}
	v.fail("Profanity detected: "+strings.Join(matched, ", "), enums.SeverityMedium)
	v.suggest("Filter profanity")
}

func (c *Classifier) checkSpam(v *verdictBuilder, text string) {
	var signals []string

	if c.hasRepeatedWords(text) {
		signals = append(signals, "repeated words")
	}

	lowered := strings.ToLower(text)
	for _, phrase := range c.cfg.SpamPhrases {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase != "" && strings.Contains(lowered, phrase) {
			signals = append(signals, "promotional phrases")
			break
		}
	}

	if c.hasExcessiveUppercase(text) {
		signals = append(signals, "excessive capitalization")
	}

	if strings.Contains(lowered, "http") && !strings.Contains(lowered, strings.ToLower(c.cfg.PlatformDomain)) {
		signals = append(signals, "external links")
	}

	if len(signals) == 0 {
		return
	}
	v.fail("Spam indicators detected: "+strings.Join(signals, ", "), enums.SeverityHigh)
	v.review()
	v.suggest("Flag for human review")
}

func (c *Classifier) checkInappropriate(v *verdictBuilder, text string) {
	var categories []string
	if len(matchTokens(text, c.cfg.ViolenceTerms)) > 0 {
		categories = append(categories, "violence")
	}
	if len(matchTokens(text, c.cfg.AdultTerms)) > 0 {
		categories = append(categories, "adult content")
	}
	if len(matchTokens(text, c.cfg.DiscriminationTerms)) > 0 {
		categories = append(categories, "discrimination")
	}
	if len(categories) == 0 {
		return
	}
	v.fail("Inappropriate content detected: "+strings.Join(categories, ", "), enums.SeverityCritical)
	v.review()
	v.suggest("Block content")
	v.suggest("Review user account")
}

func (c *Classifier) checkScope(v *verdictBuilder, input Input) {
	if c.tenants == nil {
		return
	}
	if !c.tenants.CanAccess(input.Author, input.CityID) {
		v.fail("Content city does not match author's accessible cities", enums.SeverityHigh)
	}
}

func (c *Classifier) checkRate(v *verdictBuilder, input Input) {
	if c.limiter.Allow(input.Author.ID, input.Type) {
		return
	}
	v.fail("Submission rate limit exceeded", enums.SeverityHigh)
	v.suggest("Throttle author submissions")
}

func (c *Classifier) hasRepeatedWords(text string) bool {
	counts := make(map[string]int)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = trimWordEdges(token)
		if token == "" {
			continue
		}
		counts[token]++
		if counts[token] > c.cfg.WordRepeatLimit {
			return true
		}
	}
	return false
}

func (c *Classifier) hasExcessiveUppercase(text string) bool {
	runes := []rune(text)
	if len(runes) <= c.cfg.UppercaseMinLength {
		return false
	}
	upper := 0
	for _, r := range runes {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return float64(upper)/float64(len(runes)) > c.cfg.UppercaseRatio
}

// matchTokens reports every whitespace-separated token of text that
// appears in the lower-cased word list, in text order.
func matchTokens(text string, words []string) []string {
	if len(words) == 0 {
		return nil
	}
	listed := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			listed[w] = struct{}{}
		}
	}

	var matched []string
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = trimWordEdges(token)
		if token == "" {
			continue
		}
		if _, ok := listed[token]; ok {
			matched = append(matched, token)
		}
	}
	return matched
}

func trimWordEdges(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

type verdictBuilder struct {
	reasons  []string
	actions  []string
	severity enums.Severity
	human    bool
}

func (b *verdictBuilder) fail(reason string, severity enums.Severity) {
	b.reasons = append(b.reasons, reason)
	b.severity = enums.MaxSeverity(b.severity, severity)
}

func (b *verdictBuilder) review() {
	b.human = true
}

func (b *verdictBuilder) suggest(action string) {
	for _, existing := range b.actions {
		if existing == action {
			return
		}
	}
	b.actions = append(b.actions, action)
}

func (b *verdictBuilder) build() Verdict {
	approved := len(b.reasons) == 0
	return Verdict{
		Approved:            approved,
		Flagged:             !approved || b.human,
		Reasons:             b.reasons,
		Severity:            b.severity,
		SeverityLabel:       b.severity.String(),
		RequiresHumanReview: b.human,
		SuggestedActions:    b.actions,
	}
}
