/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: classifier.go
Description: Segment classifier for Selector Forge. Evaluates an ordered table
of pattern rules (most specific first) to decide whether a single URL/route
token is a volatile identifier (GUID, timestamp, hash, session token, numeric
id, ...) or a literal route name that must be kept as-is during generalization.
*/

package classifier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kleascm/selector-forge/pkg/interfaces"
)

// Context carries the positional neighborhood of a token. Preceding and
// following tokens feed the short-numeric-id keyword gate; InFragment
// applies the hash-route confidence discount.
type Context struct {
	PrecedingToken string
	FollowingToken string
	InFragment     bool
}

// ContextKeywords gates short (3-5 digit) numeric tokens: they only count as
// ids when a neighboring token contains one of these words. The list is
// hardcoded and English-only, a known incompleteness kept deliberately
// narrow to avoid false positives on route numbers.
var ContextKeywords = []string{"user", "account", "org", "project", "id", "item"}

const (
	// epochWindow is how far from the current time an all-digit token may
	// land and still be accepted as a unix timestamp. Anything outside is
	// handed back to the plain numeric-id rules.
	epochWindow = 10 * 365 * 24 * time.Hour

	minConfidence = 0.10
	maxConfidence = 0.99
	// fragmentDiscount applies to tokens found inside a hash route, where
	// classification signals are weaker.
	fragmentDiscount = 0.9
)

var (
	guidRe       = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	guidPackedRe = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
	versionRe    = regexp.MustCompile(`^v?\d+\.\d+\.\d+$`)
	epochRe      = regexp.MustCompile(`^\d{10,13}$`)
	tokenRe      = regexp.MustCompile(`^[A-Za-z0-9_-]{20,}$`)
	hexRe        = regexp.MustCompile(`^[0-9a-fA-F]{6,64}$`)
	digitsRe     = regexp.MustCompile(`^\d{6,}$`)
	shortNumRe   = regexp.MustCompile(`^\d{3,5}$`)
	mixedRe      = regexp.MustCompile(`^[A-Za-z0-9]{6,}$`)
	letterRe     = regexp.MustCompile(`[A-Za-z]`)
	hexLetterRe  = regexp.MustCompile(`[a-fA-F]`)
	digitRe      = regexp.MustCompile(`\d`)
)

// prefixRule recognizes domain-prefixed ids like ws_a1b2 or user_42.
type prefixRule struct {
	prefix     string
	digitsOnly bool
	category   interfaces.SegmentCategory
}

var prefixRules = []prefixRule{
	{prefix: "ws_", category: interfaces.CategoryWorkspaceID},
	{prefix: "user_", digitsOnly: true, category: interfaces.CategoryUserID},
	{prefix: "comp_", category: interfaces.CategoryComponentID},
	{prefix: "feat_", category: interfaces.CategoryFeatureID},
	{prefix: "sess_", category: interfaces.CategorySessionID},
	{prefix: "build_", digitsOnly: true, category: interfaces.CategoryBuildID},
}

// baseConfidence is the fixed per-category confidence table. Adjustments
// (length boosts, fragment discount) are applied on top, then clamped.
var baseConfidence = map[interfaces.SegmentCategory]float64{
	interfaces.CategoryGUID:           0.95,
	interfaces.CategoryTimestamp:      0.90,
	interfaces.CategorySessionID:      0.90,
	interfaces.CategoryToken:          0.85,
	interfaces.CategoryVersion:        0.85,
	interfaces.CategoryHash:           0.80,
	interfaces.CategoryWorkspaceID:    0.75,
	interfaces.CategoryUserID:         0.75,
	interfaces.CategoryComponentID:    0.75,
	interfaces.CategoryFeatureID:      0.75,
	interfaces.CategoryBuildID:        0.70,
	interfaces.CategoryNumericID:      0.60,
	interfaces.CategoryAlphanumericID: 0.50,
	interfaces.CategoryUnknown:        0.20,
}

// stabilityOf maps categories to their volatility label.
var stabilityOf = map[interfaces.SegmentCategory]interfaces.Stability{
	interfaces.CategorySessionID:      interfaces.StabilityHighlyVolatile,
	interfaces.CategoryTimestamp:      interfaces.StabilityHighlyVolatile,
	interfaces.CategoryToken:          interfaces.StabilityHighlyVolatile,
	interfaces.CategoryHash:           interfaces.StabilityVolatile,
	interfaces.CategoryBuildID:        interfaces.StabilityVolatile,
	interfaces.CategoryNumericID:      interfaces.StabilityVolatile,
	interfaces.CategoryUserID:         interfaces.StabilitySemiStable,
	interfaces.CategoryWorkspaceID:    interfaces.StabilitySemiStable,
	interfaces.CategoryAlphanumericID: interfaces.StabilitySemiStable,
}

// Classifier evaluates the rule table. It is stateless apart from an
// injectable clock used by the timestamp window check.
type Classifier struct {
	now func() time.Time
}

// New creates a classifier using the wall clock.
func New() *Classifier {
	return &Classifier{now: time.Now}
}

// NewWithClock creates a classifier with a fixed clock, for tests.
func NewWithClock(now func() time.Time) *Classifier {
	return &Classifier{now: now}
}

// Classify runs the ordered rule table against a single token. A token
// matching multiple rules always resolves to the first match; the table is a
// total order so no tie-break is needed. Category "unknown" means the token
// is kept literal during generalization.
func (c *Classifier) Classify(token string, ctx Context) interfaces.SegmentClassification {
	category, pattern, explanation := c.matchRules(token, ctx)
	confidence := baseConfidence[category]

	if category == interfaces.CategoryAlphanumericID {
		if len(token) >= 8 {
			confidence += 0.2
		}
		if len(token) >= 16 {
			confidence += 0.1
		}
	}
	if ctx.InFragment {
		confidence *= fragmentDiscount
	}
	if confidence < minConfidence {
		confidence = minConfidence
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}

	stability, ok := stabilityOf[category]
	if !ok {
		stability = interfaces.StabilityStable
	}

	return interfaces.SegmentClassification{
		Category:     category,
		Confidence:   confidence,
		Stability:    stability,
		RegexPattern: pattern,
		Explanation:  explanation,
	}
}

// matchRules walks the table top to bottom and returns the first hit.
func (c *Classifier) matchRules(token string, ctx Context) (interfaces.SegmentCategory, string, string) {
	// 1. GUID/UUID forms.
	if guidRe.MatchString(token) {
		return interfaces.CategoryGUID, guidRe.String(), "canonical 8-4-4-4-12 UUID"
	}
	if guidPackedRe.MatchString(token) {
		return interfaces.CategoryGUID, guidPackedRe.String(), "32-char undashed UUID"
	}

	// 2. Domain-prefixed ids.
	for _, r := range prefixRules {
		if cat, ok := matchPrefix(token, r); ok {
			return cat, "^" + r.prefix, fmt.Sprintf("%q prefix followed by %s", r.prefix, prefixBody(r))
		}
	}

	// 3. Semantic versions.
	if versionRe.MatchString(token) {
		return interfaces.CategoryVersion, versionRe.String(), "semantic version string"
	}

	// 4. Unix-epoch timestamps: all-digit, 10-13 chars, and the parsed value
	// must land near the present. Otherwise the token falls through to the
	// plain numeric rules, so short ids cannot masquerade as timestamps.
	if epochRe.MatchString(token) && c.withinEpochWindow(token) {
		return interfaces.CategoryTimestamp, epochRe.String(), "unix epoch near current time"
	}

	// 5. Long opaque tokens from a URL-safe alphabet.
	if tokenRe.MatchString(token) {
		return interfaces.CategoryToken, tokenRe.String(), "20+ char opaque token, likely auth/session material"
	}

	// 6. Hex runs. Requires at least one a-f and one digit so plain words
	// and plain numbers never land here.
	if hexRe.MatchString(token) && hexLetterRe.MatchString(token) && digitRe.MatchString(token) {
		return interfaces.CategoryHash, hexRe.String(), "6-64 char hex run, likely a content hash"
	}

	// 7. Numeric ids. Six or more digits is unconditional; 3-5 digits only
	// pass when a neighbor token names an id-like concept, which suppresses
	// false positives on short route numbers.
	if digitsRe.MatchString(token) {
		return interfaces.CategoryNumericID, digitsRe.String(), "6+ digit numeric identifier"
	}
	if shortNumRe.MatchString(token) && hasIDContext(ctx) {
		return interfaces.CategoryNumericID, shortNumRe.String(), "short number next to an id-context keyword"
	}

	// 8. Mixed letter+digit shapes.
	if mixedRe.MatchString(token) && letterRe.MatchString(token) && digitRe.MatchString(token) {
		return interfaces.CategoryAlphanumericID, mixedRe.String(), "mixed letter+digit identifier shape"
	}

	// 9. No rule matched: keep the literal segment.
	return interfaces.CategoryUnknown, "", "no volatility signal, kept literal"
}

// withinEpochWindow tries the token as epoch seconds and epoch milliseconds
// and accepts it when either lands within the window around now.
func (c *Classifier) withinEpochWindow(token string) bool {
	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return false
	}
	now := c.now()
	asSeconds := time.Unix(v, 0)
	asMillis := time.UnixMilli(v)
	return absDuration(now.Sub(asSeconds)) <= epochWindow ||
		absDuration(now.Sub(asMillis)) <= epochWindow
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func matchPrefix(token string, r prefixRule) (interfaces.SegmentCategory, bool) {
	if !strings.HasPrefix(token, r.prefix) {
		return "", false
	}
	body := token[len(r.prefix):]
	if body == "" {
		return "", false
	}
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b >= '0' && b <= '9' {
			continue
		}
		if !r.digitsOnly && ((b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')) {
			continue
		}
		return "", false
	}
	return r.category, true
}

func prefixBody(r prefixRule) string {
	if r.digitsOnly {
		return "digits"
	}
	return "alphanumerics"
}

// hasIDContext reports whether a neighboring token contains one of the
// id-context keywords.
func hasIDContext(ctx Context) bool {
	prev := strings.ToLower(ctx.PrecedingToken)
	next := strings.ToLower(ctx.FollowingToken)
	for _, kw := range ContextKeywords {
		if (prev != "" && strings.Contains(prev, kw)) || (next != "" && strings.Contains(next, kw)) {
			return true
		}
	}
	return false
}
