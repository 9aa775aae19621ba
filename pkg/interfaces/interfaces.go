/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared value types for Selector Forge. Defines the segment
classification model, parsed URL structures, DOM element descriptors, candidate
selectors, and the external rule contract used across all packages to break
import cycles and enable proper modular design.
*/

package interfaces

import "time"

// SegmentCategory is the semantic category assigned to a single URL or
// route token by the segment classifier.
type SegmentCategory string

const (
	CategoryNumericID      SegmentCategory = "numeric-id"
	CategoryGUID           SegmentCategory = "guid"
	CategoryAlphanumericID SegmentCategory = "alphanumeric-id"
	CategoryWorkspaceID    SegmentCategory = "workspace-id"
	CategoryUserID         SegmentCategory = "user-id"
	CategoryComponentID    SegmentCategory = "component-id"
	CategoryFeatureID      SegmentCategory = "feature-id"
	CategorySessionID      SegmentCategory = "session-id"
	CategoryTimestamp      SegmentCategory = "timestamp"
	CategoryVersion        SegmentCategory = "version"
	CategoryBuildID        SegmentCategory = "build-id"
	CategoryHash           SegmentCategory = "hash"
	CategoryToken          SegmentCategory = "token"
	// CategoryUnknown means the token is NOT volatile: generalization keeps
	// it literal.
	CategoryUnknown SegmentCategory = "unknown"
)

// Stability is the coarse volatility label derived from a category.
type Stability string

const (
	StabilityStable         Stability = "stable"
	StabilitySemiStable     Stability = "semi-stable"
	StabilityVolatile       Stability = "volatile"
	StabilityHighlyVolatile Stability = "highly-volatile"
)

// Segment is a single token extracted from a URL path or hash route,
// with its positional context. Created fresh per classification call.
type Segment struct {
	RawValue   string `json:"raw_value"`
	Position   int    `json:"position"`
	InFragment bool   `json:"in_fragment"`
}

// SegmentClassification is the classifier verdict for one segment.
// Immutable once created: confidence is a pure function of the category plus
// minor length/fragment adjustments and never changes afterwards.
type SegmentClassification struct {
	Category     SegmentCategory `json:"category"`
	Confidence   float64         `json:"confidence"`
	Stability    Stability       `json:"stability"`
	RegexPattern string          `json:"regex_pattern"`
	Explanation  string          `json:"explanation"`
}

// Volatile reports whether the segment should be replaced by a wildcard
// during generalization.
func (c SegmentClassification) Volatile() bool {
	return c.Category != CategoryUnknown
}

// Environment is the deployment environment inferred from a hostname.
// Informational only: it never changes generalization, it only surfaces
// as a warning for non-production hosts.
type Environment string

const (
	EnvLocal       Environment = "local"
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// URLStructure is the parsed decomposition of a URL, derived once at parse
// time and never mutated.
type URLStructure struct {
	Scheme       string       `json:"scheme"`
	Host         string       `json:"host"`
	Port         string       `json:"port,omitempty"`
	PathSegments []string     `json:"path_segments"`
	QueryParams  []QueryParam `json:"query_params"`
	Fragment     string       `json:"fragment,omitempty"`
	IsHashRouted bool         `json:"is_hash_routed"`
}

// QueryParam preserves query-parameter order, which url.Values discards.
type QueryParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MatchStrategy describes how a generalized pattern is meant to be matched
// against concrete URLs.
type MatchStrategy string

const (
	MatchExact       MatchStrategy = "exact"
	MatchWildcard    MatchStrategy = "wildcard"
	MatchContains    MatchStrategy = "contains"
	MatchIgnoreAfter MatchStrategy = "ignoreAfter"
)

// ClassifiedSegment pairs a segment with its classification. Classification
// is nil when the segment was kept literal.
type ClassifiedSegment struct {
	Segment        Segment                `json:"segment"`
	Classification *SegmentClassification `json:"classification,omitempty"`
}

// GeneralizedURLPattern is the synthesized matcher for a source URL.
type GeneralizedURLPattern struct {
	SourceURL     string              `json:"source_url"`
	Segments      []ClassifiedSegment `json:"segments"`
	PatternString string              `json:"pattern_string"`
	MatchStrategy MatchStrategy       `json:"match_strategy"`
	Confidence    float64             `json:"confidence"`
}

// Warning is a degraded-but-usable condition attached to an analysis result.
// Codes are stable and testable; Remediation is a suggested fix for the
// operator.
type Warning struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Remediation string `json:"remediation,omitempty"`
}

// URLAnalysis is the full output of the URL generalizer for one input URL.
type URLAnalysis struct {
	ID          string                `json:"id"`
	Structure   URLStructure          `json:"structure"`
	Pattern     GeneralizedURLPattern `json:"pattern"`
	Environment Environment           `json:"environment"`
	Warnings    []Warning             `json:"warnings,omitempty"`
	AnalyzedAt  time.Time             `json:"analyzed_at"`
}

// Rect is the bounding geometry of a captured element.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementDescriptor is a read-only snapshot of one DOM element. Parent links
// form a single-owner, acyclic chain built bottom-up from a live traversal;
// the engine never holds live document references.
type ElementDescriptor struct {
	TagName    string            `json:"tag_name"`
	ID         string            `json:"id,omitempty"`
	Classes    []string          `json:"classes,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Geometry   Rect              `json:"geometry"`
	// NthChild is the 1-based position among same-tag siblings, 0 if unknown.
	NthChild int                `json:"nth_child,omitempty"`
	Parent   *ElementDescriptor `json:"parent,omitempty"`
}

// AccessMode is the accessibility of a shadow root.
type AccessMode string

const (
	ShadowOpen   AccessMode = "open"
	ShadowClosed AccessMode = "closed"
)

// ShadowBoundary is one shadow-DOM boundary enclosing the target element.
type ShadowBoundary struct {
	Host *ElementDescriptor `json:"host"`
	Mode AccessMode         `json:"mode"`
}

// ShadowChain lists the boundaries from outermost to innermost. An empty
// chain means the element lives in the regular document tree.
type ShadowChain []ShadowBoundary

// HasClosed reports whether any boundary in the chain is closed.
func (c ShadowChain) HasClosed() bool {
	for _, b := range c {
		if b.Mode == ShadowClosed {
			return true
		}
	}
	return false
}

// ShadowStrategy selects how shadow boundaries are expressed in a selector.
type ShadowStrategy string

const (
	ShadowHostBased ShadowStrategy = "host-based"
	ShadowFullPath  ShadowStrategy = "full-path"
	ShadowMinimal   ShadowStrategy = "minimal"
)

// Aggressiveness selects how hard the URL generalizer collapses structure.
type Aggressiveness string

const (
	ModeConservative Aggressiveness = "conservative"
	ModeModerate     Aggressiveness = "moderate"
	ModeAggressive   Aggressiveness = "aggressive"
)

// CandidateSelector is one generated selector with its ranking metadata.
type CandidateSelector struct {
	SelectorString string   `json:"selector_string"`
	Specificity    int      `json:"specificity"`
	IsStable       bool     `json:"is_stable"`
	ShadowAware    bool     `json:"shadow_aware"`
	Warnings       []string `json:"warnings,omitempty"`
}

// SelectorResult is the output of one selector generalization call. The best
// candidate is chosen once and never cached back; callers carry the result.
type SelectorResult struct {
	ID          string              `json:"id"`
	Best        CandidateSelector   `json:"best"`
	Candidates  []CandidateSelector `json:"candidates"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// RuleKind distinguishes the two external rule flavours.
type RuleKind string

const (
	RuleElement RuleKind = "elementRule"
	RulePage    RuleKind = "pageRule"
)

// CompatibilityTier is the three-level verdict on whether a generated rule
// will work unmodified in the external rule system.
type CompatibilityTier string

const (
	TierFull    CompatibilityTier = "full"
	TierPartial CompatibilityTier = "partial"
	TierNone    CompatibilityTier = "none"
)

// ExternalRule is the final output handed to the consuming UI. It has no
// lifecycle beyond the call that created it.
type ExternalRule struct {
	Kind             RuleKind          `json:"kind"`
	Body             string            `json:"body"`
	Warnings         []string          `json:"warnings,omitempty"`
	Tier             CompatibilityTier `json:"compatibility_tier"`
	Explanation      string            `json:"explanation"`
	CopyInstructions string            `json:"copy_instructions"`
}

// RuleInput is the tagged-union input to the rule formatter. Exactly one
// variant is set, decided by the caller; the formatter never probes string
// fields to guess what it was handed.
type RuleInput struct {
	Selector   *CandidateSelector
	URLPattern *GeneralizedURLPattern
}

// SelectorInput wraps a candidate selector as formatter input.
func SelectorInput(cs CandidateSelector) RuleInput {
	return RuleInput{Selector: &cs}
}

// URLPatternInput wraps a generalized URL pattern as formatter input.
func URLPatternInput(p GeneralizedURLPattern) RuleInput {
	return RuleInput{URLPattern: &p}
}
