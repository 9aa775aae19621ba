/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: urlgen.go
Description: URL generalizer for Selector Forge. Parses a URL into an
immutable structure, classifies every path and hash-route segment, and
synthesizes a generalized pattern string under the selected aggressiveness
mode, with confidence scoring and a warning pass.
*/

package urlgen

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/selector-forge/pkg/classifier"
	"github.com/kleascm/selector-forge/pkg/interfaces"
)

// ErrUnparsableURL marks inputs the engine refuses to analyze. Callers get
// no partial result for this class.
var ErrUnparsableURL = errors.New("unparsable url")

// Warning codes attached to URL analyses. Stable, for tests and the UI.
const (
	WarnTooBroad         = "too-broad"
	WarnNonProduction    = "non-production-host"
	WarnSuspectedDynamic = "suspected-dynamic"
)

const (
	// oversimplifiedDelta is the legacy guard threshold: when the URL
	// contains a fragment and the synthesized pattern is shorter than the
	// source by more than this many characters, the generalization is
	// discarded in favour of the literal URL. Kept for compatibility with
	// the historical behavior; do not tune without product input.
	oversimplifiedDelta = 50
)

var longDigitRun = regexp.MustCompile(`\d{3,}`)

// Generalizer analyzes URLs. Stateless; safe for concurrent use.
type Generalizer struct {
	classifier *classifier.Classifier
}

// New creates a generalizer around the given segment classifier.
func New(c *classifier.Classifier) *Generalizer {
	return &Generalizer{classifier: c}
}

// Analyze parses rawURL, classifies its segments, and synthesizes a
// generalized pattern. Returns ErrUnparsableURL (wrapped) with a nil result
// for malformed input; degraded conditions surface as warnings instead.
func (g *Generalizer) Analyze(rawURL string, opts interfaces.Options) (*interfaces.URLAnalysis, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	structure, err := Parse(rawURL)
	if err != nil {
		return nil, err
	}

	env := detectEnvironment(structure.Host)

	classified := g.classifySegments(structure.PathSegments, false)
	var fragSegments []interfaces.ClassifiedSegment
	if structure.IsHashRouted {
		fragSegments = g.classifySegments(routeSegments(structure.Fragment), true)
	}

	pattern := g.synthesize(rawURL, structure, classified, fragSegments, opts)
	pattern.Confidence = score(structure, pattern, env)

	analysis := &interfaces.URLAnalysis{
		ID:          uuid.NewString(),
		Structure:   *structure,
		Pattern:     pattern,
		Environment: env,
		AnalyzedAt:  time.Now(),
	}
	analysis.Warnings = validate(rawURL, analysis, opts)
	return analysis, nil
}

// Parse decomposes a URL into its immutable structure. It is exposed so
// callers can inspect structure without running generalization.
func Parse(rawURL string) (*interfaces.URLStructure, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host in %q", ErrUnparsableURL, rawURL)
	}

	frag := u.Fragment
	structure := &interfaces.URLStructure{
		Scheme:       u.Scheme,
		Host:         u.Hostname(),
		Port:         u.Port(),
		PathSegments: splitPath(u.EscapedPath()),
		QueryParams:  parseQuery(u.RawQuery),
		Fragment:     frag,
		IsHashRouted: strings.HasPrefix(frag, "/") || strings.HasPrefix(frag, "!/"),
	}
	return structure, nil
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// parseQuery keeps parameter order, which url.Values would lose.
func parseQuery(rawQuery string) []interfaces.QueryParam {
	if rawQuery == "" {
		return nil
	}
	var params []interfaces.QueryParam
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		params = append(params, interfaces.QueryParam{Key: key, Value: value})
	}
	return params
}

// routeSegments splits a hash-router fragment ("/users/123" or "!/users/123")
// into its tokens.
func routeSegments(fragment string) []string {
	return splitPath(strings.TrimPrefix(fragment, "!"))
}

// detectEnvironment infers the deployment environment from the hostname by
// substring matching. Informational only.
func detectEnvironment(host string) interfaces.Environment {
	h := strings.ToLower(host)
	switch {
	case strings.Contains(h, "localhost"), strings.HasPrefix(h, "127."), strings.HasSuffix(h, ".local"):
		return interfaces.EnvLocal
	case strings.Contains(h, "dev"):
		return interfaces.EnvDevelopment
	case strings.Contains(h, "staging"), strings.Contains(h, "stage"), strings.Contains(h, "test"):
		return interfaces.EnvStaging
	default:
		return interfaces.EnvProduction
	}
}

// classifySegments runs every token through the classifier with its textual
// neighbors as context.
func (g *Generalizer) classifySegments(tokens []string, inFragment bool) []interfaces.ClassifiedSegment {
	out := make([]interfaces.ClassifiedSegment, 0, len(tokens))
	for i, tok := range tokens {
		ctx := classifier.Context{InFragment: inFragment}
		if i > 0 {
			ctx.PrecedingToken = tokens[i-1]
		}
		if i < len(tokens)-1 {
			ctx.FollowingToken = tokens[i+1]
		}
		cls := g.classifier.Classify(tok, ctx)
		seg := interfaces.ClassifiedSegment{
			Segment: interfaces.Segment{RawValue: tok, Position: i, InFragment: inFragment},
		}
		if cls.Volatile() {
			c := cls
			seg.Classification = &c
		}
		out = append(out, seg)
	}
	return out
}

// synthesize applies the aggressiveness policy to produce a pattern string.
func (g *Generalizer) synthesize(rawURL string, s *interfaces.URLStructure, path, frag []interfaces.ClassifiedSegment, opts interfaces.Options) interfaces.GeneralizedURLPattern {
	pattern := interfaces.GeneralizedURLPattern{
		SourceURL: rawURL,
		Segments:  append(append([]interfaces.ClassifiedSegment{}, path...), frag...),
	}

	base := s.Scheme + "://" + hostWithPort(s)

	switch {
	case s.IsHashRouted && opts.Mode != interfaces.ModeConservative:
		// SPA hash routes have unbounded depth; once one segment is
		// volatile, enumerating the rest is pointless. Drop everything
		// after the hash.
		marker := "#/**"
		if strings.HasPrefix(s.Fragment, "!/") {
			marker = "#!/**"
		}
		pattern.PatternString = base + literalPath(s.PathSegments) + marker
		pattern.MatchStrategy = interfaces.MatchIgnoreAfter

	case opts.Mode == interfaces.ModeAggressive && strings.Count(s.Host, ".") >= 3:
		// Deep or rotating subdomains (CDN edges and the like) make exact
		// host matching brittle; match on the registrable tail instead.
		labels := strings.Split(s.Host, ".")
		tail := strings.Join(labels[len(labels)-2:], ".")
		pattern.PatternString = "*" + tail + "*"
		pattern.MatchStrategy = interfaces.MatchContains

	default:
		rebuilt, substituted := wildcardPath(path)
		pattern.PatternString = base + rebuilt
		if opts.PreserveQuery && len(s.QueryParams) > 0 {
			pattern.PatternString += "?" + rawQueryOf(s.QueryParams)
		}
		if opts.PreserveHash && s.Fragment != "" {
			if s.IsHashRouted {
				fragRebuilt, fragSubs := wildcardPath(frag)
				prefix := "#"
				if strings.HasPrefix(s.Fragment, "!/") {
					prefix = "#!"
				}
				pattern.PatternString += prefix + fragRebuilt
				substituted += fragSubs
			} else {
				pattern.PatternString += "#" + s.Fragment
			}
		}
		if substituted > 0 {
			pattern.MatchStrategy = interfaces.MatchWildcard
		} else {
			pattern.MatchStrategy = interfaces.MatchExact
		}
	}

	// Legacy oversimplification guard: fragment URLs whose pattern came out
	// far shorter than the source fall back to the literal URL.
	if strings.Contains(rawURL, "#") && len(rawURL)-len(pattern.PatternString) > oversimplifiedDelta {
		pattern.PatternString = rawURL
		pattern.MatchStrategy = interfaces.MatchExact
	}

	return pattern
}

func hostWithPort(s *interfaces.URLStructure) string {
	if s.Port != "" {
		return s.Host + ":" + s.Port
	}
	return s.Host
}

func literalPath(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	return "/" + strings.Join(segments, "/")
}

// wildcardPath rebuilds a path substituting "*" for volatile segments.
// Returns the rebuilt path and how many substitutions were made.
func wildcardPath(segments []interfaces.ClassifiedSegment) (string, int) {
	if len(segments) == 0 {
		return "", 0
	}
	parts := make([]string, 0, len(segments))
	substituted := 0
	for _, seg := range segments {
		if seg.Classification != nil {
			parts = append(parts, "*")
			substituted++
		} else {
			parts = append(parts, seg.Segment.RawValue)
		}
	}
	return "/" + strings.Join(parts, "/"), substituted
}

func rawQueryOf(params []interfaces.QueryParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.Value == "" {
			parts = append(parts, p.Key)
			continue
		}
		parts = append(parts, p.Key+"="+p.Value)
	}
	return strings.Join(parts, "&")
}

// score computes the pattern confidence from the fixed formula.
func score(s *interfaces.URLStructure, pattern interfaces.GeneralizedURLPattern, env interfaces.Environment) float64 {
	volatile := 0
	for _, seg := range pattern.Segments {
		if seg.Classification != nil {
			volatile++
		}
	}

	confidence := 0.5
	if volatile == 0 {
		confidence += 0.4
	}
	if remaining := 5 - volatile; remaining > 0 {
		confidence += 0.1 * float64(remaining)
	}
	if s.IsHashRouted {
		confidence += 0.2
	}
	if isAPIPath(s) {
		confidence += 0.15
	}
	if env == interfaces.EnvDevelopment || env == interfaces.EnvLocal {
		confidence -= 0.1
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func isAPIPath(s *interfaces.URLStructure) bool {
	padded := "/" + strings.Join(s.PathSegments, "/") + "/"
	return strings.Contains(padded, "/api/") ||
		strings.Contains(padded, "/v1/") ||
		strings.Contains(padded, "/v2/") ||
		strings.HasPrefix(strings.ToLower(s.Host), "api.")
}

// validate emits the degraded-but-usable warnings. Never errors.
func validate(rawURL string, a *interfaces.URLAnalysis, opts interfaces.Options) []interfaces.Warning {
	var warnings []interfaces.Warning

	if n := strings.Count(a.Pattern.PatternString, "*"); n > opts.MaxWildcards {
		warnings = append(warnings, interfaces.Warning{
			Code:        WarnTooBroad,
			Message:     fmt.Sprintf("pattern contains %d wildcards (limit %d) and may match unrelated pages", n, opts.MaxWildcards),
			Remediation: "switch to conservative mode or keep more segments literal",
		})
	}

	if a.Environment != interfaces.EnvProduction {
		warnings = append(warnings, interfaces.Warning{
			Code:        WarnNonProduction,
			Message:     fmt.Sprintf("pattern was built from a %s host", a.Environment),
			Remediation: "re-capture the URL from the production environment before publishing the rule",
		})
	}

	volatile := 0
	for _, seg := range a.Pattern.Segments {
		if seg.Classification != nil {
			volatile++
		}
	}
	if volatile == 0 && longDigitRun.MatchString(rawURL) {
		warnings = append(warnings, interfaces.Warning{
			Code:        WarnSuspectedDynamic,
			Message:     "no volatile segments were found, but the URL contains long digit runs and may be dynamic",
			Remediation: "verify the pattern against a second instance of the page",
		})
	}

	return warnings
}
