/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: urlgen_test.go
Description: Tests for the URL generalizer. Covers parsing, environment
detection, hash-route collapse, aggressive host collapse, wildcard synthesis,
the round-trip property, the confidence formula, and the warning pass.
*/

package urlgen_test

import (
	"strings"
	"testing"

	"github.com/kleascm/selector-forge/pkg/classifier"
	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/kleascm/selector-forge/pkg/urlgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeneralizer() *urlgen.Generalizer {
	return urlgen.New(classifier.New())
}

// TestAnalyzeRejectsMalformed verifies malformed input yields a classified
// failure, never a partial result.
func TestAnalyzeRejectsMalformed(t *testing.T) {
	g := newGeneralizer()

	for _, raw := range []string{"", "not a url at all", "/relative/path", "%%%"} {
		got, err := g.Analyze(raw, interfaces.DefaultOptions())
		assert.Nil(t, got, "input %q", raw)
		require.Error(t, err, "input %q", raw)
		assert.ErrorIs(t, err, urlgen.ErrUnparsableURL)
	}
}

// TestParseStructure verifies the decomposition of a full URL.
func TestParseStructure(t *testing.T) {
	s, err := urlgen.Parse("https://app.example.com:8443/org/98765/settings?tab=general&ref=email#section")
	require.NoError(t, err)

	assert.Equal(t, "https", s.Scheme)
	assert.Equal(t, "app.example.com", s.Host)
	assert.Equal(t, "8443", s.Port)
	assert.Equal(t, []string{"org", "98765", "settings"}, s.PathSegments)
	require.Len(t, s.QueryParams, 2)
	assert.Equal(t, interfaces.QueryParam{Key: "tab", Value: "general"}, s.QueryParams[0])
	assert.Equal(t, interfaces.QueryParam{Key: "ref", Value: "email"}, s.QueryParams[1])
	assert.Equal(t, "section", s.Fragment)
	assert.False(t, s.IsHashRouted)
}

// TestHashRouteDetection verifies #/ and #!/ fragments are recognized as
// secondary paths.
func TestHashRouteDetection(t *testing.T) {
	s, err := urlgen.Parse("https://spa.example.com/app#/users/123/profile")
	require.NoError(t, err)
	assert.True(t, s.IsHashRouted)

	s, err = urlgen.Parse("https://spa.example.com/app#!/users/123")
	require.NoError(t, err)
	assert.True(t, s.IsHashRouted)

	s, err = urlgen.Parse("https://docs.example.com/guide#installation")
	require.NoError(t, err)
	assert.False(t, s.IsHashRouted)
}

// TestHashRouteCollapse verifies the moderate-mode ignore-after collapse of
// SPA hash routes.
func TestHashRouteCollapse(t *testing.T) {
	g := newGeneralizer()

	got, err := g.Analyze("https://spa.example.com/app#/users/123/profile", interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "https://spa.example.com/app#/**", got.Pattern.PatternString)
	assert.Equal(t, interfaces.MatchIgnoreAfter, got.Pattern.MatchStrategy)
}

// TestHashRouteConservative verifies conservative mode does not collapse the
// fragment.
func TestHashRouteConservative(t *testing.T) {
	g := newGeneralizer()

	opts := interfaces.DefaultOptions()
	opts.Mode = interfaces.ModeConservative
	got, err := g.Analyze("https://spa.example.com/app#/users/123/profile", opts)
	require.NoError(t, err)

	assert.NotEqual(t, interfaces.MatchIgnoreAfter, got.Pattern.MatchStrategy)
	assert.NotContains(t, got.Pattern.PatternString, "**")
}

// TestAggressiveHostCollapse verifies deep subdomains collapse to a
// contains pattern over the last two labels in aggressive mode.
func TestAggressiveHostCollapse(t *testing.T) {
	g := newGeneralizer()

	opts := interfaces.DefaultOptions()
	opts.Mode = interfaces.ModeAggressive
	got, err := g.Analyze("https://edge-7.cdn.eu.example.com/assets/logo", opts)
	require.NoError(t, err)

	assert.Equal(t, interfaces.MatchContains, got.Pattern.MatchStrategy)
	assert.Equal(t, "*example.com*", got.Pattern.PatternString)

	// moderate mode keeps the host exact
	got, err = g.Analyze("https://edge-7.cdn.eu.example.com/assets/logo", interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.NotEqual(t, interfaces.MatchContains, got.Pattern.MatchStrategy)
}

// TestNumericSegmentScenario verifies the canonical org/project wildcard
// synthesis.
func TestNumericSegmentScenario(t *testing.T) {
	g := newGeneralizer()

	got, err := g.Analyze("https://dashboard.saas.com/org/98765/project/54321/settings", interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "https://dashboard.saas.com/org/*/project/*/settings", got.Pattern.PatternString)
	assert.Equal(t, interfaces.MatchWildcard, got.Pattern.MatchStrategy)

	byValue := map[string]*interfaces.SegmentClassification{}
	for _, seg := range got.Pattern.Segments {
		byValue[seg.Segment.RawValue] = seg.Classification
	}
	require.NotNil(t, byValue["98765"])
	assert.Equal(t, interfaces.CategoryNumericID, byValue["98765"].Category)
	require.NotNil(t, byValue["54321"])
	assert.Equal(t, interfaces.CategoryNumericID, byValue["54321"].Category)
	assert.Nil(t, byValue["settings"])
}

// TestWildcardRoundTrip verifies re-substituting original segment values
// into a wildcard pattern reproduces the source URL exactly.
func TestWildcardRoundTrip(t *testing.T) {
	g := newGeneralizer()

	source := "https://dashboard.saas.com/org/98765/project/54321/settings"
	got, err := g.Analyze(source, interfaces.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, interfaces.MatchWildcard, got.Pattern.MatchStrategy)

	rebuilt := got.Pattern.PatternString
	for _, seg := range got.Pattern.Segments {
		if seg.Classification != nil {
			rebuilt = strings.Replace(rebuilt, "*", seg.Segment.RawValue, 1)
		}
	}
	assert.Equal(t, source, rebuilt)
}

// TestExactStrategyWhenNothingVolatile verifies static URLs keep the exact
// strategy and earn the zero-volatile confidence bonus.
func TestExactStrategyWhenNothingVolatile(t *testing.T) {
	g := newGeneralizer()

	got, err := g.Analyze("https://docs.example.com/guides/getting-started", interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, interfaces.MatchExact, got.Pattern.MatchStrategy)
	assert.Equal(t, "https://docs.example.com/guides/getting-started", got.Pattern.PatternString)
	assert.InDelta(t, 1.0, got.Pattern.Confidence, 1e-9)
}

// TestQueryAndHashDroppedByDefault verifies the default preserve options.
func TestQueryAndHashDroppedByDefault(t *testing.T) {
	g := newGeneralizer()

	got, err := g.Analyze("https://shop.example.com/items/123456?sort=asc#reviews", interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, got.Pattern.PatternString, "sort")
	assert.NotContains(t, got.Pattern.PatternString, "reviews")

	opts := interfaces.DefaultOptions()
	opts.PreserveQuery = true
	opts.PreserveHash = true
	got, err = g.Analyze("https://shop.example.com/items/123456?sort=asc#reviews", opts)
	require.NoError(t, err)
	assert.Contains(t, got.Pattern.PatternString, "sort=asc")
	assert.Contains(t, got.Pattern.PatternString, "#reviews")
}

// TestEnvironmentDetection verifies hostname-based environment inference and
// the non-production warning.
func TestEnvironmentDetection(t *testing.T) {
	g := newGeneralizer()

	cases := []struct {
		url  string
		want interfaces.Environment
	}{
		{"http://localhost:3000/app", interfaces.EnvLocal},
		{"http://127.0.0.1/app", interfaces.EnvLocal},
		{"https://myapp.local/app", interfaces.EnvLocal},
		{"https://dev.example.com/app", interfaces.EnvDevelopment},
		{"https://staging.example.com/app", interfaces.EnvStaging},
		{"https://app.example.com/app", interfaces.EnvProduction},
	}
	for _, tc := range cases {
		got, err := g.Analyze(tc.url, interfaces.DefaultOptions())
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.want, got.Environment, tc.url)

		hasWarning := false
		for _, w := range got.Warnings {
			if w.Code == urlgen.WarnNonProduction {
				hasWarning = true
				assert.NotEmpty(t, w.Remediation)
			}
		}
		assert.Equal(t, tc.want != interfaces.EnvProduction, hasWarning, tc.url)
	}
}

// TestContextGateInURL verifies the short-numeric gate through a whole URL:
// /user/4827/edit is volatile, /page/4827/2 is not.
func TestContextGateInURL(t *testing.T) {
	g := newGeneralizer()

	got, err := g.Analyze("https://app.example.com/user/4827/edit", interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/user/*/edit", got.Pattern.PatternString)

	got, err = g.Analyze("https://app.example.com/page/4827/2", interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/page/4827/2", got.Pattern.PatternString)
	assert.Equal(t, interfaces.MatchExact, got.Pattern.MatchStrategy)
}

// TestSuspectedDynamicWarning verifies the zero-volatile digit-run warning.
func TestSuspectedDynamicWarning(t *testing.T) {
	g := newGeneralizer()

	got, err := g.Analyze("https://app.example.com/page/4827/2", interfaces.DefaultOptions())
	require.NoError(t, err)

	found := false
	for _, w := range got.Warnings {
		if w.Code == urlgen.WarnSuspectedDynamic {
			found = true
		}
	}
	assert.True(t, found)
}

// TestTooBroadWarning verifies patterns exceeding the wildcard limit warn.
func TestTooBroadWarning(t *testing.T) {
	g := newGeneralizer()

	opts := interfaces.DefaultOptions()
	opts.MaxWildcards = 1
	got, err := g.Analyze("https://dashboard.saas.com/org/98765/project/54321/settings", opts)
	require.NoError(t, err)

	found := false
	for _, w := range got.Warnings {
		if w.Code == urlgen.WarnTooBroad {
			found = true
		}
	}
	assert.True(t, found)
}

// TestAPIPathConfidenceBoost verifies the API-path confidence bonus.
func TestAPIPathConfidenceBoost(t *testing.T) {
	g := newGeneralizer()

	api, err := g.Analyze("https://app.example.com/api/users/123456/sessions/987654/events/555555", interfaces.DefaultOptions())
	require.NoError(t, err)
	plain, err2 := g.Analyze("https://app.example.com/web/users/123456/sessions/987654/events/555555", interfaces.DefaultOptions())
	require.NoError(t, err2)

	assert.InDelta(t, 0.15, api.Pattern.Confidence-plain.Pattern.Confidence, 1e-9)
}

// TestOversimplifiedGuard verifies the legacy fallback to the literal URL
// when a fragment URL collapses far below its source length.
func TestOversimplifiedGuard(t *testing.T) {
	g := newGeneralizer()

	long := "https://spa.example.com/app#/workspaces/production-alpha/projects/analytics-pipeline/dashboards/weekly-retention-overview"
	got, err := g.Analyze(long, interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, long, got.Pattern.PatternString)
	assert.Equal(t, interfaces.MatchExact, got.Pattern.MatchStrategy)
}
