/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter_test.go
Description: Tests for the rule formatter. Covers legacy shadow syntax
rejection, length downgrades, wildcard and localhost warnings, the regex
downgrade pass, and the deterministic explanation/copy-instruction strings.
*/

package rules_test

import (
	"strings"
	"testing"

	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/kleascm/selector-forge/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectorCandidate(sel string) interfaces.CandidateSelector {
	return interfaces.CandidateSelector{
		SelectorString: sel,
		Specificity:    interfaces.SpecificityOf(sel),
		IsStable:       true,
	}
}

func urlPattern(pattern string) interfaces.GeneralizedURLPattern {
	return interfaces.GeneralizedURLPattern{
		SourceURL:     pattern,
		PatternString: pattern,
		MatchStrategy: interfaces.MatchWildcard,
	}
}

// TestFormatEmptyInput verifies the tagged union rejects an empty input.
func TestFormatEmptyInput(t *testing.T) {
	f := rules.New()

	got, err := f.Format(interfaces.RuleInput{}, interfaces.RuleElement, interfaces.DefaultOptions())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, rules.ErrEmptyInput)
}

// TestFormatCleanSelector verifies a clean selector formats at full tier
// with no warnings.
func TestFormatCleanSelector(t *testing.T) {
	f := rules.New()

	got, err := f.Format(interfaces.SelectorInput(selectorCandidate("#submit-btn")), interfaces.RuleElement, interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, interfaces.RuleElement, got.Kind)
	assert.Equal(t, "#submit-btn", got.Body)
	assert.Equal(t, interfaces.TierFull, got.Tier)
	assert.Empty(t, got.Warnings)
	assert.NotEmpty(t, got.Explanation)
	assert.Contains(t, got.CopyInstructions, "element rule")
}

// TestLegacyShadowSyntax verifies ::shadow forces tier none with a warning,
// and a selector that is nothing but legacy syntax errors out.
func TestLegacyShadowSyntax(t *testing.T) {
	f := rules.New()

	got, err := f.Format(interfaces.SelectorInput(selectorCandidate("#host ::shadow .btn")), interfaces.RuleElement, interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, interfaces.TierNone, got.Tier)
	require.NotEmpty(t, got.Warnings)
	assert.Contains(t, got.Warnings[0], "deprecated shadow-piercing")

	got, err = f.Format(interfaces.SelectorInput(selectorCandidate("#app /deep/ button")), interfaces.RuleElement, interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, interfaces.TierNone, got.Tier)

	_, err = f.Format(interfaces.SelectorInput(selectorCandidate("::shadow")), interfaces.RuleElement, interfaces.DefaultOptions())
	assert.ErrorIs(t, err, rules.ErrLegacyOnlySelector)
}

// TestOverlongSelectorDowngrade verifies the 200-character fragility rule.
func TestOverlongSelectorDowngrade(t *testing.T) {
	f := rules.New()

	long := "#root " + strings.Repeat("div.wrapper > ", 20) + "button"
	require.Greater(t, len(long), 200)

	got, err := f.Format(interfaces.SelectorInput(selectorCandidate(long)), interfaces.RuleElement, interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, interfaces.TierPartial, got.Tier)
	require.NotEmpty(t, got.Warnings)
	assert.Contains(t, got.Warnings[0], "fragile")
}

// TestSpecificityAgreement verifies the formatter recomputes specificity
// with the shared formula and stays silent when the candidate agrees.
func TestSpecificityAgreement(t *testing.T) {
	f := rules.New()

	cs := selectorCandidate("#a.b.c[data-x]")
	require.Equal(t, 130, cs.Specificity)

	got, err := f.Format(interfaces.SelectorInput(cs), interfaces.RuleElement, interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, got.Warnings)

	// a stale carried value is flagged
	cs.Specificity = 999
	got, err = f.Format(interfaces.SelectorInput(cs), interfaces.RuleElement, interfaces.DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, got.Warnings)
	assert.Contains(t, got.Warnings[0], "recomputed as 130")
}

// TestURLPatternWarnings verifies the wildcard-count and localhost warnings.
func TestURLPatternWarnings(t *testing.T) {
	f := rules.New()

	broad := urlPattern("https://*.example.com/*/a/*/b/*/c/*/d/*")
	got, err := f.Format(interfaces.URLPatternInput(broad), interfaces.RulePage, interfaces.DefaultOptions())
	require.NoError(t, err)
	assertHasWarning(t, got.Warnings, "too broad")

	local := urlPattern("http://localhost:3000/app/*")
	got, err = f.Format(interfaces.URLPatternInput(local), interfaces.RulePage, interfaces.DefaultOptions())
	require.NoError(t, err)
	assertHasWarning(t, got.Warnings, "will not work in production")
}

// TestRegexDowngrade verifies common regex idioms rewrite to wildcards and
// the pattern then validates clean.
func TestRegexDowngrade(t *testing.T) {
	f := rules.New()

	p := urlPattern(`^https://app\.example\.com/users/\d+$`)
	got, err := f.Format(interfaces.URLPatternInput(p), interfaces.RulePage, interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "https://app.example.com/users/*", got.Body)
	assert.NotEqual(t, interfaces.TierNone, got.Tier)
	assertHasWarning(t, got.Warnings, "rewritten to simple wildcards")
}

// TestIrreducibleRegex verifies patterns with residue the wildcard syntax
// cannot express are forced to tier none.
func TestIrreducibleRegex(t *testing.T) {
	f := rules.New()

	p := urlPattern(`https://app.example.com/(?:users|accounts)/profile`)
	got, err := f.Format(interfaces.URLPatternInput(p), interfaces.RulePage, interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, interfaces.TierNone, got.Tier)

	p = urlPattern(`https://app.example.com/users/\S+`)
	got, err = f.Format(interfaces.URLPatternInput(p), interfaces.RulePage, interfaces.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, interfaces.TierNone, got.Tier)
}

// TestDowngradeRegexHelper exercises the rewrite table directly.
func TestDowngradeRegexHelper(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`^https://x\.com/a/\d+$`, "https://x.com/a/*"},
		{`https://x.com/[^?/]+/end`, "https://x.com/*/end"},
		{`https://x.com/\w+`, "https://x.com/*"},
		{"https://x.com/app#/**", "https://x.com/app#/**"},
	}
	for _, tc := range cases {
		got, _ := rules.DowngradeRegex(tc.in)
		assert.Equal(t, tc.want, got, "pattern %q", tc.in)
	}
}

// TestCopyInstructionsDeterministic verifies instructions derive only from
// kind and flags.
func TestCopyInstructionsDeterministic(t *testing.T) {
	f := rules.New()

	a, err := f.Format(interfaces.URLPatternInput(urlPattern("https://app.example.com/org/*")), interfaces.RulePage, interfaces.DefaultOptions())
	require.NoError(t, err)
	b, err := f.Format(interfaces.URLPatternInput(urlPattern("https://app.example.com/org/*")), interfaces.RulePage, interfaces.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a.Explanation, b.Explanation)
	assert.Equal(t, a.CopyInstructions, b.CopyInstructions)
	assert.Contains(t, a.CopyInstructions, "page rule")
	assert.Contains(t, a.CopyInstructions, "URL pattern")
}

// TestSelectorCompatibility verifies the shared verdict helper.
func TestSelectorCompatibility(t *testing.T) {
	assert.Equal(t, interfaces.TierFull, rules.SelectorCompatibility("#submit-btn"))
	assert.Equal(t, interfaces.TierNone, rules.SelectorCompatibility("#a /deep/ b"))
	assert.Equal(t, interfaces.TierPartial, rules.SelectorCompatibility(strings.Repeat("div > ", 40)+"span"))
}

func assertHasWarning(t *testing.T, warnings []string, fragment string) {
	t.Helper()
	for _, w := range warnings {
		if strings.Contains(w, fragment) {
			return
		}
	}
	t.Fatalf("expected a warning containing %q, got %v", fragment, warnings)
}
