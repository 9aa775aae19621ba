/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Rule formatter for Selector Forge. Renders a generalized selector
or URL pattern into the external rule system's syntax, validates it against
that syntax's constraints (legacy shadow piercing, wildcard and length limits,
regex residue), and derives the operator-facing explanation and copy steps.
*/

package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kleascm/selector-forge/pkg/interfaces"
)

// ErrEmptyInput is returned when the tagged-union input has no variant set.
var ErrEmptyInput = errors.New("rule input has no selector or url pattern")

// ErrLegacyOnlySelector is returned when a selector consists solely of
// deprecated shadow-piercing syntax and nothing usable remains.
var ErrLegacyOnlySelector = errors.New("selector contains only deprecated shadow-piercing syntax")

// legacyTokens are shadow-piercing constructs removed from the CSS spec;
// the external rule system rejects them outright.
var legacyTokens = []string{"/deep/", "::shadow"}

// maxSelectorLength is the length beyond which a selector is flagged fragile
// and the rule is downgraded to partial compatibility.
const maxSelectorLength = 200

// Formatter renders engine outputs into external rules. Stateless.
type Formatter struct{}

// New creates a formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format renders the input into an external rule. The input is an explicit
// tagged union decided by the caller. Degraded conditions attach warnings
// and lower the compatibility tier; only inputs with nothing salvageable
// return an error.
func (f *Formatter) Format(input interfaces.RuleInput, kind interfaces.RuleKind, opts interfaces.Options) (*interfaces.ExternalRule, error) {
	switch {
	case input.Selector != nil:
		return f.formatSelector(input.Selector, kind)
	case input.URLPattern != nil:
		return f.formatURLPattern(input.URLPattern, kind, opts)
	default:
		return nil, ErrEmptyInput
	}
}

func (f *Formatter) formatSelector(cs *interfaces.CandidateSelector, kind interfaces.RuleKind) (*interfaces.ExternalRule, error) {
	rule := &interfaces.ExternalRule{
		Kind: kind,
		Body: cs.SelectorString,
		Tier: interfaces.TierFull,
	}

	if hasLegacySyntax(cs.SelectorString) {
		if legacyOnly(cs.SelectorString) {
			return nil, fmt.Errorf("%w: %q", ErrLegacyOnlySelector, cs.SelectorString)
		}
		rule.Tier = interfaces.TierNone
		rule.Warnings = append(rule.Warnings,
			"selector uses deprecated shadow-piercing syntax (/deep/ or ::shadow) and will not work in the external rule system")
	}

	if len(cs.SelectorString) > maxSelectorLength {
		rule.Warnings = append(rule.Warnings,
			fmt.Sprintf("selector is %d characters long and likely fragile", len(cs.SelectorString)))
		if rule.Tier == interfaces.TierFull {
			rule.Tier = interfaces.TierPartial
		}
	}

	// Validator-side specificity uses the exact same shared formula as the
	// generator's ranker, so the two can never disagree.
	if spec := interfaces.SpecificityOf(cs.SelectorString); spec != cs.Specificity {
		rule.Warnings = append(rule.Warnings,
			fmt.Sprintf("selector specificity recomputed as %d (candidate carried %d)", spec, cs.Specificity))
	}

	rule.Explanation = explain(rule)
	rule.CopyInstructions = copySteps(rule)
	return rule, nil
}

func (f *Formatter) formatURLPattern(p *interfaces.GeneralizedURLPattern, kind interfaces.RuleKind, opts interfaces.Options) (*interfaces.ExternalRule, error) {
	body, downgraded := DowngradeRegex(p.PatternString)

	rule := &interfaces.ExternalRule{
		Kind: kind,
		Body: body,
		Tier: interfaces.TierFull,
	}
	if downgraded {
		rule.Warnings = append(rule.Warnings,
			"regex idioms in the pattern were rewritten to simple wildcards")
	}

	if hasRegexResidue(body) {
		rule.Tier = interfaces.TierNone
		rule.Warnings = append(rule.Warnings,
			"pattern contains regex syntax the external wildcard format cannot express")
	}

	maxWildcards := opts.MaxWildcards
	if maxWildcards <= 0 {
		maxWildcards = 5
	}
	if n := strings.Count(body, "*"); n > maxWildcards {
		rule.Warnings = append(rule.Warnings,
			fmt.Sprintf("pattern contains %d wildcards and may be too broad", n))
	}

	if strings.Contains(body, "localhost") {
		rule.Warnings = append(rule.Warnings,
			"pattern contains \"localhost\" and will not work in production")
	}

	rule.Explanation = explain(rule)
	rule.CopyInstructions = copySteps(rule)
	return rule, nil
}

// SelectorCompatibility is the external-format verdict for a bare selector
// string, shared with the selector generalizer's candidate ranking.
func SelectorCompatibility(selector string) interfaces.CompatibilityTier {
	if hasLegacySyntax(selector) {
		return interfaces.TierNone
	}
	if len(selector) > maxSelectorLength {
		return interfaces.TierPartial
	}
	return interfaces.TierFull
}

func hasLegacySyntax(selector string) bool {
	for _, tok := range legacyTokens {
		if strings.Contains(selector, tok) {
			return true
		}
	}
	return false
}

// legacyOnly reports whether stripping the legacy tokens leaves nothing to
// select with.
func legacyOnly(selector string) bool {
	stripped := selector
	for _, tok := range legacyTokens {
		stripped = strings.ReplaceAll(stripped, tok, " ")
	}
	return strings.TrimSpace(stripped) == ""
}

// regexDowngrades maps common regex idioms to their wildcard equivalents,
// applied in order before re-validation.
var regexDowngrades = []struct{ from, to string }{
	{`[^?/]+`, "*"},
	{`\d+`, "*"},
	{`\w+`, "*"},
	{`.+`, "*"},
	{`.*`, "*"},
	{`\.`, "."},
	{`\/`, "/"},
}

// DowngradeRegex rewrites common regex idioms into the external wildcard
// syntax and strips anchors. Returns the rewritten pattern and whether
// anything changed.
func DowngradeRegex(pattern string) (string, bool) {
	out := pattern
	for _, d := range regexDowngrades {
		out = strings.ReplaceAll(out, d.from, d.to)
	}
	out = strings.TrimPrefix(out, "^")
	out = strings.TrimSuffix(out, "$")
	// collapse wildcard runs produced by adjacent rewrites, but keep the
	// deliberate ignore-after "**" marker intact
	for strings.Contains(out, "***") {
		out = strings.ReplaceAll(out, "***", "**")
	}
	return out, out != pattern
}

// hasRegexResidue reports whether irreducible regex syntax remains after the
// downgrade pass: backslash escapes or non-capturing groups.
func hasRegexResidue(pattern string) bool {
	return strings.Contains(pattern, `\`) || strings.Contains(pattern, "(?:")
}

// explain derives the plain-language summary from the rule kind and flags.
func explain(rule *interfaces.ExternalRule) string {
	var b strings.Builder
	switch rule.Kind {
	case interfaces.RulePage:
		b.WriteString("Page rule: matches page URLs against the pattern, where * stands for any single value and ** for any continuation.")
	default:
		b.WriteString("Element rule: targets the page element matched by the CSS selector.")
	}
	switch rule.Tier {
	case interfaces.TierFull:
		b.WriteString(" The rule is fully compatible with the external rule system.")
	case interfaces.TierPartial:
		b.WriteString(" The rule should work but carries conditions worth reviewing before use.")
	case interfaces.TierNone:
		b.WriteString(" The rule is NOT compatible with the external rule system as written.")
	}
	if len(rule.Warnings) > 0 {
		b.WriteString(fmt.Sprintf(" %d warning(s) attached.", len(rule.Warnings)))
	}
	return b.String()
}

// copySteps derives the operator checklist from the rule kind and flags.
func copySteps(rule *interfaces.ExternalRule) string {
	target := "selector"
	create := "element rule"
	if rule.Kind == interfaces.RulePage {
		target = "URL pattern"
		create = "page rule"
	}
	steps := []string{
		"1. Copy the rule body below.",
		fmt.Sprintf("2. In the external rule manager, create a new %s.", create),
		fmt.Sprintf("3. Paste the body into the %s field.", target),
	}
	if rule.Tier == interfaces.TierNone {
		steps = append(steps, "4. Do not save as-is: resolve the compatibility warnings first.")
	} else if len(rule.Warnings) > 0 {
		steps = append(steps, "4. Review the attached warnings, then save.")
	} else {
		steps = append(steps, "4. Save the rule.")
	}
	return strings.Join(steps, "\n")
}
