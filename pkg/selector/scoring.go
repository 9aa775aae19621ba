/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: scoring.go
Description: Stability predicate, class-list filtering, and candidate ranking
for the selector generalizer. The specificity formula itself lives in
pkg/interfaces so the rule formatter scores identically.
*/

package selector

import (
	"regexp"
	"strings"

	"github.com/kleascm/selector-forge/pkg/interfaces"
)

// knownStable are selector shapes that survive re-renders: explicit ids and
// author-owned attributes.
var knownStable = []string{"#", "[data-testid", "[data-component", "[aria-label", "[role="}

// knownUnstable are shapes tied to render order or build output.
var knownUnstable = []string{":nth-child", ":nth-of-type"}

var (
	longDigits = regexp.MustCompile(`\d{3,}`)
	hexRun     = regexp.MustCompile(`[0-9a-fA-F]{6,}`)
	anyDigit   = regexp.MustCompile(`\d`)
)

// IsStable reports whether a selector string matches at least one
// known-stable pattern and none of the known-unstable ones.
func IsStable(selector string) bool {
	stable := false
	for _, p := range knownStable {
		if strings.Contains(selector, p) {
			stable = true
			break
		}
	}
	if !stable {
		return false
	}
	for _, p := range knownUnstable {
		if strings.Contains(selector, p) {
			return false
		}
	}
	if longDigits.MatchString(selector) {
		return false
	}
	if hasGeneratedHexRun(selector) {
		return false
	}
	return true
}

// hasGeneratedHexRun finds 6+ char hex-looking runs. A run must contain a
// digit: pure letter runs are usually ordinary words ("header", "badge").
func hasGeneratedHexRun(s string) bool {
	for _, run := range hexRun.FindAllString(s, -1) {
		if anyDigit.MatchString(run) {
			return true
		}
	}
	return false
}

// FilterClasses drops generated class tokens (long embedded numbers, hex
// hash suffixes) and keeps at most the first three survivors in original
// order.
func FilterClasses(classes []string) []string {
	var out []string
	for _, cls := range classes {
		if cls == "" {
			continue
		}
		if longDigits.MatchString(cls) || hasGeneratedHexRun(cls) {
			continue
		}
		out = append(out, cls)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// RankScore is the best-candidate score: stability dominates, then the
// specificity sweet spot, then brevity, then external-format compatibility.
func RankScore(c interfaces.CandidateSelector, checkCompatibility bool) int {
	score := 0
	if c.IsStable {
		score += 50
	}
	switch {
	case c.Specificity >= 100 && c.Specificity <= 200:
		score += 30
	case c.Specificity > 200:
		score += 10
	default:
		score += 20
	}
	if n := len(c.SelectorString); n < 50 {
		score += 20
	} else if n < 100 {
		score += 10
	}
	if checkCompatibility && compatible(c.SelectorString) {
		score += 25
	}
	return score
}
