/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generator.go
Description: Selector generalizer for Selector Forge. Builds candidate CSS
selectors for a captured DOM element by walking a fixed attribute priority
order, expresses shadow-DOM boundaries under the caller-selected strategy,
and picks the best candidate by the stability/specificity/brevity score.
*/

package selector

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/kleascm/selector-forge/pkg/rules"
)

// ErrNilElement marks a missing or disconnected element snapshot. No partial
// result is produced for this class.
var ErrNilElement = errors.New("nil element descriptor")

// maxAncestorHops caps the full-path strategy's climb toward the document
// root.
const maxAncestorHops = 5

// Generator builds selectors from element snapshots. Stateless; safe for
// concurrent use.
type Generator struct{}

// New creates a generator.
func New() *Generator {
	return &Generator{}
}

// Generate builds all viable candidate selectors for the element and returns
// the best one plus the full candidate list. Closed shadow boundaries
// degrade the result with a warning; they never fail the call.
func (g *Generator) Generate(el *interfaces.ElementDescriptor, chain interfaces.ShadowChain, opts interfaces.Options) (*interfaces.SelectorResult, error) {
	if el == nil {
		return nil, ErrNilElement
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	target, closedWarning := reachableTarget(el, chain)
	if target == nil {
		return nil, fmt.Errorf("%w: closed shadow boundary carries no host", ErrNilElement)
	}
	reachableChain := openPrefix(chain)

	var candidates []interfaces.CandidateSelector
	if opts.ShadowStrategy == interfaces.ShadowMinimal {
		if minimal, ok := minimalSelector(target, reachableChain); ok {
			cs := interfaces.CandidateSelector{SelectorString: minimal}
			candidates = append(candidates, makeCandidate(cs, len(reachableChain) > 0))
		}
		// minimal falls back to host-based candidates when inapplicable,
		// and host-based alternatives are listed either way
	}

	for _, frag := range targetFragments(target, opts) {
		sel := wrapFragment(frag, target, reachableChain, opts)
		candidates = append(candidates, makeCandidate(sel, len(reachableChain) > 0))
	}
	candidates = dedupe(candidates)

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: element has no selectable features", ErrNilElement)
	}

	if closedWarning != "" {
		for i := range candidates {
			candidates[i].Warnings = append(candidates[i].Warnings, closedWarning)
		}
	}

	best := pickBest(candidates, opts)
	return &interfaces.SelectorResult{
		ID:          uuid.NewString(),
		Best:        best,
		Candidates:  candidates,
		GeneratedAt: time.Now(),
	}, nil
}

// reachableTarget walks the shadow chain for closed boundaries. When one is
// found, the host of the outermost closed boundary becomes the best-effort
// target, since everything behind it is unreachable by CSS.
func reachableTarget(el *interfaces.ElementDescriptor, chain interfaces.ShadowChain) (*interfaces.ElementDescriptor, string) {
	for _, b := range chain {
		if b.Mode == interfaces.ShadowClosed {
			return b.Host, "closed shadow root limits access: selector targets the closest reachable host element"
		}
	}
	return el, ""
}

// openPrefix returns the boundaries in front of the first closed one, which
// are the only boundaries a selector can express.
func openPrefix(chain interfaces.ShadowChain) interfaces.ShadowChain {
	for i, b := range chain {
		if b.Mode == interfaces.ShadowClosed {
			return chain[:i]
		}
	}
	return chain
}

// fragment is one single-element selector plus its provenance.
type fragment struct {
	selector string
	// positional marks tag:nth-child fragments, which earn a warning.
	positional bool
}

// targetFragments applies the attribute priority order and returns every
// buildable single-element fragment, most preferred first.
func targetFragments(el *interfaces.ElementDescriptor, opts interfaces.Options) []fragment {
	var frags []fragment

	if el.ID != "" {
		frags = append(frags, fragment{selector: "#" + el.ID})
	}
	for _, attr := range []string{"data-testid", "data-component", "aria-label"} {
		if v, ok := el.Attributes[attr]; ok && v != "" {
			frags = append(frags, fragment{selector: fmt.Sprintf("[%s=%q]", attr, v)})
		}
	}
	if classes := FilterClasses(el.Classes); len(classes) > 0 {
		sel := el.TagName
		for _, cls := range classes {
			sel += "." + cls
		}
		frags = append(frags, fragment{selector: sel})
	}
	for _, attr := range []string{"data-pendo", "role", "name", "type"} {
		if v, ok := el.Attributes[attr]; ok && v != "" {
			frags = append(frags, fragment{selector: fmt.Sprintf("%s[%s=%q]", el.TagName, attr, v)})
		}
	}
	if opts.AllowPositional && el.NthChild > 0 {
		frags = append(frags, fragment{
			selector:   fmt.Sprintf("%s:nth-child(%d)", el.TagName, el.NthChild),
			positional: true,
		})
	}
	if el.TagName != "" {
		frags = append(frags, fragment{selector: el.TagName})
	}
	return frags
}

// hostFragment builds the single best fragment for a shadow host, using the
// same priority order without positional fallbacks.
func hostFragment(host *interfaces.ElementDescriptor) string {
	// a hand-edited snapshot may carry a boundary with no host; the wrapped
	// candidate degrades to the bare fragment
	if host == nil {
		return ""
	}
	hostOpts := interfaces.DefaultOptions()
	frags := targetFragments(host, hostOpts)
	if len(frags) == 0 {
		return ""
	}
	return frags[0].selector
}

// wrapFragment expresses the shadow chain around a target fragment under the
// selected strategy.
func wrapFragment(frag fragment, target *interfaces.ElementDescriptor, chain interfaces.ShadowChain, opts interfaces.Options) interfaces.CandidateSelector {
	warnings := []string{}
	if frag.positional {
		warnings = append(warnings, "positional selector is brittle when siblings are reordered")
	}

	selector := frag.selector
	switch {
	case len(chain) == 0 && opts.ShadowStrategy != interfaces.ShadowFullPath:
		// regular document tree, fragment stands alone

	case opts.ShadowStrategy == interfaces.ShadowFullPath:
		selector = fullPathSelector(frag.selector, target, chain)

	default:
		// host-based is the standard, externally-safe strategy: outermost
		// host fragment, a descendant combinator, then the target relative
		// to its shadow root. Minimal arrives here too as its fallback.
		if host := hostFragment(chain[0].Host); host != "" {
			selector = host + " " + frag.selector
		}
	}

	return interfaces.CandidateSelector{
		SelectorString: selector,
		Warnings:       warnings,
	}
}

// fullPathSelector chains ancestor fragments from the document side through
// every shadow host down to the target, joined with the child combinator and
// capped at maxAncestorHops ancestors.
func fullPathSelector(targetFrag string, target *interfaces.ElementDescriptor, chain interfaces.ShadowChain) string {
	var ancestors []string
	for _, b := range chain {
		if host := hostFragment(b.Host); host != "" {
			ancestors = append(ancestors, host)
		}
	}
	// climb the target's own parents inside its root, nearest first
	var climbed []string
	for p := target.Parent; p != nil; p = p.Parent {
		if frag := hostFragment(p); frag != "" {
			climbed = append(climbed, frag)
		}
	}
	// parents were collected innermost-out; flip to document order
	for i := len(climbed) - 1; i >= 0; i-- {
		ancestors = append(ancestors, climbed[i])
	}
	if len(ancestors) > maxAncestorHops {
		ancestors = ancestors[len(ancestors)-maxAncestorHops:]
	}
	parts := append(ancestors, targetFrag)
	out := parts[0]
	for _, p := range parts[1:] {
		out += " > " + p
	}
	return out
}

// minimalSelector attempts "#hostId .firstTargetClass". Inapplicable when
// the outermost host lacks an id or the target has no surviving class.
func minimalSelector(target *interfaces.ElementDescriptor, chain interfaces.ShadowChain) (string, bool) {
	if len(chain) == 0 || chain[0].Host == nil || chain[0].Host.ID == "" {
		return "", false
	}
	classes := FilterClasses(target.Classes)
	if len(classes) == 0 {
		return "", false
	}
	return "#" + chain[0].Host.ID + " ." + classes[0], true
}

// makeCandidate fills in the scoring metadata for a selector.
func makeCandidate(cs interfaces.CandidateSelector, shadowAware bool) interfaces.CandidateSelector {
	cs.Specificity = interfaces.SpecificityOf(cs.SelectorString)
	cs.IsStable = IsStable(cs.SelectorString)
	cs.ShadowAware = shadowAware
	return cs
}

func dedupe(candidates []interfaces.CandidateSelector) []interfaces.CandidateSelector {
	seen := map[string]bool{}
	out := candidates[:0]
	for _, c := range candidates {
		if seen[c.SelectorString] {
			continue
		}
		seen[c.SelectorString] = true
		out = append(out, c)
	}
	return out
}

// pickBest ranks candidates and returns the winner. Ties keep the earliest
// generated candidate so results are deterministic.
func pickBest(candidates []interfaces.CandidateSelector, opts interfaces.Options) interfaces.CandidateSelector {
	best := candidates[0]
	bestScore := RankScore(best, opts.CheckCompatibility)
	for _, c := range candidates[1:] {
		if s := RankScore(c, opts.CheckCompatibility); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// compatible exposes the formatter's verdict to the ranker.
func compatible(selector string) bool {
	return rules.SelectorCompatibility(selector) == interfaces.TierFull
}
