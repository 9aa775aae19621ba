/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: verifier.go
Description: Selector verification against captured HTML using goquery.
Checks that a generated selector actually matches the page it was built from
and how many times, so ambiguous selectors surface before a rule ships.
*/

package capture

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Verifier checks selectors against a parsed HTML snapshot.
type Verifier struct {
	doc *goquery.Document
}

// NewVerifier parses the captured HTML once.
func NewVerifier(html string) (*Verifier, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing captured html: %w", err)
	}
	return &Verifier{doc: doc}, nil
}

// Matches returns how many elements the selector hits in the snapshot.
// Invalid selector syntax is reported as an error, never a panic.
func (v *Verifier) Matches(selector string) (n int, err error) {
	// goquery panics on selectors cascadia cannot compile; convert that
	// boundary condition into a plain error per the engine's error model.
	defer func() {
		if r := recover(); r != nil {
			n = 0
			err = fmt.Errorf("invalid selector %q: %v", selector, r)
		}
	}()
	return v.doc.Find(selector).Length(), nil
}

// VerifyUnique reports whether the selector matches exactly one element,
// with an operator-facing warning when it does not.
func (v *Verifier) VerifyUnique(selector string) (bool, string, error) {
	n, err := v.Matches(selector)
	if err != nil {
		return false, "", err
	}
	switch n {
	case 1:
		return true, "", nil
	case 0:
		return false, "selector does not match any element in the captured page; shadow boundaries may hide the target", nil
	default:
		return false, fmt.Sprintf("selector matches %d elements in the captured page; the rule may fire on the wrong one", n), nil
	}
}
