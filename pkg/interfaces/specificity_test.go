/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: specificity_test.go
Description: Tests for the shared specificity scorer used by both the
selector generalizer and the rule formatter.
*/

package interfaces_test

import (
	"testing"

	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/stretchr/testify/assert"
)

// TestSpecificityFormula verifies the fixed formula: id +100, class/attr/
// pseudo +10, bare tag +1.
func TestSpecificityFormula(t *testing.T) {
	cases := []struct {
		selector string
		want     int
	}{
		{"#a.b.c[data-x]", 130},
		{"#submit-btn", 100},
		{`[data-testid="submit"]`, 10},
		{`#profile-card [data-testid="submit"]`, 110},
		{"li:nth-child(3)", 11},
		{"div > main > span", 3},
		{"button", 1},
		{`nav[role="navigation"]`, 11},
		{"button.btn.primary", 21},
		{"#shell #payframe", 200},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, interfaces.SpecificityOf(tc.selector), "selector %q", tc.selector)
	}
}

// TestSpecificityIdempotent verifies repeated scoring is stable.
func TestSpecificityIdempotent(t *testing.T) {
	sel := `#app > form[name="checkout"] [aria-label="Pay"]`
	first := interfaces.SpecificityOf(sel)
	assert.Equal(t, first, interfaces.SpecificityOf(sel))
	assert.Equal(t, 121, first)
}
