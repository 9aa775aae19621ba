/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: specificity.go
Description: Shared CSS specificity scorer. Lives here so the selector
generalizer's internal ranking and the rule formatter's validation compute
the exact same number for the same selector string.
*/

package interfaces

import "strings"

// SpecificityOf scores a selector string: +100 per id fragment, +10 per
// class, attribute, or pseudo-class fragment, +1 per bare tag fragment.
// Combinators (space, >) only separate compounds and score nothing.
func SpecificityOf(selector string) int {
	score := 0
	for _, part := range strings.Fields(strings.ReplaceAll(selector, ">", " ")) {
		score += compoundSpecificity(part)
	}
	return score
}

// compoundSpecificity scores one compound selector (no combinators).
func compoundSpecificity(compound string) int {
	score := 0
	i := 0
	for i < len(compound) {
		switch compound[i] {
		case '#':
			score += 100
			i = skipIdent(compound, i+1)
		case '.':
			score += 10
			i = skipIdent(compound, i+1)
		case ':':
			score += 10
			i++
			if i < len(compound) && compound[i] == ':' {
				i++
			}
			i = skipIdent(compound, i)
			// functional pseudo-class argument, e.g. :nth-child(2)
			if i < len(compound) && compound[i] == '(' {
				end := strings.IndexByte(compound[i:], ')')
				if end < 0 {
					return score
				}
				i += end + 1
			}
		case '[':
			score += 10
			end := strings.IndexByte(compound[i:], ']')
			if end < 0 {
				return score
			}
			i += end + 1
		default:
			if isIdentChar(compound[i]) || compound[i] == '*' {
				score++
				i = skipIdent(compound, i+1)
			} else {
				i++
			}
		}
	}
	return score
}

// skipIdent returns the index just past the identifier starting at i.
func skipIdent(s string, i int) int {
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	return i
}

func isIdentChar(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z')
}
