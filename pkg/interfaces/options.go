/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: options.go
Description: Engine options shared by the URL generalizer, selector generalizer,
and rule formatter. All fields have safe defaults; Validate() enforces the
allowed enum values before any analysis runs.
*/

package interfaces

import "fmt"

// Options configures a single analysis call. Zero value is not usable;
// construct with DefaultOptions and override fields as needed.
type Options struct {
	// Mode controls how aggressively URL structure is collapsed.
	Mode Aggressiveness `json:"mode"`
	// ShadowStrategy controls how shadow boundaries appear in selectors.
	ShadowStrategy ShadowStrategy `json:"shadow_strategy"`
	// PreserveQuery keeps the query string in generalized URL patterns.
	PreserveQuery bool `json:"preserve_query"`
	// PreserveHash keeps the fragment in generalized URL patterns.
	PreserveHash bool `json:"preserve_hash"`
	// MaxWildcards is the wildcard count above which a pattern is flagged
	// as too broad.
	MaxWildcards int `json:"max_wildcards"`
	// CheckCompatibility runs the external-format compatibility check when
	// ranking selector candidates.
	CheckCompatibility bool `json:"check_compatibility"`
	// AllowPositional permits tag:nth-child fallback selectors.
	AllowPositional bool `json:"allow_positional"`
}

// DefaultOptions returns the documented defaults: moderate generalization,
// host-based shadow strategy, query and hash dropped, 5 wildcards,
// compatibility checking on.
func DefaultOptions() Options {
	return Options{
		Mode:               ModeModerate,
		ShadowStrategy:     ShadowHostBased,
		PreserveQuery:      false,
		PreserveHash:       false,
		MaxWildcards:       5,
		CheckCompatibility: true,
		AllowPositional:    false,
	}
}

// Validate checks the options for invalid values.
func (o Options) Validate() error {
	switch o.Mode {
	case ModeConservative, ModeModerate, ModeAggressive:
		// ok
	default:
		return fmt.Errorf("unsupported aggressiveness mode: %s", o.Mode)
	}
	switch o.ShadowStrategy {
	case ShadowHostBased, ShadowFullPath, ShadowMinimal:
		// ok
	default:
		return fmt.Errorf("unsupported shadow strategy: %s", o.ShadowStrategy)
	}
	if o.MaxWildcards <= 0 {
		return fmt.Errorf("max_wildcards must be positive")
	}
	return nil
}
