/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: rule.go
Description: Rule command implementation for Selector Forge. Exports a CSS
selector as an elementRule or a generalized URL as a pageRule with a
compatibility verdict and copy instructions.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/selector-forge/pkg/classifier"
	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/kleascm/selector-forge/pkg/rules"
	"github.com/kleascm/selector-forge/pkg/urlgen"
)

// RunRule executes the rule export process
func RunRule(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule export failed: %v", r)
		}
	}()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	selectorStr := viper.GetString("rule.selector")
	rawURL := viper.GetString("rule.url")

	if (selectorStr == "") == (rawURL == "") {
		return fmt.Errorf("exactly one of --selector or --url is required")
	}

	logger, err := newCommandLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	formatter := rules.New()

	var rule *interfaces.ExternalRule
	if selectorStr != "" {
		candidate := interfaces.CandidateSelector{
			SelectorString: selectorStr,
			Specificity:    interfaces.SpecificityOf(selectorStr),
		}
		rule, err = formatter.Format(interfaces.SelectorInput(candidate), interfaces.RuleElement, opts)
		if err != nil {
			return fmt.Errorf("failed to export selector rule: %w", err)
		}
	} else {
		analysis, aerr := urlgen.New(classifier.New()).Analyze(rawURL, opts)
		if aerr != nil {
			return fmt.Errorf("failed to analyze %q: %w", rawURL, aerr)
		}
		rule, err = formatter.Format(interfaces.URLPatternInput(analysis.Pattern), interfaces.RulePage, opts)
		if err != nil {
			return fmt.Errorf("failed to export page rule: %w", err)
		}
	}

	logger.LogRuleExport(string(rule.Kind), string(rule.Tier), len(rule.Warnings), nil)

	return printJSON(rule)
}
