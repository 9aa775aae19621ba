/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: selector.go
Description: Selector command implementation for Selector Forge. Generates
ranked CSS selector candidates from a captured element snapshot, with optional
elementRule export.
*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/selector-forge/pkg/capture"
	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/kleascm/selector-forge/pkg/rules"
	"github.com/kleascm/selector-forge/pkg/selector"
)

// RunSelector executes the selector generation process
func RunSelector(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("selector generation failed: %v", r)
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

	snapshotPath := viper.GetString("snapshot")
	raw, err := os.ReadFile(snapshotPath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot %q: %w", snapshotPath, err)
	}

	element, chain, err := capture.DecodeSnapshot(raw)
	if err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	logger, err := newCommandLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	result, err := selector.New().Generate(element, chain, opts)
	if err != nil {
		return fmt.Errorf("failed to generate selector: %w", err)
	}

	logger.LogSelector(result.Best.SelectorString, result.Best.Specificity, len(result.Candidates), map[string]interface{}{
		"shadow_aware": result.Best.ShadowAware,
	})

	if err := printJSON(result); err != nil {
		return err
	}

	if viper.GetBool("selector_emit_rule") {
		rule, err := rules.New().Format(interfaces.SelectorInput(result.Best), interfaces.RuleElement, opts)
		if err != nil {
			return fmt.Errorf("failed to export rule: %w", err)
		}
		logger.LogRuleExport(string(rule.Kind), string(rule.Tier), len(rule.Warnings), nil)
		if err := printJSON(rule); err != nil {
			return err
		}
	}

	return nil
}
