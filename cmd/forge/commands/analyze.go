/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyze.go
Description: URL analysis command implementation for Selector Forge. Generalizes
URLs into stable match patterns with per-segment classification, confidence
scoring, and optional pageRule export.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/selector-forge/pkg/cache"
	"github.com/kleascm/selector-forge/pkg/classifier"
	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/kleascm/selector-forge/pkg/logging"
	"github.com/kleascm/selector-forge/pkg/rules"
	"github.com/kleascm/selector-forge/pkg/urlgen"
	"github.com/kleascm/selector-forge/pkg/utils"
)

const analysisCacheSize = 256

// analysisKey identifies one analysis in the memo cache. The same URL under a
// different mode is a different analysis.
type analysisKey struct {
	url  string
	mode interfaces.Aggressiveness
}

// RunAnalyzeURL executes the URL generalization process
func RunAnalyzeURL(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis failed: %v", r)
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

	logger, err := newCommandLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	generalizer := urlgen.New(classifier.New())
	formatter := rules.New()

	memo, err := cache.New[analysisKey, *interfaces.URLAnalysis](analysisCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create analysis cache: %w", err)
	}

	outputFormat := viper.GetString("output")
	emitRule := viper.GetBool("emit_rule")

	for _, rawURL := range args {
		key := analysisKey{url: rawURL, mode: opts.Mode}
		analysis, err := memo.GetOrCompute(key, func() (*interfaces.URLAnalysis, error) {
			return generalizer.Analyze(rawURL, opts)
		})
		if err != nil {
			return fmt.Errorf("failed to analyze %q: %w", rawURL, err)
		}

		logger.LogURLAnalysis(analysis.ID, analysis.Pattern.PatternString, analysis.Pattern.Confidence, map[string]interface{}{
			"url":      rawURL,
			"strategy": analysis.Pattern.MatchStrategy,
		})
		for _, w := range analysis.Warnings {
			logger.LogWarning(w.Code, w.Message, w.Remediation, map[string]interface{}{
				"url": rawURL,
			})
		}

		if err := emitAnalysis(analysis, outputFormat); err != nil {
			return err
		}

		if viper.GetBool("save_results") {
			path, err := utils.WriteAnalysisResult("url", cmd.Root().Version, analysis)
			if err != nil {
				return fmt.Errorf("failed to save result: %w", err)
			}
			logger.Debug("analysis result saved", map[string]interface{}{"path": path})
		}

		if emitRule {
			rule, err := formatter.Format(interfaces.URLPatternInput(analysis.Pattern), interfaces.RulePage, opts)
			if err != nil {
				return fmt.Errorf("failed to export rule for %q: %w", rawURL, err)
			}
			logger.LogRuleExport(string(rule.Kind), string(rule.Tier), len(rule.Warnings), nil)
			if err := printJSON(rule); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitAnalysis writes one analysis in the requested output format
func emitAnalysis(analysis *interfaces.URLAnalysis, format string) error {
	switch format {
	case "json":
		return printJSON(analysis)
	case "text":
		fmt.Printf("%s\n", analysis.Pattern.PatternString)
		fmt.Printf("  strategy=%s confidence=%.2f environment=%s\n",
			analysis.Pattern.MatchStrategy, analysis.Pattern.Confidence, analysis.Environment)
		for _, w := range analysis.Warnings {
			fmt.Printf("  warning: %s: %s\n", w.Code, w.Message)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// newCommandLogger builds the structured logger from viper configuration
func newCommandLogger() (*logging.Logger, error) {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    false,
		Colors:    !viper.GetBool("json_logs"),
		Compress:  viper.GetBool("log_compress"),
	})
}
