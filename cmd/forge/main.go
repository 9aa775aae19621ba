/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for Selector Forge. Provides commands
for URL generalization, selector generation, live element capture, and external
rule export with comprehensive configuration management.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kleascm/selector-forge/cmd/forge/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Generalization configuration
	mode          string
	maxWildcards  int
	preserveQuery bool
	preserveHash  bool

	// Selector configuration
	shadowStrategy     string
	allowPositional    bool
	checkCompatibility bool

	// Capture configuration
	captureURL     string
	capturePick    string
	captureTimeout time.Duration
	captureVerify  bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64
	logCompress bool
)

func main() {
	// Load .env before anything reads the environment
	_ = godotenv.Load()

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "Selector Forge - URL and selector generalization engine",
		Long: `Selector Forge analyzes URLs and DOM elements to separate stable structure
from volatile, machine-generated identifiers. It produces generalized URL patterns,
robust CSS selectors that survive shadow DOM boundaries, and export-ready rules
for external targeting systems.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")
	rootCmd.PersistentFlags().BoolVar(&logCompress, "log-compress", false, "Compress rotated log files")

	// Add shared analysis flags
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "moderate", "Generalization aggressiveness (conservative, moderate, aggressive)")
	rootCmd.PersistentFlags().IntVar(&maxWildcards, "max-wildcards", 5, "Wildcard count above which a pattern is flagged too broad")
	rootCmd.PersistentFlags().StringVar(&shadowStrategy, "shadow-strategy", "host-based", "Shadow DOM strategy (host-based, full-path, minimal)")
	rootCmd.PersistentFlags().BoolVar(&allowPositional, "allow-positional", false, "Allow :nth-child fallback selectors")
	rootCmd.PersistentFlags().BoolVar(&checkCompatibility, "check-compatibility", true, "Prefer candidates compatible with the external rule syntax")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("log_compress", rootCmd.PersistentFlags().Lookup("log-compress"))
	viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("max_wildcards", rootCmd.PersistentFlags().Lookup("max-wildcards"))
	viper.BindPFlag("shadow_strategy", rootCmd.PersistentFlags().Lookup("shadow-strategy"))
	viper.BindPFlag("allow_positional", rootCmd.PersistentFlags().Lookup("allow-positional"))
	viper.BindPFlag("check_compatibility", rootCmd.PersistentFlags().Lookup("check-compatibility"))

	// Add analyze-url command
	analyzeCmd := &cobra.Command{
		Use:   "analyze-url [urls...]",
		Short: "Generalize URLs into stable match patterns",
		Long: `Analyze one or more URLs, classify each path and fragment segment as stable
or volatile, and synthesize a generalized pattern with a confidence score. Repeated
URLs are served from an in-process cache.`,
		Args: cobra.MinimumNArgs(1),
		RunE: commands.RunAnalyzeURL,
	}

	analyzeCmd.Flags().BoolVar(&preserveQuery, "preserve-query", false, "Keep the query string in the generalized pattern")
	analyzeCmd.Flags().BoolVar(&preserveHash, "preserve-hash", false, "Keep the fragment in the generalized pattern")
	analyzeCmd.Flags().String("output", "json", "Output format (json, text)")
	analyzeCmd.Flags().Bool("emit-rule", false, "Also export each pattern as a pageRule")
	analyzeCmd.Flags().Bool("save-results", false, "Save each analysis under the results directory")

	viper.BindPFlag("preserve_query", analyzeCmd.Flags().Lookup("preserve-query"))
	viper.BindPFlag("preserve_hash", analyzeCmd.Flags().Lookup("preserve-hash"))
	viper.BindPFlag("output", analyzeCmd.Flags().Lookup("output"))
	viper.BindPFlag("emit_rule", analyzeCmd.Flags().Lookup("emit-rule"))
	viper.BindPFlag("save_results", analyzeCmd.Flags().Lookup("save-results"))

	rootCmd.AddCommand(analyzeCmd)

	// Add selector command
	selectorCmd := &cobra.Command{
		Use:   "selector",
		Short: "Generate a robust selector from a captured element snapshot",
		Long: `Read a captured element snapshot (JSON produced by the capture command) and
generate ranked CSS selector candidates that avoid volatile generated identifiers
and survive shadow DOM boundaries.`,
		RunE: commands.RunSelector,
	}

	selectorCmd.Flags().String("snapshot", "", "Path to element snapshot JSON (required)")
	selectorCmd.Flags().Bool("emit-rule", false, "Also export the best selector as an elementRule")
	selectorCmd.MarkFlagRequired("snapshot")

	viper.BindPFlag("snapshot", selectorCmd.Flags().Lookup("snapshot"))
	viper.BindPFlag("selector_emit_rule", selectorCmd.Flags().Lookup("emit-rule"))

	rootCmd.AddCommand(selectorCmd)

	// Add capture command
	captureCmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture a live element and generate its selector",
		Long: `Open the target page in a headless browser, capture the element matched by a
CSS selector including its shadow DOM chain, generate a stable selector for it,
and verify the generated selector's uniqueness against the rendered page.`,
		RunE: commands.RunCapture,
	}

	captureCmd.Flags().StringVar(&captureURL, "url", "", "Page URL to open (required)")
	captureCmd.Flags().StringVar(&capturePick, "pick", "", "CSS selector matching the target element (required)")
	captureCmd.Flags().DurationVar(&captureTimeout, "timeout", 30*time.Second, "Overall capture timeout")
	captureCmd.Flags().BoolVar(&captureVerify, "verify", true, "Verify selector uniqueness against the rendered page")
	captureCmd.Flags().String("snapshot-out", "", "Write the raw element snapshot JSON to this file")
	captureCmd.MarkFlagRequired("url")
	captureCmd.MarkFlagRequired("pick")

	viper.BindPFlag("capture.url", captureCmd.Flags().Lookup("url"))
	viper.BindPFlag("capture.pick", captureCmd.Flags().Lookup("pick"))
	viper.BindPFlag("capture.timeout", captureCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("capture.verify", captureCmd.Flags().Lookup("verify"))
	viper.BindPFlag("capture.snapshot_out", captureCmd.Flags().Lookup("snapshot-out"))

	rootCmd.AddCommand(captureCmd)

	// Add rule command
	ruleCmd := &cobra.Command{
		Use:   "rule",
		Short: "Export a selector or URL as an external rule",
		Long: `Format a CSS selector as an elementRule or a URL as a pageRule for the
external rule system, with a compatibility tier, warnings for unsupported syntax,
and deterministic copy instructions.`,
		RunE: commands.RunRule,
	}

	ruleCmd.Flags().String("selector", "", "CSS selector to export as an elementRule")
	ruleCmd.Flags().String("url", "", "URL to generalize and export as a pageRule")

	viper.BindPFlag("rule.selector", ruleCmd.Flags().Lookup("selector"))
	viper.BindPFlag("rule.url", ruleCmd.Flags().Lookup("url"))

	rootCmd.AddCommand(ruleCmd)

	// Add report command for HTML report generation
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an HTML report from saved analysis results",
		Long: `Generate an HTML and JSON report from a saved analysis results file,
with URL pattern breakdowns, selector rankings, rule compatibility verdicts,
and aggregate statistics. Useful for sharing analysis results.`,
		RunE: commands.RunReport,
	}

	reportCmd.Flags().String("input", "", "Path to analysis results JSON (required)")
	reportCmd.Flags().String("output-dir", "./report", "Output directory for report files")
	reportCmd.Flags().String("title", "Selector Forge Report", "Report title")
	reportCmd.MarkFlagRequired("input")

	viper.BindPFlag("report.input", reportCmd.Flags().Lookup("input"))
	viper.BindPFlag("report.output_dir", reportCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("report.title", reportCmd.Flags().Lookup("title"))

	rootCmd.AddCommand(reportCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
