/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dashboard.go
Description: HTML report system for Selector Forge. Generates beautiful web
reports with URL pattern breakdowns, selector candidate rankings, rule
compatibility verdicts, and analysis warnings.
*/

package reporting

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/kleascm/selector-forge/pkg/interfaces"
	"github.com/sirupsen/logrus"
)

// ReportGenerator creates HTML and JSON analysis reports
type ReportGenerator struct {
	outputDir string
	logger    *logrus.Logger
	templates *template.Template
}

// ReportData contains all data for report generation
type ReportData struct {
	Title           string                       `json:"title"`
	GeneratedAt     time.Time                    `json:"generated_at"`
	Version         string                       `json:"version"`
	SessionID       string                       `json:"session_id"`
	URLAnalyses     []*interfaces.URLAnalysis    `json:"url_analyses"`
	SelectorResults []*interfaces.SelectorResult `json:"selector_results"`
	Rules           []*interfaces.ExternalRule   `json:"rules"`
	Summary         *ReportSummary               `json:"summary"`
}

// ReportSummary contains aggregate statistics over a report
type ReportSummary struct {
	TotalURLs         int     `json:"total_urls"`
	HashRoutedURLs    int     `json:"hash_routed_urls"`
	AverageConfidence float64 `json:"average_confidence"`
	VolatileSegments  int     `json:"volatile_segments"`
	TotalSelectors    int     `json:"total_selectors"`
	StableSelectors   int     `json:"stable_selectors"`
	TotalRules        int     `json:"total_rules"`
	FullTierRules     int     `json:"full_tier_rules"`
	PartialTierRules  int     `json:"partial_tier_rules"`
	NoneTierRules     int     `json:"none_tier_rules"`
	TotalWarnings     int     `json:"total_warnings"`
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(outputDir string, logger *logrus.Logger) *ReportGenerator {
	return &ReportGenerator{
		outputDir: outputDir,
		logger:    logger,
		templates: template.Must(template.New("report").Funcs(template.FuncMap{
			"pct": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
		}).Parse(reportTemplate)),
	}
}

// GenerateReport writes the full HTML and JSON report set
func (rg *ReportGenerator) GenerateReport(data *ReportData) error {
	// Create output directory
	if err := os.MkdirAll(rg.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Compute summary before rendering
	data.Summary = rg.buildSummary(data)

	// Generate main HTML report
	if err := rg.generateHTMLReport(data); err != nil {
		return fmt.Errorf("failed to generate HTML report: %w", err)
	}

	// Generate machine-readable JSON report
	if err := rg.generateJSONReport(data); err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}

	rg.logger.Infof("Report generated successfully in: %s", rg.outputDir)
	return nil
}

// generateHTMLReport creates the main report HTML
func (rg *ReportGenerator) generateHTMLReport(data *ReportData) error {
	outputFile := filepath.Join(rg.outputDir, "index.html")
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	// Execute template
	if err := rg.templates.Execute(file, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return nil
}

// generateJSONReport writes the report data as indented JSON
func (rg *ReportGenerator) generateJSONReport(data *ReportData) error {
	outputFile := filepath.Join(rg.outputDir, "report.json")
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}

// buildSummary computes aggregate statistics from the report data
func (rg *ReportGenerator) buildSummary(data *ReportData) *ReportSummary {
	summary := &ReportSummary{
		TotalURLs:      len(data.URLAnalyses),
		TotalSelectors: len(data.SelectorResults),
		TotalRules:     len(data.Rules),
	}

	var confidenceSum float64
	for _, analysis := range data.URLAnalyses {
		confidenceSum += analysis.Pattern.Confidence
		if analysis.Structure.IsHashRouted {
			summary.HashRoutedURLs++
		}
		for _, seg := range analysis.Pattern.Segments {
			if seg.Classification != nil && seg.Classification.Volatile() {
				summary.VolatileSegments++
			}
		}
		summary.TotalWarnings += len(analysis.Warnings)
	}
	if summary.TotalURLs > 0 {
		summary.AverageConfidence = confidenceSum / float64(summary.TotalURLs)
	}

	for _, result := range data.SelectorResults {
		if result.Best.IsStable {
			summary.StableSelectors++
		}
		summary.TotalWarnings += len(result.Best.Warnings)
	}

	for _, rule := range data.Rules {
		switch rule.Tier {
		case interfaces.TierFull:
			summary.FullTierRules++
		case interfaces.TierPartial:
			summary.PartialTierRules++
		case interfaces.TierNone:
			summary.NoneTierRules++
		}
		summary.TotalWarnings += len(rule.Warnings)
	}

	return summary
}
