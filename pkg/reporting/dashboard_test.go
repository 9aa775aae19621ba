/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: dashboard_test.go
Description: Tests for the report generator. Verifies HTML and JSON output,
summary aggregation, and tier counting.
*/

package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/selector-forge/pkg/interfaces"
)

func sampleData() *ReportData {
	return &ReportData{
		Title:       "Checkout Flow",
		GeneratedAt: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		Version:     "1.0.0",
		SessionID:   "sess-01",
		URLAnalyses: []*interfaces.URLAnalysis{
			{
				ID: "a1",
				Structure: interfaces.URLStructure{
					Scheme: "https", Host: "app.example.com", IsHashRouted: true,
				},
				Pattern: interfaces.GeneralizedURLPattern{
					SourceURL:     "https://app.example.com/checkout#/step/2",
					PatternString: "https://app.example.com/checkout#/**",
					MatchStrategy: interfaces.MatchIgnoreAfter,
					Confidence:    0.9,
				},
				Environment: interfaces.EnvProduction,
				AnalyzedAt:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			},
		},
		SelectorResults: []*interfaces.SelectorResult{
			{
				ID:   "s1",
				Best: interfaces.CandidateSelector{SelectorString: "#submit-btn", Specificity: 100, IsStable: true},
			},
		},
		Rules: []*interfaces.ExternalRule{
			{Kind: interfaces.RuleElement, Body: "#submit-btn", Tier: interfaces.TierFull, Explanation: "ok"},
			{Kind: interfaces.RulePage, Body: "https://app.example.com/*", Tier: interfaces.TierPartial, Warnings: []string{"broad"}},
		},
	}
}

func TestGenerateReportWritesHTMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	gen := NewReportGenerator(dir, logrus.New())

	err := gen.GenerateReport(sampleData())
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Checkout Flow")
	assert.Contains(t, string(html), "#submit-btn")
	assert.Contains(t, string(html), "app.example.com/checkout#/**")

	raw, err := os.ReadFile(filepath.Join(dir, "report.json"))
	require.NoError(t, err)

	var decoded ReportData
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Checkout Flow", decoded.Title)
	require.NotNil(t, decoded.Summary)
	assert.Equal(t, 1, decoded.Summary.TotalURLs)
}

// TestDecodeSavedAnalysisRoundTrip verifies a bare saved analysis file flows
// into a non-empty report: the single result is lifted into the envelope and
// the summary counts it.
func TestDecodeSavedAnalysisRoundTrip(t *testing.T) {
	analysis := sampleData().URLAnalyses[0]

	// saved results files carry one bare result, indented
	raw, err := json.MarshalIndent(analysis, "", "  ")
	require.NoError(t, err)

	data, err := DecodeReportData(raw)
	require.NoError(t, err)
	require.Len(t, data.URLAnalyses, 1)
	assert.Equal(t, "https://app.example.com/checkout#/**", data.URLAnalyses[0].Pattern.PatternString)
	assert.Empty(t, data.SelectorResults)
	assert.Empty(t, data.Rules)

	summary := NewReportGenerator(t.TempDir(), logrus.New()).buildSummary(data)
	assert.Equal(t, 1, summary.TotalURLs)
	assert.Equal(t, 1, summary.HashRoutedURLs)
}

// TestDecodeReportDataShapes covers the envelope, bare selector and rule
// results, and the no-results error.
func TestDecodeReportDataShapes(t *testing.T) {
	envelope, err := json.Marshal(sampleData())
	require.NoError(t, err)
	data, err := DecodeReportData(envelope)
	require.NoError(t, err)
	assert.Len(t, data.URLAnalyses, 1)
	assert.Len(t, data.SelectorResults, 1)
	assert.Len(t, data.Rules, 2)

	selRaw, err := json.Marshal(sampleData().SelectorResults[0])
	require.NoError(t, err)
	data, err = DecodeReportData(selRaw)
	require.NoError(t, err)
	require.Len(t, data.SelectorResults, 1)
	assert.Equal(t, "#submit-btn", data.SelectorResults[0].Best.SelectorString)

	ruleRaw, err := json.Marshal(sampleData().Rules[0])
	require.NoError(t, err)
	data, err = DecodeReportData(ruleRaw)
	require.NoError(t, err)
	require.Len(t, data.Rules, 1)

	_, err = DecodeReportData([]byte(`{}`))
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = DecodeReportData([]byte(`not json`))
	assert.Error(t, err)
}

func TestBuildSummaryAggregates(t *testing.T) {
	gen := NewReportGenerator(t.TempDir(), logrus.New())

	data := sampleData()
	summary := gen.buildSummary(data)

	assert.Equal(t, 1, summary.TotalURLs)
	assert.Equal(t, 1, summary.HashRoutedURLs)
	assert.InDelta(t, 0.9, summary.AverageConfidence, 1e-9)
	assert.Equal(t, 1, summary.TotalSelectors)
	assert.Equal(t, 1, summary.StableSelectors)
	assert.Equal(t, 2, summary.TotalRules)
	assert.Equal(t, 1, summary.FullTierRules)
	assert.Equal(t, 1, summary.PartialTierRules)
	assert.Equal(t, 0, summary.NoneTierRules)
	assert.Equal(t, 1, summary.TotalWarnings)
}

func TestBuildSummaryEmptyData(t *testing.T) {
	gen := NewReportGenerator(t.TempDir(), logrus.New())

	summary := gen.buildSummary(&ReportData{})
	assert.Zero(t, summary.TotalURLs)
	assert.Zero(t, summary.AverageConfidence)
}
