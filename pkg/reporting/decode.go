/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: decode.go
Description: Report input decoding. Accepts both the full report envelope and
the bare single-result files written by --save-results, lifting bare results
into a one-entry envelope so saved analyses flow straight into a report.
*/

package reporting

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kleascm/selector-forge/pkg/interfaces"
)

// ErrNoResults marks report input that decodes cleanly but carries nothing to
// report on. Surfacing it beats rendering an empty report.
var ErrNoResults = errors.New("report input contains no analyses, selectors, or rules")

// DecodeReportData parses report input JSON. A full envelope with at least one
// entry is returned as-is; otherwise the input is tried as a bare URLAnalysis,
// SelectorResult, or ExternalRule and lifted into a one-entry envelope. Each
// shape is recognized by a field it cannot legally leave empty.
func DecodeReportData(raw []byte) (*ReportData, error) {
	var data ReportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode report input: %w", err)
	}
	if len(data.URLAnalyses)+len(data.SelectorResults)+len(data.Rules) > 0 {
		return &data, nil
	}

	var analysis interfaces.URLAnalysis
	if err := json.Unmarshal(raw, &analysis); err == nil && analysis.Pattern.PatternString != "" {
		return &ReportData{URLAnalyses: []*interfaces.URLAnalysis{&analysis}}, nil
	}

	var result interfaces.SelectorResult
	if err := json.Unmarshal(raw, &result); err == nil && result.Best.SelectorString != "" {
		return &ReportData{SelectorResults: []*interfaces.SelectorResult{&result}}, nil
	}

	var rule interfaces.ExternalRule
	if err := json.Unmarshal(raw, &rule); err == nil && rule.Body != "" {
		return &ReportData{Rules: []*interfaces.ExternalRule{&rule}}, nil
	}

	return nil, ErrNoResults
}
