/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: capture.go
Description: Capture command implementation for Selector Forge. Opens the target
page in a headless browser, captures the picked element with its shadow chain,
generates a selector, and verifies it against the rendered page.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/selector-forge/pkg/capture"
	"github.com/kleascm/selector-forge/pkg/selector"
)

// captureOutput is the combined result printed by the capture command
type captureOutput struct {
	URL        string      `json:"url"`
	Pick       string      `json:"pick"`
	Result     interface{} `json:"result"`
	Verified   bool        `json:"verified"`
	Verdict    string      `json:"verdict,omitempty"`
	PageErrors []string    `json:"page_errors,omitempty"`
}

// RunCapture executes the live element capture process
func RunCapture(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("capture failed: %v", r)
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

	targetURL := viper.GetString("capture.url")
	pick := viper.GetString("capture.pick")
	timeout := viper.GetDuration("capture.timeout")

	logger, err := newCommandLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	snapshotter := capture.NewSnapshotter()
	if err := snapshotter.Start(ctx); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer snapshotter.Stop()

	started := time.Now()
	if err := snapshotter.Navigate(targetURL); err != nil {
		return fmt.Errorf("failed to navigate to %q: %w", targetURL, err)
	}

	raw, err := snapshotter.CaptureRaw(pick)
	if err != nil {
		return fmt.Errorf("failed to capture element: %w", err)
	}

	// Persist the snapshot if requested
	if out := viper.GetString("capture.snapshot_out"); out != "" {
		if err := os.WriteFile(out, raw, 0644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}

	element, chain, err := capture.DecodeSnapshot(raw)
	if err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	logger.LogCapture(targetURL, pick, time.Since(started), map[string]interface{}{
		"shadow_boundaries": len(chain),
	})

	result, err := selector.New().Generate(element, chain, opts)
	if err != nil {
		return fmt.Errorf("failed to generate selector: %w", err)
	}

	logger.LogSelector(result.Best.SelectorString, result.Best.Specificity, len(result.Candidates), map[string]interface{}{
		"shadow_aware": result.Best.ShadowAware,
	})

	output := &captureOutput{
		URL:        targetURL,
		Pick:       pick,
		Result:     result,
		PageErrors: snapshotter.PageErrors(),
	}

	// Verify selector uniqueness against the rendered page
	if viper.GetBool("capture.verify") {
		html, err := snapshotter.PageHTML()
		if err != nil {
			return fmt.Errorf("failed to read page HTML: %w", err)
		}
		verifier, err := capture.NewVerifier(html)
		if err != nil {
			return fmt.Errorf("failed to parse page HTML: %w", err)
		}
		ok, verdict, err := verifier.VerifyUnique(result.Best.SelectorString)
		if err != nil {
			// Shadow-piercing selectors cannot be checked against flat HTML
			logger.Warning("selector verification skipped", map[string]interface{}{
				"selector": result.Best.SelectorString,
				"reason":   err.Error(),
			})
		} else {
			output.Verified = ok
			output.Verdict = verdict
		}
	}

	return printJSON(output)
}
