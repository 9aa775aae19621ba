/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: Report command implementation for Selector Forge. Generates HTML
and JSON reports from saved analysis results with aggregate statistics.
*/

package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/selector-forge/pkg/reporting"
)

// RunReport executes the report generation process
func RunReport(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("report generation failed: %v", r)
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

	inputPath := viper.GetString("report.input")
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read results %q: %w", inputPath, err)
	}

	data, err := reporting.DecodeReportData(raw)
	if err != nil {
		return fmt.Errorf("failed to decode results %q: %w", inputPath, err)
	}

	data.Title = viper.GetString("report.title")
	data.GeneratedAt = time.Now()
	data.Version = cmd.Root().Version
	if data.SessionID == "" {
		data.SessionID = uuid.NewString()
	}

	generator := reporting.NewReportGenerator(viper.GetString("report.output_dir"), logrus.StandardLogger())
	if err := generator.GenerateReport(data); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	fmt.Printf("Report written to %s\n", viper.GetString("report.output_dir"))
	return nil
}
