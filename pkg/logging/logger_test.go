/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Covers logger creation, config
validation, file output, formatter prefixes, and log management.
*/

package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerCreation(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(&LoggerConfig{
		Level:     LogLevelDebug,
		Format:    LogFormatJSON,
		OutputDir: dir,
		MaxFiles:  5,
		MaxSize:   1024 * 1024,
		Timestamp: true,
	})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	defer logger.Close()

	files, err := filepath.Glob(filepath.Join(dir, "selector-forge_*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestLoggerDefaultsOnNilConfig(t *testing.T) {
	logger, err := NewLogger(nil)
	require.NoError(t, err)
	defer logger.Close()

	assert.NotNil(t, logger.GetLogger())
}

func TestLoggerConfigValidate(t *testing.T) {
	valid := &LoggerConfig{
		Level: LogLevelInfo, Format: LogFormatText,
		OutputDir: "./logs", MaxFiles: 3, MaxSize: 1024,
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*LoggerConfig)
	}{
		{"empty output dir", func(c *LoggerConfig) { c.OutputDir = "" }},
		{"zero max files", func(c *LoggerConfig) { c.MaxFiles = 0 }},
		{"zero max size", func(c *LoggerConfig) { c.MaxSize = 0 }},
		{"bad format", func(c *LoggerConfig) { c.Format = "xml" }},
		{"bad level", func(c *LoggerConfig) { c.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := *valid
			tc.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestCustomFormatterOutput(t *testing.T) {
	f := &CustomFormatter{Timestamp: true, Colors: false}

	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "URL analyzed",
		Data:    logrus.Fields{"confidence": 0.85},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), "INFO")
	assert.Contains(t, string(out), "URL analyzed")
	assert.Contains(t, string(out), "confidence=")
}

func TestForgeFormatterPrefixes(t *testing.T) {
	f := &ForgeFormatter{}

	assert.Equal(t, "ANALYZE", f.getForgePrefix("URL analyzed"))
	assert.Equal(t, "SELECTOR", f.getForgePrefix("Selector generated"))
	assert.Equal(t, "CAPTURE", f.getForgePrefix("Snapshot captured"))
	assert.Equal(t, "RULE", f.getForgePrefix("Rule formatted"))
	assert.Equal(t, "", f.getForgePrefix("unrelated message"))
}

func TestForgeFormatterValueFormatting(t *testing.T) {
	f := &ForgeFormatter{}

	assert.Equal(t, "0.85", f.formatForgeValue("confidence", 0.85))
	assert.Equal(t, "130", f.formatForgeValue("specificity", 130))
	assert.Equal(t, "1.5s", f.formatForgeValue("duration", 1500*time.Millisecond))
	assert.Equal(t, "0123abcd...", f.formatForgeValue("analysis_id", "0123abcdef"))
}

func TestLogManagerStats(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(&LoggerConfig{
		Level: LogLevelInfo, Format: LogFormatText,
		OutputDir: dir, MaxFiles: 3, MaxSize: 1024 * 1024,
	})
	require.NoError(t, err)
	logger.GetLogger().Info("one line")
	require.NoError(t, logger.Close())

	manager := NewLogManager(dir, 3, 1024*1024, false)
	stats, err := manager.GetLogStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalFiles)
	assert.Equal(t, 1, stats.UncompressedFiles)
	assert.Greater(t, stats.TotalSize, int64(0))
}
