/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Selector Forge commands. Provides common
configuration loading, logging setup, option assembly, and output helpers used
across all command implementations.
*/

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kleascm/selector-forge/pkg/interfaces"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("FORGE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system
func SetupLogging() error {
	logLevel := viper.GetString("log_level")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(level)
	if viper.GetBool("json_logs") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return nil
}

// buildOptions assembles analysis options from configuration
func buildOptions() (interfaces.Options, error) {
	opts := interfaces.DefaultOptions()

	if mode := viper.GetString("mode"); mode != "" {
		opts.Mode = interfaces.Aggressiveness(mode)
	}
	if strategy := viper.GetString("shadow_strategy"); strategy != "" {
		opts.ShadowStrategy = interfaces.ShadowStrategy(strategy)
	}
	if viper.IsSet("max_wildcards") {
		opts.MaxWildcards = viper.GetInt("max_wildcards")
	}
	opts.PreserveQuery = viper.GetBool("preserve_query")
	opts.PreserveHash = viper.GetBool("preserve_hash")
	opts.AllowPositional = viper.GetBool("allow_positional")
	if viper.IsSet("check_compatibility") {
		opts.CheckCompatibility = viper.GetBool("check_compatibility")
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

// printJSON writes a value to stdout as indented JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
