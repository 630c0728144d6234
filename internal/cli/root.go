// Package cli implements the astro CLI commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"astrocards/internal/config"
	"astrocards/pkg/log"
	"astrocards/pkg/log/transporters"

	"github.com/spf13/cobra"
)

var (
	endpointFlag string
	formatFlag   string
	verboseFlag  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:               "astro",
	Short:             "Sun and moon times for a location",
	Long:              "Queries the astro provider and prints sunrise, sunset, moonrise, moonset, moon phase and illumination.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&endpointFlag, "endpoint", "e", "", "Provider base URL (default: $API_ENDPOINT or config)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log debug details to stderr")
}

// setupLogging routes log output to stderr so stdout carries only results.
func setupLogging(cmd *cobra.Command, args []string) error {
	logger := log.New(log.Warn, transporters.NewConsoleWithWriter(cmd.ErrOrStderr()))
	if verboseFlag {
		logger.SetLevel(log.Debug)
	}
	log.SetDefault(logger)
	return nil
}

// resolveEndpoint picks --endpoint, else the configured API endpoint.
func resolveEndpoint() (string, error) {
	if endpointFlag != "" {
		return endpointFlag, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.Web.APIEndpoint, nil
}

func validateFormat(format string) error {
	switch strings.ToLower(format) {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q: use text or json", format)
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	err := RootCmd.Execute()
	log.Default().Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
