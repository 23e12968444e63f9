package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draiml/draiml/internal/app"
	"github.com/draiml/draiml/internal/logging"
)

var errNoInput = errors.New("no input text given")

// loadApplication reads the config named by --config, applies the log flag
// overrides and builds the application. Logs go to stderr so stdout stays
// clean JSON.
func loadApplication(cmd *cobra.Command) (*app.Application, error) {
	cfg, err := app.LoadConfig(rootFlags.config)
	if err != nil {
		return nil, err
	}
	if rootFlags.logLevel != "" {
		cfg.Logging.Level = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.Logging.Format = rootFlags.logFormat
	}
	logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.Logging, "draiml")
	return app.NewApplication(cfg, logger)
}

// inputText joins args, or reads stdin when the only arg is "-".
func inputText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		args = []string{string(data)}
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", errNoInput
	}
	return text, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
