// draiml is the drAIML command line: run the API server or validate
// statements, responses and conclusions from the shell.
//
// Usage:
//
//	draiml serve [--listen=:8080]
//	draiml validate <response text | ->
//	draiml evaluate [--severity=moderate] <action text | ->
//	draiml conclude --premise=<text> [--premise=<text>...] <conclusion>
//	draiml analyze <statement | ->
//	draiml score [--terms=a,b] [--patterns=x,y] [--context-score=0.7]
//	draiml principles
//	draiml decisions [--limit=N]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config    string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "draiml",
	Short: "Medical statement validation pipeline",
	Long: "drAIML checks medical statements for logical soundness, scores the\n" +
		"confidence of the supporting evidence and evaluates generated responses\n" +
		"against medical ethics principles, recording every decision.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVarP(&rootFlags.config, "config", "c", "", "Path to YAML config file")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	f.StringVar(&rootFlags.logFormat, "log-format", "", "Override log format (json, text)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(concludeCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(principlesCmd)
	rootCmd.AddCommand(decisionsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
