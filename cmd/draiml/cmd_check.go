package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/draiml/draiml/internal/confidence"
	"github.com/draiml/draiml/internal/ethics"
	"github.com/draiml/draiml/internal/model"
)

var validateCmd = &cobra.Command{
	Use:   "validate <response | ->",
	Short: "Validate a generated medical response and print the final text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := inputText(cmd, args)
		if err != nil {
			return err
		}
		a, err := loadApplication(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return printJSON(cmd, a.Ethics.ValidateResponse(cmd.Context(), text, nil, checkFlags.severity))
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <action | ->",
	Short: "Evaluate a proposed action against the ethical principles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := inputText(cmd, args)
		if err != nil {
			return err
		}
		a, err := loadApplication(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return printJSON(cmd, a.Ethics.Evaluate(cmd.Context(), text, nil, checkFlags.severity))
	},
}

var concludeFlags struct {
	premises []string
}

var concludeCmd = &cobra.Command{
	Use:   "conclude --premise=<text>... <conclusion>",
	Short: "Check that a conclusion follows soundly from premises",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := inputText(cmd, args)
		if err != nil {
			return err
		}
		a, err := loadApplication(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return printJSON(cmd, a.Validator.ValidateConclusion(text, concludeFlags.premises))
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <statement | ->",
	Short: "Break a statement down into context, patterns and confidence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := inputText(cmd, args)
		if err != nil {
			return err
		}
		a, err := loadApplication(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return printJSON(cmd, a.Analyzer.Analyze(text))
	},
}

var scoreFlags struct {
	terms          []string
	patterns       []string
	contextScore   float64
	contradictions bool
	missingContext bool
	emergency      bool
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score explicit validation evidence",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data := confidence.ValidationData{
			MedicalTerms:        scoreFlags.terms,
			PatternsIdentified:  scoreFlags.patterns,
			Contradictions:      scoreFlags.contradictions,
			MissingContext:      scoreFlags.missingContext,
			EmergencyIndicators: scoreFlags.emergency,
		}
		if cmd.Flags().Changed("context-score") {
			data.ContextScore = confidence.Float(scoreFlags.contextScore)
		}
		return printJSON(cmd, confidence.NewScorer(nil).Score(data))
	},
}

var checkFlags struct {
	severity string
}

func init() {
	for _, c := range []*cobra.Command{validateCmd, evaluateCmd} {
		c.Flags().StringVar(&checkFlags.severity, "severity", ethics.DefaultSeverity,
			"Case severity (mild, moderate, severe, critical)")
		c.PreRunE = checkSeverity
	}

	concludeCmd.Flags().StringArrayVarP(&concludeFlags.premises, "premise", "p", nil, "Premise statement (repeatable)")

	f := scoreCmd.Flags()
	f.StringSliceVar(&scoreFlags.terms, "terms", nil, "Medical terms found")
	f.StringSliceVar(&scoreFlags.patterns, "patterns", nil, "Patterns identified")
	f.Float64Var(&scoreFlags.contextScore, "context-score", 0, "Context score in [0,1]")
	f.BoolVar(&scoreFlags.contradictions, "contradictions", false, "Contradictions were found")
	f.BoolVar(&scoreFlags.missingContext, "missing-context", false, "Context is incomplete")
	f.BoolVar(&scoreFlags.emergency, "emergency", false, "Emergency indicators present")
}

// severityLevels mirrors the request validation of the API.
var severityLevels = []string{
	model.SeverityMild, model.SeverityModerate, model.SeveritySevere, model.SeverityCritical,
}

func checkSeverity(_ *cobra.Command, _ []string) error {
	if !slices.Contains(severityLevels, checkFlags.severity) {
		return fmt.Errorf("unknown severity %q, expected one of %v", checkFlags.severity, severityLevels)
	}
	return nil
}
