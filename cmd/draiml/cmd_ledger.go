package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/draiml/draiml/internal/ethics"
)

var principlesCmd = &cobra.Command{
	Use:   "principles",
	Short: "List the ethical principles and whether each is checked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for _, p := range ethics.Principles() {
			mark := " "
			if p.Checked {
				mark = "x"
			}
			fmt.Fprintf(out, "[%s] %-22s %s\n", mark, p.Key, p.Description)
		}
		return nil
	},
}

var decisionsFlags struct {
	limit int
}

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "Print recorded decisions from the configured durable sink",
	Long: `Reads the decision ledger's durable sink (recorder.kind sqlite, badger or
jsonl). With the memory recorder a fresh process has nothing to show.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApplication(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		entries, err := a.Ledger.List(cmd.Context(), decisionsFlags.limit)
		if err != nil {
			return fmt.Errorf("list decisions: %w", err)
		}
		return printJSON(cmd, entries)
	},
}

func init() {
	decisionsCmd.Flags().IntVarP(&decisionsFlags.limit, "limit", "n", 0, "Most recent N decisions (0 = all)")
}
