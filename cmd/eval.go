package cmd

import (
	"github.com/jewelrender/jewelrender/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Jewelry classification evaluation tools",
		Long: `Evaluation tools for measuring how accurately the configured LLM
classifies jewelry images against human-labeled catalog records.`,
	}

	// Add eval subcommands
	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())

	return cmd
}
