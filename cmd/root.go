package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jewelrender",
		Short: "Jewelry catalog relay with LLM-powered image classification",
		Long: `JewelRender relays jewelry images to vision-capable LLMs and turns their
free-form replies into a fixed, searchable catalog schema.

It serves the catalog HTTP API and ships an evaluation CLI for measuring
classification accuracy against labeled datasets.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
