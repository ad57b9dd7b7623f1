package main

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text...]",
	Short: "Analyze each argument as one input, then print the session summary",
	Example: `  sentiment analyze "I love this!" "The service was slow"
  sentiment analyze --records out.csv "Great value"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		// Every argument is text here; the exit token only ends interactive runs.
		for _, text := range args {
			sess.Analyze(cmd.Context(), text)
		}
		sess.Finish()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
