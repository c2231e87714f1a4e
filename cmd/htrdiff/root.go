package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for htrdiff.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "htrdiff",
		Short: "Classify errors of an HTR transcription against a reference",
		Long: `htrdiff compares a handwritten text recognition (HTR) transcription with a
ground-truth transcription of the same document.

Both documents are split into pages, aligned character by character and word
by word, and every difference is counted in one of nine categories:
character substitution, deletion and insertion; word merge and split;
lexical substitution; abbreviation expansion; word deletion and insertion.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewLineMatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}
