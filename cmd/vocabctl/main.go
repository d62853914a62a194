package main

import (
	"os"

	"github.com/spf13/cobra"
)

var userID int64

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vocabctl",
		Short:        "Operate the DailyVocab word store",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().Int64Var(&userID, "user", 0, "user id whose words are used")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(todayCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(recordsCmd())
	rootCmd.AddCommand(difficultyCmd())
	rootCmd.AddCommand(clearCmd())
	rootCmd.AddCommand(detailsCmd())
	rootCmd.AddCommand(practiceCmd())

	return rootCmd
}
