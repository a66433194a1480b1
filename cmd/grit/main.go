package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/pkg/common/logger"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

var (
	logLevel  string
	logFormat string
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "grit",
		Short:   "grit - a content-addressable version control tool",
		Long:    "grit tracks file history as an immutable commit graph of content-addressed snapshots.",
		Version: fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newCommitCmd())
	rootCmd.AddCommand(newCheckoutCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newTagCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newRawCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() {
	level := logger.ParseLevel(logLevel)
	if verbose {
		level = logger.LevelDebug
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: logger.ParseFormat(logFormat),
		Output: os.Stderr,
	})
}
