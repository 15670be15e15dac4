package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jparta/onetoone/internal"
	"github.com/jparta/onetoone/internal/posstats"
)

var logFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "countpos",
	Short: "Part-of-speech statistics from an onetoone progress log",
	Long: `countpos counts the part-of-speech tags logged as ('word', 'tag')
pairs during exploration and prints them from most to least common,
with up to five example words per tag.

Example:
  countpos                         # Read progress.log
  countpos --file archive/run.log  # Read another log`,
	Args:    cobra.NoArgs,
	RunE:    runCommand,
	Version: internal.Version,
}

func init() {
	rootCmd.Flags().StringVarP(&logFile, "file", "f", "progress.log", "Progress log to analyze")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string) error {
	stats, err := posstats.CountFile(logFile)
	if err != nil {
		return err
	}
	if err := stats.Print(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("failed to print counts: %w", err)
	}
	return nil
}
