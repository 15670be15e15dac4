package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jparta/onetoone/internal/cli"
	"github.com/jparta/onetoone/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Interrupts stop the run after a final checkpoint
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	cli.ApplyConfig(flags)
	proc := processor.NewProcessor(flags)

	// Handle --list-models flag
	if flags.ListModels {
		return proc.ListModels(cmd.Context())
	}

	if len(args) == 0 {
		return cmd.Help()
	}

	// usage is noise once the run has started
	cmd.SilenceUsage = true
	return proc.Run(cmd.Context(), args[0])
}
