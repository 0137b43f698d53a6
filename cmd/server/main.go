package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "fashion",
		Short:         "Fashion catalog API",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	serve := newServeCommand()
	root.AddCommand(serve, newMigrateCommand())
	// running the binary without a subcommand starts the server
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
