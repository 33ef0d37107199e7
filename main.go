package main

import (
	"os"

	"go-mempool/cmd/cmd_fixed"
	"go-mempool/cmd/cmd_variable"
	"go-mempool/util/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:   "mempool",
		Short: "memory pool allocator simulations",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.L.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: run both demos back to back.
			if err := cmd_fixed.Cmd().RunE(cmd, args); err != nil {
				return err
			}
			return cmd_variable.Cmd().RunE(cmd, args)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every pool state change")
	root.AddCommand(cmd_fixed.Cmd(), cmd_variable.Cmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
