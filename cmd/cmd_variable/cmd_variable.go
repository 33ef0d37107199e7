package cmd_variable

import (
	"fmt"

	"go-mempool/config"
	"go-mempool/pkg/report"
	"go-mempool/pkg/varpool"
	"go-mempool/util/logger"

	"github.com/spf13/cobra"
)

// Cmd replays the variable-pool walkthrough: a 10 GB greedy allocation, a
// smaller one, then one chunk freed, printing the table between steps.
func Cmd() *cobra.Command {
	cfg := config.NewVariablePoolConfig()

	cmd := &cobra.Command{
		Use:   "variable",
		Short: "run the variable block size memory pool demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().Uint64Var(&cfg.TotalSize, "total-size", cfg.TotalSize, "pool capacity in bytes")
	return cmd
}

func run(cfg *config.VariablePoolConfig) error {
	fmt.Println("*** Variable Block Size Memory Pool Demo ***")

	pool, err := varpool.New(cfg.TotalSize, cfg.BlockSizes)
	if err != nil {
		return err
	}

	results := pool.Alloc(10737418240, "initGuest")
	pool.Alloc(2097152, "sensorReader")
	fmt.Print(report.VarTable(pool))

	if len(results) > 0 {
		if !pool.Free(results[0].ID, "initGuest") {
			logger.L.Warn("failed to free first initGuest chunk")
		}
		fmt.Print(report.VarTable(pool))
	}

	fmt.Print(report.VarSummary(pool))
	fmt.Print(report.VarOwnerReport(pool, "sensorReader"))
	return nil
}
