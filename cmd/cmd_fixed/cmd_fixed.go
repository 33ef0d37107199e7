package cmd_fixed

import (
	"fmt"

	"go-mempool/config"
	"go-mempool/pkg/fixedpool"
	"go-mempool/pkg/report"
	"go-mempool/util/logger"

	"github.com/spf13/cobra"
)

// Cmd replays the fixed-pool walkthrough: two owners claim blocks, a third
// owner's free is rejected, and the resulting state is printed.
func Cmd() *cobra.Command {
	cfg := config.NewFixedPoolConfig()

	cmd := &cobra.Command{
		Use:   "fixed",
		Short: "run the fixed block size memory pool demo",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	cmd.Flags().Uint64Var(&cfg.TotalSize, "total-size", cfg.TotalSize, "pool capacity in bytes")
	cmd.Flags().Uint64Var(&cfg.BlockSize, "block-size", cfg.BlockSize, "bytes per block")
	return cmd
}

func run(cfg *config.FixedPoolConfig) error {
	fmt.Println("*** Fixed Block Size Memory Pool Demo ***")

	pool, err := fixedpool.New(cfg.TotalSize, cfg.BlockSize)
	if err != nil {
		return err
	}

	pool.Alloc(1024, "initGuest")
	pool.Alloc(2048, "lidarReader")
	if !pool.Free(3, "radarReader") {
		logger.L.Warn("radarReader tried to free a block it does not own")
	}

	fmt.Print(report.FixedTable(pool))
	fmt.Print(report.FixedSummary(pool))
	fmt.Print(report.FixedOwnerReport(pool, "lidarReader"))
	return nil
}
