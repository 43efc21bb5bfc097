package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "poolcalc",
		Short:        "Concentrated-liquidity position calculator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	tickCmd := &cobra.Command{
		Use:   "tick",
		Short: "Convert between ticks, prices, and sqrt ratios",
		RunE:  runTick,
	}

	tickCmd.Flags().Int("tick", 0, "tick to convert to a price")
	tickCmd.Flags().String("price", "", "decimal price to convert to a tick")
	tickCmd.Flags().Uint32("fee", 3000, "fee tier in hundredths of a bip (100, 500, 3000, 10000)")
	tickCmd.Flags().Uint8("token0-decimals", 18, "decimals of token0")
	tickCmd.Flags().Uint8("token1-decimals", 18, "decimals of token1")
	tickCmd.Flags().Bool("invert", false, "quote token0 in token1 terms instead")
	tickCmd.Flags().Int("significant", 6, "significant digits in price output")

	root.AddCommand(tickCmd)

	positionCmd := &cobra.Command{
		Use:   "position",
		Short: "Size a position from token amounts",
		RunE:  runPosition,
	}

	positionCmd.Flags().String("rpc", "", "RPC URL (fetch pool state live)")
	positionCmd.Flags().String("pool", "", "pool address (with --rpc)")
	positionCmd.Flags().String("sqrt-price", "", "current sqrtPriceX96 (offline mode)")
	positionCmd.Flags().String("liquidity", "0", "current pool liquidity (offline mode)")
	positionCmd.Flags().Int("tick", 0, "current tick (offline mode)")
	positionCmd.Flags().Uint32("fee", 3000, "fee tier in hundredths of a bip")
	positionCmd.Flags().Uint8("token0-decimals", 18, "decimals of token0 (offline mode)")
	positionCmd.Flags().Uint8("token1-decimals", 18, "decimals of token1 (offline mode)")
	positionCmd.Flags().Int("tick-lower", 0, "lower tick of the range")
	positionCmd.Flags().Int("tick-upper", 0, "upper tick of the range")
	positionCmd.Flags().String("amount0", "", "token0 amount to deposit (decimal)")
	positionCmd.Flags().String("amount1", "", "token1 amount to deposit (decimal)")
	positionCmd.Flags().Bool("full-precision", true, "use the exact division path")
	positionCmd.Flags().String("out", "", "append the computed position to this JSONL path")
	positionCmd.Flags().String("pg-dsn", "", "Postgres DSN to record the computed position")
	positionCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(positionCmd)

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Fetch and persist pool state",
		RunE:  runSnapshot,
	}

	snapshotCmd.Flags().String("rpc", "", "RPC URL")
	snapshotCmd.Flags().StringSlice("pool", nil, "pool addresses (comma-separated)")
	snapshotCmd.Flags().Uint64("block", 0, "block number, 0 means latest")
	snapshotCmd.Flags().String("out", "./data/snapshots.jsonl", "output JSONL path")
	snapshotCmd.Flags().String("pg-dsn", "", "Postgres DSN")
	snapshotCmd.Flags().Int("max-retries", 5, "maximum retry attempts per call")
	snapshotCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	snapshotCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(snapshotCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
