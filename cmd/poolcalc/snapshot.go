package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"positionScope/internal/chain"
	"positionScope/internal/config"
	"positionScope/internal/dex"
	"positionScope/internal/model"
	"positionScope/internal/storage"
	"positionScope/internal/storage/postgres"
)

func runSnapshot(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSnapshot(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if len(cfg.Pools) == 0 {
		return fmt.Errorf("pool list is required")
	}

	pools := make([]common.Address, 0, len(cfg.Pools))
	for _, raw := range cfg.Pools {
		if !common.IsHexAddress(raw) {
			return fmt.Errorf("invalid pool address %q", raw)
		}
		pools = append(pools, common.HexToAddress(raw))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	logger.Info("snapshot start",
		zap.String("rpc", cfg.RPCURL),
		zap.Int("pools", len(pools)),
		zap.Uint64("block", cfg.BlockNumber),
		zap.String("out", cfg.Out),
	)

	tokenCache := dex.NewTokenMetaCache()
	snapshots := make([]model.PoolSnapshot, 0, len(pools))
	for _, pool := range pools {
		var snap model.PoolSnapshot
		err := chain.WithRetry(ctx, cfg.MaxRetries, cfg.RetryBackoff, func(ctx context.Context) error {
			var fetchErr error
			snap, fetchErr = dex.FetchPoolSnapshot(ctx, chainClient, pool, cfg.BlockNumber, tokenCache, logger)
			return fetchErr
		})
		if err != nil {
			logger.Error("pool snapshot failed", zap.String("pool", pool.Hex()), zap.Error(err))
			continue
		}

		// Sanity-map into the core's Pool so invalid chain state is caught
		// at capture time instead of at compute time.
		meta0, _ := tokenCache.Get(common.HexToAddress(snap.Token0))
		meta1, _ := tokenCache.Get(common.HexToAddress(snap.Token1))
		if _, err := dex.BuildPool(snap, meta0, meta1); err != nil {
			logger.Warn("pool state failed validation", zap.String("pool", pool.Hex()), zap.Error(err))
			continue
		}

		snapshots = append(snapshots, snap)
		logger.Info("pool snapshot",
			zap.String("pool", pool.Hex()),
			zap.String("sqrt_price_x96", snap.SqrtPriceX96),
			zap.String("liquidity", snap.Liquidity),
			zap.Int32("tick", snap.Tick),
			zap.Uint64("block", snap.BlockNumber),
		)
	}

	if len(snapshots) == 0 {
		return fmt.Errorf("no pool snapshot succeeded")
	}

	if cfg.Out != "" {
		sink := storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutSnapshots(snapshots); err != nil {
			return fmt.Errorf("write snapshots: %w", err)
		}
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.UpsertSnapshots(ctx, snapshots); err != nil {
			return fmt.Errorf("upsert snapshots: %w", err)
		}
	}

	logger.Info("snapshot done", zap.Int("count", len(snapshots)))
	return nil
}
