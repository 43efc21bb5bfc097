package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"positionScope/internal/chain"
	"positionScope/internal/config"
	"positionScope/internal/dex"
	"positionScope/internal/entity"
	"positionScope/internal/model"
	"positionScope/internal/position"
	"positionScope/internal/storage"
	"positionScope/internal/storage/postgres"
	"positionScope/internal/tickmath"
)

func runPosition(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPosition(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, blockNumber, err := resolvePool(ctx, cmd, cfg, logger)
	if err != nil {
		return err
	}

	amount0, have0 := parseAmountFlag(cfg.Amount0, pool.Token0)
	amount1, have1 := parseAmountFlag(cfg.Amount1, pool.Token1)
	if !have0 && !have1 {
		return fmt.Errorf("at least one of --amount0/--amount1 is required")
	}

	var pos *position.Position
	switch {
	case have0 && have1:
		pos, err = position.FromAmounts(pool, cfg.TickLower, cfg.TickUpper, amount0.Raw, amount1.Raw, cfg.UseFullPrecision)
	case have0:
		pos, err = position.FromAmount0(pool, cfg.TickLower, cfg.TickUpper, amount0.Raw, cfg.UseFullPrecision)
	default:
		pos, err = position.FromAmount1(pool, cfg.TickLower, cfg.TickUpper, amount1.Raw)
	}
	if err != nil {
		return err
	}

	held0, err := pos.Amount0()
	if err != nil {
		return err
	}
	held1, err := pos.Amount1()
	if err != nil {
		return err
	}
	mint0, mint1, err := pos.MintAmounts()
	if err != nil {
		return err
	}

	fmt.Printf("liquidity:    %s\n", pos.Liquidity.String())
	fmt.Printf("amount0:      %s\n", held0.String())
	fmt.Printf("amount1:      %s\n", held1.String())
	fmt.Printf("mint amount0: %s\n", mint0.String())
	fmt.Printf("mint amount1: %s\n", mint1.String())

	record := model.PositionRecord{
		ChainID:     pool.Token0.ChainID,
		TickLower:   int32(pos.TickLower),
		TickUpper:   int32(pos.TickUpper),
		Liquidity:   pos.Liquidity.String(),
		Amount0:     held0.String(),
		Amount1:     held1.String(),
		MintAmount0: mint0.String(),
		MintAmount1: mint1.String(),
		BlockNumber: blockNumber,
		ComputedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if addr, err := pool.PoolAddress(); err == nil {
		record.PoolAddress = addr.Hex()
	}

	return persistPosition(ctx, cfg, record, logger)
}

// resolvePool builds the pool snapshot either from a live RPC read or from
// the explicit state flags. It also returns the block the state refers to
// (0 for offline input).
func resolvePool(ctx context.Context, cmd *cobra.Command, cfg config.PositionConfig, logger *zap.Logger) (*position.Pool, uint64, error) {
	if cfg.RPCURL != "" && cfg.Pool != "" {
		if !common.IsHexAddress(cfg.Pool) {
			return nil, 0, fmt.Errorf("invalid pool address %q", cfg.Pool)
		}

		chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
		if err != nil {
			return nil, 0, fmt.Errorf("connect rpc: %w", err)
		}
		defer chainClient.Close()

		tokenCache := dex.NewTokenMetaCache()
		snap, err := dex.FetchPoolSnapshot(ctx, chainClient, common.HexToAddress(cfg.Pool), 0, tokenCache, logger)
		if err != nil {
			return nil, 0, err
		}
		meta0, _ := tokenCache.Get(common.HexToAddress(snap.Token0))
		meta1, _ := tokenCache.Get(common.HexToAddress(snap.Token1))

		pool, err := dex.BuildPool(snap, meta0, meta1)
		if err != nil {
			return nil, 0, err
		}
		return pool, snap.BlockNumber, nil
	}

	if cfg.SqrtPriceX96 == "" {
		return nil, 0, fmt.Errorf("either --rpc/--pool or --sqrt-price is required")
	}
	sqrtPrice, ok := new(big.Int).SetString(cfg.SqrtPriceX96, 10)
	if !ok {
		return nil, 0, fmt.Errorf("bad sqrt price %q", cfg.SqrtPriceX96)
	}
	liquidity, ok := new(big.Int).SetString(cfg.Liquidity, 10)
	if !ok {
		return nil, 0, fmt.Errorf("bad liquidity %q", cfg.Liquidity)
	}

	tick := cfg.Tick
	if !cmd.Flags().Changed("tick") {
		derived, err := tickmath.GetTickAtSqrtRatio(sqrtPrice)
		if err != nil {
			return nil, 0, err
		}
		tick = derived
	}

	token0, token1 := placeholderPair(cfg.Token0Decimals, cfg.Token1Decimals)
	pool, err := position.NewPool(token0, token1, tickmath.FeeAmount(cfg.Fee), sqrtPrice, liquidity, tick)
	if err != nil {
		return nil, 0, err
	}
	return pool, 0, nil
}

func parseAmountFlag(value string, token entity.Token) (*entity.CurrencyAmount, bool) {
	if value == "" {
		return nil, false
	}
	return entity.TryParseCurrencyAmount(value, token)
}

func persistPosition(ctx context.Context, cfg config.PositionConfig, record model.PositionRecord, logger *zap.Logger) error {
	if cfg.Out != "" {
		sink := storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutPositionRecords([]model.PositionRecord{record}); err != nil {
			return fmt.Errorf("write position record: %w", err)
		}
		logger.Info("position recorded", zap.String("out", cfg.Out))
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		if err := store.InsertPositionRecords(ctx, []model.PositionRecord{record}); err != nil {
			return fmt.Errorf("insert position record: %w", err)
		}
		logger.Info("position stored", zap.String("pool", record.PoolAddress))
	}

	return nil
}
