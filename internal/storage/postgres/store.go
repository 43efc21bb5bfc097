package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"positionScope/internal/model"
)

// Store provides Postgres persistence for pool snapshots and computed
// positions.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertSnapshots inserts or updates pool snapshots keyed by pool and block.
func (s *Store) UpsertSnapshots(ctx context.Context, snapshots []model.PoolSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, snap := range snapshots {
		batch.Queue(`
			INSERT INTO pool_snapshots (
				chain_id, pool_address, token0, token1, fee, tick_spacing,
				sqrt_price_x96, liquidity, tick, block_number, block_timestamp,
				captured_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
			ON CONFLICT (chain_id, pool_address, block_number)
			DO UPDATE SET
				sqrt_price_x96 = EXCLUDED.sqrt_price_x96,
				liquidity = EXCLUDED.liquidity,
				tick = EXCLUDED.tick,
				block_timestamp = EXCLUDED.block_timestamp,
				captured_at = EXCLUDED.captured_at,
				updated_at = now()
		`,
			int64(snap.ChainID),
			snap.Address,
			snap.Token0,
			snap.Token1,
			snap.Fee,
			snap.TickSpacing,
			snap.SqrtPriceX96,
			snap.Liquidity,
			snap.Tick,
			int64(snap.BlockNumber),
			int64(snap.Timestamp),
			snap.CapturedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range snapshots {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertPositionRecords appends computed position sizings.
func (s *Store) InsertPositionRecords(ctx context.Context, records []model.PositionRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO position_records (
				chain_id, pool_address, tick_lower, tick_upper, liquidity,
				amount0, amount1, mint_amount0, mint_amount1, block_number,
				computed_at, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now())
		`,
			int64(r.ChainID),
			r.PoolAddress,
			r.TickLower,
			r.TickUpper,
			r.Liquidity,
			r.Amount0,
			r.Amount1,
			r.MintAmount0,
			r.MintAmount1,
			int64(r.BlockNumber),
			r.ComputedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
