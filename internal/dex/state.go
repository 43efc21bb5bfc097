// Package dex reads V3 pool and ERC20 state over RPC and maps the
// loosely-typed ABI returns into the strongly-typed values the math core
// consumes. Nothing below this boundary handles interface{} shapes.
package dex

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"positionScope/internal/chain"
	"positionScope/internal/entity"
	"positionScope/internal/model"
	"positionScope/internal/position"
	"positionScope/internal/tickmath"
)

// TokenMetaCache caches token metadata by address.
type TokenMetaCache struct {
	mu   sync.RWMutex
	data map[common.Address]model.TokenMeta
}

func NewTokenMetaCache() *TokenMetaCache {
	return &TokenMetaCache{data: make(map[common.Address]model.TokenMeta)}
}

func (c *TokenMetaCache) Get(address common.Address) (model.TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[address]
	c.mu.RUnlock()
	return meta, ok
}

func (c *TokenMetaCache) Set(address common.Address, meta model.TokenMeta) {
	c.mu.Lock()
	c.data[address] = meta
	c.mu.Unlock()
}

// FetchPoolSnapshot reads the full pool state (pair, fee, slot0, liquidity)
// at the given block (0 means latest) into a storage record. Token metadata
// goes through the cache when one is provided.
func FetchPoolSnapshot(ctx context.Context, chainClient *chain.Client, pool common.Address, blockNumber uint64, tokenCache *TokenMetaCache, logger *zap.Logger) (model.PoolSnapshot, error) {
	if chainClient == nil {
		return model.PoolSnapshot{}, fmt.Errorf("chain client is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	poolABI, err := V3PoolABI()
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("parse pool abi: %w", err)
	}

	chainID, err := chainClient.GetChainID(ctx)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("chain id: %w", err)
	}

	var blockPtr *big.Int
	if blockNumber > 0 {
		blockPtr = new(big.Int).SetUint64(blockNumber)
	}

	snap := model.PoolSnapshot{
		ChainID: chainID.Uint64(),
		Address: pool.Hex(),
	}

	values, err := callPoolMethod(ctx, chainClient, pool, poolABI, "token0", blockPtr)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	token0, err := asAddress(values[0])
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("token0: %w", err)
	}
	snap.Token0 = token0.Hex()

	values, err = callPoolMethod(ctx, chainClient, pool, poolABI, "token1", blockPtr)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	token1, err := asAddress(values[0])
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("token1: %w", err)
	}
	snap.Token1 = token1.Hex()

	values, err = callPoolMethod(ctx, chainClient, pool, poolABI, "fee", blockPtr)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	feeInt, err := asBigInt(values[0])
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("fee: %w", err)
	}
	snap.Fee = uint32(feeInt.Uint64())

	values, err = callPoolMethod(ctx, chainClient, pool, poolABI, "tickSpacing", blockPtr)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	spacingInt, err := asBigInt(values[0])
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("tick spacing: %w", err)
	}
	spacing, err := int24FromBig(spacingInt)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("tick spacing: %w", err)
	}
	snap.TickSpacing = spacing

	values, err = callPoolMethod(ctx, chainClient, pool, poolABI, "liquidity", blockPtr)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	liquidity, err := asBigInt(values[0])
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("liquidity: %w", err)
	}
	snap.Liquidity = liquidity.String()

	values, err = callPoolMethod(ctx, chainClient, pool, poolABI, "slot0", blockPtr)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	if len(values) < 2 {
		return model.PoolSnapshot{}, fmt.Errorf("slot0 returned %d values", len(values))
	}
	sqrtPrice, err := asBigInt(values[0])
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("slot0 sqrt price: %w", err)
	}
	tickInt, err := asBigInt(values[1])
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("slot0 tick: %w", err)
	}
	tick, err := int24FromBig(tickInt)
	if err != nil {
		return model.PoolSnapshot{}, fmt.Errorf("slot0 tick: %w", err)
	}
	snap.SqrtPriceX96 = sqrtPrice.String()
	snap.Tick = tick

	if blockNumber > 0 {
		snap.BlockNumber = blockNumber
		if ts, err := chainClient.BlockTimestamp(ctx, blockNumber); err == nil {
			snap.Timestamp = ts
		} else {
			logger.Debug("block timestamp fetch failed", zap.Uint64("block", blockNumber), zap.Error(err))
		}
	} else if latest, err := chainClient.LatestBlockNumber(ctx); err == nil {
		snap.BlockNumber = latest
		if ts, err := chainClient.BlockTimestamp(ctx, latest); err == nil {
			snap.Timestamp = ts
		}
	}
	snap.CapturedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if tokenCache != nil {
		for _, addr := range []common.Address{token0, token1} {
			if _, ok := tokenCache.Get(addr); ok {
				continue
			}
			meta, err := FetchTokenMeta(ctx, chainClient, addr, logger)
			if err != nil {
				logger.Warn("token metadata fetch failed", zap.String("token", addr.Hex()), zap.Error(err))
			}
			meta.ChainID = snap.ChainID
			tokenCache.Set(addr, meta)
		}
	}

	return snap, nil
}

// BuildPool maps a snapshot plus token metadata into the core's Pool value.
func BuildPool(snap model.PoolSnapshot, meta0, meta1 model.TokenMeta) (*position.Pool, error) {
	sqrtPrice, ok := new(big.Int).SetString(snap.SqrtPriceX96, 10)
	if !ok {
		return nil, fmt.Errorf("bad sqrt price %q", snap.SqrtPriceX96)
	}
	liquidity, ok := new(big.Int).SetString(snap.Liquidity, 10)
	if !ok {
		return nil, fmt.Errorf("bad liquidity %q", snap.Liquidity)
	}

	token0 := entity.NewToken(snap.ChainID, snap.Token0, meta0.Decimals, meta0.Symbol, meta0.Name)
	token1 := entity.NewToken(snap.ChainID, snap.Token1, meta1.Decimals, meta1.Symbol, meta1.Name)

	return position.NewPool(token0, token1, tickmath.FeeAmount(snap.Fee), sqrtPrice, liquidity, int(snap.Tick))
}

// FetchTokenMeta loads token metadata via ERC20 calls, falling back to the
// bytes32 symbol/name variant some older tokens use.
func FetchTokenMeta(ctx context.Context, chainClient *chain.Client, token common.Address, logger *zap.Logger) (model.TokenMeta, error) {
	meta := model.TokenMeta{Address: token.Hex()}
	if chainClient == nil {
		return meta, fmt.Errorf("chain client is nil")
	}

	stringABI, err := erc20ABIStringInstance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 string abi: %w", err)
	}
	bytes32ABI, err := erc20ABIBytes32Instance()
	if err != nil {
		return meta, fmt.Errorf("parse erc20 bytes32 abi: %w", err)
	}

	call := func(method string, parsed abi.ABI) ([]interface{}, error) {
		data, err := parsed.Pack(method)
		if err != nil {
			return nil, fmt.Errorf("pack %s: %w", method, err)
		}
		msg := ethereum.CallMsg{To: &token, Data: data}
		resp, err := chainClient.CallContract(ctx, msg, nil)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", method, err)
		}
		values, err := parsed.Unpack(method, resp)
		if err != nil {
			return nil, fmt.Errorf("unpack %s: %w", method, err)
		}
		return values, nil
	}

	values, err := call("decimals", stringABI)
	if err != nil {
		return meta, err
	}
	decimals, err := asUint8(values[0])
	if err != nil {
		return meta, err
	}
	meta.Decimals = decimals

	if values, err := call("symbol", stringABI); err == nil {
		if symbol, ok := values[0].(string); ok {
			meta.Symbol = symbol
		}
	} else if values, err := call("symbol", bytes32ABI); err == nil {
		if symbol, ok := bytes32ToString(values[0]); ok {
			meta.Symbol = symbol
		}
	} else if logger != nil {
		logger.Debug("symbol call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	if values, err := call("name", stringABI); err == nil {
		if name, ok := values[0].(string); ok {
			meta.Name = name
		}
	} else if values, err := call("name", bytes32ABI); err == nil {
		if name, ok := bytes32ToString(values[0]); ok {
			meta.Name = name
		}
	} else if logger != nil {
		logger.Debug("name call failed", zap.String("token", token.Hex()), zap.Error(err))
	}

	return meta, nil
}

func callPoolMethod(ctx context.Context, chainClient *chain.Client, pool common.Address, poolABI abi.ABI, method string, block *big.Int) ([]interface{}, error) {
	data, err := poolABI.Pack(method)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &pool, Data: data}
	resp, err := chainClient.CallContract(ctx, msg, block)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := poolABI.Unpack(method, resp)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

func bytes32ToString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case [32]byte:
		return string(bytes.TrimRight(v[:], "\x00")), true
	case []byte:
		return string(bytes.TrimRight(v, "\x00")), true
	default:
		return "", false
	}
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

func asUint8(value interface{}) (uint8, error) {
	switch v := value.(type) {
	case uint8:
		return v, nil
	case *big.Int:
		if !v.IsUint64() || v.Uint64() > 255 {
			return 0, fmt.Errorf("decimals out of range: %s", v.String())
		}
		return uint8(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported decimals type %T", value)
	}
}

func int24FromBig(v *big.Int) (int32, error) {
	if !v.IsInt64() {
		return 0, fmt.Errorf("int24 out of range: %s", v.String())
	}
	n := v.Int64()
	if n < -(1<<23) || n >= (1<<23) {
		return 0, fmt.Errorf("int24 out of range: %d", n)
	}
	return int32(n), nil
}
