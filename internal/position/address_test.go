package position

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"positionScope/internal/entity"
	"positionScope/internal/tickmath"
)

func mainnetPair(t *testing.T) (entity.Token, entity.Token) {
	t.Helper()
	usdc := entity.NewToken(1, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", 6, "USDC", "USD Coin")
	weth := entity.NewToken(1, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", 18, "WETH", "Wrapped Ether")
	return usdc, weth
}

func TestComputePoolAddress(t *testing.T) {
	usdc, weth := mainnetPair(t)

	// The canonical mainnet USDC/WETH 0.05% pool.
	want := common.HexToAddress("0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640")

	got, err := ComputePoolAddress(FactoryAddress, usdc, weth, tickmath.FeeLow)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Token order must not matter; the salt uses the sorted pair.
	swapped, err := ComputePoolAddress(FactoryAddress, weth, usdc, tickmath.FeeLow)
	require.NoError(t, err)
	require.Equal(t, want, swapped)
}

func TestComputePoolAddressRejectsCrossChain(t *testing.T) {
	usdc, _ := mainnetPair(t)
	bridged := entity.NewToken(10, "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", 18, "WETH", "Wrapped Ether")

	_, err := ComputePoolAddress(FactoryAddress, usdc, bridged, tickmath.FeeLow)
	require.ErrorIs(t, err, entity.ErrDifferentChains)
}

func TestPoolAddress(t *testing.T) {
	usdc, weth := mainnetPair(t)

	pool, err := NewPool(usdc, weth, tickmath.FeeLow, q96, big.NewInt(0), 0)
	require.NoError(t, err)

	got, err := pool.PoolAddress()
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640"), got)
}
