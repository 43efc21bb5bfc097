package model

// PositionRecord captures a computed position sizing against a pool
// snapshot: the tick range, solved liquidity, and the resulting deposit
// amounts.
type PositionRecord struct {
	ChainID     uint64 `json:"chain_id"`
	PoolAddress string `json:"pool_address"`
	TickLower   int32  `json:"tick_lower"`
	TickUpper   int32  `json:"tick_upper"`
	Liquidity   string `json:"liquidity"`
	Amount0     string `json:"amount0"`
	Amount1     string `json:"amount1"`
	MintAmount0 string `json:"mint_amount0"`
	MintAmount1 string `json:"mint_amount1"`
	BlockNumber uint64 `json:"block_number"`
	ComputedAt  string `json:"computed_at"`
}
