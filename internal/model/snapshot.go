package model

// PoolSnapshot is a point-in-time pool state record for storage. Big
// integers travel as decimal strings so the values survive JSON and SQL
// round trips unclipped.
type PoolSnapshot struct {
	ChainID      uint64 `json:"chain_id"`
	Address      string `json:"address"`
	Token0       string `json:"token0"`
	Token1       string `json:"token1"`
	Fee          uint32 `json:"fee"`
	TickSpacing  int32  `json:"tick_spacing"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Liquidity    string `json:"liquidity"`
	Tick         int32  `json:"tick"`
	BlockNumber  uint64 `json:"block_number"`
	Timestamp    uint64 `json:"timestamp"`
	CapturedAt   string `json:"captured_at"`
}
