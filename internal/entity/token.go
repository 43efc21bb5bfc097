// Package entity holds the value types the math core computes over: tokens,
// prices, and typed token amounts. Everything here is an immutable value;
// operations return new instances.
package entity

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrDifferentChains is returned when two tokens from different chains
	// are combined.
	ErrDifferentChains = errors.New("tokens are on different chains")
	// ErrSameAddress is returned when a pair needs two distinct tokens.
	ErrSameAddress = errors.New("tokens have the same address")
)

// Token identifies an ERC20 for decimal scaling and display. Equality is by
// (chain id, address) only; the alternate bridged address, symbol, and name
// never participate in comparisons.
type Token struct {
	ChainID    uint64
	Address    common.Address
	AltAddress common.Address
	Decimals   uint8
	Symbol     string
	Name       string
}

// NewToken builds a token from a hex address string.
func NewToken(chainID uint64, address string, decimals uint8, symbol, name string) Token {
	return Token{
		ChainID:  chainID,
		Address:  common.HexToAddress(address),
		Decimals: decimals,
		Symbol:   symbol,
		Name:     name,
	}
}

// Equal reports identity by chain id and primary address.
// common.Address is already case-normalized, so this covers the
// checksum-vs-lowercase forms of the same address.
func (t Token) Equal(other Token) bool {
	return t.ChainID == other.ChainID && t.Address == other.Address
}

// SortsBefore reports whether t is token0 when paired with other. Pools
// order their tokens by ascending address on the same chain.
func (t Token) SortsBefore(other Token) (bool, error) {
	if t.ChainID != other.ChainID {
		return false, ErrDifferentChains
	}
	switch t.Address.Cmp(other.Address) {
	case -1:
		return true, nil
	case 1:
		return false, nil
	default:
		return false, ErrSameAddress
	}
}
