package position

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"positionScope/internal/entity"
	"positionScope/internal/tickmath"
)

// FactoryAddress is the canonical v3 factory deployment.
var FactoryAddress = common.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")

// poolInitCodeHash is the keccak256 of the pool creation bytecode used in
// the factory's CREATE2.
var poolInitCodeHash = common.HexToHash("0xe34f199b19b2b4f47f68442619d555527d244f78a3297ea89325f843f87b8b54")

// ComputePoolAddress derives the deterministic CREATE2 address of the pool
// for a token pair and fee tier, without any chain call. Token order does
// not matter; the salt always uses the sorted pair.
func ComputePoolAddress(factory common.Address, tokenA, tokenB entity.Token, fee tickmath.FeeAmount) (common.Address, error) {
	sorted, err := tokenA.SortsBefore(tokenB)
	if err != nil {
		return common.Address{}, err
	}
	token0, token1 := tokenA, tokenB
	if !sorted {
		token0, token1 = tokenB, tokenA
	}

	// abi.encode(address, address, uint24): three left-padded 32-byte words.
	var encoded [96]byte
	copy(encoded[12:32], token0.Address.Bytes())
	copy(encoded[44:64], token1.Address.Bytes())
	binary.BigEndian.PutUint32(encoded[92:96], uint32(fee))

	var salt [32]byte
	copy(salt[:], crypto.Keccak256(encoded[:]))

	return crypto.CreateAddress2(factory, salt, poolInitCodeHash.Bytes()), nil
}

// PoolAddress returns the pool's own CREATE2 address under the canonical
// factory.
func (p *Pool) PoolAddress() (common.Address, error) {
	return ComputePoolAddress(FactoryAddress, p.Token0, p.Token1, p.Fee)
}
