package mintwrapper

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
)

// MintWrapper holds the mint authority of a token and hands out capped
// allowances to minters.
type MintWrapper struct {
	Base           solana.PublicKey
	Bump           uint8
	HardCap        uint64
	Admin          solana.PublicKey
	PendingAdmin   solana.PublicKey
	TokenMint      solana.PublicKey
	NumMinters     uint64
	TotalAllowance uint64
	TotalMinted    uint64
}

// RemainingSupply is how much more can be minted before the hard cap.
func (w *MintWrapper) RemainingSupply() uint64 {
	if w.TotalMinted >= w.HardCap {
		return 0
	}
	return w.HardCap - w.TotalMinted
}

type Minter struct {
	MintWrapper     solana.PublicKey
	MinterAuthority solana.PublicKey
	Bump            uint8
	Index           uint64
	Allowance       uint64
	TotalMinted     uint64
}

func DeserializeMintWrapper(data []byte) (*MintWrapper, error) {
	w, err := anchor.DecodeAccount[MintWrapper](data, MintWrapperDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize mint wrapper: %w", err)
	}
	return w, nil
}

func DeserializeMinter(data []byte) (*Minter, error) {
	m, err := anchor.DecodeAccount[Minter](data, MinterDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize minter: %w", err)
	}
	return m, nil
}
