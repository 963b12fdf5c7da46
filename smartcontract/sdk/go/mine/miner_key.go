package mine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

// MinerKey identifies a miner. A zero NFTMint means a fungible position
// keyed by (quarry, authority); otherwise the position holds exactly that
// NFT and is keyed by (quarry, authority, nftMint).
//
// Every builder and fetcher resolves miner addresses through Derive so the
// two conventions are never mixed for the same miner.
type MinerKey struct {
	Quarry    solana.PublicKey
	Authority solana.PublicKey
	NFTMint   solana.PublicKey
}

func (k MinerKey) IsNFT() bool {
	return !k.NFTMint.IsZero()
}

func (k MinerKey) Derive(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	if k.IsNFT() {
		return pda.DeriveNFTMinerPDA(programID, k.Quarry, k.Authority, k.NFTMint)
	}
	return pda.DeriveMinerPDA(programID, k.Quarry, k.Authority)
}

// StakedMint returns the mint held by the miner's vault: the NFT for NFT
// positions, otherwise the quarry's token mint.
func (k MinerKey) StakedMint(quarryTokenMint solana.PublicKey) solana.PublicKey {
	if k.IsNFT() {
		return k.NFTMint
	}
	return quarryTokenMint
}

// Accounts resolves the miner address, its vault and the authority's token
// account for the staked mint.
func (k MinerKey) Accounts(programID, quarryTokenMint solana.PublicKey) (MinerAccounts, error) {
	miner, bump, err := k.Derive(programID)
	if err != nil {
		return MinerAccounts{}, fmt.Errorf("failed to derive miner PDA: %w", err)
	}
	mint := k.StakedMint(quarryTokenMint)
	if mint.IsZero() {
		return MinerAccounts{}, fmt.Errorf("staked mint public key is required")
	}
	vault, _, err := solana.FindAssociatedTokenAddress(miner, mint)
	if err != nil {
		return MinerAccounts{}, fmt.Errorf("failed to derive miner vault: %w", err)
	}
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(k.Authority, mint)
	if err != nil {
		return MinerAccounts{}, fmt.Errorf("failed to derive staked token account: %w", err)
	}
	return MinerAccounts{
		Miner:        miner,
		Bump:         bump,
		StakedMint:   mint,
		MinerVault:   vault,
		TokenAccount: tokenAccount,
	}, nil
}

type MinerAccounts struct {
	Miner        solana.PublicKey
	Bump         uint8
	StakedMint   solana.PublicKey
	MinerVault   solana.PublicKey
	TokenAccount solana.PublicKey
}
