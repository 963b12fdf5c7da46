// Package pda derives the program addresses used by the Quarry programs.
//
// Every address kind has its own function with a fixed seed list. Derivation
// is pure: no network access, and the same inputs always give the same
// address and bump.
package pda

import (
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
)

var (
	// ErrNoViableBump is returned when no bump in [0, 255] yields an off-curve address.
	ErrNoViableBump = errors.New("unable to find a viable program address bump seed")

	ErrMissingProgramID = errors.New("program ID is required")
)

// DeriveRewarderPDA derives the Rewarder address.
// Seeds: ["Rewarder", base]
func DeriveRewarderPDA(programID, base solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"base", base}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(RewarderSeed), base[:])
}

// DeriveQuarryPDA derives the Quarry address for a staked token mint. NFT
// quarries use the collection key in place of the mint.
// Seeds: ["Quarry", rewarder, tokenMint]
func DeriveQuarryPDA(programID, rewarder, tokenMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"rewarder", rewarder}, key{"token mint", tokenMint}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(QuarrySeed), rewarder[:], tokenMint[:])
}

// DeriveMinerPDA derives the address of a fungible-token miner.
// Seeds: ["Miner", quarry, authority]
func DeriveMinerPDA(programID, quarry, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"quarry", quarry}, key{"authority", authority}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(MinerSeed), quarry[:], authority[:])
}

// DeriveNFTMinerPDA derives the address of a miner that stakes a single NFT.
// Seeds: ["Miner", quarry, authority, nftMint]
func DeriveNFTMinerPDA(programID, quarry, authority, nftMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"quarry", quarry}, key{"authority", authority}, key{"nft mint", nftMint}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(MinerSeed), quarry[:], authority[:], nftMint[:])
}

// DeriveMintWrapperPDA derives the MintWrapper address.
// Seeds: ["MintWrapper", base]
func DeriveMintWrapperPDA(programID, base solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"base", base}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(MintWrapperSeed), base[:])
}

// DeriveMinterPDA derives the Minter address for an authority on a wrapper.
// Seeds: ["MintWrapperMinter", mintWrapper, authority]
func DeriveMinterPDA(programID, mintWrapper, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"mint wrapper", mintWrapper}, key{"authority", authority}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(MinterSeed), mintWrapper[:], authority[:])
}

// DeriveOperatorPDA derives the Operator address.
// Seeds: ["Operator", base]
func DeriveOperatorPDA(programID, base solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"base", base}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(OperatorSeed), base[:])
}

// DeriveRegistryPDA derives the quarry registry of a rewarder.
// Seeds: ["QuarryRegistry", rewarder]
func DeriveRegistryPDA(programID, rewarder solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"rewarder", rewarder}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(RegistrySeed), rewarder[:])
}

// DeriveMergePoolPDA derives the merge pool for a primary mint.
// Seeds: ["MergePool", primaryMint]
func DeriveMergePoolPDA(programID, primaryMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"primary mint", primaryMint}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(MergePoolSeed), primaryMint[:])
}

// DeriveReplicaMintPDA derives the replica token mint of a merge pool.
// Seeds: ["ReplicaMint", pool]
func DeriveReplicaMintPDA(programID, pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"pool", pool}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(ReplicaMintSeed), pool[:])
}

// DeriveMergeMinerPDA derives the merge miner of an owner in a pool.
// Seeds: ["MergeMiner", pool, owner]
func DeriveMergeMinerPDA(programID, pool, owner solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"pool", pool}, key{"owner", owner}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(MergeMinerSeed), pool[:], owner[:])
}

// DeriveRedeemerPDA derives the redeemer for an IOU/redemption mint pair.
// Seeds: ["Redeemer", iouMint, redemptionMint]
func DeriveRedeemerPDA(programID, iouMint, redemptionMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	if err := requireKeys(programID, key{"iou mint", iouMint}, key{"redemption mint", redemptionMint}); err != nil {
		return solana.PublicKey{}, 0, err
	}
	return find(programID, []byte(RedeemerSeed), iouMint[:], redemptionMint[:])
}

// IsOnCurve reports whether the key decodes to a point on the ed25519 curve.
// Program addresses are always off the curve.
func IsOnCurve(pk solana.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pk[:])
	return err == nil
}

type key struct {
	name  string
	value solana.PublicKey
}

func requireKeys(programID solana.PublicKey, keys ...key) error {
	if programID.IsZero() {
		return ErrMissingProgramID
	}
	for _, k := range keys {
		if k.value.IsZero() {
			return fmt.Errorf("%s public key is required", k.name)
		}
	}
	return nil
}

func find(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("%w: %v", ErrNoViableBump, err)
	}
	return addr, bump, nil
}
