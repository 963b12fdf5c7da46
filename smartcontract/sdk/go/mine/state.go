package mine

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
)

// Rewarder is the root of a rewards distribution. It splits its annual
// rewards rate across quarries by share.
type Rewarder struct {
	Base                 solana.PublicKey
	Bump                 uint8
	Authority            solana.PublicKey
	PendingAuthority     solana.PublicKey
	NumQuarries          uint16
	AnnualRewardsRate    uint64
	TotalRewardsShares   uint64
	MintWrapper          solana.PublicKey
	RewardsTokenMint     solana.PublicKey
	ClaimFeeTokenAccount solana.PublicKey
	MaxClaimFeeMilliBPS  uint64
	PauseAuthority       solana.PublicKey
	IsPaused             bool
}

// QuarryAnnualRewardsRate returns the share of the annual rewards rate a
// quarry with the given rewards share receives.
func (r *Rewarder) QuarryAnnualRewardsRate(rewardsShare uint64) (uint64, error) {
	if r.TotalRewardsShares == 0 || rewardsShare == 0 {
		return 0, nil
	}
	if rewardsShare > r.TotalRewardsShares {
		return 0, fmt.Errorf("rewards share %d exceeds total rewards shares %d", rewardsShare, r.TotalRewardsShares)
	}
	rate := new(big.Int).SetUint64(r.AnnualRewardsRate)
	rate.Mul(rate, new(big.Int).SetUint64(rewardsShare))
	rate.Quo(rate, new(big.Int).SetUint64(r.TotalRewardsShares))
	return rate.Uint64(), nil
}

// Quarry is a staking pool for one token mint (or one NFT collection key)
// under a rewarder.
type Quarry struct {
	Rewarder              solana.PublicKey
	TokenMintKey          solana.PublicKey
	Bump                  uint8
	Index                 uint16
	TokenMintDecimals     uint8
	FamineTs              int64
	LastUpdateTs          int64
	RewardsPerTokenStored anchor.Uint128
	AnnualRewardsRate     uint64
	RewardsShare          uint64
	TotalTokensDeposited  uint64
	NumMiners             uint64
}

// Miner is one depositor's position in a quarry.
type Miner struct {
	Quarry              solana.PublicKey
	Authority           solana.PublicKey
	Bump                uint8
	TokenVaultKey       solana.PublicKey
	RewardsEarned       uint64
	RewardsPerTokenPaid anchor.Uint128
	Balance             uint64
	Index               uint64
}
