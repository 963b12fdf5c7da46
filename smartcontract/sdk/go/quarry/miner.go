package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/config"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
)

// MinerActions builds stake, withdraw and claim transactions for one miner.
// All of them resolve the miner through the same MinerKey.
type MinerActions struct {
	quarry   *QuarryWrapper
	key      mine.MinerKey
	accounts mine.MinerAccounts
}

func (m *MinerActions) MinerKey() mine.MinerKey {
	return m.key
}

func (m *MinerActions) Miner() solana.PublicKey {
	return m.accounts.Miner
}

func (m *MinerActions) MinerVault() solana.PublicKey {
	return m.accounts.MinerVault
}

// StakedTokenATA is the authority's token account for the staked mint.
func (m *MinerActions) StakedTokenATA() solana.PublicKey {
	return m.accounts.TokenAccount
}

func (m *MinerActions) sdk() *SDK {
	return m.quarry.sdk()
}

// CreateATAIfNotExists returns an envelope creating the authority's token
// account for mint, or nil when it exists.
func (m *MinerActions) CreateATAIfNotExists(ctx context.Context, mint solana.PublicKey) (*executor.Envelope, error) {
	return m.sdk().CreateATAIfNotExists(ctx, m.key.Authority, mint)
}

func (m *MinerActions) stakeConfig(amount uint64) mine.StakeInstructionConfig {
	return mine.StakeInstructionConfig{
		Rewarder:        m.quarry.rewarder.key,
		QuarryTokenMint: m.quarry.data.TokenMintKey,
		Miner:           m.key,
		Amount:          amount,
	}
}

func (m *MinerActions) Stake(amount uint64) (*executor.Envelope, error) {
	instr, err := mine.BuildStakeTokensInstruction(m.quarry.programID(), m.stakeConfig(amount))
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (m *MinerActions) Withdraw(amount uint64) (*executor.Envelope, error) {
	instr, err := mine.BuildWithdrawTokensInstruction(m.quarry.programID(), m.stakeConfig(amount))
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

// ClaimRewards claims through the rewarder's mint wrapper. The authority's
// rewards token account is created first when missing.
func (m *MinerActions) ClaimRewards(ctx context.Context) (*executor.Envelope, error) {
	rewarder := m.quarry.rewarder.data
	programs := m.sdk().programs
	instr, err := mine.BuildClaimRewardsInstruction(m.quarry.programID(), claimRewardsConfig(programs, m.quarry.rewarder.key, rewarder, m.quarry.data.TokenMintKey, m.key))
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	ata, err := m.CreateATAIfNotExists(ctx, rewarder.RewardsTokenMint)
	if err != nil {
		return nil, err
	}
	if ata == nil {
		return executor.NewEnvelope(instr), nil
	}
	return ata.Combine(executor.NewEnvelope(instr)), nil
}

func claimRewardsConfig(programs config.ProgramAddresses, rewarderKey solana.PublicKey, rewarder *mine.Rewarder, quarryTokenMint solana.PublicKey, key mine.MinerKey) mine.ClaimRewardsInstructionConfig {
	return mine.ClaimRewardsInstructionConfig{
		Rewarder:             rewarderKey,
		QuarryTokenMint:      quarryTokenMint,
		Miner:                key,
		MintWrapper:          rewarder.MintWrapper,
		MintWrapperProgram:   programs.MintWrapper,
		RewardsTokenMint:     rewarder.RewardsTokenMint,
		ClaimFeeTokenAccount: rewarder.ClaimFeeTokenAccount,
	}
}
