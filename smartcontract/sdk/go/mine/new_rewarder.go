package mine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

type NewRewarderInstructionConfig struct {
	Base             solana.PublicKey
	Payer            solana.PublicKey
	InitialAuthority solana.PublicKey
	MintWrapper      solana.PublicKey
	RewardsTokenMint solana.PublicKey
}

func (c *NewRewarderInstructionConfig) Validate() error {
	if c.Base.IsZero() {
		return fmt.Errorf("base public key is required")
	}
	if c.Payer.IsZero() {
		return fmt.Errorf("payer public key is required")
	}
	if c.InitialAuthority.IsZero() {
		return fmt.Errorf("initial authority public key is required")
	}
	if c.MintWrapper.IsZero() {
		return fmt.Errorf("mint wrapper public key is required")
	}
	if c.RewardsTokenMint.IsZero() {
		return fmt.Errorf("rewards token mint public key is required")
	}
	return nil
}

// ClaimFeeTokenAccount returns the rewarder-owned token account that
// collects claim fees. It must exist before new_rewarder runs.
func ClaimFeeTokenAccount(rewarder, rewardsTokenMint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(rewarder, rewardsTokenMint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive claim fee token account: %w", err)
	}
	return ata, nil
}

func BuildNewRewarderInstruction(programID solana.PublicKey, config NewRewarderInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	rewarder, bump, err := pda.DeriveRewarderPDA(programID, config.Base)
	if err != nil {
		return nil, fmt.Errorf("failed to derive rewarder PDA: %w", err)
	}
	claimFeeTokenAccount, err := ClaimFeeTokenAccount(rewarder, config.RewardsTokenMint)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Base, IsSigner: true, IsWritable: false},
		{PublicKey: rewarder, IsSigner: false, IsWritable: true},
		{PublicKey: config.InitialAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarRentPubkey, IsSigner: false, IsWritable: false},
		{PublicKey: config.MintWrapper, IsSigner: false, IsWritable: false},
		{PublicKey: config.RewardsTokenMint, IsSigner: false, IsWritable: false},
		{PublicKey: claimFeeTokenAccount, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(NewRewarderInstructionName), struct {
		Bump uint8
	}{
		Bump: bump,
	}, accounts)
}
