package mine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

type CreateMinerInstructionConfig struct {
	Rewarder solana.PublicKey
	// QuarryTokenMint is Quarry.TokenMintKey; ignored for NFT miners.
	QuarryTokenMint solana.PublicKey
	Miner           MinerKey
	Payer           solana.PublicKey
}

func (c *CreateMinerInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Miner.Quarry.IsZero() {
		return fmt.Errorf("quarry public key is required")
	}
	if c.Miner.Authority.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	if !c.Miner.IsNFT() && c.QuarryTokenMint.IsZero() {
		return fmt.Errorf("quarry token mint public key is required")
	}
	if c.Payer.IsZero() {
		return fmt.Errorf("payer public key is required")
	}
	return nil
}

func BuildCreateMinerInstruction(programID solana.PublicKey, config CreateMinerInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	m, err := config.Miner.Accounts(programID, config.QuarryTokenMint)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Miner.Authority, IsSigner: true, IsWritable: false},
		{PublicKey: m.Miner, IsSigner: false, IsWritable: true},
		{PublicKey: config.Miner.Quarry, IsSigner: false, IsWritable: true},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: m.StakedMint, IsSigner: false, IsWritable: false},
		{PublicKey: m.MinerVault, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(CreateMinerInstructionName), struct {
		Bump uint8
	}{
		Bump: m.Bump,
	}, accounts)
}

type StakeInstructionConfig struct {
	Rewarder        solana.PublicKey
	QuarryTokenMint solana.PublicKey
	Miner           MinerKey
	Amount          uint64
}

func (c *StakeInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Miner.Quarry.IsZero() {
		return fmt.Errorf("quarry public key is required")
	}
	if c.Miner.Authority.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	if !c.Miner.IsNFT() && c.QuarryTokenMint.IsZero() {
		return fmt.Errorf("quarry token mint public key is required")
	}
	return nil
}

// BuildStakeTokensInstruction moves tokens from the authority's token
// account into the miner vault.
func BuildStakeTokensInstruction(programID solana.PublicKey, config StakeInstructionConfig) (solana.Instruction, error) {
	return buildUserStakeInstruction(programID, StakeTokensInstructionName, config)
}

// BuildWithdrawTokensInstruction moves tokens from the miner vault back to
// the authority's token account.
func BuildWithdrawTokensInstruction(programID solana.PublicKey, config StakeInstructionConfig) (solana.Instruction, error) {
	return buildUserStakeInstruction(programID, WithdrawTokensInstructionName, config)
}

func buildUserStakeInstruction(programID solana.PublicKey, name string, config StakeInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	m, err := config.Miner.Accounts(programID, config.QuarryTokenMint)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Miner.Authority, IsSigner: true, IsWritable: false},
		{PublicKey: m.Miner, IsSigner: false, IsWritable: true},
		{PublicKey: config.Miner.Quarry, IsSigner: false, IsWritable: true},
		{PublicKey: m.MinerVault, IsSigner: false, IsWritable: true},
		{PublicKey: m.TokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(name), struct {
		Amount uint64
	}{
		Amount: config.Amount,
	}, accounts)
}

type ClaimRewardsInstructionConfig struct {
	Rewarder             solana.PublicKey
	QuarryTokenMint      solana.PublicKey
	Miner                MinerKey
	MintWrapper          solana.PublicKey
	MintWrapperProgram   solana.PublicKey
	RewardsTokenMint     solana.PublicKey
	ClaimFeeTokenAccount solana.PublicKey
}

func (c *ClaimRewardsInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Miner.Quarry.IsZero() {
		return fmt.Errorf("quarry public key is required")
	}
	if c.Miner.Authority.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	if !c.Miner.IsNFT() && c.QuarryTokenMint.IsZero() {
		return fmt.Errorf("quarry token mint public key is required")
	}
	if c.MintWrapper.IsZero() {
		return fmt.Errorf("mint wrapper public key is required")
	}
	if c.MintWrapperProgram.IsZero() {
		return fmt.Errorf("mint wrapper program ID is required")
	}
	if c.RewardsTokenMint.IsZero() {
		return fmt.Errorf("rewards token mint public key is required")
	}
	if c.ClaimFeeTokenAccount.IsZero() {
		return fmt.Errorf("claim fee token account public key is required")
	}
	return nil
}

// BuildClaimRewardsInstruction mints the miner's earned rewards to the
// authority's rewards token account through the rewarder's minter.
func BuildClaimRewardsInstruction(programID solana.PublicKey, config ClaimRewardsInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	m, err := config.Miner.Accounts(programID, config.QuarryTokenMint)
	if err != nil {
		return nil, err
	}
	minter, _, err := pda.DeriveMinterPDA(config.MintWrapperProgram, config.MintWrapper, config.Rewarder)
	if err != nil {
		return nil, fmt.Errorf("failed to derive minter PDA: %w", err)
	}
	rewardsTokenAccount, _, err := solana.FindAssociatedTokenAddress(config.Miner.Authority, config.RewardsTokenMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive rewards token account: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.MintWrapper, IsSigner: false, IsWritable: true},
		{PublicKey: config.MintWrapperProgram, IsSigner: false, IsWritable: false},
		{PublicKey: minter, IsSigner: false, IsWritable: true},
		{PublicKey: config.RewardsTokenMint, IsSigner: false, IsWritable: true},
		{PublicKey: rewardsTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: config.ClaimFeeTokenAccount, IsSigner: false, IsWritable: true},
		// claim
		{PublicKey: config.Miner.Authority, IsSigner: true, IsWritable: false},
		{PublicKey: m.Miner, IsSigner: false, IsWritable: true},
		{PublicKey: config.Miner.Quarry, IsSigner: false, IsWritable: true},
		{PublicKey: m.MinerVault, IsSigner: false, IsWritable: true},
		{PublicKey: m.TokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(ClaimRewardsInstructionName), nil, accounts)
}
