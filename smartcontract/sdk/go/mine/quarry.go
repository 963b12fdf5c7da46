package mine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

type CreateQuarryInstructionConfig struct {
	Rewarder  solana.PublicKey
	Authority solana.PublicKey
	// TokenMint is the staked mint, or the collection key for NFT quarries.
	TokenMint solana.PublicKey
	Payer     solana.PublicKey
}

func (c *CreateQuarryInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Authority.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	if c.TokenMint.IsZero() {
		return fmt.Errorf("token mint public key is required")
	}
	if c.Payer.IsZero() {
		return fmt.Errorf("payer public key is required")
	}
	return nil
}

func BuildCreateQuarryInstruction(programID solana.PublicKey, config CreateQuarryInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	quarry, bump, err := pda.DeriveQuarryPDA(programID, config.Rewarder, config.TokenMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: quarry, IsSigner: false, IsWritable: true},
		{PublicKey: config.Authority, IsSigner: true, IsWritable: false},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: true},
		{PublicKey: config.TokenMint, IsSigner: false, IsWritable: false},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: solana.SysVarClockPubkey, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(CreateQuarryInstructionName), struct {
		Bump uint8
	}{
		Bump: bump,
	}, accounts)
}

// QuarryAuthorityInstructionConfig addresses an existing quarry on behalf
// of the rewarder authority.
type QuarryAuthorityInstructionConfig struct {
	Rewarder  solana.PublicKey
	Authority solana.PublicKey
	Quarry    solana.PublicKey
}

func (c *QuarryAuthorityInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Authority.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	if c.Quarry.IsZero() {
		return fmt.Errorf("quarry public key is required")
	}
	return nil
}

func BuildSetFamineInstruction(programID solana.PublicKey, config QuarryAuthorityInstructionConfig, famineTs int64) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Authority, IsSigner: true, IsWritable: false},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: false},
		{PublicKey: config.Quarry, IsSigner: false, IsWritable: true},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(SetFamineInstructionName), struct {
		FamineTs int64
	}{
		FamineTs: famineTs,
	}, accounts)
}

func BuildSetRewardsShareInstruction(programID solana.PublicKey, config QuarryAuthorityInstructionConfig, newShare uint64) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Authority, IsSigner: true, IsWritable: false},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: true},
		{PublicKey: config.Quarry, IsSigner: false, IsWritable: true},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(SetRewardsShareInstructionName), struct {
		NewShare uint64
	}{
		NewShare: newShare,
	}, accounts)
}

// BuildUpdateQuarryRewardsInstruction syncs a quarry's rate with its
// rewarder. It needs no signer.
func BuildUpdateQuarryRewardsInstruction(programID, rewarder, quarry solana.PublicKey) (solana.Instruction, error) {
	if rewarder.IsZero() {
		return nil, fmt.Errorf("failed to validate config: rewarder public key is required")
	}
	if quarry.IsZero() {
		return nil, fmt.Errorf("failed to validate config: quarry public key is required")
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: quarry, IsSigner: false, IsWritable: true},
		{PublicKey: rewarder, IsSigner: false, IsWritable: false},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(UpdateQuarryRewardsInstructionName), nil, accounts)
}

type ExtractFeesInstructionConfig struct {
	Rewarder             solana.PublicKey
	ClaimFeeTokenAccount solana.PublicKey
	FeeToTokenAccount    solana.PublicKey
}

func (c *ExtractFeesInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.ClaimFeeTokenAccount.IsZero() {
		return fmt.Errorf("claim fee token account public key is required")
	}
	if c.FeeToTokenAccount.IsZero() {
		return fmt.Errorf("fee to token account public key is required")
	}
	return nil
}

// BuildExtractFeesInstruction moves accumulated claim fees to the protocol
// fee recipient's token account.
func BuildExtractFeesInstruction(programID solana.PublicKey, config ExtractFeesInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: false},
		{PublicKey: config.ClaimFeeTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: config.FeeToTokenAccount, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(ExtractFeesInstructionName), nil, accounts)
}
