package operator

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

type CreateOperatorInstructionConfig struct {
	Base          solana.PublicKey
	Rewarder      solana.PublicKey
	Admin         solana.PublicKey
	Payer         solana.PublicKey
	MineProgramID solana.PublicKey
}

func (c *CreateOperatorInstructionConfig) Validate() error {
	if c.Base.IsZero() {
		return fmt.Errorf("base public key is required")
	}
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Admin.IsZero() {
		return fmt.Errorf("admin public key is required")
	}
	if c.Payer.IsZero() {
		return fmt.Errorf("payer public key is required")
	}
	if c.MineProgramID.IsZero() {
		return fmt.Errorf("mine program ID is required")
	}
	return nil
}

// BuildCreateOperatorInstruction creates an operator and makes it accept the
// rewarder's authority, which must already be pending to the operator PDA.
func BuildCreateOperatorInstruction(programID solana.PublicKey, config CreateOperatorInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	operator, bump, err := pda.DeriveOperatorPDA(programID, config.Base)
	if err != nil {
		return nil, fmt.Errorf("failed to derive operator PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Base, IsSigner: true, IsWritable: false},
		{PublicKey: operator, IsSigner: false, IsWritable: true},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: true},
		{PublicKey: config.Admin, IsSigner: false, IsWritable: false},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: config.MineProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(CreateOperatorInstructionName), struct {
		Bump uint8
	}{
		Bump: bump,
	}, accounts)
}

// BuildSetRoleInstruction hands role to delegate. Only the admin may sign.
func BuildSetRoleInstruction(programID, operator, admin, delegate solana.PublicKey, role Role) (solana.Instruction, error) {
	name, ok := role.instructionName()
	if !ok {
		return nil, fmt.Errorf("unknown role %d", role)
	}
	if operator.IsZero() {
		return nil, fmt.Errorf("operator public key is required")
	}
	if admin.IsZero() {
		return nil, fmt.Errorf("admin public key is required")
	}
	if delegate.IsZero() {
		return nil, fmt.Errorf("delegate public key is required")
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: operator, IsSigner: false, IsWritable: true},
		{PublicKey: admin, IsSigner: true, IsWritable: false},
		{PublicKey: delegate, IsSigner: false, IsWritable: false},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(name), nil, accounts)
}

// DelegateConfig identifies the operator, the signing delegate and the
// rewarder it controls.
type DelegateConfig struct {
	Operator      solana.PublicKey
	Delegate      solana.PublicKey
	Rewarder      solana.PublicKey
	MineProgramID solana.PublicKey
}

func (c *DelegateConfig) Validate() error {
	if c.Operator.IsZero() {
		return fmt.Errorf("operator public key is required")
	}
	if c.Delegate.IsZero() {
		return fmt.Errorf("delegate public key is required")
	}
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.MineProgramID.IsZero() {
		return fmt.Errorf("mine program ID is required")
	}
	return nil
}

func (c *DelegateConfig) accounts() solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		{PublicKey: c.Operator, IsSigner: false, IsWritable: true},
		{PublicKey: c.Delegate, IsSigner: true, IsWritable: false},
		{PublicKey: c.Rewarder, IsSigner: false, IsWritable: true},
		{PublicKey: c.MineProgramID, IsSigner: false, IsWritable: false},
	}
}

func BuildDelegateSetAnnualRewardsInstruction(programID solana.PublicKey, config DelegateConfig, newRate uint64) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(DelegateSetAnnualRewardsInstructionName), struct {
		NewRate uint64
	}{
		NewRate: newRate,
	}, config.accounts())
}

func BuildDelegateCreateQuarryInstruction(programID solana.PublicKey, config DelegateConfig, tokenMint, payer solana.PublicKey) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	if payer.IsZero() {
		return nil, fmt.Errorf("failed to validate config: payer public key is required")
	}
	quarry, bump, err := pda.DeriveQuarryPDA(config.MineProgramID, config.Rewarder, tokenMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	accounts := append(config.accounts(),
		&solana.AccountMeta{PublicKey: quarry, IsSigner: false, IsWritable: true},
		&solana.AccountMeta{PublicKey: tokenMint, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: payer, IsSigner: true, IsWritable: true},
		&solana.AccountMeta{PublicKey: solana.SysVarClockPubkey, IsSigner: false, IsWritable: false},
		&solana.AccountMeta{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	)
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(DelegateCreateQuarryInstructionName), struct {
		Bump uint8
	}{
		Bump: bump,
	}, accounts)
}

func BuildDelegateSetRewardsShareInstruction(programID solana.PublicKey, config DelegateConfig, quarry solana.PublicKey, newShare uint64) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	if quarry.IsZero() {
		return nil, fmt.Errorf("failed to validate config: quarry public key is required")
	}
	accounts := append(config.accounts(), &solana.AccountMeta{PublicKey: quarry, IsSigner: false, IsWritable: true})
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(DelegateSetRewardsShareInstructionName), struct {
		NewShare uint64
	}{
		NewShare: newShare,
	}, accounts)
}

func BuildDelegateSetFamineInstruction(programID solana.PublicKey, config DelegateConfig, quarry solana.PublicKey, famineTs int64) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	if quarry.IsZero() {
		return nil, fmt.Errorf("failed to validate config: quarry public key is required")
	}
	accounts := append(config.accounts(), &solana.AccountMeta{PublicKey: quarry, IsSigner: false, IsWritable: true})
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(DelegateSetFamineInstructionName), struct {
		FamineTs int64
	}{
		FamineTs: famineTs,
	}, accounts)
}
