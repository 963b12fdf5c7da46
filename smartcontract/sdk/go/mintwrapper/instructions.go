package mintwrapper

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

type NewWrapperInstructionConfig struct {
	Base  solana.PublicKey
	Admin solana.PublicKey
	// TokenMint must already have the wrapper PDA as its mint authority.
	TokenMint solana.PublicKey
	Payer     solana.PublicKey
	HardCap   uint64
}

func (c *NewWrapperInstructionConfig) Validate() error {
	if c.Base.IsZero() {
		return fmt.Errorf("base public key is required")
	}
	if c.Admin.IsZero() {
		return fmt.Errorf("admin public key is required")
	}
	if c.TokenMint.IsZero() {
		return fmt.Errorf("token mint public key is required")
	}
	if c.Payer.IsZero() {
		return fmt.Errorf("payer public key is required")
	}
	if c.HardCap == 0 {
		return fmt.Errorf("hard cap must be greater than zero")
	}
	return nil
}

func BuildNewWrapperInstruction(programID solana.PublicKey, config NewWrapperInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	wrapper, bump, err := pda.DeriveMintWrapperPDA(programID, config.Base)
	if err != nil {
		return nil, fmt.Errorf("failed to derive mint wrapper PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.Base, IsSigner: true, IsWritable: false},
		{PublicKey: wrapper, IsSigner: false, IsWritable: true},
		{PublicKey: config.Admin, IsSigner: false, IsWritable: false},
		{PublicKey: config.TokenMint, IsSigner: false, IsWritable: false},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(NewWrapperInstructionName), struct {
		Bump    uint8
		HardCap uint64
	}{
		Bump:    bump,
		HardCap: config.HardCap,
	}, accounts)
}

func BuildTransferAdminInstruction(programID, mintWrapper, admin, nextAdmin solana.PublicKey) (solana.Instruction, error) {
	if err := requireKeys(namedKey{"mint wrapper", mintWrapper}, namedKey{"admin", admin}, namedKey{"next admin", nextAdmin}); err != nil {
		return nil, err
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: mintWrapper, IsSigner: false, IsWritable: true},
		{PublicKey: admin, IsSigner: true, IsWritable: false},
		{PublicKey: nextAdmin, IsSigner: false, IsWritable: false},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(TransferAdminInstructionName), nil, accounts)
}

func BuildAcceptAdminInstruction(programID, mintWrapper, pendingAdmin solana.PublicKey) (solana.Instruction, error) {
	if err := requireKeys(namedKey{"mint wrapper", mintWrapper}, namedKey{"pending admin", pendingAdmin}); err != nil {
		return nil, err
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: mintWrapper, IsSigner: false, IsWritable: true},
		{PublicKey: pendingAdmin, IsSigner: true, IsWritable: false},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(AcceptAdminInstructionName), nil, accounts)
}

type NewMinterInstructionConfig struct {
	MintWrapper     solana.PublicKey
	Admin           solana.PublicKey
	MinterAuthority solana.PublicKey
	Payer           solana.PublicKey
}

func (c *NewMinterInstructionConfig) Validate() error {
	return requireKeys(namedKey{"mint wrapper", c.MintWrapper}, namedKey{"admin", c.Admin}, namedKey{"minter authority", c.MinterAuthority}, namedKey{"payer", c.Payer})
}

func BuildNewMinterInstruction(programID solana.PublicKey, config NewMinterInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	minter, bump, err := pda.DeriveMinterPDA(programID, config.MintWrapper, config.MinterAuthority)
	if err != nil {
		return nil, fmt.Errorf("failed to derive minter PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: config.MintWrapper, IsSigner: false, IsWritable: true},
		{PublicKey: config.Admin, IsSigner: true, IsWritable: false},
		{PublicKey: config.MinterAuthority, IsSigner: false, IsWritable: false},
		{PublicKey: minter, IsSigner: false, IsWritable: true},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(NewMinterInstructionName), struct {
		Bump uint8
	}{
		Bump: bump,
	}, accounts)
}

// BuildMinterUpdateInstruction sets a minter's remaining allowance.
func BuildMinterUpdateInstruction(programID, mintWrapper, admin, minterAuthority solana.PublicKey, allowance uint64) (solana.Instruction, error) {
	if err := requireKeys(namedKey{"mint wrapper", mintWrapper}, namedKey{"admin", admin}, namedKey{"minter authority", minterAuthority}); err != nil {
		return nil, err
	}
	minter, _, err := pda.DeriveMinterPDA(programID, mintWrapper, minterAuthority)
	if err != nil {
		return nil, fmt.Errorf("failed to derive minter PDA: %w", err)
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: mintWrapper, IsSigner: false, IsWritable: true},
		{PublicKey: admin, IsSigner: true, IsWritable: false},
		{PublicKey: minter, IsSigner: false, IsWritable: true},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(MinterUpdateInstructionName), struct {
		Allowance uint64
	}{
		Allowance: allowance,
	}, accounts)
}

type PerformMintInstructionConfig struct {
	MintWrapper     solana.PublicKey
	MinterAuthority solana.PublicKey
	TokenMint       solana.PublicKey
	Destination     solana.PublicKey
	Amount          uint64
}

func (c *PerformMintInstructionConfig) Validate() error {
	if err := requireKeys(namedKey{"mint wrapper", c.MintWrapper}, namedKey{"minter authority", c.MinterAuthority}, namedKey{"token mint", c.TokenMint}, namedKey{"destination", c.Destination}); err != nil {
		return err
	}
	if c.Amount == 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

func BuildPerformMintInstruction(programID solana.PublicKey, config PerformMintInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	minter, _, err := pda.DeriveMinterPDA(programID, config.MintWrapper, config.MinterAuthority)
	if err != nil {
		return nil, fmt.Errorf("failed to derive minter PDA: %w", err)
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: config.MintWrapper, IsSigner: false, IsWritable: false},
		{PublicKey: config.MinterAuthority, IsSigner: true, IsWritable: false},
		{PublicKey: config.TokenMint, IsSigner: false, IsWritable: true},
		{PublicKey: config.Destination, IsSigner: false, IsWritable: true},
		{PublicKey: minter, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(PerformMintInstructionName), struct {
		Amount uint64
	}{
		Amount: config.Amount,
	}, accounts)
}

type namedKey struct {
	name  string
	value solana.PublicKey
}

func requireKeys(keys ...namedKey) error {
	for _, k := range keys {
		if k.value.IsZero() {
			return fmt.Errorf("%s public key is required", k.name)
		}
	}
	return nil
}
