package redeemer

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

const (
	RedeemerAccountName = "Redeemer"

	CreateRedeemerInstructionName = "create_redeemer"
	RedeemTokensInstructionName   = "redeem_tokens"
)

var RedeemerDiscriminator = anchor.AccountDiscriminator(RedeemerAccountName)

// Redeemer swaps IOU tokens 1:1 for tokens held in its redemption vault.
type Redeemer struct {
	IouMint             solana.PublicKey
	RedemptionMint      solana.PublicKey
	Bump                uint8
	TotalTokensRedeemed uint64
}

func DeserializeRedeemer(data []byte) (*Redeemer, error) {
	r, err := anchor.DecodeAccount[Redeemer](data, RedeemerDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize redeemer: %w", err)
	}
	return r, nil
}

// RedemptionVault is the redeemer's associated token account for the
// redemption mint.
func RedemptionVault(redeemer, redemptionMint solana.PublicKey) (solana.PublicKey, error) {
	vault, _, err := solana.FindAssociatedTokenAddress(redeemer, redemptionMint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive redemption vault: %w", err)
	}
	return vault, nil
}

type CreateRedeemerInstructionConfig struct {
	IouMint        solana.PublicKey
	RedemptionMint solana.PublicKey
	Payer          solana.PublicKey
}

func (c *CreateRedeemerInstructionConfig) Validate() error {
	if c.IouMint.IsZero() {
		return fmt.Errorf("iou mint public key is required")
	}
	if c.RedemptionMint.IsZero() {
		return fmt.Errorf("redemption mint public key is required")
	}
	if c.Payer.IsZero() {
		return fmt.Errorf("payer public key is required")
	}
	return nil
}

func BuildCreateRedeemerInstruction(programID solana.PublicKey, config CreateRedeemerInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	redeemer, bump, err := pda.DeriveRedeemerPDA(programID, config.IouMint, config.RedemptionMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive redeemer PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: redeemer, IsSigner: false, IsWritable: true},
		{PublicKey: config.IouMint, IsSigner: false, IsWritable: false},
		{PublicKey: config.RedemptionMint, IsSigner: false, IsWritable: false},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(CreateRedeemerInstructionName), struct {
		Bump uint8
	}{
		Bump: bump,
	}, accounts)
}

type RedeemTokensInstructionConfig struct {
	IouMint               solana.PublicKey
	RedemptionMint        solana.PublicKey
	SourceAuthority       solana.PublicKey
	IouSource             solana.PublicKey
	RedemptionDestination solana.PublicKey
	Amount                uint64
}

func (c *RedeemTokensInstructionConfig) Validate() error {
	if c.IouMint.IsZero() {
		return fmt.Errorf("iou mint public key is required")
	}
	if c.RedemptionMint.IsZero() {
		return fmt.Errorf("redemption mint public key is required")
	}
	if c.SourceAuthority.IsZero() {
		return fmt.Errorf("source authority public key is required")
	}
	if c.IouSource.IsZero() {
		return fmt.Errorf("iou source public key is required")
	}
	if c.RedemptionDestination.IsZero() {
		return fmt.Errorf("redemption destination public key is required")
	}
	if c.Amount == 0 {
		return fmt.Errorf("amount must be greater than 0")
	}
	return nil
}

// BuildRedeemTokensInstruction burns Amount IOU tokens from IouSource and
// transfers the same amount from the redemption vault to RedemptionDestination.
func BuildRedeemTokensInstruction(programID solana.PublicKey, config RedeemTokensInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	redeemer, _, err := pda.DeriveRedeemerPDA(programID, config.IouMint, config.RedemptionMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive redeemer PDA: %w", err)
	}
	vault, err := RedemptionVault(redeemer, config.RedemptionMint)
	if err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: redeemer, IsSigner: false, IsWritable: true},
		{PublicKey: config.IouMint, IsSigner: false, IsWritable: true},
		{PublicKey: vault, IsSigner: false, IsWritable: true},
		{PublicKey: config.SourceAuthority, IsSigner: true, IsWritable: false},
		{PublicKey: config.IouSource, IsSigner: false, IsWritable: true},
		{PublicKey: config.RedemptionDestination, IsSigner: false, IsWritable: true},
		{PublicKey: solana.TokenProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(RedeemTokensInstructionName), struct {
		Amount uint64
	}{
		Amount: config.Amount,
	}, accounts)
}
