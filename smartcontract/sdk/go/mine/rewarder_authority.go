package mine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
)

// RewarderAuthorityInstructionConfig is shared by the instructions that only
// need the rewarder and one signing authority.
type RewarderAuthorityInstructionConfig struct {
	Rewarder  solana.PublicKey
	Authority solana.PublicKey
}

func (c *RewarderAuthorityInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Authority.IsZero() {
		return fmt.Errorf("authority public key is required")
	}
	return nil
}

func (c *RewarderAuthorityInstructionConfig) accounts() solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		{PublicKey: c.Authority, IsSigner: true, IsWritable: false},
		{PublicKey: c.Rewarder, IsSigner: false, IsWritable: true},
	}
}

func buildRewarderAuthorityInstruction(programID solana.PublicKey, name string, config RewarderAuthorityInstructionConfig, args any, extra ...*solana.AccountMeta) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(name), args, append(config.accounts(), extra...))
}

// BuildSetPauseAuthorityInstruction sets the key allowed to pause the rewarder.
func BuildSetPauseAuthorityInstruction(programID solana.PublicKey, config RewarderAuthorityInstructionConfig, newPauseAuthority solana.PublicKey) (solana.Instruction, error) {
	if newPauseAuthority.IsZero() {
		return nil, fmt.Errorf("failed to validate config: new pause authority public key is required")
	}
	return buildRewarderAuthorityInstruction(programID, SetPauseAuthorityInstructionName, config, nil, solana.Meta(newPauseAuthority))
}

// BuildPauseInstruction pauses the rewarder. Authority is the pause authority.
func BuildPauseInstruction(programID solana.PublicKey, config RewarderAuthorityInstructionConfig) (solana.Instruction, error) {
	return buildRewarderAuthorityInstruction(programID, PauseInstructionName, config, nil)
}

// BuildUnpauseInstruction unpauses the rewarder. Authority is the pause authority.
func BuildUnpauseInstruction(programID solana.PublicKey, config RewarderAuthorityInstructionConfig) (solana.Instruction, error) {
	return buildRewarderAuthorityInstruction(programID, UnpauseInstructionName, config, nil)
}

func BuildTransferAuthorityInstruction(programID solana.PublicKey, config RewarderAuthorityInstructionConfig, newAuthority solana.PublicKey) (solana.Instruction, error) {
	if newAuthority.IsZero() {
		return nil, fmt.Errorf("failed to validate config: new authority public key is required")
	}
	return buildRewarderAuthorityInstruction(programID, TransferAuthorityInstructionName, config, struct {
		NewAuthority solana.PublicKey
	}{
		NewAuthority: newAuthority,
	})
}

// BuildAcceptAuthorityInstruction completes a transfer. Authority is the pending authority.
func BuildAcceptAuthorityInstruction(programID solana.PublicKey, config RewarderAuthorityInstructionConfig) (solana.Instruction, error) {
	return buildRewarderAuthorityInstruction(programID, AcceptAuthorityInstructionName, config, nil)
}

func BuildSetAnnualRewardsInstruction(programID solana.PublicKey, config RewarderAuthorityInstructionConfig, newRate uint64) (solana.Instruction, error) {
	return buildRewarderAuthorityInstruction(programID, SetAnnualRewardsInstructionName, config, struct {
		NewRate uint64
	}{
		NewRate: newRate,
	})
}
