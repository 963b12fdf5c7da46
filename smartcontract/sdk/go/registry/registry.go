package registry

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

const (
	RegistryAccountName = "Registry"

	NewRegistryInstructionName = "new_registry"
	SyncQuarryInstructionName  = "sync_quarry"
)

var RegistryDiscriminator = anchor.AccountDiscriminator(RegistryAccountName)

// Registry lists the staked token mint of every quarry of a rewarder, indexed
// by quarry index. Unsynced slots hold the zero key.
type Registry struct {
	Bump     uint8
	Rewarder solana.PublicKey
	Tokens   []solana.PublicKey
}

// SyncedTokens returns the non-empty slots in index order.
func (r *Registry) SyncedTokens() []solana.PublicKey {
	out := make([]solana.PublicKey, 0, len(r.Tokens))
	for _, t := range r.Tokens {
		if !t.IsZero() {
			out = append(out, t)
		}
	}
	return out
}

func DeserializeRegistry(data []byte) (*Registry, error) {
	r, err := anchor.DecodeAccount[Registry](data, RegistryDiscriminator)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize registry: %w", err)
	}
	return r, nil
}

type NewRegistryInstructionConfig struct {
	Rewarder    solana.PublicKey
	Payer       solana.PublicKey
	MaxQuarries uint16
}

func (c *NewRegistryInstructionConfig) Validate() error {
	if c.Rewarder.IsZero() {
		return fmt.Errorf("rewarder public key is required")
	}
	if c.Payer.IsZero() {
		return fmt.Errorf("payer public key is required")
	}
	if c.MaxQuarries == 0 {
		return fmt.Errorf("max quarries must be greater than 0")
	}
	return nil
}

func BuildNewRegistryInstruction(programID solana.PublicKey, config NewRegistryInstructionConfig) (solana.Instruction, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	registry, bump, err := pda.DeriveRegistryPDA(programID, config.Rewarder)
	if err != nil {
		return nil, fmt.Errorf("failed to derive registry PDA: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		{PublicKey: registry, IsSigner: false, IsWritable: true},
		{PublicKey: config.Rewarder, IsSigner: false, IsWritable: false},
		{PublicKey: config.Payer, IsSigner: true, IsWritable: true},
		{PublicKey: solana.SystemProgramID, IsSigner: false, IsWritable: false},
	}

	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(NewRegistryInstructionName), struct {
		MaxQuarries uint16
		Bump        uint8
	}{
		MaxQuarries: config.MaxQuarries,
		Bump:        bump,
	}, accounts)
}

// BuildSyncQuarryInstruction writes a quarry's token mint into the registry
// slot for its index. Anyone may call it.
func BuildSyncQuarryInstruction(programID, rewarder, quarry solana.PublicKey) (solana.Instruction, error) {
	if rewarder.IsZero() {
		return nil, fmt.Errorf("rewarder public key is required")
	}
	if quarry.IsZero() {
		return nil, fmt.Errorf("quarry public key is required")
	}
	registry, _, err := pda.DeriveRegistryPDA(programID, rewarder)
	if err != nil {
		return nil, fmt.Errorf("failed to derive registry PDA: %w", err)
	}
	accounts := solana.AccountMetaSlice{
		{PublicKey: quarry, IsSigner: false, IsWritable: false},
		{PublicKey: registry, IsSigner: false, IsWritable: true},
	}
	return anchor.NewInstruction(programID, anchor.InstructionDiscriminator(SyncQuarryInstructionName), nil, accounts)
}
