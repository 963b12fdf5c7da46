package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/registry"
)

type RegistryWrapper struct {
	sdk *SDK
}

func (w *RegistryWrapper) ProgramID() solana.PublicKey {
	return w.sdk.programs.Registry
}

// NewRegistry returns an envelope creating the registry of rewarder with
// room for maxQuarries quarries, plus the registry address.
func (w *RegistryWrapper) NewRegistry(rewarder solana.PublicKey, maxQuarries uint16) (*executor.Envelope, solana.PublicKey, error) {
	key, _, err := pda.DeriveRegistryPDA(w.ProgramID(), rewarder)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive registry PDA: %w", err)
	}
	instr, err := registry.BuildNewRegistryInstruction(w.ProgramID(), registry.NewRegistryInstructionConfig{
		Rewarder:    rewarder,
		Payer:       w.sdk.Payer(),
		MaxQuarries: maxQuarries,
	})
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), key, nil
}

// SyncQuarry records the quarry for tokenMint in the rewarder's registry.
func (w *RegistryWrapper) SyncQuarry(rewarder, tokenMint solana.PublicKey) (*executor.Envelope, error) {
	quarry, _, err := pda.DeriveQuarryPDA(w.sdk.programs.Mine, rewarder, tokenMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	instr, err := registry.BuildSyncQuarryInstruction(w.ProgramID(), rewarder, quarry)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *RegistryWrapper) FetchRegistry(ctx context.Context, rewarder solana.PublicKey) (*registry.Registry, error) {
	key, _, err := pda.DeriveRegistryPDA(w.ProgramID(), rewarder)
	if err != nil {
		return nil, fmt.Errorf("failed to derive registry PDA: %w", err)
	}
	return fetch(ctx, w.sdk, key, AccountKindRegistry, registry.DeserializeRegistry)
}
