package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ProgramAddresses holds the IDs of the deployed Quarry programs.
//
// It is a plain value: copies handed out by NetworkConfigForEnv cannot be
// used to change the addresses seen by another caller.
type ProgramAddresses struct {
	MergeMine   solana.PublicKey
	Mine        solana.PublicKey
	MintWrapper solana.PublicKey
	Operator    solana.PublicKey
	Redeemer    solana.PublicKey
	Registry    solana.PublicKey
}

// DefaultProgramAddresses returns the canonical Quarry program IDs.
func DefaultProgramAddresses() ProgramAddresses {
	return ProgramAddresses{
		MergeMine:   solana.MustPublicKeyFromBase58(MergeMineProgramID),
		Mine:        solana.MustPublicKeyFromBase58(MineProgramID),
		MintWrapper: solana.MustPublicKeyFromBase58(MintWrapperProgramID),
		Operator:    solana.MustPublicKeyFromBase58(OperatorProgramID),
		Redeemer:    solana.MustPublicKeyFromBase58(RedeemerProgramID),
		Registry:    solana.MustPublicKeyFromBase58(RegistryProgramID),
	}
}

// Validate checks that every program ID is set.
func (p ProgramAddresses) Validate() error {
	for _, prog := range p.All() {
		if prog.ID.IsZero() {
			return fmt.Errorf("%s program ID is required", prog.Name)
		}
	}
	return nil
}

// All returns the program IDs keyed by display name, in a stable order.
func (p ProgramAddresses) All() []NamedProgram {
	return []NamedProgram{
		{Name: "MergeMine", ID: p.MergeMine},
		{Name: "Mine", ID: p.Mine},
		{Name: "MintWrapper", ID: p.MintWrapper},
		{Name: "Operator", ID: p.Operator},
		{Name: "Redeemer", ID: p.Redeemer},
		{Name: "Registry", ID: p.Registry},
	}
}

type NamedProgram struct {
	Name string
	ID   solana.PublicKey
}
