package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mergemine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

// MergeMineWrapper builds transactions for the quarry_merge_mine program.
// The SDK payer acts as merge miner owner.
type MergeMineWrapper struct {
	sdk *SDK
}

func (w *MergeMineWrapper) ProgramID() solana.PublicKey {
	return w.sdk.programs.MergeMine
}

// NewPool returns an envelope creating the merge pool for primaryMint and
// its replica mint, plus the pool address.
func (w *MergeMineWrapper) NewPool(primaryMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	pool, _, err := pda.DeriveMergePoolPDA(w.ProgramID(), primaryMint)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive merge pool PDA: %w", err)
	}
	instr, err := mergemine.BuildNewPoolInstruction(w.ProgramID(), primaryMint, w.sdk.Payer())
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), pool, nil
}

func (w *MergeMineWrapper) mergeMinerKey(primaryMint, owner solana.PublicKey) (solana.PublicKey, error) {
	pool, _, err := pda.DeriveMergePoolPDA(w.ProgramID(), primaryMint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive merge pool PDA: %w", err)
	}
	mm, _, err := pda.DeriveMergeMinerPDA(w.ProgramID(), pool, owner)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive merge miner PDA: %w", err)
	}
	return mm, nil
}

// InitMergeMiner returns an envelope creating the payer's merge miner in the
// pool for primaryMint and the merge miner's primary token account.
func (w *MergeMineWrapper) InitMergeMiner(primaryMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	mm, err := w.mergeMinerKey(primaryMint, w.sdk.Payer())
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	instr, err := mergemine.BuildInitMergeMinerInstruction(w.ProgramID(), primaryMint, w.sdk.Payer(), w.sdk.Payer())
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	env := executor.NewEnvelope(instr, w.sdk.createATAInstruction(mm, primaryMint))
	return env, mm, nil
}

// InitMiner returns an envelope creating the quarry miner, owned by the
// payer's merge miner, for the quarry of tokenMint under rewarder.
func (w *MergeMineWrapper) InitMiner(primaryMint, rewarder, tokenMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	qc := mergemine.QuarryConfig{MineProgramID: w.sdk.programs.Mine, Rewarder: rewarder, TokenMint: tokenMint}
	mm, err := w.mergeMinerKey(primaryMint, w.sdk.Payer())
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	quarry, _, err := pda.DeriveQuarryPDA(qc.MineProgramID, rewarder, tokenMint)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	accounts, err := mine.MinerKey{Quarry: quarry, Authority: mm}.Accounts(qc.MineProgramID, tokenMint)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	instr, err := mergemine.BuildInitMinerInstruction(w.ProgramID(), primaryMint, w.sdk.Payer(), w.sdk.Payer(), qc)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	env := executor.NewEnvelope(w.sdk.createATAInstruction(accounts.Miner, tokenMint), instr)
	return env, accounts.Miner, nil
}

func (w *MergeMineWrapper) primaryStakeConfig(primaryMint, rewarder solana.PublicKey) mergemine.PrimaryStakeInstructionConfig {
	return mergemine.PrimaryStakeInstructionConfig{
		PrimaryMint: primaryMint,
		Owner:       w.sdk.Payer(),
		Quarry: mergemine.QuarryConfig{
			MineProgramID: w.sdk.programs.Mine,
			Rewarder:      rewarder,
			TokenMint:     primaryMint,
		},
	}
}

func (w *MergeMineWrapper) StakePrimaryMiner(primaryMint, rewarder solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mergemine.BuildStakePrimaryMinerInstruction(w.ProgramID(), w.primaryStakeConfig(primaryMint, rewarder))
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *MergeMineWrapper) UnstakePrimaryMiner(primaryMint, rewarder solana.PublicKey, amount uint64) (*executor.Envelope, error) {
	instr, err := mergemine.BuildUnstakePrimaryMinerInstruction(w.ProgramID(), w.primaryStakeConfig(primaryMint, rewarder), amount)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

// WithdrawTokens sweeps the merge miner's balance of withdrawMint to
// destination.
func (w *MergeMineWrapper) WithdrawTokens(primaryMint, withdrawMint, destination solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mergemine.BuildWithdrawTokensInstruction(w.ProgramID(), mergemine.WithdrawTokensInstructionConfig{
		PrimaryMint:      primaryMint,
		Owner:            w.sdk.Payer(),
		WithdrawMint:     withdrawMint,
		TokenDestination: destination,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *MergeMineWrapper) FetchMergePool(ctx context.Context, primaryMint solana.PublicKey) (*mergemine.MergePool, error) {
	pool, _, err := pda.DeriveMergePoolPDA(w.ProgramID(), primaryMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive merge pool PDA: %w", err)
	}
	return fetch(ctx, w.sdk, pool, AccountKindMergePool, mergemine.DeserializeMergePool)
}

func (w *MergeMineWrapper) FetchMergeMiner(ctx context.Context, primaryMint, owner solana.PublicKey) (*mergemine.MergeMiner, error) {
	mm, err := w.mergeMinerKey(primaryMint, owner)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, w.sdk, mm, AccountKindMergeMiner, mergemine.DeserializeMergeMiner)
}
