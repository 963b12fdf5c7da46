package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/operator"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

// OperatorWrapper builds transactions for the quarry_operator program. The
// SDK payer acts as admin and as delegate.
type OperatorWrapper struct {
	sdk *SDK
}

func (w *OperatorWrapper) ProgramID() solana.PublicKey {
	return w.sdk.programs.Operator
}

// CreateOperator hands the rewarder's authority to a new operator whose
// admin is the payer. The payer must be the rewarder's current authority.
func (w *OperatorWrapper) CreateOperator(rewarder solana.PublicKey, base *solana.PrivateKey) (*executor.Envelope, solana.PublicKey, error) {
	base, err := baseOrRandom(base)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	op, _, err := pda.DeriveOperatorPDA(w.ProgramID(), base.PublicKey())
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive operator PDA: %w", err)
	}

	transfer, err := mine.BuildTransferAuthorityInstruction(w.sdk.programs.Mine, mine.RewarderAuthorityInstructionConfig{
		Rewarder:  rewarder,
		Authority: w.sdk.Payer(),
	}, op)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	create, err := operator.BuildCreateOperatorInstruction(w.ProgramID(), operator.CreateOperatorInstructionConfig{
		Base:          base.PublicKey(),
		Rewarder:      rewarder,
		Admin:         w.sdk.Payer(),
		Payer:         w.sdk.Payer(),
		MineProgramID: w.sdk.programs.Mine,
	})
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(transfer, create).AddSigners(*base), op, nil
}

// SetRole gives role on operatorKey to delegate.
func (w *OperatorWrapper) SetRole(operatorKey solana.PublicKey, role operator.Role, delegate solana.PublicKey) (*executor.Envelope, error) {
	instr, err := operator.BuildSetRoleInstruction(w.ProgramID(), operatorKey, w.sdk.Payer(), delegate, role)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *OperatorWrapper) delegateConfig(operatorKey, rewarder solana.PublicKey) operator.DelegateConfig {
	return operator.DelegateConfig{
		Operator:      operatorKey,
		Delegate:      w.sdk.Payer(),
		Rewarder:      rewarder,
		MineProgramID: w.sdk.programs.Mine,
	}
}

func (w *OperatorWrapper) DelegateSetAnnualRewards(operatorKey, rewarder solana.PublicKey, rate uint64) (*executor.Envelope, error) {
	instr, err := operator.BuildDelegateSetAnnualRewardsInstruction(w.ProgramID(), w.delegateConfig(operatorKey, rewarder), rate)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

// DelegateCreateQuarry returns an envelope creating the quarry for tokenMint
// through the operator, plus the quarry address.
func (w *OperatorWrapper) DelegateCreateQuarry(operatorKey, rewarder, tokenMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	quarry, _, err := pda.DeriveQuarryPDA(w.sdk.programs.Mine, rewarder, tokenMint)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	instr, err := operator.BuildDelegateCreateQuarryInstruction(w.ProgramID(), w.delegateConfig(operatorKey, rewarder), tokenMint, w.sdk.Payer())
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), quarry, nil
}

func (w *OperatorWrapper) DelegateSetRewardsShare(operatorKey, rewarder, tokenMint solana.PublicKey, share uint64) (*executor.Envelope, error) {
	quarry, _, err := pda.DeriveQuarryPDA(w.sdk.programs.Mine, rewarder, tokenMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	instr, err := operator.BuildDelegateSetRewardsShareInstruction(w.ProgramID(), w.delegateConfig(operatorKey, rewarder), quarry, share)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *OperatorWrapper) DelegateSetFamine(operatorKey, rewarder, tokenMint solana.PublicKey, famineTs int64) (*executor.Envelope, error) {
	quarry, _, err := pda.DeriveQuarryPDA(w.sdk.programs.Mine, rewarder, tokenMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	instr, err := operator.BuildDelegateSetFamineInstruction(w.ProgramID(), w.delegateConfig(operatorKey, rewarder), quarry, famineTs)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *OperatorWrapper) FetchOperator(ctx context.Context, key solana.PublicKey) (*operator.Operator, error) {
	return fetch(ctx, w.sdk, key, AccountKindOperator, operator.DeserializeOperator)
}
