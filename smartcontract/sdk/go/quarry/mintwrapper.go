package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mintwrapper"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

// splMintSize is the size of an SPL token mint account.
const splMintSize = 82

// MintWrapperWrapper builds transactions for the quarry_mint_wrapper
// program. The SDK payer acts as admin and as minter authority.
type MintWrapperWrapper struct {
	sdk *SDK
}

func (w *MintWrapperWrapper) ProgramID() solana.PublicKey {
	return w.sdk.programs.MintWrapper
}

type NewWrapperParams struct {
	// Base seeds the wrapper address. A fresh key is generated when nil.
	Base *solana.PrivateKey
	// TokenMint must already have the wrapper address as mint authority.
	TokenMint solana.PublicKey
	HardCap   uint64
}

// NewWrapper returns an envelope creating a mint wrapper over an existing
// mint, plus the wrapper address.
func (w *MintWrapperWrapper) NewWrapper(params NewWrapperParams) (*executor.Envelope, solana.PublicKey, error) {
	base, err := baseOrRandom(params.Base)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	wrapper, _, err := pda.DeriveMintWrapperPDA(w.ProgramID(), base.PublicKey())
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive mint wrapper PDA: %w", err)
	}
	instr, err := mintwrapper.BuildNewWrapperInstruction(w.ProgramID(), mintwrapper.NewWrapperInstructionConfig{
		Base:      base.PublicKey(),
		Admin:     w.sdk.Payer(),
		TokenMint: params.TokenMint,
		Payer:     w.sdk.Payer(),
		HardCap:   params.HardCap,
	})
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr).AddSigners(*base), wrapper, nil
}

type NewWrapperAndMintParams struct {
	Base *solana.PrivateKey
	// Mint is the keypair of the new mint. A fresh key is generated when nil.
	Mint     *solana.PrivateKey
	HardCap  uint64
	Decimals uint8
}

// NewWrapperAndMint creates a new mint whose mint and freeze authority is
// the wrapper, then the wrapper itself. It returns the envelope, the wrapper
// address and the mint address.
func (w *MintWrapperWrapper) NewWrapperAndMint(ctx context.Context, params NewWrapperAndMintParams) (*executor.Envelope, solana.PublicKey, solana.PublicKey, error) {
	base, err := baseOrRandom(params.Base)
	if err != nil {
		return nil, solana.PublicKey{}, solana.PublicKey{}, err
	}
	mint, err := baseOrRandom(params.Mint)
	if err != nil {
		return nil, solana.PublicKey{}, solana.PublicKey{}, err
	}
	if w.sdk.Payer().IsZero() {
		return nil, solana.PublicKey{}, solana.PublicKey{}, executor.ErrNoPrivateKey
	}
	wrapper, _, err := pda.DeriveMintWrapperPDA(w.ProgramID(), base.PublicKey())
	if err != nil {
		return nil, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to derive mint wrapper PDA: %w", err)
	}

	lamports, err := w.sdk.rpc.GetMinimumBalanceForRentExemption(ctx, splMintSize, solanarpc.CommitmentFinalized)
	if err != nil {
		return nil, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("failed to get rent exemption: %w", err)
	}

	createMint := system.NewCreateAccountInstruction(lamports, splMintSize, solana.TokenProgramID, w.sdk.Payer(), mint.PublicKey()).Build()
	initMint := token.NewInitializeMintInstruction(params.Decimals, wrapper, wrapper, mint.PublicKey(), solana.SysVarRentPubkey).Build()

	env, _, err := w.NewWrapper(NewWrapperParams{Base: base, TokenMint: mint.PublicKey(), HardCap: params.HardCap})
	if err != nil {
		return nil, solana.PublicKey{}, solana.PublicKey{}, err
	}
	out := executor.NewEnvelope(createMint, initMint).AddSigners(*mint).Combine(env)
	return out, wrapper, mint.PublicKey(), nil
}

// NewMinter grants minterAuthority a zero allowance on wrapper.
func (w *MintWrapperWrapper) NewMinter(wrapper, minterAuthority solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mintwrapper.BuildNewMinterInstruction(w.ProgramID(), mintwrapper.NewMinterInstructionConfig{
		MintWrapper:     wrapper,
		Admin:           w.sdk.Payer(),
		MinterAuthority: minterAuthority,
		Payer:           w.sdk.Payer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *MintWrapperWrapper) MinterUpdate(wrapper, minterAuthority solana.PublicKey, allowance uint64) (*executor.Envelope, error) {
	instr, err := mintwrapper.BuildMinterUpdateInstruction(w.ProgramID(), wrapper, w.sdk.Payer(), minterAuthority, allowance)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

// PerformMint mints amount to destination using the payer's minter.
func (w *MintWrapperWrapper) PerformMint(wrapper, tokenMint, destination solana.PublicKey, amount uint64) (*executor.Envelope, error) {
	instr, err := mintwrapper.BuildPerformMintInstruction(w.ProgramID(), mintwrapper.PerformMintInstructionConfig{
		MintWrapper:     wrapper,
		MinterAuthority: w.sdk.Payer(),
		TokenMint:       tokenMint,
		Destination:     destination,
		Amount:          amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *MintWrapperWrapper) TransferAdmin(wrapper, nextAdmin solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mintwrapper.BuildTransferAdminInstruction(w.ProgramID(), wrapper, w.sdk.Payer(), nextAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *MintWrapperWrapper) AcceptAdmin(wrapper solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mintwrapper.BuildAcceptAdminInstruction(w.ProgramID(), wrapper, w.sdk.Payer())
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *MintWrapperWrapper) FetchMintWrapper(ctx context.Context, key solana.PublicKey) (*mintwrapper.MintWrapper, error) {
	return fetch(ctx, w.sdk, key, AccountKindMintWrapper, mintwrapper.DeserializeMintWrapper)
}

func (w *MintWrapperWrapper) FetchMinter(ctx context.Context, wrapper, minterAuthority solana.PublicKey) (*mintwrapper.Minter, error) {
	key, _, err := pda.DeriveMinterPDA(w.ProgramID(), wrapper, minterAuthority)
	if err != nil {
		return nil, fmt.Errorf("failed to derive minter PDA: %w", err)
	}
	return fetch(ctx, w.sdk, key, AccountKindMinter, mintwrapper.DeserializeMinter)
}

func baseOrRandom(key *solana.PrivateKey) (*solana.PrivateKey, error) {
	if key != nil {
		return key, nil
	}
	k, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &k, nil
}
