package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/redeemer"
)

type RedeemerWrapper struct {
	sdk *SDK
}

func (w *RedeemerWrapper) ProgramID() solana.PublicKey {
	return w.sdk.programs.Redeemer
}

// CreateRedeemer returns an envelope creating the redeemer for the pair and
// its redemption vault, plus the redeemer address.
func (w *RedeemerWrapper) CreateRedeemer(iouMint, redemptionMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	key, _, err := pda.DeriveRedeemerPDA(w.ProgramID(), iouMint, redemptionMint)
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive redeemer PDA: %w", err)
	}
	instr, err := redeemer.BuildCreateRedeemerInstruction(w.ProgramID(), redeemer.CreateRedeemerInstructionConfig{
		IouMint:        iouMint,
		RedemptionMint: redemptionMint,
		Payer:          w.sdk.Payer(),
	})
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	env := executor.NewEnvelope(w.sdk.createATAInstruction(key, redemptionMint), instr)
	return env, key, nil
}

// RedeemTokens swaps amount IOU tokens from the payer's token account for
// redemption tokens sent to the payer's redemption token account.
func (w *RedeemerWrapper) RedeemTokens(iouMint, redemptionMint solana.PublicKey, amount uint64) (*executor.Envelope, error) {
	payer := w.sdk.Payer()
	iouSource, _, err := solana.FindAssociatedTokenAddress(payer, iouMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive iou token account: %w", err)
	}
	destination, _, err := solana.FindAssociatedTokenAddress(payer, redemptionMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive redemption token account: %w", err)
	}
	instr, err := redeemer.BuildRedeemTokensInstruction(w.ProgramID(), redeemer.RedeemTokensInstructionConfig{
		IouMint:               iouMint,
		RedemptionMint:        redemptionMint,
		SourceAuthority:       payer,
		IouSource:             iouSource,
		RedemptionDestination: destination,
		Amount:                amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (w *RedeemerWrapper) FetchRedeemer(ctx context.Context, iouMint, redemptionMint solana.PublicKey) (*redeemer.Redeemer, error) {
	key, _, err := pda.DeriveRedeemerPDA(w.ProgramID(), iouMint, redemptionMint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive redeemer PDA: %w", err)
	}
	return fetch(ctx, w.sdk, key, AccountKindRedeemer, redeemer.DeserializeRedeemer)
}
