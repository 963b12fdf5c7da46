package quarry

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
)

// createATAInstruction creates owner's associated token account for mint,
// funded by the payer.
func (s *SDK) createATAInstruction(owner, mint solana.PublicKey) solana.Instruction {
	return associatedtokenaccount.NewCreateInstruction(s.Payer(), owner, mint).Build()
}

// CreateATAIfNotExists returns an envelope creating owner's associated token
// account for mint, or nil when that account already exists.
func (s *SDK) CreateATAIfNotExists(ctx context.Context, owner, mint solana.PublicKey) (*executor.Envelope, error) {
	if s.Payer().IsZero() {
		return nil, executor.ErrNoPrivateKey
	}
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive associated token account: %w", err)
	}
	exists, err := s.accountExists(ctx, ata)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}
	return executor.NewEnvelope(s.createATAInstruction(owner, mint)), nil
}

var token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

// isTokenMint reports whether key is an account owned by an SPL token
// program. Collection and wallet keys are not. Not cached.
func (s *SDK) isTokenMint(ctx context.Context, key solana.PublicKey) (bool, error) {
	account, err := s.rpc.GetAccountInfo(ctx, key)
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get account info: %w", err)
	}
	if account == nil || account.Value == nil {
		return false, nil
	}
	owner := account.Value.Owner
	return owner == solana.TokenProgramID || owner == token2022ProgramID, nil
}
