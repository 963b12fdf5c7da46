package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/metrics"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

// quarryRewarderOffset is the offset of Quarry.Rewarder in account data.
const quarryRewarderOffset = 8

// MineWrapper builds transactions for the quarry_mine program.
type MineWrapper struct {
	sdk *SDK
}

func (w *MineWrapper) ProgramID() solana.PublicKey {
	return w.sdk.programs.Mine
}

type CreateRewarderParams struct {
	// Base seeds the rewarder address. A fresh key is generated when nil.
	Base *solana.PrivateKey
	// Authority defaults to the payer.
	Authority        solana.PublicKey
	MintWrapper      solana.PublicKey
	RewardsTokenMint solana.PublicKey
}

// CreateRewarder returns an envelope that creates the rewarder's claim fee
// token account and the rewarder itself, plus the new rewarder's address.
func (w *MineWrapper) CreateRewarder(params CreateRewarderParams) (*executor.Envelope, solana.PublicKey, error) {
	base, err := baseOrRandom(params.Base)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	authority := params.Authority
	if authority.IsZero() {
		authority = w.sdk.Payer()
	}

	rewarder, _, err := pda.DeriveRewarderPDA(w.ProgramID(), base.PublicKey())
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to derive rewarder PDA: %w", err)
	}
	if params.RewardsTokenMint.IsZero() {
		return nil, solana.PublicKey{}, fmt.Errorf("rewards token mint public key is required")
	}

	instr, err := mine.BuildNewRewarderInstruction(w.ProgramID(), mine.NewRewarderInstructionConfig{
		Base:             base.PublicKey(),
		Payer:            w.sdk.Payer(),
		InitialAuthority: authority,
		MintWrapper:      params.MintWrapper,
		RewardsTokenMint: params.RewardsTokenMint,
	})
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}

	env := executor.NewEnvelope(
		w.sdk.createATAInstruction(rewarder, params.RewardsTokenMint),
		instr,
	).AddSigners(*base)
	return env, rewarder, nil
}

// LoadRewarderWrapper fetches the rewarder at key.
func (w *MineWrapper) LoadRewarderWrapper(ctx context.Context, key solana.PublicKey) (*RewarderWrapper, error) {
	data, err := w.FetchRewarder(ctx, key)
	if err != nil {
		return nil, err
	}
	return &RewarderWrapper{sdk: w.sdk, key: key, data: data}, nil
}

func (w *MineWrapper) FetchRewarder(ctx context.Context, key solana.PublicKey) (*mine.Rewarder, error) {
	return fetch(ctx, w.sdk, key, AccountKindRewarder, mine.DeserializeRewarder)
}

func (w *MineWrapper) FetchQuarry(ctx context.Context, key solana.PublicKey) (*mine.Quarry, error) {
	return fetch(ctx, w.sdk, key, AccountKindQuarry, mine.DeserializeQuarry)
}

func (w *MineWrapper) FetchMiner(ctx context.Context, key solana.PublicKey) (*mine.Miner, error) {
	return fetch(ctx, w.sdk, key, AccountKindMiner, mine.DeserializeMiner)
}

type KeyedQuarry struct {
	Key    solana.PublicKey
	Quarry *mine.Quarry
}

// FetchAllQuarries lists every quarry of rewarder. Accounts that fail to
// decode are logged and skipped.
func (w *MineWrapper) FetchAllQuarries(ctx context.Context, rewarder solana.PublicKey) ([]KeyedQuarry, error) {
	opts := &solanarpc.GetProgramAccountsOpts{
		Filters: []solanarpc.RPCFilter{
			{
				Memcmp: &solanarpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  solana.Base58(mine.QuarryDiscriminator[:]),
				},
			},
			{
				Memcmp: &solanarpc.RPCFilterMemcmp{
					Offset: quarryRewarderOffset,
					Bytes:  solana.Base58(rewarder.Bytes()),
				},
			},
		},
	}

	accounts, err := w.sdk.rpc.GetProgramAccountsWithOpts(ctx, w.ProgramID(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get program accounts: %w", err)
	}

	quarries := make([]KeyedQuarry, 0, len(accounts))
	for _, acct := range accounts {
		if acct == nil || acct.Account == nil || acct.Account.Data == nil {
			continue
		}
		q, err := mine.DeserializeQuarry(acct.Account.Data.GetBinary())
		if err != nil {
			metrics.DecodeErrors.WithLabelValues(AccountKindQuarry.String()).Inc()
			w.sdk.log.Warn("failed to deserialize quarry account", "pubkey", acct.Pubkey, "error", err)
			continue
		}
		quarries = append(quarries, KeyedQuarry{Key: acct.Pubkey, Quarry: q})
	}
	return quarries, nil
}
