package quarry

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
)

// RewarderWrapper builds transactions against one loaded rewarder. The
// SDK payer acts as the signing authority.
type RewarderWrapper struct {
	sdk  *SDK
	key  solana.PublicKey
	data *mine.Rewarder
}

func (r *RewarderWrapper) Key() solana.PublicKey {
	return r.key
}

func (r *RewarderWrapper) Data() *mine.Rewarder {
	return r.data
}

func (r *RewarderWrapper) programID() solana.PublicKey {
	return r.sdk.programs.Mine
}

func (r *RewarderWrapper) authorityConfig() mine.RewarderAuthorityInstructionConfig {
	return mine.RewarderAuthorityInstructionConfig{
		Rewarder:  r.key,
		Authority: r.sdk.Payer(),
	}
}

// GetQuarryKey returns the quarry address for tokenMint, which is the
// collection key for NFT quarries.
func (r *RewarderWrapper) GetQuarryKey(tokenMint solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := pda.DeriveQuarryPDA(r.programID(), r.key, tokenMint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive quarry PDA: %w", err)
	}
	return key, nil
}

// CreateQuarry returns an envelope creating the quarry for tokenMint and the
// quarry's address.
func (r *RewarderWrapper) CreateQuarry(tokenMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	key, err := r.GetQuarryKey(tokenMint)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	instr, err := mine.BuildCreateQuarryInstruction(r.programID(), mine.CreateQuarryInstructionConfig{
		Rewarder:  r.key,
		Authority: r.sdk.Payer(),
		TokenMint: tokenMint,
		Payer:     r.sdk.Payer(),
	})
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), key, nil
}

// GetQuarry loads the fungible quarry for tokenMint. The quarry's key must
// be an SPL mint, otherwise ErrWrongMinerKind is returned.
func (r *RewarderWrapper) GetQuarry(ctx context.Context, tokenMint solana.PublicKey) (*QuarryWrapper, error) {
	return r.loadQuarry(ctx, tokenMint, false)
}

// GetNFTQuarry loads the quarry keyed by collection. Its miners each hold
// one NFT of the collection. A quarry keyed by an SPL mint is fungible and
// fails with ErrWrongMinerKind.
func (r *RewarderWrapper) GetNFTQuarry(ctx context.Context, collection solana.PublicKey) (*QuarryWrapper, error) {
	return r.loadQuarry(ctx, collection, true)
}

func (r *RewarderWrapper) loadQuarry(ctx context.Context, tokenMint solana.PublicKey, nft bool) (*QuarryWrapper, error) {
	key, err := r.GetQuarryKey(tokenMint)
	if err != nil {
		return nil, err
	}
	data, err := fetch(ctx, r.sdk, key, AccountKindQuarry, mine.DeserializeQuarry)
	if err != nil {
		return nil, err
	}
	if data.Rewarder != r.key {
		return nil, fmt.Errorf("quarry %s belongs to rewarder %s, not %s", key, data.Rewarder, r.key)
	}
	fungible, err := r.sdk.isTokenMint(ctx, data.TokenMintKey)
	if err != nil {
		return nil, err
	}
	if nft == fungible {
		if fungible {
			return nil, fmt.Errorf("%w: quarry %s is keyed by token mint %s", ErrWrongMinerKind, key, data.TokenMintKey)
		}
		return nil, fmt.Errorf("%w: quarry %s is keyed by collection %s", ErrWrongMinerKind, key, data.TokenMintKey)
	}
	return &QuarryWrapper{rewarder: r, key: key, data: data, nft: nft}, nil
}

// FetchQuarries loads the fungible quarries for mints concurrently, in the
// order given.
func (r *RewarderWrapper) FetchQuarries(ctx context.Context, mints []solana.PublicKey) ([]*QuarryWrapper, error) {
	group := r.sdk.fetchPool.NewGroupContext(ctx)
	for _, mint := range mints {
		group.SubmitErr(func() (*QuarryWrapper, error) {
			q, err := r.GetQuarry(ctx, mint)
			if err != nil {
				return nil, fmt.Errorf("quarry for mint %s: %w", mint, err)
			}
			return q, nil
		})
	}
	quarries, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quarries: %w", err)
	}
	return quarries, nil
}

func (r *RewarderWrapper) SetAnnualRewards(rate uint64) (*executor.Envelope, error) {
	instr, err := mine.BuildSetAnnualRewardsInstruction(r.programID(), r.authorityConfig(), rate)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

// SyncQuarryRewards updates the rewards rate of the quarry for each mint.
func (r *RewarderWrapper) SyncQuarryRewards(mints []solana.PublicKey) (*executor.Envelope, error) {
	env := executor.NewEnvelope()
	for _, mint := range mints {
		key, err := r.GetQuarryKey(mint)
		if err != nil {
			return nil, err
		}
		instr, err := mine.BuildUpdateQuarryRewardsInstruction(r.programID(), r.key, key)
		if err != nil {
			return nil, fmt.Errorf("failed to build instruction: %w", err)
		}
		env.Instructions = append(env.Instructions, instr)
	}
	return env, nil
}

// SetAndSyncAnnualRewards sets the annual rate and then re-syncs every
// listed quarry in the same transaction.
func (r *RewarderWrapper) SetAndSyncAnnualRewards(rate uint64, mints []solana.PublicKey) (*executor.Envelope, error) {
	set, err := r.SetAnnualRewards(rate)
	if err != nil {
		return nil, err
	}
	sync, err := r.SyncQuarryRewards(mints)
	if err != nil {
		return nil, err
	}
	return set.Combine(sync), nil
}

func (r *RewarderWrapper) TransferAuthority(newAuthority solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mine.BuildTransferAuthorityInstruction(r.programID(), r.authorityConfig(), newAuthority)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

// AcceptAuthority is signed by the payer as the pending authority.
func (r *RewarderWrapper) AcceptAuthority() (*executor.Envelope, error) {
	instr, err := mine.BuildAcceptAuthorityInstruction(r.programID(), r.authorityConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (r *RewarderWrapper) SetPauseAuthority(pauseAuthority solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mine.BuildSetPauseAuthorityInstruction(r.programID(), r.authorityConfig(), pauseAuthority)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (r *RewarderWrapper) Pause() (*executor.Envelope, error) {
	instr, err := mine.BuildPauseInstruction(r.programID(), r.authorityConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (r *RewarderWrapper) Unpause() (*executor.Envelope, error) {
	instr, err := mine.BuildUnpauseInstruction(r.programID(), r.authorityConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

// ExtractFees moves accumulated claim fees to feeToTokenAccount.
func (r *RewarderWrapper) ExtractFees(feeToTokenAccount solana.PublicKey) (*executor.Envelope, error) {
	instr, err := mine.BuildExtractFeesInstruction(r.programID(), mine.ExtractFeesInstructionConfig{
		Rewarder:             r.key,
		ClaimFeeTokenAccount: r.data.ClaimFeeTokenAccount,
		FeeToTokenAccount:    feeToTokenAccount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}
