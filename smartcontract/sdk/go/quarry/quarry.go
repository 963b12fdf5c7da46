package quarry

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
)

// ErrWrongMinerKind is returned when a fungible miner call is made on an NFT
// quarry or the other way round.
var ErrWrongMinerKind = errors.New("miner kind does not match quarry")

// QuarryWrapper builds transactions against one loaded quarry. An NFT quarry
// only hands out NFT miners; a fungible quarry only fungible ones.
type QuarryWrapper struct {
	rewarder *RewarderWrapper
	key      solana.PublicKey
	data     *mine.Quarry
	nft      bool
}

func (q *QuarryWrapper) Key() solana.PublicKey {
	return q.key
}

func (q *QuarryWrapper) Data() *mine.Quarry {
	return q.data
}

func (q *QuarryWrapper) Rewarder() *RewarderWrapper {
	return q.rewarder
}

func (q *QuarryWrapper) IsNFT() bool {
	return q.nft
}

func (q *QuarryWrapper) sdk() *SDK {
	return q.rewarder.sdk
}

func (q *QuarryWrapper) programID() solana.PublicKey {
	return q.rewarder.programID()
}

func (q *QuarryWrapper) minerKey(authority, nftMint solana.PublicKey) (mine.MinerKey, error) {
	if q.nft == nftMint.IsZero() {
		if q.nft {
			return mine.MinerKey{}, fmt.Errorf("%w: quarry %s requires an NFT mint", ErrWrongMinerKind, q.key)
		}
		return mine.MinerKey{}, fmt.Errorf("%w: quarry %s is fungible", ErrWrongMinerKind, q.key)
	}
	if authority.IsZero() {
		return mine.MinerKey{}, fmt.Errorf("authority public key is required")
	}
	return mine.MinerKey{Quarry: q.key, Authority: authority, NFTMint: nftMint}, nil
}

func (q *QuarryWrapper) minerAddress(authority, nftMint solana.PublicKey) (solana.PublicKey, error) {
	key, err := q.minerKey(authority, nftMint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	addr, _, err := key.Derive(q.programID())
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive miner PDA: %w", err)
	}
	return addr, nil
}

func (q *QuarryWrapper) GetMinerAddress(authority solana.PublicKey) (solana.PublicKey, error) {
	return q.minerAddress(authority, solana.PublicKey{})
}

func (q *QuarryWrapper) GetNFTMinerAddress(authority, nftMint solana.PublicKey) (solana.PublicKey, error) {
	return q.minerAddress(authority, nftMint)
}

// CreateMiner returns an envelope creating the miner vault and the
// fungible miner of authority, plus the miner address.
func (q *QuarryWrapper) CreateMiner(authority solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	return q.createMiner(authority, solana.PublicKey{})
}

// CreateNFTMiner is CreateMiner for a position holding nftMint.
func (q *QuarryWrapper) CreateNFTMiner(authority, nftMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	return q.createMiner(authority, nftMint)
}

func (q *QuarryWrapper) createMiner(authority, nftMint solana.PublicKey) (*executor.Envelope, solana.PublicKey, error) {
	key, err := q.minerKey(authority, nftMint)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	accounts, err := key.Accounts(q.programID(), q.data.TokenMintKey)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	instr, err := mine.BuildCreateMinerInstruction(q.programID(), mine.CreateMinerInstructionConfig{
		Rewarder:        q.rewarder.key,
		QuarryTokenMint: q.data.TokenMintKey,
		Miner:           key,
		Payer:           q.sdk().Payer(),
	})
	if err != nil {
		return nil, solana.PublicKey{}, fmt.Errorf("failed to build instruction: %w", err)
	}
	env := executor.NewEnvelope(
		q.sdk().createATAInstruction(accounts.Miner, accounts.StakedMint),
		instr,
	)
	return env, accounts.Miner, nil
}

func (q *QuarryWrapper) GetMiner(ctx context.Context, authority solana.PublicKey) (*mine.Miner, error) {
	return q.getMiner(ctx, authority, solana.PublicKey{})
}

func (q *QuarryWrapper) GetNFTMiner(ctx context.Context, authority, nftMint solana.PublicKey) (*mine.Miner, error) {
	return q.getMiner(ctx, authority, nftMint)
}

func (q *QuarryWrapper) getMiner(ctx context.Context, authority, nftMint solana.PublicKey) (*mine.Miner, error) {
	addr, err := q.minerAddress(authority, nftMint)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, q.sdk(), addr, AccountKindMiner, mine.DeserializeMiner)
}

func (q *QuarryWrapper) GetMinerActions(authority solana.PublicKey) (*MinerActions, error) {
	return q.minerActions(authority, solana.PublicKey{})
}

func (q *QuarryWrapper) GetNFTMinerActions(authority, nftMint solana.PublicKey) (*MinerActions, error) {
	return q.minerActions(authority, nftMint)
}

func (q *QuarryWrapper) minerActions(authority, nftMint solana.PublicKey) (*MinerActions, error) {
	key, err := q.minerKey(authority, nftMint)
	if err != nil {
		return nil, err
	}
	accounts, err := key.Accounts(q.programID(), q.data.TokenMintKey)
	if err != nil {
		return nil, err
	}
	return &MinerActions{quarry: q, key: key, accounts: accounts}, nil
}

func (q *QuarryWrapper) authorityConfig() mine.QuarryAuthorityInstructionConfig {
	return mine.QuarryAuthorityInstructionConfig{
		Rewarder:  q.rewarder.key,
		Authority: q.sdk().Payer(),
		Quarry:    q.key,
	}
}

// SetRewardsShare changes the quarry's share and re-syncs its rate.
func (q *QuarryWrapper) SetRewardsShare(share uint64) (*executor.Envelope, error) {
	instr, err := mine.BuildSetRewardsShareInstruction(q.programID(), q.authorityConfig(), share)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	update, err := q.UpdateRewards()
	if err != nil {
		return nil, err
	}
	return executor.NewEnvelope(instr).Combine(update), nil
}

func (q *QuarryWrapper) SetFamine(famineTs int64) (*executor.Envelope, error) {
	instr, err := mine.BuildSetFamineInstruction(q.programID(), q.authorityConfig(), famineTs)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}

func (q *QuarryWrapper) UpdateRewards() (*executor.Envelope, error) {
	instr, err := mine.BuildUpdateQuarryRewardsInstruction(q.programID(), q.rewarder.key, q.key)
	if err != nil {
		return nil, fmt.Errorf("failed to build instruction: %w", err)
	}
	return executor.NewEnvelope(instr), nil
}
