package quarry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/jellydator/ttlcache/v3"
	"github.com/nftquarry/quarry/config"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/metrics"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

const defaultFetchPoolSize = 8

// SDK ties the program bindings to one RPC endpoint and fee payer.
type SDK struct {
	log      *slog.Logger
	rpc      RPCClient
	programs config.ProgramAddresses
	executor *executor.Executor

	cache    *ttlcache.Cache[solana.PublicKey, []byte]
	cacheTTL time.Duration

	fetchPoolSize int
	fetchPool     pond.ResultPool[*QuarryWrapper]

	executorOpts []executor.Option
}

type Option func(*SDK)

// WithAccountCache caches raw account data read by Fetch* calls for ttl.
// Instruction builders never read through the cache.
func WithAccountCache(ttl time.Duration) Option {
	return func(s *SDK) {
		s.cacheTTL = ttl
	}
}

// WithFetchPoolSize bounds the number of concurrent account reads made by
// batch fetches.
func WithFetchPoolSize(size int) Option {
	return func(s *SDK) {
		s.fetchPoolSize = size
	}
}

func WithExecutorOptions(opts ...executor.Option) Option {
	return func(s *SDK) {
		s.executorOpts = append(s.executorOpts, opts...)
	}
}

// New returns an SDK for programs. signer may be nil for read-only use; the
// builders then fail validation because there is no payer.
func New(log *slog.Logger, rpc RPCClient, signer *solana.PrivateKey, programs config.ProgramAddresses, opts ...Option) (*SDK, error) {
	if err := programs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid program addresses: %w", err)
	}
	s := &SDK{
		log:           log,
		rpc:           rpc,
		programs:      programs,
		fetchPoolSize: defaultFetchPoolSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetchPoolSize <= 0 {
		return nil, fmt.Errorf("fetch pool size must be greater than 0")
	}
	s.executor = executor.New(log, rpc, signer, s.executorOpts...)
	s.fetchPool = pond.NewResultPool[*QuarryWrapper](s.fetchPoolSize)
	if s.cacheTTL > 0 {
		s.cache = ttlcache.New(
			ttlcache.WithTTL[solana.PublicKey, []byte](s.cacheTTL),
			ttlcache.WithDisableTouchOnHit[solana.PublicKey, []byte](),
		)
	}
	return s, nil
}

// Programs returns a copy of the program addresses in use.
func (s *SDK) Programs() config.ProgramAddresses {
	return s.programs
}

// Payer returns the fee payer, or the zero key for a read-only SDK.
func (s *SDK) Payer() solana.PublicKey {
	return s.executor.Payer()
}

// Execute signs, submits and waits for finalization of env.
func (s *SDK) Execute(ctx context.Context, env *executor.Envelope) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	sig, res, err := s.executor.Execute(ctx, env, nil)
	if err != nil {
		return solana.Signature{}, nil, fmt.Errorf("failed to execute transaction: %w", err)
	}
	return sig, res, nil
}

// InvalidateAccount drops key from the account cache.
func (s *SDK) InvalidateAccount(key solana.PublicKey) {
	if s.cache != nil {
		s.cache.Delete(key)
	}
}

// Close stops the fetch pool, waiting for in-flight reads.
func (s *SDK) Close() {
	s.fetchPool.StopAndWait()
}

func (s *SDK) Mine() *MineWrapper {
	return &MineWrapper{sdk: s}
}

func (s *SDK) MintWrapper() *MintWrapperWrapper {
	return &MintWrapperWrapper{sdk: s}
}

func (s *SDK) Operator() *OperatorWrapper {
	return &OperatorWrapper{sdk: s}
}

func (s *SDK) Registry() *RegistryWrapper {
	return &RegistryWrapper{sdk: s}
}

func (s *SDK) MergeMine() *MergeMineWrapper {
	return &MergeMineWrapper{sdk: s}
}

func (s *SDK) Redeemer() *RedeemerWrapper {
	return &RedeemerWrapper{sdk: s}
}

// accountData reads the raw data of key, consulting the cache first.
func (s *SDK) accountData(ctx context.Context, key solana.PublicKey) ([]byte, error) {
	if s.cache != nil {
		if item := s.cache.Get(key); item != nil {
			metrics.AccountFetches.WithLabelValues(metrics.ResultCacheHit).Inc()
			return item.Value(), nil
		}
	}

	account, err := s.rpc.GetAccountInfo(ctx, key)
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			metrics.AccountFetches.WithLabelValues(metrics.ResultNotFound).Inc()
			return nil, ErrAccountNotFound
		}
		metrics.AccountFetches.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("failed to get account data: %w", err)
	}
	if account == nil || account.Value == nil || account.Value.Data == nil {
		metrics.AccountFetches.WithLabelValues(metrics.ResultNotFound).Inc()
		return nil, ErrAccountNotFound
	}
	metrics.AccountFetches.WithLabelValues(metrics.ResultFound).Inc()

	data := account.Value.Data.GetBinary()
	if s.cache != nil {
		s.cache.Set(key, data, ttlcache.DefaultTTL)
	}
	return data, nil
}

// accountExists reports whether key holds an account. Not cached.
func (s *SDK) accountExists(ctx context.Context, key solana.PublicKey) (bool, error) {
	account, err := s.rpc.GetAccountInfo(ctx, key)
	if err != nil {
		if errors.Is(err, solanarpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get account info: %w", err)
	}
	return account != nil && account.Value != nil, nil
}

// fetch reads key and decodes it with decode. kind labels decode failures.
func fetch[T any](ctx context.Context, s *SDK, key solana.PublicKey, kind AccountKind, decode func([]byte) (*T, error)) (*T, error) {
	data, err := s.accountData(ctx, key)
	if err != nil {
		return nil, err
	}
	v, err := decode(data)
	if err != nil {
		metrics.DecodeErrors.WithLabelValues(kind.String()).Inc()
		s.InvalidateAccount(key)
		return nil, fmt.Errorf("failed to decode %s %s: %w", kind, key, err)
	}
	return v, nil
}

// FetchAccount reads key and decodes it as whichever Quarry account its
// discriminator names.
func (s *SDK) FetchAccount(ctx context.Context, key solana.PublicKey) (*DecodedAccount, error) {
	data, err := s.accountData(ctx, key)
	if err != nil {
		return nil, err
	}
	acct, err := DecodeAccount(data)
	if err != nil {
		s.InvalidateAccount(key)
		return nil, fmt.Errorf("failed to decode account %s: %w", key, err)
	}
	return acct, nil
}
