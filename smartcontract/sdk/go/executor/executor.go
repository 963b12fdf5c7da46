package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/jonboulle/clockwork"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/metrics"
)

var (
	// ErrNoPrivateKey is returned when a transaction signing operation is attempted without a configured private key.
	ErrNoPrivateKey = errors.New("no private key configured")

	// ErrEmptyEnvelope is returned when there are no instructions to submit.
	ErrEmptyEnvelope = errors.New("envelope has no instructions")

	errSignatureNotVisible = errors.New("signature not visible yet")
)

type Executor struct {
	log                   *slog.Logger
	rpc                   RPCClient
	signer                *solana.PrivateKey
	clock                 clockwork.Clock
	waitForVisibleTimeout time.Duration
	pollInterval          time.Duration
}

type Option func(*Executor)

func WithWaitForVisibleTimeout(timeout time.Duration) Option {
	return func(e *Executor) {
		e.waitForVisibleTimeout = timeout
	}
}

// WithPollInterval sets how often finalization status is polled.
func WithPollInterval(interval time.Duration) Option {
	return func(e *Executor) {
		e.pollInterval = interval
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(e *Executor) {
		e.clock = clock
	}
}

func New(log *slog.Logger, rpc RPCClient, signer *solana.PrivateKey, opts ...Option) *Executor {
	e := &Executor{
		log:                   log,
		rpc:                   rpc,
		signer:                signer,
		clock:                 clockwork.NewRealClock(),
		waitForVisibleTimeout: 3 * time.Second,
		pollInterval:          1 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Payer returns the fee payer public key, or the zero key when no signer is set.
func (e *Executor) Payer() solana.PublicKey {
	if e.signer == nil {
		return solana.PublicKey{}
	}
	return e.signer.PublicKey()
}

type ExecuteOptions struct {
	SkipPreflight bool
}

// BuildTransaction builds and signs a transaction for env without sending it.
func (e *Executor) BuildTransaction(ctx context.Context, env *Envelope) (*solana.Transaction, error) {
	if e.signer == nil {
		return nil, ErrNoPrivateKey
	}
	if env.IsEmpty() {
		return nil, ErrEmptyEnvelope
	}

	blockhashResult, err := e.rpc.GetLatestBlockhash(ctx, solanarpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		env.Instructions,
		blockhashResult.Value.Blockhash,
		solana.TransactionPayer(e.signer.PublicKey()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	if tx == nil {
		return nil, errors.New("transaction build failed: nil result")
	}

	signers := make(map[solana.PublicKey]*solana.PrivateKey, len(env.Signers)+1)
	signers[e.signer.PublicKey()] = e.signer
	for i := range env.Signers {
		signers[env.Signers[i].PublicKey()] = &env.Signers[i]
	}
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		return signers[key]
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction (likely missing signer): %w", err)
	}
	if len(tx.Signatures) == 0 {
		return nil, errors.New("signed transaction appears malformed")
	}
	return tx, nil
}

// Execute signs and submits env, then blocks until the transaction is finalized.
func (e *Executor) Execute(ctx context.Context, env *Envelope, opts *ExecuteOptions) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	if opts == nil {
		opts = &ExecuteOptions{}
	}

	tx, err := e.BuildTransaction(ctx, env)
	if err != nil {
		return solana.Signature{}, nil, err
	}

	sig, err := e.rpc.SendTransactionWithOpts(ctx, tx, solanarpc.TransactionOpts{
		SkipPreflight: opts.SkipPreflight,
	})
	if err != nil {
		metrics.Transactions.WithLabelValues(metrics.ResultFailed).Inc()
		return solana.Signature{}, nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	metrics.Transactions.WithLabelValues(metrics.ResultSubmitted).Inc()
	e.log.Debug("--> Transaction submitted", "sig", sig, "instructions", len(env.Instructions))

	if err := e.waitForSignatureVisible(ctx, sig); err != nil {
		metrics.Transactions.WithLabelValues(metrics.ResultFailed).Inc()
		if opts.SkipPreflight {
			return solana.Signature{}, nil, fmt.Errorf("transaction dropped or rejected before cluster saw it. make sure you have sufficient funds for the transaction: %w", err)
		}
		return solana.Signature{}, nil, fmt.Errorf("transaction dropped or rejected before cluster saw it: %w", err)
	}

	res, err := e.waitForTransactionFinalized(ctx, sig)
	if err != nil {
		metrics.Transactions.WithLabelValues(metrics.ResultFailed).Inc()
		return solana.Signature{}, nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	metrics.Transactions.WithLabelValues(metrics.ResultFinalized).Inc()

	return sig, res, nil
}

// ExecuteInstructions is Execute for instructions signed by the payer only.
func (e *Executor) ExecuteInstructions(ctx context.Context, instructions []solana.Instruction, opts *ExecuteOptions) (solana.Signature, *solanarpc.GetTransactionResult, error) {
	return e.Execute(ctx, NewEnvelope(instructions...), opts)
}

func (e *Executor) waitForSignatureVisible(ctx context.Context, sig solana.Signature) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 1 * time.Second

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		resp, err := e.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		if len(resp.Value) > 0 && resp.Value[0] != nil {
			return struct{}{}, nil
		}
		return struct{}{}, errSignatureNotVisible
	}, backoff.WithBackOff(bo), backoff.WithMaxElapsedTime(e.waitForVisibleTimeout))
	if errors.Is(err, errSignatureNotVisible) {
		return errors.New("signature not found after wait")
	}
	return err
}

func (e *Executor) waitForTransactionFinalized(ctx context.Context, sig solana.Signature) (*solanarpc.GetTransactionResult, error) {
	e.log.Debug("--> Waiting for transaction to be finalized", "sig", sig)
	start := e.clock.Now()
	for {
		statusResp, err := e.rpc.GetSignatureStatuses(ctx, true, sig)
		if err != nil {
			return nil, err
		}
		if len(statusResp.Value) == 0 {
			return nil, errors.New("transaction not found")
		}
		status := statusResp.Value[0]
		if status != nil && status.Err != nil {
			return nil, fmt.Errorf("transaction failed: %v", status.Err)
		}
		if status != nil && status.ConfirmationStatus == solanarpc.ConfirmationStatusFinalized {
			e.log.Debug("--> Transaction finalized", "sig", sig, "duration", e.clock.Since(start))
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-e.clock.After(e.pollInterval):
			e.log.Debug("--> Still waiting for transaction to be finalized", "sig", sig, "elapsed", e.clock.Since(start))
		}
	}

	tx, err := e.rpc.GetTransaction(ctx, sig, &solanarpc.GetTransactionOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: solanarpc.CommitmentFinalized,
	})
	if err != nil {
		return nil, err
	}
	if tx == nil || tx.Meta == nil {
		return nil, errors.New("transaction not found or missing metadata after finalization")
	}
	return tx, nil
}
