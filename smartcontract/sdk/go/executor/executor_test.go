package executor_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/jonboulle/clockwork"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/executor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func testInstruction(programID solana.PublicKey, signers ...solana.PublicKey) solana.Instruction {
	accounts := solana.AccountMetaSlice{}
	for _, s := range signers {
		accounts = append(accounts, solana.Meta(s).SIGNER())
	}
	return solana.NewInstruction(programID, accounts, []byte{1, 2, 3})
}

func TestSDK_Executor_Execute(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	base := solana.NewWallet().PrivateKey
	programID := solana.NewWallet().PublicKey()
	sig := fakeSig()

	var sent *solana.Transaction
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, tx *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			sent = tx
			return sig, nil
		},
		GetSignatureStatusesFunc: statusFinalized,
		GetTransactionFunc:       transactionOK,
	}

	exec := executor.New(log, mockRPC, &signer)
	require.Equal(t, signer.PublicKey(), exec.Payer())

	env := executor.NewEnvelope(testInstruction(programID, base.PublicKey())).AddSigners(base)
	gotSig, res, err := exec.Execute(t.Context(), env, nil)
	require.NoError(t, err)
	require.Equal(t, sig, gotSig)
	require.NotNil(t, res)

	require.NotNil(t, sent)
	require.Len(t, sent.Signatures, 2)
	require.Equal(t, signer.PublicKey(), sent.Message.AccountKeys[0])
	require.NoError(t, sent.VerifySignatures())
}

func TestSDK_Executor_ExecuteInstructions(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	programID := solana.NewWallet().PublicKey()

	var gotOpts solanarpc.TransactionOpts
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, opts solanarpc.TransactionOpts) (solana.Signature, error) {
			gotOpts = opts
			return fakeSig(), nil
		},
		GetSignatureStatusesFunc: statusFinalized,
		GetTransactionFunc:       transactionOK,
	}

	exec := executor.New(log, mockRPC, &signer)
	_, _, err := exec.ExecuteInstructions(t.Context(), []solana.Instruction{testInstruction(programID)}, &executor.ExecuteOptions{SkipPreflight: true})
	require.NoError(t, err)
	require.True(t, gotOpts.SkipPreflight)
}

func TestSDK_Executor_MissingSigner(t *testing.T) {
	t.Parallel()

	exec := executor.New(log, &mockRPCClient{}, nil)
	require.True(t, exec.Payer().IsZero())

	sig, res, err := exec.Execute(t.Context(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
	require.ErrorIs(t, err, executor.ErrNoPrivateKey)
	require.Empty(t, sig)
	require.Nil(t, res)
}

func TestSDK_Executor_EmptyEnvelope(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	exec := executor.New(log, &mockRPCClient{}, &signer)

	_, _, err := exec.Execute(t.Context(), executor.NewEnvelope(), nil)
	require.ErrorIs(t, err, executor.ErrEmptyEnvelope)

	_, _, err = exec.Execute(t.Context(), nil, nil)
	require.ErrorIs(t, err, executor.ErrEmptyEnvelope)
}

func TestSDK_Executor_MissingEnvelopeSigner(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	mockRPC := &mockRPCClient{GetLatestBlockhashFunc: blockhashOK}
	exec := executor.New(log, mockRPC, &signer)

	env := executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()))
	_, err := exec.BuildTransaction(t.Context(), env)
	require.ErrorContains(t, err, "failed to sign transaction")
}

func TestSDK_Executor_GetLatestBlockhashError(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: func(_ context.Context, _ solanarpc.CommitmentType) (*solanarpc.GetLatestBlockhashResult, error) {
			return nil, errors.New("rpc unavailable")
		},
	}

	exec := executor.New(log, mockRPC, &signer)
	sig, res, err := exec.Execute(t.Context(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
	require.ErrorContains(t, err, "failed to get latest blockhash")
	require.Empty(t, sig)
	require.Nil(t, res)
}

func TestSDK_Executor_SendFails(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return solana.Signature{}, errors.New("send failed")
		},
	}

	exec := executor.New(log, mockRPC, &signer)
	_, _, err := exec.Execute(t.Context(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
	require.ErrorContains(t, err, "failed to send transaction")
}

func TestSDK_Executor_SignatureNeverVisible(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return fakeSig(), nil
		},
		GetSignatureStatusesFunc: func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{Value: []*solanarpc.SignatureStatusesResult{nil}}, nil
		},
	}

	exec := executor.New(log, mockRPC, &signer, executor.WithWaitForVisibleTimeout(200*time.Millisecond))
	_, _, err := exec.Execute(t.Context(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), &executor.ExecuteOptions{SkipPreflight: true})
	require.ErrorContains(t, err, "make sure you have sufficient funds")
	require.ErrorContains(t, err, "signature not found after wait")
}

func TestSDK_Executor_StatusLookupFailsWhileWaitingForVisible(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return fakeSig(), nil
		},
		GetSignatureStatusesFunc: func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return nil, errors.New("status lookup failed")
		},
	}

	exec := executor.New(log, mockRPC, &signer)
	_, _, err := exec.Execute(t.Context(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
	require.ErrorContains(t, err, "transaction dropped or rejected before cluster saw it")
	require.ErrorContains(t, err, "status lookup failed")
}

func TestSDK_Executor_TransactionFailedOnChain(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return fakeSig(), nil
		},
		GetSignatureStatusesFunc: func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{
					{ConfirmationStatus: solanarpc.ConfirmationStatusProcessed, Err: map[string]any{"InstructionError": []any{0, "Custom"}}},
				},
			}, nil
		},
	}

	exec := executor.New(log, mockRPC, &signer)
	_, _, err := exec.Execute(t.Context(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
	require.ErrorContains(t, err, "transaction failed")
}

func TestSDK_Executor_WaitsForFinalization(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	clock := clockwork.NewFakeClock()

	var calls atomic.Int32
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return fakeSig(), nil
		},
		GetSignatureStatusesFunc: func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			status := solanarpc.ConfirmationStatusConfirmed
			if calls.Add(1) >= 3 {
				status = solanarpc.ConfirmationStatusFinalized
			}
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{{ConfirmationStatus: status}},
			}, nil
		},
		GetTransactionFunc: transactionOK,
	}

	exec := executor.New(log, mockRPC, &signer, executor.WithClock(clock), executor.WithPollInterval(2*time.Second))

	done := make(chan error, 1)
	go func() {
		_, _, err := exec.Execute(context.Background(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
		done <- err
	}()

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(2 * time.Second)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("timed out waiting for execute")
	}
	require.Equal(t, int32(3), calls.Load())
}

func TestSDK_Executor_ContextCanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	signer := solana.NewWallet().PrivateKey
	clock := clockwork.NewFakeClock()
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return fakeSig(), nil
		},
		GetSignatureStatusesFunc: func(_ context.Context, _ bool, _ ...solana.Signature) (*solanarpc.GetSignatureStatusesResult, error) {
			return &solanarpc.GetSignatureStatusesResult{
				Value: []*solanarpc.SignatureStatusesResult{{ConfirmationStatus: solanarpc.ConfirmationStatusConfirmed}},
			}, nil
		},
	}

	exec := executor.New(log, mockRPC, &signer, executor.WithClock(clock))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		_, _, err := exec.Execute(ctx, executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
		done <- err
	}()

	waitCtx, waitCancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer waitCancel()
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	cancel()

	err := <-done
	require.ErrorIs(t, err, context.Canceled)
}

func TestSDK_Executor_Metrics(t *testing.T) {
	signer := solana.NewWallet().PrivateKey
	mockRPC := &mockRPCClient{
		GetLatestBlockhashFunc: blockhashOK,
		SendTransactionWithOptsFunc: func(_ context.Context, _ *solana.Transaction, _ solanarpc.TransactionOpts) (solana.Signature, error) {
			return fakeSig(), nil
		},
		GetSignatureStatusesFunc: statusFinalized,
		GetTransactionFunc:       transactionOK,
	}

	submitted := testutil.ToFloat64(metrics.Transactions.WithLabelValues(metrics.ResultSubmitted))
	finalized := testutil.ToFloat64(metrics.Transactions.WithLabelValues(metrics.ResultFinalized))

	exec := executor.New(log, mockRPC, &signer)
	_, _, err := exec.Execute(t.Context(), executor.NewEnvelope(testInstruction(solana.NewWallet().PublicKey())), nil)
	require.NoError(t, err)

	require.Equal(t, submitted+1, testutil.ToFloat64(metrics.Transactions.WithLabelValues(metrics.ResultSubmitted)))
	require.Equal(t, finalized+1, testutil.ToFloat64(metrics.Transactions.WithLabelValues(metrics.ResultFinalized)))
}
