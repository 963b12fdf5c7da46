package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/gagliardetto/solana-go"
	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/anchor"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/quarry"
	"github.com/stretchr/testify/require"
)

type mockRPCClient struct {
	quarry.RPCClient

	GetAccountInfoFunc             func(context.Context, solana.PublicKey) (*solanarpc.GetAccountInfoResult, error)
	GetProgramAccountsWithOptsFunc func(context.Context, solana.PublicKey, *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error)
}

func (m *mockRPCClient) GetAccountInfo(ctx context.Context, key solana.PublicKey) (*solanarpc.GetAccountInfoResult, error) {
	return m.GetAccountInfoFunc(ctx, key)
}

func (m *mockRPCClient) GetProgramAccountsWithOpts(ctx context.Context, program solana.PublicKey, opts *solanarpc.GetProgramAccountsOpts) (solanarpc.GetProgramAccountsResult, error) {
	return m.GetProgramAccountsWithOptsFunc(ctx, program, opts)
}

// accountsRPC serves GetAccountInfo from accounts.
func accountsRPC(accounts map[solana.PublicKey][]byte) *mockRPCClient {
	return &mockRPCClient{
		GetAccountInfoFunc: func(_ context.Context, key solana.PublicKey) (*solanarpc.GetAccountInfoResult, error) {
			data, ok := accounts[key]
			if !ok {
				return &solanarpc.GetAccountInfoResult{}, nil
			}
			return &solanarpc.GetAccountInfoResult{
				Value: &solanarpc.Account{Data: solanarpc.DataBytesOrJSONFromBytes(data)},
			}, nil
		},
	}
}

func execute(t *testing.T, rpc quarry.RPCClient, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(func(string) quarry.RPCClient { return rpc })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func encode(t *testing.T, disc anchor.Discriminator, v any) []byte {
	t.Helper()
	data, err := anchor.EncodeAccount(disc, v)
	require.NoError(t, err)
	return data
}
