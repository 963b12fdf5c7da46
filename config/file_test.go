package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/config"
	"github.com/stretchr/testify/require"
)

func TestConfig_ApplyYAML(t *testing.T) {
	t.Parallel()

	base, err := config.NetworkConfigForEnv(config.EnvLocalnet)
	require.NoError(t, err)

	mine := solana.NewWallet().PublicKey()
	feeTo := solana.NewWallet().PublicKey()
	data := []byte(`
rpc_url: http://validator:8899
fee_to: ` + feeTo.String() + `
programs:
  mine: ` + mine.String() + `
`)

	got, err := config.ApplyYAML(data, base)
	require.NoError(t, err)
	require.Equal(t, "http://validator:8899", got.SolanaRPCURL)
	require.Equal(t, base.SolanaWSRPCURL, got.SolanaWSRPCURL)
	require.Equal(t, mine, got.Programs.Mine)
	require.Equal(t, feeTo, got.FeeTo)
	require.Equal(t, base.FeeSetter, got.FeeSetter)
	require.Equal(t, base.Programs.Registry, got.Programs.Registry)

	// base is untouched
	require.Equal(t, config.LocalnetSolanaRPC, base.SolanaRPCURL)
	require.Equal(t, solana.MustPublicKeyFromBase58(config.MineProgramID), base.Programs.Mine)
}

func TestConfig_ApplyYAML_InvalidKey(t *testing.T) {
	t.Parallel()

	base, err := config.NetworkConfigForEnv(config.EnvLocalnet)
	require.NoError(t, err)

	_, err = config.ApplyYAML([]byte("programs:\n  registry: not-a-key\n"), base)
	require.ErrorContains(t, err, "failed to parse programs.registry")
}

func TestConfig_ApplyYAML_Malformed(t *testing.T) {
	t.Parallel()

	_, err := config.ApplyYAML([]byte("rpc_url: [unterminated"), config.NetworkConfig{})
	require.ErrorContains(t, err, "failed to parse config file")
}

func TestConfig_LoadFile(t *testing.T) {
	t.Parallel()

	base, err := config.NetworkConfigForEnv(config.EnvDevnet)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "quarry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ws_rpc_url: ws://localhost:9000\n"), 0o644))

	got, err := config.LoadFile(path, base)
	require.NoError(t, err)
	require.Equal(t, "ws://localhost:9000", got.SolanaWSRPCURL)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), base)
	require.ErrorContains(t, err, "failed to read config file")
}
