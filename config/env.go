package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

const (
	EnvMainnetBeta = "mainnet-beta"
	EnvMainnet     = "mainnet"
	EnvTestnet     = "testnet"
	EnvDevnet      = "devnet"
	EnvLocalnet    = "localnet"
)

var (
	ErrInvalidEnvironment = fmt.Errorf("invalid environment")
)

type NetworkConfig struct {
	Moniker        string
	SolanaRPCURL   string
	SolanaWSRPCURL string
	Programs       ProgramAddresses
	FeeTo          solana.PublicKey
	FeeSetter      solana.PublicKey
}

// NetworkConfigForEnv returns a fresh config for the given environment.
//
// QUARRY_RPC_URL and QUARRY_WS_RPC_URL override the cluster endpoints.
func NetworkConfigForEnv(env string) (NetworkConfig, error) {
	var config NetworkConfig
	switch env {
	case EnvMainnetBeta, EnvMainnet:
		config = NetworkConfig{
			Moniker:        EnvMainnetBeta,
			SolanaRPCURL:   MainnetSolanaRPC,
			SolanaWSRPCURL: MainnetSolanaWSRPC,
		}
	case EnvTestnet:
		config = NetworkConfig{
			Moniker:        EnvTestnet,
			SolanaRPCURL:   TestnetSolanaRPC,
			SolanaWSRPCURL: TestnetSolanaWSRPC,
		}
	case EnvDevnet:
		config = NetworkConfig{
			Moniker:        EnvDevnet,
			SolanaRPCURL:   DevnetSolanaRPC,
			SolanaWSRPCURL: DevnetSolanaWSRPC,
		}
	case EnvLocalnet:
		config = NetworkConfig{
			Moniker:        EnvLocalnet,
			SolanaRPCURL:   LocalnetSolanaRPC,
			SolanaWSRPCURL: LocalnetSolanaWSRPC,
		}
	default:
		return NetworkConfig{}, fmt.Errorf("%w %q, must be one of: %s, %s, %s, %s", ErrInvalidEnvironment, env, EnvMainnetBeta, EnvTestnet, EnvDevnet, EnvLocalnet)
	}

	config.Programs = DefaultProgramAddresses()
	config.FeeTo = solana.MustPublicKeyFromBase58(FeeTo)
	config.FeeSetter = solana.MustPublicKeyFromBase58(FeeSetter)

	if rpcURL := os.Getenv("QUARRY_RPC_URL"); rpcURL != "" {
		config.SolanaRPCURL = rpcURL
	}
	if wsURL := os.Getenv("QUARRY_WS_RPC_URL"); wsURL != "" {
		config.SolanaWSRPCURL = wsURL
	}

	return config, nil
}
