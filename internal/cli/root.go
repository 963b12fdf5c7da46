package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/nftquarry/quarry/config"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/quarry"
	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

// RPCFactory opens an RPC client for the given endpoint.
type RPCFactory func(url string) quarry.RPCClient

func Run() ExitCode {
	// Load .env file if it exists
	_ = godotenv.Load()

	rootCmd := NewRootCmd(func(url string) quarry.RPCClient {
		return solanarpc.New(url)
	})
	if err := rootCmd.Execute(); err != nil {
		return exitCodeError
	}

	return exitCodeSuccess
}

func NewRootCmd(newRPC RPCFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "quarry-cli",
		Short:        "Inspect Quarry program addresses and accounts.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := cmd.Help()
			if err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "set debug logging level")

	var env string
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", config.EnvMainnetBeta, "The network environment to use (mainnet-beta, testnet, devnet, localnet)")

	var configPath string
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML file overriding RPC URLs and program IDs")

	var rpcURL string
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc-url", "", "Solana RPC endpoint, overrides the environment default")

	rootCmd.AddCommand(
		NewProgramsCmd().Command(),
		NewPDACmd().Command(),
		NewAccountCmd(newRPC).Command(),
		NewDecodeCmd().Command(),
		NewRewarderCmd(newRPC).Command(),
	)

	return rootCmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// networkConfig resolves the network config from the persistent flags:
// environment defaults, then the config file, then --rpc-url.
func networkConfig(cmd *cobra.Command) (config.NetworkConfig, error) {
	flags := cmd.Root().PersistentFlags()
	env, err := flags.GetString("env")
	if err != nil {
		return config.NetworkConfig{}, fmt.Errorf("failed to get env flag: %w", err)
	}
	configPath, err := flags.GetString("config")
	if err != nil {
		return config.NetworkConfig{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	rpcURL, err := flags.GetString("rpc-url")
	if err != nil {
		return config.NetworkConfig{}, fmt.Errorf("failed to get rpc-url flag: %w", err)
	}

	cfg, err := config.NetworkConfigForEnv(env)
	if err != nil {
		return config.NetworkConfig{}, fmt.Errorf("failed to get network config: %w", err)
	}
	if configPath != "" {
		cfg, err = config.LoadFile(configPath, cfg)
		if err != nil {
			return config.NetworkConfig{}, err
		}
	}
	if rpcURL != "" {
		cfg.SolanaRPCURL = rpcURL
	}
	return cfg, nil
}

// newReadOnlySDK builds an SDK without a signer for the resolved network.
func newReadOnlySDK(cmd *cobra.Command, newRPC RPCFactory) (*quarry.SDK, *slog.Logger, error) {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	log := newLogger(verbose)

	cfg, err := networkConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("Using network", "env", cfg.Moniker, "rpc", cfg.SolanaRPCURL)

	sdk, err := quarry.New(log, newRPC(cfg.SolanaRPCURL), nil, cfg.Programs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create sdk: %w", err)
	}
	return sdk, log, nil
}
