package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk override format. Empty fields keep the base value.
type fileConfig struct {
	RPCURL    string `yaml:"rpc_url"`
	WSRPCURL  string `yaml:"ws_rpc_url"`
	FeeTo     string `yaml:"fee_to"`
	FeeSetter string `yaml:"fee_setter"`
	Programs  struct {
		MergeMine   string `yaml:"merge_mine"`
		Mine        string `yaml:"mine"`
		MintWrapper string `yaml:"mint_wrapper"`
		Operator    string `yaml:"operator"`
		Redeemer    string `yaml:"redeemer"`
		Registry    string `yaml:"registry"`
	} `yaml:"programs"`
}

// LoadFile reads a YAML override file and applies it on top of base.
func LoadFile(path string, base NetworkConfig) (NetworkConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NetworkConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ApplyYAML(data, base)
}

// ApplyYAML applies YAML overrides on top of base and returns the result.
// base is not modified.
func ApplyYAML(data []byte, base NetworkConfig) (NetworkConfig, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return NetworkConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	out := base
	if fc.RPCURL != "" {
		out.SolanaRPCURL = fc.RPCURL
	}
	if fc.WSRPCURL != "" {
		out.SolanaWSRPCURL = fc.WSRPCURL
	}

	overrides := []struct {
		name  string
		value string
		dst   *solana.PublicKey
	}{
		{"fee_to", fc.FeeTo, &out.FeeTo},
		{"fee_setter", fc.FeeSetter, &out.FeeSetter},
		{"programs.merge_mine", fc.Programs.MergeMine, &out.Programs.MergeMine},
		{"programs.mine", fc.Programs.Mine, &out.Programs.Mine},
		{"programs.mint_wrapper", fc.Programs.MintWrapper, &out.Programs.MintWrapper},
		{"programs.operator", fc.Programs.Operator, &out.Programs.Operator},
		{"programs.redeemer", fc.Programs.Redeemer, &out.Programs.Redeemer},
		{"programs.registry", fc.Programs.Registry, &out.Programs.Registry},
	}
	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		pk, err := solana.PublicKeyFromBase58(o.value)
		if err != nil {
			return NetworkConfig{}, fmt.Errorf("failed to parse %s: %w", o.name, err)
		}
		*o.dst = pk
	}

	if err := out.Programs.Validate(); err != nil {
		return NetworkConfig{}, err
	}
	return out, nil
}
