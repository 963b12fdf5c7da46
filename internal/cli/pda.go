package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/config"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/mine"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/pda"
	"github.com/spf13/cobra"
)

// pdaKind is one derivable address kind: the key flags it needs and how to
// derive it from them.
type pdaKind struct {
	flags  []string
	derive func(p config.ProgramAddresses, keys map[string]solana.PublicKey) (solana.PublicKey, uint8, error)
}

var pdaKinds = map[string]pdaKind{
	"rewarder": {
		flags: []string{"base"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveRewarderPDA(p.Mine, k["base"])
		},
	},
	"quarry": {
		flags: []string{"rewarder", "mint"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveQuarryPDA(p.Mine, k["rewarder"], k["mint"])
		},
	},
	"miner": {
		flags: []string{"quarry", "authority"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return mine.MinerKey{Quarry: k["quarry"], Authority: k["authority"]}.Derive(p.Mine)
		},
	},
	"nft-miner": {
		flags: []string{"quarry", "authority", "nft-mint"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return mine.MinerKey{Quarry: k["quarry"], Authority: k["authority"], NFTMint: k["nft-mint"]}.Derive(p.Mine)
		},
	},
	"mint-wrapper": {
		flags: []string{"base"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveMintWrapperPDA(p.MintWrapper, k["base"])
		},
	},
	"minter": {
		flags: []string{"wrapper", "authority"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveMinterPDA(p.MintWrapper, k["wrapper"], k["authority"])
		},
	},
	"operator": {
		flags: []string{"base"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveOperatorPDA(p.Operator, k["base"])
		},
	},
	"registry": {
		flags: []string{"rewarder"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveRegistryPDA(p.Registry, k["rewarder"])
		},
	},
	"merge-pool": {
		flags: []string{"mint"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveMergePoolPDA(p.MergeMine, k["mint"])
		},
	},
	"replica-mint": {
		flags: []string{"pool"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveReplicaMintPDA(p.MergeMine, k["pool"])
		},
	},
	"merge-miner": {
		flags: []string{"pool", "owner"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveMergeMinerPDA(p.MergeMine, k["pool"], k["owner"])
		},
	},
	"redeemer": {
		flags: []string{"iou-mint", "redemption-mint"},
		derive: func(p config.ProgramAddresses, k map[string]solana.PublicKey) (solana.PublicKey, uint8, error) {
			return pda.DeriveRedeemerPDA(p.Redeemer, k["iou-mint"], k["redemption-mint"])
		},
	},
}

func pdaKindNames() []string {
	names := make([]string, 0, len(pdaKinds))
	for name := range pdaKinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func pdaFlagNames() []string {
	var names []string
	for _, kind := range pdaKinds {
		for _, f := range kind.flags {
			if !slices.Contains(names, f) {
				names = append(names, f)
			}
		}
	}
	slices.Sort(names)
	return names
}

type PDACmd struct{}

func NewPDACmd() *PDACmd {
	return &PDACmd{}
}

func (c *PDACmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pda <kind>",
		Short: "Derive a Quarry program address",
		Long:  "Derive a Quarry program address. Kinds: " + strings.Join(pdaKindNames(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := pdaKinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q, must be one of: %s", args[0], strings.Join(pdaKindNames(), ", "))
			}

			keys := make(map[string]solana.PublicKey, len(kind.flags))
			for _, name := range kind.flags {
				value, err := cmd.Flags().GetString(name)
				if err != nil {
					return fmt.Errorf("failed to get %s flag: %w", name, err)
				}
				if value == "" {
					return fmt.Errorf("--%s is required for %s", name, args[0])
				}
				pk, err := solana.PublicKeyFromBase58(value)
				if err != nil {
					return fmt.Errorf("invalid --%s: %w", name, err)
				}
				keys[name] = pk
			}

			cfg, err := networkConfig(cmd)
			if err != nil {
				return err
			}

			addr, bump, err := kind.derive(cfg.Programs, keys)
			if err != nil {
				return fmt.Errorf("failed to derive %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Address:", addr)
			fmt.Fprintln(out, "Bump:", bump)
			return nil
		},
	}

	for _, name := range pdaFlagNames() {
		cmd.Flags().String(name, "", "Public key used as the "+name+" seed")
	}

	return cmd
}
