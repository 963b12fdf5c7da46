package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/quarry"
	"github.com/spf13/cobra"
)

type DecodeCmd struct{}

func NewDecodeCmd() *DecodeCmd {
	return &DecodeCmd{}
}

func (c *DecodeCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode raw Quarry account data without touching the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := cmd.Flags().GetString("data")
			if err != nil {
				return fmt.Errorf("failed to get data flag: %w", err)
			}
			encoding, err := cmd.Flags().GetString("encoding")
			if err != nil {
				return fmt.Errorf("failed to get encoding flag: %w", err)
			}
			dump, err := cmd.Flags().GetBool("dump")
			if err != nil {
				return fmt.Errorf("failed to get dump flag: %w", err)
			}
			if raw == "" {
				return fmt.Errorf("--data is required")
			}

			var data []byte
			switch encoding {
			case "base58":
				data, err = base58.Decode(raw)
			case "base64":
				data, err = base64.StdEncoding.DecodeString(raw)
			default:
				return fmt.Errorf("invalid encoding: %s", encoding)
			}
			if err != nil {
				return fmt.Errorf("failed to decode %s data: %w", encoding, err)
			}

			acct, err := quarry.DecodeAccount(data)
			if err != nil {
				return fmt.Errorf("failed to decode account: %w", err)
			}
			return printAccount(cmd.OutOrStdout(), acct, dump)
		},
	}

	cmd.Flags().String("data", "", "Raw account data")
	cmd.Flags().String("encoding", "base64", "Encoding of --data (base58, base64)")
	cmd.Flags().Bool("dump", false, "Print the decoded Go value instead of JSON")

	return cmd
}
