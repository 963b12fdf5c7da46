package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/nftquarry/quarry/smartcontract/sdk/go/quarry"
	"github.com/spf13/cobra"
)

type AccountCmd struct {
	newRPC RPCFactory
}

func NewAccountCmd(newRPC RPCFactory) *AccountCmd {
	return &AccountCmd{newRPC: newRPC}
}

func (c *AccountCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account <address>",
		Short: "Fetch and decode a Quarry account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dump, err := cmd.Flags().GetBool("dump")
			if err != nil {
				return fmt.Errorf("failed to get dump flag: %w", err)
			}
			key, err := solana.PublicKeyFromBase58(args[0])
			if err != nil {
				return fmt.Errorf("invalid address: %w", err)
			}

			sdk, log, err := newReadOnlySDK(cmd, c.newRPC)
			if err != nil {
				return err
			}
			defer sdk.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			acct, err := sdk.FetchAccount(ctx, key)
			if err != nil {
				log.Error("Failed to fetch account", "address", key, "error", err)
				return err
			}
			return printAccount(cmd.OutOrStdout(), acct, dump)
		},
	}

	cmd.Flags().Bool("dump", false, "Print the decoded Go value instead of JSON")

	return cmd
}

// printAccount writes the account kind followed by its fields, as indented
// JSON or as a spew dump.
func printAccount(w io.Writer, acct *quarry.DecodedAccount, dump bool) error {
	fmt.Fprintln(w, "Kind:", acct.Kind)
	if dump {
		spew.Fdump(w, acct.Value())
		return nil
	}
	data, err := json.MarshalIndent(acct.Value(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
