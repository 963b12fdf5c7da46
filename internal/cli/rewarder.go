package cli

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type RewarderCmd struct {
	newRPC RPCFactory
}

func NewRewarderCmd(newRPC RPCFactory) *RewarderCmd {
	return &RewarderCmd{newRPC: newRPC}
}

func (c *RewarderCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "rewarder <address>",
		Short: "Show a rewarder and its quarries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			rewarder, err := sdk.Mine().FetchRewarder(ctx, key)
			if err != nil {
				log.Error("Failed to fetch rewarder", "address", key, "error", err)
				return err
			}
			quarries, err := sdk.Mine().FetchAllQuarries(ctx, key)
			if err != nil {
				log.Error("Failed to fetch quarries", "rewarder", key, "error", err)
				return err
			}
			sort.Slice(quarries, func(i, j int) bool {
				return quarries[i].Quarry.Index < quarries[j].Quarry.Index
			})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Rewarder:", key)
			fmt.Fprintln(out, "Authority:", rewarder.Authority)
			fmt.Fprintln(out, "Rewards Mint:", rewarder.RewardsTokenMint)
			fmt.Fprintln(out, "Mint Wrapper:", rewarder.MintWrapper)
			fmt.Fprintln(out, "Annual Rewards Rate:", rewarder.AnnualRewardsRate)
			fmt.Fprintln(out, "Total Rewards Shares:", rewarder.TotalRewardsShares)
			fmt.Fprintln(out, "Paused:", rewarder.IsPaused)

			table := tablewriter.NewWriter(out)
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
			table.SetAutoFormatHeaders(false)
			table.SetBorder(true)
			table.SetHeader([]string{
				"#", "Quarry", "Token Mint",
				"Rewards\nShare", "Annual\nRate (expected)", "Annual\nRate (synced)",
				"Deposited", "Miners",
			})
			for _, q := range quarries {
				expected, err := rewarder.QuarryAnnualRewardsRate(q.Quarry.RewardsShare)
				if err != nil {
					log.Warn("Failed to compute quarry rate", "quarry", q.Key, "error", err)
				}
				table.Append([]string{
					fmt.Sprintf("%d", q.Quarry.Index),
					q.Key.String(),
					q.Quarry.TokenMintKey.String(),
					fmt.Sprintf("%d", q.Quarry.RewardsShare),
					fmt.Sprintf("%d", expected),
					fmt.Sprintf("%d", q.Quarry.AnnualRewardsRate),
					fmt.Sprintf("%d", q.Quarry.TotalTokensDeposited),
					fmt.Sprintf("%d", q.Quarry.NumMiners),
				})
			}
			table.Render()
			return nil
		},
	}
}
