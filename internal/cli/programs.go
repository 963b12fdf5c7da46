package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type ProgramsCmd struct{}

func NewProgramsCmd() *ProgramsCmd {
	return &ProgramsCmd{}
}

func (c *ProgramsCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "programs",
		Short: "List the Quarry program IDs for the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := networkConfig(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Environment:", cfg.Moniker)
			fmt.Fprintln(out, "RPC:", cfg.SolanaRPCURL)

			table := tablewriter.NewWriter(out)
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(false)
			table.SetBorder(true)
			table.SetHeader([]string{"Program", "Address"})
			for _, p := range cfg.Programs.All() {
				table.Append([]string{p.Name, p.ID.String()})
			}
			table.Append([]string{"FeeTo", cfg.FeeTo.String()})
			table.Append([]string{"FeeSetter", cfg.FeeSetter.String()})
			table.Render()
			return nil
		},
	}
}
