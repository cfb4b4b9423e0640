package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"montage/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check(deps.Default(cfg))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = status.Detail
				}
				rows = append(rows, []string{status.Name, status.Command, status.Description, state})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Command", "Purpose", "Status"}, rows))
			return deps.Verify(deps.Default(cfg))
		},
	}
}
