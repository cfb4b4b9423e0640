package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"montage/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <media-file>",
		Short: "Inspect a media file with ffprobe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			info, err := ffprobe.Probe(cmd.Context(), cfg.FFprobeBinary(), sourcePath(args[0]))
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Duration", fmt.Sprintf("%.3fs", info.DurationSeconds)},
				{"Video", yesNo(info.HasVideo)},
			}
			if info.HasVideo {
				rows = append(rows, []string{"Resolution", fmt.Sprintf("%dx%d", info.Width, info.Height)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows))
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
