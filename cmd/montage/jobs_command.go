package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"montage/internal/renderjobs"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Render job management",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsList(cmd, ctx)
		},
	}

	jobsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List render jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobsList(cmd, ctx)
		},
	})
	jobsCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove completed and failed render jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := renderjobs.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.ClearFinished(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d finished job(s)\n", removed)
			return nil
		},
	})

	return jobsCmd
}

func runJobsList(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := renderjobs.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	jobs, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(jobs) == 0 {
		fmt.Fprintln(out, "No render jobs")
		return nil
	}

	colorize := shouldColorize(out)
	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, []string{
			strconv.FormatInt(job.ID, 10),
			colorizeStatus(job.Status, colorize),
			fmt.Sprintf("%.0f%%", job.ProgressPercent),
			fmt.Sprintf("%d/%d", job.FramesDone, job.TotalFrames),
			jobDetail(job),
			job.CreatedAt.Local().Format(time.DateTime),
		})
	}
	fmt.Fprintln(out, renderTable([]string{"ID", "Status", "Progress", "Frames", "Detail", "Created"}, rows, 0, 2, 3))
	return nil
}

func jobDetail(job *renderjobs.Job) string {
	switch {
	case job.Status == renderjobs.StatusFailed && job.ErrorMessage != "":
		return job.ErrorMessage
	case job.OutputPath != "":
		return filepath.Base(job.OutputPath)
	default:
		return filepath.Base(job.ManifestPath)
	}
}
