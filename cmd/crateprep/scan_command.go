package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"crateprep/internal/pipeline"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan INPUT_DIR OUTPUT_DIR [MARKER]",
		Short: "Report what a conversion run would do",
		Long: "Scan evaluates every supported audio file under INPUT_DIR against the\n" +
			"MARKER tag and the configured playback limits, then prints a per-file\n" +
			"report without writing anything.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args)
			if err != nil {
				return err
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			outcomes, stats, err := pipeline.New(cfg, logger).Scan(runCtx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(outcomes) == 0 {
				fmt.Fprintln(out, "No supported audio files found")
				return nil
			}

			rows := make([][]string, 0, len(outcomes))
			for _, outcome := range outcomes {
				rows = append(rows, []string{
					outcome.Entry.Rel,
					outcome.Verdict.String(),
					outcome.Decision.TargetFormat,
					outcome.Detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"File", "Verdict", "Target", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d candidate(s): %d would convert, %d compliant, %d not selected, %d failed\n",
				stats.Total, stats.Planned, stats.Compliant, stats.NotSelected, stats.Failed)
			return nil
		},
	}
	return cmd
}
