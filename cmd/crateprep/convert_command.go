package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"crateprep/internal/config"
	"crateprep/internal/pipeline"
)

const summaryPrecision = 10 * time.Millisecond

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var normalize bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert INPUT_DIR OUTPUT_DIR [MARKER]",
		Short: "Convert marker-tagged files into the output tree",
		Long: "Convert walks INPUT_DIR for supported audio files, selects the ones whose\n" +
			"metadata carries the MARKER tag, and converts each selected file into\n" +
			"OUTPUT_DIR under the same relative path. Files that already satisfy the\n" +
			"configured playback limits are skipped. Omitting MARKER converts every\n" +
			"supported file.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildRequest(args)
			if err != nil {
				return err
			}
			req.Normalize = normalize
			req.DryRun = dryRun

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

			stats, err := pipeline.New(cfg, logger).Run(runCtx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Outcome", "Files"},
				summaryRows(stats, dryRun),
				[]columnAlignment{alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Finished in %s\n", stats.Elapsed.Round(summaryPrecision))

			if stats.Failed > 0 {
				return fmt.Errorf("%d of %d files failed; see the log for details", stats.Failed, stats.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&normalize, "normalize", false, "Apply peak normalization to converted files")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be converted without writing anything")
	return cmd
}

func buildRequest(args []string) (pipeline.Request, error) {
	input, err := config.ExpandPath(args[0])
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("resolve input directory: %w", err)
	}
	output, err := config.ExpandPath(args[1])
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("resolve output directory: %w", err)
	}
	req := pipeline.Request{InputRoot: input, OutputRoot: output}
	if len(args) > 2 {
		req.Marker = args[2]
	}
	return req, nil
}

func summaryRows(stats pipeline.Stats, dryRun bool) [][]string {
	rows := [][]string{
		{"Candidates", strconv.Itoa(stats.Total)},
	}
	if dryRun {
		rows = append(rows, []string{"Would convert", strconv.Itoa(stats.Planned)})
	} else {
		rows = append(rows, []string{"Converted", strconv.Itoa(stats.Converted)})
		if stats.Normalized > 0 {
			rows = append(rows, []string{"Normalized", strconv.Itoa(stats.Normalized)})
		}
	}
	rows = append(rows,
		[]string{"Already compliant", strconv.Itoa(stats.Compliant)},
		[]string{"Not selected", strconv.Itoa(stats.NotSelected)},
		[]string{"Failed", strconv.Itoa(stats.Failed)},
	)
	return rows
}
