package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"crateprep/internal/analysis"
	"crateprep/internal/config"
	"crateprep/internal/encoding"
	"crateprep/internal/fileutil"
	"crateprep/internal/logging"
	"crateprep/internal/media/ffprobe"
	"crateprep/internal/plan"
	"crateprep/internal/scan"
	"crateprep/internal/services"
)

const lockFileName = ".crateprep.lock"

// Request describes one batch run.
type Request struct {
	InputRoot  string
	OutputRoot string
	// Marker is the tag name that selects files; empty converts everything.
	Marker string
	// Normalize overrides the config normalization switch when true.
	Normalize bool
	// DryRun evaluates and reports without invoking ffmpeg.
	DryRun bool
}

// Converter is the ffmpeg execution seam, satisfied by *encoding.Runner.
type Converter interface {
	Convert(ctx context.Context, job encoding.Job) error
}

// Runner drives the scan → probe → select → plan → convert fold.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	converter Converter

	// probe and measure are swappable for tests.
	probe   func(ctx context.Context, binary, path string) (ffprobe.Result, error)
	measure func(ctx context.Context, binary, path string) (float64, error)
}

// New constructs a Runner with production dependencies.
func New(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	timeout := time.Duration(cfg.FFmpeg.TimeoutSeconds) * time.Second
	return &Runner{
		cfg:       cfg,
		logger:    logger.With(logging.String(logging.FieldComponent, "pipeline")),
		converter: encoding.NewRunner(cfg.FFmpeg.FFmpegBinary, timeout, logger),
		probe:     ffprobe.Inspect,
		measure:   analysis.MeasurePeak,
	}
}

// Run executes the batch and returns aggregate stats. Per-file failures are
// counted, not returned; the error covers run-level problems only (unreadable
// input root, unwritable output root, lock contention).
func (r *Runner) Run(ctx context.Context, req Request) (Stats, error) {
	var stats Stats
	start := time.Now()

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	if !req.DryRun {
		if err := fileutil.WritableDir(req.OutputRoot); err != nil {
			return stats, services.Wrap(services.ErrConfiguration, "setup", "check output root", "", err)
		}
		lock := flock.New(filepath.Join(req.OutputRoot, lockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return stats, services.Wrap(services.ErrConfiguration, "setup", "acquire lock", "", err)
		}
		if !locked {
			return stats, services.Wrap(services.ErrConfiguration, "setup", "acquire lock",
				fmt.Sprintf("another crateprep run is writing to %s", req.OutputRoot), nil)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	entries, err := scan.Discover(req.InputRoot, req.OutputRoot)
	if err != nil {
		return stats, services.Wrap(services.ErrNotFound, "scan", "discover files", "", err)
	}
	logger.Info("starting batch",
		logging.Int("candidates", len(entries)),
		logging.String("input", req.InputRoot),
		logging.String("output", req.OutputRoot),
		logging.String("marker", req.Marker),
		logging.Bool("dry_run", req.DryRun),
	)

	bar := newProgressBar(len(entries), req.DryRun)
	for _, entry := range entries {
		if ctx.Err() != nil {
			logger.Warn("batch interrupted", logging.Error(ctx.Err()))
			break
		}
		outcome := r.processFile(ctx, entry, req)
		stats.Add(outcome)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	stats.Elapsed = time.Since(start)
	logger.Info("batch finished",
		logging.Int("total", stats.Total),
		logging.Int("converted", stats.Converted),
		logging.Int("compliant", stats.Compliant),
		logging.Int("not_selected", stats.NotSelected),
		logging.Int("failed", stats.Failed),
		logging.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

// Scan evaluates every candidate without converting.
func (r *Runner) Scan(ctx context.Context, req Request) ([]Outcome, Stats, error) {
	var stats Stats
	req.DryRun = true

	entries, err := scan.Discover(req.InputRoot, req.OutputRoot)
	if err != nil {
		return nil, stats, services.Wrap(services.ErrNotFound, "scan", "discover files", "", err)
	}

	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}
		outcome := r.evaluate(ctx, entry, req)
		outcomes = append(outcomes, outcome)
		stats.Add(outcome)
	}
	return outcomes, stats, nil
}

// processFile evaluates one file and, outside dry-run mode, converts it.
func (r *Runner) processFile(ctx context.Context, entry scan.Entry, req Request) Outcome {
	ctx = services.WithFile(ctx, entry.Rel)
	logger := logging.WithContext(ctx, r.logger)

	outcome := r.evaluate(ctx, entry, req)
	switch outcome.Verdict {
	case VerdictFailed:
		logger.Error("file failed", logging.Error(outcome.Err))
		return outcome
	case VerdictCompliant:
		logger.Info("already compliant, skipping")
		return outcome
	case VerdictNotSelected:
		logger.Debug("marker did not select file")
		return outcome
	}

	if req.DryRun {
		logger.Info("would convert",
			logging.String("target", outcome.Decision.TargetFormat),
			logging.String("output", outcome.OutputPath),
		)
		return outcome
	}

	if err := fileutil.EnsureDir(filepath.Dir(outcome.OutputPath)); err != nil {
		outcome.Verdict = VerdictFailed
		outcome.Err = services.Wrap(services.ErrConfiguration, "convert", "create output directory", "", err)
		outcome.Detail = outcome.Err.Error()
		logger.Error("file failed", logging.Error(outcome.Err))
		return outcome
	}

	job := encoding.Job{
		Source:    entry.Path,
		Output:    outcome.OutputPath,
		Decision:  outcome.Decision,
		ApplyGain: outcome.GainApplied,
		GainDB:    outcome.GainDB,
	}
	if req.Marker != "" && r.cfg.Conversion.ResetMarker {
		job.Marker = req.Marker
	}

	if err := r.converter.Convert(ctx, job); err != nil {
		outcome.Verdict = VerdictFailed
		outcome.Err = err
		outcome.Detail = err.Error()
		logger.Error("conversion failed", logging.Error(err))
		return outcome
	}

	outcome.Verdict = VerdictConverted
	logger.Info("converted",
		logging.String("target", outcome.Decision.TargetFormat),
		logging.String("output", outcome.OutputPath),
		logging.Bool("normalized", outcome.GainApplied),
	)
	return outcome
}

// evaluate runs probe → select → plan → analyze for one file without
// touching the output tree.
func (r *Runner) evaluate(ctx context.Context, entry scan.Entry, req Request) Outcome {
	outcome := Outcome{Entry: entry}

	result, err := r.probe(ctx, r.cfg.FFmpeg.FFprobeBinary, entry.Path)
	if err != nil {
		outcome.Verdict = VerdictFailed
		outcome.Err = services.Wrap(services.ErrExternalTool, "probe", "inspect file", "", err)
		outcome.Detail = outcome.Err.Error()
		return outcome
	}

	if !scan.Selected(result.Format.Tags, req.Marker, r.cfg.Conversion.MarkerValue) {
		outcome.Verdict = VerdictNotSelected
		outcome.Detail = fmt.Sprintf("tag %s != %s", req.Marker, r.cfg.Conversion.MarkerValue)
		return outcome
	}

	stream, ok := result.FirstAudioStream()
	if !ok {
		outcome.Verdict = VerdictFailed
		outcome.Err = services.Wrap(services.ErrValidation, "probe", "inspect file", "no audio stream", nil)
		outcome.Detail = outcome.Err.Error()
		return outcome
	}

	decision, err := plan.Decide(
		plan.Source{
			FormatName: result.ContainerName(),
			SampleRate: stream.SampleRateHz(),
			BitDepth:   stream.BitDepth(),
			BitRate:    stream.BitRateBPS(),
		},
		plan.Limits{
			MaxSampleRate: r.cfg.Conversion.MaxSampleRate,
			MaxBitDepth:   r.cfg.Conversion.MaxBitDepth,
			MaxBitRate:    r.cfg.Conversion.MaxBitRate,
		},
	)
	if err != nil {
		outcome.Verdict = VerdictFailed
		outcome.Err = services.Wrap(services.ErrUnsupported, "plan", "classify container", "", err)
		outcome.Detail = outcome.Err.Error()
		return outcome
	}
	outcome.Decision = decision

	if decision.Action == plan.ActionSkipCompliant {
		outcome.Verdict = VerdictCompliant
		outcome.Detail = "already within output limits"
		return outcome
	}

	outputPath, err := fileutil.MirrorPath(req.InputRoot, req.OutputRoot, entry.Path, decision.TargetFormat)
	if err != nil {
		outcome.Verdict = VerdictFailed
		outcome.Err = services.Wrap(services.ErrValidation, "plan", "mirror output path", "", err)
		outcome.Detail = outcome.Err.Error()
		return outcome
	}
	outcome.OutputPath = outputPath
	outcome.Verdict = VerdictPlanned

	if req.Normalize || r.cfg.Conversion.Normalize {
		peak, err := r.measure(ctx, r.cfg.FFmpeg.FFmpegBinary, entry.Path)
		if err != nil {
			// A file with no measurable peak still converts, just without gain.
			logging.WithContext(ctx, r.logger).Warn("peak measurement failed", logging.Error(err))
		} else if gain, apply := analysis.GainFor(r.cfg.Conversion.PeakDBFS, peak); apply {
			outcome.GainDB = gain
			outcome.GainApplied = true
		}
	}
	return outcome
}

func newProgressBar(total int, dryRun bool) *progressbar.ProgressBar {
	if dryRun || total == 0 || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
