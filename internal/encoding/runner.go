package encoding

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"crateprep/internal/logging"
	"crateprep/internal/services"
)

const stderrTailBytes = 2048

// Runner executes ffmpeg conversion jobs.
type Runner struct {
	binary  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewRunner constructs a Runner for the given ffmpeg binary. A zero timeout
// disables the per-job deadline.
func NewRunner(binary string, timeout time.Duration, logger *slog.Logger) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{binary: binary, timeout: timeout, logger: logger}
}

// Convert runs ffmpeg for the job, returning a classified error on failure.
func (r *Runner) Convert(ctx context.Context, job Job) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := BuildArgs(r.binary, job)
	r.logger.Debug("running ffmpeg",
		logging.String("command", strings.Join(args, " ")),
		logging.String("output", job.Output),
	)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "convert", "run ffmpeg", stderrTail(stderr.String()), err)
	}

	r.logger.Debug("ffmpeg finished",
		logging.Duration("elapsed", time.Since(start)),
		logging.String("output", job.Output),
	)
	return nil
}

func stderrTail(output string) string {
	output = strings.TrimSpace(output)
	if len(output) > stderrTailBytes {
		output = output[len(output)-stderrTailBytes:]
	}
	return output
}
