package encoding

import (
	"fmt"
	"strconv"

	"crateprep/internal/analysis"
	"crateprep/internal/plan"
)

// Job describes one file conversion.
type Job struct {
	Source   string
	Output   string
	Decision plan.Decision

	// Marker, when non-empty, is rewritten to "0" in the output metadata so
	// converted files never re-qualify on a later pass.
	Marker string

	// ApplyGain applies a volume filter of GainDB decibels before encoding.
	ApplyGain bool
	GainDB    float64
}

// BuildArgs constructs the complete ffmpeg argument slice for a job.
func BuildArgs(binary string, job Job) []string {
	args := make([]string, 0, 24)
	args = append(args, binary, "-y", "-hide_banner", "-nostdin", "-loglevel", "error")
	args = append(args, "-i", job.Source)

	if job.ApplyGain {
		args = append(args, "-filter:a", "volume="+analysis.FormatGain(job.GainDB))
	}

	// Carry source tags into the output container.
	args = append(args, "-map_metadata", "0")

	args = append(args, "-acodec", job.Decision.Codec)
	args = append(args, "-ar", strconv.Itoa(job.Decision.SampleRate))
	args = append(args, "-write_id3v2", "1")
	args = append(args, "-metadata", "REKORDBOX=1")
	if job.Marker != "" {
		args = append(args, "-metadata", job.Marker+"=0")
	}

	switch job.Decision.TargetFormat {
	case "aiff":
		args = append(args, "-sample_fmt", fmt.Sprintf("s%d", job.Decision.BitDepth))
	case "mp3":
		args = append(args, "-b:a", strconv.Itoa(job.Decision.BitRate))
	}

	args = append(args, "-f", job.Decision.TargetFormat)
	args = append(args, job.Output)
	return args
}
