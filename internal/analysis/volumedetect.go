package analysis

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// VolumeDetect runs ffmpeg's volumedetect filter over the file and parses
// the reported max_volume from stderr.
func VolumeDetect(ctx context.Context, binary, path string) (float64, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, binary,
		"-hide_banner", "-nostdin",
		"-i", path,
		"-filter:a", "volumedetect",
		"-f", "null", "-",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("volumedetect: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	peak, err := parseMaxVolume(stderr.String())
	if err != nil {
		return 0, fmt.Errorf("volumedetect %q: %w", path, err)
	}
	return peak, nil
}

// parseMaxVolume extracts the max_volume value from volumedetect output,
// e.g. "[Parsed_volumedetect_0 @ 0x...] max_volume: -1.0 dB".
func parseMaxVolume(output string) (float64, error) {
	for _, line := range strings.Split(output, "\n") {
		idx := strings.Index(line, "max_volume:")
		if idx < 0 {
			continue
		}
		value := strings.TrimSpace(line[idx+len("max_volume:"):])
		value = strings.TrimSpace(strings.TrimSuffix(value, "dB"))
		peak, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("parse max_volume %q: %w", value, err)
		}
		return peak, nil
	}
	return 0, fmt.Errorf("max_volume not reported")
}
