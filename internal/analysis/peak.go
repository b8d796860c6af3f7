package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// ErrNoSignal is returned for files whose decoded samples are all zero;
// there is no peak to normalize against.
var ErrNoSignal = errors.New("no signal in audio stream")

var errNoNativeDecoder = errors.New("no native decoder for container")

// MeasurePeak returns the peak level of the file in dBFS. Containers with a
// native decoder are measured in-process; everything else runs ffmpeg's
// volumedetect filter.
func MeasurePeak(ctx context.Context, ffmpegBinary, path string) (float64, error) {
	peak, err := nativePeak(path)
	if errors.Is(err, errNoNativeDecoder) {
		return VolumeDetect(ctx, ffmpegBinary, path)
	}
	return peak, err
}

// nativePeak decodes the file with the in-process decoder for its extension
// and returns the peak in dBFS.
func nativePeak(path string) (float64, error) {
	var (
		linear float64
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		linear, err = wavPeak(path)
	case ".aiff", ".aif":
		linear, err = aiffPeak(path)
	case ".mp3":
		linear, err = mp3Peak(path)
	case ".ogg":
		linear, err = oggPeak(path)
	default:
		return 0, errNoNativeDecoder
	}
	if err != nil {
		return 0, err
	}
	return linearToDBFS(linear)
}

func linearToDBFS(linear float64) (float64, error) {
	if linear <= 0 {
		return 0, ErrNoSignal
	}
	return 20 * math.Log10(linear), nil
}

// GainFor returns the volume offset in dB that lifts a measured peak to the
// target level, and whether applying it is worthwhile. Offsets below a
// twentieth of a dB are inaudible and skipped, matching the behavior of
// re-running the tool on already-normalized output.
func GainFor(targetDBFS, measuredDBFS float64) (float64, bool) {
	gain := targetDBFS - measuredDBFS
	if math.Abs(gain) < 0.05 {
		return 0, false
	}
	return gain, true
}

// FormatGain renders a gain for ffmpeg's volume filter, e.g. "3.5dB".
func FormatGain(gain float64) string {
	return fmt.Sprintf("%.2fdB", gain)
}
