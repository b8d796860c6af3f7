package config

const (
	defaultLogDir         = "~/.local/share/crateprep/logs"
	defaultMaxSampleRate  = 44100
	defaultMaxBitDepth    = 16
	defaultMaxBitRate     = 320000
	defaultPeakDBFS       = -0.5
	defaultMarkerValue    = "1"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFprobeBinary  = "ffprobe"
	defaultTimeoutSeconds = 600
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Conversion: Conversion{
			MaxSampleRate: defaultMaxSampleRate,
			MaxBitDepth:   defaultMaxBitDepth,
			MaxBitRate:    defaultMaxBitRate,
			PeakDBFS:      defaultPeakDBFS,
			Normalize:     false,
			MarkerValue:   defaultMarkerValue,
			ResetMarker:   true,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:   defaultFFmpegBinary,
			FFprobeBinary:  defaultFFprobeBinary,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
