package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConversion()
	c.normalizeFFmpeg()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeConversion() {
	if c.Conversion.MaxSampleRate == 0 {
		c.Conversion.MaxSampleRate = defaultMaxSampleRate
	}
	if c.Conversion.MaxBitDepth == 0 {
		c.Conversion.MaxBitDepth = defaultMaxBitDepth
	}
	if c.Conversion.MaxBitRate == 0 {
		c.Conversion.MaxBitRate = defaultMaxBitRate
	}
	if c.Conversion.PeakDBFS == 0 {
		c.Conversion.PeakDBFS = defaultPeakDBFS
	}
	// Marker values are matched exactly, so only trim surrounding whitespace.
	c.Conversion.MarkerValue = strings.TrimSpace(c.Conversion.MarkerValue)
	if c.Conversion.MarkerValue == "" {
		c.Conversion.MarkerValue = defaultMarkerValue
	}
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.FFmpegBinary = strings.TrimSpace(c.FFmpeg.FFmpegBinary)
	if c.FFmpeg.FFmpegBinary == "" {
		c.FFmpeg.FFmpegBinary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
	if c.FFmpeg.TimeoutSeconds == 0 {
		c.FFmpeg.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
