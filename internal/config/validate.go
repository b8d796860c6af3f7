package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateConversion(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateConversion() error {
	if c.Conversion.MaxSampleRate < 8000 {
		return fmt.Errorf("conversion.max_sample_rate %d is below 8000 Hz", c.Conversion.MaxSampleRate)
	}
	switch c.Conversion.MaxBitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("conversion.max_bit_depth must be 8, 16, 24, or 32 (got %d)", c.Conversion.MaxBitDepth)
	}
	if c.Conversion.MaxBitRate < 32000 {
		return fmt.Errorf("conversion.max_bit_rate %d is below 32000 bps", c.Conversion.MaxBitRate)
	}
	if c.Conversion.PeakDBFS > 0 {
		return errors.New("conversion.peak_dbfs must not be above 0 dBFS")
	}
	if c.Conversion.PeakDBFS < -30 {
		return fmt.Errorf("conversion.peak_dbfs %.1f is below -30 dBFS", c.Conversion.PeakDBFS)
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.TimeoutSeconds < 0 {
		return errors.New("ffmpeg.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
