// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no crateprep-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties (codec, sample rate, bit depth)
//   - Format: container-level metadata including the embedded tag map
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
package ffprobe
