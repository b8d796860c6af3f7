// Package scan enumerates candidate audio files under an input root and
// decides which of them the marker tag selects for conversion.
//
// Discovery skips macOS "._" metadata sidecars and, when the output root is
// nested inside the input root, the output subtree. Results are sorted so a
// batch processes files in a deterministic order.
package scan
