package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("ensure directory: empty path")
	}
	return os.MkdirAll(dir, 0o755)
}

// MirrorPath maps a source file under inputRoot to its counterpart under
// outputRoot, swapping the extension for targetExt (without leading dot).
// The relative path is NFC-normalized so trees copied from macOS (which
// stores names in NFD) mirror to the same destination on every run.
func MirrorPath(inputRoot, outputRoot, sourcePath, targetExt string) (string, error) {
	rel, err := filepath.Rel(inputRoot, sourcePath)
	if err != nil {
		return "", fmt.Errorf("relative path for %q: %w", sourcePath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("source %q escapes input root %q", sourcePath, inputRoot)
	}
	rel = norm.NFC.String(rel)
	ext := filepath.Ext(rel)
	rel = strings.TrimSuffix(rel, ext) + "." + strings.TrimPrefix(targetExt, ".")
	return filepath.Join(outputRoot, rel), nil
}

// HasAppleDoublePrefix reports whether name is a macOS "._" metadata sidecar.
func HasAppleDoublePrefix(name string) bool {
	return strings.HasPrefix(name, "._")
}

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// WritableDir verifies dir exists (creating it when absent) and that a file
// can be created inside it.
func WritableDir(dir string) error {
	if err := EnsureDir(dir); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".writable-*")
	if err != nil {
		return fmt.Errorf("output directory %q is not writable: %w", dir, err)
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}
