package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"crateprep/internal/fileutil"
)

// Supported audio file extensions (lowercase, with leading dot).
var audioExtensions = map[string]bool{
	".aiff": true,
	".aif":  true,
	".flac": true,
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".aac":  true,
}

// Entry is one candidate file produced by Discover.
type Entry struct {
	// Path is the absolute path to the source file.
	Path string
	// Rel is the path relative to the input root, using the platform separator.
	Rel string
}

// SupportedExtension reports whether path carries a supported audio extension.
func SupportedExtension(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover walks inputRoot and collects files with a supported audio
// extension, pruning the outputRoot subtree when it sits inside the input
// tree, and skipping "._" sidecars. Paths are returned sorted by relative
// path for deterministic processing order.
func Discover(inputRoot, outputRoot string) ([]Entry, error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("input root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input root %q is not a directory", inputRoot)
	}

	prune := ""
	if outputRoot != "" {
		if abs, err := filepath.Abs(outputRoot); err == nil {
			prune = abs
		}
	}

	var entries []Entry
	err = filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if prune != "" {
				if abs, absErr := filepath.Abs(path); absErr == nil && abs == prune {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if fileutil.HasAppleDoublePrefix(d.Name()) {
			return nil
		}
		if !SupportedExtension(path) {
			return nil
		}
		rel, relErr := filepath.Rel(inputRoot, path)
		if relErr != nil {
			return relErr
		}
		entries = append(entries, Entry{Path: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Rel < entries[j].Rel })
	return entries, nil
}
