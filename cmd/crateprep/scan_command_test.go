package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScanCommandReportsVerdicts(t *testing.T) {
	tools := writeStubTools(t)
	configPath := writeTestConfig(t, tools)
	input := writeLibrary(t)
	output := filepath.Join(t.TempDir(), "out")

	out, err := runCLI(t, "--config", configPath, "scan", input, output, "VOCALS")
	if err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}
	requireContains(t, out, "tagged.flac")
	requireContains(t, out, "planned")
	requireContains(t, out, "not selected")
	requireContains(t, out, "1 would convert")

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Fatal("scan must not create the output tree")
	}
}

func TestScanCommandEmptyLibrary(t *testing.T) {
	tools := writeStubTools(t)
	configPath := writeTestConfig(t, tools)

	out, err := runCLI(t, "--config", configPath, "scan", t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("scan: %v\n%s", err, out)
	}
	requireContains(t, out, "No supported audio files found")
}
