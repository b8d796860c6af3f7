package encoding

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"crateprep/internal/services"
)

func TestConvertClassifiesFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix false(1)")
	}
	runner := NewRunner("false", 0, nil)
	err := runner.Convert(context.Background(), Job{
		Source: "in.flac",
		Output: filepath.Join(t.TempDir(), "out.aiff"),
		Decision: aiffDecision(),
	})
	if err == nil {
		t.Fatal("expected failure from false(1)")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool classification, got %v", err)
	}
}

func TestConvertMissingBinary(t *testing.T) {
	runner := NewRunner("crateprep-no-such-binary", time.Second, nil)
	err := runner.Convert(context.Background(), Job{
		Source: "in.flac",
		Output: filepath.Join(t.TempDir(), "out.aiff"),
		Decision: aiffDecision(),
	})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool classification, got %v", err)
	}
}

func TestStderrTailTruncates(t *testing.T) {
	long := make([]byte, stderrTailBytes*2)
	for i := range long {
		long[i] = 'x'
	}
	tail := stderrTail(string(long))
	if len(tail) != stderrTailBytes {
		t.Fatalf("expected %d bytes, got %d", stderrTailBytes, len(tail))
	}
}
