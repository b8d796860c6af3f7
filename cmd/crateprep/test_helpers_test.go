package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const ffprobeStub = `#!/bin/sh
for arg in "$@"; do path=$arg; done
case "$(basename "$path")" in
tagged.flac)
	cat <<'JSON'
{
  "streams": [
    {"index": 0, "codec_name": "flac", "codec_type": "audio", "sample_rate": "44100", "bits_per_raw_sample": "16"}
  ],
  "format": {"format_name": "flac", "tags": {"VOCALS": "1"}}
}
JSON
	;;
untagged.flac)
	cat <<'JSON'
{
  "streams": [
    {"index": 0, "codec_name": "flac", "codec_type": "audio", "sample_rate": "44100", "bits_per_raw_sample": "16"}
  ],
  "format": {"format_name": "flac", "tags": {"GENRE": "House"}}
}
JSON
	;;
*)
	echo "unexpected input: $path" >&2
	exit 1
	;;
esac
`

const ffmpegStub = `#!/bin/sh
for arg in "$@"; do out=$arg; done
printf 'FORM' > "$out"
`

// writeStubTools installs shell stand-ins for ffmpeg and ffprobe so command
// tests can exercise the full pipeline without the real binaries.
func writeStubTools(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{"ffprobe": ffprobeStub, "ffmpeg": ffmpegStub} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o755); err != nil {
			t.Fatalf("write %s stub: %v", name, err)
		}
	}
	return dir
}

func writeTestConfig(t *testing.T, toolsDir string) string {
	t.Helper()
	dir := t.TempDir()
	body := fmt.Sprintf(`[paths]
log_dir = %q

[ffmpeg]
ffmpeg_binary = %q
ffprobe_binary = %q

[logging]
level = "error"
`, filepath.Join(dir, "logs"), filepath.Join(toolsDir, "ffmpeg"), filepath.Join(toolsDir, "ffprobe"))

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
