package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"crateprep/internal/encoding"
	"crateprep/internal/media/ffprobe"
	"crateprep/internal/testsupport"
)

type fakeConverter struct {
	jobs []encoding.Job
	fail map[string]error
}

func (f *fakeConverter) Convert(_ context.Context, job encoding.Job) error {
	if err := f.fail[job.Source]; err != nil {
		return err
	}
	f.jobs = append(f.jobs, job)
	if err := os.WriteFile(job.Output, []byte(job.Decision.TargetFormat), 0o644); err != nil {
		return err
	}
	return nil
}

func flacResult(tags map[string]string) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{{
			CodecName:        "flac",
			CodecType:        "audio",
			SampleRate:       "44100",
			BitsPerRawSample: "16",
		}},
		Format: ffprobe.Format{FormatName: "flac", Tags: tags},
	}
}

func wavResult(rate string, depth string) ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{{
			CodecName:        "pcm_s16le",
			CodecType:        "audio",
			SampleRate:       rate,
			BitsPerRawSample: depth,
		}},
		Format: ffprobe.Format{FormatName: "wav", Tags: map[string]string{"VOCALS": "1"}},
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func newTestRunner(t *testing.T, results map[string]ffprobe.Result) (*Runner, *fakeConverter) {
	t.Helper()
	fc := &fakeConverter{fail: map[string]error{}}
	r := New(testsupport.NewConfig(t), nil)
	r.converter = fc
	r.probe = func(_ context.Context, _, path string) (ffprobe.Result, error) {
		result, ok := results[filepath.Base(path)]
		if !ok {
			return ffprobe.Result{}, errors.New("probe stub: unknown file")
		}
		return result, nil
	}
	r.measure = func(_ context.Context, _, _ string) (float64, error) {
		return -6.5, nil
	}
	return r, fc
}

func TestRunConvertsMarkedFilesAndMirrorsPaths(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	touch(t, filepath.Join(input, "house", "tagged.flac"))
	touch(t, filepath.Join(input, "house", "untagged.flac"))

	r, fc := newTestRunner(t, map[string]ffprobe.Result{
		"tagged.flac":   flacResult(map[string]string{"VOCALS": "1"}),
		"untagged.flac": flacResult(map[string]string{"GENRE": "House"}),
	})

	stats, err := r.Run(context.Background(), Request{
		InputRoot:  input,
		OutputRoot: output,
		Marker:     "VOCALS",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Total != 2 || stats.Converted != 1 || stats.NotSelected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	converted := filepath.Join(output, "house", "tagged.aiff")
	if _, err := os.Stat(converted); err != nil {
		t.Fatalf("expected mirrored output %s: %v", converted, err)
	}
	if _, err := os.Stat(filepath.Join(output, "house", "untagged.aiff")); !os.IsNotExist(err) {
		t.Fatal("unselected file must not produce output")
	}
	if len(fc.jobs) != 1 || fc.jobs[0].Marker != "VOCALS" {
		t.Fatalf("marker reset not requested: %+v", fc.jobs)
	}
}

func TestRunMarkerIsCaseSensitive(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	touch(t, filepath.Join(input, "near.flac"))

	r, fc := newTestRunner(t, map[string]ffprobe.Result{
		"near.flac": flacResult(map[string]string{"vocals": "1"}),
	})

	stats, err := r.Run(context.Background(), Request{InputRoot: input, OutputRoot: output, Marker: "VOCALS"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.NotSelected != 1 || len(fc.jobs) != 0 {
		t.Fatalf("near-match tag selected a file: %+v", stats)
	}
}

func TestRunSkipsCompliantFiles(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	touch(t, filepath.Join(input, "ok.wav"))
	touch(t, filepath.Join(input, "hires.wav"))

	r, fc := newTestRunner(t, map[string]ffprobe.Result{
		"ok.wav":    wavResult("44100", "16"),
		"hires.wav": wavResult("96000", "24"),
	})

	stats, err := r.Run(context.Background(), Request{InputRoot: input, OutputRoot: output, Marker: "VOCALS"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Compliant != 1 || stats.Converted != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(fc.jobs) != 1 || filepath.Base(fc.jobs[0].Source) != "hires.wav" {
		t.Fatalf("wrong file converted: %+v", fc.jobs)
	}
}

func TestRunContinuesAfterFailures(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	touch(t, filepath.Join(input, "a-bad.flac"))
	touch(t, filepath.Join(input, "b-good.flac"))

	r, _ := newTestRunner(t, map[string]ffprobe.Result{
		"b-good.flac": flacResult(map[string]string{"VOCALS": "1"}),
	})

	stats, err := r.Run(context.Background(), Request{InputRoot: input, OutputRoot: output, Marker: "VOCALS"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 1 || stats.Converted != 1 {
		t.Fatalf("batch should continue past failures: %+v", stats)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "never-created")
	touch(t, filepath.Join(input, "tagged.flac"))

	r, fc := newTestRunner(t, map[string]ffprobe.Result{
		"tagged.flac": flacResult(map[string]string{"VOCALS": "1"}),
	})

	stats, err := r.Run(context.Background(), Request{
		InputRoot:  input,
		OutputRoot: output,
		Marker:     "VOCALS",
		DryRun:     true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Planned != 1 || len(fc.jobs) != 0 {
		t.Fatalf("dry run must not convert: %+v", stats)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the output root")
	}
}

func TestRunAppliesNormalizationGain(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	touch(t, filepath.Join(input, "quiet.flac"))

	r, fc := newTestRunner(t, map[string]ffprobe.Result{
		"quiet.flac": flacResult(map[string]string{"VOCALS": "1"}),
	})

	stats, err := r.Run(context.Background(), Request{
		InputRoot:  input,
		OutputRoot: output,
		Marker:     "VOCALS",
		Normalize:  true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Normalized != 1 {
		t.Fatalf("expected normalized conversion: %+v", stats)
	}
	// Peak stub reports -6.5 dBFS; default target is -0.5 dBFS.
	if len(fc.jobs) != 1 || !fc.jobs[0].ApplyGain || fc.jobs[0].GainDB != 6.0 {
		t.Fatalf("unexpected gain: %+v", fc.jobs)
	}
}

func TestRunRefusesLockedOutputRoot(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	touch(t, filepath.Join(input, "tagged.flac"))

	holder := flock.New(filepath.Join(output, lockFileName))
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("prepare lock: %v locked=%v", err, locked)
	}
	defer func() { _ = holder.Unlock() }()

	r, _ := newTestRunner(t, map[string]ffprobe.Result{
		"tagged.flac": flacResult(map[string]string{"VOCALS": "1"}),
	})
	if _, err := r.Run(context.Background(), Request{InputRoot: input, OutputRoot: output}); err == nil {
		t.Fatal("expected lock contention error")
	}
}

func TestScanReportsWithoutConverting(t *testing.T) {
	input := t.TempDir()
	touch(t, filepath.Join(input, "tagged.flac"))
	touch(t, filepath.Join(input, "plain.flac"))

	r, fc := newTestRunner(t, map[string]ffprobe.Result{
		"tagged.flac": flacResult(map[string]string{"VOCALS": "1"}),
		"plain.flac":  flacResult(nil),
	})

	outcomes, stats, err := r.Scan(context.Background(), Request{
		InputRoot:  input,
		OutputRoot: filepath.Join(input, "out"),
		Marker:     "VOCALS",
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(outcomes) != 2 || stats.Planned != 1 || stats.NotSelected != 1 {
		t.Fatalf("unexpected scan result: %+v %+v", outcomes, stats)
	}
	if len(fc.jobs) != 0 {
		t.Fatal("scan must not convert")
	}
}

func TestRunMissingInputRoot(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	_, err := r.Run(context.Background(), Request{
		InputRoot:  filepath.Join(t.TempDir(), "missing"),
		OutputRoot: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing input root")
	}
}
