// Package testsupport provides shared fixtures for crateprep tests.
package testsupport

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// SineSamples generates interleaved mono PCM samples of a sine wave with the
// given linear peak (0..1) scaled to the bit depth.
func SineSamples(count, sampleRate, bitDepth int, peak float64) []int {
	scale := peak * (math.Pow(2, float64(bitDepth-1)) - 1)
	samples := make([]int, count)
	for i := range samples {
		samples[i] = int(scale * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}
	return samples
}

// WriteWAV writes a mono PCM WAV file at path.
func WriteWAV(t *testing.T, path string, sampleRate, bitDepth int, samples []int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav fixture: %v", err)
	}
	defer file.Close()

	enc := wav.NewEncoder(file, sampleRate, bitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav fixture: %v", err)
	}
}

// WriteAIFF writes a mono PCM AIFF file at path.
func WriteAIFF(t *testing.T, path string, sampleRate, bitDepth int, samples []int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir fixture dir: %v", err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create aiff fixture: %v", err)
	}
	defer file.Close()

	enc := aiff.NewEncoder(file, sampleRate, bitDepth, 1)
	buf := &goaudio.IntBuffer{
		Data:           samples,
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write aiff fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close aiff fixture: %v", err)
	}
}
