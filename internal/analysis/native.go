package analysis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// pcmScale returns the normalization divisor for a signed PCM bit depth.
func pcmScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128.0
	case 16:
		return 32768.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// pcmReader abstracts the go-audio wav and aiff decoders.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

func intBufferPeak(dec pcmReader, bitDepth int) (float64, error) {
	scale := pcmScale(bitDepth)
	buf := &goaudio.IntBuffer{Data: make([]int, 8192)}
	peak := 0.0
	for {
		n, err := dec.PCMBuffer(buf)
		for _, sample := range buf.Data[:n] {
			if v := math.Abs(float64(sample)) / scale; v > peak {
				peak = v
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("decode pcm: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return peak, nil
}

func wavPeak(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("%q is not a valid wav file", path)
	}
	return intBufferPeak(dec, int(dec.BitDepth))
}

func aiffPeak(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	dec := aiff.NewDecoder(file)
	if !dec.IsValidFile() {
		return 0, fmt.Errorf("%q is not a valid aiff file", path)
	}
	dec.ReadInfo()
	return intBufferPeak(dec, int(dec.BitDepth))
}

func mp3Peak(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	dec, err := gomp3.NewDecoder(file)
	if err != nil {
		return 0, fmt.Errorf("decode mp3: %w", err)
	}

	// go-mp3 emits 16-bit little-endian stereo PCM.
	buf := make([]byte, 8192)
	peak := 0.0
	for {
		n, err := dec.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			sample := int16(binary.LittleEndian.Uint16(buf[i : i+2]))
			if v := math.Abs(float64(sample)) / 32768.0; v > peak {
				peak = v
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("decode mp3: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return peak, nil
}

func oggPeak(path string) (float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader, err := oggvorbis.NewReader(file)
	if err != nil {
		return 0, fmt.Errorf("decode ogg: %w", err)
	}

	buf := make([]float32, 8192)
	peak := 0.0
	for {
		n, err := reader.Read(buf)
		for _, sample := range buf[:n] {
			if v := math.Abs(float64(sample)); v > peak {
				peak = v
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("decode ogg: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return peak, nil
}
