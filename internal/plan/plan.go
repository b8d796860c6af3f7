package plan

import (
	"fmt"
	"strings"
)

// Action describes what the pipeline should do with a file.
type Action int

const (
	ActionConvert Action = iota
	ActionSkipCompliant
)

func (a Action) String() string {
	if a == ActionSkipCompliant {
		return "skip"
	}
	return "convert"
}

// Source carries the probed properties the decision depends on.
type Source struct {
	FormatName string
	SampleRate int
	// BitDepth is meaningful for lossless sources, BitRate for lossy ones.
	BitDepth int
	BitRate  int
}

// Limits caps the output properties.
type Limits struct {
	MaxSampleRate int
	MaxBitDepth   int
	MaxBitRate    int
}

// Decision is the conversion plan for one file.
type Decision struct {
	Action       Action
	Class        Class
	TargetFormat string // "aiff" or "mp3"
	Codec        string // ffmpeg codec name
	SampleRate   int
	BitDepth     int // aiff targets
	BitRate      int // mp3 targets
}

// Containers a CDJ plays natively. flac and ogg always convert.
var deckPlayable = map[string]bool{
	"aiff": true,
	"aif":  true,
	"wav":  true,
	"mp3":  true,
	"aac":  true,
}

// Decide classifies the source and either plans a conversion or reports the
// file as already compliant with the limits.
func Decide(src Source, limits Limits) (Decision, error) {
	name := strings.ToLower(strings.TrimSpace(src.FormatName))
	class := Classify(name)
	if class == ClassUnsupported {
		return Decision{}, fmt.Errorf("unsupported container %q", src.FormatName)
	}

	if compliant(name, class, src, limits) {
		return Decision{Action: ActionSkipCompliant, Class: class}, nil
	}

	decision := Decision{
		Action:     ActionConvert,
		Class:      class,
		SampleRate: capped(src.SampleRate, limits.MaxSampleRate),
	}
	switch class {
	case ClassLossless:
		decision.TargetFormat = "aiff"
		decision.Codec = fmt.Sprintf("pcm_s%dle", limits.MaxBitDepth)
		decision.BitDepth = limits.MaxBitDepth
		if src.BitDepth > 0 && src.BitDepth < limits.MaxBitDepth {
			decision.BitDepth = src.BitDepth
			decision.Codec = fmt.Sprintf("pcm_s%dle", src.BitDepth)
		}
	case ClassLossy:
		decision.TargetFormat = "mp3"
		decision.Codec = "libmp3lame"
		decision.BitRate = limits.MaxBitRate
		if src.BitRate > 0 && src.BitRate < limits.MaxBitRate {
			decision.BitRate = src.BitRate
		}
	}
	return decision, nil
}

func compliant(name string, class Class, src Source, limits Limits) bool {
	if !deckPlayable[name] {
		return false
	}
	if src.SampleRate > limits.MaxSampleRate {
		return false
	}
	switch class {
	case ClassLossless:
		return src.BitDepth <= limits.MaxBitDepth
	case ClassLossy:
		return src.BitRate <= limits.MaxBitRate
	}
	return false
}

// capped returns value bounded by limit; zero (unknown) falls back to limit.
func capped(value, limit int) int {
	if value > 0 && value < limit {
		return value
	}
	return limit
}
