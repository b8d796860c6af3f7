package plan

import "strings"

// Class partitions supported containers by whether re-encoding loses data.
type Class int

const (
	ClassUnsupported Class = iota
	ClassLossless
	ClassLossy
)

func (c Class) String() string {
	switch c {
	case ClassLossless:
		return "lossless"
	case ClassLossy:
		return "lossy"
	default:
		return "unsupported"
	}
}

// Classify maps an ffprobe container name to its class. "aif" is the
// short spelling of the AIFF extension some rippers use.
func Classify(formatName string) Class {
	switch strings.ToLower(strings.TrimSpace(formatName)) {
	case "aiff", "aif", "flac", "wav":
		return ClassLossless
	case "mp3", "ogg", "aac":
		return ClassLossy
	default:
		return ClassUnsupported
	}
}
