package pipeline

import (
	"crateprep/internal/plan"
	"crateprep/internal/scan"
)

// Verdict is the per-file result of a batch run.
type Verdict int

const (
	// VerdictPlanned marks a file that qualifies for conversion but was not
	// converted (scan or dry-run mode).
	VerdictPlanned Verdict = iota
	// VerdictConverted marks a successfully converted file.
	VerdictConverted
	// VerdictCompliant marks a file skipped because it already satisfies the
	// output limits.
	VerdictCompliant
	// VerdictNotSelected marks a file the marker tag did not select.
	VerdictNotSelected
	// VerdictFailed marks a file whose probe or conversion failed.
	VerdictFailed
)

func (v Verdict) String() string {
	switch v {
	case VerdictPlanned:
		return "planned"
	case VerdictConverted:
		return "converted"
	case VerdictCompliant:
		return "compliant"
	case VerdictNotSelected:
		return "not selected"
	case VerdictFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome records what happened to one candidate file.
type Outcome struct {
	Entry   scan.Entry
	Verdict Verdict
	// Detail is a short human-readable note (skip reason, error summary).
	Detail string
	// Decision is populated for planned and converted files.
	Decision plan.Decision
	// OutputPath is the mirrored destination, when a conversion was planned.
	OutputPath string
	// GainDB is the normalization gain applied, when any.
	GainDB      float64
	GainApplied bool
	Err         error
}
