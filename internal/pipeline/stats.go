package pipeline

import "time"

// Stats aggregates per-file outcomes for a batch run.
type Stats struct {
	Total       int
	Planned     int
	Converted   int
	Compliant   int
	NotSelected int
	Failed      int
	Normalized  int
	Elapsed     time.Duration
}

// Add folds one outcome into the counters.
func (s *Stats) Add(outcome Outcome) {
	s.Total++
	switch outcome.Verdict {
	case VerdictPlanned:
		s.Planned++
	case VerdictConverted:
		s.Converted++
		if outcome.GainApplied {
			s.Normalized++
		}
	case VerdictCompliant:
		s.Compliant++
	case VerdictNotSelected:
		s.NotSelected++
	case VerdictFailed:
		s.Failed++
	}
}
