package convert

import (
	"github.com/dasnellings/pipTools/barcode"
	"github.com/dasnellings/pipTools/layout"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Summary counts what happened to every read pair of a run.
type Summary struct {
	Total    int
	Accepted int
	Rejected int
	// Corrected counts accepted reads where at least one barcode position
	// needed a single-substitution correction.
	Corrected        int
	Reasons          [barcode.NumReasons]int
	LinkerMismatches [3]int
}

func (s *Summary) add(o barcode.Outcome) {
	s.Total++
	if !o.Accepted {
		s.Rejected++
		s.Reasons[o.Reason]++
		return
	}
	s.Accepted++
	if o.Corrected > 0 {
		s.Corrected++
	}
	for i, mm := range o.LinkerMismatch {
		if mm {
			s.LinkerMismatches[i]++
		}
	}
}

func (s *Summary) merge(o Summary) {
	s.Total += o.Total
	s.Accepted += o.Accepted
	s.Rejected += o.Rejected
	s.Corrected += o.Corrected
	for i := range o.Reasons {
		s.Reasons[i] += o.Reasons[i]
	}
	for i := range o.LinkerMismatches {
		s.LinkerMismatches[i] += o.LinkerMismatches[i]
	}
}

// FractionAccepted returns Accepted/Total, or 0 for an empty run.
func (s Summary) FractionAccepted() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Total)
}

// RejectedBy returns the non-zero rejection counts keyed by reason name.
func (s Summary) RejectedBy() map[string]int {
	ans := make(map[string]int)
	for r, n := range s.Reasons {
		if n > 0 {
			ans[barcode.Reason(r).String()] = n
		}
	}
	return ans
}

// LinkerMismatchesBy returns linker mismatch counts keyed by linker name.
func (s Summary) LinkerMismatchesBy() map[string]int {
	return map[string]int{
		layout.Linker1: s.LinkerMismatches[0],
		layout.Linker2: s.LinkerMismatches[1],
		layout.Linker3: s.LinkerMismatches[2],
	}
}

// Log writes the summary at info level.
func (s Summary) Log() {
	log.Printf("Total number of reads: %d", s.Total)
	log.Printf("Number of reads passing: %d", s.Accepted)
	log.Printf("Percentage of reads passing: %.2f%%", s.FractionAccepted()*100)
	log.Printf("Passing reads with a corrected barcode: %d", s.Corrected)
	reasons := s.RejectedBy()
	keys := maps.Keys(reasons)
	slices.Sort(keys)
	for _, k := range keys {
		log.Printf("Filtered reads (%s): %d", k, reasons[k])
	}
	for i, n := range s.LinkerMismatches {
		if n > 0 {
			log.Printf("Passing reads with a mismatched linker%d: %d", i+1, n)
		}
	}
}
