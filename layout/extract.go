package layout

import (
	"github.com/dasnellings/pipTools/failure"
	"github.com/vertgenlab/gonomics/dna"
)

// Segments holds the uncorrected pieces of one R1 read. Every slice aliases
// the read's sequence; nothing is copied.
type Segments struct {
	Barcodes [4][]dna.Base
	Linkers  [3][]dna.Base
	Umi      []dna.Base
	// Shift is the displacement of barcode 1 from the read start.
	Shift int
}

// Extract slices seq at shift 0.
func (l *Layout) Extract(seq []dna.Base) (Segments, error) {
	return l.ExtractAt(seq, 0)
}

// ExtractAt slices seq with every segment displaced by shift bases. It fails
// with ErrMalformedRead when seq is too short to hold the layout. It touches
// no shared state and may be called from any number of goroutines.
func (l *Layout) ExtractAt(seq []dna.Base, shift int) (Segments, error) {
	var s Segments
	if shift < 0 || len(seq) < shift+l.readLen {
		return s, failure.MalformedRead("read of length %d is shorter than the %d bases the layout needs at offset %d", len(seq), l.readLen, shift)
	}
	s.Shift = shift
	for i, seg := range l.barcodes {
		s.Barcodes[i] = seq[shift+seg.Start : shift+seg.End()]
	}
	for i, seg := range l.linkers {
		s.Linkers[i] = seq[shift+seg.Start : shift+seg.End()]
	}
	s.Umi = seq[shift+l.umi.Start : shift+l.umi.End()]
	return s, nil
}

// BarcodeSegment returns the source segment of barcode i (0-based).
func (l *Layout) BarcodeSegment(i int) Segment {
	return l.barcodes[i]
}

// UmiSegment returns the source segment of the UMI.
func (l *Layout) UmiSegment() Segment {
	return l.umi
}

// LinkerMismatches reports, for each linker, whether the observed bases
// differ from the configured spacer.
func (l *Layout) LinkerMismatches(s Segments) [3]bool {
	var ans [3]bool
	for i := range s.Linkers {
		ans[i] = !equal(s.Linkers[i], l.spacers[i])
	}
	return ans
}

func equal(a, b []dna.Base) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
