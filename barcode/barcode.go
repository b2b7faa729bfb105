// Package barcode decides, for one R1 read, whether its four barcode
// segments all resolve against their whitelists and builds the combined
// cell barcode when they do.
package barcode

import (
	"fmt"

	"github.com/dasnellings/pipTools/failure"
	"github.com/dasnellings/pipTools/layout"
	"github.com/dasnellings/pipTools/whitelist"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fastq"
)

// Outcome is the decision for one read. When Accepted is false, Reason says
// which check failed and Barcode is nil.
type Outcome struct {
	Accepted bool
	Reason   Reason

	// Barcode is cb1|cb2|cb3|cb4 after correction. It is freshly allocated.
	Barcode []dna.Base
	// Umi aliases the R1 sequence.
	Umi []dna.Base

	Segments layout.Segments
	// Corrected counts barcode positions fixed by a single substitution.
	Corrected int
	// LinkerMismatch flags linkers that differ from the configured spacer.
	LinkerMismatch [3]bool
}

// Resolver composes four whitelist lookups over a shared layout. It holds
// no mutable state and may be used from many goroutines.
type Resolver struct {
	layout  *layout.Layout
	indexes [4]*whitelist.Index
}

// NewResolver checks that each whitelist matches the barcode length the
// layout expects at that position.
func NewResolver(l *layout.Layout, indexes [4]*whitelist.Index) (*Resolver, error) {
	lens := l.BarcodeLens()
	for i, idx := range indexes {
		if idx == nil {
			return nil, failure.Config("no whitelist for barcode %d", i+1)
		}
		if idx.Len() != lens[i] {
			return nil, failure.Config("whitelist %d has barcodes of length %d but the layout expects %d", i+1, idx.Len(), lens[i])
		}
	}
	return &Resolver{layout: l, indexes: indexes}, nil
}

// Layout returns the layout the resolver slices reads with.
func (r *Resolver) Layout() *layout.Layout {
	return r.layout
}

// Index returns the whitelist for barcode position i (0-based).
func (r *Resolver) Index(i int) *whitelist.Index {
	return r.indexes[i]
}

// Resolve extracts the segments of r1 and corrects cb1..cb4 in order,
// stopping at the first position that fails. Barcode 1 is searched at
// shifts 0..MaxShift and the first shift where it resolves fixes the frame
// for the rest of the read.
func (r *Resolver) Resolve(r1 *fastq.Fastq) Outcome {
	var out Outcome
	if len(r1.Qual) != len(r1.Seq) {
		out.Reason = Malformed
		return out
	}

	var ids [4]int
	var m whitelist.Match
	var first whitelist.Match
	var found bool
	for shift := 0; shift <= r.layout.MaxShift(); shift++ {
		seg, err := r.layout.ExtractAt(r1.Seq, shift)
		if err != nil {
			if shift == 0 {
				out.Reason = Malformed
				return out
			}
			break
		}
		ids[0], m = r.indexes[0].Correct(seg.Barcodes[0])
		if shift == 0 {
			first = m
		}
		if resolved(m) {
			out.Segments = seg
			out.count(m)
			found = true
			break
		}
	}
	if !found {
		out.Reason = rejection(0, first)
		return out
	}

	for i := 1; i < len(r.indexes); i++ {
		ids[i], m = r.indexes[i].Correct(out.Segments.Barcodes[i])
		if !resolved(m) {
			out.Reason = rejection(i, m)
			return out
		}
		out.count(m)
	}

	out.Accepted = true
	out.Barcode = make([]dna.Base, 0, r.layout.BarcodeLen())
	for i := range ids {
		out.Barcode = append(out.Barcode, r.indexes[i].Barcode(ids[i])...)
	}
	out.Umi = out.Segments.Umi
	out.LinkerMismatch = r.layout.LinkerMismatches(out.Segments)
	return out
}

func (o *Outcome) count(m whitelist.Match) {
	if m == whitelist.Corrected {
		o.Corrected++
	}
}

func resolved(m whitelist.Match) bool {
	return m == whitelist.Exact || m == whitelist.Corrected
}

func rejection(pos int, m whitelist.Match) Reason {
	if m == whitelist.Ambiguous {
		return Cb1Ambiguous + Reason(pos)
	}
	return Cb1Unmatched + Reason(pos)
}

// String is used in debug logging.
func (o Outcome) String() string {
	if !o.Accepted {
		return "rejected: " + o.Reason.String()
	}
	return fmt.Sprintf("accepted: %s %s", dna.BasesToString(o.Barcode), dna.BasesToString(o.Umi))
}
