// Package layout describes where each barcode, linker and UMI sits in an R1
// read and slices reads into those segments.
package layout

import (
	"fmt"
	"strings"

	"github.com/dasnellings/pipTools/failure"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/numbers"
)

// MaxReadLength bounds the R1 length a layout may require.
const MaxReadLength int = 1000

// Segment names in source order.
const (
	Barcode1 string = "cb1"
	Linker1  string = "linker1"
	Barcode2 string = "cb2"
	Linker2  string = "linker2"
	Barcode3 string = "cb3"
	Linker3  string = "linker3"
	Barcode4 string = "cb4"
	Umi      string = "umi"

	// Barcode is the combined cell barcode of the output layout.
	Barcode string = "barcode"
)

// Segment is a named run of bases at a fixed offset.
type Segment struct {
	Name  string
	Start int
	Len   int
}

// End returns the offset one past the last base of s.
func (s Segment) End() int {
	return s.Start + s.Len
}

// Config holds the lengths and spacer sequences a Layout is derived from.
type Config struct {
	BarcodeLens [4]int
	Spacers     [3]string
	UmiLen      int
	// MaxShift is the number of bases barcode 1 may be displaced to the
	// right of the read start.
	MaxShift int
}

// Layout is the validated source layout
// cb1 | linker1 | cb2 | linker2 | cb3 | linker3 | cb4 | umi
// and the target layout barcode | umi. It is immutable and safe to share.
type Layout struct {
	segments []Segment
	barcodes [4]Segment
	linkers  [3]Segment
	umi      Segment
	spacers  [3][]dna.Base
	readLen  int
	maxShift int
}

// New validates c and computes segment offsets.
func New(c Config) (*Layout, error) {
	for i, l := range c.BarcodeLens {
		if l <= 0 {
			return nil, failure.Config("barcode %d has length %d", i+1, l)
		}
	}
	if c.UmiLen <= 0 {
		return nil, failure.Config("umi has length %d", c.UmiLen)
	}
	if c.MaxShift < 0 {
		return nil, failure.Config("negative offset %d", c.MaxShift)
	}

	l := &Layout{maxShift: c.MaxShift}
	for i, s := range c.Spacers {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			return nil, failure.Config("spacer s%d is empty", i+1)
		}
		if strings.Trim(s, "ACGTN") != "" {
			return nil, failure.Config("spacer s%d (%q) contains a base other than A, C, G, T or N", i+1, s)
		}
		l.spacers[i] = dna.StringToBases(s)
	}

	var pos int
	add := func(name string, length int) Segment {
		seg := Segment{Name: name, Start: pos, Len: length}
		l.segments = append(l.segments, seg)
		pos += length
		return seg
	}
	l.barcodes[0] = add(Barcode1, c.BarcodeLens[0])
	l.linkers[0] = add(Linker1, len(l.spacers[0]))
	l.barcodes[1] = add(Barcode2, c.BarcodeLens[1])
	l.linkers[1] = add(Linker2, len(l.spacers[1]))
	l.barcodes[2] = add(Barcode3, c.BarcodeLens[2])
	l.linkers[2] = add(Linker3, len(l.spacers[2]))
	l.barcodes[3] = add(Barcode4, c.BarcodeLens[3])
	l.umi = add(Umi, c.UmiLen)
	l.readLen = pos

	if l.readLen+l.maxShift > MaxReadLength {
		return nil, failure.Config("layout needs %d bases of R1 (offset %d), more than the maximum read length %d", l.readLen, l.maxShift, MaxReadLength)
	}
	return l, nil
}

// Segments returns the source layout in read order.
func (l *Layout) Segments() []Segment {
	ans := make([]Segment, len(l.segments))
	copy(ans, l.segments)
	return ans
}

// Target returns the output R1 layout: the combined barcode then the UMI.
func (l *Layout) Target() []Segment {
	bc := l.BarcodeLen()
	return []Segment{
		{Name: Barcode, Start: 0, Len: bc},
		{Name: Umi, Start: bc, Len: l.umi.Len},
	}
}

// ExpectedLinker returns the configured spacer for linker1, linker2 or linker3.
func (l *Layout) ExpectedLinker(name string) ([]dna.Base, bool) {
	for i := range l.linkers {
		if l.linkers[i].Name == name {
			return l.spacers[i], true
		}
	}
	return nil, false
}

// ReadLen returns the number of R1 bases the layout covers at shift 0.
func (l *Layout) ReadLen() int {
	return l.readLen
}

// MaxShift returns how far barcode 1 may be displaced.
func (l *Layout) MaxShift() int {
	return l.maxShift
}

// BarcodeLen returns the length of the combined barcode.
func (l *Layout) BarcodeLen() int {
	var ans int
	for i := range l.barcodes {
		ans += l.barcodes[i].Len
	}
	return ans
}

// BarcodeLens returns the lengths of cb1..cb4.
func (l *Layout) BarcodeLens() [4]int {
	var ans [4]int
	for i := range l.barcodes {
		ans[i] = l.barcodes[i].Len
	}
	return ans
}

// UmiLen returns the UMI length.
func (l *Layout) UmiLen() int {
	return l.umi.Len
}

// OutputLen returns the length of an output R1 record.
func (l *Layout) OutputLen() int {
	return l.BarcodeLen() + l.umi.Len
}

// String renders the layout as a table of name, start and length.
func (l *Layout) String() string {
	var width int
	for _, s := range l.segments {
		width = numbers.Max(width, len(s.Name))
	}
	var b strings.Builder
	for _, s := range l.segments {
		fmt.Fprintf(&b, "%-*s\t%d\t%d", width, s.Name, s.Start, s.Len)
		if sp, ok := l.ExpectedLinker(s.Name); ok {
			fmt.Fprintf(&b, "\t%s", dna.BasesToString(sp))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
