package convert

import (
	"github.com/dasnellings/pipTools/barcode"
	"github.com/dasnellings/pipTools/layout"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fastq"
)

// Transform builds the output pair for an accepted outcome. Output R1 is the
// corrected barcode followed by the UMI, with the qualities of the original
// barcode and UMI bases carried over position for position. Output R2 is r2
// unchanged. o must be an accepted outcome for r1.
func Transform(l *layout.Layout, o barcode.Outcome, r1, r2 fastq.Fastq) (fastq.Fastq, fastq.Fastq) {
	n := l.OutputLen()
	shift := o.Segments.Shift

	seq := make([]dna.Base, 0, n)
	seq = append(seq, o.Barcode...)
	seq = append(seq, o.Umi...)

	qual := make([]uint8, 0, n)
	var seg layout.Segment
	for i := 0; i < 4; i++ {
		seg = l.BarcodeSegment(i)
		qual = append(qual, r1.Qual[shift+seg.Start:shift+seg.End()]...)
	}
	seg = l.UmiSegment()
	qual = append(qual, r1.Qual[shift+seg.Start:shift+seg.End()]...)

	return fastq.Fastq{Name: r1.Name, Seq: seq, Qual: qual}, r2
}
