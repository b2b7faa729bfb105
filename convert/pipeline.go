// Package convert rewrites paired reads into the barcode+UMI / cDNA layout
// and collects the combined barcodes of accepted reads.
package convert

import (
	"context"
	"runtime"
	"strings"

	"github.com/dasnellings/pipTools/barcode"
	"github.com/dasnellings/pipTools/failure"
	"github.com/exascience/pargo/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/fastq"
)

// RecordReader yields FASTQ records in file order. done is true once the
// stream is exhausted; later calls keep returning done.
type RecordReader interface {
	Next() (fq fastq.Fastq, done bool, err error)
}

// RecordWriter accepts FASTQ records in output order.
type RecordWriter interface {
	Write(fq fastq.Fastq) error
}

// Options tune a run.
type Options struct {
	// Threads is the number of goroutines resolving reads. Values below 1
	// use GOMAXPROCS.
	Threads int
	// Progress logs a line every Progress read pairs. 0 disables it.
	Progress int
	// StrictNames requires R1 and R2 identifiers to agree.
	StrictNames bool
}

// batch is the unit of parallel work: the resolved output of one contiguous
// run of read pairs, with its own counts so workers never share state.
type batch struct {
	r1, r2  []fastq.Fastq
	summary Summary
	cells   *Cells
}

// Run streams read pairs from r1 and r2 in lockstep, resolves and rewrites
// them on opt.Threads goroutines, and writes accepted pairs to out1 and out2
// in input order. It stops at the first fatal error: a read or write
// failure, or streams of unequal length (ErrPairMismatch). Short reads are
// counted as rejections and never stop the run.
func Run(res *barcode.Resolver, r1, r2 RecordReader, out1, out2 RecordWriter, opt Options) (Summary, *Cells, error) {
	threads := opt.Threads
	if threads < 1 {
		threads = runtime.GOMAXPROCS(0)
	}

	src := &pairSource{r1: r1, r2: r2, strictNames: opt.StrictNames}
	var sum Summary
	cells := NewCells()
	nextReport := opt.Progress

	var p pipeline.Pipeline
	p.Source(src)
	p.SetVariableBatchSize(512, 4096)
	p.Add(
		pipeline.LimitedPar(threads, pipeline.Receive(func(_ int, data interface{}) interface{} {
			return process(res, data.([]fastq.PairedEnd))
		})),
		pipeline.StrictOrd(pipeline.Receive(func(_ int, data interface{}) interface{} {
			// pargo may hand over one more batch after a failure
			if p.Err() != nil {
				return nil
			}
			b := data.(*batch)
			for i := range b.r1 {
				if err := out1.Write(b.r1[i]); err != nil {
					p.SetErr(err)
					return nil
				}
				if err := out2.Write(b.r2[i]); err != nil {
					p.SetErr(err)
					return nil
				}
			}
			sum.merge(b.summary)
			cells.Merge(b.cells)
			if opt.Progress > 0 && sum.Total >= nextReport {
				log.Printf("Total Reads Processed: %d", sum.Total)
				for nextReport <= sum.Total {
					nextReport += opt.Progress
				}
			}
			return nil
		})),
	)
	p.Run()

	if err := p.Err(); err != nil {
		return sum, cells, err
	}
	if err := src.Err(); err != nil {
		return sum, cells, err
	}
	return sum, cells, nil
}

func process(res *barcode.Resolver, pairs []fastq.PairedEnd) *batch {
	b := &batch{
		r1:    make([]fastq.Fastq, 0, len(pairs)),
		r2:    make([]fastq.Fastq, 0, len(pairs)),
		cells: NewCells(),
	}
	l := res.Layout()
	var o barcode.Outcome
	for i := range pairs {
		o = res.Resolve(&pairs[i].Fwd)
		b.summary.add(o)
		if !o.Accepted {
			continue
		}
		fwd, rev := Transform(l, o, pairs[i].Fwd, pairs[i].Rev)
		b.r1 = append(b.r1, fwd)
		b.r2 = append(b.r2, rev)
		b.cells.Add(o.Barcode)
	}
	return b
}

// pairSource feeds read pairs to the pipeline. Err, Prepare, Fetch and Data
// implement pipeline.Source.
type pairSource struct {
	r1, r2      RecordReader
	strictNames bool
	fetched     int
	data        []fastq.PairedEnd
	err         error
}

func (s *pairSource) Err() error {
	return s.err
}

func (s *pairSource) Prepare(_ context.Context) int {
	return -1
}

func (s *pairSource) Fetch(n int) (fetched int) {
	s.data = nil
	data := make([]fastq.PairedEnd, 0, n)
	var fwd, rev fastq.Fastq
	var done1, done2 bool
	for fetched = 0; fetched < n; fetched++ {
		fwd, done1, s.err = s.r1.Next()
		if s.err != nil {
			return 0
		}
		rev, done2, s.err = s.r2.Next()
		if s.err != nil {
			return 0
		}
		switch {
		case done1 && done2:
			s.data = data
			return
		case done1:
			s.err = failure.PairMismatch("R1 ended after %d reads but R2 has more", s.fetched)
			return 0
		case done2:
			s.err = failure.PairMismatch("R2 ended after %d reads but R1 has more", s.fetched)
			return 0
		}
		if s.strictNames && readName(fwd.Name) != readName(rev.Name) {
			s.err = failure.PairMismatch("read %d: R1 %q and R2 %q are not mates", s.fetched+1, fwd.Name, rev.Name)
			return 0
		}
		data = append(data, fastq.PairedEnd{Fwd: fwd, Rev: rev})
		s.fetched++
	}
	s.data = data
	return
}

func (s *pairSource) Data() interface{} {
	return s.data
}

// readName strips the comment and any /1 or /2 mate suffix from an identifier.
func readName(name string) string {
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		name = name[:i]
	}
	if strings.HasSuffix(name, "/1") || strings.HasSuffix(name, "/2") {
		name = name[:len(name)-2]
	}
	return name
}
