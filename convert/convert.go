package convert

import (
	"errors"
	"os"

	"github.com/dasnellings/pipTools/barcode"
	log "github.com/sirupsen/logrus"
)

// Inputs names the files of a run.
type Inputs struct {
	R1, R2 string
	// Prefix is prepended to every output file name.
	Prefix string
	// Counts also writes a barcode<TAB>reads table.
	Counts bool
}

// Outputs are the files a run produces.
type Outputs struct {
	R1, R2    string
	Whitelist string
	Counts    string
}

// OutputPaths returns the output file names for prefix.
func OutputPaths(prefix string) Outputs {
	return Outputs{
		R1:        prefix + "_R1.fq.gz",
		R2:        prefix + "_R2.fq.gz",
		Whitelist: prefix + "_whitelist.txt",
		Counts:    prefix + "_barcode_counts.tsv",
	}
}

// Files runs the conversion on FASTQ files. The output FASTQ files only
// appear once the run has succeeded; after a fatal error none of the outputs
// exist.
func Files(res *barcode.Resolver, in Inputs, opt Options) (Summary, *Cells, error) {
	var sum Summary
	out := OutputPaths(in.Prefix)

	r1, err := Open(in.R1)
	if err != nil {
		return sum, nil, err
	}
	defer r1.Close()
	r2, err := Open(in.R2)
	if err != nil {
		return sum, nil, err
	}
	defer r2.Close()

	w1, err := Create(out.R1)
	if err != nil {
		return sum, nil, err
	}
	w2, err := Create(out.R2)
	if err != nil {
		w1.Abort()
		return sum, nil, err
	}

	log.Debugf("Writing %s and %s", out.R1, out.R2)
	sum, cells, err := Run(res, r1, r2, w1, w2, opt)
	if err != nil {
		abort(w1, w2)
		return sum, cells, err
	}

	if err = errors.Join(w1.Close(), w2.Close()); err != nil {
		os.Remove(out.R1)
		os.Remove(out.R2)
		return sum, cells, err
	}

	if err = writeTable(out.Whitelist, cells.WriteWhitelist); err != nil {
		return sum, cells, err
	}
	if in.Counts {
		err = writeTable(out.Counts, cells.WriteCounts)
	}
	return sum, cells, err
}

func abort(w ...*FileWriter) {
	for i := range w {
		if err := w[i].Abort(); err != nil {
			log.Warnf("could not remove partial output: %v", err)
		}
	}
}
