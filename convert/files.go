package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dasnellings/pipTools/failure"
	"github.com/klauspost/pgzip"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fastq"
	"github.com/vertgenlab/gonomics/fileio"
)

// FASTQ uses ascii offset of 33 to make quality scores printable.
// fastq.Fastq stores qualities without the offset.
const asciiOffset uint8 = 33

// FileReader reads FASTQ records from a plain or gzipped file. Malformed
// records are returned as errors; a record cut short by the end of the file
// is ErrPairMismatch since its mate cannot be paired.
type FileReader struct {
	path    string
	in      *fileio.EasyReader
	records int
	done    bool
}

// Open opens a FASTQ file for reading.
func Open(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	f.Close()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &FileReader{path: path, in: fileio.EasyOpen(path)}, nil
}

func (r *FileReader) Next() (fastq.Fastq, bool, error) {
	if r.done {
		return fastq.Fastq{}, true, nil
	}
	header, done := r.line()
	for !done && header == "" {
		header, done = r.line()
	}
	if done {
		r.done = true
		return fastq.Fastq{}, true, nil
	}
	r.records++
	if header[0] != '@' {
		return fastq.Fastq{}, false, r.errorf("header %q does not start with '@'", header)
	}

	var lines [3]string
	for i := range lines {
		if lines[i], done = r.line(); done {
			r.done = true
			return fastq.Fastq{}, false, failure.PairMismatch("%s: record %d (%s) is truncated", r.path, r.records, header[1:])
		}
	}
	seq, plus, qual := lines[0], lines[1], lines[2]
	if !strings.HasPrefix(plus, "+") {
		return fastq.Fastq{}, false, r.errorf("expected '+' separator, found %q", plus)
	}
	if len(seq) != len(qual) {
		return fastq.Fastq{}, false, r.errorf("sequence has %d bases but quality has %d", len(seq), len(qual))
	}
	if strings.Trim(seq, "ACGTNacgtn") != "" {
		return fastq.Fastq{}, false, r.errorf("sequence %q contains a base other than A, C, G, T or N", seq)
	}

	fq := fastq.Fastq{Name: header[1:], Seq: dna.StringToBases(seq), Qual: make([]uint8, len(qual))}
	for i := 0; i < len(qual); i++ {
		if qual[i] < asciiOffset {
			return fastq.Fastq{}, false, r.errorf("invalid quality character %q", qual[i])
		}
		fq.Qual[i] = qual[i] - asciiOffset
	}
	return fq, false, nil
}

// line returns the next line without a trailing carriage return.
func (r *FileReader) line() (string, bool) {
	l, done := fileio.EasyNextLine(r.in)
	return strings.TrimSuffix(l, "\r"), done
}

func (r *FileReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%s: record %d: %s", r.path, r.records, fmt.Sprintf(format, args...))
}

func (r *FileReader) Close() error {
	return r.in.Close()
}

// FileWriter writes FASTQ records to path, gzip-compressed when path ends in
// .gz. Records go to a temporary file next to path that is renamed into
// place by Close, or deleted by Abort, so a failed run leaves no partial
// output behind.
type FileWriter struct {
	path string
	tmp  string
	file *os.File
	gz   *pgzip.Writer
	buf  *bufio.Writer
}

// Create starts a new output file.
func Create(path string) (*FileWriter, error) {
	w := &FileWriter{path: path, tmp: path + ".tmp"}
	var err error
	w.file, err = os.Create(w.tmp)
	if err != nil {
		return nil, err
	}
	var dest io.Writer = w.file
	if strings.HasSuffix(path, ".gz") {
		w.gz = pgzip.NewWriter(w.file)
		dest = w.gz
	}
	w.buf = bufio.NewWriterSize(dest, 1<<20)
	return w, nil
}

// Write appends fq in 4-line FASTQ format.
func (w *FileWriter) Write(fq fastq.Fastq) error {
	return writeFastq(w.buf, fq)
}

// Close flushes the file and moves it to its final path.
func (w *FileWriter) Close() error {
	if err := w.finish(); err != nil {
		os.Remove(w.tmp)
		return err
	}
	return os.Rename(w.tmp, w.path)
}

// Abort discards everything written so far.
func (w *FileWriter) Abort() error {
	err := w.finish()
	if rmErr := os.Remove(w.tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
		return rmErr
	}
	return err
}

func (w *FileWriter) finish() error {
	err := w.buf.Flush()
	if w.gz != nil {
		if gzErr := w.gz.Close(); err == nil {
			err = gzErr
		}
	}
	if fErr := w.file.Close(); err == nil {
		err = fErr
	}
	return err
}

func writeFastq(w *bufio.Writer, fq fastq.Fastq) error {
	w.WriteByte('@')
	w.WriteString(fq.Name)
	w.WriteByte('\n')
	w.WriteString(dna.BasesToString(fq.Seq))
	w.WriteString("\n+\n")
	for _, q := range fq.Qual {
		w.WriteByte(q + asciiOffset)
	}
	// bufio.Writer errors are sticky, so the last write reports any failure
	return w.WriteByte('\n')
}

// writeTable creates path and fills it with write.
func writeTable(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
