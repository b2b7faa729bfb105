package report

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]int{5, 1, 4, 2, 3})
	if s.Barcodes != 5 || s.Reads != 15 {
		t.Errorf("expected 5 barcodes and 15 reads, got %d and %d", s.Barcodes, s.Reads)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("expected min 1 and max 5, got %d and %d", s.Min, s.Max)
	}
	if s.Mean != 3 {
		t.Errorf("expected mean 3, got %g", s.Mean)
	}
	if s.Median != 3 {
		t.Errorf("expected median 3, got %g", s.Median)
	}
	if s.Q10 > s.Median || s.Q90 < s.Median {
		t.Errorf("quantiles out of order: %v", s)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if s := Summarize(nil); s != (Stats{}) {
		t.Errorf("expected zero stats, got %v", s)
	}
}

func TestRanked(t *testing.T) {
	in := []int{2, 9, 4}
	r := ranked(in)
	if r[0] != 9 || r[1] != 4 || r[2] != 2 {
		t.Errorf("expected descending order, got %v", r)
	}
	if in[0] != 2 {
		t.Error("ranked modified its input")
	}
}

func TestReadCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counts.tsv")
	if err := os.WriteFile(path, []byte("AAAA\t10\nCCCC\t7\nGGGG\t1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	counts, err := ReadCounts(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 3 || counts[0] != 10 || counts[1] != 7 || counts[2] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestReadCountsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadCounts(filepath.Join(dir, "missing.tsv")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ReadCounts(dir); err == nil {
		t.Error("expected error for a directory")
	}
	path := filepath.Join(dir, "bad.tsv")
	if err := os.WriteFile(path, []byte("AAAA\tten\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCounts(path); err == nil {
		t.Error("expected error for non-numeric count")
	}
}

func TestRankPlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rank.png")
	counts := make([]int, 500)
	for i := range counts {
		counts[i] = 10000 / (i + 1)
	}
	if err := RankPlot(counts, path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("rank plot is empty")
	}
	if err = RankPlot(nil, path); !errors.Is(err, ErrNoCounts) {
		t.Errorf("expected ErrNoCounts, got %v", err)
	}
}

func TestASCIIRank(t *testing.T) {
	counts := []int{1000, 800, 500, 100, 10, 5, 1}
	out := ASCIIRank(counts, 40, 8)
	if !strings.Contains(out, "barcode rank") {
		t.Errorf("missing caption in\n%s", out)
	}
	if ASCIIRank(nil, 40, 8) != "" {
		t.Error("expected empty plot for no counts")
	}
}
