// Package report summarizes and plots reads-per-barcode distributions.
package report

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/numbers"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoCounts = errors.New("no barcode counts")

// Stats describes how reads are spread over barcodes.
type Stats struct {
	Barcodes int     `yaml:"barcodes"`
	Reads    int     `yaml:"reads"`
	Min      int     `yaml:"min_reads"`
	Max      int     `yaml:"max_reads"`
	Mean     float64 `yaml:"mean_reads"`
	Median   float64 `yaml:"median_reads"`
	Q10      float64 `yaml:"q10_reads"`
	Q90      float64 `yaml:"q90_reads"`
}

// Summarize computes Stats for a set of per-barcode read counts in any order.
func Summarize(counts []int) Stats {
	var s Stats
	if len(counts) == 0 {
		return s
	}
	x := make([]float64, len(counts))
	for i := range counts {
		x[i] = float64(counts[i])
		s.Reads += counts[i]
	}
	sort.Float64s(x)
	s.Barcodes = len(counts)
	s.Min = int(x[0])
	s.Max = int(x[len(x)-1])
	s.Mean = stat.Mean(x, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, x, nil)
	s.Q10 = stat.Quantile(0.1, stat.Empirical, x, nil)
	s.Q90 = stat.Quantile(0.9, stat.Empirical, x, nil)
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("barcodes: %d  reads: %d  min: %d  q10: %g  median: %g  mean: %.2f  q90: %g  max: %d",
		s.Barcodes, s.Reads, s.Min, s.Q10, s.Median, s.Mean, s.Q90, s.Max)
}

// ranked returns a copy of counts sorted from most to fewest reads.
func ranked(counts []int) []int {
	ans := make([]int, len(counts))
	copy(ans, counts)
	sort.Sort(sort.Reverse(sort.IntSlice(ans)))
	return ans
}

// RankPlot saves a log-log barcode rank plot to path. The image format
// follows the file extension (png, pdf, svg, ...).
func RankPlot(counts []int, path string) error {
	if len(counts) == 0 {
		return ErrNoCounts
	}
	r := ranked(counts)
	xys := make(plotter.XYs, 0, len(r))
	for i := range r {
		if r[i] < 1 {
			break
		}
		xys = append(xys, plotter.XY{X: float64(i + 1), Y: float64(r[i])})
	}
	if len(xys) == 0 {
		return ErrNoCounts
	}

	p := plot.New()
	p.Title.Text = "Barcode rank"
	p.X.Label.Text = "Barcode rank"
	p.Y.Label.Text = "Reads"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line, plotter.NewGrid())
	return p.Save(15*vg.Centimeter, 12*vg.Centimeter, path)
}

// ASCIIRank renders the rank plot for a terminal: log10 reads sampled at
// width log-spaced ranks.
func ASCIIRank(counts []int, width, height int) string {
	r := ranked(counts)
	if len(r) == 0 || r[0] < 1 {
		return ""
	}
	width = numbers.Max(width, 2)
	data := make([]float64, width)
	last := math.Log(float64(len(r)))
	var idx int
	for i := range data {
		idx = int(math.Round(math.Exp(last*float64(i)/float64(width-1)))) - 1
		idx = numbers.Min(numbers.Max(idx, 0), len(r)-1)
		data[i] = math.Log10(float64(numbers.Max(r[idx], 1)))
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("log10 reads by barcode rank (1..%d, log scale)", len(r))))
}

// ReadCounts reads the second column of a barcode<TAB>reads file.
func ReadCounts(path string) ([]int, error) {
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
	in := fileio.EasyOpen(path)
	var ans []int
	var n, lineNum int
	for line, done := fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		lineNum++
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			in.Close()
			return nil, fmt.Errorf("%s line %d: expected barcode<TAB>reads, found %q", path, lineNum, line)
		}
		n, err = strconv.Atoi(cols[1])
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("%s line %d: %w", path, lineNum, err)
		}
		ans = append(ans, n)
	}
	return ans, in.Close()
}
