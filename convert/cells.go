package convert

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/vertgenlab/gonomics/dna"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Cells is the set of combined barcodes seen on accepted reads, with the
// number of reads for each. It is not safe for concurrent use; the pipeline
// fills one Cells per batch and merges them in order on the writer stage.
type Cells struct {
	counts map[string]int
}

// BarcodeCount pairs a combined barcode with its read count.
type BarcodeCount struct {
	Barcode string
	Reads   int
}

func NewCells() *Cells {
	return &Cells{counts: make(map[string]int)}
}

// Add records one read for bc.
func (c *Cells) Add(bc []dna.Base) {
	c.counts[dna.BasesToString(bc)]++
}

// Merge adds every count in o to c.
func (c *Cells) Merge(o *Cells) {
	for bc, n := range o.counts {
		c.counts[bc] += n
	}
}

// Len returns the number of distinct barcodes.
func (c *Cells) Len() int {
	return len(c.counts)
}

// Count returns the number of reads seen for bc.
func (c *Cells) Count(bc string) int {
	return c.counts[bc]
}

// Sorted returns the distinct barcodes in lexical order.
func (c *Cells) Sorted() []string {
	ans := maps.Keys(c.counts)
	slices.Sort(ans)
	return ans
}

// Ranked returns barcodes by descending read count, ties broken by barcode.
func (c *Cells) Ranked() []BarcodeCount {
	ans := make([]BarcodeCount, 0, len(c.counts))
	for bc, n := range c.counts {
		ans = append(ans, BarcodeCount{Barcode: bc, Reads: n})
	}
	sort.Slice(ans, func(i, j int) bool {
		switch {
		case ans[i].Reads > ans[j].Reads:
			return true
		case ans[i].Reads < ans[j].Reads:
			return false
		default:
			return ans[i].Barcode < ans[j].Barcode
		}
	})
	return ans
}

// ReadCounts returns the read counts in ranked order.
func (c *Cells) ReadCounts() []int {
	ranked := c.Ranked()
	ans := make([]int, len(ranked))
	for i := range ranked {
		ans[i] = ranked[i].Reads
	}
	return ans
}

// WriteWhitelist writes one barcode per line in lexical order.
func (c *Cells) WriteWhitelist(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, bc := range c.Sorted() {
		if _, err := fmt.Fprintln(bw, bc); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCounts writes barcode<TAB>reads lines in ranked order.
func (c *Cells) WriteCounts(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, r := range c.Ranked() {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", r.Barcode, r.Reads); err != nil {
			return err
		}
	}
	return bw.Flush()
}
