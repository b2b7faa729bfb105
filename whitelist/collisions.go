package whitelist

import (
	"github.com/vertgenlab/gonomics/dna"
)

// Collision is a pair of canonical barcodes close enough that their
// single-substitution neighbourhoods overlap.
type Collision struct {
	A, B     string
	Distance int
}

// Collisions returns every pair of canonical barcodes within Hamming
// distance maxDist, in whitelist order.
func (idx *Index) Collisions(maxDist int) []Collision {
	var ans []Collision
	var curr int
	for i := range idx.barcodes {
		for j := i + 1; j < len(idx.barcodes); j++ {
			curr = hamming(idx.barcodes[i], idx.barcodes[j])
			if curr <= maxDist {
				ans = append(ans, Collision{
					A:        dna.BasesToString(idx.barcodes[i]),
					B:        dna.BasesToString(idx.barcodes[j]),
					Distance: curr,
				})
			}
		}
	}
	return ans
}

// MinDistance returns the smallest Hamming distance between two canonical
// barcodes, or the barcode length when the whitelist has a single entry.
func (idx *Index) MinDistance() int {
	min := idx.length
	var curr int
	for i := range idx.barcodes {
		for j := i + 1; j < len(idx.barcodes); j++ {
			curr = hamming(idx.barcodes[i], idx.barcodes[j])
			if curr < min {
				min = curr
			}
		}
	}
	return min
}

func hamming(a, b []dna.Base) int {
	var d int
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}
