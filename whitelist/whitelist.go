// Package whitelist loads the canonical barcodes of one barcode position and
// corrects observed barcodes against them with at most one substitution.
package whitelist

import (
	"fmt"
	"os"
	"strings"

	"github.com/dasnellings/pipTools/failure"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fileio"
)

// Match describes how an observed barcode was resolved.
type Match uint8

const (
	NoMatch   Match = iota // no canonical barcode within one substitution
	Exact                  // observed sequence is itself canonical
	Corrected              // one substitution away from exactly one canonical barcode
	Ambiguous              // one substitution away from two or more canonical barcodes
)

func (m Match) String() string {
	switch m {
	case Exact:
		return "exact"
	case Corrected:
		return "corrected"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unmatched"
	}
}

// substitutions is the alphabet a barcode position may be mutated to when
// building neighbours. N is included so an uncalled base in a read is
// treated as a single mismatch.
var substitutions = []dna.Base{dna.A, dna.C, dna.G, dna.T, dna.N}

// ambiguous marks a neighbour reachable from more than one canonical barcode.
const ambiguous int32 = -1

// Index maps every canonical barcode to itself and every single-substitution
// neighbour to the unique canonical barcode it came from. An Index is
// immutable after New returns and safe for concurrent use.
type Index struct {
	barcodes  [][]dna.Base
	exact     map[string]int32
	neighbors map[string]int32
	length    int
	ambiguous int
}

// New builds an Index from canonical barcode strings. Blank entries are
// skipped and repeated entries keep their first position. When exactOnly is
// true no neighbours are generated and Correct only reports exact hits.
func New(canonical []string, exactOnly bool) (*Index, error) {
	idx := &Index{
		exact:  make(map[string]int32, len(canonical)),
		length: -1,
	}

	var bases []dna.Base
	for i, s := range canonical {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !validBases(s) {
			return nil, failure.Config("whitelist entry %d (%q) contains a base other than A, C, G, T or N", i+1, s)
		}
		if idx.length == -1 {
			idx.length = len(s)
		}
		if len(s) != idx.length {
			return nil, failure.Config("barcodes have different lengths: entry %d (%q) has length %d, expected %d", i+1, s, len(s), idx.length)
		}
		bases = dna.StringToBases(s)
		if _, seen := idx.exact[key(bases)]; seen {
			continue
		}
		idx.exact[key(bases)] = int32(len(idx.barcodes))
		idx.barcodes = append(idx.barcodes, bases)
	}

	if len(idx.barcodes) == 0 {
		return nil, failure.Config("whitelist is empty")
	}

	if !exactOnly {
		idx.buildNeighbors()
	}
	return idx, nil
}

// buildNeighbors enumerates every single-substitution variant of every
// canonical barcode. A variant that is itself canonical stays an exact hit.
// A variant reached from two different canonical barcodes is kept as a
// tombstone so Correct can report it as ambiguous instead of picking one.
func (idx *Index) buildNeighbors() {
	idx.neighbors = make(map[string]int32, len(idx.barcodes)*idx.length*(len(substitutions)-1))
	buf := make([]dna.Base, idx.length)
	var k string
	var orig dna.Base
	for id, bc := range idx.barcodes {
		copy(buf, bc)
		for pos := range buf {
			orig = buf[pos]
			for _, sub := range substitutions {
				if sub == orig {
					continue
				}
				buf[pos] = sub
				k = key(buf)
				if _, canonical := idx.exact[k]; canonical {
					continue
				}
				prev, found := idx.neighbors[k]
				switch {
				case !found:
					idx.neighbors[k] = int32(id)
				case prev != int32(id) && prev != ambiguous:
					idx.neighbors[k] = ambiguous
					idx.ambiguous++
				}
			}
			buf[pos] = orig
		}
	}
}

// Load reads a newline-delimited whitelist file (optionally gzipped).
func Load(path string, exactOnly bool) (*Index, error) {
	if err := readable(path); err != nil {
		return nil, failure.Config("could not read whitelist: %v", err)
	}
	in := fileio.EasyOpen(path)
	var lines []string
	var line string
	var done bool
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		lines = append(lines, line)
	}
	if err := in.Close(); err != nil {
		return nil, failure.Config("could not read whitelist: %v", err)
	}

	idx, err := New(lines, exactOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// readable checks that path is a regular file we may open, since
// fileio.EasyOpen panics instead of returning an error.
func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// Correct resolves an observed barcode. The returned id is only meaningful
// when the Match is Exact or Corrected; pass it to Barcode for the sequence.
func (idx *Index) Correct(observed []dna.Base) (int, Match) {
	if len(observed) != idx.length {
		return -1, NoMatch
	}
	if id, ok := idx.exact[string(observed)]; ok {
		return int(id), Exact
	}
	id, ok := idx.neighbors[string(observed)]
	switch {
	case !ok:
		return -1, NoMatch
	case id == ambiguous:
		return -1, Ambiguous
	default:
		return int(id), Corrected
	}
}

// Barcode returns the canonical sequence for id. The slice is shared and
// must not be modified.
func (idx *Index) Barcode(id int) []dna.Base {
	return idx.barcodes[id]
}

// Len returns the barcode length of this whitelist.
func (idx *Index) Len() int {
	return idx.length
}

// Size returns the number of canonical barcodes.
func (idx *Index) Size() int {
	return len(idx.barcodes)
}

// Neighbors returns the number of single-substitution variants that resolve
// to a unique canonical barcode.
func (idx *Index) Neighbors() int {
	return len(idx.neighbors) - idx.ambiguous
}

// AmbiguousNeighbors returns the number of variants dropped because two
// canonical barcodes reach them.
func (idx *Index) AmbiguousNeighbors() int {
	return idx.ambiguous
}

func key(b []dna.Base) string {
	return string(b)
}

func validBases(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return false
		}
	}
	return true
}
