package barcode

import (
	"errors"
	"strings"
	"testing"

	"github.com/dasnellings/pipTools/failure"
	"github.com/dasnellings/pipTools/layout"
	"github.com/dasnellings/pipTools/whitelist"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fastq"
)

var testWhitelists = [4][]string{
	{"AGAAACCA", "GATTTCCC", "AAGTCCAA", "GAGAAACC"},
	{"ACGTAC", "TTGCAA", "GGCATG"},
	{"CATCAT", "GTAGTA", "TCCTCC"},
	{"CCAATTGG", "TTGGCCAA", "ACACACAC"},
}

const testUmi = "ACGTACGTACGT"

func testResolver(t *testing.T, shift int) *Resolver {
	t.Helper()
	l, err := layout.New(layout.Config{
		BarcodeLens: [4]int{8, 6, 6, 8},
		Spacers:     [3]string{"ATG", "GAG", "TCGAG"},
		UmiLen:      12,
		MaxShift:    shift,
	})
	if err != nil {
		t.Fatal(err)
	}
	var idx [4]*whitelist.Index
	for i := range testWhitelists {
		idx[i], err = whitelist.New(testWhitelists[i], false)
		if err != nil {
			t.Fatal(err)
		}
	}
	r, err := NewResolver(l, idx)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func testRead(cb1, cb2, cb3, cb4 string) *fastq.Fastq {
	seq := cb1 + "ATG" + cb2 + "GAG" + cb3 + "TCGAG" + cb4 + testUmi + "GGGGGGGG"
	return &fastq.Fastq{
		Name: "read",
		Seq:  dna.StringToBases(seq),
		Qual: make([]uint8, len(seq)),
	}
}

func TestResolveExact(t *testing.T) {
	r := testResolver(t, 0)
	o := r.Resolve(testRead("GATTTCCC", "TTGCAA", "GTAGTA", "ACACACAC"))
	if !o.Accepted {
		t.Fatalf("expected accepted read, got %s", o)
	}
	if dna.BasesToString(o.Barcode) != "GATTTCCC"+"TTGCAA"+"GTAGTA"+"ACACACAC" {
		t.Errorf("unexpected barcode %s", dna.BasesToString(o.Barcode))
	}
	if dna.BasesToString(o.Umi) != testUmi {
		t.Errorf("unexpected umi %s", dna.BasesToString(o.Umi))
	}
	if o.Corrected != 0 || o.LinkerMismatch != [3]bool{} {
		t.Errorf("expected no corrections or linker mismatches, got %d %v", o.Corrected, o.LinkerMismatch)
	}
}

func TestResolveCorrected(t *testing.T) {
	r := testResolver(t, 0)
	o := r.Resolve(testRead("GATTTCCG", "TTGCAA", "GTAGTN", "ACACACAC"))
	if !o.Accepted {
		t.Fatalf("expected accepted read, got %s", o)
	}
	if dna.BasesToString(o.Barcode) != "GATTTCCC"+"TTGCAA"+"GTAGTA"+"ACACACAC" {
		t.Errorf("unexpected barcode %s", dna.BasesToString(o.Barcode))
	}
	if o.Corrected != 2 {
		t.Errorf("expected 2 corrected positions, got %d", o.Corrected)
	}
}

func TestResolveRejects(t *testing.T) {
	r := testResolver(t, 0)
	tests := []struct {
		read *fastq.Fastq
		want Reason
	}{
		{testRead("TTTTTTTT", "TTGCAA", "GTAGTA", "ACACACAC"), Cb1Unmatched},
		{testRead("GATTTCCC", "AAAAAA", "GTAGTA", "ACACACAC"), Cb2Unmatched},
		// two substitutions from GTAGTA
		{testRead("GATTTCCC", "TTGCAA", "GTAGCC", "ACACACAC"), Cb3Unmatched},
		{testRead("GATTTCCC", "TTGCAA", "GTAGTA", "GGGGGGGG"), Cb4Unmatched},
		// both cb3 and cb4 fail; the first failing position is reported
		{testRead("GATTTCCC", "TTGCAA", "AAAAAA", "GGGGGGGG"), Cb3Unmatched},
	}
	for _, test := range tests {
		o := r.Resolve(test.read)
		if o.Accepted || o.Reason != test.want {
			t.Errorf("read %s: expected %s, got %s", dna.BasesToString(test.read.Seq), test.want, o)
		}
		if o.Barcode != nil {
			t.Errorf("rejected read carries a barcode")
		}
	}
}

func TestResolveAmbiguous(t *testing.T) {
	l, err := layout.New(layout.Config{
		BarcodeLens: [4]int{4, 4, 4, 4},
		Spacers:     [3]string{"A", "A", "A"},
		UmiLen:      4,
	})
	if err != nil {
		t.Fatal(err)
	}
	var idx [4]*whitelist.Index
	for i := range idx {
		idx[i], err = whitelist.New([]string{"AAAA", "AACC"}, false)
		if err != nil {
			t.Fatal(err)
		}
	}
	r, err := NewResolver(l, idx)
	if err != nil {
		t.Fatal(err)
	}
	seq := "AAAA" + "A" + "AACC" + "A" + "AAAC" + "A" + "AAAA" + "TTTT"
	o := r.Resolve(&fastq.Fastq{Seq: dna.StringToBases(seq), Qual: make([]uint8, len(seq))})
	if o.Accepted || o.Reason != Cb3Ambiguous {
		t.Errorf("expected cb3 ambiguous, got %s", o)
	}
	if o.Reason.Position() != 3 {
		t.Errorf("expected position 3, got %d", o.Reason.Position())
	}
}

func TestResolveMalformed(t *testing.T) {
	r := testResolver(t, 0)
	short := &fastq.Fastq{Seq: dna.StringToBases("GATTTCCC"), Qual: make([]uint8, 8)}
	if o := r.Resolve(short); o.Accepted || o.Reason != Malformed {
		t.Errorf("expected malformed read, got %s", o)
	}
	bad := testRead("GATTTCCC", "TTGCAA", "GTAGTA", "ACACACAC")
	bad.Qual = bad.Qual[:10]
	if o := r.Resolve(bad); o.Accepted || o.Reason != Malformed {
		t.Errorf("expected malformed read for truncated qualities, got %s", o)
	}
}

func TestResolveShift(t *testing.T) {
	r := testResolver(t, 3)
	read := testRead("GATTTCCC", "TTGCAA", "GTAGTA", "ACACACAC")
	read.Seq = append(dna.StringToBases("CC"), read.Seq...)
	read.Qual = make([]uint8, len(read.Seq))
	o := r.Resolve(read)
	if !o.Accepted || o.Segments.Shift != 2 {
		t.Fatalf("expected accepted read at shift 2, got %s at shift %d", o, o.Segments.Shift)
	}

	// without an allowed shift the same read fails at cb1
	r = testResolver(t, 0)
	if o = r.Resolve(read); o.Accepted || o.Reason != Cb1Unmatched {
		t.Errorf("expected cb1 unmatched, got %s", o)
	}
}

func TestLinkerMismatchDoesNotReject(t *testing.T) {
	r := testResolver(t, 0)
	read := testRead("GATTTCCC", "TTGCAA", "GTAGTA", "ACACACAC")
	s := dna.BasesToString(read.Seq)
	s = s[:8] + "CCC" + s[11:]
	read.Seq = dna.StringToBases(s)
	o := r.Resolve(read)
	if !o.Accepted {
		t.Fatalf("linker mismatch should not reject, got %s", o)
	}
	if o.LinkerMismatch != [3]bool{true, false, false} {
		t.Errorf("expected linker1 mismatch, got %v", o.LinkerMismatch)
	}
}

func TestNewResolverLengthMismatch(t *testing.T) {
	l, err := layout.New(layout.Config{
		BarcodeLens: [4]int{8, 6, 6, 8},
		Spacers:     [3]string{"ATG", "GAG", "TCGAG"},
		UmiLen:      12,
	})
	if err != nil {
		t.Fatal(err)
	}
	var idx [4]*whitelist.Index
	for i := range testWhitelists {
		idx[i], _ = whitelist.New(testWhitelists[i], false)
	}
	idx[1], _ = whitelist.New(testWhitelists[0], false)
	if _, err = NewResolver(l, idx); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("expected configuration error, got %v", err)
	}
	idx[1] = nil
	if _, err = NewResolver(l, idx); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("expected configuration error for missing whitelist, got %v", err)
	}
}

func TestReasonNames(t *testing.T) {
	if Cb3Unmatched.String() != "cb3 unmatched" {
		t.Errorf("unexpected reason name %q", Cb3Unmatched.String())
	}
	for r := 0; r < NumReasons; r++ {
		if strings.TrimSpace(Reason(r).String()) == "" {
			t.Errorf("reason %d has no name", r)
		}
	}
	if Malformed.Position() != 0 || Cb4Ambiguous.Position() != 4 {
		t.Error("unexpected reason positions")
	}
}
