package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dasnellings/pipTools/failure"
)

const testConfig = `barcodes:
  bc1: bc1.txt
  bc2: bc2.txt
  bc3: sub/bc3.txt
  bc4: bc4.txt.gz
spacers:
  s1: ATG
  s2: GAG
  s3: TCGAG
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestParseDefaults(t *testing.T) {
	f, err := Parse([]byte(testConfig), "/data")
	if err != nil {
		t.Fatal(err)
	}
	if *f.UmiLen != DefaultUmiLen || *f.Offset != 0 {
		t.Errorf("expected defaults, got umi %d offset %d", *f.UmiLen, *f.Offset)
	}
	paths := f.WhitelistPaths()
	if paths[0] != "/data/bc1.txt" || paths[2] != "/data/sub/bc3.txt" {
		t.Errorf("relative paths not resolved: %v", paths)
	}
	if s := f.SpacerSeqs(); s != [3]string{"ATG", "GAG", "TCGAG"} {
		t.Errorf("unexpected spacers %v", s)
	}
}

func TestOverride(t *testing.T) {
	f, err := Parse([]byte(testConfig+"umi_len: 10\noffset: 5\n"), ".")
	if err != nil {
		t.Fatal(err)
	}
	if *f.UmiLen != 10 || *f.Offset != 5 {
		t.Errorf("file values not read: %d %d", *f.UmiLen, *f.Offset)
	}
	f.Override(-1, 2)
	if *f.UmiLen != 10 || *f.Offset != 2 {
		t.Errorf("expected umi 10 offset 2, got %d %d", *f.UmiLen, *f.Offset)
	}
}

func TestParseErrors(t *testing.T) {
	bad := map[string]string{
		"missing bc4":   strings.Replace(testConfig, "  bc4: bc4.txt.gz\n", "", 1),
		"missing s2":    strings.Replace(testConfig, "  s2: GAG\n", "", 1),
		"unknown field": testConfig + "umi: 12\n",
		"not yaml":      "barcodes: [",
	}
	for name, data := range bad {
		if _, err := Parse([]byte(data), "."); !errors.Is(err, failure.ErrConfig) {
			t.Errorf("%s: expected config error, got %v", name, err)
		}
	}
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bc1.txt"), "AGAAACCA\nGATTTCCC\nAAGTCCAA\nGAGAAACC\n")
	writeFile(t, filepath.Join(dir, "bc2.txt"), "ACGTAC\nTTGCAA\nGGCATG\n")
	writeFile(t, filepath.Join(dir, "sub", "bc3.txt"), "CATCAT\nGTAGTA\nTCCTCC\n")
	writeFile(t, filepath.Join(dir, "bc4.txt"), "CCAATTGG\nTTGGCCAA\nACACACAC\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Replace(testConfig, "bc4.txt.gz", "bc4.txt", 1))

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	res, err := f.Build(false)
	if err != nil {
		t.Fatal(err)
	}
	l := res.Layout()
	if l.BarcodeLens() != [4]int{8, 6, 6, 8} {
		t.Errorf("unexpected barcode lengths %v", l.BarcodeLens())
	}
	if l.ReadLen() != 51 || l.OutputLen() != 40 {
		t.Errorf("unexpected layout lengths %d %d", l.ReadLen(), l.OutputLen())
	}
	if res.Index(1).Size() != 3 {
		t.Errorf("expected 3 cb2 barcodes, got %d", res.Index(1).Size())
	}
}

func TestBuildMissingWhitelist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, testConfig)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = f.Build(false); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, failure.ErrConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}
