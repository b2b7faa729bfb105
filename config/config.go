// Package config reads the YAML run configuration and builds the barcode
// resolver it describes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dasnellings/pipTools/barcode"
	"github.com/dasnellings/pipTools/failure"
	"github.com/dasnellings/pipTools/layout"
	"github.com/dasnellings/pipTools/whitelist"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

const DefaultUmiLen = 12

var (
	barcodeKeys = [4]string{"bc1", "bc2", "bc3", "bc4"}
	spacerKeys  = [3]string{"s1", "s2", "s3"}
)

// File is the configuration file:
//
//	barcodes: {bc1: bc1.txt, bc2: bc2.txt, bc3: bc3.txt, bc4: bc4.txt}
//	spacers:  {s1: ATG, s2: GAG, s3: TCGAG}
//	umi_len: 12
//	offset: 0
type File struct {
	Barcodes map[string]string `yaml:"barcodes"`
	Spacers  map[string]string `yaml:"spacers"`
	UmiLen   *int              `yaml:"umi_len"`
	Offset   *int              `yaml:"offset"`

	// dir is where relative whitelist paths are resolved from.
	dir string
}

// Load reads and validates the configuration at path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, failure.Config("could not read config: %v", err)
	}
	f, err := Parse(b, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a configuration. Relative whitelist paths
// are resolved against dir.
func Parse(b []byte, dir string) (*File, error) {
	f := &File{dir: dir}
	if err := yaml.UnmarshalStrict(b, f); err != nil {
		return nil, failure.Config("%v", err)
	}
	for _, k := range barcodeKeys {
		if f.Barcodes[k] == "" {
			return nil, failure.Config("missing barcodes.%s", k)
		}
	}
	for _, k := range spacerKeys {
		if f.Spacers[k] == "" {
			return nil, failure.Config("missing spacers.%s", k)
		}
	}
	if f.UmiLen == nil {
		n := DefaultUmiLen
		f.UmiLen = &n
	}
	if f.Offset == nil {
		n := 0
		f.Offset = &n
	}
	return f, nil
}

// Override replaces the UMI length and offset with command line values.
// Negative values leave the file's setting in place.
func (f *File) Override(umiLen, offset int) {
	if umiLen >= 0 {
		f.UmiLen = &umiLen
	}
	if offset >= 0 {
		f.Offset = &offset
	}
}

// WhitelistPaths returns the four whitelist files in barcode order.
func (f *File) WhitelistPaths() [4]string {
	var ans [4]string
	for i, k := range barcodeKeys {
		ans[i] = f.Barcodes[k]
		if !filepath.IsAbs(ans[i]) {
			ans[i] = filepath.Join(f.dir, ans[i])
		}
	}
	return ans
}

// SpacerSeqs returns s1, s2 and s3.
func (f *File) SpacerSeqs() [3]string {
	var ans [3]string
	for i, k := range spacerKeys {
		ans[i] = f.Spacers[k]
	}
	return ans
}

// Whitelists loads the four whitelists in parallel.
func (f *File) Whitelists(exact bool) ([4]*whitelist.Index, error) {
	var idx [4]*whitelist.Index
	var errs [4]error
	paths := f.WhitelistPaths()
	wg := new(sync.WaitGroup)
	for i := range paths {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx[i], errs[i] = whitelist.Load(paths[i], exact)
		}(i)
	}
	wg.Wait()
	if err := errors.Join(errs[:]...); err != nil {
		return idx, err
	}
	for i := range idx {
		log.Debugf("%s: %d barcodes of length %d, %d neighbors, %d ambiguous neighbors",
			barcodeKeys[i], idx[i].Size(), idx[i].Len(), idx[i].Neighbors(), idx[i].AmbiguousNeighbors())
	}
	return idx, nil
}

// Layout derives the read layout from the spacers, the UMI length and the
// barcode lengths of the loaded whitelists.
func (f *File) Layout(idx [4]*whitelist.Index) (*layout.Layout, error) {
	var lens [4]int
	for i := range idx {
		lens[i] = idx[i].Len()
	}
	return layout.New(layout.Config{
		BarcodeLens: lens,
		Spacers:     f.SpacerSeqs(),
		UmiLen:      *f.UmiLen,
		MaxShift:    *f.Offset,
	})
}

// Build loads everything the configuration names and returns the resolver.
func (f *File) Build(exact bool) (*barcode.Resolver, error) {
	idx, err := f.Whitelists(exact)
	if err != nil {
		return nil, err
	}
	l, err := f.Layout(idx)
	if err != nil {
		return nil, err
	}
	log.Debugf("R1 layout:\n%s", l)
	return barcode.NewResolver(l, idx)
}
