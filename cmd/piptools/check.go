package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dasnellings/pipTools/config"
	"github.com/vertgenlab/gonomics/exception"
)

func checkUsage(checkFlags *flag.FlagSet) {
	fmt.Print(
		"check - Validate a config, load its whitelists and report barcode statistics\n\n" +
			"Usage:\n" +
			"  piptools check [options] -c config.yaml\n\n" +
			"Options:\n")
	checkFlags.PrintDefaults()
}

func runCheck(args []string) {
	var err error
	checkFlags := flag.NewFlagSet("check", flag.ExitOnError)

	configFile := checkFlags.String("c", "", "YAML config naming the four whitelists and three spacers.")
	umiLen := checkFlags.Int("u", -1, "UMI length. Overrides umi_len in the config.")
	offset := checkFlags.Int("s", -1, "Barcode 1 offset. Overrides offset in the config.")
	maxDist := checkFlags.Int("d", 2, "Report whitelist pairs within this Hamming distance.")

	err = checkFlags.Parse(args)
	exception.PanicOnErr(err)
	checkFlags.Usage = func() { checkUsage(checkFlags) }

	if *configFile == "" {
		checkFlags.Usage()
		errExit("\nERROR: must have input for -c")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		errExit(err.Error())
	}
	cfg.Override(*umiLen, *offset)
	res, err := cfg.Build(false)
	if err != nil {
		errExit(err.Error())
	}

	paths := cfg.WhitelistPaths()
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "whitelist\tfile\tbarcodes\tlength\tneighbors\tambiguous\tmin distance\tpairs within distance")
	for i := range paths {
		idx := res.Index(i)
		fmt.Fprintf(w, "bc%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n", i+1, paths[i], idx.Size(), idx.Len(),
			idx.Neighbors(), idx.AmbiguousNeighbors(), idx.MinDistance(), len(idx.Collisions(*maxDist)))
	}
	exception.PanicOnErr(w.Flush())

	for i := range paths {
		for _, c := range res.Index(i).Collisions(*maxDist) {
			fmt.Printf("bc%d\t%s\t%s\t%d\n", i+1, c.A, c.B, c.Distance)
		}
	}

	fmt.Printf("\nR1 layout:\n%s", res.Layout())
}
