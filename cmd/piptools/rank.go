package main

import (
	"flag"
	"fmt"

	"github.com/dasnellings/pipTools/report"
	"github.com/vertgenlab/gonomics/exception"
)

func rankUsage(rankFlags *flag.FlagSet) {
	fmt.Print(
		"rank - Plot reads per barcode from a barcode counts file written by convert -counts\n\n" +
			"Usage:\n" +
			"  piptools rank [options] -i prefix_barcode_counts.tsv\n\n" +
			"Options:\n")
	rankFlags.PrintDefaults()
}

func runRank(args []string) {
	var err error
	rankFlags := flag.NewFlagSet("rank", flag.ExitOnError)

	input := rankFlags.String("i", "", "Barcode counts file (barcode<TAB>reads).")
	output := rankFlags.String("o", "", "Save the rank plot to this file (.png, .pdf, .svg).")
	width := rankFlags.Int("width", 70, "Width of the terminal plot.")
	height := rankFlags.Int("height", 12, "Height of the terminal plot.")

	err = rankFlags.Parse(args)
	exception.PanicOnErr(err)
	rankFlags.Usage = func() { rankUsage(rankFlags) }

	if *input == "" {
		rankFlags.Usage()
		errExit("\nERROR: must have input for -i")
	}

	counts, err := report.ReadCounts(*input)
	if err != nil {
		errExit(err.Error())
	}
	if len(counts) == 0 {
		errExit("ERROR: no barcodes in " + *input)
	}

	fmt.Println(report.ASCIIRank(counts, *width, *height))
	fmt.Println(report.Summarize(counts))
	if *output != "" {
		exception.PanicOnErr(report.RankPlot(counts, *output))
	}
}
