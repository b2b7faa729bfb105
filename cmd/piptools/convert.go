package main

import (
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/dasnellings/pipTools/config"
	"github.com/dasnellings/pipTools/convert"
	"github.com/dasnellings/pipTools/report"
	log "github.com/sirupsen/logrus"
	"github.com/vertgenlab/gonomics/exception"
)

func convertUsage(convertFlags *flag.FlagSet) {
	fmt.Print(
		"convert - Correct cell barcodes against the whitelists and rewrite read pairs to the 10x layout\n\n" +
			"Usage:\n" +
			"  piptools convert [options] -c config.yaml -1 r1.fq.gz -2 r2.fq.gz -p prefix\n\n" +
			"Writes prefix_R1.fq.gz, prefix_R2.fq.gz and prefix_whitelist.txt\n\n" +
			"Options:\n")
	convertFlags.PrintDefaults()
}

func runConvert(args []string) {
	var err error
	convertFlags := flag.NewFlagSet("convert", flag.ExitOnError)

	r1 := convertFlags.String("1", "", "FASTQ file containing R1 reads (barcodes and UMI). May be gzipped.")
	r2 := convertFlags.String("2", "", "FASTQ file containing R2 reads (cDNA). May be gzipped.")
	prefix := convertFlags.String("p", "./output", "Prefix for output files.")
	configFile := convertFlags.String("c", "", "YAML config naming the four whitelists and three spacers.")
	umiLen := convertFlags.Int("u", -1, "UMI length. Overrides umi_len in the config (default 12).")
	offset := convertFlags.Int("s", -1, "Max bases barcode 1 may be shifted into R1. Overrides offset in the config (default 0).")
	exact := convertFlags.Bool("exact", false, "Only accept barcodes that exactly match a whitelist entry.")
	threads := convertFlags.Int("t", runtime.NumCPU(), "Number of threads used to correct reads.")
	progress := convertFlags.Int("progress", 1000000, "Log progress every this many read pairs. 0 to disable.")
	counts := convertFlags.Bool("counts", false, "Also write prefix_barcode_counts.tsv with reads per barcode.")
	logFile := convertFlags.String("log", "", "Write a YAML run log to this file.")
	rankPlot := convertFlags.String("rankPlot", "", "Save a barcode rank plot to this file (.png, .pdf, .svg).")
	plotTerm := convertFlags.Bool("plot", false, "Print a barcode rank plot to the terminal.")
	strictNames := convertFlags.Bool("strictNames", false, "Require R1 and R2 read names to match.")
	verbose := convertFlags.Bool("v", false, "Verbose logging.")

	err = convertFlags.Parse(args)
	exception.PanicOnErr(err)
	convertFlags.Usage = func() { convertUsage(convertFlags) }

	if *r1 == "" || *r2 == "" || *configFile == "" {
		convertFlags.Usage()
		errExit("\nERROR: must have inputs for -1, -2 and -c")
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	start := time.Now()
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	cfg.Override(*umiLen, *offset)
	res, err := cfg.Build(*exact)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}

	in := convert.Inputs{R1: *r1, R2: *r2, Prefix: *prefix, Counts: *counts}
	opt := convert.Options{Threads: *threads, Progress: *progress, StrictNames: *strictNames}
	log.Printf("Converting %s and %s on %d threads", *r1, *r2, *threads)
	sum, cells, err := convert.Files(res, in, opt)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	sum.Log()
	log.Printf("Distinct barcodes: %d", cells.Len())
	log.Printf("Finished in %s", time.Since(start).Round(time.Millisecond))

	if *logFile != "" {
		rl := convert.NewRunLog(convert.Parameters{
			Offset:        res.Layout().MaxShift(),
			UmiLen:        res.Layout().UmiLen(),
			ExactMatching: *exact,
			Threads:       *threads,
			Version:       version,
		}, in, sum, cells, start)
		exception.PanicOnErr(rl.Write(*logFile))
	}

	readCounts := cells.ReadCounts()
	if *rankPlot != "" {
		if err = report.RankPlot(readCounts, *rankPlot); err != nil {
			log.Warnf("could not draw rank plot: %v", err)
		}
	}
	if *plotTerm && len(readCounts) > 0 {
		fmt.Println(report.ASCIIRank(readCounts, 70, 12))
		fmt.Println(report.Summarize(readCounts))
	}
}
