package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

const version string = "0.1.0"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands lists the piptools commands in the order usage prints them.
var SubCommands = []*subcommand{
	{"convert", runConvert, "correct barcodes and rewrite reads to the 10x layout"},
	{"check", runCheck, "validate a config and report whitelist statistics"},
	{"rank", runRank, "plot reads per barcode from a barcode counts file"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: piptools (barcode correction for PIPseq single-cell reads)\n" +
			"Version: " + version + " (gonomics " + gonomicsVersion + ")\n" +
			"\nUsage:\tpiptools <command> [options]\n" +
			"\tpiptools <command> -h for command options\n\n" +
			"Commands:\n")

	// tabwriter keeps the blurbs in one column
	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for _, c := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", c.name, c.blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap indexes SubCommands by name.
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string), len(SubCommands))
	for _, c := range SubCommands {
		m[c.name] = c.function
	}
	return m
}

func main() {
	showVersion := flag.Bool("version", false, "Print the version and exit.")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("piptools %s (gonomics %s)\n", version, gonomicsVersion)
		return
	}

	// no command given: print usage and exit cleanly
	if flag.NArg() == 0 {
		flag.Usage()
		return
	}

	// the first argument names the command, everything after it is its flags
	command, found := commandMap()[flag.Arg(0)]
	if !found {
		flag.Usage()
		errExit(fmt.Sprintf("\nERROR: unknown command %q", flag.Arg(0)))
	}
	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
