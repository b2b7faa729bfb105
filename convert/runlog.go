package convert

import (
	"os"
	"time"

	"github.com/dasnellings/pipTools/report"
	"gopkg.in/yaml.v2"
)

// RunLog is the YAML record of a finished run.
type RunLog struct {
	Parameters Parameters   `yaml:"parameters"`
	FileIO     FileIO       `yaml:"file_io"`
	Statistics Statistics   `yaml:"statistics"`
	Barcodes   report.Stats `yaml:"barcodes"`
	Timing     Timing       `yaml:"timing"`
}

type Parameters struct {
	Offset        int    `yaml:"offset"`
	UmiLen        int    `yaml:"umi_len"`
	ExactMatching bool   `yaml:"exact_matching"`
	Threads       int    `yaml:"threads"`
	Version       string `yaml:"version"`
}

type FileIO struct {
	ReadPathR1    string `yaml:"readpath_r1"`
	ReadPathR2    string `yaml:"readpath_r2"`
	WritePathR1   string `yaml:"writepath_r1"`
	WritePathR2   string `yaml:"writepath_r2"`
	WhitelistPath string `yaml:"whitelist"`
}

type Statistics struct {
	TotalReads       int            `yaml:"total_reads"`
	PassingReads     int            `yaml:"passing_reads"`
	FractionPassing  float64        `yaml:"fraction_passing"`
	CorrectedReads   int            `yaml:"corrected_reads"`
	Filtered         map[string]int `yaml:"filtered"`
	LinkerMismatches map[string]int `yaml:"linker_mismatches"`
}

type Timing struct {
	Timestamp   string  `yaml:"timestamp"`
	ElapsedTime float64 `yaml:"elapsed_time"`
}

// NewRunLog collects the record of a run that started at start.
func NewRunLog(p Parameters, in Inputs, sum Summary, cells *Cells, start time.Time) RunLog {
	out := OutputPaths(in.Prefix)
	rl := RunLog{
		Parameters: p,
		FileIO: FileIO{
			ReadPathR1:    in.R1,
			ReadPathR2:    in.R2,
			WritePathR1:   out.R1,
			WritePathR2:   out.R2,
			WhitelistPath: out.Whitelist,
		},
		Statistics: Statistics{
			TotalReads:       sum.Total,
			PassingReads:     sum.Accepted,
			FractionPassing:  sum.FractionAccepted(),
			CorrectedReads:   sum.Corrected,
			Filtered:         sum.RejectedBy(),
			LinkerMismatches: sum.LinkerMismatchesBy(),
		},
		Timing: Timing{
			Timestamp:   start.Format(time.RFC3339),
			ElapsedTime: time.Since(start).Seconds(),
		},
	}
	if cells != nil {
		rl.Barcodes = report.Summarize(cells.ReadCounts())
	}
	return rl
}

// Write saves the log to path as YAML.
func (rl RunLog) Write(path string) error {
	b, err := yaml.Marshal(rl)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
