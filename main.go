//go:build !lambda

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
)

const usage = `Usage: hashcode-solver [flags] <input>

Positional arguments:
  input   Problem file (format A, format B, or their .json layouts).
          The solution is written to <input>.result.

Flags:
`

func run(path string, kind ProblemKind, cfg Config, jsonOut bool) error {
	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	in, err := LoadInput(path, kind)
	if err != nil {
		return err
	}
	out, report, err := solve(in, cfg, log)
	if err != nil {
		return err
	}
	report.Input = path

	resultPath := path + ".result"
	if err := os.WriteFile(resultPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", resultPath, err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	fmt.Print(printReport(report))
	return nil
}

func main() {
	problem := flag.String("problem", "", "Problem kind: selection or assignment (default: detect)")
	configPath := flag.String("config", "", "Path to a YAML tuning file")
	jsonOut := flag.Bool("json", false, "Print the run summary as JSON")
	verbose := flag.Bool("verbose", false, "Log every accepted move and plan decision")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	kind := ProblemUnknown
	if *problem != "" {
		if kind = parseProblemKind(*problem); kind == ProblemUnknown {
			fmt.Fprintf(os.Stderr, "error: invalid problem %q\n", *problem)
			os.Exit(1)
		}
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	if err := run(args[0], kind, cfg, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
