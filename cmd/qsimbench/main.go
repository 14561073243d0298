// qsimbench runs the benchmark suite and writes a JSON report to stdout or
// a file. Progress goes to stderr.
package main

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"qsim"
	"qsim/bench"
)

func main() {
	var (
		sizesFlag = flag.String("sizes", "4,6,8,10,12", "comma-separated qubit counts")
		maxQubits = flag.Int("max-qubits", 14, "skip sizes above this bound")
		reps      = flag.Int("reps", 3, "timed repetitions per scenario")
		seed      = flag.Uint64("seed", 42, "seed for random circuit generation")
		strict    = flag.Bool("strict", false, "validate gate unitarity before execution")
		out       = flag.String("out", "", "write the JSON report to this file instead of stdout")
		pretty    = flag.Bool("pretty", true, "indent the JSON report")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	sizes, err := parseSizes(*sizesFlag, *maxQubits, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid -sizes")
	}
	if len(sizes) == 0 {
		log.Fatal().Msg("no qubit sizes left to benchmark")
	}

	var opts []qsim.Option
	if *strict {
		opts = append(opts, qsim.WithStrictUnitarity())
	}

	runner := bench.NewRunner(log, *reps, *seed, opts...)
	suite, err := runner.Run(sizes)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot create report file")
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(suite); err != nil {
		log.Fatal().Err(err).Msg("cannot write report")
	}

	log.Info().
		Int("results", len(suite.Results)).
		Float64("total_ms", suite.TotalTimeMS).
		Msg("benchmarks completed")
}

// parseSizes parses the size list and drops entries above the bound. Bounding
// happens here, before any state is allocated.
func parseSizes(s string, maxQubits int, log zerolog.Logger) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if n > maxQubits {
			log.Warn().Int("qubits", n).Int("max", maxQubits).Msg("skipping size above bound")
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
