// Package bench drives timed executions of representative circuits (GHZ,
// random, QFT) against the simulator and assembles a JSON-serializable
// report. It consumes the core only through build, execute and readout.
package bench

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/process"
	"gonum.org/v1/gonum/stat"

	"qsim"
)

// Version identifies the report format producer.
const Version = "0.1.0"

// Result is one benchmarked scenario.
type Result struct {
	Name            string  `json:"name"`
	NumQubits       int     `json:"num_qubits"`
	NumGates        int     `json:"num_gates"`
	ExecutionTimeMS float64 `json:"execution_time_ms"`
	TimeStdDevMS    float64 `json:"time_stddev_ms"`
	MemoryUsageMB   float64 `json:"memory_usage_mb"`
	CircuitDepth    int     `json:"circuit_depth"`
}

// Suite is the full benchmark report.
type Suite struct {
	Library     string   `json:"library"`
	Version     string   `json:"version"`
	Results     []Result `json:"results"`
	TotalTimeMS float64  `json:"total_time_ms"`
}

// qftCutoff bounds the qubit count for the QFT scenario; its gate count grows
// quadratically and dominates suite time beyond this.
const qftCutoff = 10

// Runner executes benchmark scenarios with a fixed repetition count and a
// seeded random source, so a given seed reproduces the same random circuits.
type Runner struct {
	log         zerolog.Logger
	proc        *process.Process
	repetitions int
	rng         *rand.Rand
	opts        []qsim.Option
}

// NewRunner creates a Runner. Circuit options (e.g. strict unitarity) are
// forwarded to every circuit the scenarios build.
func NewRunner(log zerolog.Logger, repetitions int, seed uint64, opts ...qsim.Option) *Runner {
	if repetitions < 1 {
		repetitions = 1
	}
	// Process handle for RSS sampling; without it memory deltas read as 0.
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn().Err(err).Msg("process handle unavailable, memory sampling disabled")
		proc = nil
	}
	return &Runner{
		log:         log,
		proc:        proc,
		repetitions: repetitions,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		opts:        opts,
	}
}

// rssMB returns the current resident set size in MiB, or 0 when sampling is
// unavailable.
func (r *Runner) rssMB() float64 {
	if r.proc == nil {
		return 0
	}
	mi, err := r.proc.MemoryInfo()
	if err != nil {
		return 0
	}
	return float64(mi.RSS) / (1024 * 1024)
}

// measure executes the circuit repetitions times and reports mean and stddev
// of the wall-clock execution time plus the RSS delta across the runs.
func (r *Runner) measure(name string, c *qsim.Circuit) (Result, error) {
	times := make([]float64, 0, r.repetitions)
	memBefore := r.rssMB()
	for i := 0; i < r.repetitions; i++ {
		start := time.Now()
		if _, err := c.Execute(); err != nil {
			return Result{}, fmt.Errorf("scenario %s: %w", name, err)
		}
		times = append(times, time.Since(start).Seconds()*1000)
	}
	memAfter := r.rssMB()

	sd := 0.0
	if len(times) > 1 {
		sd = stat.StdDev(times, nil)
	}
	res := Result{
		Name:            name,
		NumQubits:       c.NumQubits(),
		NumGates:        c.NumGates(),
		ExecutionTimeMS: stat.Mean(times, nil),
		TimeStdDevMS:    sd,
		MemoryUsageMB:   memAfter - memBefore,
		CircuitDepth:    c.Depth(),
	}
	r.log.Debug().
		Str("scenario", name).
		Int("gates", res.NumGates).
		Float64("mean_ms", res.ExecutionTimeMS).
		Msg("scenario done")
	return res, nil
}

// GHZ benchmarks the n-qubit GHZ preparation: H on qubit 0, then CNOT(0, k)
// fan-out.
func (r *Runner) GHZ(numQubits int) (Result, error) {
	return r.measure(fmt.Sprintf("GHZ-%d", numQubits), buildGHZ(numQubits, r.opts...))
}

// RandomCircuit benchmarks numGates random single-qubit gates followed by
// numGates/4 random CNOTs.
func (r *Runner) RandomCircuit(numQubits, numGates int) (Result, error) {
	c := buildRandom(numQubits, numGates, r.rng, r.opts...)
	return r.measure(fmt.Sprintf("Random-%d-%d", numQubits, numGates), c)
}

// QFT benchmarks a decomposed quantum Fourier transform.
func (r *Runner) QFT(numQubits int) (Result, error) {
	return r.measure(fmt.Sprintf("QFT-%d", numQubits), buildQFT(numQubits, r.opts...))
}

// Run executes the GHZ and random scenarios for every size, plus QFT for
// sizes up to qftCutoff, and assembles the suite.
func (r *Runner) Run(sizes []int) (*Suite, error) {
	start := time.Now()
	var results []Result

	for _, n := range sizes {
		r.log.Info().Int("qubits", n).Msg("benchmarking")

		res, err := r.GHZ(n)
		if err != nil {
			return nil, err
		}
		results = append(results, res)

		res, err = r.RandomCircuit(n, n*10)
		if err != nil {
			return nil, err
		}
		results = append(results, res)

		if n <= qftCutoff {
			res, err = r.QFT(n)
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
	}

	return &Suite{
		Library:     "qsim",
		Version:     Version,
		Results:     results,
		TotalTimeMS: time.Since(start).Seconds() * 1000,
	}, nil
}

func buildGHZ(numQubits int, opts ...qsim.Option) *qsim.Circuit {
	c := qsim.NewCircuit(numQubits, opts...)
	c.H(0)
	for q := 1; q < numQubits; q++ {
		c.CNOT(0, q)
	}
	return c
}

func buildRandom(numQubits, numGates int, rng *rand.Rand, opts ...qsim.Option) *qsim.Circuit {
	c := qsim.NewCircuit(numQubits, opts...)
	for i := 0; i < numGates; i++ {
		q := rng.IntN(numQubits)
		switch rng.IntN(7) {
		case 0:
			c.H(q)
		case 1:
			c.X(q)
		case 2:
			c.Y(q)
		case 3:
			c.Z(q)
		case 4:
			c.RX(q, rng.Float64()*2*math.Pi)
		case 5:
			c.RY(q, rng.Float64()*2*math.Pi)
		case 6:
			c.RZ(q, rng.Float64()*2*math.Pi)
		}
	}
	for i := 0; i < numGates/4; i++ {
		control := rng.IntN(numQubits)
		target := rng.IntN(numQubits)
		for target == control {
			target = rng.IntN(numQubits)
		}
		c.CNOT(control, target)
	}
	return c
}

func buildQFT(numQubits int, opts ...qsim.Option) *qsim.Circuit {
	c := qsim.NewCircuit(numQubits, opts...)
	for i := 0; i < numQubits; i++ {
		c.H(i)
		for j := i + 1; j < numQubits; j++ {
			angle := math.Pi / float64(int(1)<<(j-i))
			c.RZ(j, angle)
			c.CNOT(j, i)
			c.RZ(j, -angle)
			c.CNOT(j, i)
		}
	}
	return c
}
