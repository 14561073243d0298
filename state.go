// Package qsim simulates an n-qubit register as an explicit vector of 2^n
// complex amplitudes. Gates are 2x2 unitary matrices applied through an
// amplitude-pair update; circuits sequence deferred gate applications and
// execute them against a fresh all-zero state.
//
// Bit k of a basis-state index corresponds to qubit k.
package qsim

import (
	"math"
	"math/cmplx"
	"runtime"
	"sync"
)

// MaxQubits is the default capacity ceiling. 2^30 amplitudes is 16 GiB of
// complex128, which already exceeds most single machines; anything above is
// rejected rather than allowed to wrap the index shift.
const MaxQubits = 30

// parallelThreshold is the vector length below which gate application stays
// on the calling goroutine. Small registers finish in microseconds and the
// fork-join overhead would dominate.
const parallelThreshold = 1 << 14

// State holds the amplitude vector of an n-qubit register. It is exclusively
// owned by its creator; gate applications mutate it in place by swapping in a
// freshly written buffer.
type State struct {
	amplitudes []complex128
	numQubits  int
}

// NewState allocates a 2^n amplitude vector initialized to |0...0⟩.
// Returns a *CapacityError when numQubits is negative or above MaxQubits.
func NewState(numQubits int) (*State, error) {
	return newStateCapped(numQubits, MaxQubits)
}

func newStateCapped(numQubits, maxQubits int) (*State, error) {
	if maxQubits > MaxQubits {
		maxQubits = MaxQubits
	}
	if numQubits < 0 || numQubits > maxQubits {
		return nil, &CapacityError{NumQubits: numQubits, Max: maxQubits}
	}
	amps := make([]complex128, 1<<numQubits)
	amps[0] = 1
	return &State{amplitudes: amps, numQubits: numQubits}, nil
}

// NumQubits returns the register size.
func (s *State) NumQubits() int {
	return s.numQubits
}

// Amplitudes returns the backing amplitude slice for raw read access.
func (s *State) Amplitudes() []complex128 {
	return s.amplitudes
}

// Amplitude returns the amplitude of the given basis state, or 0 when the
// index is out of range.
func (s *State) Amplitude(index int) complex128 {
	if index < 0 || index >= len(s.amplitudes) {
		return 0
	}
	return s.amplitudes[index]
}

// Probability returns |amplitude|² for the given basis state. Out-of-range
// indices yield 0 rather than an error.
func (s *State) Probability(index int) float64 {
	if index < 0 || index >= len(s.amplitudes) {
		return 0
	}
	a := s.amplitudes[index]
	return real(a * cmplx.Conj(a))
}

// Probabilities returns |amplitude|² for every basis state.
func (s *State) Probabilities() []float64 {
	probs := make([]float64, len(s.amplitudes))
	for i, a := range s.amplitudes {
		probs[i] = real(a * cmplx.Conj(a))
	}
	return probs
}

// Norm returns the Euclidean norm of the amplitude vector. It should stay at
// 1 within floating-point drift; nothing renormalizes it.
func (s *State) Norm() float64 {
	sum := 0.0
	for _, a := range s.amplitudes {
		sum += real(a * cmplx.Conj(a))
	}
	return math.Sqrt(sum)
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	amps := make([]complex128, len(s.amplitudes))
	copy(amps, s.amplitudes)
	return &State{amplitudes: amps, numQubits: s.numQubits}
}

// ApplySingle applies a 2x2 gate to the given qubit. For every index i with
// the qubit bit clear and its partner j = i|bit, the pair (i, j) is rewritten
// through the matrix. The pass reads the old buffer and writes a fresh one,
// so no pair update observes a partially written neighbour.
func (s *State) ApplySingle(m Matrix, qubit int) error {
	if qubit < 0 || qubit >= s.numQubits {
		return &InvalidQubitError{Qubit: qubit, NumQubits: s.numQubits}
	}
	prev := s.amplitudes
	next := make([]complex128, len(prev))
	bit := 1 << qubit
	forEachRange(len(prev), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if i&bit == 0 {
				j := i | bit
				a0, a1 := prev[i], prev[j]
				next[i] = m[0][0]*a0 + m[0][1]*a1
				next[j] = m[1][0]*a0 + m[1][1]*a1
			}
		}
	})
	s.amplitudes = next
	return nil
}

// ApplyControlled applies a 2x2 gate to the target qubit on the subspace
// where the control bit is 1; indices with the control bit clear carry over
// unchanged.
func (s *State) ApplyControlled(m Matrix, control, target int) error {
	if control == target {
		return &ControlTargetError{Qubit: control}
	}
	if control < 0 || control >= s.numQubits {
		return &InvalidQubitError{Qubit: control, NumQubits: s.numQubits}
	}
	if target < 0 || target >= s.numQubits {
		return &InvalidQubitError{Qubit: target, NumQubits: s.numQubits}
	}
	prev := s.amplitudes
	next := make([]complex128, len(prev))
	cBit := 1 << control
	tBit := 1 << target
	forEachRange(len(prev), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			switch {
			case i&cBit == 0:
				next[i] = prev[i]
			case i&tBit == 0:
				j := i | tBit
				a0, a1 := prev[i], prev[j]
				next[i] = m[0][0]*a0 + m[0][1]*a1
				next[j] = m[1][0]*a0 + m[1][1]*a1
			}
			// control and target both set: written by the target-clear
			// partner, which shares the control bit.
		}
	})
	s.amplitudes = next
	return nil
}

// forEachRange runs fn over [0, n) split into one contiguous chunk per
// worker. Each pair update writes only slots owned by the worker that holds
// the bit-clear partner, so chunks never contend; the WaitGroup is the
// barrier before the next gate reads the new buffer.
func forEachRange(n int, fn func(lo, hi int)) {
	if n < parallelThreshold {
		fn(0, n)
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// QubitProbability is the marginal measurement distribution of one qubit.
type QubitProbability struct {
	Zero float64
	One  float64
}

// QubitProbabilities returns the marginal 0/1 probability for each qubit.
func (s *State) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.numQubits)
	for i, a := range s.amplitudes {
		p := real(a * cmplx.Conj(a))
		for q := 0; q < s.numQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].One += p
			} else {
				probs[q].Zero += p
			}
		}
	}
	return probs
}

// BasisState summarizes one basis state with non-negligible weight.
type BasisState struct {
	Index       int
	Amplitude   complex128
	Probability float64
	Phase       float64
}

// BasisStates returns every basis state whose probability exceeds
// minProbability, in index order.
func (s *State) BasisStates(minProbability float64) []BasisState {
	var states []BasisState
	for i, a := range s.amplitudes {
		p := real(a * cmplx.Conj(a))
		if p > minProbability {
			states = append(states, BasisState{
				Index:       i,
				Amplitude:   a,
				Probability: p,
				Phase:       cmplx.Phase(a),
			})
		}
	}
	return states
}
