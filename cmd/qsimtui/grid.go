package main

import (
	"sort"

	"qsim"
)

// placedGate is a gate pinned to a step column on the editing grid.
type placedGate struct {
	name     string
	step     int
	target   int
	control  int // -1 for single-qubit gates
	theta    float64
	hasTheta bool
}

func (g placedGate) references(qubit int) bool {
	return g.target == qubit || g.control == qubit
}

// grid is the editable circuit: gates placed at (step, qubit) cells. It
// compiles to a qsim.Circuit in step order for simulation and QASM output.
type grid struct {
	numQubits int
	gates     []placedGate
}

func (g *grid) gateAt(step, qubit int) *placedGate {
	for i := range g.gates {
		if g.gates[i].step == step && g.gates[i].references(qubit) {
			return &g.gates[i]
		}
	}
	return nil
}

func (g *grid) removeAt(step, qubit int) {
	kept := g.gates[:0]
	for _, pg := range g.gates {
		if !(pg.step == step && pg.references(qubit)) {
			kept = append(kept, pg)
		}
	}
	g.gates = kept
}

func (g *grid) removeOnQubit(qubit int) {
	kept := g.gates[:0]
	for _, pg := range g.gates {
		if !pg.references(qubit) {
			kept = append(kept, pg)
		}
	}
	g.gates = kept
}

// place drops a gate at its cell, replacing whatever occupied the touched
// qubits at that step.
func (g *grid) place(pg placedGate) {
	g.removeAt(pg.step, pg.target)
	if pg.control >= 0 {
		g.removeAt(pg.step, pg.control)
	}
	g.gates = append(g.gates, pg)
}

func (g *grid) maxStep() int {
	m := -1
	for _, pg := range g.gates {
		if pg.step > m {
			m = pg.step
		}
	}
	return m
}

// compile builds the executable circuit, ordering gates by step (placement
// order breaks ties).
func (g *grid) compile() *qsim.Circuit {
	ordered := make([]placedGate, len(g.gates))
	copy(ordered, g.gates)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].step < ordered[j].step })

	c := qsim.NewCircuit(g.numQubits)
	for _, pg := range ordered {
		switch pg.name {
		case "H":
			c.H(pg.target)
		case "X":
			c.X(pg.target)
		case "Y":
			c.Y(pg.target)
		case "Z":
			c.Z(pg.target)
		case "S":
			c.S(pg.target)
		case "SDG":
			c.SDG(pg.target)
		case "T":
			c.T(pg.target)
		case "TDG":
			c.TDG(pg.target)
		case "RX":
			c.RX(pg.target, pg.theta)
		case "RY":
			c.RY(pg.target, pg.theta)
		case "RZ":
			c.RZ(pg.target, pg.theta)
		case "CX":
			c.CNOT(pg.control, pg.target)
		case "CZ":
			c.CZ(pg.control, pg.target)
		}
	}
	return c
}

// fromQASM rebuilds the grid from QASM text, assigning one step per gate.
func (g *grid) fromQASM(src string) error {
	c := qsim.NewCircuit(g.numQubits)
	if err := c.ParseQASM(src); err != nil {
		return err
	}
	g.numQubits = c.NumQubits()
	g.gates = nil
	for step, op := range c.Operations() {
		pg := placedGate{
			name:    op.Name(),
			step:    step,
			target:  op.Qubit(),
			control: op.Control(),
		}
		if theta, ok := op.Param(); ok {
			pg.theta = theta
			pg.hasTheta = true
		}
		g.gates = append(g.gates, pg)
	}
	return nil
}
