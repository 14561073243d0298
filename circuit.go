package qsim

type opKind int

const (
	opSingle opKind = iota
	opControlled
)

// Operation is one deferred gate application: either a single-qubit gate or
// a controlled two-qubit gate. The matrix is copied in when the operation is
// appended and never changes afterwards.
type Operation struct {
	kind     opKind
	name     string
	matrix   Matrix
	qubit    int // target
	control  int // -1 for single-qubit operations
	theta    float64
	hasParam bool
}

// Name returns the gate's display name (e.g. "H", "RX", "CX").
func (o Operation) Name() string { return o.name }

// Matrix returns the gate matrix.
func (o Operation) Matrix() Matrix { return o.matrix }

// Qubit returns the target qubit index.
func (o Operation) Qubit() int { return o.qubit }

// Control returns the control qubit index, or -1 for single-qubit gates.
func (o Operation) Control() int { return o.control }

// IsControlled reports whether the operation is a controlled gate.
func (o Operation) IsControlled() bool { return o.kind == opControlled }

// Param returns the rotation angle and whether the gate carries one.
func (o Operation) Param() (float64, bool) { return o.theta, o.hasParam }

// Circuit is an ordered sequence of gate operations over a fixed-size
// register. Building never fails; qubit indices are validated when execution
// reaches the state. A circuit may be executed any number of times, each run
// producing an independent fresh state.
type Circuit struct {
	numQubits     int
	ops           []Operation
	strictUnitary bool
	maxQubits     int
}

// NewCircuit creates an empty circuit for numQubits qubits.
func NewCircuit(numQubits int, opts ...Option) *Circuit {
	c := &Circuit{numQubits: numQubits, maxQubits: MaxQubits}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NumQubits returns the register size the circuit executes against.
func (c *Circuit) NumQubits() int { return c.numQubits }

// NumGates returns the number of appended operations.
func (c *Circuit) NumGates() int { return len(c.ops) }

// Operations returns a copy of the operation sequence.
func (c *Circuit) Operations() []Operation {
	ops := make([]Operation, len(c.ops))
	copy(ops, c.ops)
	return ops
}

func (c *Circuit) appendSingle(name string, m Matrix, qubit int) *Circuit {
	c.ops = append(c.ops, Operation{kind: opSingle, name: name, matrix: m, qubit: qubit, control: -1})
	return c
}

func (c *Circuit) appendRotation(name string, m Matrix, qubit int, theta float64) *Circuit {
	c.ops = append(c.ops, Operation{kind: opSingle, name: name, matrix: m, qubit: qubit, control: -1, theta: theta, hasParam: true})
	return c
}

func (c *Circuit) appendControlled(name string, m Matrix, control, target int) *Circuit {
	c.ops = append(c.ops, Operation{kind: opControlled, name: name, matrix: m, qubit: target, control: control})
	return c
}

// H appends a Hadamard gate.
func (c *Circuit) H(qubit int) *Circuit { return c.appendSingle("H", Hadamard(), qubit) }

// X appends a Pauli-X gate.
func (c *Circuit) X(qubit int) *Circuit { return c.appendSingle("X", PauliX(), qubit) }

// Y appends a Pauli-Y gate.
func (c *Circuit) Y(qubit int) *Circuit { return c.appendSingle("Y", PauliY(), qubit) }

// Z appends a Pauli-Z gate.
func (c *Circuit) Z(qubit int) *Circuit { return c.appendSingle("Z", PauliZ(), qubit) }

// S appends an S phase gate.
func (c *Circuit) S(qubit int) *Circuit { return c.appendSingle("S", SGate(), qubit) }

// SDG appends the adjoint of the S gate.
func (c *Circuit) SDG(qubit int) *Circuit { return c.appendSingle("SDG", SGate().Dagger(), qubit) }

// T appends a T phase gate.
func (c *Circuit) T(qubit int) *Circuit { return c.appendSingle("T", TGate(), qubit) }

// TDG appends the adjoint of the T gate.
func (c *Circuit) TDG(qubit int) *Circuit { return c.appendSingle("TDG", TGate().Dagger(), qubit) }

// RX appends an X-axis rotation of theta radians.
func (c *Circuit) RX(qubit int, theta float64) *Circuit {
	return c.appendRotation("RX", RX(theta), qubit, theta)
}

// RY appends a Y-axis rotation of theta radians.
func (c *Circuit) RY(qubit int, theta float64) *Circuit {
	return c.appendRotation("RY", RY(theta), qubit, theta)
}

// RZ appends a Z-axis rotation of theta radians.
func (c *Circuit) RZ(qubit int, theta float64) *Circuit {
	return c.appendRotation("RZ", RZ(theta), qubit, theta)
}

// CNOT appends a controlled-X gate.
func (c *Circuit) CNOT(control, target int) *Circuit {
	return c.appendControlled("CX", PauliX(), control, target)
}

// CZ appends a controlled-Z gate.
func (c *Circuit) CZ(control, target int) *Circuit {
	return c.appendControlled("CZ", PauliZ(), control, target)
}

// AppendSingle appends a caller-supplied single-qubit gate under the given
// display name.
func (c *Circuit) AppendSingle(name string, m Matrix, qubit int) *Circuit {
	return c.appendSingle(name, m, qubit)
}

// AppendControlled appends a caller-supplied controlled gate under the given
// display name.
func (c *Circuit) AppendControlled(name string, m Matrix, control, target int) *Circuit {
	return c.appendControlled(name, m, control, target)
}

// unitaryTol bounds the accepted deviation of M·M† from identity in strict
// mode.
const unitaryTol = 1e-9

// Execute allocates a fresh state and applies every operation in sequence
// order. It fails fast on the first invalid operation and discards the
// partially applied state.
func (c *Circuit) Execute() (*State, error) {
	if c.strictUnitary {
		if err := c.validateMatrices(); err != nil {
			return nil, err
		}
	}
	state, err := newStateCapped(c.numQubits, c.maxQubits)
	if err != nil {
		return nil, err
	}
	for _, op := range c.ops {
		switch op.kind {
		case opSingle:
			err = state.ApplySingle(op.matrix, op.qubit)
		case opControlled:
			err = state.ApplyControlled(op.matrix, op.control, op.qubit)
		}
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}

// validateMatrices checks each distinct matrix once per execution.
func (c *Circuit) validateMatrices() error {
	seen := make(map[Matrix]bool)
	for _, op := range c.ops {
		if seen[op.matrix] {
			continue
		}
		seen[op.matrix] = true
		if !op.matrix.IsUnitary(unitaryTol) {
			return &MalformedMatrixError{Name: op.name}
		}
	}
	return nil
}

// Depth returns the number of layers when gates are packed greedily: each
// gate lands on the earliest layer where every qubit it touches is free.
func (c *Circuit) Depth() int {
	level := make(map[int]int)
	depth := 0
	for _, op := range c.ops {
		d := level[op.qubit]
		if op.kind == opControlled && level[op.control] > d {
			d = level[op.control]
		}
		d++
		level[op.qubit] = d
		if op.kind == opControlled {
			level[op.control] = d
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}
