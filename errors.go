package qsim

import "fmt"

// CapacityError is returned when a requested qubit count would need more
// amplitude slots than the configured ceiling allows.
type CapacityError struct {
	NumQubits int
	Max       int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot allocate state for %d qubits (limit %d)", e.NumQubits, e.Max)
}

// InvalidQubitError is returned when a gate references a qubit index outside
// the register.
type InvalidQubitError struct {
	Qubit     int
	NumQubits int
}

func (e *InvalidQubitError) Error() string {
	return fmt.Sprintf("qubit index %d out of range for %d-qubit state", e.Qubit, e.NumQubits)
}

// ControlTargetError is returned when a controlled gate uses the same qubit
// as both control and target.
type ControlTargetError struct {
	Qubit int
}

func (e *ControlTargetError) Error() string {
	return fmt.Sprintf("control and target both reference qubit %d", e.Qubit)
}

// MalformedMatrixError is returned by strict-mode execution when a gate
// matrix fails the unitarity check.
type MalformedMatrixError struct {
	Name string
}

func (e *MalformedMatrixError) Error() string {
	return fmt.Sprintf("gate %q is not unitary", e.Name)
}
