package qsim

import (
	"math"
	"strings"
	"testing"
)

func TestToQASMOutput(t *testing.T) {
	c := NewCircuit(3)
	c.H(0).CNOT(0, 1).RZ(2, math.Pi/2).SDG(1).CZ(1, 2)

	qasm := c.ToQASM()
	for _, want := range []string{
		"OPENQASM 2.0;",
		"qreg q[3];",
		"h q[0];",
		"cx q[0], q[1];",
		"rz(pi/2) q[2];",
		"sdg q[1];",
		"cz q[1], q[2];",
	} {
		if !strings.Contains(qasm, want) {
			t.Errorf("QASM output missing %q:\n%s", want, qasm)
		}
	}
}

func TestToQASMZeroQubitRoundTrip(t *testing.T) {
	c := NewCircuit(0)
	qasm := c.ToQASM()
	if !strings.Contains(qasm, "qreg q[0];") {
		t.Fatalf("expected qreg q[0] in:\n%s", qasm)
	}

	parsed := NewCircuit(3)
	if err := parsed.ParseQASM(qasm); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if parsed.NumQubits() != 0 {
		t.Fatalf("expected 0 qubits after round trip, got %d", parsed.NumQubits())
	}
}

func TestParseQASMRoundTrip(t *testing.T) {
	orig := NewCircuit(3)
	orig.H(0).X(1).Y(2).Z(0).S(1).T(2).TDG(0).RX(1, math.Pi/4).RY(2, 0.5).RZ(0, -math.Pi).CNOT(0, 2).CZ(1, 0)

	parsed := NewCircuit(0)
	if err := parsed.ParseQASM(orig.ToQASM()); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if parsed.NumQubits() != 3 {
		t.Fatalf("expected 3 qubits, got %d", parsed.NumQubits())
	}
	if parsed.NumGates() != orig.NumGates() {
		t.Fatalf("expected %d gates, got %d", orig.NumGates(), parsed.NumGates())
	}

	wantOps := orig.Operations()
	gotOps := parsed.Operations()
	for i := range wantOps {
		if wantOps[i].Name() != gotOps[i].Name() ||
			wantOps[i].Qubit() != gotOps[i].Qubit() ||
			wantOps[i].Control() != gotOps[i].Control() {
			t.Errorf("op %d: want %s q=%d c=%d, got %s q=%d c=%d", i,
				wantOps[i].Name(), wantOps[i].Qubit(), wantOps[i].Control(),
				gotOps[i].Name(), gotOps[i].Qubit(), gotOps[i].Control())
		}
	}

	// The round-tripped circuit must execute to the same state.
	s1, err := orig.Execute()
	if err != nil {
		t.Fatalf("Execute original: %v", err)
	}
	s2, err := parsed.Execute()
	if err != nil {
		t.Fatalf("Execute parsed: %v", err)
	}
	for i := range s1.Amplitudes() {
		d := s1.Amplitude(i) - s2.Amplitude(i)
		if math.Hypot(real(d), imag(d)) > 1e-9 {
			t.Fatalf("amplitude %d differs: %v vs %v", i, s1.Amplitude(i), s2.Amplitude(i))
		}
	}
}

func TestParseQASMRejectsUnsupported(t *testing.T) {
	cases := []string{
		"ccx q[0], q[1], q[2];",
		"measure q[0] -> c[0];",
		"swap q[0], q[1];",
		"u3(1,2,3) q[0];",
		"reset q[0];",
	}
	for _, line := range cases {
		c := NewCircuit(3)
		c.H(0)
		if err := c.ParseQASM("qreg q[3];\n" + line); err == nil {
			t.Errorf("expected error for %q", line)
		}
		// A failed parse must leave the circuit untouched.
		if c.NumGates() != 1 || c.Operations()[0].Name() != "H" {
			t.Errorf("circuit modified by failed parse of %q", line)
		}
	}
}

func TestParseQASMSkipsHeadersAndComments(t *testing.T) {
	src := `OPENQASM 2.0;
include "qelib1.inc";
// a comment
qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];`

	c := NewCircuit(0)
	if err := c.ParseQASM(src); err != nil {
		t.Fatalf("ParseQASM error: %v", err)
	}
	if c.NumGates() != 2 {
		t.Fatalf("expected 2 gates, got %d", c.NumGates())
	}
}

func TestParseAngle(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.5707", 1.5707},
		{"-0.5", -0.5},
		{"3.14e-2", 0.0314},
		{"pi", math.Pi},
		{"pi/2", math.Pi / 2},
		{"3*pi/4", 3 * math.Pi / 4},
		{"2pi", 2 * math.Pi},
		{"-pi/3", -math.Pi / 3},
	}
	for _, tc := range cases {
		got, ok := ParseAngle(tc.in)
		if !ok {
			t.Errorf("ParseAngle(%q) failed", tc.in)
			continue
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ParseAngle(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if _, ok := ParseAngle("banana"); ok {
		t.Error("expected failure for non-numeric input")
	}
	if _, ok := ParseAngle(""); ok {
		t.Error("expected failure for empty input")
	}
}

func TestFormatAngle(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{math.Pi, "pi"},
		{math.Pi / 2, "pi/2"},
		{-math.Pi / 4, "-pi/4"},
		{3 * math.Pi / 4, "3*pi/4"},
		{2 * math.Pi, "2*pi"},
		{0.125, "0.125"},
	}
	for _, tc := range cases {
		if got := FormatAngle(tc.in); got != tc.want {
			t.Errorf("FormatAngle(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
