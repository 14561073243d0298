package qsim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
)

// ToQASM renders the circuit as OPENQASM 2.0 text. Only the gate set the
// engine executes is emitted: h, x, y, z, s, sdg, t, tdg, rx, ry, rz, cx, cz.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", c.numQubits)

	for _, op := range c.ops {
		name := strings.ToLower(op.name)
		switch {
		case op.kind == opControlled:
			fmt.Fprintf(&sb, "%s q[%d], q[%d];\n", name, op.control, op.qubit)
		case op.hasParam:
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", name, FormatAngle(op.theta), op.qubit)
		default:
			fmt.Fprintf(&sb, "%s q[%d];\n", name, op.qubit)
		}
	}
	return sb.String()
}

// ParseQASM replaces the circuit's operations with the gates parsed from the
// given QASM text. A qreg declaration resets the qubit count. Statements
// outside the supported gate set are rejected; on error the circuit is left
// unchanged.
func (c *Circuit) ParseQASM(src string) error {
	numQubits := c.numQubits
	scratch := &Circuit{numQubits: numQubits, maxQubits: c.maxQubits}

	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "", strings.HasPrefix(line, "//"):
			continue
		case strings.HasPrefix(line, "OPENQASM"), strings.HasPrefix(line, "include"):
			continue
		case strings.HasPrefix(line, "creg"):
			continue
		case strings.HasPrefix(line, "qreg"):
			if m := qregRegex.FindStringSubmatch(line); m != nil {
				n, _ := strconv.Atoi(m[2])
				numQubits = n
			}
			continue
		}

		if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			control, _ := strconv.Atoi(m[2])
			target, _ := strconv.Atoi(m[3])
			switch name {
			case "CX":
				scratch.CNOT(control, target)
			case "CZ":
				scratch.CZ(control, target)
			default:
				return fmt.Errorf("unsupported two-qubit gate %q", m[1])
			}
			continue
		}

		if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			theta, ok := ParseAngle(m[2])
			if !ok {
				return fmt.Errorf("invalid parameter %q in %q", m[2], line)
			}
			target, _ := strconv.Atoi(m[3])
			switch name {
			case "RX":
				scratch.RX(target, theta)
			case "RY":
				scratch.RY(target, theta)
			case "RZ":
				scratch.RZ(target, theta)
			default:
				return fmt.Errorf("unsupported parameterized gate %q", m[1])
			}
			continue
		}

		if m := singleGateRegex.FindStringSubmatch(line); m != nil {
			name := strings.ToUpper(m[1])
			target, _ := strconv.Atoi(m[2])
			switch name {
			case "H":
				scratch.H(target)
			case "X":
				scratch.X(target)
			case "Y":
				scratch.Y(target)
			case "Z":
				scratch.Z(target)
			case "S":
				scratch.S(target)
			case "SDG":
				scratch.SDG(target)
			case "T":
				scratch.T(target)
			case "TDG":
				scratch.TDG(target)
			default:
				return fmt.Errorf("unsupported gate %q", m[1])
			}
			continue
		}

		return fmt.Errorf("unsupported QASM statement: %q", line)
	}

	c.numQubits = numQubits
	c.ops = scratch.ops
	return nil
}
