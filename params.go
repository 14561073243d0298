package qsim

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// paramPattern matches a rotation angle in QASM text: a plain (possibly
// scientific-notation) number or a pi expression like pi/2 or 3*pi/4.
const paramPattern = `-?(?:\d*\.?\d*\*?pi(?:/\d+\.?\d*)?|\d+\.?\d*(?:[eE][+\-]?\d+)?)`

var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseAngle parses a rotation angle, accepting plain floats ("1.5707",
// "-0.5", "3.14e-2") and pi expressions ("pi", "pi/2", "3*pi/4", "-2pi/3").
func ParseAngle(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	coeff := 1.0
	if m[2] != "" {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		coeff = v
	}
	val := coeff * math.Pi
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		val /= denom
	}
	if m[1] == "-" {
		val = -val
	}
	return val, true
}

// piFractions lists the numerator/denominator pairs FormatAngle recognizes.
var piFractions = [][2]int{
	{2, 1}, {1, 1}, {1, 2}, {1, 3}, {1, 4}, {1, 6}, {1, 8},
	{3, 4}, {3, 2}, {2, 3},
}

// FormatAngle renders an angle using pi notation when it matches a common
// fraction, falling back to %g.
func FormatAngle(val float64) string {
	for _, f := range piFractions {
		frac := float64(f[0]) * math.Pi / float64(f[1])
		for _, sign := range []float64{1, -1} {
			if math.Abs(val-sign*frac) > 1e-10 {
				continue
			}
			s := "pi"
			if f[0] != 1 {
				s = fmt.Sprintf("%d*pi", f[0])
			}
			if f[1] != 1 {
				s += fmt.Sprintf("/%d", f[1])
			}
			if sign < 0 {
				s = "-" + s
			}
			return s
		}
	}
	return fmt.Sprintf("%g", val)
}
