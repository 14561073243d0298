package qsim

import (
	"math"
	"math/cmplx"
)

// Matrix is a 2x2 complex gate matrix, indexed [row][column].
// Values are freely copyable; gate factories return them by value.
type Matrix [2][2]complex128

// Identity returns the 2x2 identity matrix.
func Identity() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// PauliX returns the bit-flip (NOT) gate.
func PauliX() Matrix {
	return Matrix{{0, 1}, {1, 0}}
}

// PauliY returns the bit-and-phase-flip gate.
func PauliY() Matrix {
	return Matrix{{0, -1i}, {1i, 0}}
}

// PauliZ returns the phase-flip gate.
func PauliZ() Matrix {
	return Matrix{{1, 0}, {0, -1}}
}

// Hadamard returns the equal-superposition gate with entries ±1/√2.
func Hadamard() Matrix {
	h := complex(1/math.Sqrt2, 0)
	return Matrix{{h, h}, {h, -h}}
}

// SGate returns the S phase gate (quarter turn about Z).
func SGate() Matrix {
	return Matrix{{1, 0}, {0, 1i}}
}

// TGate returns the T phase gate (eighth turn about Z).
func TGate() Matrix {
	return Matrix{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}
}

// RX returns a rotation of theta radians about the X axis.
func RX(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	return Matrix{{c, js}, {js, c}}
}

// RY returns a rotation of theta radians about the Y axis.
func RY(theta float64) Matrix {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return Matrix{{c, -s}, {s, c}}
}

// RZ returns a rotation of theta radians about the Z axis, with diagonal
// entries e^(∓iθ/2).
func RZ(theta float64) Matrix {
	return Matrix{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// IsUnitary reports whether m·m† is the identity within tol, elementwise.
func (m Matrix) IsUnitary(tol float64) bool {
	d := m.Dagger()
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			got := m[i][0]*d[0][j] + m[i][1]*d[1][j]
			want := complex128(0)
			if i == j {
				want = 1
			}
			if cmplx.Abs(got-want) > tol {
				return false
			}
		}
	}
	return true
}
