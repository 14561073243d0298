package qsim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderChains(t *testing.T) {
	c := NewCircuit(2)
	same := c.H(0).X(1).RZ(0, math.Pi/4).CNOT(0, 1)
	assert.Same(t, c, same)
	assert.Equal(t, 4, c.NumGates())
}

func TestGHZ(t *testing.T) {
	for n := 2; n <= 5; n++ {
		c := NewCircuit(n)
		c.H(0)
		for q := 1; q < n; q++ {
			c.CNOT(0, q)
		}
		s, err := c.Execute()
		require.NoError(t, err)

		all := 1<<n - 1
		assert.InDelta(t, 0.5, s.Probability(0), 1e-9, "n=%d", n)
		assert.InDelta(t, 0.5, s.Probability(all), 1e-9, "n=%d", n)
		for i := 1; i < all; i++ {
			assert.InDelta(t, 0.0, s.Probability(i), 1e-9, "n=%d index=%d", n, i)
		}
	}
}

func TestExecuteTwiceIndependentAndEqual(t *testing.T) {
	c := NewCircuit(3).H(0).RY(1, 0.7).CNOT(0, 2).T(1)

	s1, err := c.Execute()
	require.NoError(t, err)
	s2, err := c.Execute()
	require.NoError(t, err)

	for i := range s1.Amplitudes() {
		assert.InDelta(t, real(s1.Amplitude(i)), real(s2.Amplitude(i)), 1e-12)
		assert.InDelta(t, imag(s1.Amplitude(i)), imag(s2.Amplitude(i)), 1e-12)
	}

	// Scribbling on one result must not leak into the other.
	s1.Amplitudes()[0] = 42
	assert.NotEqual(t, complex128(42), s2.Amplitude(0))
}

func TestExecuteFailsFastOnBadQubit(t *testing.T) {
	c := NewCircuit(3).H(0).CNOT(0, 5).X(1)
	s, err := c.Execute()
	require.Error(t, err)
	assert.Nil(t, s)

	var iqErr *InvalidQubitError
	require.True(t, errors.As(err, &iqErr))
	assert.Equal(t, 5, iqErr.Qubit)
}

func TestExecuteRejectsEqualControlTarget(t *testing.T) {
	c := NewCircuit(2)
	c.CNOT(1, 1)
	_, err := c.Execute()
	var ctErr *ControlTargetError
	require.True(t, errors.As(err, &ctErr))
}

func TestRxRoundTripIsIdentity(t *testing.T) {
	theta := 1.9
	c := NewCircuit(2).H(1).RX(0, theta).RX(0, -theta)
	s, err := c.Execute()
	require.NoError(t, err)

	want, err := NewCircuit(2).H(1).Execute()
	require.NoError(t, err)
	for i := range want.Amplitudes() {
		assert.InDelta(t, real(want.Amplitude(i)), real(s.Amplitude(i)), 1e-9)
		assert.InDelta(t, imag(want.Amplitude(i)), imag(s.Amplitude(i)), 1e-9)
	}
}

func TestRzPreservesMagnitudes(t *testing.T) {
	base := NewCircuit(1).H(0)
	sBefore, err := base.Execute()
	require.NoError(t, err)

	sAfter, err := NewCircuit(1).H(0).RZ(0, 0.923).Execute()
	require.NoError(t, err)

	for i := range sBefore.Amplitudes() {
		assert.InDelta(t, sBefore.Probability(i), sAfter.Probability(i), 1e-12)
	}
}

func TestStrictUnitarityRejectsBadMatrix(t *testing.T) {
	shear := Matrix{{1, 1}, {0, 1}}

	c := NewCircuit(1, WithStrictUnitarity()).AppendSingle("SHEAR", shear, 0)
	_, err := c.Execute()
	var mmErr *MalformedMatrixError
	require.True(t, errors.As(err, &mmErr))
	assert.Equal(t, "SHEAR", mmErr.Name)

	// Without strict mode the matrix is trusted, as the contract says.
	_, err = NewCircuit(1).AppendSingle("SHEAR", shear, 0).Execute()
	require.NoError(t, err)
}

func TestStrictUnitarityAcceptsBuiltinGates(t *testing.T) {
	c := NewCircuit(3, WithStrictUnitarity()).H(0).S(1).RX(2, 0.4).CNOT(0, 2).TDG(1)
	_, err := c.Execute()
	require.NoError(t, err)
}

func TestWithMaxQubitsBoundsExecution(t *testing.T) {
	c := NewCircuit(5, WithMaxQubits(4))
	_, err := c.Execute()
	var capErr *CapacityError
	require.True(t, errors.As(err, &capErr))
	assert.Equal(t, 4, capErr.Max)
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, NewCircuit(3).Depth())
	assert.Equal(t, 1, NewCircuit(3).H(0).H(1).H(2).Depth())
	assert.Equal(t, 2, NewCircuit(3).H(0).H(1).CNOT(0, 1).Depth())
	// GHZ fan-out serializes on the control qubit.
	assert.Equal(t, 4, NewCircuit(4).H(0).CNOT(0, 1).CNOT(0, 2).CNOT(0, 3).Depth())
}

func TestOperationsReturnsCopy(t *testing.T) {
	c := NewCircuit(2).H(0).CNOT(0, 1)
	ops := c.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, "H", ops[0].Name())
	assert.False(t, ops[0].IsControlled())
	assert.Equal(t, -1, ops[0].Control())
	assert.True(t, ops[1].IsControlled())
	assert.Equal(t, 0, ops[1].Control())
	assert.Equal(t, 1, ops[1].Qubit())

	ops[0] = Operation{}
	assert.Equal(t, "H", c.Operations()[0].Name())
}

func TestCZPhaseKickback(t *testing.T) {
	// H on both qubits then CZ flips the sign of |11⟩ only.
	s, err := NewCircuit(2).H(0).H(1).CZ(0, 1).Execute()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, real(s.Amplitude(0)), 1e-9)
	assert.InDelta(t, 0.5, real(s.Amplitude(1)), 1e-9)
	assert.InDelta(t, 0.5, real(s.Amplitude(2)), 1e-9)
	assert.InDelta(t, -0.5, real(s.Amplitude(3)), 1e-9)
}
