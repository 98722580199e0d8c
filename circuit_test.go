package qbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateKind(t *testing.T) {
	assert.Equal(t, "crz", GateCRZ.String())
	assert.Equal(t, "iqft", GateIQFT.String())
	assert.Equal(t, "gate(200)", GateKind(200).String())

	for _, k := range []GateKind{GateP, GateRX, GateRY, GateRZ, GateCP, GateCRX, GateCRY, GateCRZ} {
		assert.True(t, k.Parametrized(), k.String())
	}
	for _, k := range []GateKind{GateH, GateX, GateY, GateZ, GateCX, GateCY, GateCZ, GateIQFT} {
		assert.False(t, k.Parametrized(), k.String())
	}
	for _, k := range controlledGates {
		assert.True(t, k.Controlled(), k.String())
	}
	for _, k := range singleQubitGates {
		assert.False(t, k.Controlled(), k.String())
	}
	assert.False(t, GateIQFT.Controlled())
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "h q[2]", Op{Kind: GateH, Target: 2, Control: NoQubit}.String())
	assert.Equal(t, "cp(0.5) q[0],q[3]", Op{Kind: GateCP, Control: 0, Target: 3, Angle: 0.5}.String())
	assert.Equal(t, "iqft q[0],q[1],q[2]", Op{Kind: GateIQFT, Control: NoQubit, Span: 3}.String())
}

func TestCircuit_Validate(t *testing.T) {
	testCases := []struct {
		name  string
		c     Circuit
		valid bool
	}{
		{"empty", Circuit{NumQubits: 2}, true},
		{"no qubits", Circuit{NumQubits: 0}, false},
		{"single ok", Circuit{NumQubits: 2, Ops: []Op{{Kind: GateX, Target: 1, Control: NoQubit}}}, true},
		{"target too high", Circuit{NumQubits: 2, Ops: []Op{{Kind: GateX, Target: 2, Control: NoQubit}}}, false},
		{"negative target", Circuit{NumQubits: 2, Ops: []Op{{Kind: GateX, Target: -1, Control: NoQubit}}}, false},
		{"controlled ok", Circuit{NumQubits: 2, Ops: []Op{{Kind: GateCX, Control: 0, Target: 1}}}, true},
		{"control equals target", Circuit{NumQubits: 2, Ops: []Op{{Kind: GateCX, Control: 1, Target: 1}}}, false},
		{"control out of range", Circuit{NumQubits: 2, Ops: []Op{{Kind: GateCZ, Control: 5, Target: 1}}}, false},
		{"block ok", Circuit{NumQubits: 3, Ops: []Op{{Kind: GateIQFT, Control: NoQubit, Span: 3}}}, true},
		{"block too wide", Circuit{NumQubits: 3, Ops: []Op{{Kind: GateIQFT, Control: NoQubit, Span: 4}}}, false},
		{"empty block", Circuit{NumQubits: 3, Ops: []Op{{Kind: GateIQFT, Control: NoQubit}}}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.c.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestCircuit_ActiveQubits(t *testing.T) {
	c, err := SingleGateCircuit(5, "H", 0, 3)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), c.ActiveQubits())

	c, err = ValueEncodingCircuit(4, 1, StagePartial)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), c.ActiveQubits())

	assert.Equal(t, uint32(0), NewCircuit(3).ActiveQubits())
}

func TestCircuit_Doc(t *testing.T) {
	c, err := ValueEncodingCircuit(2, 1, StageFull)
	require.NoError(t, err)
	doc := c.Doc()

	assert.Equal(t, 2, doc.NumQubits)
	require.Len(t, doc.Gates, 5)
	assert.Equal(t, GateOp{Name: "h", Qubits: []int{0}}, doc.Gates[0])
	assert.Equal(t, GateOp{Name: "p", Qubits: []int{1}, Params: []float64{c.Ops[3].Angle}}, doc.Gates[3])
	assert.Equal(t, GateOp{Name: "iqft", Qubits: []int{0, 1}}, doc.Gates[4])
}

func TestCircuit_Fingerprint(t *testing.T) {
	a, err := RandomCircuit(4, 50, 99)
	require.NoError(t, err)
	b, err := RandomCircuit(4, 50, 99)
	require.NoError(t, err)
	c, err := RandomCircuit(4, 50, 100)
	require.NoError(t, err)

	fa, err := a.Fingerprint()
	require.NoError(t, err)
	fb, err := b.Fingerprint()
	require.NoError(t, err)
	fc, err := c.Fingerprint()
	require.NoError(t, err)

	assert.Len(t, fa, 64)
	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
}
