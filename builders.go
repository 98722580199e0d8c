package qbench

import (
	"fmt"
	"math"
	"strings"
)

// controlledThreshold is the percentage of raw draws that yield a single-qubit step.
const controlledThreshold = 70

var singleQubitGates = [...]GateKind{GateH, GateX, GateY, GateZ, GateP, GateRX, GateRY, GateRZ}

var controlledGates = [...]GateKind{GateCX, GateCY, GateCZ, GateCP, GateCRX, GateCRY, GateCRZ}

// RandomCircuit returns a pseudo-random circuit of depth operations over n qubits.
// The result is a pure function of (n, depth, seed). Each step consumes draws from an LCG in a
// fixed order: the branch draw, the gate selector, the control (controlled steps only), the target,
// and finally the angle for parametrized gates. Changing that order changes every benchmark circuit.
func RandomCircuit(n, depth int, seed int64) (*Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: random circuit needs at least one qubit, got %d", ErrInvalidArgument, n)
	}
	if depth < 0 {
		return nil, fmt.Errorf("%w: negative depth %d", ErrInvalidArgument, depth)
	}

	c := NewCircuit(n)
	c.Ops = make([]Op, 0, depth)
	rng := NewLCG(seed)

	for step := range depth {
		if rng.Next()%100 < controlledThreshold {
			kind := singleQubitGates[rng.IntN(len(singleQubitGates))]
			target := rng.IntN(n)
			if kind.Parametrized() {
				c.applyAngle(kind, rng.Angle(), target)
			} else {
				c.apply(kind, target)
			}
			continue
		}

		kind := controlledGates[rng.IntN(len(controlledGates))]
		control := rng.IntN(n)
		target := rng.IntN(n)
		if target == control {
			target = (target + 1) % n
		}
		if target == control {
			return nil, fmt.Errorf("%w: step %d: %v needs at least two qubits", ErrInvalidArgument, step, kind)
		}
		var angle float64
		if kind.Parametrized() {
			angle = rng.Angle()
		}
		c.applyControlled(kind, angle, control, target)
	}
	return c, nil
}

// Stage selects how much of the value-encoding circuit is built.
type Stage string

const (
	// StagePartial stops after the phase rotations.
	StagePartial Stage = "partial"
	// StageFull appends the inverse Fourier transform block.
	StageFull Stage = "full"
)

// ParseStage accepts "partial" and "full" in any letter case.
func ParseStage(s string) (Stage, error) {
	switch Stage(strings.ToLower(s)) {
	case StagePartial:
		return StagePartial, nil
	case StageFull:
		return StageFull, nil
	}
	return "", fmt.Errorf("%w: unknown stage %q", ErrInvalidArgument, s)
}

// ValueEncodingCircuit encodes value into the phases of n qubits: a Hadamard on every qubit,
// then P(2π/2^(j+1)·value) on qubit j. With StageFull an inverse Fourier transform block
// (no swaps) over all qubits follows, which turns the phases back into a basis state.
func ValueEncodingCircuit(n int, value float64, stage Stage) (*Circuit, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: value encoding needs at least one qubit, got %d", ErrInvalidArgument, n)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: value %v is not finite", ErrInvalidArgument, value)
	}
	c := NewCircuit(n)
	c.Ops = make([]Op, 0, 2*n+1)
	for j := range n {
		c.apply(GateH, j)
	}
	for j := range n {
		theta := math.Ldexp(2*math.Pi, -(j+1)) * value
		c.applyAngle(GateP, theta, j)
	}
	if stage == StageFull {
		c.applyIQFT()
	}
	return c, nil
}

var singleGateByName = map[string]GateKind{
	"H":  GateH,
	"X":  GateX,
	"Y":  GateY,
	"Z":  GateZ,
	"P":  GateP,
	"RX": GateRX,
	"RY": GateRY,
	"RZ": GateRZ,
}

// SingleGateCircuit returns a circuit over n qubits holding exactly one gate applied to target.
// Gate names are matched case-insensitively; theta is ignored for H, X, Y and Z.
// Unknown names yield an *UnsupportedGateError.
func SingleGateCircuit(n int, gate string, theta float64, target int) (*Circuit, error) {
	kind, ok := singleGateByName[strings.ToUpper(gate)]
	if !ok {
		return nil, &UnsupportedGateError{Name: gate}
	}
	if n < 1 || target < 0 || target >= n {
		return nil, fmt.Errorf("%w: target %d out of range [0,%d)", ErrInvalidArgument, target, n)
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) {
		return nil, fmt.Errorf("%w: angle %v is not finite", ErrInvalidArgument, theta)
	}
	c := NewCircuit(n)
	if kind.Parametrized() {
		c.applyAngle(kind, theta, target)
	} else {
		c.apply(kind, target)
	}
	return c, nil
}
