package qbench

import "fmt"

// Params is the full parameter tuple of one benchmark circuit.
// Implementations are comparable value types so they can be used as cache keys.
type Params interface {
	Build() (*Circuit, error)
	String() string
}

// RandomParams describes a circuit built by RandomCircuit.
type RandomParams struct {
	N     int
	Depth int
	Seed  int64
}

func (p RandomParams) Build() (*Circuit, error) { return RandomCircuit(p.N, p.Depth, p.Seed) }

func (p RandomParams) String() string {
	return fmt.Sprintf("random(n=%d,depth=%d,seed=%d)", p.N, p.Depth, p.Seed)
}

// ValueEncodingParams describes a circuit built by ValueEncodingCircuit.
type ValueEncodingParams struct {
	N     int
	Value float64
	Stage Stage
}

func (p ValueEncodingParams) Build() (*Circuit, error) {
	return ValueEncodingCircuit(p.N, p.Value, p.Stage)
}

func (p ValueEncodingParams) String() string {
	return fmt.Sprintf("encode(n=%d,value=%g,stage=%s)", p.N, p.Value, p.Stage)
}

// SingleGateParams describes a circuit built by SingleGateCircuit.
// Gate is kept as given, so "p" and "P" are distinct cache keys that build identical circuits.
type SingleGateParams struct {
	N      int
	Gate   string
	Theta  float64
	Target int
}

func (p SingleGateParams) Build() (*Circuit, error) {
	return SingleGateCircuit(p.N, p.Gate, p.Theta, p.Target)
}

func (p SingleGateParams) String() string {
	return fmt.Sprintf("gate(n=%d,gate=%s,theta=%g,target=%d)", p.N, p.Gate, p.Theta, p.Target)
}
