package qbench

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	set3 "github.com/TomTonic/Set3"
	"github.com/vmihailenco/msgpack/v5"
)

// GateKind identifies the operation applied by an Op.
type GateKind uint8

const (
	GateH GateKind = iota
	GateX
	GateY
	GateZ
	GateP
	GateRX
	GateRY
	GateRZ
	GateCX
	GateCY
	GateCZ
	GateCP
	GateCRX
	GateCRY
	GateCRZ
	// GateIQFT is the inverse approximate quantum Fourier transform without the swap network,
	// applied as one composite block.
	GateIQFT
)

// NoQubit marks the absent control of an uncontrolled Op.
const NoQubit = -1

var gateNames = [...]string{
	GateH:    "h",
	GateX:    "x",
	GateY:    "y",
	GateZ:    "z",
	GateP:    "p",
	GateRX:   "rx",
	GateRY:   "ry",
	GateRZ:   "rz",
	GateCX:   "cx",
	GateCY:   "cy",
	GateCZ:   "cz",
	GateCP:   "cp",
	GateCRX:  "crx",
	GateCRY:  "cry",
	GateCRZ:  "crz",
	GateIQFT: "iqft",
}

func (k GateKind) String() string {
	if int(k) < len(gateNames) {
		return gateNames[k]
	}
	return fmt.Sprintf("gate(%d)", uint8(k))
}

// Parametrized reports whether the gate takes an angle.
func (k GateKind) Parametrized() bool {
	switch k {
	case GateP, GateRX, GateRY, GateRZ, GateCP, GateCRX, GateCRY, GateCRZ:
		return true
	}
	return false
}

// Controlled reports whether the gate acts on a control and a target qubit.
func (k GateKind) Controlled() bool {
	return k >= GateCX && k <= GateCRZ
}

// Op is a single operation of a circuit description.
type Op struct {
	Kind    GateKind
	Target  int
	Control int     // NoQubit for uncontrolled operations
	Angle   float64 // only meaningful for parametrized kinds
	Span    int     // qubits [0, Span) covered by a composite block, 0 otherwise
}

// Qubits returns the qubit indices the operation acts on, control first.
func (o Op) Qubits() []int {
	switch {
	case o.Kind == GateIQFT:
		qs := make([]int, o.Span)
		for i := range qs {
			qs[i] = i
		}
		return qs
	case o.Kind.Controlled():
		return []int{o.Control, o.Target}
	default:
		return []int{o.Target}
	}
}

func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Kind.String())
	if o.Kind.Parametrized() {
		fmt.Fprintf(&sb, "(%.17g)", o.Angle)
	}
	for i, q := range o.Qubits() {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "q[%d]", q)
	}
	return sb.String()
}

// Circuit is an ordered sequence of operations over NumQubits qubits.
type Circuit struct {
	NumQubits int
	Ops       []Op
}

// NewCircuit returns an empty circuit over n qubits.
func NewCircuit(n int) *Circuit {
	return &Circuit{NumQubits: n}
}

// Len returns the number of operations.
func (c *Circuit) Len() int { return len(c.Ops) }

func (c *Circuit) apply(kind GateKind, target int) {
	c.Ops = append(c.Ops, Op{Kind: kind, Target: target, Control: NoQubit})
}

func (c *Circuit) applyAngle(kind GateKind, angle float64, target int) {
	c.Ops = append(c.Ops, Op{Kind: kind, Target: target, Control: NoQubit, Angle: angle})
}

func (c *Circuit) applyControlled(kind GateKind, angle float64, control, target int) {
	c.Ops = append(c.Ops, Op{Kind: kind, Target: target, Control: control, Angle: angle})
}

func (c *Circuit) applyIQFT() {
	c.Ops = append(c.Ops, Op{Kind: GateIQFT, Target: 0, Control: NoQubit, Span: c.NumQubits})
}

// Validate checks that every qubit index lies in [0, NumQubits) and that no controlled
// operation uses the same qubit as control and target.
func (c *Circuit) Validate() error {
	if c.NumQubits < 1 {
		return fmt.Errorf("%w: circuit needs at least one qubit, got %d", ErrInvalidArgument, c.NumQubits)
	}
	for i, op := range c.Ops {
		if op.Kind == GateIQFT {
			if op.Span < 1 || op.Span > c.NumQubits {
				return fmt.Errorf("%w: op %d: block spans %d of %d qubits", ErrInvalidArgument, i, op.Span, c.NumQubits)
			}
			continue
		}
		if op.Target < 0 || op.Target >= c.NumQubits {
			return fmt.Errorf("%w: op %d: target %d out of range [0,%d)", ErrInvalidArgument, i, op.Target, c.NumQubits)
		}
		if !op.Kind.Controlled() {
			continue
		}
		if op.Control < 0 || op.Control >= c.NumQubits {
			return fmt.Errorf("%w: op %d: control %d out of range [0,%d)", ErrInvalidArgument, i, op.Control, c.NumQubits)
		}
		if op.Control == op.Target {
			return fmt.Errorf("%w: op %d: control and target are both %d", ErrInvalidArgument, i, op.Target)
		}
	}
	return nil
}

// ActiveQubits returns the number of distinct qubits touched by at least one operation.
func (c *Circuit) ActiveQubits() uint32 {
	seen := set3.EmptyWithCapacity[int](uint32(max(c.NumQubits, 1)))
	for _, op := range c.Ops {
		for _, q := range op.Qubits() {
			seen.Add(q)
		}
	}
	return seen.Size()
}

// GateOp is the serialized form of an Op as understood by simulator services.
type GateOp struct {
	Name   string    `json:"name" msgpack:"name" yaml:"name"`
	Qubits []int     `json:"qubits" msgpack:"qubits" yaml:"qubits"`
	Params []float64 `json:"params,omitempty" msgpack:"params,omitempty" yaml:"params,omitempty"`
}

// CircuitDoc is the serialized form of a Circuit.
type CircuitDoc struct {
	NumQubits int      `json:"num_qubits" msgpack:"num_qubits" yaml:"num_qubits"`
	Gates     []GateOp `json:"gates" msgpack:"gates" yaml:"gates"`
}

// Doc converts the circuit into its serialized form.
func (c *Circuit) Doc() CircuitDoc {
	doc := CircuitDoc{NumQubits: c.NumQubits, Gates: make([]GateOp, 0, len(c.Ops))}
	for _, op := range c.Ops {
		g := GateOp{Name: op.Kind.String(), Qubits: op.Qubits()}
		if op.Kind.Parametrized() {
			g.Params = []float64{op.Angle}
		}
		doc.Gates = append(doc.Gates, g)
	}
	return doc
}

// Fingerprint returns a hex SHA-256 digest over the msgpack encoding of the circuit.
// Equal circuits have equal fingerprints.
func (c *Circuit) Fingerprint() (string, error) {
	b, err := msgpack.Marshal(c.Doc())
	if err != nil {
		return "", fmt.Errorf("encode circuit: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
