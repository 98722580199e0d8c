package qbench

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is wrapped by every error caused by a bad caller-supplied parameter.
var ErrInvalidArgument = errors.New("invalid argument")

// UnsupportedGateError is returned by SingleGateCircuit for gate names outside H, X, Y, Z, P, RX, RY, RZ.
type UnsupportedGateError struct {
	Name string
}

func (e *UnsupportedGateError) Error() string {
	return fmt.Sprintf("%v: unsupported gate %q", ErrInvalidArgument, e.Name)
}

func (e *UnsupportedGateError) Unwrap() error { return ErrInvalidArgument }
