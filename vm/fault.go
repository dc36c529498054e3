package vm

import (
	"errors"
	"fmt"
)

// Errors returned by the interpreter. Only these stop a program.
var (
	ErrMalformedProgram = errors.New("malformed program")
	ErrDepthExceeded    = errors.New("evaluation depth exceeded")
)

// Errors carried by faults.
var (
	ErrNotFound        = errors.New("not found")
	ErrNoHostAncestor  = errors.New("no host-bridged ancestor")
	ErrReceiverType    = errors.New("native object does not implement member")
	ErrNotCallable     = errors.New("value is not callable")
	ErrNoInterpreter   = errors.New("no interpreter bound")
	ErrMissingArgument = errors.New("missing argument")
	ErrNativePanic     = errors.New("native code panicked")
)

// FaultKind classifies failures that are recovered locally.
type FaultKind int

const (
	// FaultLookupMiss: a class or property was not found anywhere on the
	// superclass chain. The lookup yields nil.
	FaultLookupMiss FaultKind = iota + 1
	// FaultNativeInvocation: host code returned an error or panicked.
	// The call yields nil.
	FaultNativeInvocation
)

func (k FaultKind) String() string {
	switch k {
	case FaultLookupMiss:
		return "lookup-miss"
	case FaultNativeInvocation:
		return "native-invocation"
	}
	return fmt.Sprintf("FaultKind(%d)", int(k))
}

// Fault records a failure that did not stop execution.
type Fault struct {
	Kind FaultKind
	Site string // opcode mnemonic or object-model operation
	Name string // property, member or class involved
	Err  error
}

func (f Fault) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s at %s: %s", f.Kind, f.Site, f.Name)
	}
	return fmt.Sprintf("%s at %s: %s: %v", f.Kind, f.Site, f.Name, f.Err)
}

func (f Fault) Unwrap() error {
	return f.Err
}

// malformed builds an ErrMalformedProgram error for op.
func malformed(op fmt.Stringer, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedProgram, op, fmt.Sprintf(format, args...))
}
