package vm

import (
	"fmt"

	"github.com/chazu/flashvm/abc"
)

// Callable is implemented by values host code can call back into.
type Callable interface {
	Call(args []Value) (Value, error)
}

// Function is a member bound to a receiver: either a host member invoked
// against the receiver's native object, or a script method executed with the
// receiver as this.
type Function struct {
	Impl Value // *HostMember or *abc.Method
	This ScriptObject

	interp *Interpreter
}

// NewFunction binds impl to this.
func NewFunction(impl Value, this ScriptObject, interp *Interpreter) *Function {
	return &Function{Impl: impl, This: this, interp: interp}
}

// Name returns the member or method name.
func (f *Function) Name() string {
	switch impl := f.Impl.(type) {
	case *HostMember:
		return impl.Name
	case *abc.Method:
		if impl != nil {
			return impl.Name
		}
	}
	return ""
}

// Call invokes the function. Script methods ignore args: the engine has no
// local registers.
func (f *Function) Call(args []Value) (Value, error) {
	switch impl := f.Impl.(type) {
	case *HostMember:
		var native any
		if f.This != nil {
			n, err := f.This.NativeObject()
			if err != nil {
				return nil, err
			}
			native = n
		}
		return impl.Invoke(native, args)
	case *abc.Method:
		if f.interp == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoInterpreter, f.Name())
		}
		return nil, f.interp.ExecuteMethod(impl, f.This)
	}
	return nil, fmt.Errorf("%w: %T", ErrNotCallable, f.Impl)
}

func (f *Function) String() string {
	return "function " + f.Name()
}
