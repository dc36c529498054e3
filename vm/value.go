package vm

import (
	"fmt"
	"math"
	"strconv"

	"github.com/chazu/flashvm/abc"
)

// Value is a runtime value flowing through expression evaluation. It holds
// one of: nil, a literal (int, float64, string, bool), a ScriptObject, a
// *HostMember (unbound callable member), a *Function (bound function) or an
// *abc.Method stored on a scripted prototype.
type Value = any

// Kind classifies a Value.
type Kind int

const (
	KindNil Kind = iota
	KindLiteral
	KindObject
	KindMember
	KindFunction
	KindMethod
	KindForeign
)

var kindNames = [...]string{"nil", "literal", "object", "member", "function", "method", "foreign"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// KindOf returns the kind of v. Go values returned by host getters that are
// not literals are KindForeign.
func KindOf(v Value) Kind {
	switch v.(type) {
	case nil:
		return KindNil
	case int, int32, int64, float64, string, bool:
		return KindLiteral
	case ScriptObject:
		return KindObject
	case *HostMember:
		return KindMember
	case *Function:
		return KindFunction
	case *abc.Method:
		return KindMethod
	}
	return KindForeign
}

// ToInt converts numeric literals to int.
func ToInt(v Value) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

// ToNumber converts numeric literals to float64.
func ToNumber(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// ToString renders v the way ActionScript's String() conversion would for
// the values this engine produces.
func ToString(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case ScriptObject:
		return "[object " + abc.ParseName(x.ClassName()).Local + "]"
	case *HostMember:
		return "function " + x.Name + "() {}"
	case *Function:
		return "function " + x.Name() + "() {}"
	case *abc.Method:
		return "function " + x.Name + "() {}"
	}
	return fmt.Sprint(v)
}

// ToBool applies ActionScript truthiness.
func ToBool(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	return true
}
