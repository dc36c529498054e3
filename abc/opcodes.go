package abc

import "fmt"

// Opcode is an AVM2 instruction tag. Values match the AVM2 instruction set,
// except OpRef which marks a bare identifier reference produced by the
// decoder when it folds operand loads into expression trees.
type Opcode byte

const (
	// ========================================================================
	// Opcodes that drive execution
	// ========================================================================

	OpRef            Opcode = 0x00 // Identifier reference (decoder-synthesized)
	OpJump           Opcode = 0x10 // Unconditional jump to the single successor
	OpPopScope       Opcode = 0x1D // Pop the scope stack
	OpPushByte       Opcode = 0x24 // Push a byte literal
	OpPushScope      Opcode = 0x30 // Push the operand onto the scope stack
	OpReturnVoid     Opcode = 0x47 // Return from method without a value
	OpConstructSuper Opcode = 0x49 // Call the superclass constructor
	OpCallPropVoid   Opcode = 0x4F // Call a property, discard the result
	OpNewClass       Opcode = 0x58 // Create a class and run its initializers
	OpFindPropStrict Opcode = 0x5D // Find the object owning a property in the scope chain
	OpGetProperty    Opcode = 0x66 // Read a property of the operand

	// ========================================================================
	// Opcodes named for listings only
	// ========================================================================

	OpNop            Opcode = 0x02
	OpThrow          Opcode = 0x03
	OpLabel          Opcode = 0x09
	OpIfTrue         Opcode = 0x11
	OpIfFalse        Opcode = 0x12
	OpLookupSwitch   Opcode = 0x1B
	OpPushWith       Opcode = 0x1C
	OpPushNull       Opcode = 0x20
	OpPushUndefined  Opcode = 0x21
	OpPushShort      Opcode = 0x25
	OpPushTrue       Opcode = 0x26
	OpPushFalse      Opcode = 0x27
	OpPop            Opcode = 0x29
	OpDup            Opcode = 0x2A
	OpPushString     Opcode = 0x2C
	OpPushInt        Opcode = 0x2D
	OpPushDouble     Opcode = 0x2F
	OpNewFunction    Opcode = 0x40
	OpCall           Opcode = 0x41
	OpConstruct      Opcode = 0x42
	OpCallProperty   Opcode = 0x46
	OpReturnValue    Opcode = 0x48
	OpConstructProp  Opcode = 0x4A
	OpCallSuperVoid  Opcode = 0x4E
	OpNewObject      Opcode = 0x55
	OpNewArray       Opcode = 0x56
	OpFindProperty   Opcode = 0x5E
	OpGetLex         Opcode = 0x60
	OpSetProperty    Opcode = 0x61
	OpGetLocal       Opcode = 0x62
	OpSetLocal       Opcode = 0x63
	OpGetGlobalScope Opcode = 0x64
	OpGetScopeObject Opcode = 0x65
	OpInitProperty   Opcode = 0x68
	OpGetSlot        Opcode = 0x6C
	OpSetSlot        Opcode = 0x6D
	OpCoerce         Opcode = 0x80
	OpCoerceA        Opcode = 0x82
	OpCoerceS        Opcode = 0x85
	OpAdd            Opcode = 0xA0
	OpGetLocal0      Opcode = 0xD0
	OpGetLocal1      Opcode = 0xD1
	OpSetLocal1      Opcode = 0xD5
)

// Variable marks an opcode whose operand count is not fixed.
const Variable = -1

// OpcodeInfo provides metadata about each opcode for listings and validation.
type OpcodeInfo struct {
	Name       string // Mnemonic, as printed by the disassembler
	Operands   int    // Fixed number of operand expressions (Variable = any)
	Successors int    // Fixed number of jump targets (Variable = any)
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = map[Opcode]OpcodeInfo{
	OpRef:            {"ref", 0, 0},
	OpJump:           {"jump", 0, 1},
	OpPopScope:       {"popscope", 0, 0},
	OpPushByte:       {"pushbyte", 0, 0},
	OpPushScope:      {"pushscope", 1, 0},
	OpReturnVoid:     {"returnvoid", 0, 0},
	OpConstructSuper: {"constructsuper", 1, 0},
	OpCallPropVoid:   {"callpropvoid", Variable, 0},
	OpNewClass:       {"newclass", 1, 0},
	OpFindPropStrict: {"findpropstrict", 0, 0},
	OpGetProperty:    {"getproperty", 1, 0},

	OpNop:            {"nop", 0, 0},
	OpThrow:          {"throw", 1, 0},
	OpLabel:          {"label", 0, 0},
	OpIfTrue:         {"iftrue", 1, Variable},
	OpIfFalse:        {"iffalse", 1, Variable},
	OpLookupSwitch:   {"lookupswitch", 1, Variable},
	OpPushWith:       {"pushwith", 1, 0},
	OpPushNull:       {"pushnull", 0, 0},
	OpPushUndefined:  {"pushundefined", 0, 0},
	OpPushShort:      {"pushshort", 0, 0},
	OpPushTrue:       {"pushtrue", 0, 0},
	OpPushFalse:      {"pushfalse", 0, 0},
	OpPop:            {"pop", 1, 0},
	OpDup:            {"dup", 1, 0},
	OpPushString:     {"pushstring", 0, 0},
	OpPushInt:        {"pushint", 0, 0},
	OpPushDouble:     {"pushdouble", 0, 0},
	OpNewFunction:    {"newfunction", 0, 0},
	OpCall:           {"call", Variable, 0},
	OpConstruct:      {"construct", Variable, 0},
	OpCallProperty:   {"callproperty", Variable, 0},
	OpReturnValue:    {"returnvalue", 1, 0},
	OpConstructProp:  {"constructprop", Variable, 0},
	OpCallSuperVoid:  {"callsupervoid", Variable, 0},
	OpNewObject:      {"newobject", Variable, 0},
	OpNewArray:       {"newarray", Variable, 0},
	OpFindProperty:   {"findproperty", 0, 0},
	OpGetLex:         {"getlex", 0, 0},
	OpSetProperty:    {"setproperty", 2, 0},
	OpGetLocal:       {"getlocal", 0, 0},
	OpSetLocal:       {"setlocal", 1, 0},
	OpGetGlobalScope: {"getglobalscope", 0, 0},
	OpGetScopeObject: {"getscopeobject", 0, 0},
	OpInitProperty:   {"initproperty", 2, 0},
	OpGetSlot:        {"getslot", 1, 0},
	OpSetSlot:        {"setslot", 2, 0},
	OpCoerce:         {"coerce", 1, 0},
	OpCoerceA:        {"coerce_a", 1, 0},
	OpCoerceS:        {"coerce_s", 1, 0},
	OpAdd:            {"add", 2, 0},
	OpGetLocal0:      {"getlocal0", 0, 0},
	OpGetLocal1:      {"getlocal1", 0, 0},
	OpSetLocal1:      {"setlocal1", 1, 0},
}

// GetOpcodeInfo returns metadata for an opcode.
// Unrecognized opcodes get the name "UNKNOWN(0xNN)" and variable shape.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if info, ok := opcodeInfoTable[op]; ok {
		return info
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op)), Operands: Variable, Successors: Variable}
}

// String returns the opcode mnemonic.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// Known reports whether the opcode is in the table.
func (op Opcode) Known() bool {
	_, ok := opcodeInfoTable[op]
	return ok
}

// IsJump returns true for opcodes that transfer control to successor blocks.
func (op Opcode) IsJump() bool {
	switch op {
	case OpJump, OpIfTrue, OpIfFalse, OpLookupSwitch:
		return true
	}
	return false
}
