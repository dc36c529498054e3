package abc

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// WireVersion is the bundle format version written by MarshalBundle.
const WireVersion uint8 = 1

// Decoding errors.
var (
	ErrVersionMismatch    = errors.New("bundle version mismatch")
	ErrInvalidClassIndex  = errors.New("invalid class index")
	ErrInvalidMethodIndex = errors.New("invalid method index")
	ErrInvalidBlockIndex  = errors.New("invalid block index")
	ErrInvalidExprIndex   = errors.New("invalid expression index")
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("abc: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ---------------------------------------------------------------------------
// Wire structures
//
// The graph is flattened into tables. References between entries are
// 1-based indices so that the zero value means "absent".
// ---------------------------------------------------------------------------

type wireBundle struct {
	Version  uint8         `cbor:"1,keyasint"`
	Programs []wireProgram `cbor:"2,keyasint,omitempty"`
}

type wireProgram struct {
	Classes []wireClass  `cbor:"1,keyasint,omitempty"`
	Methods []wireMethod `cbor:"2,keyasint,omitempty"`
	Blocks  []wireBlock  `cbor:"3,keyasint,omitempty"`
	Exprs   []wireExpr   `cbor:"4,keyasint,omitempty"`
	Scripts []wireScript `cbor:"5,keyasint,omitempty"`

	// ClassOrder and MethodOrder list the entries of Program.Classes and
	// Program.Methods; the tables may hold more entries reached through
	// initializers and traits.
	ClassOrder  []int `cbor:"6,keyasint,omitempty"`
	MethodOrder []int `cbor:"7,keyasint,omitempty"`
}

type wireName struct {
	Namespace string `cbor:"1,keyasint,omitempty"`
	Local     string `cbor:"2,keyasint"`
}

type wireClass struct {
	Name         wireName      `cbor:"1,keyasint"`
	Super        wireName      `cbor:"2,keyasint"`
	Traits       []wireBinding `cbor:"3,keyasint,omitempty"`
	StaticInit   int           `cbor:"4,keyasint,omitempty"`
	InstanceInit int           `cbor:"5,keyasint,omitempty"`
}

type wireBinding struct {
	Name   string `cbor:"1,keyasint"`
	Method int    `cbor:"2,keyasint,omitempty"`
}

type wireMethod struct {
	Name  string `cbor:"1,keyasint"`
	Entry int    `cbor:"2,keyasint,omitempty"`
}

type wireScript struct {
	Ref  wireName `cbor:"1,keyasint"`
	Init int      `cbor:"2,keyasint,omitempty"`
}

type wireBlock struct {
	ID    int   `cbor:"1,keyasint"`
	Exprs []int `cbor:"2,keyasint,omitempty"`
	Succ  []int `cbor:"3,keyasint,omitempty"`
}

type wireExpr struct {
	Op     uint8     `cbor:"1,keyasint"`
	Args   []int     `cbor:"2,keyasint,omitempty"`
	Ref    *wireName `cbor:"3,keyasint,omitempty"`
	Value  any       `cbor:"4,keyasint"`
	Scopes []int     `cbor:"5,keyasint,omitempty"`
	Succ   []int     `cbor:"6,keyasint,omitempty"`
	Class  int       `cbor:"7,keyasint,omitempty"`
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// MarshalBundle serializes programs to CBOR bytes.
func MarshalBundle(programs ...*Program) ([]byte, error) {
	b := wireBundle{Version: WireVersion}
	for _, p := range programs {
		b.Programs = append(b.Programs, flatten(p))
	}
	return cborEncMode.Marshal(&b)
}

// UnmarshalBundle deserializes programs from CBOR bytes.
func UnmarshalBundle(data []byte) ([]*Program, error) {
	var b wireBundle
	if err := cbor.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("abc: unmarshal bundle: %w", err)
	}
	if b.Version != WireVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, b.Version, WireVersion)
	}
	programs := make([]*Program, 0, len(b.Programs))
	for i := range b.Programs {
		p, err := inflate(&b.Programs[i])
		if err != nil {
			return nil, fmt.Errorf("abc: program %d: %w", i, err)
		}
		programs = append(programs, p)
	}
	return programs, nil
}

// WireDecoder decodes CBOR bundles written by MarshalBundle.
type WireDecoder struct{}

// Decode implements the player's decoder contract.
func (WireDecoder) Decode(data []byte) ([]*Program, error) {
	return UnmarshalBundle(data)
}

type flattener struct {
	classes map[*Class]int
	methods map[*Method]int
	blocks  map[*Block]int
	exprs   map[*Expr]int

	classList  []*Class
	methodList []*Method
	blockList  []*Block
	exprList   []*Expr
}

func flatten(p *Program) wireProgram {
	f := &flattener{
		classes: make(map[*Class]int),
		methods: make(map[*Method]int),
		blocks:  make(map[*Block]int),
		exprs:   make(map[*Expr]int),
	}

	// Phase 1: assign indices.
	var out wireProgram
	for _, c := range p.Classes {
		out.ClassOrder = append(out.ClassOrder, f.addClass(c))
	}
	for _, m := range p.Methods {
		out.MethodOrder = append(out.MethodOrder, f.addMethod(m))
	}
	for _, s := range p.Scripts {
		f.addMethod(s.Init)
	}

	// Phase 2: emit tables.
	for _, c := range f.classList {
		wc := wireClass{
			Name:         toWireName(c.Name),
			Super:        toWireName(c.Super),
			StaticInit:   f.methods[c.StaticInit],
			InstanceInit: f.methods[c.InstanceInit],
		}
		for _, t := range c.Traits {
			wc.Traits = append(wc.Traits, wireBinding{Name: t.Name, Method: f.methods[t.Method]})
		}
		out.Classes = append(out.Classes, wc)
	}
	for _, m := range f.methodList {
		out.Methods = append(out.Methods, wireMethod{Name: m.Name, Entry: f.blocks[m.Entry]})
	}
	for _, b := range f.blockList {
		wb := wireBlock{ID: b.ID}
		for _, e := range b.Exprs {
			wb.Exprs = append(wb.Exprs, f.exprs[e])
		}
		for _, s := range b.Succ {
			wb.Succ = append(wb.Succ, f.blocks[s])
		}
		out.Blocks = append(out.Blocks, wb)
	}
	for _, e := range f.exprList {
		we := wireExpr{Op: uint8(e.Op), Value: e.Value, Class: f.classes[e.Class]}
		if e.Ref != nil {
			n := toWireName(*e.Ref)
			we.Ref = &n
		}
		for _, a := range e.Args {
			we.Args = append(we.Args, f.exprs[a])
		}
		for _, s := range e.Scopes {
			we.Scopes = append(we.Scopes, f.exprs[s])
		}
		for _, s := range e.Succ {
			we.Succ = append(we.Succ, f.blocks[s])
		}
		out.Exprs = append(out.Exprs, we)
	}
	for _, s := range p.Scripts {
		out.Scripts = append(out.Scripts, wireScript{Ref: toWireName(s.Ref), Init: f.methods[s.Init]})
	}
	return out
}

func (f *flattener) addClass(c *Class) int {
	if c == nil {
		return 0
	}
	if idx, ok := f.classes[c]; ok {
		return idx
	}
	f.classList = append(f.classList, c)
	idx := len(f.classList)
	f.classes[c] = idx
	f.addMethod(c.StaticInit)
	f.addMethod(c.InstanceInit)
	for _, t := range c.Traits {
		f.addMethod(t.Method)
	}
	return idx
}

func (f *flattener) addMethod(m *Method) int {
	if m == nil {
		return 0
	}
	if idx, ok := f.methods[m]; ok {
		return idx
	}
	f.methodList = append(f.methodList, m)
	idx := len(f.methodList)
	f.methods[m] = idx
	f.addBlock(m.Entry)
	return idx
}

func (f *flattener) addBlock(b *Block) int {
	if b == nil {
		return 0
	}
	if idx, ok := f.blocks[b]; ok {
		return idx
	}
	f.blockList = append(f.blockList, b)
	idx := len(f.blockList)
	f.blocks[b] = idx
	for _, e := range b.Exprs {
		f.addExpr(e)
	}
	for _, s := range b.Succ {
		f.addBlock(s)
	}
	return idx
}

func (f *flattener) addExpr(e *Expr) int {
	if e == nil {
		return 0
	}
	if idx, ok := f.exprs[e]; ok {
		return idx
	}
	f.exprList = append(f.exprList, e)
	idx := len(f.exprList)
	f.exprs[e] = idx
	for _, a := range e.Args {
		f.addExpr(a)
	}
	for _, s := range e.Scopes {
		f.addExpr(s)
	}
	for _, s := range e.Succ {
		f.addBlock(s)
	}
	f.addClass(e.Class)
	return idx
}

func toWireName(n Name) wireName {
	return wireName{Namespace: n.Namespace, Local: n.Local}
}

func fromWireName(n wireName) Name {
	return Name{Namespace: n.Namespace, Local: n.Local}
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

type inflater struct {
	classes []*Class
	methods []*Method
	blocks  []*Block
	exprs   []*Expr
}

func inflate(w *wireProgram) (*Program, error) {
	in := &inflater{
		classes: make([]*Class, len(w.Classes)),
		methods: make([]*Method, len(w.Methods)),
		blocks:  make([]*Block, len(w.Blocks)),
		exprs:   make([]*Expr, len(w.Exprs)),
	}
	// Allocate first so that forward references resolve.
	for i := range in.classes {
		in.classes[i] = &Class{}
	}
	for i := range in.methods {
		in.methods[i] = &Method{}
	}
	for i := range in.blocks {
		in.blocks[i] = &Block{}
	}
	for i := range in.exprs {
		in.exprs[i] = &Expr{}
	}

	var err error
	for i, wc := range w.Classes {
		c := in.classes[i]
		c.Name = fromWireName(wc.Name)
		c.Super = fromWireName(wc.Super)
		if c.StaticInit, err = in.method(wc.StaticInit); err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name.Qualified(), err)
		}
		if c.InstanceInit, err = in.method(wc.InstanceInit); err != nil {
			return nil, fmt.Errorf("class %s: %w", c.Name.Qualified(), err)
		}
		for _, wb := range wc.Traits {
			m, err := in.method(wb.Method)
			if err != nil {
				return nil, fmt.Errorf("class %s trait %s: %w", c.Name.Qualified(), wb.Name, err)
			}
			c.Traits = append(c.Traits, Binding{Name: wb.Name, Method: m})
		}
	}
	for i, wm := range w.Methods {
		m := in.methods[i]
		m.Name = wm.Name
		if m.Entry, err = in.block(wm.Entry); err != nil {
			return nil, fmt.Errorf("method %s: %w", wm.Name, err)
		}
	}
	for i, wb := range w.Blocks {
		b := in.blocks[i]
		b.ID = wb.ID
		if b.Exprs, err = in.exprList(wb.Exprs); err != nil {
			return nil, fmt.Errorf("block %d: %w", wb.ID, err)
		}
		if b.Succ, err = in.blockList(wb.Succ); err != nil {
			return nil, fmt.Errorf("block %d: %w", wb.ID, err)
		}
	}
	for i, we := range w.Exprs {
		e := in.exprs[i]
		e.Op = Opcode(we.Op)
		e.Value = normalizeLiteral(we.Value)
		if we.Ref != nil {
			n := fromWireName(*we.Ref)
			e.Ref = &n
		}
		if e.Args, err = in.exprList(we.Args); err != nil {
			return nil, fmt.Errorf("expression %d: %w", i+1, err)
		}
		if e.Scopes, err = in.exprList(we.Scopes); err != nil {
			return nil, fmt.Errorf("expression %d: %w", i+1, err)
		}
		if e.Succ, err = in.blockList(we.Succ); err != nil {
			return nil, fmt.Errorf("expression %d: %w", i+1, err)
		}
		if e.Class, err = in.class(we.Class); err != nil {
			return nil, fmt.Errorf("expression %d: %w", i+1, err)
		}
	}

	p := &Program{}
	for _, idx := range w.ClassOrder {
		c, err := in.class(idx)
		if err != nil || c == nil {
			return nil, fmt.Errorf("class order: %w: %d", ErrInvalidClassIndex, idx)
		}
		p.Classes = append(p.Classes, c)
	}
	for _, idx := range w.MethodOrder {
		m, err := in.method(idx)
		if err != nil || m == nil {
			return nil, fmt.Errorf("method order: %w: %d", ErrInvalidMethodIndex, idx)
		}
		p.Methods = append(p.Methods, m)
	}
	for _, ws := range w.Scripts {
		m, err := in.method(ws.Init)
		if err != nil {
			return nil, fmt.Errorf("script %s: %w", ws.Ref.Local, err)
		}
		p.Scripts = append(p.Scripts, &Script{Ref: fromWireName(ws.Ref), Init: m})
	}
	return p, nil
}

func (in *inflater) class(idx int) (*Class, error) {
	if idx == 0 {
		return nil, nil
	}
	if idx < 0 || idx > len(in.classes) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClassIndex, idx)
	}
	return in.classes[idx-1], nil
}

func (in *inflater) method(idx int) (*Method, error) {
	if idx == 0 {
		return nil, nil
	}
	if idx < 0 || idx > len(in.methods) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethodIndex, idx)
	}
	return in.methods[idx-1], nil
}

func (in *inflater) block(idx int) (*Block, error) {
	if idx == 0 {
		return nil, nil
	}
	if idx < 0 || idx > len(in.blocks) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockIndex, idx)
	}
	return in.blocks[idx-1], nil
}

func (in *inflater) blockList(idxs []int) ([]*Block, error) {
	var result []*Block
	for _, idx := range idxs {
		b, err := in.block(idx)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, fmt.Errorf("%w: %d", ErrInvalidBlockIndex, idx)
		}
		result = append(result, b)
	}
	return result, nil
}

func (in *inflater) exprList(idxs []int) ([]*Expr, error) {
	var result []*Expr
	for _, idx := range idxs {
		if idx <= 0 || idx > len(in.exprs) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidExprIndex, idx)
		}
		result = append(result, in.exprs[idx-1])
	}
	return result, nil
}

// normalizeLiteral maps CBOR's integer decoding (uint64/int64) back to int.
func normalizeLiteral(v any) any {
	switch n := v.(type) {
	case uint64:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return float64(n)
	}
	return v
}
