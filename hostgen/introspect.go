package hostgen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Directive kinds.
const (
	KindClass    = "class"
	KindGetter   = "getter"
	KindSetter   = "setter"
	KindFunction = "function"
	KindConstant = "constant"
)

const directivePrefix = "//as:"

// ErrDirective is wrapped by every malformed or misplaced directive.
var ErrDirective = errors.New("invalid directive")

// Directive is one //as: comment line.
type Directive struct {
	Kind string
	Args []string
}

// ParseDirective parses a raw comment line. It reports false for comments
// that are not directives.
func ParseDirective(line string) (Directive, bool) {
	rest, ok := strings.CutPrefix(line, directivePrefix)
	if !ok {
		return Directive{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Directive{}, false
	}
	return Directive{Kind: fields[0], Args: fields[1:]}, true
}

// directiveOf returns the first directive in a comment group.
func directiveOf(doc *ast.CommentGroup) (Directive, bool) {
	if doc == nil {
		return Directive{}, false
	}
	for _, c := range doc.List {
		if d, ok := ParseDirective(c.Text); ok {
			return d, true
		}
	}
	return Directive{}, false
}

// IntrospectPackage loads the package matching pattern and returns the host
// classes declared by its directives. Every malformed directive is reported.
func IntrospectPackage(pattern string) (*PackageModel, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found for %s", pattern)
	}
	if len(pkgs[0].Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkgs[0].Errors)
	}

	pkg := pkgs[0]
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return nil, fmt.Errorf("type information not available for %s", pattern)
	}

	in := &introspector{
		pkg:   pkg,
		model: &PackageModel{ImportPath: pkg.PkgPath, Name: pkg.Name},
	}
	// Classes first, so members in any file can find their class.
	for _, file := range pkg.Syntax {
		in.collectClasses(file)
	}
	for _, file := range pkg.Syntax {
		in.collectMembers(file)
	}
	if err := errors.Join(in.errs...); err != nil {
		return nil, err
	}
	return in.model, nil
}

type introspector struct {
	pkg   *packages.Package
	model *PackageModel
	errs  []error
}

func (in *introspector) fail(pos token.Pos, format string, args ...any) {
	in.errs = append(in.errs, fmt.Errorf("%s: %w: %s",
		in.pkg.Fset.Position(pos), ErrDirective, fmt.Sprintf(format, args...)))
}

func (in *introspector) collectClasses(file *ast.File) {
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			d, ok := directiveOf(doc)
			if !ok || d.Kind != KindClass {
				continue
			}
			in.addClass(ts, d)
		}
	}
}

func (in *introspector) addClass(ts *ast.TypeSpec, d Directive) {
	var name, super string
	switch {
	case len(d.Args) == 1:
		name = d.Args[0]
	case len(d.Args) == 3 && d.Args[1] == "extends":
		name, super = d.Args[0], d.Args[2]
	default:
		in.fail(ts.Pos(), "want //as:class Name [extends Super] on %s", ts.Name.Name)
		return
	}
	obj := in.pkg.TypesInfo.Defs[ts.Name]
	if obj == nil {
		in.fail(ts.Pos(), "no type information for %s", ts.Name.Name)
		return
	}
	if _, ok := obj.Type().Underlying().(*types.Struct); !ok {
		in.fail(ts.Pos(), "%s is not a struct type", ts.Name.Name)
		return
	}
	if in.model.Class(ts.Name.Name) != nil {
		in.fail(ts.Pos(), "%s declares more than one class", ts.Name.Name)
		return
	}
	in.model.Classes = append(in.model.Classes, ClassModel{
		GoType:      ts.Name.Name,
		Name:        name,
		Super:       super,
		Constructor: in.constructorOf(ts.Name.Name),
	})
}

// constructorOf returns New<goType> when it is a func() returning one value.
func (in *introspector) constructorOf(goType string) string {
	name := "New" + goType
	fn, ok := in.pkg.Types.Scope().Lookup(name).(*types.Func)
	if !ok {
		return ""
	}
	sig := fn.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return ""
	}
	return name
}

func (in *introspector) collectMembers(file *ast.File) {
	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.FuncDecl:
			if d, ok := directiveOf(decl.Doc); ok {
				in.addMethod(decl, d)
			}
		case *ast.GenDecl:
			if decl.Tok != token.CONST {
				continue
			}
			for _, spec := range decl.Specs {
				vs := spec.(*ast.ValueSpec)
				doc := vs.Doc
				if doc == nil && len(decl.Specs) == 1 {
					doc = decl.Doc
				}
				if d, ok := directiveOf(doc); ok {
					in.addConstant(vs, d)
				}
			}
		}
	}
}

func (in *introspector) addMethod(fd *ast.FuncDecl, d Directive) {
	if d.Kind == KindClass || d.Kind == KindConstant {
		in.fail(fd.Pos(), "//as:%s cannot annotate a function", d.Kind)
		return
	}
	if fd.Recv == nil {
		in.fail(fd.Pos(), "//as:%s on %s needs a method", d.Kind, fd.Name.Name)
		return
	}
	fn, ok := in.pkg.TypesInfo.Defs[fd.Name].(*types.Func)
	if !ok {
		in.fail(fd.Pos(), "no type information for %s", fd.Name.Name)
		return
	}
	sig := fn.Type().(*types.Signature)
	class := in.model.Class(receiverName(sig))
	if class == nil {
		in.fail(fd.Pos(), "%s is not declared on an //as:class type", fd.Name.Name)
		return
	}
	if len(d.Args) > 1 {
		in.fail(fd.Pos(), "//as:%s takes at most a member name", d.Kind)
		return
	}

	method := fd.Name.Name
	member := MemberModel{GoMethod: method}
	switch d.Kind {
	case KindGetter:
		if sig.Params().Len() != 0 || sig.Results().Len() != 1 || isErrorType(sig.Results().At(0).Type()) {
			in.fail(fd.Pos(), "getter %s must be func() T", method)
			return
		}
		member.Name = GetterName(method)
		member.Result = sig.Results().At(0).Type()
		class.Getters = append(class.Getters, withName(member, d))
	case KindSetter:
		if sig.Params().Len() != 1 || !isValue(sig.Params().At(0).Type()) ||
			sig.Results().Len() != 1 || !isErrorType(sig.Results().At(0).Type()) {
			in.fail(fd.Pos(), "setter %s must be func(vm.Value) error", method)
			return
		}
		member.Name = SetterName(method)
		class.Setters = append(class.Setters, withName(member, d))
	case KindFunction:
		if sig.Params().Len() != 1 || !isValueSlice(sig.Params().At(0).Type()) ||
			sig.Results().Len() != 2 || !isValue(sig.Results().At(0).Type()) ||
			!isErrorType(sig.Results().At(1).Type()) {
			in.fail(fd.Pos(), "function %s must be func([]vm.Value) (vm.Value, error)", method)
			return
		}
		member.Name = FunctionName(method)
		class.Functions = append(class.Functions, withName(member, d))
	default:
		in.fail(fd.Pos(), "unknown directive //as:%s", d.Kind)
	}
}

func (in *introspector) addConstant(vs *ast.ValueSpec, d Directive) {
	if d.Kind != KindConstant {
		in.fail(vs.Pos(), "//as:%s cannot annotate a constant", d.Kind)
		return
	}
	if len(d.Args) != 2 || len(vs.Names) != 1 {
		in.fail(vs.Pos(), "want a single constant under //as:constant GoType NAME")
		return
	}
	class := in.model.Class(d.Args[0])
	if class == nil {
		in.fail(vs.Pos(), "%s is not an //as:class type", d.Args[0])
		return
	}
	class.Constants = append(class.Constants, ConstantModel{
		Name:    d.Args[1],
		GoConst: vs.Names[0].Name,
	})
}

func withName(m MemberModel, d Directive) MemberModel {
	if len(d.Args) == 1 {
		m.Name = d.Args[0]
	}
	return m
}

func receiverName(sig *types.Signature) string {
	if sig.Recv() == nil {
		return ""
	}
	t := sig.Recv().Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if named, ok := t.(*types.Named); ok {
		return named.Obj().Name()
	}
	return ""
}

// isValue reports whether t is the empty interface, which vm.Value aliases.
func isValue(t types.Type) bool {
	iface, ok := t.Underlying().(*types.Interface)
	return ok && iface.Empty()
}

func isValueSlice(t types.Type) bool {
	s, ok := t.Underlying().(*types.Slice)
	return ok && isValue(s.Elem())
}

func isErrorType(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}
