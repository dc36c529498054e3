package hostgen

import (
	"bytes"
	"fmt"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// VMPath is the import path of the engine package the generated code binds to.
const VMPath = "github.com/chazu/flashvm/vm"

// Header is the first line of every generated file.
const Header = "Code generated by hostgen. DO NOT EDIT."

// Generate renders the member tables of the model as Go source in the
// model's own package. The output declares Types() and one builder per class.
func Generate(model *PackageModel) (string, error) {
	f := jen.NewFile(model.Name)
	f.HeaderComment(Header)
	f.ImportName(VMPath, "vm")

	classes := model.Ordered()

	f.Comment("Types returns the host type tables of this package, superclasses first.")
	f.Func().Id("Types").Params().Index().Op("*").Qual(VMPath, "HostType").Block(
		jen.Return(jen.Index().Op("*").Qual(VMPath, "HostType").CustomFunc(jen.Options{
			Open:      "{",
			Close:     "}",
			Separator: ",",
			Multi:     true,
		}, func(g *jen.Group) {
			for _, c := range classes {
				g.Id(BuilderName(c.GoType)).Call()
			}
		})),
	)

	for _, c := range classes {
		body, err := classBody(c, model.ImportPath)
		if err != nil {
			return "", fmt.Errorf("%s: %w", c.GoType, err)
		}
		f.Line()
		f.Func().Id(BuilderName(c.GoType)).Params().Op("*").Qual(VMPath, "HostType").Block(body...)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("rendering %s: %w", model.Name, err)
	}
	return buf.String(), nil
}

func classBody(c ClassModel, localPath string) ([]jen.Code, error) {
	ctor := jen.Op("&").Id(c.GoType).Values()
	if c.Constructor != "" {
		ctor = jen.Id(c.Constructor).Call()
	}

	body := []jen.Code{
		jen.Id("t").Op(":=").Qual(VMPath, "NewHostType").Call(
			jen.Lit(c.Name),
			jen.Lit(c.Super),
			jen.Func().Params().Id("any").Block(jen.Return(ctor)),
		),
	}

	value := func() *jen.Statement { return jen.Qual(VMPath, "Value") }

	for _, m := range c.Getters {
		result, err := typeCode(m.Result, localPath)
		if err != nil {
			return nil, fmt.Errorf("getter %s: %w", m.GoMethod, err)
		}
		body = append(body, jen.Id("t").Dot("Getter").Call(
			jen.Lit(m.Name),
			jen.Qual(VMPath, "BindGetter").Call(
				jen.Func().Params(
					jen.Id("r").Interface(jen.Id(m.GoMethod).Params().Add(result)),
				).Add(value()).Block(
					jen.Return(jen.Id("r").Dot(m.GoMethod).Call()),
				),
			),
		))
	}

	for _, m := range c.Setters {
		body = append(body, jen.Id("t").Dot("Setter").Call(
			jen.Lit(m.Name),
			jen.Qual(VMPath, "BindSetter").Call(
				jen.Func().Params(
					jen.Id("r").Interface(jen.Id(m.GoMethod).Params(value()).Error()),
					jen.Id("v").Add(value()),
				).Error().Block(
					jen.Return(jen.Id("r").Dot(m.GoMethod).Call(jen.Id("v"))),
				),
			),
		))
	}

	for _, m := range c.Functions {
		body = append(body, jen.Id("t").Dot("Function").Call(
			jen.Lit(m.Name),
			jen.Qual(VMPath, "BindFunction").Call(
				jen.Func().Params(
					jen.Id("r").Interface(
						jen.Id(m.GoMethod).Params(jen.Index().Add(value())).Parens(jen.List(value(), jen.Error())),
					),
					jen.Id("args").Index().Add(value()),
				).Parens(jen.List(value(), jen.Error())).Block(
					jen.Return(jen.Id("r").Dot(m.GoMethod).Call(jen.Id("args"))),
				),
			),
		))
	}

	for _, k := range c.Constants {
		body = append(body, jen.Id("t").Dot("Constant").Call(jen.Lit(k.Name), jen.Id(k.GoConst)))
	}

	return append(body, jen.Return(jen.Id("t"))), nil
}

// typeCode renders a getter result type, qualifying identifiers from other
// packages.
func typeCode(t types.Type, localPath string) (jen.Code, error) {
	named := func(obj *types.TypeName) jen.Code {
		if obj.Pkg() == nil || obj.Pkg().Path() == localPath {
			return jen.Id(obj.Name())
		}
		return jen.Qual(obj.Pkg().Path(), obj.Name())
	}

	switch t := t.(type) {
	case *types.Alias:
		return named(t.Obj()), nil
	case *types.Named:
		if t.TypeArgs().Len() > 0 {
			return nil, fmt.Errorf("generic type %s is not supported", t)
		}
		return named(t.Obj()), nil
	case *types.Basic:
		return jen.Id(t.Name()), nil
	case *types.Pointer:
		elem, err := typeCode(t.Elem(), localPath)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(elem), nil
	case *types.Slice:
		elem, err := typeCode(t.Elem(), localPath)
		if err != nil {
			return nil, err
		}
		return jen.Index().Add(elem), nil
	case *types.Map:
		key, err := typeCode(t.Key(), localPath)
		if err != nil {
			return nil, err
		}
		elem, err := typeCode(t.Elem(), localPath)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(elem), nil
	case *types.Interface:
		if t.Empty() {
			return jen.Id("any"), nil
		}
	}
	return nil, fmt.Errorf("unsupported result type %s", t)
}
