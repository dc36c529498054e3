// Package bad holds malformed host directives.
package bad

//as:class Good
type Good struct{}

//as:getter
func (g *Good) Label() string { return "" }

// SetLabel takes a string where a value is required.
//
//as:setter
func (g *Good) SetLabel(v string) error { return nil }

//as:function
func (g *Good) Run() {}

//as:frobnicate
func (g *Good) Frob() {}

type NotAClass struct{}

//as:getter
func (n *NotAClass) Size() int { return 0 }

//as:class Broken extends
type Broken struct{}

//as:constant Missing VALUE
const Value = 1
