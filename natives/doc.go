// Package natives is the host-bridged Flash library: the Go types behind
// Object, the event classes and the display list.
//
// Script-visible members are declared with directives on the Go source:
//
//	//as:class flash.display.Sprite extends flash.display.DisplayObjectContainer
//	type Sprite struct { ... }
//
//	//as:getter
//	func (s *Sprite) ButtonMode() bool
//
// hostgen turns them into the static member tables in members_gen.go, and
// Types returns those tables for registration on a vm.Domain.
package natives

//go:generate go run github.com/chazu/flashvm/cmd/hostgen -out members_gen.go .
