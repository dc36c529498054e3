package natives

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/flashvm/vm"
)

// ---------------------------------------------------------------------------
// DisplayObject
// ---------------------------------------------------------------------------

//as:class flash.display.DisplayObject extends flash.events.EventDispatcher
type DisplayObject struct {
	EventDispatcher
	x, y    float64
	name    string
	visible bool
	stage   *Stage
}

func NewDisplayObject() *DisplayObject {
	d := &DisplayObject{}
	d.initDisplay("DisplayObject")
	return d
}

func (d *DisplayObject) initDisplay(class string) {
	d.class = class
	d.visible = true
}

//as:getter
func (d *DisplayObject) X() float64 { return d.x }

//as:setter
func (d *DisplayObject) SetX(v vm.Value) error {
	n, err := number("x", v)
	if err != nil {
		return err
	}
	d.x = n
	return nil
}

//as:getter
func (d *DisplayObject) Y() float64 { return d.y }

//as:setter
func (d *DisplayObject) SetY(v vm.Value) error {
	n, err := number("y", v)
	if err != nil {
		return err
	}
	d.y = n
	return nil
}

//as:getter
func (d *DisplayObject) Name() string { return d.name }

//as:setter
func (d *DisplayObject) SetName(v vm.Value) error {
	d.name = vm.ToString(v)
	return nil
}

//as:getter
func (d *DisplayObject) Visible() bool { return d.visible }

//as:setter
func (d *DisplayObject) SetVisible(v vm.Value) error {
	d.visible = vm.ToBool(v)
	return nil
}

// Stage returns the stage the object is attached to, or nil.
//
//as:getter
func (d *DisplayObject) Stage() vm.Value {
	if d.stage == nil {
		return nil
	}
	return d.stage
}

// SetStage is called by the stage when the object is attached. Listeners
// for addedToStage run before it returns.
func (d *DisplayObject) SetStage(s vm.Stage) {
	st, ok := s.(*Stage)
	if !ok {
		return
	}
	d.stage = st
	if err := d.Dispatch(newEvent(EventAddedToStage, d)); err != nil {
		commonlog.GetLogger("flashvm.natives").Warningf("%s: %s", d.ClassName(), err)
	}
}

func number(property string, v vm.Value) (float64, error) {
	n, ok := vm.ToNumber(v)
	if !ok {
		return 0, fmt.Errorf("%s: not a number: %v", property, v)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Containers
// ---------------------------------------------------------------------------

//as:class flash.display.DisplayObjectContainer extends flash.display.DisplayObject
type DisplayObjectContainer struct {
	DisplayObject
	children []vm.Value
}

func NewDisplayObjectContainer() *DisplayObjectContainer {
	c := &DisplayObjectContainer{}
	c.initDisplay("DisplayObjectContainer")
	return c
}

// addChild(child) appends child to the display list and returns it.
//
//as:function
func (c *DisplayObjectContainer) AddChild(args []vm.Value) (vm.Value, error) {
	if len(args) < 1 || args[0] == nil {
		return nil, fmt.Errorf("%w: addChild(child)", vm.ErrMissingArgument)
	}
	c.children = append(c.children, args[0])
	return args[0], nil
}

//as:getter
func (c *DisplayObjectContainer) NumChildren() int {
	return len(c.children)
}

// Children returns the display list in insertion order.
func (c *DisplayObjectContainer) Children() []vm.Value {
	result := make([]vm.Value, len(c.children))
	copy(result, c.children)
	return result
}

//as:class flash.display.Sprite extends flash.display.DisplayObjectContainer
type Sprite struct {
	DisplayObjectContainer
	buttonMode bool
}

func NewSprite() *Sprite {
	s := &Sprite{}
	s.initDisplay("Sprite")
	return s
}

//as:getter
func (s *Sprite) ButtonMode() bool { return s.buttonMode }

//as:setter
func (s *Sprite) SetButtonMode(v vm.Value) error {
	s.buttonMode = vm.ToBool(v)
	return nil
}

// ---------------------------------------------------------------------------
// MovieClip
// ---------------------------------------------------------------------------

// MovieClip is a sprite with a timeline. Frames are numbered from 1; frame
// scripts are registered with 0-based indices as the compiler emits them.
//
//as:class flash.display.MovieClip extends flash.display.Sprite
type MovieClip struct {
	Sprite
	frame   int
	total   int
	playing bool
	pending bool // the current frame's scripts have not run yet
	scripts map[int]vm.Callable
}

func NewMovieClip() *MovieClip {
	mc := &MovieClip{
		frame:   1,
		total:   1,
		playing: true,
		pending: true,
		scripts: make(map[int]vm.Callable),
	}
	mc.initDisplay("MovieClip")
	return mc
}

// addFrameScript(index, fn, index, fn, ...). A nil fn removes the script.
//
//as:function
func (mc *MovieClip) AddFrameScript(args []vm.Value) (vm.Value, error) {
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: addFrameScript expects index/function pairs", vm.ErrMissingArgument)
	}
	for i := 0; i < len(args); i += 2 {
		index, ok := vm.ToInt(args[i])
		if !ok || index < 0 {
			return nil, fmt.Errorf("addFrameScript: bad frame index %v", args[i])
		}
		if args[i+1] == nil {
			delete(mc.scripts, index)
			continue
		}
		fn, ok := args[i+1].(vm.Callable)
		if !ok {
			return nil, fmt.Errorf("%w: frame script %d is %s", vm.ErrNotCallable, index, vm.KindOf(args[i+1]))
		}
		mc.scripts[index] = fn
		if index+1 > mc.total {
			mc.total = index + 1
		}
	}
	return nil, nil
}

//as:function
func (mc *MovieClip) Stop(args []vm.Value) (vm.Value, error) {
	mc.playing = false
	return nil, nil
}

//as:function
func (mc *MovieClip) Play(args []vm.Value) (vm.Value, error) {
	mc.playing = true
	return nil, nil
}

//as:function
func (mc *MovieClip) GotoAndStop(args []vm.Value) (vm.Value, error) {
	if err := mc.seek("gotoAndStop", args); err != nil {
		return nil, err
	}
	mc.playing = false
	return nil, nil
}

//as:function
func (mc *MovieClip) GotoAndPlay(args []vm.Value) (vm.Value, error) {
	if err := mc.seek("gotoAndPlay", args); err != nil {
		return nil, err
	}
	mc.playing = true
	return nil, nil
}

func (mc *MovieClip) seek(op string, args []vm.Value) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: %s(frame)", vm.ErrMissingArgument, op)
	}
	frame, ok := vm.ToInt(args[0])
	if !ok {
		return fmt.Errorf("%s: bad frame %v", op, args[0])
	}
	frame = max(1, min(frame, mc.total))
	if frame != mc.frame {
		mc.frame = frame
		mc.pending = true
	}
	return nil
}

//as:getter
func (mc *MovieClip) CurrentFrame() int { return mc.frame }

//as:getter
func (mc *MovieClip) TotalFrames() int { return mc.total }

//as:getter
func (mc *MovieClip) IsPlaying() bool { return mc.playing }

// EnterFrame moves the playhead one frame when playing, wrapping to frame 1
// after the last, then runs the scripts of a newly entered frame.
func (mc *MovieClip) EnterFrame() error {
	if !mc.pending && mc.playing && mc.total > 1 {
		mc.frame = mc.frame%mc.total + 1
		mc.pending = true
	}
	if !mc.pending {
		return nil
	}
	mc.pending = false

	fn, ok := mc.scripts[mc.frame-1]
	if !ok {
		return nil
	}
	if _, err := fn.Call(nil); err != nil {
		return fmt.Errorf("frame %d script: %w", mc.frame, err)
	}
	return nil
}
