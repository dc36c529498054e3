package natives

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/flashvm/vm"
)

// Defaults of a new stage, as in the Flash authoring tool.
const (
	DefaultStageWidth  = 550
	DefaultStageHeight = 400
	DefaultFrameRate   = 24.0
)

// StageAlign values.
const (
	//as:constant StageAlign TOP
	AlignTop = "T"
	//as:constant StageAlign BOTTOM
	AlignBottom = "B"
	//as:constant StageAlign LEFT
	AlignLeft = "L"
	//as:constant StageAlign RIGHT
	AlignRight = "R"
	//as:constant StageAlign TOP_LEFT
	AlignTopLeft = "TL"
	//as:constant StageAlign TOP_RIGHT
	AlignTopRight = "TR"
	//as:constant StageAlign BOTTOM_LEFT
	AlignBottomLeft = "BL"
	//as:constant StageAlign BOTTOM_RIGHT
	AlignBottomRight = "BR"
)

// StageAlign only carries constants.
//
//as:class flash.display.StageAlign extends Object
type StageAlign struct {
	Object
}

func NewStageAlign() *StageAlign {
	return &StageAlign{Object: Object{class: "StageAlign"}}
}

// frameHandler is implemented by natives with a timeline.
type frameHandler interface {
	EnterFrame() error
}

// dispatcher is implemented by every native that embeds EventDispatcher.
type dispatcher interface {
	Dispatch(ev *Event) error
}

// Stage is the root of the scene graph and the vm.Stage the interpreter
// attaches newly constructed display objects to.
//
//as:class flash.display.Stage extends flash.display.DisplayObjectContainer
type Stage struct {
	DisplayObjectContainer
	width     int
	height    int
	frameRate float64
	align     string

	frame    int
	attached []vm.StageAttachable
	log      commonlog.Logger
}

func NewStage() *Stage {
	s := &Stage{
		width:     DefaultStageWidth,
		height:    DefaultStageHeight,
		frameRate: DefaultFrameRate,
		log:       commonlog.GetLogger("flashvm.stage"),
	}
	s.initDisplay("Stage")
	s.stage = s
	return s
}

// Resize sets the stage dimensions.
func (s *Stage) Resize(width, height int) {
	s.width = width
	s.height = height
}

//as:getter
func (s *Stage) StageWidth() int { return s.width }

//as:getter
func (s *Stage) StageHeight() int { return s.height }

//as:getter
func (s *Stage) FrameRate() float64 { return s.frameRate }

//as:setter
func (s *Stage) SetFrameRate(v vm.Value) error {
	n, err := number("frameRate", v)
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("frameRate: must be positive, got %v", n)
	}
	s.frameRate = n
	return nil
}

//as:getter
func (s *Stage) Align() string { return s.align }

//as:setter
func (s *Stage) SetAlign(v vm.Value) error {
	align := vm.ToString(v)
	switch align {
	case "", AlignTop, AlignBottom, AlignLeft, AlignRight,
		AlignTopLeft, AlignTopRight, AlignBottomLeft, AlignBottomRight:
		s.align = align
		return nil
	}
	return fmt.Errorf("align: unknown value %q", align)
}

// Attach implements vm.Stage. Attaching the same object twice has no effect.
func (s *Stage) Attach(obj vm.StageAttachable) {
	for _, a := range s.attached {
		if a == obj {
			return
		}
	}
	s.attached = append(s.attached, obj)
	s.log.Debugf("attached %T", obj)
	obj.SetStage(s)
}

// Attached returns the attached objects in attachment order.
func (s *Stage) Attached() []vm.StageAttachable {
	result := make([]vm.StageAttachable, len(s.attached))
	copy(result, s.attached)
	return result
}

// Frame returns the number of frames advanced so far.
func (s *Stage) Frame() int {
	return s.frame
}

// Advance steps n frames. Each frame, every attached object with a timeline
// moves its playhead and runs its frame scripts, then enterFrame listeners
// run. Objects attached during a frame take part from the next one. Errors
// are collected and the frame still completes.
func (s *Stage) Advance(n int) error {
	var errs []error
	for i := 0; i < n; i++ {
		s.frame++
		for _, obj := range s.Attached() {
			if fh, ok := obj.(frameHandler); ok {
				if err := fh.EnterFrame(); err != nil {
					errs = append(errs, fmt.Errorf("frame %d: %w", s.frame, err))
				}
			}
			if d, ok := obj.(dispatcher); ok {
				if err := d.Dispatch(newEvent(EventEnterFrame, obj)); err != nil {
					errs = append(errs, fmt.Errorf("frame %d: %w", s.frame, err))
				}
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.log.Warningf("%s", err)
		return err
	}
	return nil
}
