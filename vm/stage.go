package vm

// Stage is the scene graph handle newly constructed display objects are
// attached to.
type Stage interface {
	Attach(obj StageAttachable)
}

// StageAttachable is implemented by native objects that take part in the
// scene graph.
type StageAttachable interface {
	SetStage(s Stage)
}
