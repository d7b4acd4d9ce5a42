package command

import (
	"github.com/eballetbo/LaserReady-sub000/internal/geom"
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// transform captures the affected shapes when built. Execute resets the live
// shapes to that capture and applies the transform once, Undo only resets.
// Live shapes keep their identity throughout.
type transform struct {
	st    store.Store
	snaps []shape.Shape
	apply func(shape.Shape)
}

func newTransform(st store.Store, targets []shape.Shape, apply func(shape.Shape)) transform {
	return transform{st: st, snaps: snapshots(st, ids(targets)), apply: apply}
}

func (t *transform) Execute() {
	for _, sh := range restore(t.st, t.snaps) {
		t.apply(sh)
	}
	store.Touch(t.st)
}

func (t *transform) Undo() {
	restore(t.st, t.snaps)
	store.Touch(t.st)
}

// MoveShapes translates shapes by (DX, DY).
type MoveShapes struct {
	transform
	DX, DY float64
}

func NewMoveShapes(st store.Store, targets []shape.Shape, dx, dy float64) *MoveShapes {
	c := &MoveShapes{DX: dx, DY: dy}
	c.transform = newTransform(st, targets, func(sh shape.Shape) { sh.Move(c.DX, c.DY) })
	return c
}

func (c *MoveShapes) Name() string { return "Move" }

// RotateShapes turns shapes by Angle radians around Center.
type RotateShapes struct {
	transform
	Angle  float64
	Center geom.Point
}

func NewRotateShapes(st store.Store, targets []shape.Shape, angle float64, center geom.Point) *RotateShapes {
	c := &RotateShapes{Angle: angle, Center: center}
	c.transform = newTransform(st, targets, func(sh shape.Shape) { sh.Rotate(c.Angle, c.Center) })
	return c
}

func (c *RotateShapes) Name() string { return "Rotate" }

// ResizeShapes scales shapes by (SX, SY) away from Origin.
type ResizeShapes struct {
	transform
	SX, SY float64
	Origin geom.Point
}

func NewResizeShapes(st store.Store, targets []shape.Shape, sx, sy float64, origin geom.Point) *ResizeShapes {
	c := &ResizeShapes{SX: sx, SY: sy, Origin: origin}
	c.transform = newTransform(st, targets, func(sh shape.Shape) { sh.Scale(c.SX, c.SY, c.Origin) })
	return c
}

func (c *ResizeShapes) Name() string { return "Resize" }
