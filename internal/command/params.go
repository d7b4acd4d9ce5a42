package command

import (
	"github.com/eballetbo/LaserReady-sub000/internal/shape"
	"github.com/eballetbo/LaserReady-sub000/internal/store"
)

// UpdateParams regenerates a polygon or star from new parameters.
type UpdateParams struct {
	nodeEdit
	Params shape.Params
}

// NewUpdateParams returns nil when p is not a polygon or star.
func NewUpdateParams(st store.Store, p *shape.Path, params shape.Params) *UpdateParams {
	if p.Type != shape.TypePolygon && p.Type != shape.TypeStar {
		return nil
	}
	return &UpdateParams{nodeEdit: newNodeEdit(st, p), Params: params}
}

func (c *UpdateParams) Name() string { return "Update Parameters" }

func (c *UpdateParams) Execute() {
	p := c.reset()
	if p == nil {
		return
	}
	p.SetParams(c.Params)
	store.Touch(c.st)
}
