package viz

import (
	"math"

	"github.com/san-kum/pairforce/internal/md"
)

// Projection maps particle positions onto the dot grid: yaw about the
// vertical axis, then pitch, then an orthographic fit of the whole cloud.
type Projection struct {
	Yaw, Pitch float64
	Zoom       float64
}

func NewProjection() *Projection { return &Projection{Zoom: 1} }

func (p *Projection) RotateYaw(d float64)   { p.Yaw += d }
func (p *Projection) RotatePitch(d float64) { p.Pitch += d }
func (p *Projection) ZoomIn()               { p.Zoom = math.Min(8, p.Zoom*1.2) }
func (p *Projection) ZoomOut()              { p.Zoom = math.Max(0.25, p.Zoom/1.2) }

func (p *Projection) rotate(v md.Vec3) md.Vec3 {
	cy, sy := math.Cos(p.Yaw), math.Sin(p.Yaw)
	v.X, v.Z = v.X*cy+v.Z*sy, -v.X*sy+v.Z*cy
	cx, sx := math.Cos(p.Pitch), math.Sin(p.Pitch)
	v.Y, v.Z = v.Y*cx-v.Z*sx, v.Y*sx+v.Z*cx
	return v
}

// Render draws every particle as a dot mark, wide particles (diameter 1.5
// and up) as a 3x3 block. The scale is fitted so the whole cloud stays on
// canvas at zoom 1.
func (p *Projection) Render(c *Canvas, sys *md.System) {
	n := sys.N()
	if n == 0 {
		return
	}
	rotated := make([]md.Vec3, n)
	extent := 0.0
	for i, pos := range sys.Pos {
		r := p.rotate(pos)
		rotated[i] = r
		if a := math.Abs(r.X); a > extent {
			extent = a
		}
		if a := math.Abs(r.Y); a > extent {
			extent = a
		}
	}
	if extent == 0 {
		extent = 1
	}

	dw, dh := 2*c.Cols, 4*c.Rows
	half := float64(min(dw, dh))/2 - 2
	scale := half / extent * p.Zoom
	cx, cy := dw/2, dh/2
	for i, r := range rotated {
		x := cx + int(math.Round(r.X*scale))
		y := cy - int(math.Round(r.Y*scale))
		radius := 0
		if sys.Diameter[i] >= 1.5 {
			radius = 1
		}
		c.Mark(x, y, radius)
	}
}
