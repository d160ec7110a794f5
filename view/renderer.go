package view

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/unlimitedforest/forest"
)

// clipEpsilon is the smallest clip-space w a vertex may have before its
// triangle is dropped. There is no near-plane clipping, so triangles that
// cross behind the eye are skipped whole.
const clipEpsilon = 1e-5

// meshGeometry is the Renderer's forest.Geometry. It keeps a private copy
// of the uploaded mesh.
type meshGeometry struct {
	mesh     forest.Mesh
	owner    *Renderer
	released bool
}

func (g *meshGeometry) IndexCount() int { return len(g.mesh.Indices) }

func (g *meshGeometry) Release() {
	if g.released {
		return
	}
	g.released = true
	g.owner.live--
}

// submission is one model matrix queued for the current frame.
type submission struct {
	geo *meshGeometry
	mvp mgl32.Mat4
}

// triangle is a projected triangle ready for sorting and drawing.
type triangle struct {
	pos   [3]mgl32.Vec2
	col   [3]mgl32.Vec3
	depth float32
}

// Renderer is a forest.Renderer that draws onto an Ebitengine image. Vertices
// are transformed on the CPU and triangles are painter-sorted back to front,
// which is enough for the small scenes the viewer shows.
type Renderer struct {
	log *slog.Logger

	view, proj mgl32.Mat4
	queue      []submission
	live       int

	highlight *pulse
	selected  forest.Geometry

	tris  []triangle
	verts []ebiten.Vertex
	inds  []uint32
	white *ebiten.Image

	// Background is the clear color used by Flush.
	Background color.Color
}

// NewRenderer creates a renderer with identity view and projection. A nil
// logger discards output.
func NewRenderer(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		log:        log,
		view:       mgl32.Ident4(),
		proj:       mgl32.Ident4(),
		highlight:  newPulse(0.55, 1, 0.6),
		Background: color.RGBA{R: 0x1e, G: 0x1e, B: 0x28, A: 0xff},
	}
}

// Upload implements forest.Renderer.
func (r *Renderer) Upload(mesh forest.Mesh) (forest.Geometry, error) {
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("upload mesh: %w", err)
	}
	g := &meshGeometry{
		mesh: forest.Mesh{
			Vertices: slices.Clone(mesh.Vertices),
			Indices:  slices.Clone(mesh.Indices),
		},
		owner: r,
	}
	r.live++
	r.log.Debug("uploaded mesh", "vertices", mesh.VertexCount(), "indices", len(mesh.Indices))
	return g, nil
}

// SetView implements forest.Renderer.
func (r *Renderer) SetView(view, projection mgl32.Mat4) {
	r.view, r.proj = view, projection
}

// Submit implements forest.Renderer. Geometry from another renderer or
// already released is skipped.
func (r *Renderer) Submit(g forest.Geometry, model mgl32.Mat4) {
	mg, ok := g.(*meshGeometry)
	if !ok || mg.owner != r {
		r.log.Error("submit: geometry not uploaded by this renderer", "geometry", fmt.Sprintf("%T", g))
		return
	}
	if mg.released {
		return
	}
	r.queue = append(r.queue, submission{geo: mg, mvp: r.proj.Mul4(r.view).Mul4(model)})
}

// Begin drops the previous frame's submissions. Call it before the frame's
// node sweep.
func (r *Renderer) Begin() {
	r.queue = r.queue[:0]
}

// Submitted returns the number of submissions queued since Begin.
func (r *Renderer) Submitted() int { return len(r.queue) }

// Live returns the number of uploaded geometries not yet released.
func (r *Renderer) Live() int { return r.live }

// SetHighlight makes g pulse. Pass nil to stop highlighting.
func (r *Renderer) SetHighlight(g forest.Geometry) {
	r.selected = g
}

// Advance moves the highlight animation forward by dt seconds.
func (r *Renderer) Advance(dt float32) {
	r.highlight.Update(dt)
}

// Flush clears screen and draws every queued submission.
func (r *Renderer) Flush(screen *ebiten.Image) {
	screen.Fill(r.Background)
	b := screen.Bounds()
	r.project(float32(b.Dx()), float32(b.Dy()))
	if len(r.tris) == 0 {
		return
	}

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, t := range r.tris {
		base := uint32(len(r.verts))
		for i := 0; i < 3; i++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: t.pos[i].X(), DstY: t.pos[i].Y(),
				SrcX: 1, SrcY: 1,
				ColorR: t.col[i].X(), ColorG: t.col[i].Y(), ColorB: t.col[i].Z(), ColorA: 1,
			})
		}
		r.inds = append(r.inds, base, base+1, base+2)
	}

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	screen.DrawTriangles32(r.verts, r.inds, r.whiteImage(), &op)
}

// project fills r.tris with the queued submissions in screen space, sorted
// far to near.
func (r *Renderer) project(w, h float32) {
	r.tris = r.tris[:0]
	for _, s := range r.queue {
		tint := float32(1)
		if forest.Geometry(s.geo) == r.selected {
			tint = r.highlight.Value()
		}
		m := s.geo.mesh
	tri:
		for i := 0; i+2 < len(m.Indices); i += 3 {
			var t triangle
			for j := 0; j < 3; j++ {
				v := int(m.Indices[i+j])
				c := s.mvp.Mul4x1(m.Position(v).Vec4(1))
				if c.W() <= clipEpsilon {
					continue tri
				}
				ndc := c.Vec3().Mul(1 / c.W())
				t.pos[j] = mgl32.Vec2{(ndc.X() + 1) / 2 * w, (1 - ndc.Y()) / 2 * h}
				t.col[j] = m.Color(v).Mul(tint)
				t.depth += ndc.Z() / 3
			}
			r.tris = append(r.tris, t)
		}
	}
	slices.SortStableFunc(r.tris, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

// whiteImage returns a solid white source region. A sub-image of a larger
// image avoids sampling past the edge of a 1x1 texture.
func (r *Renderer) whiteImage() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}
