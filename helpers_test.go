package forest

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVecNear(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		if !assert.InDelta(t, want[i], got[i], tol, msgAndArgs...) {
			t.Logf("want %v, got %v", want, got)
			return
		}
	}
}

func assertMatNear(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		if !assert.InDelta(t, want[i], got[i], tol, "element %d", i) {
			t.Logf("want %v, got %v", want, got)
			return
		}
	}
}

// fakeGeometry counts releases.
type fakeGeometry struct {
	indices  int
	releases int
}

func (g *fakeGeometry) IndexCount() int { return g.indices }
func (g *fakeGeometry) Release()        { g.releases++ }

// fakeRenderer records everything it is handed.
type fakeRenderer struct {
	uploads    []Mesh
	geometries []*fakeGeometry
	uploadErr  error

	view, proj mgl32.Mat4
	setViews   int

	submitted []fakeSubmit
}

type fakeSubmit struct {
	geo   Geometry
	model mgl32.Mat4
}

func (r *fakeRenderer) Upload(m Mesh) (Geometry, error) {
	if r.uploadErr != nil {
		return nil, r.uploadErr
	}
	r.uploads = append(r.uploads, m)
	g := &fakeGeometry{indices: len(m.Indices)}
	r.geometries = append(r.geometries, g)
	return g, nil
}

func (r *fakeRenderer) SetView(view, projection mgl32.Mat4) {
	r.view, r.proj = view, projection
	r.setViews++
}

func (r *fakeRenderer) Submit(g Geometry, model mgl32.Mat4) {
	r.submitted = append(r.submitted, fakeSubmit{geo: g, model: model})
}

var errUploadRefused = errors.New("upload refused")

// recordingStore collects scene events.
type recordingStore struct {
	events []SceneEvent
}

func (s *recordingStore) EmitEvent(e SceneEvent) { s.events = append(s.events, e) }

// bufferLogger returns a debug-level logger and the buffer it writes to.
func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogger(&buf, slog.LevelDebug), &buf
}

var one = mgl32.Vec3{1, 1, 1}

// newScene returns a manager backed by a fake renderer.
func newScene(t *testing.T) (*NodeManager, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{}
	return NewNodeManager(r, nil), r
}

func mustItem(t *testing.T, m *NodeManager, pos mgl32.Vec3) NodeID {
	t.Helper()
	id, err := m.CreateRenderItem(Quad(), pos, mgl32.Vec3{}, one)
	if err != nil {
		t.Fatalf("create render item: %v", err)
	}
	return id
}
