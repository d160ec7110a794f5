package forest

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeManagerEmpty(t *testing.T) {
	m, _ := newScene(t)
	assert.Nil(t, m.Camera())
	assert.Nil(t, m.RenderItem())
	assert.Nil(t, m.Node(0))
	assert.Zero(t, m.Len())
	assert.NoError(t, m.Update())
}

func TestNodeManagerIDsAreDenseAndMonotonic(t *testing.T) {
	m, _ := newScene(t)
	var ids []NodeID
	for i := 0; i < 6; i++ {
		if i%2 == 0 {
			ids = append(ids, m.CreateCamera())
		} else {
			ids = append(ids, mustItem(t, m, mgl32.Vec3{}))
		}
	}
	for i, id := range ids {
		assert.Equal(t, NodeID(i), id)
		require.NotNil(t, m.Node(id))
		assert.Equal(t, id, m.Node(id).ID())
	}
	assert.Equal(t, 6, m.Len())
	assert.Equal(t, []NodeID{0, 2, 4}, m.Cameras())
	assert.Equal(t, []NodeID{1, 3, 5}, m.RenderItems())
}

func TestNodeManagerFirstCreatedIsSelected(t *testing.T) {
	m, _ := newScene(t)
	c0 := m.CreateCamera()
	m.CreateCamera()
	i0 := mustItem(t, m, mgl32.Vec3{})
	mustItem(t, m, mgl32.Vec3{})

	require.NotNil(t, m.Camera())
	assert.Equal(t, c0, m.Camera().ID())
	require.NotNil(t, m.RenderItem())
	assert.Equal(t, i0, m.RenderItem().ID())
	assert.Same(t, m.Node(c0), m.Camera())
}

func TestNodeManagerCreateCameraAt(t *testing.T) {
	m, _ := newScene(t)
	id := m.CreateCameraAt(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 0, 1})
	c := m.Node(id).(*Camera)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Eye())
	assertVecNear(t, mgl32.Vec3{1, 0, 0}, c.Direction())
	assertVecNear(t, mgl32.Vec3{0, 0, 1}, c.Up())

	assert.Panics(t, func() { m.CreateCameraAt(mgl32.Vec3{}, mgl32.Vec3{}, WorldY) })
	assert.Equal(t, 1, m.Len(), "a rejected camera consumes no id")
}

func TestNodeManagerSelectNextWraps(t *testing.T) {
	m, _ := newScene(t)
	// Cameras at ids 0, 2 and 5.
	m.CreateCamera()
	mustItem(t, m, mgl32.Vec3{})
	m.CreateCamera()
	mustItem(t, m, mgl32.Vec3{})
	mustItem(t, m, mgl32.Vec3{})
	m.CreateCamera()
	require.Equal(t, []NodeID{0, 2, 5}, m.Cameras())

	require.True(t, m.SelectCamera(5))
	require.True(t, m.SelectNextCamera())
	assert.Equal(t, NodeID(0), m.Camera().ID())
	require.True(t, m.SelectNextCamera())
	assert.Equal(t, NodeID(2), m.Camera().ID())

	require.True(t, m.SelectRenderItem(4))
	require.True(t, m.SelectNextRenderItem())
	assert.Equal(t, NodeID(1), m.RenderItem().ID())
}

func TestNodeManagerIDListsAreCopies(t *testing.T) {
	m, _ := newScene(t)
	m.CreateCamera()
	m.CreateCamera()
	mustItem(t, m, mgl32.Vec3{})

	cams := m.Cameras()
	cams[1] = 99
	items := m.RenderItems()
	items[0] = 42

	assert.Equal(t, []NodeID{0, 1}, m.Cameras())
	assert.Equal(t, []NodeID{2}, m.RenderItems())
	require.True(t, m.SelectNextCamera())
	require.NotNil(t, m.Camera())
	assert.Equal(t, NodeID(1), m.Camera().ID())
	require.NotNil(t, m.RenderItem())
	assert.Equal(t, NodeID(2), m.RenderItem().ID())
}

func TestNodeManagerSelectNextEmpty(t *testing.T) {
	m, _ := newScene(t)
	mustItem(t, m, mgl32.Vec3{})
	assert.False(t, m.SelectNextCamera())
	assert.Nil(t, m.Camera())

	m2, _ := newScene(t)
	m2.CreateCamera()
	assert.False(t, m2.SelectNextRenderItem())
	assert.Nil(t, m2.RenderItem())
}

func TestNodeManagerSelectTypeMismatch(t *testing.T) {
	log, buf := bufferLogger()
	m := NewNodeManager(&fakeRenderer{}, log)
	cam := m.CreateCamera()
	item := mustItem(t, m, mgl32.Vec3{})

	assert.False(t, m.SelectCamera(item))
	assert.Equal(t, cam, m.Camera().ID(), "selection must be unchanged")
	assert.Contains(t, buf.String(), "wrong kind")

	assert.False(t, m.SelectRenderItem(cam))
	assert.Equal(t, item, m.RenderItem().ID())
}

func TestNodeManagerSelectUnknownID(t *testing.T) {
	log, buf := bufferLogger()
	m := NewNodeManager(nil, log)
	cam := m.CreateCamera()

	assert.False(t, m.SelectCamera(99))
	assert.False(t, m.SelectRenderItem(99))
	assert.Equal(t, cam, m.Camera().ID())
	assert.Nil(t, m.RenderItem())
	assert.Contains(t, buf.String(), "no such node")
}

func TestNodeManagerTranslateThenScaleScenario(t *testing.T) {
	m, _ := newScene(t)
	m.CreateCamera()
	mustItem(t, m, mgl32.Vec3{})

	it := m.RenderItem()
	require.NotNil(t, it)
	it.Translate(mgl32.Vec3{1, 0, 0})
	it.Scale(mgl32.Vec3{-2, 0, 0})

	assert.Equal(t, mgl32.Vec3{1, 0, 0}, it.Position())
	assert.Equal(t, mgl32.Vec3{0.1, 1, 1}, it.ScaleFactors())
}

func TestNodeManagerCreateRenderItemUploads(t *testing.T) {
	m, r := newScene(t)
	id := mustItem(t, m, mgl32.Vec3{0, 0, -2})
	require.Len(t, r.uploads, 1)
	assert.Equal(t, Quad(), r.uploads[0])
	assert.Same(t, r.geometries[0], m.Node(id).(*RenderItem).Geometry())
}

func TestNodeManagerCreateRenderItemInvalidMesh(t *testing.T) {
	m, r := newScene(t)
	_, err := m.CreateRenderItem(Mesh{Vertices: []float32{1, 2, 3}}, mgl32.Vec3{}, mgl32.Vec3{}, one)
	assert.ErrorIs(t, err, ErrInvalidMesh)
	assert.Zero(t, m.Len())
	assert.Nil(t, m.RenderItem())
	assert.Empty(t, r.uploads)
}

func TestNodeManagerCreateRenderItemUploadFails(t *testing.T) {
	m, r := newScene(t)
	r.uploadErr = errUploadRefused
	_, err := m.CreateRenderItem(Quad(), mgl32.Vec3{}, mgl32.Vec3{}, one)
	assert.ErrorIs(t, err, errUploadRefused)
	assert.Zero(t, m.Len())

	r.uploadErr = nil
	id := mustItem(t, m, mgl32.Vec3{})
	assert.Equal(t, NodeID(0), id)
}

func TestNodeManagerUpdateSweepsInCreationOrder(t *testing.T) {
	m, r := newScene(t)
	m.CreateCamera()
	mustItem(t, m, mgl32.Vec3{1, 0, 0})
	mustItem(t, m, mgl32.Vec3{2, 0, 0})

	require.NoError(t, m.Update())
	require.Len(t, r.submitted, 2)
	assert.Same(t, r.geometries[0], r.submitted[0].geo)
	assert.Same(t, r.geometries[1], r.submitted[1].geo)
	assert.Equal(t, mgl32.Translate3D(2, 0, 0), r.submitted[1].model)
}

func TestNodeManagerUpdateContinuesPastFailure(t *testing.T) {
	log, buf := bufferLogger()
	r := &fakeRenderer{}
	m := NewNodeManager(r, log)
	first := mustItem(t, m, mgl32.Vec3{})
	mustItem(t, m, mgl32.Vec3{})
	m.nodes[first].release()

	err := m.Update()
	assert.ErrorIs(t, err, ErrReleased)
	require.Len(t, r.submitted, 1, "the healthy node must still submit")
	assert.Same(t, r.geometries[1], r.submitted[0].geo)
	assert.Contains(t, buf.String(), "node update failed")
}

func TestNodeManagerCloseReleasesOnce(t *testing.T) {
	m, r := newScene(t)
	m.CreateCamera()
	mustItem(t, m, mgl32.Vec3{})
	mustItem(t, m, mgl32.Vec3{})

	m.Close()
	m.Close()
	for i, g := range r.geometries {
		assert.Equal(t, 1, g.releases, "geometry %d", i)
	}
	assert.Panics(t, func() { m.CreateCamera() })

	err := m.Update()
	require.Error(t, err)
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 2)
}

func TestNodeManagerDefaults(t *testing.T) {
	m, _ := newScene(t)
	lens := Lens{FovY: 70, Near: 0.5, Far: 50}
	m.SetDefaultLens(lens)
	m.SetScaleMin(0.5)
	c := m.Node(m.CreateCamera()).(*Camera)
	assert.Equal(t, lens, c.Lens())

	it := m.Node(mustItem(t, m, mgl32.Vec3{})).(*RenderItem)
	it.Scale(mgl32.Vec3{-1, -1, -1})
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, it.ScaleFactors())

	assert.Panics(t, func() { m.SetScaleMin(0) })
}

func TestNodeManagerEvents(t *testing.T) {
	m, _ := newScene(t)
	store := &recordingStore{}
	m.SetEventStore(store)

	cam := m.CreateCamera()
	cam2 := m.CreateCamera()
	m.SelectCamera(cam2)
	m.SelectCamera(42)

	assert.Equal(t, []SceneEvent{
		{Type: SceneNodeCreated, NodeID: cam, Kind: KindCamera},
		{Type: SceneSelectionChanged, NodeID: cam, Kind: KindCamera},
		{Type: SceneNodeCreated, NodeID: cam2, Kind: KindCamera},
		{Type: SceneSelectionChanged, NodeID: cam2, Kind: KindCamera},
	}, store.events)
}

func TestNodeManagerDebugMode(t *testing.T) {
	log, buf := bufferLogger()
	m := NewNodeManager(nil, log)
	m.CreateCamera()

	require.NoError(t, m.Update())
	assert.NotContains(t, buf.String(), "msg=sweep")

	m.SetDebugMode(true)
	require.NoError(t, m.Update())
	assert.Contains(t, buf.String(), "msg=sweep")
	assert.Contains(t, buf.String(), "nodes=1")
}
