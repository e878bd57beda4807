package blocky

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// AirID is the reserved model identifier that never produces geometry
// (spec.md 3).
const AirID uint32 = 0

// Color is a per-voxel modulate color. Alpha is carried through untouched
// by AO shading; only the RGB channels are darkened (spec.md 4.C).
type Color struct {
	R, G, B, A float32
}

// BakedSurface is one (model, material) pair's flat geometry, exactly as
// spec.md 3 describes a "baked surface": six side-indexed arrays for the
// cube faces, plus one set of arrays for non-cubical "inner" geometry.
type BakedSurface struct {
	MaterialID uint32

	SidePositions [SideCount][]mgl32.Vec3
	SideUVs       [SideCount][]mgl32.Vec2
	SideTangents  [SideCount][]float32 // groups of 4 floats per vertex, or empty
	SideIndices   [SideCount][]int

	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Tangents  []float32
	Indices   []int

	CollisionEnabled bool
}

// CubeModel is the cube-face-shaped part of a baked model: which pattern
// occupies each face, which faces never emit geometry, and the surfaces
// drawn per visible face (spec.md 3).
type CubeModel struct {
	SidePatternIndices [SideCount]uint32
	EmptySidesMask     uint8 // bit `side` set => that side never emits geometry
	Surfaces           []BakedSurface
}

// EmptySide reports whether side is marked empty in the model's mask.
func (m CubeModel) EmptySide(side Side) bool {
	return m.EmptySidesMask&(1<<uint(side)) != 0
}

// BakedModel is one entry of a baked library's models table (spec.md 3).
type BakedModel struct {
	Empty             bool
	TransparencyIndex uint32
	ContributesToAO   bool
	Color             Color
	Model             CubeModel
}

// BakedLibrary is the read-only snapshot the mesher consults during a
// build. Spec.md 3/5 describe it as "a read-only snapshot constructed
// offline, guarded by a read-write lock exposed to the mesher as a
// reader"; this type exposes that lock directly (RLock/RUnlock, Lock/
// Unlock) the way a Build call "captures a borrow for the duration of the
// pass" (spec.md 9) instead of hiding locking behind every accessor.
//
// Construction here (NewLibrary/AddModel/SetSidePatternOcclusion) is a
// minimal convenience for building fixtures and small hand-authored
// libraries in Go code — it is not the model-baking pipeline spec.md scopes
// out; it is the equivalent of the teacher repository's block registry
// (internal/registry/blocks.go) building static definitions via struct
// literals rather than a file format.
type BakedLibrary struct {
	mu sync.RWMutex

	models                []BakedModel
	occludes              map[[2]uint32]bool
	indexedMaterialsCount uint32
}

// NewLibrary returns an empty baked library ready to have models added to
// it. Model id 0 is reserved for AirID and is always present as an empty
// model.
func NewLibrary() *BakedLibrary {
	return &BakedLibrary{
		models:   []BakedModel{{Empty: true}},
		occludes: make(map[[2]uint32]bool),
	}
}

// AddModel stores m at id, growing the models table as needed, and returns
// id for convenience. Model id AirID (0) may not be overwritten.
func (l *BakedLibrary) AddModel(id uint32, m BakedModel) uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if id == AirID {
		return id
	}
	if int(id) >= len(l.models) {
		grown := make([]BakedModel, id+1)
		copy(grown, l.models)
		for i := len(l.models); i < len(grown); i++ {
			grown[i] = BakedModel{Empty: true}
		}
		l.models = grown
	}
	l.models[id] = m

	for _, s := range m.Model.Surfaces {
		if s.MaterialID+1 > l.indexedMaterialsCount {
			l.indexedMaterialsCount = s.MaterialID + 1
		}
	}
	return id
}

// SetSidePatternOcclusion records whether pattern a fully occludes pattern
// b (spec.md 3/4.C: "does pattern a occlude pattern b?"). The relation is
// asymmetric; set both directions explicitly if needed.
func (l *BakedLibrary) SetSidePatternOcclusion(a, b uint32, occludes bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.occludes[[2]uint32{a, b}] = occludes
}

// RLock/RUnlock/Lock/Unlock expose the library's lock directly so a Build
// call can hold a single read lock for the whole traversal, matching
// spec.md 5's "builds acquire the reader for the duration of the meshing
// pass."
func (l *BakedLibrary) RLock()   { l.mu.RLock() }
func (l *BakedLibrary) RUnlock() { l.mu.RUnlock() }
func (l *BakedLibrary) Lock()    { l.mu.Lock() }
func (l *BakedLibrary) Unlock()  { l.mu.Unlock() }

// Model returns the baked model at id. Callers must hold at least RLock.
func (l *BakedLibrary) Model(id uint32) (BakedModel, bool) {
	if int(id) >= len(l.models) {
		return BakedModel{}, false
	}
	return l.models[id], true
}

// ModelCount returns the number of entries in the models table. Callers
// must hold at least RLock.
func (l *BakedLibrary) ModelCount() int {
	return len(l.models)
}

// IndexedMaterialsCount returns M, the size of the per-material array
// space 0..M-1 this library's surfaces reference. Callers must hold at least RLock.
func (l *BakedLibrary) IndexedMaterialsCount() uint32 {
	return l.indexedMaterialsCount
}

// SidePatternOccludes reports whether pattern a fully occludes pattern b.
// Unset pairs default to false. Callers must hold at least RLock.
func (l *BakedLibrary) SidePatternOccludes(a, b uint32) bool {
	return l.occludes[[2]uint32{a, b}]
}
