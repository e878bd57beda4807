package blocky

import "github.com/go-gl/mathgl/mgl32"

// Surface is one material's worth of emitted geometry: parallel arrays
// plus the indices that stitch them into triangles (spec.md 4.D/6).
type Surface struct {
	MaterialIndex uint32
	Positions     []mgl32.Vec3
	Normals       []mgl32.Vec3
	UVs           []mgl32.Vec2
	Colors        []Color
	Tangents      []float32
	Indices       []uint32
}

// Output is the result of a Build call: one surface per material index
// that produced geometry, plus an optional merged collision surface
// (spec.md 4.D, 6).
type Output struct {
	Surfaces      []Surface
	CollisionMesh *CollisionMesh
	UsedChannels  uint32 // bitmask over Channel, which planes the build actually read
}

// CollisionMesh is the merged, material-agnostic triangle soup used for
// physics, built only when Input.CollisionHint is set (spec.md 4.D).
type CollisionMesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
}

// Input bundles what a single Build call needs to read (spec.md 4.D/6).
type Input struct {
	Voxels        VoxelBuffer
	LodIndex      int
	CollisionHint bool
}

// workCache holds the per-material accumulation arrays and bookkeeping a
// single Build call needs. It is pooled across builds (see Mesher) rather
// than allocated fresh each time, mirroring the teacher's per-worker
// scratch buffers (internal/meshing worker pool) reimagined through
// sync.Pool instead of goroutine-local storage.
type workCache struct {
	bySurface map[uint32]*Surface

	collisionPositions []mgl32.Vec3
	collisionIndices   []uint32

	order []uint32 // material indices in first-seen order, for deterministic Output.Surfaces
}

func newWorkCache() *workCache {
	return &workCache{bySurface: make(map[uint32]*Surface)}
}

// reset clears the cache for reuse. The collision and order slices are
// truncated to zero length and keep their backing arrays, matching the
// teacher's pattern of truncating slices instead of reallocating per
// build; the per-material surfaces are removed from the map, since their
// slices are handed to the caller by output.
func (c *workCache) reset() {
	for k := range c.bySurface {
		delete(c.bySurface, k)
	}
	c.collisionPositions = c.collisionPositions[:0]
	c.collisionIndices = c.collisionIndices[:0]
	c.order = c.order[:0]
}

func (c *workCache) surface(materialIndex uint32) *Surface {
	s, ok := c.bySurface[materialIndex]
	if !ok {
		s = &Surface{MaterialIndex: materialIndex}
		c.bySurface[materialIndex] = s
		c.order = append(c.order, materialIndex)
	}
	return s
}

// output drains the cache into a deterministically ordered Output.
func (c *workCache) output(collisionHint bool) Output {
	out := Output{Surfaces: make([]Surface, 0, len(c.order))}
	for _, idx := range c.order {
		out.Surfaces = append(out.Surfaces, *c.bySurface[idx])
	}
	if collisionHint {
		out.CollisionMesh = &CollisionMesh{
			Positions: append([]mgl32.Vec3(nil), c.collisionPositions...),
			Indices:   append([]uint32(nil), c.collisionIndices...),
		}
	}
	return out
}
