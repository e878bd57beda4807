package blocky

import (
	"context"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"blockymesher/internal/profiling"
)

// meshParams is the mesher's mutable configuration, guarded by Mesher.mu.
// Grounded on the teacher's internal/config package: settings are read
// once per Build under a read lock rather than re-checked field by field
// (spec.md 5, 9: "the build reader captures a borrow for the duration of
// the pass").
type meshParams struct {
	library           *BakedLibrary
	occlusionEnabled  bool
	occlusionDarkness float32
	sideResolver      SideResolver
}

// Mesher turns padded voxel buffers into per-material triangle surfaces.
// A zero Mesher is not ready to use; call NewMesher.
type Mesher struct {
	mu     sync.RWMutex
	params meshParams
	pool   sync.Pool
}

// NewMesher returns a Mesher with occlusion enabled at the engine's
// default darkness (spec.md 3's default of 0.8).
func NewMesher() *Mesher {
	m := &Mesher{}
	m.params.occlusionEnabled = true
	m.params.occlusionDarkness = 0.8
	m.pool.New = func() any { return newWorkCache() }
	return m
}

func (m *Mesher) SetLibrary(lib *BakedLibrary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.library = lib
}

func (m *Mesher) GetLibrary() *BakedLibrary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params.library
}

func (m *Mesher) SetOcclusionEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.occlusionEnabled = enabled
}

func (m *Mesher) GetOcclusionEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params.occlusionEnabled
}

// SetOcclusionDarkness clamps darkness to [0, 1] before storing it
// (spec.md 3).
func (m *Mesher) SetOcclusionDarkness(darkness float32) {
	if darkness < 0 {
		darkness = 0
	} else if darkness > 1 {
		darkness = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.occlusionDarkness = darkness
}

func (m *Mesher) GetOcclusionDarkness() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params.occlusionDarkness
}

// SetSideResolver attaches an optional per-side material override. A nil
// resolver reproduces the base mesher's behavior exactly (spec.md 4.F).
func (m *Mesher) SetSideResolver(r SideResolver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params.sideResolver = r
}

func (m *Mesher) GetSideResolver() SideResolver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params.sideResolver
}

// MaterialCount returns the number of material slots the mesher can emit
// into: the base library's slots, plus the side library's slots if the
// attached resolver is one returned by NewSideResolver (spec.md 10).
func (m *Mesher) MaterialCount() uint32 {
	m.mu.RLock()
	lib, resolver := m.params.library, m.params.sideResolver
	m.mu.RUnlock()
	if lib == nil {
		return 0
	}
	lib.RLock()
	count := lib.IndexedMaterialsCount()
	lib.RUnlock()
	if sr, ok := resolver.(*blockySideResolver); ok && sr != nil {
		count += sr.sideLibrary.MaterialCount()
	}
	return count
}

// MaterialByIndex resolves a global material slot back to its owning
// library and local index: indices below the base library's count belong
// to it; the rest belong to the side library (spec.md 10).
func (m *Mesher) MaterialByIndex(i uint32) (library string, localIndex uint32, ok bool) {
	m.mu.RLock()
	lib, resolver := m.params.library, m.params.sideResolver
	m.mu.RUnlock()
	if lib == nil {
		return "", 0, false
	}
	lib.RLock()
	baseCount := lib.IndexedMaterialsCount()
	lib.RUnlock()
	if i < baseCount {
		return "base", i, true
	}
	if sr, ok := resolver.(*blockySideResolver); ok && sr != nil {
		local := i - baseCount
		if local < sr.sideLibrary.MaterialCount() {
			return "side", local, true
		}
	}
	return "", 0, false
}

// UsedChannelsMask reports which channels a Build call with the current
// configuration reads: TYPE always, plus the six side-data channels when
// the attached resolver is one returned by NewSideResolver. It does not
// depend on any earlier Build call.
func (m *Mesher) UsedChannelsMask() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mask := uint32(1) << ChannelType
	if sr, ok := m.params.sideResolver.(*blockySideResolver); ok && sr != nil {
		mask |= sr.channelMask()
	}
	return mask
}

// Validate returns human-readable configuration problems that Build would
// not otherwise surface as an error, mirroring the original engine's
// non-fatal "configuration warnings" (spec.md 10).
func (m *Mesher) Validate() []string {
	m.mu.RLock()
	lib := m.params.library
	m.mu.RUnlock()

	var warnings []string
	if lib == nil {
		warnings = append(warnings, "no library assigned")
		return warnings
	}
	lib.RLock()
	defer lib.RUnlock()
	if lib.ModelCount() <= 1 {
		warnings = append(warnings, "library has no baked models besides air")
	}
	return warnings
}

// Clone returns a copy of the mesher's parameters. When deepCopyLibrary is
// false the clone shares the same *BakedLibrary (spec.md 10's
// duplicate(subresources)); when true it is left with a fresh empty
// library the caller is expected to populate, since this module does not
// implement library serialization.
func (m *Mesher) Clone(deepCopyLibrary bool) *Mesher {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clone := NewMesher()
	clone.params.occlusionEnabled = m.params.occlusionEnabled
	clone.params.occlusionDarkness = m.params.occlusionDarkness
	clone.params.sideResolver = m.params.sideResolver
	if deepCopyLibrary {
		clone.params.library = NewLibrary()
	} else {
		clone.params.library = m.params.library
	}
	return clone
}

// Build meshes one voxel buffer into per-material surfaces (spec.md 4.D,
// 4.E). It acquires the mesher's parameters and the library's read lock
// for the whole pass, matching spec.md 5's concurrency model: many builds
// may run against the same Mesher and library concurrently; none of them
// block each other.
func (m *Mesher) Build(ctx context.Context, in Input) (Output, error) {
	defer profiling.Track("blocky.Build")()

	m.mu.RLock()
	lib := m.params.library
	occlusionEnabled := m.params.occlusionEnabled
	darkness := m.params.occlusionDarkness
	sideResolver := m.params.sideResolver
	m.mu.RUnlock()

	if lib == nil {
		return Output{}, &Error{Kind: ErrNullLibrary}
	}

	if in.LodIndex != 0 {
		slog.Warn("blocky: LOD is not supported, meshing at full detail", "lod_index", in.LodIndex)
	}

	lib.RLock()
	defer lib.RUnlock()

	buf := in.Voxels

	// A uniform TYPE channel means every voxel in the buffer — including
	// its padding — is the same model. Build returns no geometry for such
	// a buffer whatever the model's side-pattern occlusion says; this is an
	// unconditional early return, not a computed outcome of running the
	// face-visibility checks (spec.md 4.E, 7).
	if buf.ChannelCompression(ChannelType) == CompressionUniform {
		return Output{}, nil
	}

	sx, sy, sz := buf.Size()
	row, deck := sy, sx*sy
	index := func(x, y, z int) int { return y + x*row + z*deck }

	typeSrc, err := newTypeSource(buf, ChannelType)
	if err != nil {
		return Output{}, err
	}

	if binder, ok := sideResolver.(interface{ bind(VoxelBuffer) error }); ok {
		if err := binder.bind(buf); err != nil {
			return Output{}, err
		}
	}

	neighbors := newNeighborOffsets(row, deck)

	cache := m.pool.Get().(*workCache)
	cache.reset()
	defer func() {
		cache.reset()
		m.pool.Put(cache)
	}()

	solid := func(idx int) (BakedModel, bool) {
		model, ok := lib.Model(typeSrc.at(idx))
		if !ok {
			return BakedModel{}, false
		}
		return model, !model.Empty
	}

	for z := PADDING; z < sz-PADDING; z++ {
		select {
		case <-ctx.Done():
			return Output{}, ctx.Err()
		default:
		}

		for x := PADDING; x < sx-PADDING; x++ {
			for y := PADDING; y < sy-PADDING; y++ {
				idx := index(x, y, z)
				modelID := typeSrc.at(idx)
				model, ok := lib.Model(modelID)
				if !ok {
					continue
				}
				if model.Empty {
					continue
				}

				origin := mgl32.Vec3{float32(x - PADDING), float32(y - PADDING), float32(z - PADDING)}

				for side := Side(0); side < SideCount; side++ {
					nIdx := idx + neighbors.sides[side]
					neighborModel, _ := lib.Model(typeSrc.at(nIdx))
					if !faceVisible(lib, model, neighborModel, side) {
						continue
					}

					// A side resolver only overrides which material slot a
					// face's geometry is appended to; it never changes the
					// face's shape (spec.md 4.F).
					materialOverride, overridden := uint32(0), false
					if sideResolver != nil {
						if materialID, ok := sideResolver.Resolve(side, x, y, z, idx); ok {
							materialOverride = lib.IndexedMaterialsCount() + materialID
							overridden = true
						}
					}

					for _, surf := range model.Model.Surfaces {
						sidePositions := surf.SidePositions[side]
						if len(surf.SideIndices[side]) == 0 || len(sidePositions) == 0 {
							continue
						}
						shade := [4]float32{0, 0, 0, 0}
						if occlusionEnabled && contributesToAO(model) {
							shade = m.shadeSide(solid, idx, &neighbors, side, darkness)
						}
						corners := sideCorners[side]
						sideUVs := surf.SideUVs[side]
						sideTangents := surf.SideTangents[side]

						materialIndex := surf.MaterialID
						if overridden {
							materialIndex = materialOverride
						}
						out := cache.surface(materialIndex)
						base := uint32(len(out.Positions))
						for i, p := range sidePositions {
							out.Positions = append(out.Positions, origin.Add(p))
							out.Normals = append(out.Normals, sideNormals[side])
							if i < len(sideUVs) {
								out.UVs = append(out.UVs, sideUVs[i])
							} else {
								out.UVs = append(out.UVs, mgl32.Vec2{})
							}
							factor := blendCornerShade(p, corners, shade)
							out.Colors = append(out.Colors, applyShade(model.Color, factor))
							if i*4+3 < len(sideTangents) {
								out.Tangents = append(out.Tangents, sideTangents[i*4:i*4+4]...)
							}
						}
						for _, localIdx := range surf.SideIndices[side] {
							out.Indices = append(out.Indices, base+uint32(localIdx))
						}

						if in.CollisionHint && surf.CollisionEnabled {
							cbase := uint32(len(cache.collisionPositions))
							cache.collisionPositions = append(cache.collisionPositions, out.Positions[int(base):]...)
							for _, localIdx := range surf.SideIndices[side] {
								cache.collisionIndices = append(cache.collisionIndices, cbase+uint32(localIdx))
							}
						}
					}
				}

				for _, surf := range model.Model.Surfaces {
					if len(surf.Positions) == 0 {
						continue
					}
					out := cache.surface(surf.MaterialID)
					base := uint32(len(out.Positions))
					for i, p := range surf.Positions {
						out.Positions = append(out.Positions, origin.Add(p))
						out.Normals = append(out.Normals, surf.Normals[i])
						out.UVs = append(out.UVs, surf.UVs[i])
						out.Colors = append(out.Colors, model.Color)
						if i*4+3 < len(surf.Tangents) {
							out.Tangents = append(out.Tangents, surf.Tangents[i*4:i*4+4]...)
						}
					}
					for _, localIdx := range surf.Indices {
						out.Indices = append(out.Indices, base+uint32(localIdx))
					}
					if in.CollisionHint && surf.CollisionEnabled {
						cbase := uint32(len(cache.collisionPositions))
						cache.collisionPositions = append(cache.collisionPositions, out.Positions[int(base):]...)
						for _, localIdx := range surf.Indices {
							cache.collisionIndices = append(cache.collisionIndices, cbase+uint32(localIdx))
						}
					}
				}
			}
		}
	}

	out := cache.output(in.CollisionHint)
	out.UsedChannels = uint32(1) << ChannelType
	if sr, ok := sideResolver.(*blockySideResolver); ok && sr != nil {
		out.UsedChannels |= sr.channelMask()
	}
	return out, nil
}

// shadeSide computes the four corner shade factors for a face, walking
// the corner table built around that side (spec.md 4.C).
func (m *Mesher) shadeSide(solid func(int) (BakedModel, bool), idx int, neighbors *neighborOffsets, side Side, darkness float32) [4]float32 {
	corners := sideCorners[side]
	edges := sideEdges[side]
	var out [4]float32
	for i, corner := range corners {
		// Each side corner touches exactly two of the side's four edges;
		// find them by checking which edges include this corner.
		var e1, e2 Edge = -1, -1
		for _, e := range edges {
			ec := edgeCorners[e]
			if ec[0] == corner || ec[1] == corner {
				if e1 == -1 {
					e1 = e
				} else {
					e2 = e
				}
			}
		}
		side1Solid := false
		side2Solid := false
		cornerSolid := false
		if e1 >= 0 {
			if mdl, ok := solid(idx + neighbors.edges[e1]); ok {
				side1Solid = contributesToAO(mdl)
			}
		}
		if e2 >= 0 {
			if mdl, ok := solid(idx + neighbors.edges[e2]); ok {
				side2Solid = contributesToAO(mdl)
			}
		}
		if mdl, ok := solid(idx + neighbors.corners[corner]); ok {
			cornerSolid = contributesToAO(mdl)
		}
		shade := shadeCorner(side1Solid, side2Solid, cornerSolid)
		out[i] = shadeFactor(shade, darkness)
	}
	return out
}

// readWord decodes a single little-endian element of type T out of data
// at word index idx, replacing the C++ template specialization per word
// width with a Go generic constrained to the two supported widths
// (spec.md 6).
func readWord[T ~uint8 | ~uint16](data []byte, idx int) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(data[idx])
	case uint16:
		off := idx * 2
		return T(uint16(data[off]) | uint16(data[off+1])<<8)
	}
	return zero
}

type typeSource interface {
	at(idx int) uint32
}

type wordSource[T ~uint8 | ~uint16] struct {
	data []byte
}

func (w wordSource[T]) at(idx int) uint32 {
	return uint32(readWord[T](w.data, idx))
}

type uniformSource struct {
	value uint32
}

func (u uniformSource) at(idx int) uint32 {
	return u.value
}

// newTypeSource resolves how to read a channel's values for the duration
// of one Build call, dispatching once on compression and depth instead of
// per voxel (spec.md 4.E, 7).
func newTypeSource(buf VoxelBuffer, ch Channel) (typeSource, error) {
	switch buf.ChannelCompression(ch) {
	case CompressionUniform:
		return uniformSource{value: uint32(buf.Voxel(PADDING, PADDING, PADDING, ch))}, nil
	case CompressionNone:
		raw, ok := buf.ChannelRaw(ch)
		if !ok {
			return nil, &Error{Kind: ErrBadBuffer}
		}
		switch buf.ChannelDepth(ch) {
		case Depth8:
			return wordSource[uint8]{data: raw}, nil
		case Depth16:
			return wordSource[uint16]{data: raw}, nil
		default:
			return nil, &Error{Kind: ErrUnsupportedDepth}
		}
	default:
		return nil, &Error{Kind: ErrUnsupportedCompression}
	}
}
