package blocky_test

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blockymesher/internal/blocky"
	"blockymesher/internal/voxelgrid"
)

// cubeModel returns a BakedModel whose every side has one quad surface on
// materialIndex, tagged with sidePattern for occlusion tests.
func cubeModel(materialIndex uint32, sidePattern uint32, transparent bool) blocky.BakedModel {
	surf := blocky.BakedSurface{MaterialID: materialIndex}
	quad := []mgl32.Vec3{{}, {}, {}, {}}
	uvs := []mgl32.Vec2{{}, {}, {}, {}}
	for side := blocky.Side(0); side < blocky.SideCount; side++ {
		surf.SidePositions[side] = quad
		surf.SideUVs[side] = uvs
		surf.SideIndices[side] = []int{0, 1, 2, 0, 2, 3}
	}
	m := blocky.BakedModel{
		ContributesToAO: !transparent,
		Color:           blocky.Color{R: 1, G: 1, B: 1, A: 1},
		Model:           blocky.CubeModel{Surfaces: []blocky.BakedSurface{surf}},
	}
	for side := blocky.Side(0); side < blocky.SideCount; side++ {
		m.Model.SidePatternIndices[side] = sidePattern
	}
	return m
}

func newMesherWithLibrary(t *testing.T, configure func(lib *blocky.BakedLibrary)) *blocky.Mesher {
	t.Helper()
	lib := blocky.NewLibrary()
	configure(lib)
	m := blocky.NewMesher()
	m.SetLibrary(lib)
	return m
}

func TestBuildOnEmptyWorldProducesNoSurfaces(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {})
	buf := voxelgrid.NewBuffer(3, 3, 3) // all air by default

	out, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	require.NoError(t, err)
	assert.Empty(t, out.Surfaces)
}

func TestBuildSingleOpaqueCubeEmitsSixFaces(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		lib.AddModel(1, cubeModel(0, 1, false))
		lib.SetSidePatternOcclusion(1, 1, true)
	})
	buf := voxelgrid.NewBuffer(3, 3, 3)
	buf.Set(1, 1, 1, blocky.ChannelType, 1)

	out, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	require.NoError(t, err)
	require.Len(t, out.Surfaces, 1)
	assert.Equal(t, 6*4, len(out.Surfaces[0].Positions))
	assert.Equal(t, 6*6, len(out.Surfaces[0].Indices))
}

func TestBuildUniformTypeChannelShortCircuits(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		lib.AddModel(1, cubeModel(0, 1, false))
		// Deliberately asymmetric: self-occlusion is off, so a
		// non-uniform traversal of this buffer would emit faces.
		lib.SetSidePatternOcclusion(1, 1, false)
	})
	buf := voxelgrid.NewBuffer(4, 4, 4)
	buf.Fill(blocky.ChannelType, 1) // stays uniform-compressed

	out, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	require.NoError(t, err)
	assert.Empty(t, out.Surfaces, "a uniform TYPE channel must short-circuit Build regardless of occlusion")
}

func TestBuildCubeFaceTangentsFollowVertexCountInvariant(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		model := cubeModel(0, 1, false)
		tangents := []float32{1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1}
		for side := blocky.Side(0); side < blocky.SideCount; side++ {
			model.Model.Surfaces[0].SideTangents[side] = tangents
		}
		lib.AddModel(1, model)
		lib.SetSidePatternOcclusion(1, 1, true)
	})
	buf := voxelgrid.NewBuffer(3, 3, 3)
	buf.Set(1, 1, 1, blocky.ChannelType, 1)

	out, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	require.NoError(t, err)
	require.Len(t, out.Surfaces, 1)
	surf := out.Surfaces[0]
	assert.Equal(t, 4*len(surf.Positions), len(surf.Tangents))
}

func TestBuildCubeFaceOmitsTangentsWhenModelHasNone(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		lib.AddModel(1, cubeModel(0, 1, false))
		lib.SetSidePatternOcclusion(1, 1, true)
	})
	buf := voxelgrid.NewBuffer(3, 3, 3)
	buf.Set(1, 1, 1, blocky.ChannelType, 1)

	out, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	require.NoError(t, err)
	require.Len(t, out.Surfaces, 1)
	assert.Empty(t, out.Surfaces[0].Tangents)
}

func TestBuildTwoAdjacentOpaqueCubesCullSharedFace(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		lib.AddModel(1, cubeModel(0, 1, false))
		lib.SetSidePatternOcclusion(1, 1, true)
	})
	buf := voxelgrid.NewBuffer(4, 3, 3)
	buf.Set(1, 1, 1, blocky.ChannelType, 1)
	buf.Set(2, 1, 1, blocky.ChannelType, 1)

	out, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	require.NoError(t, err)
	require.Len(t, out.Surfaces, 1)
	// 12 faces total (6 per cube) minus the 2 faces on the shared boundary.
	assert.Equal(t, 10*4, len(out.Surfaces[0].Positions))
}

func TestBuildTransparentNeighborLeavesFaceVisible(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		lib.AddModel(1, cubeModel(0, 1, false))
		lib.AddModel(2, cubeModel(0, 2, true))
		lib.SetSidePatternOcclusion(1, 1, true)
		// No occlusion registered between pattern 1 and pattern 2 (glass).
	})
	buf := voxelgrid.NewBuffer(4, 3, 3)
	buf.Set(1, 1, 1, blocky.ChannelType, 1)
	buf.Set(2, 1, 1, blocky.ChannelType, 2)

	out, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	require.NoError(t, err)
	require.Len(t, out.Surfaces, 1)
	// Both cubes keep all six faces: nothing occludes either side.
	assert.Equal(t, 12*4, len(out.Surfaces[0].Positions))
}

func TestBuildReturnsNullLibraryError(t *testing.T) {
	m := blocky.NewMesher()
	buf := voxelgrid.NewBuffer(3, 3, 3)

	_, err := m.Build(context.Background(), blocky.Input{Voxels: buf})
	assert.ErrorIs(t, err, &blocky.Error{Kind: blocky.ErrNullLibrary})
}

func TestValidateWarnsOnMissingLibrary(t *testing.T) {
	m := blocky.NewMesher()
	assert.NotEmpty(t, m.Validate())
}

func TestCloneSharesLibraryByDefault(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		lib.AddModel(1, cubeModel(0, 1, false))
	})
	clone := m.Clone(false)
	assert.Same(t, m.GetLibrary(), clone.GetLibrary())
}

func TestCloneDeepCopyGetsFreshLibrary(t *testing.T) {
	m := newMesherWithLibrary(t, func(lib *blocky.BakedLibrary) {
		lib.AddModel(1, cubeModel(0, 1, false))
	})
	clone := m.Clone(true)
	assert.NotSame(t, m.GetLibrary(), clone.GetLibrary())
}

func TestOcclusionDarknessClampsToUnitRange(t *testing.T) {
	m := blocky.NewMesher()
	m.SetOcclusionDarkness(5)
	assert.Equal(t, float32(1), m.GetOcclusionDarkness())
	m.SetOcclusionDarkness(-5)
	assert.Equal(t, float32(0), m.GetOcclusionDarkness())
}
