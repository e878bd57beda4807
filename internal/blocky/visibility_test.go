package blocky

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func opaqueModel(pattern uint32) BakedModel {
	m := BakedModel{ContributesToAO: true}
	for side := Side(0); side < SideCount; side++ {
		m.Model.SidePatternIndices[side] = pattern
	}
	return m
}

func TestFaceVisibleAgainstAirNeighbor(t *testing.T) {
	lib := NewLibrary()
	assert.True(t, faceVisible(lib, opaqueModel(1), BakedModel{Empty: true}, SideTop))
}

func TestFaceNotVisibleWhenSideMarkedEmpty(t *testing.T) {
	lib := NewLibrary()
	m := opaqueModel(1)
	m.Model.EmptySidesMask = 1 << uint(SideTop)
	assert.False(t, faceVisible(lib, m, BakedModel{Empty: true}, SideTop))
}

func TestFaceCulledBetweenTwoIdenticalOpaqueNeighbors(t *testing.T) {
	lib := NewLibrary()
	lib.SetSidePatternOcclusion(1, 1, true)

	a, b := opaqueModel(1), opaqueModel(1)
	assert.False(t, faceVisible(lib, a, b, SideTop), "identical opaque neighbors should cull the shared face")
}

func TestFaceVisibleWhenNeighborPatternDoesNotOcclude(t *testing.T) {
	lib := NewLibrary()
	// Pattern 2 (e.g. glass) never registered as occluding pattern 1.
	a := opaqueModel(1)
	b := opaqueModel(2)
	assert.True(t, faceVisible(lib, a, b, SideTop))
}

func TestContributesToAOIgnoresAir(t *testing.T) {
	assert.False(t, contributesToAO(BakedModel{Empty: true, ContributesToAO: true}))
	assert.True(t, contributesToAO(BakedModel{ContributesToAO: true}))
}

func TestShadeCornerSaturatesOnBothEdges(t *testing.T) {
	c := shadeCorner(true, true, false)
	assert.True(t, c.saturated)
	assert.Equal(t, float32(1), shadeFactor(c, 1))
}

func TestShadeCornerCountsAllThreeNeighbors(t *testing.T) {
	c := shadeCorner(true, false, true)
	assert.False(t, c.saturated)
	assert.Equal(t, 2, c.count)
	assert.InDelta(t, float32(2)/3, shadeFactor(c, 1), 1e-6)
}

func TestShadeCornerFullyLitWhenNothingSolid(t *testing.T) {
	c := shadeCorner(false, false, false)
	assert.Equal(t, float32(0), shadeFactor(c, 1))
}

func TestApplyShadePreservesAlpha(t *testing.T) {
	c := applyShade(Color{R: 1, G: 1, B: 1, A: 0.5}, 0.5)
	assert.InDelta(t, 0.5, c.R, 1e-6)
	assert.InDelta(t, 0.5, c.A, 1e-6)
}
