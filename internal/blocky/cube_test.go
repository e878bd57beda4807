package blocky

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOppositeSideIsInvolution(t *testing.T) {
	for side := Side(0); side < SideCount; side++ {
		assert.Equal(t, side, oppositeSide[oppositeSide[side]])
	}
}

func TestSideNormalsAreUnitAxisAligned(t *testing.T) {
	for side := Side(0); side < SideCount; side++ {
		n := sideNormals[side]
		assert.InDelta(t, 1, n.Dot(n), 1e-6)
		nonZero := 0
		for _, c := range n {
			if c != 0 {
				nonZero++
			}
		}
		assert.Equal(t, 1, nonZero)
	}
}

func TestEveryCornerBordersThreeSides(t *testing.T) {
	counts := make(map[Corner]int)
	for side := Side(0); side < SideCount; side++ {
		for _, c := range sideCorners[side] {
			counts[c]++
		}
	}
	for c := Corner(0); c < CornerCount; c++ {
		assert.Equal(t, 3, counts[c])
	}
}

func TestEdgeCornersAreDistinct(t *testing.T) {
	for e := Edge(0); e < EdgeCount; e++ {
		a, b := edgeCorners[e][0], edgeCorners[e][1]
		assert.NotEqual(t, a, b)
	}
}
