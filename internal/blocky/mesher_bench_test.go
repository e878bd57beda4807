package blocky_test

import (
	"context"
	"testing"

	"blockymesher/internal/blocky"
	"blockymesher/internal/voxelgrid"
)

// BenchmarkBuildSolidBlock mirrors the teacher's meshing benchmark
// convention of resetting the timer after fixture setup so allocation and
// buffer construction don't skew the measured pass.
func BenchmarkBuildSolidBlock(b *testing.B) {
	lib := blocky.NewLibrary()
	lib.AddModel(1, cubeModel(0, 1, false))
	lib.SetSidePatternOcclusion(1, 1, true)

	m := blocky.NewMesher()
	m.SetLibrary(lib)

	const edge = 16
	dim := edge + 2*blocky.PADDING
	buf := voxelgrid.NewBuffer(dim, dim, dim)
	// Set every voxel individually rather than Fill: a uniform-compressed
	// TYPE channel now short-circuits Build entirely (spec.md 4.E, 7), and
	// this benchmark exists to measure the real per-voxel traversal cost
	// of a dense solid block, not the uniform early return.
	for x := 0; x < dim; x++ {
		for y := 0; y < dim; y++ {
			for z := 0; z < dim; z++ {
				buf.Set(x, y, z, blocky.ChannelType, 1)
			}
		}
	}

	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Build(ctx, blocky.Input{Voxels: buf}); err != nil {
			b.Fatal(err)
		}
	}
}
