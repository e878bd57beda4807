// Command blockydemo exercises a Mesher end to end against a small
// hand-built voxel buffer and library, without any rendering backend: it
// prints surface, vertex and index counts so the meshing pass can be
// sanity-checked from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"blockymesher/internal/blocky"
	"blockymesher/internal/profiling"
	"blockymesher/internal/voxelgrid"
)

func main() {
	size := flag.Int("size", 4, "edge length of the solid cube to mesh, in voxels")
	occlusion := flag.Bool("occlusion", true, "enable ambient occlusion shading")
	darkness := flag.Float64("darkness", 0.8, "ambient occlusion darkness, 0..1")
	flag.Parse()

	if *size < 1 {
		fmt.Fprintln(os.Stderr, "blockydemo: -size must be >= 1")
		os.Exit(1)
	}

	lib := buildFixtureLibrary()
	buf := buildSolidCube(*size)

	mesher := blocky.NewMesher()
	mesher.SetLibrary(lib)
	mesher.SetOcclusionEnabled(*occlusion)
	mesher.SetOcclusionDarkness(float32(*darkness))

	if warnings := mesher.Validate(); len(warnings) > 0 {
		for _, w := range warnings {
			slog.Warn("blockydemo: configuration warning", "warning", w)
		}
	}

	out, err := mesher.Build(context.Background(), blocky.Input{Voxels: buf, CollisionHint: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "blockydemo: build failed: %v\n", err)
		os.Exit(1)
	}

	for _, surf := range out.Surfaces {
		fmt.Printf("material %d: %d vertices, %d indices\n",
			surf.MaterialIndex, len(surf.Positions), len(surf.Indices))
	}
	if out.CollisionMesh != nil {
		fmt.Printf("collision mesh: %d vertices, %d indices\n",
			len(out.CollisionMesh.Positions), len(out.CollisionMesh.Indices))
	}

	for name, d := range profiling.Snapshot() {
		fmt.Printf("%s: %s\n", name, d)
	}
}

// buildFixtureLibrary bakes a two-model library by hand: air (model 0,
// implicit) and one opaque stone-like cube occupying material slot 0 on
// every side.
func buildFixtureLibrary() *blocky.BakedLibrary {
	lib := blocky.NewLibrary()

	const stoneID = 1
	const stonePattern = 1
	const materialIndex = 0

	surfaces := make([]blocky.BakedSurface, 1)
	surfaces[0].MaterialID = materialIndex
	for side := blocky.Side(0); side < blocky.SideCount; side++ {
		positions, uvs := unitQuad(side)
		surfaces[0].SidePositions[side] = positions[:]
		surfaces[0].SideUVs[side] = uvs[:]
		surfaces[0].SideIndices[side] = []int{0, 1, 2, 0, 2, 3}
	}

	model := blocky.BakedModel{
		ContributesToAO: true,
		Color:           blocky.Color{R: 1, G: 1, B: 1, A: 1},
	}
	for side := blocky.Side(0); side < blocky.SideCount; side++ {
		model.Model.SidePatternIndices[side] = stonePattern
	}
	model.Model.Surfaces = surfaces

	lib.AddModel(stoneID, model)
	lib.SetSidePatternOcclusion(stonePattern, stonePattern, true)

	return lib
}

// unitQuad returns the four corner positions and UVs of side's unit-cube
// face, wound so the (0,1,2)/(0,2,3) fan in buildFixtureLibrary's
// SideIndices faces outward.
func unitQuad(side blocky.Side) ([4]mgl32.Vec3, [4]mgl32.Vec2) {
	uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	switch side {
	case blocky.SideLeft:
		return [4]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}}, uvs
	case blocky.SideRight:
		return [4]mgl32.Vec3{{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}}, uvs
	case blocky.SideBack:
		return [4]mgl32.Vec3{{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}}, uvs
	case blocky.SideFront:
		return [4]mgl32.Vec3{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}}, uvs
	case blocky.SideBottom:
		return [4]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}, uvs
	case blocky.SideTop:
		return [4]mgl32.Vec3{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}}, uvs
	default:
		return [4]mgl32.Vec3{}, uvs
	}
}

// buildSolidCube returns a buffer padded by blocky.PADDING on every side,
// filled with stone (model id 1) everywhere inside the padding.
func buildSolidCube(edge int) *voxelgrid.Buffer {
	dim := edge + 2*blocky.PADDING
	buf := voxelgrid.NewBuffer(dim, dim, dim)
	for x := blocky.PADDING; x < dim-blocky.PADDING; x++ {
		for y := blocky.PADDING; y < dim-blocky.PADDING; y++ {
			for z := blocky.PADDING; z < dim-blocky.PADDING; z++ {
				buf.Set(x, y, z, blocky.ChannelType, 1)
			}
		}
	}
	return buf
}
