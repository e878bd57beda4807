package blocky

import "github.com/go-gl/mathgl/mgl32"

// faceVisible reports whether the face of thisModel facing side should be
// emitted, given the model occupying the neighboring voxel across that
// side (spec.md 4.C). A face never emits into itself: air never meshes,
// and a side marked empty in the model's own cube data never emits
// regardless of the neighbor.
func faceVisible(lib *BakedLibrary, thisModel BakedModel, neighbor BakedModel, side Side) bool {
	if thisModel.Empty || thisModel.Model.EmptySide(side) {
		return false
	}
	if neighbor.Empty {
		return true
	}

	thisPattern := thisModel.Model.SidePatternIndices[side]
	neighborPattern := neighbor.Model.SidePatternIndices[oppositeSide[side]]
	return !lib.SidePatternOccludes(neighborPattern, thisPattern)
}

// contributesToAO reports whether the model occupying a voxel should count
// toward its neighbors' ambient occlusion (spec.md 4.C). Air never
// contributes.
func contributesToAO(m BakedModel) bool {
	return !m.Empty && m.ContributesToAO
}

// cornerShade is the per-corner occlusion state the emitter samples when
// building a face's four vertices (spec.md 4.C): how many of the three
// AO-contributing neighbors (two edges sharing the corner, plus the
// diagonal corner neighbor) are solid, and whether the two edge neighbors
// are both solid (the "saturated" case, which makes the corner fully dark
// regardless of the diagonal).
type cornerShade struct {
	count     int
	saturated bool
}

// shadeCorner classifies one corner of a face using the Minecraft-style
// AO rule (spec.md 4.C, grounded on the well known side1+side2+corner
// vote used across voxel engines): side1 and side2 are the two edge
// neighbors adjoining the corner on the emitted face, and cornerSolid is
// the diagonal neighbor across the corner itself.
func shadeCorner(side1Solid, side2Solid, cornerSolid bool) cornerShade {
	if side1Solid && side2Solid {
		return cornerShade{count: 2, saturated: true}
	}
	count := 0
	if side1Solid {
		count++
	}
	if side2Solid {
		count++
	}
	if cornerSolid {
		count++
	}
	return cornerShade{count: count, saturated: false}
}

// shadeFactor turns a corner's occlusion count into a darkening factor in
// [0, 1], scaled by darkness (spec.md 4.C: "0 leaves the vertex
// untouched, 1 fully darkens a triply-occluded corner").
func shadeFactor(c cornerShade, darkness float32) float32 {
	if c.saturated {
		return darkness
	}
	return darkness * float32(c.count) / 3
}

// applyShade darkens a vertex color's RGB channels by factor, leaving
// alpha untouched.
func applyShade(c Color, factor float32) Color {
	keep := 1 - factor
	return Color{R: c.R * keep, G: c.G * keep, B: c.B * keep, A: c.A}
}

// cornerWeight is the falloff weight of cornerPos for a vertex at
// localPos on the same face: 1 minus the squared distance between them,
// clamped at 0 (spec.md 4.C: "nearest-corner falloff for off-corner
// vertices"). It is 1 exactly on the corner and 0 at a distance of 1 or
// more.
func cornerWeight(localPos, cornerPos mgl32.Vec3) float32 {
	d := localPos.Sub(cornerPos)
	sq := d.Dot(d)
	w := 1 - sq
	if w < 0 {
		return 0
	}
	return w
}

// blendCornerShade combines the four per-corner shade factors a side
// carries into the factor a single vertex at localPos should use, via
// cornerWeight. A vertex sitting exactly on one of corners gets that
// corner's factor unchanged, which keeps plain quads identical to the old
// per-corner assignment; an off-corner vertex blends its nearby corners.
func blendCornerShade(localPos mgl32.Vec3, corners [4]Corner, shade [4]float32) float32 {
	var sum, weight float32
	for i, c := range corners {
		w := cornerWeight(localPos, cornerPosition[c])
		sum += w * shade[i]
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}
