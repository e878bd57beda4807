package blocky

import "github.com/go-gl/mathgl/mgl32"

// Side identifies one of the six faces of a unit cube.
type Side int

const (
	SideLeft Side = iota
	SideRight
	SideBack
	SideFront
	SideBottom
	SideTop
	SideCount = 6
)

// Edge identifies one of the twelve edges of a unit cube.
type Edge int

const (
	EdgeBottomBack Edge = iota
	EdgeBottomFront
	EdgeBottomLeft
	EdgeBottomRight
	EdgeBackLeft
	EdgeBackRight
	EdgeFrontLeft
	EdgeFrontRight
	EdgeTopBack
	EdgeTopFront
	EdgeTopLeft
	EdgeTopRight
	EdgeCount = 12
)

// Corner identifies one of the eight corners of a unit cube.
type Corner int

const (
	CornerBottomBackLeft Corner = iota
	CornerBottomBackRight
	CornerBottomFrontRight
	CornerBottomFrontLeft
	CornerTopBackLeft
	CornerTopBackRight
	CornerTopFrontRight
	CornerTopFrontLeft
	CornerCount = 8
)

// oppositeSide maps each side to the side facing the opposite direction.
var oppositeSide = [SideCount]Side{
	SideLeft:   SideRight,
	SideRight:  SideLeft,
	SideBack:   SideFront,
	SideFront:  SideBack,
	SideBottom: SideTop,
	SideTop:    SideBottom,
}

// sideNormals are the outward-facing unit normals of each side.
var sideNormals = [SideCount]mgl32.Vec3{
	SideLeft:   {-1, 0, 0},
	SideRight:  {1, 0, 0},
	SideBack:   {0, 0, -1},
	SideFront:  {0, 0, 1},
	SideBottom: {0, -1, 0},
	SideTop:    {0, 1, 0},
}

// sideEdges lists the four edges bordering each side.
var sideEdges = [SideCount][4]Edge{
	SideLeft:   {EdgeBottomLeft, EdgeBackLeft, EdgeFrontLeft, EdgeTopLeft},
	SideRight:  {EdgeBottomRight, EdgeBackRight, EdgeFrontRight, EdgeTopRight},
	SideBack:   {EdgeBottomBack, EdgeBackLeft, EdgeBackRight, EdgeTopBack},
	SideFront:  {EdgeBottomFront, EdgeFrontLeft, EdgeFrontRight, EdgeTopFront},
	SideBottom: {EdgeBottomBack, EdgeBottomFront, EdgeBottomLeft, EdgeBottomRight},
	SideTop:    {EdgeTopBack, EdgeTopFront, EdgeTopLeft, EdgeTopRight},
}

// sideCorners lists the four corners bordering each side.
var sideCorners = [SideCount][4]Corner{
	SideLeft:   {CornerBottomBackLeft, CornerBottomFrontLeft, CornerTopBackLeft, CornerTopFrontLeft},
	SideRight:  {CornerBottomBackRight, CornerBottomFrontRight, CornerTopBackRight, CornerTopFrontRight},
	SideBack:   {CornerBottomBackLeft, CornerBottomBackRight, CornerTopBackLeft, CornerTopBackRight},
	SideFront:  {CornerBottomFrontLeft, CornerBottomFrontRight, CornerTopFrontLeft, CornerTopFrontRight},
	SideBottom: {CornerBottomBackLeft, CornerBottomBackRight, CornerBottomFrontLeft, CornerBottomFrontRight},
	SideTop:    {CornerTopBackLeft, CornerTopBackRight, CornerTopFrontLeft, CornerTopFrontRight},
}

// edgeCorners lists the two corners each edge connects.
var edgeCorners = [EdgeCount][2]Corner{
	EdgeBottomBack:  {CornerBottomBackLeft, CornerBottomBackRight},
	EdgeBottomFront: {CornerBottomFrontLeft, CornerBottomFrontRight},
	EdgeBottomLeft:  {CornerBottomBackLeft, CornerBottomFrontLeft},
	EdgeBottomRight: {CornerBottomBackRight, CornerBottomFrontRight},
	EdgeBackLeft:    {CornerBottomBackLeft, CornerTopBackLeft},
	EdgeBackRight:   {CornerBottomBackRight, CornerTopBackRight},
	EdgeFrontLeft:   {CornerBottomFrontLeft, CornerTopFrontLeft},
	EdgeFrontRight:  {CornerBottomFrontRight, CornerTopFrontRight},
	EdgeTopBack:     {CornerTopBackLeft, CornerTopBackRight},
	EdgeTopFront:    {CornerTopFrontLeft, CornerTopFrontRight},
	EdgeTopLeft:     {CornerTopBackLeft, CornerTopFrontLeft},
	EdgeTopRight:    {CornerTopBackRight, CornerTopFrontRight},
}

// cornerPosition is the unit-cube local position of each corner.
var cornerPosition = [CornerCount]mgl32.Vec3{
	CornerBottomBackLeft:   {0, 0, 0},
	CornerBottomBackRight:  {1, 0, 0},
	CornerBottomFrontRight: {1, 0, 1},
	CornerBottomFrontLeft:  {0, 0, 1},
	CornerTopBackLeft:      {0, 1, 0},
	CornerTopBackRight:     {1, 1, 0},
	CornerTopFrontRight:    {1, 1, 1},
	CornerTopFrontLeft:     {0, 1, 1},
}
