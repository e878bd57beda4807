package blocky

// Channel identifies one data plane of a voxel buffer. The base mesher only
// reads TYPE; the side-aware variant also reads the six side-data channels
// (spec.md 4.F, 6).
type Channel int

const (
	ChannelType Channel = iota
	ChannelSDF
	ChannelData5
	ChannelData6
	ChannelData7
	ChannelIndices
	ChannelWeights
)

// Compression describes how a channel's data is packed.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionUniform
	CompressionOther
)

// Depth describes the element width of a channel.
type Depth int

const (
	Depth8 Depth = iota
	Depth16
	DepthOther
)

// PADDING is the one-voxel neighbor shell every VoxelBuffer must carry on
// every face (spec.md 3).
const PADDING = 1

// VoxelBuffer is the read-only contract the mesher needs from a voxel
// storage container. Implementations own compression and memory layout;
// the mesher only ever reads through this interface (spec.md 6). The
// module ships one concrete implementation, internal/voxelgrid.Buffer.
type VoxelBuffer interface {
	// Size returns the buffer's padded dimensions (Sx, Sy, Sz), each >=
	// 2*PADDING.
	Size() (sx, sy, sz int)

	// ChannelCompression reports how ch is currently packed.
	ChannelCompression(ch Channel) Compression

	// ChannelDepth reports the element width of ch.
	ChannelDepth(ch Channel) Depth

	// ChannelRaw returns a raw byte span over ch's storage. It only
	// succeeds (ok == true) when ChannelCompression(ch) == CompressionNone.
	ChannelRaw(ch Channel) (data []byte, ok bool)

	// Voxel reads a single value from ch at (x, y, z). Used to read
	// uniformly-compressed channels without decompressing them.
	Voxel(x, y, z int, ch Channel) int
}
