// Package voxelgrid provides a concrete, dense, padded voxel buffer.
// It is grounded on the teacher's internal/world chunk storage (a nil
// section stands in for an all-air 16^3 region) generalized into an
// explicit per-channel compression state, the same "none vs. uniform"
// collapse used by Gekko3D's Brick.TryCompress/BrickFlagSolid bricks.
package voxelgrid

import (
	"fmt"

	"blockymesher/internal/blocky"
)

type channelState struct {
	compression blocky.Compression
	depth       blocky.Depth
	uniform     uint32
	raw         []byte
}

func elemSize(depth blocky.Depth) int {
	switch depth {
	case blocky.Depth8:
		return 1
	case blocky.Depth16:
		return 2
	default:
		return 0
	}
}

func (c *channelState) decompress(voxelCount int) {
	if c.compression == blocky.CompressionNone {
		return
	}
	size := elemSize(c.depth)
	raw := make([]byte, voxelCount*size)
	for i := 0; i < voxelCount; i++ {
		writeWord(raw, i, c.depth, c.uniform)
	}
	c.raw = raw
	c.compression = blocky.CompressionNone
}

func writeWord(raw []byte, idx int, depth blocky.Depth, value uint32) {
	switch depth {
	case blocky.Depth8:
		raw[idx] = byte(value)
	case blocky.Depth16:
		off := idx * 2
		raw[off] = byte(value)
		raw[off+1] = byte(value >> 8)
	}
}

func readWord(raw []byte, idx int, depth blocky.Depth) uint32 {
	switch depth {
	case blocky.Depth8:
		return uint32(raw[idx])
	case blocky.Depth16:
		off := idx * 2
		return uint32(raw[off]) | uint32(raw[off+1])<<8
	}
	return 0
}

// Buffer is a dense, padded implementation of blocky.VoxelBuffer. Every
// channel starts out uniformly zero (air) and only allocates backing
// storage once a voxel is written with Set (spec.md 3, 6).
type Buffer struct {
	sx, sy, sz int
	channels   [blocky.ChannelWeights + 1]channelState
}

// NewBuffer returns a buffer of padded size sx*sy*sz (each dimension must
// be at least 2*blocky.PADDING+1 to have room for a single real voxel).
// Every channel starts at 8-bit depth and uniform-zero compression.
func NewBuffer(sx, sy, sz int) *Buffer {
	b := &Buffer{sx: sx, sy: sy, sz: sz}
	for i := range b.channels {
		b.channels[i] = channelState{compression: blocky.CompressionUniform, depth: blocky.Depth8}
	}
	return b
}

func (b *Buffer) voxelCount() int { return b.sx * b.sy * b.sz }

func (b *Buffer) index(x, y, z int) int {
	return y + x*b.sy + z*b.sx*b.sy
}

// SetChannelDepth fixes the element width a channel uses once it is
// decompressed. It must be called before the first Set call that forces
// decompression of ch, otherwise it panics to surface the bug immediately
// rather than silently reinterpreting already-written bytes.
func (b *Buffer) SetChannelDepth(ch blocky.Channel, depth blocky.Depth) {
	c := &b.channels[ch]
	if c.compression == blocky.CompressionNone {
		panic(fmt.Sprintf("voxelgrid: cannot change depth of channel %d after it was decompressed", ch))
	}
	c.depth = depth
}

// Fill collapses ch back to a single uniform value, discarding any raw
// storage it had. Useful for resetting a channel to all-air between
// reuses of the same buffer.
func (b *Buffer) Fill(ch blocky.Channel, value uint32) {
	b.channels[ch] = channelState{compression: blocky.CompressionUniform, depth: b.channels[ch].depth, uniform: value}
}

// Set writes value into ch at (x, y, z), decompressing the channel first
// if it is uniform and value differs from the existing uniform value
// (spec.md 3's compression-state machine).
func (b *Buffer) Set(x, y, z int, ch blocky.Channel, value uint32) {
	c := &b.channels[ch]
	if c.compression == blocky.CompressionUniform {
		if c.uniform == value {
			return
		}
		c.decompress(b.voxelCount())
	}
	writeWord(c.raw, b.index(x, y, z), c.depth, value)
}

func (b *Buffer) Size() (sx, sy, sz int) { return b.sx, b.sy, b.sz }

func (b *Buffer) ChannelCompression(ch blocky.Channel) blocky.Compression {
	return b.channels[ch].compression
}

func (b *Buffer) ChannelDepth(ch blocky.Channel) blocky.Depth {
	return b.channels[ch].depth
}

func (b *Buffer) ChannelRaw(ch blocky.Channel) ([]byte, bool) {
	c := &b.channels[ch]
	if c.compression != blocky.CompressionNone {
		return nil, false
	}
	return c.raw, true
}

func (b *Buffer) Voxel(x, y, z int, ch blocky.Channel) int {
	c := &b.channels[ch]
	if c.compression == blocky.CompressionUniform {
		return int(c.uniform)
	}
	return int(readWord(c.raw, b.index(x, y, z), c.depth))
}
