package blocky

import (
	"log/slog"
	"sync"
)

// sideChannel maps each cube side to the voxel data channel the
// side-aware variant reads an override model id from (spec.md 4.F).
var sideChannel = [SideCount]Channel{
	SideTop:    ChannelSDF,
	SideBottom: ChannelData7,
	SideBack:   ChannelIndices,
	SideFront:  ChannelWeights,
	SideRight:  ChannelData5,
	SideLeft:   ChannelData6,
}

// EmptySideModelID is the reserved per-side model id meaning "no
// override for this face" (spec.md 4.F).
const EmptySideModelID uint32 = 0

// SideLibrary maps (side, side model id) pairs to the material index a
// matching face should use instead of its base model's material. It plays
// the same "baked, read-locked snapshot" role as BakedLibrary but only
// ever needs a flat lookup table (spec.md 4.F).
type SideLibrary struct {
	mu            sync.RWMutex
	bySide        [SideCount]map[uint32]uint32
	materialCount uint32
}

// NewSideLibrary returns an empty side library.
func NewSideLibrary() *SideLibrary {
	l := &SideLibrary{}
	for i := range l.bySide {
		l.bySide[i] = make(map[uint32]uint32)
	}
	return l
}

// SetSideModel registers that (side, sideModelID) should resolve to
// materialID.
func (l *SideLibrary) SetSideModel(side Side, sideModelID, materialID uint32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bySide[side][sideModelID] = materialID
	if materialID+1 > l.materialCount {
		l.materialCount = materialID + 1
	}
}

// MaterialCount returns the number of material slots this library uses.
func (l *SideLibrary) MaterialCount() uint32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.materialCount
}

// sideLookupResult distinguishes "no override requested" (EmptySideModelID,
// the common case, never logged) from "a side model id was given but isn't
// registered" (UnknownSideModelId, spec.md 4.F/7 — logged once by the
// caller and falls back to the base material).
type sideLookupResult int

const (
	sideLookupEmpty sideLookupResult = iota
	sideLookupFound
	sideLookupUnknown
)

func (l *SideLibrary) lookup(side Side, sideModelID uint32) (uint32, sideLookupResult) {
	if sideModelID == EmptySideModelID {
		return 0, sideLookupEmpty
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	materialID, ok := l.bySide[side][sideModelID]
	if !ok {
		return 0, sideLookupUnknown
	}
	return materialID, sideLookupFound
}

// SideResolver lets a mesher override the material a visible face uses,
// per side, without subclassing the mesher itself. This replaces the
// original engine's VoxelMesherBlockySide subclass with composition, as
// called for by spec.md 9: attach a SideResolver to a Mesher instead of
// building a second mesher type.
type SideResolver interface {
	// Resolve returns the side-library-local material index to use for
	// the face at (x, y, z) facing side, or ok == false to fall back to
	// the base model's own material.
	Resolve(side Side, x, y, z, voxelIndex int) (materialID uint32, ok bool)
}

// blockySideResolver is the concrete SideResolver returned by
// NewSideResolver. It reads one of six side-data channels per face
// (sideChannel) to get a per-voxel side model id, then looks that id up
// in a SideLibrary.
type blockySideResolver struct {
	sideLibrary *SideLibrary

	mu      sync.Mutex
	buf     VoxelBuffer
	sources [SideCount]typeSource
}

// NewSideResolver returns a SideResolver backed by lib. It must be bound
// to a voxel buffer (done automatically by Mesher.Build) before Resolve
// is called.
func NewSideResolver(lib *SideLibrary) SideResolver {
	return &blockySideResolver{sideLibrary: lib}
}

// bind resolves one typeSource per side channel for buf, so Resolve can
// do a plain array/slice read per face instead of dispatching on
// compression and depth every call (spec.md 4.E's "dispatch once per
// build" discipline, extended to the side channels).
func (r *blockySideResolver) bind(buf VoxelBuffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var resolved [SideCount]typeSource
	seen := make(map[Channel]typeSource)
	for side := Side(0); side < SideCount; side++ {
		ch := sideChannel[side]
		if src, ok := seen[ch]; ok {
			resolved[side] = src
			continue
		}
		src, err := newTypeSource(buf, ch)
		if err != nil {
			return err
		}
		seen[ch] = src
		resolved[side] = src
	}
	r.buf = buf
	r.sources = resolved
	return nil
}

func (r *blockySideResolver) Resolve(side Side, x, y, z, voxelIndex int) (uint32, bool) {
	r.mu.Lock()
	src := r.sources[side]
	r.mu.Unlock()
	if src == nil {
		return 0, false
	}
	sideModelID := src.at(voxelIndex)
	materialID, result := r.sideLibrary.lookup(side, sideModelID)
	switch result {
	case sideLookupFound:
		return materialID, true
	case sideLookupUnknown:
		slog.Warn("blocky: unknown side model id", "side", side, "side_model_id", sideModelID, "voxel_index", voxelIndex)
		return 0, false
	default: // sideLookupEmpty: no override requested, nothing to warn about
		return 0, false
	}
}

// channelMask reports which channels this resolver reads, for
// Mesher.UsedChannelsMask.
func (r *blockySideResolver) channelMask() uint32 {
	var mask uint32
	for _, ch := range sideChannel {
		mask |= 1 << uint(ch)
	}
	return mask
}
