package blocky

import "fmt"

// ErrorKind classifies the whole-build failures a Mesher can report
// (spec.md 7). Per-voxel and per-face problems (UnknownModelId,
// UnknownSideModelId, LodUnsupported) never reach this type: they are
// contained at the point they're discovered, per spec.md's "the mesher
// never throws out of a build over one malformed voxel".
type ErrorKind int

const (
	// ErrNullLibrary: no library assigned to the mesher.
	ErrNullLibrary ErrorKind = iota
	// ErrUnsupportedCompression: the type channel uses a compression
	// scheme other than none or uniform.
	ErrUnsupportedCompression
	// ErrBadBuffer: the type channel reports CompressionNone but its raw
	// span could not be obtained.
	ErrBadBuffer
	// ErrUnsupportedDepth: the type channel's element width is neither 8
	// nor 16 bits.
	ErrUnsupportedDepth
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNullLibrary:
		return "null library"
	case ErrUnsupportedCompression:
		return "unsupported voxel compression"
	case ErrBadBuffer:
		return "raw channel unavailable"
	case ErrUnsupportedDepth:
		return "unsupported voxel depth"
	default:
		return "unknown blocky error"
	}
}

// Error is the error type Build returns for whole-build failures. It wraps
// an ErrorKind; errors.Is matches it against any *Error of the same Kind.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("blocky: %s", e.Kind)
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, &blocky.Error{Kind: blocky.ErrBadBuffer}) matches.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

var (
	errNullLibrary            = &Error{Kind: ErrNullLibrary}
	errUnsupportedCompression = &Error{Kind: ErrUnsupportedCompression}
	errBadBuffer              = &Error{Kind: ErrBadBuffer}
	errUnsupportedDepth       = &Error{Kind: ErrUnsupportedDepth}
)
