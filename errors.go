package statmeta

import (
	"github.com/simonhull/statmeta/internal/source"
	"github.com/simonhull/statmeta/internal/types"
)

// Sentinel errors. Every error returned by this package that reports one of
// these conditions matches it with errors.Is.
var (
	// ErrBadMRString is returned for a malformed MR descriptor blob.
	ErrBadMRString = types.ErrBadMRString

	// ErrUserAbort is returned when a progress handler stops a read.
	ErrUserAbort = types.ErrUserAbort

	// ErrSeekOutOfRange is returned for a seek to a negative position.
	ErrSeekOutOfRange = types.ErrSeekOutOfRange

	// ErrInvalidWhence is returned for a seek with an unknown origin.
	ErrInvalidWhence = types.ErrInvalidWhence

	// ErrNotOpen is returned when a file or mmap source is used before Open.
	ErrNotOpen = source.ErrNotOpen
)

// OutOfBoundsError is an alias to types.OutOfBoundsError.
// Re-exporting from internal/types to maintain public API.
type OutOfBoundsError = types.OutOfBoundsError

// SeekRangeError is an alias to types.SeekRangeError.
// Re-exporting from internal/types to maintain public API.
type SeekRangeError = types.SeekRangeError

// MalformedMRError is an alias to types.MalformedMRError.
// Re-exporting from internal/types to maintain public API.
type MalformedMRError = types.MalformedMRError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning
