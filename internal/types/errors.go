package types

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every component. Typed errors below unwrap to
// one of these so callers can match with errors.Is.
var (
	// ErrBadMRString reports a multiple response set string that does not
	// match the descriptor grammar.
	ErrBadMRString = errors.New("invalid multiple response set string")

	// ErrUserAbort reports that a progress handler asked to stop parsing.
	ErrUserAbort = errors.New("parsing aborted by user")

	// ErrSeekOutOfRange reports a seek whose target would be negative.
	ErrSeekOutOfRange = errors.New("seek out of range")

	// ErrInvalidWhence reports a seek with an unknown origin.
	ErrInvalidWhence = errors.New("invalid seek whence")
)

// OutOfBoundsError is returned when a backing store cannot supply bytes that
// lie inside its declared size.
type OutOfBoundsError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *OutOfBoundsError) Error() string {
	if e.Offset >= e.Size {
		return fmt.Sprintf("%s: offset %d out of bounds (size: %d) while reading %s",
			e.Path, e.Offset, e.Size, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// SeekRangeError is returned when a seek computes a negative (or
// unrepresentable) absolute position. The source cursor is left unchanged.
type SeekRangeError struct {
	Path   string
	Whence string
	Offset int64
	Base   int64
}

func (e *SeekRangeError) Error() string {
	return fmt.Sprintf("%s: seek of %d from %s (base %d) is out of range",
		e.Path, e.Offset, e.Whence, e.Base)
}

func (e *SeekRangeError) Unwrap() error {
	return ErrSeekOutOfRange
}

// MalformedMRError is returned when a multiple response set blob or record
// cannot be decoded.
//
// Record is the 1-based record number within the blob (0 when a single
// record was decoded on its own). Offset is the byte offset of the
// offending input, relative to the blob when Record > 0.
type MalformedMRError struct {
	Reason string
	Record int
	Offset int
}

func (e *MalformedMRError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("%v: record %d at offset %d: %s",
			ErrBadMRString, e.Record, e.Offset, e.Reason)
	}
	return fmt.Sprintf("%v at offset %d: %s", ErrBadMRString, e.Offset, e.Reason)
}

func (e *MalformedMRError) Unwrap() error {
	return ErrBadMRString
}

// Warning represents a non-fatal issue encountered during a session.
//
// Warnings are only produced when the caller asked for lenient handling,
// for instance dropping a malformed MR blob instead of failing.
type Warning struct {
	// Stage where the warning occurred ("mrsets", "progress")
	Stage string

	// Warning message
	Message string

	// Offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
