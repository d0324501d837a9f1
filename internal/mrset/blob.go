// Package mrset decodes the multiple response set descriptors stored in the
// MRSETS extension records of SPSS system files.
//
// A descriptor blob holds one record per line:
//
//	$name=C 10 Label text var1 var2 var3
//	$name=D1 1 10 Label text var1 var2
//
// Both the blob scanner and the record decoder are deterministic automata
// that consume one byte per step (length-prefixed fields are skipped in one
// bounds-checked jump), so decoding time is linear in the input length and
// no input can read outside the blob.
package mrset

import (
	"errors"
	"strings"

	"github.com/simonhull/statmeta/internal/types"
)

// blobState is a state of the blob scanner.
type blobState int

const (
	blobStart blobState = iota
	blobRecord
	blobLineEnd
	blobAccept
)

// ParseString splits blob into '$'-prefixed, newline-terminated records and
// decodes each one with ParseLine, returning the sets in input order.
//
// The blob ends at its first NUL byte or at the end of the string. The
// final newline is optional.
//
// On any failure ParseString returns nil and a single
// *types.MalformedMRError: sets decoded before the failing record are
// discarded.
func ParseString(blob string) ([]types.MRSet, error) {
	if i := strings.IndexByte(blob, 0); i >= 0 {
		blob = blob[:i]
	}

	sets := make([]types.MRSet, 0, strings.Count(blob, "\n")+1)
	state := blobStart
	record := 0
	mark := 0

	for p := 0; p <= len(blob); p++ {
		end := p == len(blob)
		var c byte
		if !end {
			c = blob[p]
		}

		switch state {
		case blobStart, blobLineEnd:
			switch {
			case c == '$' && !end:
				record++
				mark = p + 1
				state = blobRecord
			case end && state == blobLineEnd:
				state = blobAccept
			case end:
				return nil, malformed(record+1, p, "empty input")
			case c == '\n':
				return nil, malformed(record+1, p, "empty record")
			default:
				return nil, malformed(record+1, p, "record must start with '$'")
			}

		case blobRecord:
			if !end && c != '\n' {
				continue
			}
			set, err := ParseLine(blob[mark:p])
			if err != nil {
				return nil, inRecord(err, record, mark)
			}
			sets = append(sets, set)
			if end {
				state = blobAccept
			} else {
				state = blobLineEnd
			}
		}
	}

	if state != blobAccept {
		return nil, malformed(record, len(blob), "unterminated input")
	}
	return sets, nil
}

// Parse is ParseString for byte slices.
func Parse(blob []byte) ([]types.MRSet, error) {
	return ParseString(string(blob))
}

func malformed(record, offset int, reason string) error {
	return &types.MalformedMRError{Record: record, Offset: offset, Reason: reason}
}

// inRecord rebases a record decoder error onto the blob.
func inRecord(err error, record, start int) error {
	var m *types.MalformedMRError
	if errors.As(err, &m) {
		return malformed(record, start+m.Offset, m.Reason)
	}
	return err
}
