package statmeta

import (
	"github.com/simonhull/statmeta/internal/mrset"
	"github.com/simonhull/statmeta/internal/types"
)

// MRSet is one decoded multiple response set.
type MRSet = types.MRSet

// Kind tags of a multiple response set.
const (
	KindCategory  = types.KindCategory
	KindDichotomy = types.KindDichotomy
)

// NoCountedValue marks an MRSet without a counted value.
const NoCountedValue = types.NoCountedValue

// ParseMRString decodes an MR descriptor blob into its sets, in input order.
//
// The blob holds one '$'-prefixed record per line and ends at its first NUL
// byte or at the end of the string:
//
//	$categorical_array=C 0  ca_subvar_1 ca_subvar_2 ca_subvar_3
//	$mymrset=D1 1 24 My multiple response set bool1 bool2 bool3
//
// On failure no sets are returned; the error is a *MalformedMRError naming
// the failing record and byte offset.
func ParseMRString(blob string) ([]MRSet, error) {
	return mrset.ParseString(blob)
}

// ParseMRLine decodes a single descriptor record without its leading '$'
// and trailing newline.
func ParseMRLine(line string) (MRSet, error) {
	return mrset.ParseLine(line)
}
