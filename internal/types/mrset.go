// Package types provides the core data structures shared by the source,
// decoder and session layers.
package types

// Kind tags of a multiple response set as they appear after the '=' of a
// descriptor record.
const (
	// KindCategory marks a set whose sub-variables share a value set.
	KindCategory byte = 'C'
	// KindDichotomy marks a set whose sub-variables share one counted value.
	KindDichotomy byte = 'D'
)

// NoCountedValue is stored in MRSet.CountedValue when the descriptor carries
// no counted value. It is never a decoded value: counted values are
// non-negative.
const NoCountedValue = -1

// MRSet is one decoded multiple response set.
//
// MRSets are only produced by a successful decode and are not modified
// afterwards. Subvariables keep the order in which they were encoded.
type MRSet struct {
	Name         string   `json:"name" yaml:"name"`
	Label        string   `json:"label" yaml:"label"`
	Subvariables []string `json:"variable_list" yaml:"variable_list"`
	CountedValue int      `json:"counted_value" yaml:"counted_value"`
	Type         byte     `json:"type" yaml:"type"`
	IsDichotomy  bool     `json:"is_dichotomy" yaml:"is_dichotomy"`
}

// Counted returns the counted value and whether one is present.
func (m MRSet) Counted() (int, bool) {
	if m.CountedValue == NoCountedValue {
		return 0, false
	}
	return m.CountedValue, true
}

// Kind returns the set kind as a string ("C", "D").
func (m MRSet) Kind() string {
	return string(rune(m.Type))
}
