package mrset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/statmeta/internal/types"
)

// recordState is a state of the record automaton.
type recordState int

const (
	stateName recordState = iota
	stateNameRest
	stateKind
	stateValueLength
	stateLabelLength
	stateLabelLengthRest
	stateSubvar
	stateSubvarRest
	stateAccept
)

// recordDecoder decodes one descriptor record, one byte per step. The byte
// at len(rec) is a virtual NUL terminator.
type recordDecoder struct {
	rec   string
	state recordState
	mark  int // start of the token being scanned

	set types.MRSet
}

// ParseLine decodes a single descriptor record (without the leading '$' and
// without the line terminator) into an MRSet.
//
// The record grammar is
//
//	name '=' kind count ' ' [value ' '] labelLength ' ' label [' '+ subvar {delim subvar}]
//
// where kind is 'C' or 'D', count is the byte length of the optional
// counted value (dichotomy sets only, 0 or empty for none), and label is
// exactly labelLength bytes. Decoding stops at the first NUL byte.
//
// On failure the zero MRSet is returned with a *types.MalformedMRError.
func ParseLine(line string) (types.MRSet, error) {
	if i := strings.IndexByte(line, 0); i >= 0 {
		line = line[:i]
	}

	d := &recordDecoder{
		rec:   line,
		state: stateName,
		set:   types.MRSet{CountedValue: types.NoCountedValue},
	}

	for p := 0; p <= len(line); {
		next, err := d.step(p)
		if err != nil {
			return types.MRSet{}, err
		}
		p = next
	}

	if d.state != stateAccept {
		return types.MRSet{}, d.fail(len(line), "truncated record")
	}

	d.set.IsDichotomy = d.set.Type == types.KindDichotomy
	return d.set, nil
}

// step consumes the byte at p and returns the position of the next byte to
// consume. Length-prefixed fields jump over their payload.
func (d *recordDecoder) step(p int) (int, error) {
	end := p == len(d.rec)
	var c byte
	if !end {
		c = d.rec[p]
	}

	switch d.state {
	case stateName:
		if end || !isIdent(c) {
			return 0, d.unexpected(p, "set name")
		}
		d.state = stateNameRest

	case stateNameRest:
		switch {
		case c == '=' && !end:
			d.set.Name = d.rec[:p]
			d.state = stateKind
		case !end && isIdent(c):
		default:
			return 0, d.unexpected(p, "set name or '='")
		}

	case stateKind:
		if end || (c != types.KindCategory && c != types.KindDichotomy) {
			return 0, d.unexpected(p, "set kind 'C' or 'D'")
		}
		d.set.Type = c
		d.mark = p + 1
		d.state = stateValueLength

	case stateValueLength:
		switch {
		case c == ' ' && !end:
			return d.countedValue(p)
		case !end && isDigit(c):
		default:
			return 0, d.unexpected(p, "counted value length")
		}

	case stateLabelLength:
		if end || !isDigit(c) {
			return 0, d.unexpected(p, "label length")
		}
		d.state = stateLabelLengthRest

	case stateLabelLengthRest:
		switch {
		case c == ' ' && !end:
			return d.label(p)
		case !end && isDigit(c):
		default:
			return 0, d.unexpected(p, "label length")
		}

	case stateSubvar:
		if c == ' ' && !end && len(d.set.Subvariables) == 0 {
			// Any run of spaces may precede the first name.
			break
		}
		if end || !isIdent(c) {
			return 0, d.unexpected(p, "sub-variable name")
		}
		d.mark = p
		d.state = stateSubvarRest

	case stateSubvarRest:
		switch {
		case end:
			d.set.Subvariables = append(d.set.Subvariables, d.rec[d.mark:p])
			d.state = stateAccept
		case isDelim(c):
			d.set.Subvariables = append(d.set.Subvariables, d.rec[d.mark:p])
			d.state = stateSubvar
		case isIdent(c):
		default:
			return 0, d.unexpected(p, "sub-variable name")
		}

	case stateAccept:
		return 0, d.fail(p, "data after end of record")
	}

	return p + 1, nil
}

// countedValue handles the space ending the counted value length at p.
func (d *recordDecoder) countedValue(p int) (int, error) {
	digits := d.rec[d.mark:p]
	if d.set.Type == types.KindCategory && digits != "" {
		return 0, d.fail(d.mark, "category set cannot carry a counted value")
	}

	n := 0
	if digits != "" {
		var err error
		if n, err = parseNumber(digits); err != nil {
			return 0, d.fail(d.mark, fmt.Sprintf("counted value length: %v", err))
		}
	}

	d.state = stateLabelLength
	if n == 0 {
		d.set.CountedValue = types.NoCountedValue
		d.mark = p + 1
		return p + 1, nil
	}

	start := p + 1
	if n > len(d.rec)-start-1 {
		return 0, d.fail(start, fmt.Sprintf("counted value of %d bytes runs past end of record", n))
	}
	value, err := parseNumber(d.rec[start : start+n])
	if err != nil {
		return 0, d.fail(start, fmt.Sprintf("counted value: %v", err))
	}
	if d.rec[start+n] != ' ' {
		return 0, d.unexpected(start+n, "space after counted value")
	}

	d.set.CountedValue = value
	d.mark = start + n + 1
	return start + n + 1, nil
}

// label handles the space ending the label length at p.
func (d *recordDecoder) label(p int) (int, error) {
	n, err := parseNumber(d.rec[d.mark:p])
	if err != nil {
		return 0, d.fail(d.mark, fmt.Sprintf("label length: %v", err))
	}

	start := p + 1
	if n > len(d.rec)-start {
		return 0, d.fail(start, fmt.Sprintf("label of %d bytes runs past end of record", n))
	}
	d.set.Label = d.rec[start : start+n]

	next := start + n
	if next == len(d.rec) {
		// No sub-variables.
		d.state = stateAccept
		return next + 1, nil
	}
	if d.rec[next] != ' ' {
		return 0, d.unexpected(next, "space after label")
	}
	d.state = stateSubvar
	return next + 1, nil
}

func (d *recordDecoder) unexpected(p int, want string) error {
	if p >= len(d.rec) {
		return d.fail(p, "unexpected end of record, want "+want)
	}
	return d.fail(p, fmt.Sprintf("unexpected byte %q, want %s", d.rec[p], want))
}

func (d *recordDecoder) fail(p int, reason string) error {
	return &types.MalformedMRError{Offset: p, Reason: reason}
}

// parseNumber parses a non-negative decimal number without sign or spaces.
func parseNumber(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, fmt.Errorf("%q is not a decimal number", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return n, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdent(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isDelim reports whether c separates sub-variable names: a space or one of
// the control characters \t \n \v \f \r.
func isDelim(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}
