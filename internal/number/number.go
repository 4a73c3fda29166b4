// Package number recognizes Hjson numeric literals.
//
// The recognizer is shared by the decoder (to decide whether a quoteless
// scalar is a number) and the encoder (to decide whether a string value must
// be quoted because it would otherwise be read back as a number). Both sides
// must agree character for character, which is why the logic lives in one
// place.
package number

import (
	"math"
	"strconv"
)

// Num is a recognized numeric literal. Exactly one of the two fields is
// meaningful, selected by IsInt.
type Num struct {
	IsInt bool
	Int   int64
	Float float64
}

type scanner struct {
	data []byte
	at   int
	ch   byte
}

// next advances to the next byte. It reports false once the end of input has
// been passed, leaving ch at zero.
func (s *scanner) next() bool {
	if s.at < len(s.data) {
		s.ch = s.data[s.at]
		s.at++
		return true
	}
	if s.at == len(s.data) {
		s.at++
		s.ch = 0
	}
	return false
}

// Parse scans data for exactly one JSON-style number, optionally followed by
// whitespace. In stop-at-next mode a comma, closing brace or bracket, or the
// start of a comment counts as end of input, so that the recognizer can be
// run against the remainder of a line while scanning a quoteless value.
//
// A lone leading zero is allowed ("0", "0.5") but zero-padded integer parts
// ("00", "01") are not: the leading-zero counter must end at exactly zero.
func Parse(data []byte, stopAtNext bool) (Num, bool) {
	s := &scanner{data: data, ch: ' '}

	leadingZeros := 0
	testLeading := true

	s.next()

	if s.ch == '-' {
		s.next()
	}

	for s.ch >= '0' && s.ch <= '9' {
		if testLeading {
			if s.ch == '0' {
				leadingZeros++
			} else {
				testLeading = false
			}
		}
		s.next()
	}

	if testLeading {
		leadingZeros-- // a single 0 is allowed
	}

	if s.ch == '.' {
		// The fraction needs at least one digit; strconv would let a
		// bare "1." through.
		s.next()
		if s.ch < '0' || s.ch > '9' {
			return Num{}, false
		}
		for s.ch >= '0' && s.ch <= '9' {
			s.next()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		s.next()
		if s.ch == '-' || s.ch == '+' {
			s.next()
		}
		if s.ch < '0' || s.ch > '9' {
			return Num{}, false
		}
		for s.ch >= '0' && s.ch <= '9' {
			s.next()
		}
	}

	end := s.at

	// Skip trailing whitespace.
	for s.ch > 0 && s.ch <= ' ' {
		s.next()
	}

	if stopAtNext {
		// End the scan on a punctuator or a comment start.
		if s.ch == ',' || s.ch == '}' || s.ch == ']' || s.ch == '#' ||
			(s.ch == '/' && s.at < len(data) && (data[s.at] == '/' || data[s.at] == '*')) {
			s.ch = 0
		}
	}

	if s.ch > 0 || leadingZeros != 0 {
		return Num{}, false
	}

	text := string(data[:end-1])

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Num{IsInt: true, Int: i}, true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Num{}, false
		}
		return Num{Float: f}, true
	}

	return Num{}, false
}

// StartsWith reports whether text reads as a complete number in stop-at-next
// mode. The encoder uses this to keep strings like "10" quoted.
func StartsWith(text []byte) bool {
	_, ok := Parse(text, true)
	return ok
}
