package code

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Code identifies one indicator in the taxonomy.
type Code string

// Root is the composition-table parent value meaning "no parent".
//
// A magic value inherited from the source tables. Loaders should map an absent
// parent to Root at the parsing boundary so nothing else needs to know the
// literal.
const Root Code = "0"

// String returns the raw code text.
func (c Code) String() string { return string(c) }

// IsRoot reports whether c is the root sentinel.
func (c Code) IsRoot() bool { return c == Root }

// Of canonicalizes a typed cell value into a Code.
//
// Integers print in base 10. Floats print in their shortest decimal form, so
// 2.0 becomes "2" and 2.5 becomes "2.5". Strings are trimmed and otherwise
// kept verbatim. Any other value falls back to fmt's %v.
func Of(v any) Code {
	switch x := v.(type) {
	case Code:
		return Code(strings.TrimSpace(string(x)))
	case string:
		return Code(strings.TrimSpace(x))
	case int:
		return Code(strconv.Itoa(x))
	case int32:
		return Code(strconv.FormatInt(int64(x), 10))
	case int64:
		return Code(strconv.FormatInt(x, 10))
	case uint:
		return Code(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return Code(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return Code(strconv.FormatUint(x, 10))
	case float32:
		return Code(strconv.FormatFloat(float64(x), 'f', -1, 32))
	case float64:
		return Code(strconv.FormatFloat(x, 'f', -1, 64))
	case fmt.Stringer:
		return Code(strings.TrimSpace(x.String()))
	default:
		return Code(strings.TrimSpace(fmt.Sprint(v)))
	}
}

// Format renders c for humans.
//
// Codes whose text is a finite number render numerically: "2.0" as "2" and
// "2.50" as "2.5". Integers too large for a float64 to hold exactly, and
// anything else, render unchanged.
func Format(c Code) string {
	f, ok := numeric(c)
	if !ok {
		return string(c)
	}
	if f == math.Trunc(f) && math.Abs(f) >= 1<<53 {
		// Past 2^53 a float64 rounds neighbouring integers together.
		return string(c)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Compare orders codes numerically when both are numbers and by plain string
// comparison otherwise. Numbers sort before non-numeric codes. Equal numeric
// values with different spellings ("2" and "2.0") fall back to the string
// order so the result is total.
func Compare(a, b Code) int {
	fa, okA := numeric(a)
	fb, okB := numeric(b)
	switch {
	case okA && okB:
		if fa < fb {
			return -1
		}
		if fa > fb {
			return 1
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(string(a), string(b))
}

// Sort sorts codes in place using [Compare].
func Sort(codes []Code) { slices.SortFunc(codes, Compare) }

// Sorted returns a sorted copy of codes.
func Sorted(codes []Code) []Code {
	out := slices.Clone(codes)
	Sort(out)
	return out
}

// Set is an unordered collection of codes.
type Set map[Code]struct{}

// NewSet builds a set from codes.
func NewSet(codes ...Code) Set {
	s := make(Set, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set.
func (s Set) Has(c Code) bool {
	_, ok := s[c]
	return ok
}

// Add inserts c.
func (s Set) Add(c Code) { s[c] = struct{}{} }

// Sorted returns the members ordered by [Compare].
func (s Set) Sorted() []Code {
	out := make([]Code, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	Sort(out)
	return out
}

func numeric(c Code) (float64, bool) {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
