// Package dimension tracks physical dimensions: the base dimensions declared
// by a program (Length, Time, ...) and the derived dimensions named on top of
// them (Velocity = Length / Time).
package dimension

import (
	"sort"
	"strconv"
	"strings"
)

// Factor is one base dimension raised to a non-zero power.
type Factor struct {
	Name  string
	Power int
}

// BaseRepresentation is a product of base dimensions, sorted by name with no
// zero powers. The empty representation is the dimensionless Scalar.
type BaseRepresentation []Factor

// Scalar is the dimensionless representation.
var Scalar = BaseRepresentation{}

// Base returns the representation of a single base dimension.
func Base(name string) BaseRepresentation {
	return BaseRepresentation{{Name: name, Power: 1}}
}

// FromMap builds a normalized representation from base exponents.
func FromMap(m map[string]int) BaseRepresentation {
	out := make(BaseRepresentation, 0, len(m))
	for name, p := range m {
		if p != 0 {
			out = append(out, Factor{Name: name, Power: p})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Map returns the representation as base exponents.
func (b BaseRepresentation) Map() map[string]int {
	m := make(map[string]int, len(b))
	for _, f := range b {
		m[f.Name] = f.Power
	}
	return m
}

// IsScalar reports whether b is dimensionless.
func (b BaseRepresentation) IsScalar() bool { return len(b) == 0 }

// Equal reports whether two representations describe the same dimension.
func (b BaseRepresentation) Equal(o BaseRepresentation) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

func (b BaseRepresentation) combine(o BaseRepresentation, sign int) BaseRepresentation {
	m := b.Map()
	for _, f := range o {
		m[f.Name] += sign * f.Power
	}
	return FromMap(m)
}

// Mul returns b × o.
func (b BaseRepresentation) Mul(o BaseRepresentation) BaseRepresentation { return b.combine(o, 1) }

// Div returns b / o.
func (b BaseRepresentation) Div(o BaseRepresentation) BaseRepresentation { return b.combine(o, -1) }

// Pow returns b raised to n.
func (b BaseRepresentation) Pow(n int) BaseRepresentation {
	m := b.Map()
	for k := range m {
		m[k] *= n
	}
	return FromMap(m)
}

// String renders the representation, e.g. "Length / Time²".
func (b BaseRepresentation) String() string {
	if b.IsScalar() {
		return "Scalar"
	}
	var num, den []string
	for _, f := range b {
		switch {
		case f.Power == 1:
			num = append(num, f.Name)
		case f.Power > 1:
			num = append(num, f.Name+Superscript(f.Power))
		case f.Power == -1:
			den = append(den, f.Name)
		default:
			den = append(den, f.Name+Superscript(-f.Power))
		}
	}
	s := strings.Join(num, " × ")
	if s == "" {
		s = "1"
	}
	switch len(den) {
	case 0:
		return s
	case 1:
		return s + " / " + den[0]
	}
	return s + " / (" + strings.Join(den, " × ") + ")"
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹', '-': '⁻',
}

// Superscript renders n with unicode superscript digits.
func Superscript(n int) string {
	var b strings.Builder
	for _, r := range strconv.Itoa(n) {
		b.WriteRune(superscripts[r])
	}
	return b.String()
}
