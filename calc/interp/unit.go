package interp

import (
	"math"
	"strings"

	"github.com/hupe1980/numbridge/calc/dimension"
)

// unitDef is a registered unit. Scale converts one of the unit into the base
// units of its dimension.
type unitDef struct {
	Name  string
	Dim   dimension.BaseRepresentation
	Scale float64
	Base  bool
}

// unitFactor is a unit raised to a power inside a compound unit. It carries
// the definition so that a quantity never needs the registry again.
type unitFactor struct {
	def   *unitDef
	power int
}

// Unit is a product of unit factors in order of first appearance. The empty
// Unit belongs to plain numbers.
type Unit []unitFactor

func unitOf(def *unitDef) Unit { return Unit{{def: def, power: 1}} }

// IsEmpty reports whether u has no factors.
func (u Unit) IsEmpty() bool { return len(u) == 0 }

// Dimension returns the product of the factors' dimensions.
func (u Unit) Dimension() dimension.BaseRepresentation {
	d := dimension.Scalar
	for _, f := range u {
		d = d.Mul(f.def.Dim.Pow(f.power))
	}
	return d
}

// Scale returns the factor converting u into base units.
func (u Unit) Scale() float64 {
	s := 1.0
	for _, f := range u {
		s *= math.Pow(f.def.Scale, float64(f.power))
	}
	return s
}

// Mul merges the factors of o into u.
func (u Unit) Mul(o Unit) Unit {
	out := make(Unit, len(u), len(u)+len(o))
	copy(out, u)
	for _, f := range o {
		merged := false
		for i := range out {
			if out[i].def.Name == f.def.Name {
				out[i].power += f.power
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, f)
		}
	}
	kept := out[:0]
	for _, f := range out {
		if f.power != 0 {
			kept = append(kept, f)
		}
	}
	return kept
}

// Pow raises every factor to n.
func (u Unit) Pow(n int) Unit {
	if n == 0 {
		return nil
	}
	out := make(Unit, len(u))
	for i, f := range u {
		out[i] = unitFactor{def: f.def, power: f.power * n}
	}
	return out
}

// Div returns u / o.
func (u Unit) Div(o Unit) Unit { return u.Mul(o.Pow(-1)) }

// Equal reports whether both units list the same factors.
func (u Unit) Equal(o Unit) bool {
	if len(u) != len(o) {
		return false
	}
	for i := range u {
		if u[i].def.Name != o[i].def.Name || u[i].power != o[i].power {
			return false
		}
	}
	return true
}

// String renders u as "km/h", "m²" or "kg·m/s²".
func (u Unit) String() string {
	var num, den []string
	for _, f := range u {
		switch {
		case f.power == 1:
			num = append(num, f.def.Name)
		case f.power > 1:
			num = append(num, f.def.Name+dimension.Superscript(f.power))
		case f.power == -1:
			den = append(den, f.def.Name)
		default:
			den = append(den, f.def.Name+dimension.Superscript(-f.power))
		}
	}
	if len(num) == 0 {
		parts := make([]string, 0, len(u))
		for _, f := range u {
			parts = append(parts, f.def.Name+dimension.Superscript(f.power))
		}
		return strings.Join(parts, "·")
	}
	s := strings.Join(num, "·")
	for _, d := range den {
		s += "/" + d
	}
	return s
}
