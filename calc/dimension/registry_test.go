package dimension

import (
	"errors"
	"testing"
)

func TestBaseRepresentation_Arithmetic(t *testing.T) {
	length := Base("Length")
	time := Base("Time")

	velocity := length.Div(time)
	if got := velocity.String(); got != "Length / Time" {
		t.Fatalf("unexpected velocity %q", got)
	}
	accel := velocity.Div(time)
	if got := accel.String(); got != "Length / Time²" {
		t.Fatalf("unexpected acceleration %q", got)
	}
	if !velocity.Mul(time).Equal(length) {
		t.Fatal("Length/Time × Time should be Length")
	}
	if !length.Div(length).IsScalar() {
		t.Fatal("Length/Length should be Scalar")
	}
	if got := length.Pow(3).String(); got != "Length³" {
		t.Fatalf("unexpected volume %q", got)
	}
	if got := time.Pow(-1).String(); got != "1 / Time" {
		t.Fatalf("unexpected frequency %q", got)
	}
	if got := Base("Mass").Div(length.Mul(time)).String(); got != "Mass / (Length × Time)" {
		t.Fatalf("unexpected composite %q", got)
	}
}

func TestRegistry_NamesAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.AddBase("Length"); err != nil {
		t.Fatalf("add base: %v", err)
	}
	if err := r.AddBase("Time"); err != nil {
		t.Fatalf("add base: %v", err)
	}
	if err := r.AddBase("Length"); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := r.AddDerived("Velocity", Base("Length").Div(Base("Time"))); err != nil {
		t.Fatalf("add derived: %v", err)
	}

	if _, err := r.Get("Mass"); !errors.Is(err, ErrUnknownDimension) {
		t.Fatalf("expected ErrUnknownDimension, got %v", err)
	}
	if !r.IsBase("Time") || r.IsBase("Velocity") {
		t.Fatal("base flags wrong")
	}
	if got := r.Readable(Base("Length").Div(Base("Time"))); got != "Velocity" {
		t.Fatalf("expected Velocity, got %q", got)
	}
	if got := r.Readable(Base("Time").Pow(2)); got != "Time²" {
		t.Fatalf("expected composed name, got %q", got)
	}
	if got := r.Readable(Scalar); got != "Scalar" {
		t.Fatalf("expected Scalar, got %q", got)
	}
	if name, ok := r.DimensionName(map[string]int{"Length": 1, "Time": -1}); !ok || name != "Velocity" {
		t.Fatalf("DimensionName = %q, %v", name, ok)
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	r := NewRegistry()
	_ = r.AddBase("Length")
	c := r.Clone()
	_ = c.AddBase("Time")
	if _, err := r.Get("Time"); err == nil {
		t.Fatal("clone mutation leaked into original")
	}
	if len(c.Names()) != 2 || len(r.Names()) != 1 {
		t.Fatalf("unexpected names: %v / %v", c.Names(), r.Names())
	}
}

func TestSuperscript(t *testing.T) {
	if got := Superscript(-12); got != "⁻¹²" {
		t.Fatalf("got %q", got)
	}
}
