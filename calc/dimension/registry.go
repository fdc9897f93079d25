package dimension

import (
	"errors"
	"fmt"
)

// ErrUnknownDimension is returned when a dimension name is not registered.
var ErrUnknownDimension = errors.New("unknown dimension")

// Registry maps dimension names to base representations. The zero value is
// not usable; call NewRegistry.
type Registry struct {
	names []string // definition order
	defs  map[string]BaseRepresentation
	bases map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]BaseRepresentation{}, bases: map[string]bool{}}
}

// AddBase declares a new base dimension.
func (r *Registry) AddBase(name string) error {
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("dimension %s is already defined", name)
	}
	r.names = append(r.names, name)
	r.defs[name] = Base(name)
	r.bases[name] = true
	return nil
}

// AddDerived names a product of existing dimensions.
func (r *Registry) AddDerived(name string, repr BaseRepresentation) error {
	if _, exists := r.defs[name]; exists {
		return fmt.Errorf("dimension %s is already defined", name)
	}
	r.names = append(r.names, name)
	r.defs[name] = repr
	return nil
}

// Get returns the base representation of a named dimension.
func (r *Registry) Get(name string) (BaseRepresentation, error) {
	if repr, ok := r.defs[name]; ok {
		return repr, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, name)
}

// IsBase reports whether name is a base dimension.
func (r *Registry) IsBase(name string) bool { return r.bases[name] }

// Names returns every registered dimension in definition order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// NameOf returns the first registered name whose representation equals repr.
func (r *Registry) NameOf(repr BaseRepresentation) (string, bool) {
	for _, name := range r.names {
		if r.defs[name].Equal(repr) {
			return name, true
		}
	}
	return "", false
}

// DimensionName looks up a name for the given base exponents.
func (r *Registry) DimensionName(base map[string]int) (string, bool) {
	return r.NameOf(FromMap(base))
}

// Readable returns the registered name for repr, or its composition from
// base dimensions when no name exists.
func (r *Registry) Readable(repr BaseRepresentation) string {
	if repr.IsScalar() {
		return "Scalar"
	}
	if name, ok := r.NameOf(repr); ok {
		return name
	}
	return repr.String()
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	c.names = append(c.names, r.names...)
	for k, v := range r.defs {
		c.defs[k] = v
	}
	for k, v := range r.bases {
		c.bases[k] = v
	}
	return c
}
