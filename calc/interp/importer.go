package interp

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hupe1980/numbridge/calc/modules"
)

// ErrModuleNotFound is wrapped by importers when a module does not exist.
var ErrModuleNotFound = errors.New("module not found")

// Importer resolves "use" paths such as "prelude" or "units::time" to source.
type Importer interface {
	Import(module string) (string, error)
}

// FSImporter loads modules from a file system. "a::b" maps to "a/b.nbt".
type FSImporter struct {
	FS fs.FS
}

// Import implements Importer.
func (i FSImporter) Import(module string) (string, error) {
	name := path.Join(strings.Split(module, "::")...) + ".nbt"
	data, err := fs.ReadFile(i.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrModuleNotFound, module)
		}
		return "", fmt.Errorf("read module %s: %w", module, err)
	}
	return string(data), nil
}

// BuiltinImporter serves the modules shipped with the calculator.
func BuiltinImporter() Importer {
	return FSImporter{FS: modules.FS}
}

// MapImporter serves modules from memory. Useful in tests and for hosts that
// add their own definitions.
type MapImporter map[string]string

// Import implements Importer.
func (m MapImporter) Import(module string) (string, error) {
	src, ok := m[module]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrModuleNotFound, module)
	}
	return src, nil
}

// ChainImporter tries each importer in order and returns the first hit.
type ChainImporter []Importer

// Import implements Importer.
func (c ChainImporter) Import(module string) (string, error) {
	for _, imp := range c {
		src, err := imp.Import(module)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, ErrModuleNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrModuleNotFound, module)
}
