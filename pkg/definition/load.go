package definition

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Load reads and parses the definition file at name. A document without a
// name is named after the file.
func Load(name string, opts ...Option) (*Definition, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	d, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if d.Name == "" {
		d.Name = baseName(filepath.Base(name))
	}
	return d, nil
}

// LoadFS parses every .yaml, .yml and .json file in the root of fsys,
// sorted by file name. Checks attached with WithCheck apply to each file
// that has a field at the path; paths matching no field are ignored.
func LoadFS(fsys fs.FS, opts ...Option) ([]*Definition, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}

	var (
		out  []*Definition
		seen = map[string]string{}
	)
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(extensions, strings.ToLower(path.Ext(e.Name()))) {
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, errors.Join(ErrInvalidDefinition, err)
		}
		d, err := parse(data, true, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if d.Name == "" {
			d.Name = baseName(e.Name())
		}
		if prev, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateName, d.Name, prev, e.Name())
		}
		seen[d.Name] = e.Name()
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, ErrNoDefinitions
	}
	return out, nil
}

func baseName(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}
