// Package catalog holds the read-only list of target image specifications.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/menta2k/websafespec/pkg/types"
)

//go:embed specs.yaml
var defaultSpecs []byte

// Catalog is an ordered set of target specs, keyed by ID.
// It is never modified after it has been loaded.
type Catalog struct {
	specs []types.TargetSpec
	index map[string]int
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultSpecs)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded specs are invalid: %v", err))
	}
	return c
}

// LoadFromFile loads a catalog from a YAML file
func LoadFromFile(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// Parse builds a catalog from a YAML list of specs
func Parse(data []byte) (*Catalog, error) {
	var specs []types.TargetSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(specs)
}

// New builds a catalog from specs, validating each entry
func New(specs []types.TargetSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", types.ErrInvalidSpec)
	}
	c := &Catalog{
		specs: make([]types.TargetSpec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		s.ID = strings.TrimSpace(s.ID)
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", types.ErrInvalidSpec, s.ID)
		}
		c.index[s.ID] = len(c.specs)
		c.specs = append(c.specs, s)
	}
	return c, nil
}

// Lookup returns the spec with the given ID
func (c *Catalog) Lookup(id string) (types.TargetSpec, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.TargetSpec{}, fmt.Errorf("%w: no spec selected", types.ErrMissingSpec)
	}
	i, ok := c.index[id]
	if !ok {
		return types.TargetSpec{}, fmt.Errorf("%w: unknown spec %q", types.ErrMissingSpec, id)
	}
	return c.specs[i], nil
}

// All returns a copy of the specs in catalog order
func (c *Catalog) All() []types.TargetSpec {
	out := make([]types.TargetSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

// IDs returns spec IDs in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.specs))
	for i, s := range c.specs {
		ids[i] = s.ID
	}
	return ids
}

func (c *Catalog) Len() int {
	return len(c.specs)
}
