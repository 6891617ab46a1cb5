// Package catalog is the immutable registry of knowledge-base collections.
package catalog

import (
	"fmt"
	"slices"

	"github.com/kailas-cloud/quantmaster/internal/domain"
)

// Category is the closed set of topic partitions.
type Category string

// Declared categories.
const (
	Foundations  Category = "foundations"
	Regression   Category = "regression"
	Econometrics Category = "econometrics"
	Advanced     Category = "advanced"
	Meta         Category = "meta"
	Replication  Category = "replication"
	Code         Category = "code"
	Journals     Category = "journals"
)

// All is the category filter matching every collection.
const All = "all"

var categories = []Category{
	Foundations, Regression, Econometrics, Advanced, Meta, Replication, Code, Journals,
}

// Categories returns the declared categories in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// IsValid checks if the category is declared.
func (c Category) IsValid() bool {
	return slices.Contains(categories, c)
}

// ParseCategory converts s into a declared category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q: %w", s, domain.ErrInvalidInput)
	}
	return c, nil
}

// Level is the audience level of a collection.
type Level string

// Levels.
const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Descriptor describes one collection (immutable value object).
type Descriptor struct {
	id          string
	storeName   string
	category    Category
	level       Level
	description string
}

// NewDescriptor creates a descriptor. Validation happens in New.
func NewDescriptor(id, storeName string, category Category, level Level, description string) Descriptor {
	return Descriptor{
		id:          id,
		storeName:   storeName,
		category:    category,
		level:       level,
		description: description,
	}
}

// ID returns the catalog identifier.
func (d Descriptor) ID() string { return d.id }

// StoreName returns the collection name inside the vector store.
func (d Descriptor) StoreName() string { return d.storeName }

// Category returns the topic partition.
func (d Descriptor) Category() Category { return d.category }

// Level returns the audience level.
func (d Descriptor) Level() Level { return d.level }

// Description returns the human-readable summary.
func (d Descriptor) Description() string { return d.description }

// Metadata returns the embedding metadata stored with the collection.
func (d Descriptor) Metadata() map[string]string {
	return map[string]string{
		"category": string(d.category),
		"level":    string(d.level),
	}
}

// Catalog is an immutable, validated set of descriptors.
type Catalog struct {
	descs   []Descriptor
	byID    map[string]int
	byStore map[string]int
}

// New validates descriptors and builds a catalog. IDs and store names must be
// unique and every category must be declared.
func New(descs ...Descriptor) (*Catalog, error) {
	c := &Catalog{
		descs:   make([]Descriptor, 0, len(descs)),
		byID:    make(map[string]int, len(descs)),
		byStore: make(map[string]int, len(descs)),
	}
	for _, d := range descs {
		if d.id == "" || d.storeName == "" {
			return nil, fmt.Errorf("descriptor %q: id and store name are required", d.id)
		}
		if !d.category.IsValid() {
			return nil, fmt.Errorf("descriptor %q: unknown category %q", d.id, d.category)
		}
		if _, dup := c.byID[d.id]; dup {
			return nil, fmt.Errorf("duplicate collection id %q", d.id)
		}
		if _, dup := c.byStore[d.storeName]; dup {
			return nil, fmt.Errorf("duplicate store name %q", d.storeName)
		}
		c.byID[d.id] = len(c.descs)
		c.byStore[d.storeName] = len(c.descs)
		c.descs = append(c.descs, d)
	}
	return c, nil
}

// MustNew calls New and panics on error.
func MustNew(descs ...Descriptor) *Catalog {
	c, err := New(descs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of collections.
func (c *Catalog) Len() int { return len(c.descs) }

// List returns every descriptor in declaration order.
func (c *Catalog) List() []Descriptor {
	return slices.Clone(c.descs)
}

// ByCategory returns descriptors of the given category; empty when none match.
func (c *Catalog) ByCategory(category Category) []Descriptor {
	out := make([]Descriptor, 0)
	for _, d := range c.descs {
		if d.category == category {
			out = append(out, d)
		}
	}
	return out
}

// Lookup finds a descriptor by identifier.
func (c *Catalog) Lookup(id string) (Descriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return c.descs[i], true
}

// Resolve finds a descriptor by identifier or store name.
func (c *Catalog) Resolve(key string) (Descriptor, bool) {
	if d, ok := c.Lookup(key); ok {
		return d, true
	}
	i, ok := c.byStore[key]
	if !ok {
		return Descriptor{}, false
	}
	return c.descs[i], true
}

// Targets resolves a category filter: "" and All select everything, a declared
// category selects its members, anything else is ErrInvalidInput.
func (c *Catalog) Targets(filter string) ([]Descriptor, error) {
	if filter == "" || filter == All {
		return c.List(), nil
	}
	category, err := ParseCategory(filter)
	if err != nil {
		return nil, err
	}
	return c.ByCategory(category), nil
}
