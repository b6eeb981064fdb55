// Package catalog loads and serves the translation manifest.
//
// The manifest is loaded exactly once per catalog instance and is read-only
// afterwards. A catalog that fails to load is fatal to the data layer: no
// translation can be resolved without it.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/FocuswithJustin/StudyBible/core/bible"
	"github.com/FocuswithJustin/StudyBible/core/errors"
)

// SourceRef describes where a translation's bundled data lives and how to
// read it.
type SourceRef struct {
	// Format selects the loader backend: "json", "sqlite", or "zefania".
	Format string `json:"format"`
	// Path is the source location relative to the data root. JSON sources
	// point at a directory containing books.json and verses.json (either may
	// carry a .xz suffix); sqlite and zefania sources point at a single file.
	Path string `json:"path"`
	// Blake3 is the optional hex BLAKE3-256 checksum of the source file(s),
	// keyed by file name. Verified by the loader before parsing.
	Blake3 map[string]string `json:"blake3,omitempty"`
}

// manifest is the on-disk shape of the translation index.
type manifest struct {
	Translations []entry `json:"translations"`
}

type entry struct {
	bible.Translation
	Source SourceRef `json:"source"`
}

// Catalog is the immutable set of known translations, in manifest order.
type Catalog struct {
	order   []string
	byID    map[string]bible.Translation
	sources map[string]SourceRef
}

// Load reads and validates a manifest. source is a human-readable description
// of where the manifest came from, used in error messages only.
//
// Any failure here is a CatalogError: a missing or unparseable manifest means
// the data layer cannot function at all.
func Load(r io.Reader, source string) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewCatalog(source, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.NewCatalog(source, err)
	}
	if len(m.Translations) == 0 {
		return nil, errors.NewCatalog(source, fmt.Errorf("manifest declares no translations"))
	}

	c := &Catalog{
		byID:    make(map[string]bible.Translation, len(m.Translations)),
		sources: make(map[string]SourceRef, len(m.Translations)),
	}
	for _, e := range m.Translations {
		if e.ID == "" {
			return nil, errors.NewCatalog(source, fmt.Errorf("manifest entry with empty id"))
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, errors.NewCatalog(source, fmt.Errorf("duplicate translation id %q", e.ID))
		}
		c.order = append(c.order, e.ID)
		c.byID[e.ID] = e.Translation
		c.sources[e.ID] = e.Source
	}
	return c, nil
}

// List returns all translations in manifest declaration order.
func (c *Catalog) List() []bible.Translation {
	out := make([]bible.Translation, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Get returns the translation with the given id.
func (c *Catalog) Get(id string) (bible.Translation, error) {
	t, ok := c.byID[id]
	if !ok {
		return bible.Translation{}, errors.NewUnknownTranslation(id)
	}
	return t, nil
}

// Has reports whether id is a known translation.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Source returns the source reference for the given translation id.
func (c *Catalog) Source(id string) (SourceRef, error) {
	s, ok := c.sources[id]
	if !ok {
		return SourceRef{}, errors.NewUnknownTranslation(id)
	}
	return s, nil
}

// Len returns the number of translations in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}
