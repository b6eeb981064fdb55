// Package bundled embeds the sample translation corpus shipped with the
// binary: a manifest plus JSON sources, so the app works with no external
// data directory.
package bundled

import (
	"bytes"
	"embed"
	"io/fs"

	"github.com/FocuswithJustin/StudyBible/core/catalog"
	"github.com/FocuswithJustin/StudyBible/core/loader"
)

//go:embed data
var dataFS embed.FS

// Manifest returns the raw embedded manifest bytes.
func Manifest() ([]byte, error) {
	return dataFS.ReadFile("data/manifest.json")
}

// Catalog loads the catalog from the embedded manifest.
func Catalog() (*catalog.Catalog, error) {
	raw, err := Manifest()
	if err != nil {
		return nil, err
	}
	return catalog.Load(bytes.NewReader(raw), "embedded manifest")
}

// Loader returns a source loader over the embedded data tree.
func Loader(cat *catalog.Catalog) (*loader.SourceLoader, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return loader.New(cat, sub), nil
}
