package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/cockroachdb/errors"

	"elementhub/pkg/models"
)

// elements.json carries the 29 detailed records the front end shipped with:
// hydrogen through calcium plus a handful of heavier elements.
//
//go:embed data/elements.json
var fixtureJSON []byte

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := ReadJSON(bytes.NewReader(fixtureJSON))
	if err != nil {
		panic(errors.Wrap(err, "embedded element fixture"))
	}
	return c
})

// Default returns the catalog built from the embedded fixture.
func Default() *Catalog {
	return defaultCatalog()
}

// ReadJSON decodes a JSON array of element records and validates it.
func ReadJSON(r io.Reader) (*Catalog, error) {
	var elems []models.Element
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&elems); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode elements json"), ErrInvalidCatalog)
	}
	return New(elems)
}

// LoadFile reads a catalog from a .json or .csv file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open catalog %s", path)
	}
	defer f.Close()

	if isCSV(path) {
		elems, err := ReadCSV(f)
		if err != nil {
			return nil, errors.Wrapf(err, "read catalog %s", path)
		}
		return New(elems)
	}
	c, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	return c, nil
}
