package registry

import (
	"cmp"
	"slices"

	"github.com/componentry/regtool/pkg/io"
)

// Index is the generated catalog of every component in the registry.
//
// Fields stay in alphabetical order so the encoded index keeps its keys
// sorted.
type Index struct {
	Components []Component `json:"components"`
	Count      int         `json:"count"`
}

// BuildIndex assembles a catalog from the submissions in dir, sorted by
// component name.
func BuildIndex(dir string) (*Index, error) {
	components, err := List(dir)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(components, func(a, b Component) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return &Index{Components: components, Count: len(components)}, nil
}

// WriteIndex replaces the catalog at path atomically, so readers never
// observe a partially written index.
func WriteIndex(path string, idx *Index) error {
	return io.WriteJSONAtomic(path, idx)
}
