package formtree

import (
	"errors"
	"fmt"
)

// ErrConflict is returned by Compose when two patches write overlapping
// locations.
var ErrConflict = errors.New("formtree: conflicting patches")

// Op is a single write into a Tree.
type Op struct {
	Path  Locator
	Value any
}

// Patch is an ordered list of writes produced by a pure transform. Patches are
// applied by the caller, which keeps the write order visible at the call site.
type Patch []Op

// Set appends a write and returns the extended patch.
func (p Patch) Set(path Locator, value any) Patch {
	return append(p, Op{Path: path, Value: value})
}

// Paths lists the locators written by the patch, in order.
func (p Patch) Paths() []Locator {
	if len(p) == 0 {
		return nil
	}
	out := make([]Locator, len(p))
	for i, op := range p {
		out[i] = op.Path
	}
	return out
}

// Apply writes every op of every patch into tree, in order.
func Apply(tree Tree, patches ...Patch) error {
	if tree == nil {
		return ErrNilTree
	}
	for _, patch := range patches {
		for _, op := range patch {
			if err := Set(tree, op.Path, op.Value); err != nil {
				return fmt.Errorf("formtree: apply %q: %w", op.Path.String(), err)
			}
		}
	}
	return nil
}

// Compose concatenates patches, failing when an op of one patch writes the
// same location as, or an ancestor/descendant of, an op from another patch.
// Overlaps inside a single patch are allowed; later ops win.
func Compose(patches ...Patch) (Patch, error) {
	var out Patch
	owners := make([]int, 0)
	for idx, patch := range patches {
		for _, op := range patch {
			for i, existing := range out {
				if owners[i] == idx {
					continue
				}
				if op.Path.HasPrefix(existing.Path) || existing.Path.HasPrefix(op.Path) {
					return nil, fmt.Errorf("%w: %q overlaps %q", ErrConflict, op.Path.String(), existing.Path.String())
				}
			}
			out = append(out, op)
			owners = append(owners, idx)
		}
	}
	return out, nil
}
