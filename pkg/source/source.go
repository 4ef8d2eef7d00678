// Package source defines where entity datasets come from.
//
// A Source materializes the full record list before any build; the diagram
// engine itself never fetches data. Implementations live in subpackages
// (local JSON files, MongoDB collections); Static covers tests and embedded
// fixtures.
package source

import (
	"context"

	"github.com/craftlens/craftlens/pkg/dataset"
)

// Source loads the complete entity dataset.
type Source interface {
	Load(ctx context.Context) ([]dataset.EntityRecord, error)
}

// Static is an in-memory Source, mainly for tests.
type Static []dataset.EntityRecord

// Load returns the records as-is.
func (s Static) Load(ctx context.Context) ([]dataset.EntityRecord, error) {
	return s, nil
}
