package item

import (
	"context"

	"github.com/taibuivan/arkiva/internal/collections"
)

// Catalogue defines the external store access contract.
type Catalogue interface {
	Search(context context.Context, database, query string, limit, startFrom int) (*collections.ResultSet, error)
	Insert(context context.Context, database string, payload *collections.Payload) (*collections.Record, error)
	Update(context context.Context, database string, payload *collections.Payload) (*collections.Record, error)
}
