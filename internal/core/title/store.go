package title

import (
	"context"
	"time"

	"github.com/taibuivan/arkiva/internal/collections"
)

// Catalogue defines the external store access contract.
type Catalogue interface {
	Search(context context.Context, database, query string, limit, startFrom int) (*collections.ResultSet, error)
	Insert(context context.Context, database string, payload *collections.Payload) (*collections.Record, error)
	Update(context context.Context, database string, payload *collections.Payload) (*collections.Record, error)
}

// Cache defines the read-through cache contract for title lookups.
// Implementations must treat every miss or backend failure as "not cached".
type Cache interface {
	GetTitle(context context.Context, id string) (*collections.Title, bool)
	SetTitle(context context.Context, title *collections.Title, ttl time.Duration)
	GetSearch(context context.Context, name string) ([]*collections.Title, bool)
	SetSearch(context context.Context, name string, titles []*collections.Title, ttl time.Duration)
	InvalidateSearch(context context.Context, name string)
}
