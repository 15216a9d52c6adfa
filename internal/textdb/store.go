package textdb

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyProduct = errors.New("product has no text")

// Store keeps every product the office has issued.
type Store interface {
	// Latest returns the most recent product stored under the retrieval
	// identifier, or nil when there is none.
	Latest(ctx context.Context, awips string) (*Product, error)
	// Insert stores the product, filling in its database ID and creation time.
	Insert(ctx context.Context, product *Product) (*Product, error)
	// Issued lists products whose valid period starts in [from, to), oldest first.
	Issued(ctx context.Context, from, to time.Time) ([]*Product, error)
	// Purge removes products created before the cutoff.
	Purge(ctx context.Context, before time.Time) (int64, error)
}
