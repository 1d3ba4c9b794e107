package student

import (
	"context"
)

// Repository defines the interface for loading the student fee dataset from
// the warehouse
type Repository interface {
	// List returns the full dataset snapshot
	List(ctx context.Context) ([]*Student, error)
}
