package record

import (
	"context"
)

// Repository defines the interface for fee record persistence in the
// external record store. Implementations own the session lifecycle with the
// store; callers never see tokens.
type Repository interface {
	// Exists reports whether a record for the payment id has already been
	// written. An error means the answer could not be determined and the
	// caller must not insert.
	Exists(ctx context.Context, paymentID string) (bool, error)

	// Insert writes the record. Implementations retry exactly once after a
	// forced session refresh when the store reports an expired session; any
	// other failure is returned as-is.
	Insert(ctx context.Context, rec *FeeRecord) error
}
