package repository

import "context"

// Transactor runs fn inside one database transaction.
// Repositories called with the ctx passed to fn join that transaction.
// A non-nil error from fn, a panic, or a cancelled ctx rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
