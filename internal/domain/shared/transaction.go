package shared

import "context"

// Transactor runs fn inside a unit of work. Repositories called with the
// context passed to fn join the same transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransactorFunc adapts a function to the Transactor interface
type TransactorFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// Transaction calls f(ctx, fn)
func (f TransactorFunc) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}

// NoopTransactor runs fn directly without a transaction
var NoopTransactor Transactor = TransactorFunc(func(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
})
