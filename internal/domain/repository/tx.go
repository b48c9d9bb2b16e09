package repository

import "context"

// TxManager runs a function as one atomic unit of work. Repositories called
// with the context passed to fn participate in the same transaction; any
// error from fn rolls the whole unit back.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
