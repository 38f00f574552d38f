package ports

import "context"

// TxRunner executes fn within one atomic storage transaction. The transition
// engine uses it to commit the status write, audit comment, and notification
// together, closing the partial-failure window between them.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
