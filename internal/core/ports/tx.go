package ports

import "context"

// TxRunner executes fn inside one transactional boundary. The admin pipeline
// uses it to bind an account mutation and its audit append together: either
// both commit or neither does. Repository calls made with the context passed
// to fn participate in the transaction.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
