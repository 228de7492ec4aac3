// File: database/repository/interval/transaction.go
package intervalRepo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// RunInTransaction executes fn inside a Mongo session transaction. The
// context passed to fn is the session context; every repository call made
// with it participates in the transaction, and either all writes commit or
// none do.
func (r *mongoIntervalRepo) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// IsTransientTxnError reports whether the store aborted the transaction for
// a retryable reason (write conflict, unknown commit result).
func IsTransientTxnError(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel("TransientTransactionError") ||
			serverErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}

// IsUnavailableError reports whether the store itself failed (timeout,
// connection loss) rather than aborting a specific transaction.
func IsUnavailableError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, context.DeadlineExceeded) ||
		mongo.IsTimeout(err) || mongo.IsNetworkError(err)
}
