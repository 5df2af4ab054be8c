package service

import (
	"context"
	"errors"

	"orgcatalog.app/catalog/core/db"
	"orgcatalog.app/catalog/internal/store"
)

// StoreProvider exposes the stores bound to one unit of work.
type StoreProvider interface {
	Activities() store.ActivityStore
	Buildings() store.BuildingStore
	Organizations() store.OrganizationStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
// fn receives the context carrying the transaction; nested WithTx calls made with it join
// the same transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(ctx context.Context, stores StoreProvider) error) error {
	err := r.db.WithTx(ctx, func(ctx context.Context, q db.DBTX) error {
		return fn(ctx, store.NewStores(q))
	})
	return store.Classify(err)
}

// lookup runs read in its own scope. A missing row is a normal outcome: the
// scope commits and lookup returns nil without an error.
func lookup[T any](ctx context.Context, tx TxRunner, read func(ctx context.Context, stores StoreProvider) (*T, error)) (*T, error) {
	var out *T
	err := tx.WithTx(ctx, func(ctx context.Context, stores StoreProvider) error {
		v, err := read(ctx, stores)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
