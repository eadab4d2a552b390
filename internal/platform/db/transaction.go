package db

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// TxManager runs units of work inside a single database transaction.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Execute begins a transaction, runs fn with it and commits when fn returns nil.
// The transaction is rolled back when fn returns an error or panics; the panic is re-raised.
func (tm *TxManager) Execute(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

// Transactor hands fn a repository bound to the transaction instead of the raw *gorm.DB.
type Transactor[R any] struct {
	tm   *TxManager
	bind func(tx *gorm.DB) R
}

// NewTransactor returns a Transactor building R from each transaction with bind.
func NewTransactor[R any](tm *TxManager, bind func(tx *gorm.DB) R) *Transactor[R] {
	return &Transactor[R]{tm: tm, bind: bind}
}

func (t *Transactor[R]) Execute(ctx context.Context, fn func(repo R) error) error {
	return t.tm.Execute(ctx, func(tx *gorm.DB) error {
		return fn(t.bind(tx))
	})
}
