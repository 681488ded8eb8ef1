package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// txCtxKey - ключ контекста для хранения активной транзакции.
type txCtxKey struct{}

// NewTxContext создает новый контекст с транзакцией.
func NewTxContext(parent context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(parent, txCtxKey{}, tx)
}

// TxFromContext извлекает транзакцию из контекста.
func TxFromContext(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txCtxKey{}).(pgx.Tx)
	return tx
}

// RunInTx выполняет fn в одной транзакции: commit при nil-ошибке, rollback
// при ошибке или панике. Вложенный вызов переиспользует транзакцию из
// контекста и не фиксирует ее.
func (db *Database) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	if tx := TxFromContext(ctx); tx != nil {
		return fn(ctx)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if v := recover(); v != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				v = fmt.Sprintf("%v: rolling back transaction: %v", v, rbErr)
			}
			panic(v)
		}
	}()

	if err := fn(NewTxContext(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("%w: rolling back transaction: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
