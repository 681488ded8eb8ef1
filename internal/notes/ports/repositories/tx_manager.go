package repositories

import "context"

// TxManager выполняет функцию в рамках одной транзакционной единицы работы:
// commit при nil-ошибке, rollback при ошибке или панике.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(context.Context) error) error
}
