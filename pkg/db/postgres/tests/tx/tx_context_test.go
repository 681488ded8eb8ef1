package tx_test

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteshelf/pkg/db/postgres"
)

func TestTxContext(t *testing.T) {
	ctx := context.Background()

	t.Run("контекст без транзакции возвращает nil", func(t *testing.T) {
		assert.Nil(t, postgres.TxFromContext(ctx))
	})

	t.Run("транзакция извлекается из контекста", func(t *testing.T) {
		mock, err := pgxmock.NewConn()
		require.NoError(t, err)

		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		txCtx := postgres.NewTxContext(ctx, tx)
		assert.Equal(t, tx, postgres.TxFromContext(txCtx))

		mock.ExpectRollback()
		require.NoError(t, tx.Rollback(ctx))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("дочерний контекст сохраняет транзакцию", func(t *testing.T) {
		mock, err := pgxmock.NewConn()
		require.NoError(t, err)

		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		txCtx := postgres.NewTxContext(ctx, tx)
		childCtx, cancel := context.WithCancel(txCtx)
		defer cancel()

		assert.Equal(t, tx, postgres.TxFromContext(childCtx))
	})
}
