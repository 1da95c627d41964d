package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	appbilling "github.com/invoicehub/backend/internal/application/billing"
)

func newMockTransactionScope(t *testing.T) (*GormBillingTransactionScope, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBillingTransactionScope(gormDB), mock
}

func TestGormBillingTransactionScope_Execute(t *testing.T) {
	t.Run("commits when function succeeds", func(t *testing.T) {
		scope, mock := newMockTransactionScope(t)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := scope.Execute(context.Background(), func(repos appbilling.TransactionalRepositories) error {
			assert.NotNil(t, repos.InvoiceRepo())
			assert.NotNil(t, repos.PaymentRepo())
			return nil
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when function fails", func(t *testing.T) {
		scope, mock := newMockTransactionScope(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("allocation failed")
		err := scope.Execute(context.Background(), func(repos appbilling.TransactionalRepositories) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
