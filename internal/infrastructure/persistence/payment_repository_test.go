package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared"
)

func newMockPaymentRepository(t *testing.T) (*GormPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPaymentRepository(gormDB), mock, mockDB
}

func paymentRows(id, tenantID, invoiceID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "tenant_id", "invoice_id",
		"amount", "currency", "method", "reference_number", "payment_date",
	}).AddRow(
		id, now, now, tenantID, invoiceID,
		decimal.NewFromInt(100), "USD", "bank_transfer", "WIRE-552", now,
	)
}

func TestGormPaymentRepository_FindByIDForTenant(t *testing.T) {
	t.Run("finds payment within tenant", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()
		tenantID := uuid.New()
		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, paymentID, 1).
			WillReturnRows(paymentRows(paymentID, tenantID, invoiceID))

		payment, err := repo.FindByIDForTenant(context.Background(), tenantID, paymentID)

		assert.NoError(t, err)
		assert.NotNil(t, payment)
		assert.Equal(t, paymentID, payment.ID)
		assert.Equal(t, invoiceID, payment.InvoiceID)
		assert.True(t, payment.Amount.Amount().Equal(decimal.NewFromInt(100)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing payment", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()
		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, paymentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		payment, err := repo.FindByIDForTenant(context.Background(), tenantID, paymentID)

		assert.Error(t, err)
		assert.Nil(t, payment)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindByInvoice(t *testing.T) {
	t.Run("lists payments newest first", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE tenant_id = \$1 AND invoice_id = \$2 ORDER BY payment_date DESC, created_at DESC`).
			WithArgs(tenantID, invoiceID).
			WillReturnRows(paymentRows(uuid.New(), tenantID, invoiceID))

		payments, err := repo.FindByInvoice(context.Background(), tenantID, invoiceID)

		assert.NoError(t, err)
		assert.Len(t, payments, 1)
		assert.Equal(t, billing.MethodBankTransfer, payments[0].Method)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_CountByInvoice(t *testing.T) {
	t.Run("counts payments for invoice", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		invoiceID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE tenant_id = \$1 AND invoice_id = \$2`).
			WithArgs(tenantID, invoiceID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByInvoice(context.Background(), tenantID, invoiceID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_DeleteForTenant(t *testing.T) {
	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		paymentID := uuid.New()

		mock.ExpectExec(`DELETE FROM "payments" WHERE tenant_id = \$1 AND id = \$2`).
			WithArgs(tenantID, paymentID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteForTenant(context.Background(), tenantID, paymentID)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
