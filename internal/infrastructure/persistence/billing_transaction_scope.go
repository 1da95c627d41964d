package persistence

import (
	"context"

	"gorm.io/gorm"

	appbilling "github.com/invoicehub/backend/internal/application/billing"
	"github.com/invoicehub/backend/internal/domain/billing"
)

// GormBillingTransactionScope implements TransactionScope using GORM
// transactions
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormBillingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormBillingRepositories provides repositories bound to a single transaction
type gormBillingRepositories struct {
	tx *gorm.DB
}

// InvoiceRepo returns an invoice repository scoped to the transaction
func (r *gormBillingRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// PaymentRepo returns a payment repository scoped to the transaction
func (r *gormBillingRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// Ensure interface compliance
var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)
var _ appbilling.TransactionalRepositories = (*gormBillingRepositories)(nil)
