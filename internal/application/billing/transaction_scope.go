package billing

import (
	"context"

	"github.com/invoicehub/backend/internal/domain/billing"
)

// TransactionScope provides transactional access to the billing
// repositories. A payment ledger row and its invoice's balance fields must
// never be individually visible in an inconsistent combination, so every
// mutating ledger operation runs inside Execute.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the billing repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() billing.InvoiceRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() billing.PaymentRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without a real transaction. Useful in unit tests.
type NoOpTransactionScope struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(invoiceRepo billing.InvoiceRepository, paymentRepo billing.PaymentRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// PaymentRepo returns the payment repository.
func (s *NoOpTransactionScope) PaymentRepo() billing.PaymentRepository {
	return s.paymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
