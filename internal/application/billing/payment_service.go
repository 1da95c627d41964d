package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// PaymentService records and reverses payments against invoices. Every
// mutation runs inside a transaction so the payment row and the invoice
// balance move together.
type PaymentService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(txScope TransactionScope, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		txScope: txScope,
		logger:  logger,
	}
}

// RecordPayment appends a payment to the invoice's ledger and settles it
// against the balance. The invoice is re-read inside the transaction so the
// exceeds-due check runs against the committed balance, and the versioned
// save rejects a concurrent writer that got there first.
func (s *PaymentService) RecordPayment(ctx context.Context, tenantID, invoiceID uuid.UUID, req RecordPaymentRequest) (*RecordPaymentResponse, error) {
	var result RecordPaymentResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}

		amount, err := valueobject.NewMoneyFromFloat(req.Amount, invoice.Currency)
		if err != nil {
			return shared.ErrInvalidAmount
		}

		var paymentDate time.Time
		if req.PaymentDate != nil {
			paymentDate = *req.PaymentDate
		}
		payment, err := billing.NewPayment(
			tenantID, invoiceID, amount,
			billing.PaymentMethod(req.Method), paymentDate,
			req.ReferenceNumber, req.Notes, req.RecordedBy,
		)
		if err != nil {
			return err
		}

		if err := invoice.ApplyPayment(amount); err != nil {
			return err
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		result = RecordPaymentResponse{
			Payment: toPaymentResponse(payment),
			Invoice: toInvoiceResponse(invoice),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", result.Payment.Amount.String()))
	return &result, nil
}

// DeletePayment removes a payment and reverses its effect on the invoice
// balance. A fully settled invoice losing a payment drops back to sent.
func (s *PaymentService) DeletePayment(ctx context.Context, tenantID, invoiceID, paymentID uuid.UUID) (*InvoiceResponse, error) {
	var result InvoiceResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}

		payment, err := repos.PaymentRepo().FindByIDForTenant(ctx, tenantID, paymentID)
		if err != nil {
			return err
		}
		if payment.InvoiceID != invoiceID {
			return shared.ErrNotFound
		}

		if err := invoice.RevertPayment(payment.Amount); err != nil {
			return err
		}

		if err := repos.PaymentRepo().DeleteForTenant(ctx, tenantID, paymentID); err != nil {
			return err
		}
		if err := repos.InvoiceRepo().SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		result = toInvoiceResponse(invoice)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment reversed",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("payment_id", paymentID.String()))
	return &result, nil
}

// ListPayments returns the invoice's payments newest first alongside a
// summary derived from the invoice's own running totals.
func (s *PaymentService) ListPayments(ctx context.Context, tenantID, invoiceID uuid.UUID) (*ListPaymentsResponse, error) {
	var result ListPaymentsResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForTenant(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}

		payments, err := repos.PaymentRepo().FindByInvoice(ctx, tenantID, invoiceID)
		if err != nil {
			return err
		}

		responses := make([]PaymentResponse, 0, len(payments))
		for i := range payments {
			responses = append(responses, toPaymentResponse(&payments[i]))
		}

		result = ListPaymentsResponse{
			Payments: responses,
			Summary: LedgerSummaryResponse{
				InvoiceTotal: invoice.Total.Amount(),
				TotalPaid:    invoice.AmountPaid.Amount(),
				TotalDue:     invoice.BalanceDue.Amount(),
				PaymentCount: len(payments),
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
