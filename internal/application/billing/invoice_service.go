package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invoicehub/backend/internal/domain/billing"
	"github.com/invoicehub/backend/internal/domain/identity"
	"github.com/invoicehub/backend/internal/domain/partner"
	"github.com/invoicehub/backend/internal/domain/shared"
	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

// InvoiceRenderer produces documents from an invoice snapshot. Rendering
// never mutates the invoice.
type InvoiceRenderer interface {
	RenderHTML(ctx context.Context, invoice *billing.Invoice, templateID *uuid.UUID) (string, error)
	RenderPDF(ctx context.Context, invoice *billing.Invoice, templateID *uuid.UUID) ([]byte, error)
}

// InvoiceMailer delivers a rendered invoice to the customer
type InvoiceMailer interface {
	SendInvoice(ctx context.Context, recipient, subject, htmlBody string) error
}

// ArtifactStore persists rendered PDFs and returns their location
type ArtifactStore interface {
	StorePDF(ctx context.Context, tenantID uuid.UUID, invoiceNumber string, pdf []byte) (string, error)
}

// InvoiceService provides application-level invoice operations
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	tenantRepo  identity.TenantRepository
	vendorRepo  partner.VendorRepository
	renderer    InvoiceRenderer
	mailer      InvoiceMailer
	artifacts   ArtifactStore
	logger      *zap.Logger
}

// InvoiceServiceOption is a functional option for configuring InvoiceService
type InvoiceServiceOption func(*InvoiceService)

// WithRenderer wires the document renderer used by send and render flows
func WithRenderer(r InvoiceRenderer) InvoiceServiceOption {
	return func(s *InvoiceService) { s.renderer = r }
}

// WithMailer wires the delivery channel used by the send flow
func WithMailer(m InvoiceMailer) InvoiceServiceOption {
	return func(s *InvoiceService) { s.mailer = m }
}

// WithArtifactStore wires the PDF artifact store
func WithArtifactStore(a ArtifactStore) InvoiceServiceOption {
	return func(s *InvoiceService) { s.artifacts = a }
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	tenantRepo identity.TenantRepository,
	vendorRepo partner.VendorRepository,
	logger *zap.Logger,
	opts ...InvoiceServiceOption,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &InvoiceService{
		invoiceRepo: invoiceRepo,
		tenantRepo:  tenantRepo,
		vendorRepo:  vendorRepo,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInvoice creates a draft invoice, allocating its number from the
// tenant's numbering config unless one was supplied. A colliding
// auto-allocated number is regenerated and retried exactly once; the unique
// (tenant_id, invoice_number) index is the backstop for the racy allocator.
func (s *InvoiceService) CreateInvoice(ctx context.Context, tenantID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	vendorSnapshot, err := s.resolveVendor(ctx, tenantID, req.VendorID)
	if err != nil {
		return nil, err
	}

	currency := tenant.Currency
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}

	items, err := buildItems(req.Items, currency)
	if err != nil {
		return nil, err
	}

	invoiceType := billing.TypeInvoice
	if req.Type != "" {
		invoiceType = billing.InvoiceType(req.Type)
	}

	issueDate := time.Now()
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	autoNumber := req.InvoiceNumber == ""
	number := req.InvoiceNumber
	if autoNumber {
		number, err = s.allocateNumber(ctx, tenant)
		if err != nil {
			return nil, err
		}
	}

	invoice, err := billing.NewInvoice(
		tenantID, number, invoiceType, currency,
		vendorSnapshot, toPartySnapshot(req.Customer),
		items, decimal.NewFromFloat(req.DiscountAmount),
		issueDate, req.DueDate,
	)
	if err != nil {
		return nil, err
	}
	invoice.Notes = req.Notes

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		if !autoNumber || !isConflict(err) {
			return nil, err
		}
		// Lost the allocation race; regenerate once from the fresh tail
		number, allocErr := s.allocateNumber(ctx, tenant)
		if allocErr != nil {
			return nil, allocErr
		}
		invoice.InvoiceNumber = number
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return nil, err
		}
	}

	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

func (s *InvoiceService) allocateNumber(ctx context.Context, tenant *identity.Tenant) (string, error) {
	last, ok, err := s.invoiceRepo.FindLatestNumber(ctx, tenant.ID)
	if err != nil {
		return "", err
	}
	if !ok {
		last = ""
	}
	return billing.NextInvoiceNumber(last, tenant.Numbering.InvoicePrefix, tenant.Numbering.InvoiceStartNumber), nil
}

func (s *InvoiceService) resolveVendor(ctx context.Context, tenantID uuid.UUID, vendorID *uuid.UUID) (billing.PartySnapshot, error) {
	if vendorID == nil {
		return billing.PartySnapshot{}, nil
	}
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, *vendorID)
	if err != nil {
		return billing.PartySnapshot{}, err
	}
	return vendor.Snapshot(), nil
}

// GetInvoice fetches a single invoice for the tenant
func (s *InvoiceService) GetInvoice(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// ListInvoices lists the tenant's invoices with filtering and pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	domainFilter, err := toDomainFilter(filter)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, toInvoiceResponse(&invoices[i]))
	}
	page := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// UpdateInvoice patches an invoice. Items, when present, go through the
// dedicated replacement path that recomputes the totals.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, tenantID, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	notes := invoice.Notes
	if req.Notes != nil {
		notes = *req.Notes
	}
	issueDate := invoice.IssueDate
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}
	dueDate := invoice.DueDate
	if req.DueDate != nil {
		dueDate = req.DueDate
	}
	var customer *billing.PartySnapshot
	if req.Customer != nil {
		snap := toPartySnapshot(*req.Customer)
		customer = &snap
	}
	if err := invoice.UpdateDetails(notes, issueDate, dueDate, customer); err != nil {
		return nil, err
	}

	if len(req.Items) > 0 {
		items, err := buildItems(req.Items, invoice.Currency)
		if err != nil {
			return nil, err
		}
		discount := invoice.DiscountAmount.Amount()
		if req.DiscountAmount != nil {
			discount = decimal.NewFromFloat(*req.DiscountAmount)
		}
		if err := invoice.ReplaceItems(items, discount); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// SetStatus sets the invoice lifecycle status. Enum membership is the only
// validation; the permissive transition behavior is deliberate.
func (s *InvoiceService) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := invoice.SetStatus(billing.InvoiceStatus(status)); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// DeleteInvoice soft deletes an invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.invoiceRepo.DeleteForTenant(ctx, tenantID, id)
}

// MarkViewed records an open-tracking hit. Only sent invoices change.
func (s *InvoiceService) MarkViewed(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	before := invoice.Version
	invoice.MarkViewed()
	if invoice.Version != before {
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			return nil, err
		}
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// RenderInvoiceHTML renders the invoice with the given template
func (s *InvoiceService) RenderInvoiceHTML(ctx context.Context, tenantID, id uuid.UUID, templateID *uuid.UUID) (string, error) {
	if s.renderer == nil {
		return "", shared.NewInvalidOperationError("Rendering is not configured")
	}
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderHTML(ctx, invoice, templateID)
}

// RenderInvoicePDF renders the invoice to PDF with the given template
func (s *InvoiceService) RenderInvoicePDF(ctx context.Context, tenantID, id uuid.UUID, templateID *uuid.UUID) ([]byte, error) {
	if s.renderer == nil {
		return nil, shared.NewInvalidOperationError("Rendering is not configured")
	}
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderPDF(ctx, invoice, templateID)
}

// SendInvoice renders the invoice, stores the PDF artifact, emails the
// customer and marks the invoice sent. Artifact storage is non-critical
// side work: a failure there is logged, not propagated.
func (s *InvoiceService) SendInvoice(ctx context.Context, tenantID, id uuid.UUID, templateID *uuid.UUID) (*InvoiceResponse, error) {
	if s.renderer == nil || s.mailer == nil {
		return nil, shared.NewInvalidOperationError("Delivery is not configured")
	}
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Customer.Email == "" {
		return nil, shared.NewValidationError("Invoice customer has no email address")
	}

	html, err := s.renderer.RenderHTML(ctx, invoice, templateID)
	if err != nil {
		return nil, err
	}

	if s.artifacts != nil {
		if pdf, err := s.renderer.RenderPDF(ctx, invoice, templateID); err != nil {
			s.logger.Warn("pdf render failed, sending without artifact",
				zap.String("invoice_number", invoice.InvoiceNumber), zap.Error(err))
		} else if location, err := s.artifacts.StorePDF(ctx, tenantID, invoice.InvoiceNumber, pdf); err != nil {
			s.logger.Warn("pdf artifact store failed",
				zap.String("invoice_number", invoice.InvoiceNumber), zap.Error(err))
		} else {
			s.logger.Debug("stored invoice pdf", zap.String("location", location))
		}
	}

	subject := "Invoice " + invoice.InvoiceNumber + " from " + invoice.Vendor.Name
	if err := s.mailer.SendInvoice(ctx, invoice.Customer.Email, subject, html); err != nil {
		return nil, err
	}

	if err := invoice.MarkSent(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(invoice)
	return &resp, nil
}

// MarkOverdueForTenant sweeps the tenant's dispatched invoices past their
// due date into overdue status. Returns the number of invoices flipped.
func (s *InvoiceService) MarkOverdueForTenant(ctx context.Context, tenantID uuid.UUID, asOf time.Time, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	due, err := s.invoiceRepo.FindDueForTenant(ctx, tenantID, asOf, batchSize)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for i := range due {
		invoice := &due[i]
		if !invoice.MarkOverdue(asOf) {
			continue
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice); err != nil {
			// Lost a concurrent update; the sweep catches it next round
			if isOptimisticLock(err) {
				continue
			}
			return flipped, err
		}
		flipped++
	}
	return flipped, nil
}

// ===================== helpers =====================

func buildItems(reqs []InvoiceItemRequest, currency valueobject.Currency) ([]billing.InvoiceItem, error) {
	items := make([]billing.InvoiceItem, 0, len(reqs))
	for _, r := range reqs {
		rate, err := valueobject.NewMoneyFromFloat(r.Rate, currency)
		if err != nil {
			return nil, shared.NewValidationError(err.Error())
		}
		item, err := billing.NewInvoiceItem(
			r.Description,
			decimal.NewFromFloat(r.Quantity),
			rate,
			r.Taxable,
			decimal.NewFromFloat(r.TaxRate),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func toPartySnapshot(req PartyRequest) billing.PartySnapshot {
	snap := billing.PartySnapshot{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		TaxID: req.TaxID,
	}
	if req.AddressLine1 != "" && req.City != "" {
		if addr, err := valueobject.NewAddress(req.AddressLine1, req.City,
			valueobject.WithLine2(req.AddressLine2),
			valueobject.WithState(req.State),
			valueobject.WithPostalCode(req.PostalCode),
			valueobject.WithCountry(req.Country)); err == nil {
			snap.Address = addr
		}
	}
	return snap
}

func toDomainFilter(filter InvoiceListFilter) (billing.InvoiceFilter, error) {
	f := billing.InvoiceFilter{Filter: shared.DefaultFilter()}
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Customer = filter.Customer
	f.FromDate = filter.FromDate
	f.ToDate = filter.ToDate

	if filter.Status != "" {
		status := billing.InvoiceStatus(filter.Status)
		if !status.IsValid() {
			return f, shared.NewValidationError("Invalid invoice status: " + filter.Status)
		}
		f.Status = &status
	}
	if filter.Type != "" {
		invoiceType := billing.InvoiceType(filter.Type)
		if !invoiceType.IsValid() {
			return f, shared.NewValidationError("Invalid invoice type: " + filter.Type)
		}
		f.Type = &invoiceType
	}
	return f, nil
}

func isConflict(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == shared.CodeConflict
}

func isOptimisticLock(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == shared.CodeOptimisticLock
}
