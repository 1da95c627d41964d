// Package billing provides the invoicing domain model for a multi-tenant
// SaaS application.
//
// This package implements the billing bounded context, which is responsible
// for:
//   - The Invoice aggregate and its lifecycle (draft, sent, viewed, partial,
//     paid, overdue, cancelled)
//   - Line items with quantity, rate, per-line tax and discount
//   - The append-only payment ledger applied against invoice balances
//   - Sequential invoice number allocation per tenant
//   - Rendering amounts as English words for printed documents
//
// Key Aggregates:
//   - Invoice: Customer-facing bill with denormalized totals
//   - Payment: Immutable record of money received against an invoice
//
// The billing domain integrates with:
//   - Identity domain: For tenant numbering configuration and plan limits
//   - Partner domain: For the vendor profile snapshot stamped on invoices
package billing
