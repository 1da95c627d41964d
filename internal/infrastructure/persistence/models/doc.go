// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel, TenantAggregateModel)
// - billing.go: Billing context models (Invoice, Payment)
// - partner.go: Partner context models (Vendor)
// - templating.go: Templating context models (InvoiceTemplate)
//
// The Tenant aggregate is the exception: it carries its own GORM tags and is
// persisted directly, since its fields map one to one onto the tenants table.
package models
