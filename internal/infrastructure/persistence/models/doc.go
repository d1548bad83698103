// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// of ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain / FromDomain convert between the two
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: shared columns (BaseModel, AggregateModel, TenantAggregateModel)
// - content.go: posts, categories, tags and the post_categories / post_tags joins
// - permalink.go: stored redirects
// - settings.go: per-section settings documents
// - identity.go: tenants and users
// - affiliate.go: partners, partner links, commissions, earnings
// - media.go: uploaded media objects
package models
