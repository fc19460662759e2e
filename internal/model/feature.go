package model

import (
	"time"

	"github.com/google/uuid"
)

// Feature categories.
const (
	CategoryCore    = "core"
	CategoryPremium = "premium"
	CategoryAddon   = "addon"
)

// Plan tiers, lowest to highest.
const (
	PlanFree       = "free"
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// ValidCategory reports whether c is a known feature category.
func ValidCategory(c string) bool {
	return c == CategoryCore || c == CategoryPremium || c == CategoryAddon
}

// ValidPlan reports whether p is a known plan tier.
func ValidPlan(p string) bool {
	return p == PlanFree || p == PlanBasic || p == PlanPro || p == PlanEnterprise
}

// FeatureCatalogEntry represents the feature_catalog table. Key is unique
// and immutable once created; every laboratory's feature map carries it.
type FeatureCatalogEntry struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category"`
	RequiredPlan string    `json:"required_plan"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
