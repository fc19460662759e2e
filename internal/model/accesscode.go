package model

import (
	"time"

	"github.com/google/uuid"
)

// CodeStatus is the derived lifecycle state of an access code.
type CodeStatus string

const (
	CodeActive    CodeStatus = "active"
	CodeExpired   CodeStatus = "expired"
	CodeExhausted CodeStatus = "exhausted"
	CodeInactive  CodeStatus = "inactive"
)

// AccessCode represents the laboratory_codes table. Code is unique and
// stored uppercase. Nil MaxUses means unlimited; nil ExpiresAt means the
// code never expires.
type AccessCode struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	LaboratoryID uuid.UUID  `json:"laboratory_id"`
	MaxUses      *int       `json:"max_uses,omitempty"`
	CurrentUses  int        `json:"current_uses"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// StatusAt derives the effective status at the given instant. The inactive
// flag dominates, then expiry, then exhaustion.
func (c *AccessCode) StatusAt(now time.Time) CodeStatus {
	if !c.IsActive {
		return CodeInactive
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return CodeExpired
	}
	if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
		return CodeExhausted
	}
	return CodeActive
}

// EffectiveStatus derives the status against the wall clock.
func (c *AccessCode) EffectiveStatus() CodeStatus {
	return c.StatusAt(time.Now())
}
