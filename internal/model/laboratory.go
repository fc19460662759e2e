package model

import (
	"time"

	"github.com/google/uuid"
)

// Laboratory statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusTrial    = "trial"
)

// ValidStatus reports whether s is a known laboratory status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive || s == StatusTrial
}

// ValidSlug checks a slug against ^[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?$
func ValidSlug(slug string) bool {
	if len(slug) < 1 || len(slug) > 63 {
		return false
	}
	for i := 0; i < len(slug); i++ {
		c := slug[i]
		lowerOrDigit := (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		if i == 0 || i == len(slug)-1 {
			if !lowerOrDigit {
				return false
			}
		} else if !lowerOrDigit && c != '-' {
			return false
		}
	}
	return true
}

// Laboratory represents the laboratories table. Slug is unique and
// immutable after creation.
type Laboratory struct {
	ID        uuid.UUID       `json:"id"`
	Slug      string          `json:"slug"`
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Branding  Branding        `json:"branding"`
	Config    LabConfig       `json:"config"`
	Features  map[string]bool `json:"features"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Branding holds the per-laboratory visual identity record.
type Branding struct {
	LogoURL      string `json:"logo_url,omitempty"`
	Icon         string `json:"icon,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
	AccentColor  string `json:"accent_color,omitempty"`
}

// LabConfig is the per-laboratory operational configuration. The webhook
// URLs are stored encrypted; the store layer handles the translation.
type LabConfig struct {
	Branches         []string                `json:"branches,omitempty"`
	PaymentMethods   []string                `json:"payment_methods,omitempty"`
	ExchangeRate     float64                 `json:"exchange_rate,omitempty"`
	Timezone         string                  `json:"timezone,omitempty"`
	OrderWebhookURL  string                  `json:"order_webhook_url,omitempty"`
	ResultWebhookURL string                  `json:"result_webhook_url,omitempty"`
	Modules          map[string]ModuleConfig `json:"modules,omitempty"`
}
