package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents the profiles table. PasswordHash never leaves the
// service; IsDashboardAdmin gates every console operation.
type Profile struct {
	ID               uuid.UUID  `json:"id"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	Role             string     `json:"role"`
	LaboratoryID     *uuid.UUID `json:"laboratory_id,omitempty"`
	IsDashboardAdmin bool       `json:"is_dashboard_admin"`
	PasswordHash     string     `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}
