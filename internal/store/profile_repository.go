package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solhub/admin-api/internal/model"
)

// ProfileRepository handles read access to the profiles table. Profiles are
// written by the tenant applications; the console only lists them and
// verifies sign-ins.
type ProfileRepository struct {
	s *Store
}

func NewProfileRepository(s *Store) *ProfileRepository {
	return &ProfileRepository{s: s}
}

const profileColumns = `id, email, full_name, role, laboratory_id, is_dashboard_admin, password_hash, created_at`

func scanProfile(rw row) (*model.Profile, error) {
	p := &model.Profile{}
	err := rw.Scan(&p.ID, &p.Email, &p.FullName, &p.Role, &p.LaboratoryID, &p.IsDashboardAdmin, &p.PasswordHash, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.s.pool.QueryRow(ctx, query, email))
}

// List returns profiles ordered by creation time descending, optionally
// scoped to one laboratory.
func (r *ProfileRepository) List(ctx context.Context, labID *uuid.UUID) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	args := []any{}
	if labID != nil {
		query += ` WHERE laboratory_id = $1`
		args = append(args, *labID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}
