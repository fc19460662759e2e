package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solhub/admin-api/internal/model"
)

// CodeRepository handles database operations for laboratory access codes.
type CodeRepository struct {
	s *Store
}

func NewCodeRepository(s *Store) *CodeRepository {
	return &CodeRepository{s: s}
}

const codeColumns = `id, code, laboratory_id, max_uses, current_uses, expires_at, is_active, created_at`

func scanCode(rw row) (*model.AccessCode, error) {
	c := &model.AccessCode{}
	err := rw.Scan(&c.ID, &c.Code, &c.LaboratoryID, &c.MaxUses, &c.CurrentUses, &c.ExpiresAt, &c.IsActive, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CodeRepository) Create(ctx context.Context, code *model.AccessCode) error {
	code.ID = uuid.New()
	code.CreatedAt = time.Now()

	query := `INSERT INTO laboratory_codes (id, code, laboratory_id, max_uses, current_uses, expires_at, is_active, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.s.pool.Exec(ctx, query, code.ID, code.Code, code.LaboratoryID, code.MaxUses, code.CurrentUses, code.ExpiresAt, code.IsActive, code.CreatedAt)
	return err
}

func (r *CodeRepository) GetByCode(ctx context.Context, code string) (*model.AccessCode, error) {
	query := `SELECT ` + codeColumns + ` FROM laboratory_codes WHERE code = $1`
	return scanCode(r.s.pool.QueryRow(ctx, query, code))
}

func (r *CodeRepository) ListByLaboratory(ctx context.Context, labID uuid.UUID) ([]model.AccessCode, error) {
	query := `SELECT ` + codeColumns + ` FROM laboratory_codes WHERE laboratory_id = $1 ORDER BY created_at DESC`
	rows, err := r.s.pool.Query(ctx, query, labID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []model.AccessCode
	for rows.Next() {
		c, err := scanCode(rows)
		if err != nil {
			return nil, err
		}
		codes = append(codes, *c)
	}
	return codes, rows.Err()
}

func (r *CodeRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.s.pool.Exec(ctx, `UPDATE laboratory_codes SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.s.pool.Exec(ctx, `DELETE FROM laboratory_codes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
