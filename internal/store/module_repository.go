package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solhub/admin-api/internal/model"
)

// ModuleRepository handles database operations for the module catalog.
type ModuleRepository struct {
	s *Store
}

func NewModuleRepository(s *Store) *ModuleRepository {
	return &ModuleRepository{s: s}
}

const moduleColumns = `id, feature_key, name, fields, actions, settings, created_at`

func scanModule(rw row) (*model.ModuleCatalogEntry, error) {
	e := &model.ModuleCatalogEntry{}
	var fields, actions, settings []byte
	err := rw.Scan(&e.ID, &e.FeatureKey, &e.Name, &fields, &actions, &settings, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &e.Fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(actions, &e.Actions); err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		if err := json.Unmarshal(settings, &e.Settings); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (r *ModuleRepository) GetByName(ctx context.Context, name string) (*model.ModuleCatalogEntry, error) {
	query := `SELECT ` + moduleColumns + ` FROM module_catalog WHERE name = $1`
	return scanModule(r.s.pool.QueryRow(ctx, query, name))
}

func (r *ModuleRepository) List(ctx context.Context) ([]model.ModuleCatalogEntry, error) {
	query := `SELECT ` + moduleColumns + ` FROM module_catalog ORDER BY name`
	rows, err := r.s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.ModuleCatalogEntry
	for rows.Next() {
		e, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *ModuleRepository) Create(ctx context.Context, entry *model.ModuleCatalogEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()

	fields, err := json.Marshal(entry.Fields)
	if err != nil {
		return err
	}
	actions, err := json.Marshal(entry.Actions)
	if err != nil {
		return err
	}
	settings, err := json.Marshal(entry.Settings)
	if err != nil {
		return err
	}

	query := `INSERT INTO module_catalog (id, feature_key, name, fields, actions, settings, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.s.pool.Exec(ctx, query, entry.ID, entry.FeatureKey, entry.Name, fields, actions, settings, entry.CreatedAt)
	return err
}

func (r *ModuleRepository) Delete(ctx context.Context, name string) error {
	tag, err := r.s.pool.Exec(ctx, `DELETE FROM module_catalog WHERE name = $1`, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
