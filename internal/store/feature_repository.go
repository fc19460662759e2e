package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/solhub/admin-api/internal/model"
)

// FeatureRepository handles database operations for the feature catalog.
// Catalog writes fan out to every laboratory's feature map inside one
// transaction, so a partial fan-out is never observable.
type FeatureRepository struct {
	s *Store
}

func NewFeatureRepository(s *Store) *FeatureRepository {
	return &FeatureRepository{s: s}
}

const featureColumns = `id, key, name, description, category, required_plan, is_active, created_at`

func scanFeature(rw row) (*model.FeatureCatalogEntry, error) {
	e := &model.FeatureCatalogEntry{}
	err := rw.Scan(&e.ID, &e.Key, &e.Name, &e.Description, &e.Category, &e.RequiredPlan, &e.IsActive, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *FeatureRepository) GetByKey(ctx context.Context, key string) (*model.FeatureCatalogEntry, error) {
	query := `SELECT ` + featureColumns + ` FROM feature_catalog WHERE key = $1`
	return scanFeature(r.s.pool.QueryRow(ctx, query, key))
}

// List returns the catalog ordered by key. When activeOnly is set, entries
// with is_active = false are excluded.
func (r *FeatureRepository) List(ctx context.Context, activeOnly bool) ([]model.FeatureCatalogEntry, error) {
	query := `SELECT ` + featureColumns + ` FROM feature_catalog`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY key`

	rows, err := r.s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.FeatureCatalogEntry
	for rows.Next() {
		e, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// CreateWithFanout inserts the catalog entry and seeds key=false into every
// laboratory's feature map in the same transaction.
func (r *FeatureRepository) CreateWithFanout(ctx context.Context, entry *model.FeatureCatalogEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()

	tx, err := r.s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insert := `INSERT INTO feature_catalog (id, key, name, description, category, required_plan, is_active, created_at)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.Exec(ctx, insert, entry.ID, entry.Key, entry.Name, entry.Description, entry.Category, entry.RequiredPlan, entry.IsActive, entry.CreatedAt); err != nil {
		return err
	}

	fanout := `UPDATE laboratories SET features = features || jsonb_build_object($1::text, false)`
	if _, err := tx.Exec(ctx, fanout, entry.Key); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	// Every feature map just changed; cached records are all stale.
	r.s.dropLabCache(ctx)
	return nil
}

// DeleteWithFanout removes the catalog entry and strips the key from every
// laboratory's feature map in the same transaction.
func (r *FeatureRepository) DeleteWithFanout(ctx context.Context, key string) error {
	tx, err := r.s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM feature_catalog WHERE key = $1`, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE laboratories SET features = features - $1`, key); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.s.dropLabCache(ctx)
	return nil
}
