package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/model"
)

// LaboratoryRepository handles database operations for laboratories.
type LaboratoryRepository struct {
	s *Store
}

func NewLaboratoryRepository(s *Store) *LaboratoryRepository {
	return &LaboratoryRepository{s: s}
}

const labCachePrefix = "lab:"

func labCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("%s%s", labCachePrefix, id.String())
}

// dropLabCache deletes every cached laboratory record. Catalog fan-outs
// rewrite all feature maps in one statement, so per-key invalidation is
// not possible there.
func (s *Store) dropLabCache(ctx context.Context) {
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, labCachePrefix+"*", 100).Result()
		if err != nil {
			log.Error().Err(err).Msg("Failed to scan laboratory cache keys")
			return
		}
		if len(keys) > 0 {
			s.redis.Del(ctx, keys...)
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

// encryptConfig returns a copy of cfg with the webhook URLs sealed.
func (r *LaboratoryRepository) encryptConfig(cfg model.LabConfig) (model.LabConfig, error) {
	var err error
	if cfg.OrderWebhookURL != "" {
		if cfg.OrderWebhookURL, err = r.s.cipher.EncryptString(cfg.OrderWebhookURL); err != nil {
			return cfg, err
		}
	}
	if cfg.ResultWebhookURL != "" {
		if cfg.ResultWebhookURL, err = r.s.cipher.EncryptString(cfg.ResultWebhookURL); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (r *LaboratoryRepository) decryptConfig(cfg model.LabConfig) (model.LabConfig, error) {
	var err error
	if cfg.OrderWebhookURL != "" {
		if cfg.OrderWebhookURL, err = r.s.cipher.DecryptString(cfg.OrderWebhookURL); err != nil {
			return cfg, err
		}
	}
	if cfg.ResultWebhookURL != "" {
		if cfg.ResultWebhookURL, err = r.s.cipher.DecryptString(cfg.ResultWebhookURL); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (r *LaboratoryRepository) marshalDocs(lab *model.Laboratory) (branding, config, features []byte, err error) {
	if branding, err = json.Marshal(lab.Branding); err != nil {
		return
	}
	sealed, err := r.encryptConfig(lab.Config)
	if err != nil {
		return nil, nil, nil, err
	}
	if config, err = json.Marshal(sealed); err != nil {
		return
	}
	if lab.Features == nil {
		lab.Features = map[string]bool{}
	}
	features, err = json.Marshal(lab.Features)
	return
}

type row interface {
	Scan(dest ...any) error
}

// scanSealed reads a row without unsealing the webhook URLs.
func (r *LaboratoryRepository) scanSealed(rw row) (*model.Laboratory, error) {
	lab := &model.Laboratory{}
	var branding, config, features []byte
	err := rw.Scan(&lab.ID, &lab.Slug, &lab.Name, &lab.Status, &branding, &config, &features, &lab.CreatedAt, &lab.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(branding, &lab.Branding); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(config, &lab.Config); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &lab.Features); err != nil {
		return nil, err
	}
	return lab, nil
}

func (r *LaboratoryRepository) scanLaboratory(rw row) (*model.Laboratory, error) {
	lab, err := r.scanSealed(rw)
	if err != nil || lab == nil {
		return lab, err
	}
	if lab.Config, err = r.decryptConfig(lab.Config); err != nil {
		return nil, err
	}
	return lab, nil
}

const labColumns = `id, slug, name, status, branding, config, features, created_at, updated_at`

func (r *LaboratoryRepository) Create(ctx context.Context, lab *model.Laboratory) error {
	lab.ID = uuid.New()
	lab.CreatedAt = time.Now()
	lab.UpdatedAt = lab.CreatedAt

	branding, config, features, err := r.marshalDocs(lab)
	if err != nil {
		return err
	}

	query := `INSERT INTO laboratories (id, slug, name, status, branding, config, features, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.s.pool.Exec(ctx, query, lab.ID, lab.Slug, lab.Name, lab.Status, branding, config, features, lab.CreatedAt, lab.UpdatedAt)
	if err != nil {
		return err
	}

	r.s.redis.Del(ctx, labCacheKey(lab.ID))
	r.s.publishChange(ctx, model.ChangeEvent{Kind: model.ChangeInsert, Table: TableLaboratories, Record: *lab})
	return nil
}

// GetByID serves from the read-through cache when possible. The cached
// document keeps the webhook URLs sealed; unsealing happens per read, so
// no plaintext secret ever sits in redis.
func (r *LaboratoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Laboratory, error) {
	key := labCacheKey(id)
	cached, err := r.s.redis.Get(ctx, key).Result()
	if err == nil {
		lab := &model.Laboratory{}
		if err := json.Unmarshal([]byte(cached), lab); err == nil {
			if cfg, err := r.decryptConfig(lab.Config); err == nil {
				lab.Config = cfg
				return lab, nil
			}
		}
		// Undecodable cache entry; fall through to the database.
	}

	query := `SELECT ` + labColumns + ` FROM laboratories WHERE id = $1`
	lab, err := r.scanSealed(r.s.pool.QueryRow(ctx, query, id))
	if err != nil || lab == nil {
		return lab, err
	}

	if data, err := json.Marshal(lab); err == nil {
		r.s.redis.SetEx(ctx, key, data, 1*time.Hour)
	}
	if lab.Config, err = r.decryptConfig(lab.Config); err != nil {
		return nil, err
	}
	return lab, nil
}

func (r *LaboratoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Laboratory, error) {
	query := `SELECT ` + labColumns + ` FROM laboratories WHERE slug = $1`
	return r.scanLaboratory(r.s.pool.QueryRow(ctx, query, slug))
}

// List returns laboratories ordered by creation time descending. An empty
// status returns every laboratory.
func (r *LaboratoryRepository) List(ctx context.Context, status string) ([]model.Laboratory, error) {
	query := `SELECT ` + labColumns + ` FROM laboratories`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labs []model.Laboratory
	for rows.Next() {
		lab, err := r.scanLaboratory(rows)
		if err != nil {
			return nil, err
		}
		labs = append(labs, *lab)
	}
	return labs, rows.Err()
}

// Update writes the scalar columns, branding and config. The feature map
// and the stored module overrides are only written through their atomic
// path updates (SetFeature, SetModuleConfig), so this statement never
// touches the features column and keeps the stored config->'modules' —
// a concurrent toggle or override write cannot be clobbered by a stale
// copy read before it.
func (r *LaboratoryRepository) Update(ctx context.Context, lab *model.Laboratory) error {
	lab.UpdatedAt = time.Now()
	branding, err := json.Marshal(lab.Branding)
	if err != nil {
		return err
	}
	sealed, err := r.encryptConfig(lab.Config)
	if err != nil {
		return err
	}
	sealed.Modules = nil
	config, err := json.Marshal(sealed)
	if err != nil {
		return err
	}

	query := `UPDATE laboratories
              SET name = $2, status = $3, branding = $4,
                  config = jsonb_set($5::jsonb, '{modules}', COALESCE(config->'modules', '{}'::jsonb), true),
                  updated_at = $6
              WHERE id = $1`
	tag, err := r.s.pool.Exec(ctx, query, lab.ID, lab.Name, lab.Status, branding, config, lab.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.s.redis.Del(ctx, labCacheKey(lab.ID))
	r.publishUpdated(ctx, lab.ID)
	return nil
}

func (r *LaboratoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.s.pool.Exec(ctx, `DELETE FROM laboratories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.s.redis.Del(ctx, labCacheKey(id))
	r.s.publishChange(ctx, model.ChangeEvent{Kind: model.ChangeDelete, Table: TableLaboratories, Record: model.Laboratory{ID: id}})
	return nil
}

// SetFeature flips a single key inside the feature map with an atomic
// jsonb path update, so concurrent toggles of different keys never clobber
// each other.
func (r *LaboratoryRepository) SetFeature(ctx context.Context, id uuid.UUID, key string, value bool) error {
	query := `UPDATE laboratories
              SET features = jsonb_set(features, ARRAY[$2], to_jsonb($3::boolean), true), updated_at = $4
              WHERE id = $1`
	tag, err := r.s.pool.Exec(ctx, query, id, key, value, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.s.redis.Del(ctx, labCacheKey(id))
	r.publishUpdated(ctx, id)
	return nil
}

// SetModuleConfig replaces one module's stored configuration inside the
// laboratory config document.
func (r *LaboratoryRepository) SetModuleConfig(ctx context.Context, id uuid.UUID, module string, cfg model.ModuleConfig) error {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	// Seed the modules object first so the path update cannot no-op on a
	// laboratory that has never stored a module config.
	query := `UPDATE laboratories
              SET config = jsonb_set(
                      jsonb_set(config, '{modules}', COALESCE(config->'modules', '{}'::jsonb), true),
                      ARRAY['modules', $2], $3::jsonb, true),
                  updated_at = $4
              WHERE id = $1`
	tag, err := r.s.pool.Exec(ctx, query, id, module, doc, time.Now())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.s.redis.Del(ctx, labCacheKey(id))
	r.publishUpdated(ctx, id)
	return nil
}

// publishUpdated re-reads the row so path updates still put the full
// record on the change feed.
func (r *LaboratoryRepository) publishUpdated(ctx context.Context, id uuid.UUID) {
	lab, err := r.GetByID(ctx, id)
	if err != nil || lab == nil {
		return
	}
	r.s.publishChange(ctx, model.ChangeEvent{Kind: model.ChangeUpdate, Table: TableLaboratories, Record: *lab})
}
