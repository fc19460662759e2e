package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/store"
)

// LaboratoryService orchestrates laboratory CRUD, feature toggles and
// module configuration writes.
type LaboratoryService struct {
	labs     *store.LaboratoryRepository
	features *store.FeatureRepository
	modules  *store.ModuleRepository
}

func NewLaboratoryService(labs *store.LaboratoryRepository, features *store.FeatureRepository, modules *store.ModuleRepository) *LaboratoryService {
	return &LaboratoryService{labs: labs, features: features, modules: modules}
}

// Create validates the laboratory, checks slug uniqueness and seeds the
// feature map with every active catalog key set to false.
func (s *LaboratoryService) Create(ctx context.Context, lab *model.Laboratory) error {
	if err := validateLaboratory(lab); err != nil {
		return err
	}
	if !model.ValidSlug(lab.Slug) {
		return validationErr("invalid slug format")
	}

	existing, err := s.labs.GetBySlug(ctx, lab.Slug)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check slug uniqueness")
		return err
	}
	if existing != nil {
		return conflictErr("slug already exists")
	}

	catalog, err := s.features.List(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load feature catalog")
		return err
	}
	lab.Features = make(map[string]bool, len(catalog))
	for _, entry := range catalog {
		lab.Features[entry.Key] = false
	}
	lab.Config.Modules = nil

	if err := s.labs.Create(ctx, lab); err != nil {
		log.Error().Err(err).Msg("Failed to create laboratory")
		return err
	}
	log.Info().Str("laboratory_id", lab.ID.String()).Str("slug", lab.Slug).Msg("Laboratory created")
	return nil
}

func (s *LaboratoryService) Get(ctx context.Context, id uuid.UUID) (*model.Laboratory, error) {
	lab, err := s.labs.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get laboratory")
		return nil, err
	}
	if lab == nil {
		return nil, ErrNotFound
	}
	return lab, nil
}

// List returns laboratories ordered by creation time descending, optionally
// filtered by status.
func (s *LaboratoryService) List(ctx context.Context, status string) ([]model.Laboratory, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, validationErr("invalid status filter")
	}
	return s.labs.List(ctx, status)
}

// Update applies name, status, branding and config changes. The slug is
// immutable; the feature map and module overrides are only written through
// ToggleFeature and UpdateModuleConfig, and the store's update statement
// leaves both untouched.
func (s *LaboratoryService) Update(ctx context.Context, id uuid.UUID, updated *model.Laboratory) (*model.Laboratory, error) {
	lab, err := s.labs.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get laboratory")
		return nil, err
	}
	if lab == nil {
		return nil, ErrNotFound
	}
	if updated.Slug != "" && updated.Slug != lab.Slug {
		return nil, validationErr("slug is immutable")
	}
	if err := validateLaboratory(updated); err != nil {
		return nil, err
	}

	lab.Name = updated.Name
	lab.Status = updated.Status
	lab.Branding = updated.Branding
	lab.Config = updated.Config

	if err := s.labs.Update(ctx, lab); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to update laboratory")
		return nil, err
	}
	// Re-read so the response carries the feature map and module overrides
	// as they stand after the write, not the copy read before it.
	return s.Get(ctx, id)
}

func (s *LaboratoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.labs.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to delete laboratory")
		return err
	}
	log.Info().Str("laboratory_id", id.String()).Msg("Laboratory deleted")
	return nil
}

// ToggleFeature flips one feature key for one laboratory. The write is an
// atomic path update on the stored map, so concurrent toggles of other keys
// are never lost.
func (s *LaboratoryService) ToggleFeature(ctx context.Context, id uuid.UUID, key string, value bool) error {
	entry, err := s.features.GetByKey(ctx, key)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up feature key")
		return err
	}
	if entry == nil {
		return validationErr("unknown feature key")
	}

	if err := s.labs.SetFeature(ctx, id, key, value); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to toggle feature")
		return err
	}
	return nil
}

// ResolveLabFeatures resolves the laboratory's flags against the active
// catalog.
func (s *LaboratoryService) ResolveLabFeatures(ctx context.Context, id uuid.UUID) (map[string]bool, error) {
	lab, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog, err := s.features.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return ResolveFeatures(catalog, lab.Features), nil
}

// ResolveLabModules returns the effective module configuration for every
// module whose owning feature is enabled.
func (s *LaboratoryService) ResolveLabModules(ctx context.Context, id uuid.UUID) ([]ResolvedModule, error) {
	lab, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog, err := s.modules.List(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveModules(catalog, lab), nil
}

// UpdateModuleConfig stores one module override for the laboratory after
// normalizing it (a disabled field cannot stay required).
func (s *LaboratoryService) UpdateModuleConfig(ctx context.Context, id uuid.UUID, module string, cfg model.ModuleConfig) error {
	entry, err := s.modules.GetByName(ctx, module)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up module")
		return err
	}
	if entry == nil {
		return ErrNotFound
	}

	if err := s.labs.SetModuleConfig(ctx, id, module, NormalizeModuleConfig(cfg)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to update module config")
		return err
	}
	return nil
}

// validateLaboratory checks the fields shared by create and update.
func validateLaboratory(lab *model.Laboratory) error {
	if lab.Name == "" {
		return validationErr("name is required")
	}
	if lab.Slug == "" {
		return validationErr("slug is required")
	}
	if !model.ValidStatus(lab.Status) {
		return validationErr("invalid status")
	}
	if lab.Config.ExchangeRate < 0 {
		return validationErr("exchange rate must not be negative")
	}
	if tz := lab.Config.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return validationErr("invalid timezone")
		}
	}
	return nil
}
