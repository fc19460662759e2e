package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/store"
)

// ModuleService manages the module catalog.
type ModuleService struct {
	modules  *store.ModuleRepository
	features *store.FeatureRepository
}

func NewModuleService(modules *store.ModuleRepository, features *store.FeatureRepository) *ModuleService {
	return &ModuleService{modules: modules, features: features}
}

func (s *ModuleService) List(ctx context.Context) ([]model.ModuleCatalogEntry, error) {
	return s.modules.List(ctx)
}

func (s *ModuleService) Create(ctx context.Context, entry *model.ModuleCatalogEntry) error {
	if entry.Name == "" {
		return validationErr("name is required")
	}
	if !model.ValidSlug(entry.Name) {
		return validationErr("invalid module name format")
	}
	if entry.FeatureKey == "" {
		return validationErr("feature key is required")
	}
	if len(entry.Fields) == 0 {
		return validationErr("at least one field is required")
	}

	feature, err := s.features.GetByKey(ctx, entry.FeatureKey)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up feature key")
		return err
	}
	if feature == nil {
		return validationErr("unknown feature key")
	}

	existing, err := s.modules.GetByName(ctx, entry.Name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check module name uniqueness")
		return err
	}
	if existing != nil {
		return conflictErr("module name already exists")
	}

	if err := s.modules.Create(ctx, entry); err != nil {
		log.Error().Err(err).Str("module", entry.Name).Msg("Failed to create module")
		return err
	}
	log.Info().Str("module", entry.Name).Str("feature_key", entry.FeatureKey).Msg("Module created")
	return nil
}

func (s *ModuleService) Delete(ctx context.Context, name string) error {
	if err := s.modules.Delete(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Str("module", name).Msg("Failed to delete module")
		return err
	}
	return nil
}
