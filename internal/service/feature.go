package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/monitoring"
	"github.com/solhub/admin-api/internal/store"
)

// FeatureService manages the feature catalog. Creating or deleting an
// entry fans the key out to every laboratory's feature map in a single
// transaction.
type FeatureService struct {
	features *store.FeatureRepository
}

func NewFeatureService(features *store.FeatureRepository) *FeatureService {
	return &FeatureService{features: features}
}

func (s *FeatureService) List(ctx context.Context, activeOnly bool) ([]model.FeatureCatalogEntry, error) {
	return s.features.List(ctx, activeOnly)
}

func (s *FeatureService) Create(ctx context.Context, entry *model.FeatureCatalogEntry) error {
	if err := validateFeature(entry); err != nil {
		return err
	}

	existing, err := s.features.GetByKey(ctx, entry.Key)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check feature key uniqueness")
		return err
	}
	if existing != nil {
		return conflictErr("feature key already exists")
	}

	start := time.Now()
	if err := s.features.CreateWithFanout(ctx, entry); err != nil {
		monitoring.CatalogFanouts.WithLabelValues("create", "failure").Inc()
		monitoring.Alert("feature create fan-out failed", map[string]string{"key": entry.Key})
		log.Error().Err(err).Str("key", entry.Key).Msg("Failed to create feature")
		return err
	}
	monitoring.CatalogFanouts.WithLabelValues("create", "success").Inc()
	monitoring.FanoutDuration.Observe(time.Since(start).Seconds())
	log.Info().Str("key", entry.Key).Msg("Feature created and fanned out")
	return nil
}

func (s *FeatureService) Delete(ctx context.Context, key string) error {
	start := time.Now()
	if err := s.features.DeleteWithFanout(ctx, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		monitoring.CatalogFanouts.WithLabelValues("delete", "failure").Inc()
		monitoring.Alert("feature delete fan-out failed", map[string]string{"key": key})
		log.Error().Err(err).Str("key", key).Msg("Failed to delete feature")
		return err
	}
	monitoring.CatalogFanouts.WithLabelValues("delete", "success").Inc()
	monitoring.FanoutDuration.Observe(time.Since(start).Seconds())
	log.Info().Str("key", key).Msg("Feature deleted and stripped from laboratories")
	return nil
}

func validateFeature(entry *model.FeatureCatalogEntry) error {
	if entry.Key == "" {
		return validationErr("key is required")
	}
	if !isValidFeatureKey(entry.Key) {
		return validationErr("invalid key format")
	}
	if entry.Name == "" {
		return validationErr("name is required")
	}
	if !model.ValidCategory(entry.Category) {
		return validationErr("invalid category")
	}
	if !model.ValidPlan(entry.RequiredPlan) {
		return validationErr("invalid required plan")
	}
	return nil
}

// isValidFeatureKey accepts snake_case identifiers: ^[a-z][a-z0-9_]*$
func isValidFeatureKey(key string) bool {
	if len(key) == 0 || len(key) > 64 {
		return false
	}
	for i, r := range key {
		if i == 0 {
			if r < 'a' || r > 'z' {
				return false
			}
			continue
		}
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
