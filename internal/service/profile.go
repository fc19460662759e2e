package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/store"
)

// ProfileService backs the console's user listing.
type ProfileService struct {
	profiles *store.ProfileRepository
}

func NewProfileService(profiles *store.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) List(ctx context.Context, labID *uuid.UUID) ([]model.Profile, error) {
	return s.profiles.List(ctx, labID)
}
