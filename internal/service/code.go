package service

import (
	"context"
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/solhub/admin-api/internal/model"
	"github.com/solhub/admin-api/internal/store"
)

// AccessCodeService manages laboratory access codes. Redemption happens in
// the tenant applications; the console only issues and revokes codes.
type AccessCodeService struct {
	codes *store.CodeRepository
	labs  *store.LaboratoryRepository
}

func NewAccessCodeService(codes *store.CodeRepository, labs *store.LaboratoryRepository) *AccessCodeService {
	return &AccessCodeService{codes: codes, labs: labs}
}

// Create issues a code for the laboratory. An empty code is generated;
// a provided one is normalized to uppercase.
func (s *AccessCodeService) Create(ctx context.Context, labID uuid.UUID, code string, maxUses *int, expiresAt *time.Time) (*model.AccessCode, error) {
	if maxUses != nil && *maxUses <= 0 {
		return nil, validationErr("max uses must be positive")
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, validationErr("expiry must be in the future")
	}

	lab, err := s.labs.GetByID(ctx, labID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get laboratory")
		return nil, err
	}
	if lab == nil {
		return nil, ErrNotFound
	}

	if code == "" {
		if code, err = generateCode(); err != nil {
			return nil, err
		}
	} else {
		code = NormalizeCode(code)
		if !isValidCode(code) {
			return nil, validationErr("invalid code format")
		}
	}

	existing, err := s.codes.GetByCode(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check code uniqueness")
		return nil, err
	}
	if existing != nil {
		return nil, conflictErr("code already exists")
	}

	ac := &model.AccessCode{
		Code:         code,
		LaboratoryID: labID,
		MaxUses:      maxUses,
		ExpiresAt:    expiresAt,
		IsActive:     true,
	}
	if err := s.codes.Create(ctx, ac); err != nil {
		log.Error().Err(err).Str("code", code).Msg("Failed to create access code")
		return nil, err
	}
	log.Info().Str("code", code).Str("laboratory_id", labID.String()).Msg("Access code created")
	return ac, nil
}

func (s *AccessCodeService) ListByLaboratory(ctx context.Context, labID uuid.UUID) ([]model.AccessCode, error) {
	lab, err := s.labs.GetByID(ctx, labID)
	if err != nil {
		return nil, err
	}
	if lab == nil {
		return nil, ErrNotFound
	}
	return s.codes.ListByLaboratory(ctx, labID)
}

func (s *AccessCodeService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.codes.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to update access code")
		return err
	}
	return nil
}

func (s *AccessCodeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.codes.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error().Err(err).Msg("Failed to delete access code")
		return err
	}
	return nil
}

// NormalizeCode uppercases and trims a user-supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// isValidCode accepts uppercase alphanumerics and dashes, 4 to 32 chars.
func isValidCode(code string) bool {
	if len(code) < 4 || len(code) > 32 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateCode produces a LAB-XXXXXXXX code from an unambiguous alphabet.
func generateCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("LAB-")
	for _, c := range buf {
		b.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
	}
	return b.String(), nil
}
