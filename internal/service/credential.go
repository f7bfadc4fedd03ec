package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campus-events-backend/internal/domain"
	"campus-events-backend/internal/repository"
)

// tokenBytes gives 256 bits of entropy per credential token, comfortably
// past the floor needed to resist enumeration.
const tokenBytes = 32

type credentialService struct {
	credRepo repository.CredentialRepository
	timeout  time.Duration
}

func NewCredentialService(credRepo repository.CredentialRepository, timeout time.Duration) CredentialService {
	return &credentialService{credRepo: credRepo, timeout: timeout}
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate credential token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (s *credentialService) Issue(ctx context.Context, reg *domain.Registration) (*domain.Credential, error) {
	if reg.Status != domain.RegistrationStatusConfirmed {
		return nil, fmt.Errorf("%w: registration is %s, not confirmed", domain.ErrInvalidTransition, reg.Status)
	}

	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	existing, err := s.credRepo.GetByRegistration(cctx, reg.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, storageErr(err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: credential already issued for registration %s", domain.ErrInvalidTransition, reg.ID)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	cred := &domain.Credential{
		ID:             uuid.New().String(),
		RegistrationID: reg.ID,
		Token:          token,
		IssuedAt:       time.Now().UTC(),
	}
	if err := s.credRepo.Create(cctx, cred); err != nil {
		return nil, storageErr(err)
	}
	return cred, nil
}

func (s *credentialService) CheckIn(ctx context.Context, token string) (*domain.CheckIn, error) {
	if token == "" {
		return nil, domain.Validation("token", "must not be empty")
	}

	cctx, cancel := boundCtx(ctx, s.timeout)
	defer cancel()

	checkIn, err := s.credRepo.Consume(cctx, token, time.Now())
	if err != nil {
		return nil, storageErr(err)
	}
	return checkIn, nil
}
