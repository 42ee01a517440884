package service

import (
	"context"
	"errors"
	"sync"

	travelerserrors "hotelier/internal/travelers/errors"
	"hotelier/internal/travelers/repository"
	"hotelier/internal/travelers/validator"
	"hotelier/pkg/config"
	apperrors "hotelier/pkg/errors"
	"hotelier/pkg/model"
	"hotelier/pkg/sanitizer"
)

type TravelerService interface {
	Create(ctx context.Context, traveler *model.Traveler) error
	GetByID(ctx context.Context, id string) (*model.Traveler, error)
	GetByDocumentNumber(ctx context.Context, documentNumber string) (*model.Traveler, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Traveler, int64, error)
	Update(ctx context.Context, id string, traveler *model.Traveler) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type travelerService struct {
	repo      repository.TravelerRepository
	validator *validator.TravelerValidator
	cfg       *config.Config
}

func NewTravelerService(
	repo repository.TravelerRepository,
	validator *validator.TravelerValidator,
	cfg *config.Config,
) TravelerService {
	return &travelerService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *travelerService) Create(ctx context.Context, traveler *model.Traveler) error {
	if err := s.prepare(traveler); err != nil {
		return err
	}

	if existing, err := s.repo.FindByDocumentNumber(ctx, traveler.DocumentNumber); err == nil && existing != nil {
		return apperrors.Conflict("A traveler with this document number already exists")
	} else if err != nil && !errors.Is(err, travelerserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to check traveler document", "error", err)
		return apperrors.Internal("Failed to create traveler", err)
	}

	if err := s.repo.Create(ctx, traveler); err != nil {
		s.cfg.Log.Error("Failed to create traveler", "error", err)
		return apperrors.Internal("Failed to create traveler", err)
	}

	s.cfg.Log.Info("Traveler created successfully",
		"id", traveler.ID,
		"document_type", traveler.DocumentType,
	)
	return nil
}

func (s *travelerService) GetByID(ctx context.Context, id string) (*model.Traveler, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Traveler ID cannot be empty")
	}

	traveler, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	return traveler, nil
}

func (s *travelerService) GetByDocumentNumber(ctx context.Context, documentNumber string) (*model.Traveler, error) {
	documentNumber = sanitizer.TrimAndNormalize(documentNumber)
	if documentNumber == "" {
		return nil, apperrors.InvalidInput("Document number cannot be empty")
	}

	traveler, err := s.repo.FindByDocumentNumber(ctx, documentNumber)
	if err != nil {
		if errors.Is(err, travelerserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Traveler")
		}
		return nil, apperrors.Internal("Failed to access traveler", err)
	}

	return traveler, nil
}

func (s *travelerService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Traveler, int64, error) {
	var count int64
	var travelers []*model.Traveler
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count travelers", "error", errCount)
			errCount = apperrors.Internal("Failed to count travelers", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		travelers, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list travelers", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve travelers", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return travelers, count, nil
}

// Update replaces the whole document. The returned bool reports whether the
// stored document actually changed.
func (s *travelerService) Update(ctx context.Context, id string, traveler *model.Traveler) (bool, error) {
	if id == "" {
		return false, apperrors.InvalidInput("Traveler ID cannot be empty")
	}

	if err := s.prepare(traveler); err != nil {
		return false, err
	}

	changed, err := s.repo.Replace(ctx, id, traveler)
	if err != nil {
		return false, s.mapLookupError(err, id)
	}

	s.cfg.Log.Info("Traveler updated", "id", id, "changed", changed)
	return changed, nil
}

func (s *travelerService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, apperrors.InvalidInput("Traveler ID cannot be empty")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, s.mapLookupError(err, id)
	}

	s.cfg.Log.Info("Traveler delete attempted", "id", id, "deleted", deleted)
	return deleted, nil
}

func (s *travelerService) prepare(traveler *model.Traveler) error {
	traveler.FullName = sanitizer.NormalizeName(traveler.FullName)
	traveler.DocumentNumber = sanitizer.TrimAndNormalize(traveler.DocumentNumber)
	traveler.Email = sanitizer.TrimAndNormalize(traveler.Email)
	traveler.EmergencyContact.Name = sanitizer.NormalizeName(traveler.EmergencyContact.Name)
	traveler.EmergencyContact.Relationship = sanitizer.TrimAndNormalize(traveler.EmergencyContact.Relationship)

	if normalized := sanitizer.NormalizePhone(traveler.ContactPhone); normalized != "" {
		traveler.ContactPhone = normalized
	}
	if normalized := sanitizer.NormalizePhone(traveler.EmergencyContact.Phone); normalized != "" {
		traveler.EmergencyContact.Phone = normalized
	}

	if err := s.validator.Validate(traveler); err != nil {
		s.cfg.Log.Warn("Traveler validation failed", "error", err)
		return apperrors.Validation("Traveler validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *travelerService) mapLookupError(err error, id string) error {
	if errors.Is(err, travelerserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Traveler", id)
	}
	if errors.Is(err, travelerserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid traveler ID format")
	}
	return apperrors.Internal("Failed to access traveler", err)
}
