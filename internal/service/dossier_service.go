package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/pkg/apperror"
	commonDto "cabinet-service/pkg/dto"
	"cabinet-service/pkg/pagination"
)

type DossierService interface {
	Create(ctx context.Context, input dto.CreateDossierInput) (*model.DossierMedical, error)
	GetByID(ctx context.Context, id uint) (*model.DossierMedical, error)
	List(ctx context.Context, filter commonDto.PageFilter, patientID, medecinID uint) ([]model.DossierMedical, commonDto.PaginationMeta, error)
	Delete(ctx context.Context, id uint) error

	AddConsultation(ctx context.Context, dossierID uint, input dto.CreateConsultationInput) (*model.Consultation, error)
	UpdateConsultation(ctx context.Context, id uint, input dto.UpdateConsultationInput) (*model.Consultation, error)
	DeleteConsultation(ctx context.Context, id uint) error

	AddTraitement(ctx context.Context, consultationID uint, input dto.CreateTraitementInput) (*model.Traitement, error)
	DeleteTraitement(ctx context.Context, id uint) error
}

type dossierService struct {
	repo     repository.DossierRepository
	userRepo repository.UserRepository
}

func NewDossierService(repo repository.DossierRepository, userRepo repository.UserRepository) DossierService {
	return &dossierService{repo: repo, userRepo: userRepo}
}

// Create opens the dossier for a patient/doctor pair; at most one exists
// per pair.
func (s *dossierService) Create(ctx context.Context, input dto.CreateDossierInput) (*model.DossierMedical, error) {
	if _, err := s.userRepo.FindPatientByUserID(ctx, input.PatientID); err != nil {
		return nil, fmt.Errorf("patient introuvable: %w", apperror.ErrNotFound)
	}
	if _, err := s.userRepo.FindMedecinByUserID(ctx, input.MedecinID); err != nil {
		return nil, fmt.Errorf("médecin introuvable: %w", apperror.ErrNotFound)
	}

	if existing, err := s.repo.FindByPair(ctx, input.PatientID, input.MedecinID); err == nil && existing != nil {
		return nil, fmt.Errorf("un dossier existe déjà pour ce patient et ce médecin: %w", apperror.ErrBadRequest)
	}

	dossier := &model.DossierMedical{
		PatientID: input.PatientID,
		MedecinID: input.MedecinID,
	}
	if err := s.repo.Create(ctx, dossier); err != nil {
		return nil, err
	}
	return dossier, nil
}

func (s *dossierService) GetByID(ctx context.Context, id uint) (*model.DossierMedical, error) {
	dossier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return dossier, nil
}

func (s *dossierService) List(ctx context.Context, filter commonDto.PageFilter, patientID, medecinID uint) ([]model.DossierMedical, commonDto.PaginationMeta, error) {
	query := s.repo.FindAll(ctx, patientID, medecinID)

	var dossiers []model.DossierMedical
	meta, err := pagination.PaginateQuery(query, filter.Page, filter.Limit, &dossiers)
	if err != nil {
		return nil, meta, err
	}
	return dossiers, meta, nil
}

func (s *dossierService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *dossierService) AddConsultation(ctx context.Context, dossierID uint, input dto.CreateConsultationInput) (*model.Consultation, error) {
	if _, err := s.GetByID(ctx, dossierID); err != nil {
		return nil, err
	}

	consultation := &model.Consultation{
		DossierID:  dossierID,
		Date:       input.Date,
		Diagnostic: input.Diagnostic,
		Notes:      input.Notes,
	}
	if err := s.repo.CreateConsultation(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

func (s *dossierService) UpdateConsultation(ctx context.Context, id uint, input dto.UpdateConsultationInput) (*model.Consultation, error) {
	consultation, err := s.repo.FindConsultationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Diagnostic != nil {
		consultation.Diagnostic = *input.Diagnostic
	}
	if input.Notes != nil {
		consultation.Notes = *input.Notes
	}

	if err := s.repo.UpdateConsultation(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}

func (s *dossierService) DeleteConsultation(ctx context.Context, id uint) error {
	if _, err := s.repo.FindConsultationByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.DeleteConsultation(ctx, id)
}

func (s *dossierService) AddTraitement(ctx context.Context, consultationID uint, input dto.CreateTraitementInput) (*model.Traitement, error) {
	if _, err := s.repo.FindConsultationByID(ctx, consultationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	traitement := &model.Traitement{
		ConsultationID: consultationID,
		Medicament:     input.Medicament,
		Posologie:      input.Posologie,
		Duree:          input.Duree,
	}
	if err := s.repo.CreateTraitement(ctx, traitement); err != nil {
		return nil, err
	}
	return traitement, nil
}

func (s *dossierService) DeleteTraitement(ctx context.Context, id uint) error {
	if _, err := s.repo.FindTraitementByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	return s.repo.DeleteTraitement(ctx, id)
}

// CheckDossierAccess hides a medical record from anyone who is not the
// patient, the treating doctor, or administrative staff.
func CheckDossierAccess(dossier *model.DossierMedical, userID uint, role string) error {
	switch role {
	case model.RoleAdmin, model.RoleSecretaire:
		return nil
	case model.RoleMedecin:
		if dossier.MedecinID == userID {
			return nil
		}
	case model.RolePatient:
		if dossier.PatientID == userID {
			return nil
		}
	}
	return apperror.ErrNotFound
}
