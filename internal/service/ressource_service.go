package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/pkg/apperror"
	commonDto "cabinet-service/pkg/dto"
	"cabinet-service/pkg/pagination"
)

type RessourceService interface {
	Create(ctx context.Context, input dto.CreateRessourceInput) (*model.RessourceMedicale, error)
	GetByID(ctx context.Context, id uint) (*model.RessourceMedicale, error)
	List(ctx context.Context, filter commonDto.PageFilter) ([]model.RessourceMedicale, commonDto.PaginationMeta, error)
	Update(ctx context.Context, id uint, input dto.CreateRessourceInput) (*model.RessourceMedicale, error)
	Delete(ctx context.Context, id uint) error

	CreatePersonnel(ctx context.Context, input dto.CreatePersonnelInput) (*model.PersonnelMedical, error)
	GetPersonnel(ctx context.Context, id uint) (*model.PersonnelMedical, error)
	ListPersonnel(ctx context.Context, filter commonDto.PageFilter) ([]model.PersonnelMedical, commonDto.PaginationMeta, error)
	UpdatePersonnel(ctx context.Context, id uint, input dto.CreatePersonnelInput) (*model.PersonnelMedical, error)
	DeletePersonnel(ctx context.Context, id uint) error
}

type ressourceService struct {
	repo repository.RessourceRepository
}

func NewRessourceService(repo repository.RessourceRepository) RessourceService {
	return &ressourceService{repo: repo}
}

func (s *ressourceService) Create(ctx context.Context, input dto.CreateRessourceInput) (*model.RessourceMedicale, error) {
	ressource := &model.RessourceMedicale{
		Nom:        input.Nom,
		Type:       input.Type,
		Quantite:   input.Quantite,
		Disponible: true,
	}
	if input.Disponible != nil {
		ressource.Disponible = *input.Disponible
	}
	if err := s.repo.Create(ctx, ressource); err != nil {
		return nil, err
	}
	return ressource, nil
}

func (s *ressourceService) GetByID(ctx context.Context, id uint) (*model.RessourceMedicale, error) {
	ressource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return ressource, nil
}

func (s *ressourceService) List(ctx context.Context, filter commonDto.PageFilter) ([]model.RessourceMedicale, commonDto.PaginationMeta, error) {
	query := s.repo.FindAll(ctx, filter.Search)

	var ressources []model.RessourceMedicale
	meta, err := pagination.PaginateQuery(query, filter.Page, filter.Limit, &ressources)
	if err != nil {
		return nil, meta, err
	}
	return ressources, meta, nil
}

func (s *ressourceService) Update(ctx context.Context, id uint, input dto.CreateRessourceInput) (*model.RessourceMedicale, error) {
	ressource, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ressource.Nom = input.Nom
	ressource.Type = input.Type
	ressource.Quantite = input.Quantite
	if input.Disponible != nil {
		ressource.Disponible = *input.Disponible
	}

	if err := s.repo.Update(ctx, ressource); err != nil {
		return nil, err
	}
	return ressource, nil
}

func (s *ressourceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ressourceService) CreatePersonnel(ctx context.Context, input dto.CreatePersonnelInput) (*model.PersonnelMedical, error) {
	personnel := &model.PersonnelMedical{
		Nom:       input.Nom,
		Prenom:    input.Prenom,
		Fonction:  input.Fonction,
		Telephone: input.Telephone,
	}
	if err := s.repo.CreatePersonnel(ctx, personnel); err != nil {
		return nil, err
	}
	return personnel, nil
}

func (s *ressourceService) GetPersonnel(ctx context.Context, id uint) (*model.PersonnelMedical, error) {
	personnel, err := s.repo.FindPersonnelByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return personnel, nil
}

func (s *ressourceService) ListPersonnel(ctx context.Context, filter commonDto.PageFilter) ([]model.PersonnelMedical, commonDto.PaginationMeta, error) {
	query := s.repo.FindAllPersonnel(ctx, filter.Search)

	var personnels []model.PersonnelMedical
	meta, err := pagination.PaginateQuery(query, filter.Page, filter.Limit, &personnels)
	if err != nil {
		return nil, meta, err
	}
	return personnels, meta, nil
}

func (s *ressourceService) UpdatePersonnel(ctx context.Context, id uint, input dto.CreatePersonnelInput) (*model.PersonnelMedical, error) {
	personnel, err := s.GetPersonnel(ctx, id)
	if err != nil {
		return nil, err
	}

	personnel.Nom = input.Nom
	personnel.Prenom = input.Prenom
	personnel.Fonction = input.Fonction
	personnel.Telephone = input.Telephone

	if err := s.repo.UpdatePersonnel(ctx, personnel); err != nil {
		return nil, err
	}
	return personnel, nil
}

func (s *ressourceService) DeletePersonnel(ctx context.Context, id uint) error {
	if _, err := s.GetPersonnel(ctx, id); err != nil {
		return err
	}
	return s.repo.DeletePersonnel(ctx, id)
}
