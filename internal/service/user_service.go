package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/pkg/apperror"
	commonDto "cabinet-service/pkg/dto"
	"cabinet-service/pkg/pagination"
	"cabinet-service/pkg/storage"
)

type UserService interface {
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.CreatedUserResponse, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, filter commonDto.PageFilter, role string) ([]dto.UserResponse, commonDto.PaginationMeta, error)
	UpdateUser(ctx context.Context, id uint, input dto.UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error

	ListMedecins(ctx context.Context, filter commonDto.PageFilter) ([]dto.MedecinResponse, commonDto.PaginationMeta, error)
	GetMedecin(ctx context.Context, userID uint) (*dto.MedecinResponse, error)
	UpdateMedecin(ctx context.Context, userID uint, input dto.UpdateMedecinInput) error
	ListPatients(ctx context.Context, filter commonDto.PageFilter) ([]dto.PatientResponse, commonDto.PaginationMeta, error)
	GetPatient(ctx context.Context, userID uint) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, userID uint, input dto.UpdatePatientInput) error

	UploadAvatar(ctx context.Context, userID uint, r io.Reader, fileName string) (string, error)
}

type userService struct {
	repo         repository.UserRepository
	imageStorage storage.ImageStorage
	searchSvc    SearchService
}

func NewUserService(repo repository.UserRepository, imageStorage storage.ImageStorage, searchSvc SearchService) UserService {
	return &userService{
		repo:         repo,
		imageStorage: imageStorage,
		searchSvc:    searchSvc,
	}
}

// CreateUser creates the account plus its role-specific extension row.
// When no password is supplied, a provisional one is generated and returned
// exactly once for the secretary to hand over.
func (s *userService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.CreatedUserResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("un compte existe déjà avec cet email: %w", apperror.ErrBadRequest)
	}

	role, err := s.repo.FindRoleByName(ctx, input.Role)
	if err != nil {
		return nil, fmt.Errorf("rôle inconnu: %w", apperror.ErrBadRequest)
	}

	password := input.Password
	provisional := ""
	if password == "" {
		provisional = uuid.New().String()
		password = provisional
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Nom:          input.Nom,
		Prenom:       input.Prenom,
		Email:        input.Email,
		PasswordHash: string(hash),
		RoleID:       &role.ID,
		Role:         *role,
		EstActif:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	switch input.Role {
	case model.RoleMedecin:
		err = s.repo.CreateMedecin(ctx, &model.Medecin{
			UserID:     user.ID,
			Specialite: input.Specialite,
			Telephone:  input.Telephone,
		})
		if err == nil && s.searchSvc != nil {
			s.searchSvc.IndexMedecin(user, input.Specialite)
		}
	case model.RolePatient:
		err = s.repo.CreatePatient(ctx, &model.Patient{
			UserID:        user.ID,
			DateNaissance: input.DateNaissance,
			Adresse:       input.Adresse,
			Telephone:     input.Telephone,
			NumeroSecu:    input.NumeroSecu,
		})
	case model.RoleSecretaire:
		err = s.repo.CreateSecretaire(ctx, &model.Secretaire{
			UserID:    user.ID,
			Telephone: input.Telephone,
		})
	case model.RoleAdmin:
		err = s.repo.CreateAdmin(ctx, &model.Admin{UserID: user.ID})
	}
	if err != nil {
		return nil, err
	}

	return &dto.CreatedUserResponse{
		User:                BuildUserResponse(user),
		ProvisionalPassword: provisional,
	}, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, filter commonDto.PageFilter, role string) ([]dto.UserResponse, commonDto.PaginationMeta, error) {
	query := s.repo.FindAll(ctx, filter.Search, role)

	var users []model.User
	meta, err := pagination.PaginateQuery(query, filter.Page, filter.Limit, &users)
	if err != nil {
		return nil, meta, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, BuildUserResponse(&users[i]))
	}
	return responses, meta, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uint, input dto.UpdateUserInput) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Nom != nil {
		user.Nom = *input.Nom
	}
	if input.Prenom != nil {
		user.Prenom = *input.Prenom
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.EstActif != nil {
		user.EstActif = *input.EstActif
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser cascades to the role extension row, the user's appointments
// and their notifications.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.searchSvc != nil && user.Role.Name == model.RoleMedecin {
		s.searchSvc.RemoveMedecin(id)
	}
	return nil
}

func (s *userService) ListMedecins(ctx context.Context, filter commonDto.PageFilter) ([]dto.MedecinResponse, commonDto.PaginationMeta, error) {
	users, meta, err := s.ListUsers(ctx, filter, model.RoleMedecin)
	if err != nil {
		return nil, meta, err
	}

	responses := make([]dto.MedecinResponse, 0, len(users))
	for _, u := range users {
		// The directory only lists doctors whose account is active.
		if !u.EstActif {
			continue
		}
		m, err := s.repo.FindMedecinByUserID(ctx, u.ID)
		if err != nil {
			continue
		}
		responses = append(responses, dto.MedecinResponse{
			UserID:     u.ID,
			Nom:        u.Nom,
			Prenom:     u.Prenom,
			Email:      u.Email,
			Specialite: m.Specialite,
			Telephone:  m.Telephone,
		})
	}
	return responses, meta, nil
}

func (s *userService) GetMedecin(ctx context.Context, userID uint) (*dto.MedecinResponse, error) {
	m, err := s.repo.FindMedecinByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	resp := &dto.MedecinResponse{
		UserID:     m.UserID,
		Specialite: m.Specialite,
		Telephone:  m.Telephone,
	}
	if m.User != nil {
		resp.Nom = m.User.Nom
		resp.Prenom = m.User.Prenom
		resp.Email = m.User.Email
	}
	return resp, nil
}

func (s *userService) UpdateMedecin(ctx context.Context, userID uint, input dto.UpdateMedecinInput) error {
	m, err := s.repo.FindMedecinByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if input.Specialite != nil {
		m.Specialite = *input.Specialite
	}
	if input.Telephone != nil {
		m.Telephone = *input.Telephone
	}

	if err := s.repo.UpdateMedecin(ctx, m); err != nil {
		return err
	}
	if s.searchSvc != nil && m.User != nil {
		s.searchSvc.IndexMedecin(m.User, m.Specialite)
	}
	return nil
}

func (s *userService) ListPatients(ctx context.Context, filter commonDto.PageFilter) ([]dto.PatientResponse, commonDto.PaginationMeta, error) {
	users, meta, err := s.ListUsers(ctx, filter, model.RolePatient)
	if err != nil {
		return nil, meta, err
	}

	responses := make([]dto.PatientResponse, 0, len(users))
	for _, u := range users {
		p, err := s.repo.FindPatientByUserID(ctx, u.ID)
		if err != nil {
			continue
		}
		responses = append(responses, dto.PatientResponse{
			UserID:        u.ID,
			Nom:           u.Nom,
			Prenom:        u.Prenom,
			Email:         u.Email,
			DateNaissance: p.DateNaissance,
			Adresse:       p.Adresse,
			Telephone:     p.Telephone,
			NumeroSecu:    p.NumeroSecu,
		})
	}
	return responses, meta, nil
}

func (s *userService) GetPatient(ctx context.Context, userID uint) (*dto.PatientResponse, error) {
	p, err := s.repo.FindPatientByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	resp := &dto.PatientResponse{
		UserID:        p.UserID,
		DateNaissance: p.DateNaissance,
		Adresse:       p.Adresse,
		Telephone:     p.Telephone,
		NumeroSecu:    p.NumeroSecu,
	}
	if p.User != nil {
		resp.Nom = p.User.Nom
		resp.Prenom = p.User.Prenom
		resp.Email = p.User.Email
	}
	return resp, nil
}

func (s *userService) UpdatePatient(ctx context.Context, userID uint, input dto.UpdatePatientInput) error {
	p, err := s.repo.FindPatientByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	if input.DateNaissance != nil {
		p.DateNaissance = input.DateNaissance
	}
	if input.Adresse != nil {
		p.Adresse = *input.Adresse
	}
	if input.Telephone != nil {
		p.Telephone = *input.Telephone
	}
	if input.NumeroSecu != nil {
		p.NumeroSecu = *input.NumeroSecu
	}

	return s.repo.UpdatePatient(ctx, p)
}

func (s *userService) UploadAvatar(ctx context.Context, userID uint, r io.Reader, fileName string) (string, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.imageStorage == nil {
		return "", fmt.Errorf("stockage d'images non configuré: %w", apperror.ErrInternal)
	}

	url, err := s.imageStorage.UploadImage(ctx, r, "avatars", fileName)
	if err != nil {
		return "", err
	}

	if user.AvatarURL != nil {
		// Old avatar removal is best-effort.
		_ = s.imageStorage.DeleteImage(ctx, *user.AvatarURL)
	}

	user.AvatarURL = &url
	if err := s.repo.Update(ctx, user); err != nil {
		return "", err
	}
	return url, nil
}
