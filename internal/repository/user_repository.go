package repository

import (
	"context"

	"gorm.io/gorm"

	"cabinet-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context, search, roleName string) *gorm.DB
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error

	FindRoleByName(ctx context.Context, name string) (*model.Role, error)

	CreateMedecin(ctx context.Context, m *model.Medecin) error
	CreatePatient(ctx context.Context, p *model.Patient) error
	CreateSecretaire(ctx context.Context, s *model.Secretaire) error
	CreateAdmin(ctx context.Context, a *model.Admin) error

	FindMedecinByUserID(ctx context.Context, userID uint) (*model.Medecin, error)
	FindPatientByUserID(ctx context.Context, userID uint) (*model.Patient, error)
	FindAllMedecins(ctx context.Context) ([]model.Medecin, error)
	UpdateMedecin(ctx context.Context, m *model.Medecin) error
	UpdatePatient(ctx context.Context, p *model.Patient) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Medecin").
		Preload("Patient").
		Preload("Secretaire").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll returns the filtered query so the caller can paginate it.
func (r *userRepository) FindAll(ctx context.Context, search, roleName string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.User{}).Preload("Role")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("nom LIKE ? OR prenom LIKE ? OR email LIKE ?", like, like, like)
	}
	if roleName != "" {
		query = query.Joins("JOIN roles ON roles.id = users.role_id").
			Where("roles.name = ?", roleName)
	}
	return query.Order("users.created_at desc")
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.User{}, id).Error
}

func (r *userRepository) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *userRepository) CreateMedecin(ctx context.Context, m *model.Medecin) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *userRepository) CreatePatient(ctx context.Context, p *model.Patient) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *userRepository) CreateSecretaire(ctx context.Context, s *model.Secretaire) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *userRepository) CreateAdmin(ctx context.Context, a *model.Admin) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *userRepository) FindMedecinByUserID(ctx context.Context, userID uint) (*model.Medecin, error) {
	var m model.Medecin
	err := r.db.WithContext(ctx).Preload("User").First(&m, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *userRepository) FindPatientByUserID(ctx context.Context, userID uint) (*model.Patient, error) {
	var p model.Patient
	err := r.db.WithContext(ctx).Preload("User").First(&p, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *userRepository) FindAllMedecins(ctx context.Context) ([]model.Medecin, error) {
	var medecins []model.Medecin
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = medecins.user_id").
		Where("users.est_actif = ?", true).
		Order("users.nom asc").
		Find(&medecins).Error
	return medecins, err
}

func (r *userRepository) UpdateMedecin(ctx context.Context, m *model.Medecin) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *userRepository) UpdatePatient(ctx context.Context, p *model.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}
