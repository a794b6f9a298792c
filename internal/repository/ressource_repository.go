package repository

import (
	"context"

	"gorm.io/gorm"

	"cabinet-service/internal/model"
)

type RessourceRepository interface {
	Create(ctx context.Context, ressource *model.RessourceMedicale) error
	FindByID(ctx context.Context, id uint) (*model.RessourceMedicale, error)
	FindAll(ctx context.Context, search string) *gorm.DB
	Update(ctx context.Context, ressource *model.RessourceMedicale) error
	Delete(ctx context.Context, id uint) error

	CreatePersonnel(ctx context.Context, p *model.PersonnelMedical) error
	FindPersonnelByID(ctx context.Context, id uint) (*model.PersonnelMedical, error)
	FindAllPersonnel(ctx context.Context, search string) *gorm.DB
	UpdatePersonnel(ctx context.Context, p *model.PersonnelMedical) error
	DeletePersonnel(ctx context.Context, id uint) error
}

type ressourceRepository struct {
	db *gorm.DB
}

func NewRessourceRepository(db *gorm.DB) RessourceRepository {
	return &ressourceRepository{db: db}
}

func (r *ressourceRepository) Create(ctx context.Context, ressource *model.RessourceMedicale) error {
	return r.db.WithContext(ctx).Create(ressource).Error
}

func (r *ressourceRepository) FindByID(ctx context.Context, id uint) (*model.RessourceMedicale, error) {
	var ressource model.RessourceMedicale
	if err := r.db.WithContext(ctx).First(&ressource, id).Error; err != nil {
		return nil, err
	}
	return &ressource, nil
}

func (r *ressourceRepository) FindAll(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.RessourceMedicale{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("nom LIKE ? OR type LIKE ?", like, like)
	}
	return query.Order("nom asc")
}

func (r *ressourceRepository) Update(ctx context.Context, ressource *model.RessourceMedicale) error {
	return r.db.WithContext(ctx).Save(ressource).Error
}

func (r *ressourceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.RessourceMedicale{}, id).Error
}

func (r *ressourceRepository) CreatePersonnel(ctx context.Context, p *model.PersonnelMedical) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ressourceRepository) FindPersonnelByID(ctx context.Context, id uint) (*model.PersonnelMedical, error) {
	var p model.PersonnelMedical
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ressourceRepository) FindAllPersonnel(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.PersonnelMedical{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("nom LIKE ? OR prenom LIKE ? OR fonction LIKE ?", like, like, like)
	}
	return query.Order("nom asc")
}

func (r *ressourceRepository) UpdatePersonnel(ctx context.Context, p *model.PersonnelMedical) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ressourceRepository) DeletePersonnel(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PersonnelMedical{}, id).Error
}
