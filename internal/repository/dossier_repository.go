package repository

import (
	"context"

	"gorm.io/gorm"

	"cabinet-service/internal/model"
)

type DossierRepository interface {
	Create(ctx context.Context, dossier *model.DossierMedical) error
	FindByID(ctx context.Context, id uint) (*model.DossierMedical, error)
	FindByPair(ctx context.Context, patientID, medecinID uint) (*model.DossierMedical, error)
	FindAll(ctx context.Context, patientID, medecinID uint) *gorm.DB
	Delete(ctx context.Context, id uint) error

	CreateConsultation(ctx context.Context, c *model.Consultation) error
	FindConsultationByID(ctx context.Context, id uint) (*model.Consultation, error)
	UpdateConsultation(ctx context.Context, c *model.Consultation) error
	DeleteConsultation(ctx context.Context, id uint) error

	CreateTraitement(ctx context.Context, t *model.Traitement) error
	FindTraitementByID(ctx context.Context, id uint) (*model.Traitement, error)
	UpdateTraitement(ctx context.Context, t *model.Traitement) error
	DeleteTraitement(ctx context.Context, id uint) error
}

type dossierRepository struct {
	db *gorm.DB
}

func NewDossierRepository(db *gorm.DB) DossierRepository {
	return &dossierRepository{db: db}
}

func (r *dossierRepository) Create(ctx context.Context, dossier *model.DossierMedical) error {
	return r.db.WithContext(ctx).Create(dossier).Error
}

func (r *dossierRepository) FindByID(ctx context.Context, id uint) (*model.DossierMedical, error) {
	var dossier model.DossierMedical
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Medecin.User").
		Preload("Consultations", func(db *gorm.DB) *gorm.DB {
			return db.Order("consultations.date desc")
		}).
		Preload("Consultations.Traitements").
		First(&dossier, id).Error
	if err != nil {
		return nil, err
	}
	return &dossier, nil
}

func (r *dossierRepository) FindByPair(ctx context.Context, patientID, medecinID uint) (*model.DossierMedical, error) {
	var dossier model.DossierMedical
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND medecin_id = ?", patientID, medecinID).
		First(&dossier).Error
	if err != nil {
		return nil, err
	}
	return &dossier, nil
}

func (r *dossierRepository) FindAll(ctx context.Context, patientID, medecinID uint) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.DossierMedical{}).
		Preload("Patient.User").
		Preload("Medecin.User")
	if patientID != 0 {
		query = query.Where("patient_id = ?", patientID)
	}
	if medecinID != 0 {
		query = query.Where("medecin_id = ?", medecinID)
	}
	return query.Order("date_creation desc")
}

func (r *dossierRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.DossierMedical{}, id).Error
}

func (r *dossierRepository) CreateConsultation(ctx context.Context, c *model.Consultation) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *dossierRepository) FindConsultationByID(ctx context.Context, id uint) (*model.Consultation, error) {
	var c model.Consultation
	err := r.db.WithContext(ctx).Preload("Traitements").First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *dossierRepository) UpdateConsultation(ctx context.Context, c *model.Consultation) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *dossierRepository) DeleteConsultation(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Consultation{}, id).Error
}

func (r *dossierRepository) CreateTraitement(ctx context.Context, t *model.Traitement) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *dossierRepository) FindTraitementByID(ctx context.Context, id uint) (*model.Traitement, error) {
	var t model.Traitement
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *dossierRepository) UpdateTraitement(ctx context.Context, t *model.Traitement) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *dossierRepository) DeleteTraitement(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Traitement{}, id).Error
}
