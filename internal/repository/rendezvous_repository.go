package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cabinet-service/internal/model"
)

// RendezVousFilter narrows the paginated listing; zero values are ignored.
type RendezVousFilter struct {
	MedecinID uint
	PatientID uint
	Statut    string
}

type RendezVousRepository interface {
	Create(ctx context.Context, rdv *model.RendezVous) error
	FindByID(ctx context.Context, id uint) (*model.RendezVous, error)
	FindAll(ctx context.Context, filter RendezVousFilter) *gorm.DB
	Save(ctx context.Context, rdv *model.RendezVous) error
	UpdateStatut(ctx context.Context, id uint, from, to string) (int64, error)
	Delete(ctx context.Context, id uint) error
	FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]model.RendezVous, error)
	FindNextForPatient(ctx context.Context, patientID uint, after time.Time) (*model.RendezVous, error)
}

type rendezVousRepository struct {
	db *gorm.DB
}

func NewRendezVousRepository(db *gorm.DB) RendezVousRepository {
	return &rendezVousRepository{db: db}
}

func (r *rendezVousRepository) Create(ctx context.Context, rdv *model.RendezVous) error {
	return r.db.WithContext(ctx).Create(rdv).Error
}

func (r *rendezVousRepository) FindByID(ctx context.Context, id uint) (*model.RendezVous, error) {
	var rdv model.RendezVous
	err := r.db.WithContext(ctx).
		Preload("Medecin.User").
		Preload("Patient.User").
		First(&rdv, id).Error
	if err != nil {
		return nil, err
	}
	return &rdv, nil
}

// FindAll returns the filtered query for the caller to paginate.
func (r *rendezVousRepository) FindAll(ctx context.Context, filter RendezVousFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.RendezVous{}).
		Preload("Medecin.User").
		Preload("Patient.User")
	if filter.MedecinID != 0 {
		query = query.Where("medecin_id = ?", filter.MedecinID)
	}
	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.Statut != "" {
		query = query.Where("statut = ?", filter.Statut)
	}
	return query.Order("date_heure desc")
}

func (r *rendezVousRepository) Save(ctx context.Context, rdv *model.RendezVous) error {
	return r.db.WithContext(ctx).Save(rdv).Error
}

// UpdateStatut flips the status only when the row still carries the expected
// one; the affected-row count lets the service detect a lost race.
func (r *rendezVousRepository) UpdateStatut(ctx context.Context, id uint, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.RendezVous{}).
		Where("id = ? AND statut = ?", id, from).
		Update("statut", to)
	return res.RowsAffected, res.Error
}

func (r *rendezVousRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.RendezVous{}, id).Error
}

func (r *rendezVousRepository) FindConfirmedBetween(ctx context.Context, from, to time.Time) ([]model.RendezVous, error) {
	var rdvs []model.RendezVous
	err := r.db.WithContext(ctx).
		Where("date_heure >= ? AND date_heure < ? AND statut = ?", from, to, model.StatutConfirme).
		Preload("Medecin.User").
		Preload("Patient.User").
		Order("date_heure asc").
		Find(&rdvs).Error
	return rdvs, err
}

func (r *rendezVousRepository) FindNextForPatient(ctx context.Context, patientID uint, after time.Time) (*model.RendezVous, error) {
	var rdv model.RendezVous
	err := r.db.WithContext(ctx).
		Where("patient_id = ? AND date_heure > ? AND statut <> ?", patientID, after, model.StatutAnnule).
		Preload("Medecin.User").
		Order("date_heure asc").
		First(&rdv).Error
	if err != nil {
		return nil, err
	}
	return &rdv, nil
}
