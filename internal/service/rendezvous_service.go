package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/pkg/apperror"
	"cabinet-service/pkg/pagination"
)

type RendezVousService interface {
	Create(ctx context.Context, input dto.CreateRendezVousInput) (*model.RendezVous, error)
	GetByID(ctx context.Context, id uint) (*model.RendezVous, error)
	List(ctx context.Context, filter dto.RendezVousFilterInput) (*dto.PaginatedRendezVousResponse, error)
	Update(ctx context.Context, id uint, input dto.UpdateRendezVousInput) (*model.RendezVous, error)
	Confirmer(ctx context.Context, id uint) error
	Annuler(ctx context.Context, id uint) error
	Terminer(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type rendezVousService struct {
	repo     repository.RendezVousRepository
	userRepo repository.UserRepository
	notifSvc NotificationService
	now      func() time.Time
}

func NewRendezVousService(repo repository.RendezVousRepository, userRepo repository.UserRepository, notifSvc NotificationService) RendezVousService {
	return &rendezVousService{
		repo:     repo,
		userRepo: userRepo,
		notifSvc: notifSvc,
		now:      time.Now,
	}
}

// validateDateHeure re-checks the future-date rule server-side; client
// validation can always be bypassed.
func (s *rendezVousService) validateDateHeure(dateHeure time.Time) error {
	if !dateHeure.After(s.now()) {
		return fmt.Errorf("la date du rendez-vous doit être dans le futur: %w", apperror.ErrBadRequest)
	}
	return nil
}

func (s *rendezVousService) Create(ctx context.Context, input dto.CreateRendezVousInput) (*model.RendezVous, error) {
	if err := s.validateDateHeure(input.DateHeure); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindMedecinByUserID(ctx, input.MedecinID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("médecin introuvable: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	patient, err := s.userRepo.FindPatientByUserID(ctx, input.PatientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient introuvable: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	rdv := &model.RendezVous{
		DateHeure: input.DateHeure,
		Statut:    model.StatutEnAttente,
		Motif:     input.Motif,
		MedecinID: input.MedecinID,
		PatientID: input.PatientID,
	}

	if err := s.repo.Create(ctx, rdv); err != nil {
		return nil, err
	}

	patientNom := ""
	if patient.User != nil {
		patientNom = patient.User.FullName()
	}
	message := fmt.Sprintf("Nouvelle demande de rendez-vous de %s le %s à %s.",
		patientNom, rdv.DateHeure.Format("02/01/2006"), rdv.DateHeure.Format("15h04"))
	if _, err := s.notifSvc.Create(ctx, &rdv.ID, model.NotifNouveauRDV, message, rdv.MedecinID); err != nil {
		// The appointment exists even if the notification failed.
		log.Printf("rendezvous %d: notification nouveau rdv: %v", rdv.ID, err)
	}

	return rdv, nil
}

func (s *rendezVousService) GetByID(ctx context.Context, id uint) (*model.RendezVous, error) {
	rdv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return rdv, nil
}

func (s *rendezVousService) List(ctx context.Context, filter dto.RendezVousFilterInput) (*dto.PaginatedRendezVousResponse, error) {
	query := s.repo.FindAll(ctx, repository.RendezVousFilter{
		MedecinID: filter.MedecinID,
		PatientID: filter.PatientID,
		Statut:    filter.Statut,
	})

	var rdvs []model.RendezVous
	meta, err := pagination.PaginateQuery(query, filter.Page, filter.Limit, &rdvs)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RendezVousResponse, 0, len(rdvs))
	for _, rdv := range rdvs {
		responses = append(responses, BuildRendezVousResponse(rdv))
	}

	return &dto.PaginatedRendezVousResponse{Data: responses, Meta: meta}, nil
}

func BuildRendezVousResponse(rdv model.RendezVous) dto.RendezVousResponse {
	resp := dto.RendezVousResponse{
		ID:        rdv.ID,
		DateHeure: rdv.DateHeure,
		Statut:    rdv.Statut,
		Motif:     rdv.Motif,
		MedecinID: rdv.MedecinID,
		PatientID: rdv.PatientID,
		UpdatedAt: rdv.UpdatedAt,
	}
	if rdv.Medecin != nil && rdv.Medecin.User != nil {
		resp.Medecin = "Dr " + rdv.Medecin.User.Nom
	}
	if rdv.Patient != nil && rdv.Patient.User != nil {
		resp.Patient = rdv.Patient.User.FullName()
	}
	return resp
}

// Update edits date and reason. The input carries the UpdatedAt the client
// last read; a mismatch means a concurrent edit happened and the caller
// must reload before retrying.
func (s *rendezVousService) Update(ctx context.Context, id uint, input dto.UpdateRendezVousInput) (*model.RendezVous, error) {
	rdv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rdv.UpdatedAt.Truncate(time.Second).Equal(input.UpdatedAt.Truncate(time.Second)) {
		return nil, fmt.Errorf("le rendez-vous a été modifié entre-temps: %w", apperror.ErrConflict)
	}

	if input.DateHeure != nil {
		if err := s.validateDateHeure(*input.DateHeure); err != nil {
			return nil, err
		}
		rdv.DateHeure = *input.DateHeure
	}
	if input.Motif != nil {
		rdv.Motif = *input.Motif
	}

	if err := s.repo.Save(ctx, rdv); err != nil {
		return nil, err
	}
	return rdv, nil
}

func (s *rendezVousService) Confirmer(ctx context.Context, id uint) error {
	rdv, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.UpdateStatut(ctx, id, model.StatutEnAttente, model.StatutConfirme)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("le rendez-vous n'est plus en attente: %w", apperror.ErrConflict)
	}

	message := fmt.Sprintf("Votre rendez-vous du %s à %s est confirmé.",
		rdv.DateHeure.Format("02/01/2006"), rdv.DateHeure.Format("15h04"))
	if _, err := s.notifSvc.Create(ctx, &rdv.ID, model.NotifConfirmation, message, rdv.PatientID); err != nil {
		log.Printf("rendezvous %d: notification confirmation: %v", rdv.ID, err)
	}

	return nil
}

func (s *rendezVousService) Annuler(ctx context.Context, id uint) error {
	rdv, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rdv.Statut == model.StatutAnnule || rdv.Statut == model.StatutTermine {
		return fmt.Errorf("le rendez-vous ne peut plus être annulé: %w", apperror.ErrConflict)
	}

	affected, err := s.repo.UpdateStatut(ctx, id, rdv.Statut, model.StatutAnnule)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("le rendez-vous a changé entre-temps: %w", apperror.ErrConflict)
	}

	quand := fmt.Sprintf("%s à %s", rdv.DateHeure.Format("02/01/2006"), rdv.DateHeure.Format("15h04"))
	if _, err := s.notifSvc.Create(ctx, &rdv.ID, model.NotifAnnulation,
		fmt.Sprintf("Votre rendez-vous du %s a été annulé.", quand), rdv.PatientID); err != nil {
		log.Printf("rendezvous %d: notification annulation patient: %v", rdv.ID, err)
	}
	if _, err := s.notifSvc.Create(ctx, &rdv.ID, model.NotifAnnulation,
		fmt.Sprintf("Le rendez-vous du %s a été annulé.", quand), rdv.MedecinID); err != nil {
		log.Printf("rendezvous %d: notification annulation medecin: %v", rdv.ID, err)
	}

	return nil
}

func (s *rendezVousService) Terminer(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	affected, err := s.repo.UpdateStatut(ctx, id, model.StatutConfirme, model.StatutTermine)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("seul un rendez-vous confirmé peut être terminé: %w", apperror.ErrConflict)
	}
	return nil
}

func (s *rendezVousService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
