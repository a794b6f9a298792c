package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
)

type chatbotFixture struct {
	db      *gorm.DB
	svc     service.ChatbotService
	medecin model.User
	patient model.User
}

func newChatbotFixture(t *testing.T) *chatbotFixture {
	t.Helper()
	db := setupTestDB(t)
	roleMedecin := seedRole(t, db, model.RoleMedecin)
	rolePatient := seedRole(t, db, model.RolePatient)
	medecin := seedMedecin(t, db, roleMedecin, "Durand", "Paul", "p.durand@cabinet.local")
	patient := seedPatient(t, db, rolePatient, "Martin", "Alice", "a.martin@example.com")

	rdvRepo := repository.NewRendezVousRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &chatbotFixture{
		db:      db,
		svc:     service.NewChatbotService(rdvRepo, userRepo),
		medecin: medecin,
		patient: patient,
	}
}

func TestChatbotGreeting(t *testing.T) {
	f := newChatbotFixture(t)

	resp := f.svc.Respond(context.Background(), "Bonjour !", f.patient.ID, model.RolePatient)

	assert.Equal(t, "info", resp.Type)
	assert.Contains(t, resp.Message, "Bonjour")
	assert.NotEmpty(t, resp.Actions)
}

func TestChatbotCancelKeywordBeatsGenericRDV(t *testing.T) {
	f := newChatbotFixture(t)

	// "annuler" and "rendez-vous" both appear; the cancel group has priority.
	resp := f.svc.Respond(context.Background(), "Je veux annuler mon rendez-vous", f.patient.ID, model.RolePatient)

	assert.Equal(t, "warning", resp.Type)
	require.Len(t, resp.Actions, 1)
	assert.Equal(t, "Mes rendez-vous", resp.Actions[0].Label)
	assert.Equal(t, "/rendezvous", resp.Actions[0].URL)
}

func TestChatbotNextAppointment(t *testing.T) {
	f := newChatbotFixture(t)
	ctx := context.Background()

	resp := f.svc.Respond(ctx, "Quand est mon prochain rdv ?", f.patient.ID, model.RolePatient)
	assert.Equal(t, "Vous n'avez aucun rendez-vous à venir.", resp.Message)

	// An upcoming appointment changes the answer; a cancelled one does not.
	future := time.Now().Add(48 * time.Hour)
	require.NoError(t, f.db.Create(&model.RendezVous{
		DateHeure: future, Statut: model.StatutAnnule,
		MedecinID: f.medecin.ID, PatientID: f.patient.ID,
	}).Error)
	resp = f.svc.Respond(ctx, "mon prochain rdv", f.patient.ID, model.RolePatient)
	assert.Equal(t, "Vous n'avez aucun rendez-vous à venir.", resp.Message)

	require.NoError(t, f.db.Create(&model.RendezVous{
		DateHeure: future, Statut: model.StatutConfirme,
		MedecinID: f.medecin.ID, PatientID: f.patient.ID,
	}).Error)
	resp = f.svc.Respond(ctx, "mon prochain rdv", f.patient.ID, model.RolePatient)
	assert.Contains(t, resp.Message, "Dr Durand")
	assert.Contains(t, resp.Message, model.StatutConfirme)
	assert.NotNil(t, resp.Data)
}

func TestChatbotNextAppointmentStaffGetsAgendaPointer(t *testing.T) {
	f := newChatbotFixture(t)

	resp := f.svc.Respond(context.Background(), "rendez-vous", f.medecin.ID, model.RoleMedecin)

	assert.Contains(t, resp.Message, "agenda")
}

func TestChatbotDoctorList(t *testing.T) {
	f := newChatbotFixture(t)

	resp := f.svc.Respond(context.Background(), "Quels sont les docteurs du cabinet ?", f.patient.ID, model.RolePatient)

	assert.Contains(t, resp.Message, "Dr Durand")
	assert.Contains(t, resp.Message, "Généraliste")
}

func TestChatbotUrgency(t *testing.T) {
	f := newChatbotFixture(t)

	resp := f.svc.Respond(context.Background(), "C'est urgent", f.patient.ID, model.RolePatient)

	assert.Equal(t, "error", resp.Type)
	assert.Contains(t, resp.Message, "15")
}

func TestChatbotFallbackPerRole(t *testing.T) {
	f := newChatbotFixture(t)
	ctx := context.Background()

	patientResp := f.svc.Respond(ctx, "xyzzy", f.patient.ID, model.RolePatient)
	assert.Contains(t, patientResp.Message, "pas compris")
	require.NotEmpty(t, patientResp.Actions)
	assert.Equal(t, "Mes rendez-vous", patientResp.Actions[0].Label)

	staffResp := f.svc.Respond(ctx, "xyzzy", f.medecin.ID, model.RoleSecretaire)
	require.NotEmpty(t, staffResp.Actions)
	assert.Equal(t, "Agenda", staffResp.Actions[0].Label)
}

func TestChatbotSuggestionsDependOnRole(t *testing.T) {
	f := newChatbotFixture(t)

	patientSuggestions := f.svc.Suggestions(model.RolePatient)
	staffSuggestions := f.svc.Suggestions(model.RoleMedecin)

	assert.NotEqual(t, patientSuggestions, staffSuggestions)
	assert.NotEmpty(t, patientSuggestions)
	assert.NotEmpty(t, staffSuggestions)
}
