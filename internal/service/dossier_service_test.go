package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/apperror"
)

type dossierFixture struct {
	db      *gorm.DB
	svc     service.DossierService
	medecin model.User
	patient model.User
}

func newDossierFixture(t *testing.T) *dossierFixture {
	t.Helper()
	db := setupTestDB(t)
	roleMedecin := seedRole(t, db, model.RoleMedecin)
	rolePatient := seedRole(t, db, model.RolePatient)
	medecin := seedMedecin(t, db, roleMedecin, "Durand", "Paul", "p.durand@cabinet.local")
	patient := seedPatient(t, db, rolePatient, "Martin", "Alice", "a.martin@example.com")

	return &dossierFixture{
		db:      db,
		svc:     service.NewDossierService(repository.NewDossierRepository(db), repository.NewUserRepository(db)),
		medecin: medecin,
		patient: patient,
	}
}

func TestDossierOnePerPair(t *testing.T) {
	f := newDossierFixture(t)
	ctx := context.Background()
	input := dto.CreateDossierInput{PatientID: f.patient.ID, MedecinID: f.medecin.ID}

	dossier, err := f.svc.Create(ctx, input)
	require.NoError(t, err)
	assert.NotZero(t, dossier.ID)

	_, err = f.svc.Create(ctx, input)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestDossierCreateUnknownParticipants(t *testing.T) {
	f := newDossierFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, dto.CreateDossierInput{PatientID: 9999, MedecinID: f.medecin.ID})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Create(ctx, dto.CreateDossierInput{PatientID: f.patient.ID, MedecinID: 9999})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDossierConsultationsAndTraitements(t *testing.T) {
	f := newDossierFixture(t)
	ctx := context.Background()

	dossier, err := f.svc.Create(ctx, dto.CreateDossierInput{PatientID: f.patient.ID, MedecinID: f.medecin.ID})
	require.NoError(t, err)

	consultation, err := f.svc.AddConsultation(ctx, dossier.ID, dto.CreateConsultationInput{
		Date:       time.Now(),
		Diagnostic: "Angine virale",
		Notes:      "Repos conseillé",
	})
	require.NoError(t, err)

	traitement, err := f.svc.AddTraitement(ctx, consultation.ID, dto.CreateTraitementInput{
		Medicament: "Paracétamol",
		Posologie:  "1g toutes les 6h",
		Duree:      "5 jours",
	})
	require.NoError(t, err)
	assert.Equal(t, consultation.ID, traitement.ConsultationID)

	// The reloaded dossier carries the full chain.
	reloaded, err := f.svc.GetByID(ctx, dossier.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Consultations, 1)
	require.Len(t, reloaded.Consultations[0].Traitements, 1)
	assert.Equal(t, "Paracétamol", reloaded.Consultations[0].Traitements[0].Medicament)

	diagnostic := "Angine bactérienne"
	updated, err := f.svc.UpdateConsultation(ctx, consultation.ID, dto.UpdateConsultationInput{Diagnostic: &diagnostic})
	require.NoError(t, err)
	assert.Equal(t, diagnostic, updated.Diagnostic)
	assert.Equal(t, "Repos conseillé", updated.Notes)

	require.NoError(t, f.svc.DeleteTraitement(ctx, traitement.ID))
	assert.ErrorIs(t, f.svc.DeleteTraitement(ctx, traitement.ID), apperror.ErrNotFound)
}

func TestDossierAddConsultationUnknownDossier(t *testing.T) {
	f := newDossierFixture(t)

	_, err := f.svc.AddConsultation(context.Background(), 9999, dto.CreateConsultationInput{
		Date:       time.Now(),
		Diagnostic: "x",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCheckDossierAccess(t *testing.T) {
	f := newDossierFixture(t)
	dossier, err := f.svc.Create(context.Background(), dto.CreateDossierInput{
		PatientID: f.patient.ID, MedecinID: f.medecin.ID,
	})
	require.NoError(t, err)

	assert.NoError(t, service.CheckDossierAccess(dossier, f.patient.ID, model.RolePatient))
	assert.NoError(t, service.CheckDossierAccess(dossier, f.medecin.ID, model.RoleMedecin))
	assert.NoError(t, service.CheckDossierAccess(dossier, 42, model.RoleSecretaire))
	assert.NoError(t, service.CheckDossierAccess(dossier, 42, model.RoleAdmin))

	// A stranger gets not-found, never forbidden: the record's existence
	// stays hidden.
	assert.ErrorIs(t, service.CheckDossierAccess(dossier, 42, model.RolePatient), apperror.ErrNotFound)
	assert.ErrorIs(t, service.CheckDossierAccess(dossier, 42, model.RoleMedecin), apperror.ErrNotFound)
}
