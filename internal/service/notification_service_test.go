package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/apperror"
)

func newNotificationService(t *testing.T) (service.NotificationService, *testFixtures) {
	t.Helper()
	db := setupTestDB(t)
	roleMedecin := seedRole(t, db, model.RoleMedecin)
	rolePatient := seedRole(t, db, model.RolePatient)
	medecin := seedMedecin(t, db, roleMedecin, "Durand", "Paul", "p.durand@cabinet.local")
	patient := seedPatient(t, db, rolePatient, "Martin", "Alice", "a.martin@example.com")

	repo := repository.NewNotificationRepository(db)
	return service.NewNotificationService(repo, nil), &testFixtures{medecin: medecin, patient: patient}
}

type testFixtures struct {
	medecin model.User
	patient model.User
}

func TestNotificationCreateDefaults(t *testing.T) {
	svc, fx := newNotificationService(t)
	ctx := context.Background()

	notif, err := svc.Create(ctx, nil, model.NotifSucces, "Votre compte a été créé.", fx.patient.ID)
	require.NoError(t, err)

	assert.False(t, notif.EstLue)
	assert.False(t, notif.DateCreation.IsZero())
	assert.Equal(t, model.NotifSucces, notif.Type)
	assert.Nil(t, notif.RendezVousID)
}

func TestNotificationInboxOrderedAndCapped(t *testing.T) {
	svc, fx := newNotificationService(t)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		_, err := svc.Create(ctx, nil, model.NotifSucces, fmt.Sprintf("notification %d", i), fx.patient.ID)
		require.NoError(t, err)
	}

	notifs, err := svc.ListForUser(ctx, fx.patient.ID)
	require.NoError(t, err)
	assert.Len(t, notifs, 50)

	for i := 1; i < len(notifs); i++ {
		assert.False(t, notifs[i].DateCreation.After(notifs[i-1].DateCreation),
			"inbox must be ordered newest first")
	}
}

func TestNotificationUnreadLifecycle(t *testing.T) {
	svc, fx := newNotificationService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, nil, model.NotifConfirmation, "RDV confirmé", fx.patient.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil, model.NotifAnnulation, "RDV annulé", fx.patient.ID)
	require.NoError(t, err)
	// Noise for another user must not leak into the count.
	_, err = svc.Create(ctx, nil, model.NotifNouveauRDV, "Nouvelle demande", fx.medecin.ID)
	require.NoError(t, err)

	count, err := svc.CountUnread(ctx, fx.patient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, svc.MarkRead(ctx, first.ID))
	count, err = svc.CountUnread(ctx, fx.patient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Marking twice stays a no-op.
	require.NoError(t, svc.MarkRead(ctx, first.ID))

	require.NoError(t, svc.MarkAllRead(ctx, fx.patient.ID))
	count, err = svc.CountUnread(ctx, fx.patient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// The doctor's inbox is untouched.
	count, err = svc.CountUnread(ctx, fx.medecin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestNotificationGetByIDNotFound(t *testing.T) {
	svc, _ := newNotificationService(t)

	_, err := svc.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNotificationDeleteIdempotent(t *testing.T) {
	svc, fx := newNotificationService(t)
	ctx := context.Background()

	notif, err := svc.Create(ctx, nil, model.NotifErreur, "Échec de l'envoi", fx.patient.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, notif.ID))
	require.NoError(t, svc.Delete(ctx, notif.ID))

	_, err = svc.GetByID(ctx, notif.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
