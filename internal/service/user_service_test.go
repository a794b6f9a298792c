package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/apperror"
	commonDto "cabinet-service/pkg/dto"
)

func newUserService(t *testing.T) (service.UserService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	for _, name := range []string{model.RoleAdmin, model.RoleMedecin, model.RoleSecretaire, model.RolePatient, model.RoleUser} {
		seedRole(t, db, name)
	}
	repo := repository.NewUserRepository(db)
	return service.NewUserService(repo, nil, service.NewSearchService(nil)), db
}

func TestCreateUserGeneratesProvisionalPassword(t *testing.T) {
	svc, db := newUserService(t)

	created, err := svc.CreateUser(context.Background(), dto.CreateUserInput{
		Nom: "Martin", Prenom: "Alice", Email: "a.martin@example.com",
		Role: model.RolePatient,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ProvisionalPassword)
	assert.True(t, created.User.EstActif)

	// The subtype row exists and the hash is not the raw password.
	var patient model.Patient
	require.NoError(t, db.First(&patient, "user_id = ?", created.User.ID).Error)
	var user model.User
	require.NoError(t, db.First(&user, created.User.ID).Error)
	assert.NotEqual(t, created.ProvisionalPassword, user.PasswordHash)
}

func TestCreateUserKeepsGivenPassword(t *testing.T) {
	svc, _ := newUserService(t)

	created, err := svc.CreateUser(context.Background(), dto.CreateUserInput{
		Nom: "Durand", Prenom: "Paul", Email: "p.durand@cabinet.local",
		Password: "secret-fort", Role: model.RoleMedecin, Specialite: "Cardiologie",
	})
	require.NoError(t, err)

	assert.Empty(t, created.ProvisionalPassword)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	input := dto.CreateUserInput{
		Nom: "Martin", Prenom: "Alice", Email: "a.martin@example.com",
		Role: model.RolePatient,
	}
	_, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, input)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.CreateUser(context.Background(), dto.CreateUserInput{
		Nom: "Martin", Prenom: "Alice", Email: "a.martin@example.com",
		Role: "SUPERVISEUR",
	})
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
}

func TestListMedecinsOnlyActive(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserInput{
		Nom: "Durand", Prenom: "Paul", Email: "p.durand@cabinet.local",
		Role: model.RoleMedecin, Specialite: "Cardiologie",
	})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, dto.CreateUserInput{
		Nom: "Petit", Prenom: "Jean", Email: "j.petit@cabinet.local",
		Role: model.RoleMedecin, Specialite: "Dermatologie",
	})
	require.NoError(t, err)

	medecins, meta, err := svc.ListMedecins(ctx, commonDto.PageFilter{})
	require.NoError(t, err)
	assert.Len(t, medecins, 2)
	assert.EqualValues(t, 2, meta.TotalItems)

	// Deactivated doctors disappear from the public list.
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", created.User.ID).
		Update("est_actif", false).Error)

	medecins, _, err = svc.ListMedecins(ctx, commonDto.PageFilter{})
	require.NoError(t, err)
	require.Len(t, medecins, 1)
	assert.Equal(t, "Petit", medecins[0].Nom)
}

func TestDeleteUserRemovesAccount(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserInput{
		Nom: "Martin", Prenom: "Alice", Email: "a.martin@example.com",
		Role: model.RolePatient,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.User.ID))

	_, err = svc.GetUser(ctx, created.User.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	err = svc.DeleteUser(ctx, created.User.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
