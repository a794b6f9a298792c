package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/apperror"
)

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	role := seedRole(t, db, model.RolePatient)

	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := model.User{
		Nom: "Martin", Prenom: "Alice", Email: "a.martin@example.com",
		PasswordHash: string(hash), RoleID: &role.ID, EstActif: true,
	}
	require.NoError(t, db.Create(&user).Error)

	svc := service.NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginInput{Email: "a.martin@example.com", Password: "motdepasse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, model.RolePatient, resp.User.Role)

	_, err = svc.Login(ctx, dto.LoginInput{Email: "a.martin@example.com", Password: "mauvais"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = svc.Login(ctx, dto.LoginInput{Email: "inconnu@example.com", Password: "motdepasse"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLoginDisabledAccount(t *testing.T) {
	db := setupTestDB(t)
	role := seedRole(t, db, model.RolePatient)

	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := model.User{
		Nom: "Martin", Prenom: "Alice", Email: "a.martin@example.com",
		PasswordHash: string(hash), RoleID: &role.ID, EstActif: true,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Model(&user).Update("est_actif", false).Error)

	svc := service.NewAuthService(repository.NewUserRepository(db))

	_, err = svc.Login(context.Background(), dto.LoginInput{Email: "a.martin@example.com", Password: "motdepasse"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}
