package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cabinet-service/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Medecin{},
		&model.Patient{},
		&model.Secretaire{},
		&model.Admin{},
		&model.RendezVous{},
		&model.Notification{},
		&model.DossierMedical{},
		&model.Consultation{},
		&model.Traitement{},
	))
	return db
}

func seedRole(t *testing.T, db *gorm.DB, name string) model.Role {
	t.Helper()
	role := model.Role{Name: name}
	require.NoError(t, db.Create(&role).Error)
	return role
}

func seedMedecin(t *testing.T, db *gorm.DB, role model.Role, nom, prenom, email string) model.User {
	t.Helper()
	user := model.User{
		Nom: nom, Prenom: prenom, Email: email,
		PasswordHash: "x", RoleID: &role.ID, EstActif: true,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&model.Medecin{UserID: user.ID, Specialite: "Généraliste"}).Error)
	return user
}

func seedPatient(t *testing.T, db *gorm.DB, role model.Role, nom, prenom, email string) model.User {
	t.Helper()
	user := model.User{
		Nom: nom, Prenom: prenom, Email: email,
		PasswordHash: "x", RoleID: &role.ID, EstActif: true,
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&model.Patient{UserID: user.ID}).Error)
	return user
}
