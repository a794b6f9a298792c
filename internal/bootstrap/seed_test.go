package bootstrap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cabinet-service/internal/bootstrap"
	"cabinet-service/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	return db
}

func TestSeedRolesIdempotent(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, bootstrap.SeedRoles(db))
	require.NoError(t, bootstrap.SeedRoles(db))

	var count int64
	require.NoError(t, db.Model(&model.Role{}).Count(&count).Error)
	assert.EqualValues(t, 5, count)

	for _, name := range []string{model.RoleAdmin, model.RoleMedecin, model.RoleSecretaire, model.RolePatient, model.RoleUser} {
		var role model.Role
		assert.NoError(t, db.Where("name = ?", name).First(&role).Error, name)
	}
}

func TestSeedAdminUserIdempotent(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, bootstrap.SeedRoles(db))

	require.NoError(t, bootstrap.SeedAdminUser(db))
	require.NoError(t, bootstrap.SeedAdminUser(db))

	var count int64
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "admin@cabinet.local").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var user model.User
	require.NoError(t, db.Preload("Role").Preload("Admin").Where("email = ?", "admin@cabinet.local").First(&user).Error)
	assert.Equal(t, model.RoleAdmin, user.Role.Name)
	assert.NotNil(t, user.Admin)
	assert.True(t, user.EstActif)
}

func TestSeedAdminUserRequiresRoles(t *testing.T) {
	db := setupDB(t)

	assert.Error(t, bootstrap.SeedAdminUser(db))
}
