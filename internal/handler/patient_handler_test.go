package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
)

func setupPatientDB(t *testing.T) *gorm.DB {
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
	))
	return db
}

func patientRouter(db *gorm.DB, callerID uint, callerRole string) *gin.Engine {
	userSvc := service.NewUserService(repository.NewUserRepository(db), nil, service.NewSearchService(nil))
	h := NewPatientHandler(userSvc)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", strconv.FormatUint(uint64(callerID), 10))
		c.Set("user_role", callerRole)
		c.Next()
	})
	api.POST("/patients", h.CreatePatient)
	return router
}

func TestCreatePatientFromFrontDesk(t *testing.T) {
	db := setupPatientDB(t)
	patientRole := model.Role{Name: model.RolePatient}
	require.NoError(t, db.Create(&patientRole).Error)
	secretaireRole := model.Role{Name: model.RoleSecretaire}
	require.NoError(t, db.Create(&secretaireRole).Error)

	secretaire := model.User{
		Nom: "Durand", Prenom: "Sophie", Email: "secretaire@cabinet.local",
		PasswordHash: "x", RoleID: &secretaireRole.ID, EstActif: true,
	}
	require.NoError(t, db.Create(&secretaire).Error)

	router := patientRouter(db, secretaire.ID, model.RoleSecretaire)
	body, _ := json.Marshal(gin.H{
		"nom":       "Martin",
		"prenom":    "Alice",
		"email":     "alice.martin@test.fr",
		"telephone": "0601020304",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created model.User
	require.NoError(t, db.Preload("Role").Where("email = ?", "alice.martin@test.fr").First(&created).Error)
	// The front-desk endpoint always creates PATIENT accounts; the role
	// is not caller-controlled.
	assert.Equal(t, model.RolePatient, created.Role.Name)

	var patient model.Patient
	require.NoError(t, db.Where("user_id = ?", created.ID).First(&patient).Error)
	assert.Equal(t, "0601020304", patient.Telephone)

	var resp struct {
		Data struct {
			ProvisionalPassword string `json:"provisional_password"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ProvisionalPassword)
}

func TestCreatePatientIgnoresRoleField(t *testing.T) {
	db := setupPatientDB(t)
	patientRole := model.Role{Name: model.RolePatient}
	require.NoError(t, db.Create(&patientRole).Error)
	adminRole := model.Role{Name: model.RoleAdmin}
	require.NoError(t, db.Create(&adminRole).Error)

	router := patientRouter(db, 1, model.RoleSecretaire)
	body, _ := json.Marshal(gin.H{
		"nom":    "Petit",
		"prenom": "Jean",
		"email":  "jean.petit@test.fr",
		"role":   model.RoleAdmin,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created model.User
	require.NoError(t, db.Preload("Role").Where("email = ?", "jean.petit@test.fr").First(&created).Error)
	assert.Equal(t, model.RolePatient, created.Role.Name)
}

func TestCreatePatientRejectsInvalidBody(t *testing.T) {
	db := setupPatientDB(t)
	require.NoError(t, db.Create(&model.Role{Name: model.RolePatient}).Error)

	router := patientRouter(db, 1, model.RoleSecretaire)
	body, _ := json.Marshal(gin.H{"nom": "Martin", "prenom": "Alice", "email": "pas-un-email"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
