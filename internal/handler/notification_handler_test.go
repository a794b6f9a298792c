package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
)

func setupNotificationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Medecin{},
		&model.Patient{},
		&model.RendezVous{},
		&model.Notification{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role model.Role, email string) model.User {
	t.Helper()
	user := model.User{
		Nom: "Martin", Prenom: "Alice", Email: email,
		PasswordHash: "x", RoleID: &role.ID, EstActif: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// notificationRouter wires the notification routes behind a stub auth
// layer that injects the given user into the request context.
func notificationRouter(db *gorm.DB, userID uint) *gin.Engine {
	notifSvc := service.NewNotificationService(repository.NewNotificationRepository(db), nil)
	h := NewNotificationHandler(notifSvc, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", strconv.FormatUint(uint64(userID), 10))
		c.Set("user_role", model.RolePatient)
		c.Next()
	})
	api.GET("/notifications/recentes", h.GetRecent)
	api.PUT("/notifications/:id/read", h.MarkAsRead)
	api.DELETE("/notifications/:id", h.Delete)
	return router
}

func TestMarkAsReadForeignNotificationLooksMissing(t *testing.T) {
	db := setupNotificationDB(t)
	role := model.Role{Name: model.RolePatient}
	require.NoError(t, db.Create(&role).Error)
	owner := seedUser(t, db, role, "owner@test.fr")
	intruder := seedUser(t, db, role, "intruder@test.fr")

	notification := model.Notification{Type: model.NotifConfirmation, Message: "Votre rendez-vous est confirmé.", UserID: owner.ID}
	require.NoError(t, db.Create(&notification).Error)

	router := notificationRouter(db, intruder.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", notification.ID), nil)
	router.ServeHTTP(w, req)

	// Someone else's notification is indistinguishable from a missing one.
	assert.Equal(t, http.StatusNotFound, w.Code)

	var stored model.Notification
	require.NoError(t, db.First(&stored, notification.ID).Error)
	assert.False(t, stored.EstLue)
}

func TestDeleteForeignNotificationLooksMissing(t *testing.T) {
	db := setupNotificationDB(t)
	role := model.Role{Name: model.RolePatient}
	require.NoError(t, db.Create(&role).Error)
	owner := seedUser(t, db, role, "owner@test.fr")
	intruder := seedUser(t, db, role, "intruder@test.fr")

	notification := model.Notification{Type: model.NotifAnnulation, Message: "Votre rendez-vous a été annulé.", UserID: owner.ID}
	require.NoError(t, db.Create(&notification).Error)

	router := notificationRouter(db, intruder.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/notifications/%d", notification.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var count int64
	require.NoError(t, db.Model(&model.Notification{}).Where("id = ?", notification.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkAsReadOwnNotification(t *testing.T) {
	db := setupNotificationDB(t)
	role := model.Role{Name: model.RolePatient}
	require.NoError(t, db.Create(&role).Error)
	owner := seedUser(t, db, role, "owner@test.fr")

	notification := model.Notification{Type: model.NotifConfirmation, Message: "Votre rendez-vous est confirmé.", UserID: owner.ID}
	require.NoError(t, db.Create(&notification).Error)

	router := notificationRouter(db, owner.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", notification.ID), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var stored model.Notification
	require.NoError(t, db.First(&stored, notification.ID).Error)
	assert.True(t, stored.EstLue)
}

func TestGetRecentCapsThePreview(t *testing.T) {
	db := setupNotificationDB(t)
	role := model.Role{Name: model.RolePatient}
	require.NoError(t, db.Create(&role).Error)
	owner := seedUser(t, db, role, "owner@test.fr")

	for i := 0; i < recentPreviewSize+3; i++ {
		notification := model.Notification{
			Type:    model.NotifNouveauRDV,
			Message: fmt.Sprintf("Nouvelle demande de rendez-vous n°%d.", i+1),
			UserID:  owner.ID,
		}
		require.NoError(t, db.Create(&notification).Error)
	}

	router := notificationRouter(db, owner.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/recentes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []dto.NotificationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, recentPreviewSize)
	for _, n := range body.Data {
		assert.False(t, n.EstLue)
	}
}
