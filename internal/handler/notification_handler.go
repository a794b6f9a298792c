package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/apperror"
	"cabinet-service/pkg/response"
)

// recentPreviewSize caps the dropdown preview; the service itself does not
// cap unread listings.
const recentPreviewSize = 5

type NotificationHandler struct {
	service     service.NotificationService
	reminderSvc service.ReminderService
	redisClient *redis.Client
	upgrader    websocket.Upgrader
}

func NewNotificationHandler(svc service.NotificationService, reminderSvc service.ReminderService, redisClient *redis.Client) *NotificationHandler {
	return &NotificationHandler{
		service:     svc,
		reminderSvc: reminderSvc,
		redisClient: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func buildNotificationResponse(n model.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:           n.ID,
		Type:         n.Type,
		Message:      n.Message,
		DateCreation: n.DateCreation,
		EstLue:       n.EstLue,
	}
	if n.RendezVous != nil {
		rdv := *n.RendezVous
		rdvResp := dto.RendezVousResponse{
			ID:        rdv.ID,
			DateHeure: rdv.DateHeure,
			Statut:    rdv.Statut,
			Motif:     rdv.Motif,
			MedecinID: rdv.MedecinID,
			PatientID: rdv.PatientID,
			UpdatedAt: rdv.UpdatedAt,
		}
		if rdv.Medecin != nil && rdv.Medecin.User != nil {
			rdvResp.Medecin = "Dr " + rdv.Medecin.User.Nom
		}
		if rdv.Patient != nil && rdv.Patient.User != nil {
			rdvResp.Patient = rdv.Patient.User.FullName()
		}
		resp.RendezVous = &rdvResp
	}
	return resp
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	notifications, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	data := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, buildNotificationResponse(n))
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *NotificationHandler) GetRecent(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	notifications, err := h.service.ListUnread(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if len(notifications) > recentPreviewSize {
		notifications = notifications[:recentPreviewSize]
	}

	data := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		data = append(data, buildNotificationResponse(n))
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	count, err := h.service.CountUnread(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// requireOwned enforces the ownership boundary the service deliberately
// leaves to its callers: a notification id belonging to someone else is
// indistinguishable from a missing one.
func (h *NotificationHandler) requireOwned(c *gin.Context, id uint) bool {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return false
	}

	notification, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return false
	}
	if notification.UserID != userID {
		response.ResponseError(c, apperror.ErrNotFound)
		return false
	}
	return true
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !h.requireOwned(c, id) {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if !h.requireOwned(c, id) {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateReminders triggers the daily reminder batch. The route is
// ADMIN-only; an external scheduler is expected to call it once a day.
func (h *NotificationHandler) CreateReminders(c *gin.Context) {
	result, err := h.reminderSvc.GenerateReminders(c.Request.Context(), time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}

// HandleWebSocket upgrades the connection and forwards the user's redis
// notification channel until either side goes away.
func (h *NotificationHandler) HandleWebSocket(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket: %v", err)
		return
	}
	defer conn.Close()

	if h.redisClient == nil {
		log.Println("redis client is nil, cannot subscribe")
		return
	}

	channel := service.NotificationChannel(userID)
	pubsub := h.redisClient.Subscribe(c.Request.Context(), channel)
	defer pubsub.Close()

	if _, err = pubsub.Receive(c.Request.Context()); err != nil {
		log.Printf("failed to subscribe to redis channel: %v", err)
		return
	}

	ch := pubsub.Channel()

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				log.Printf("failed to write message to websocket: %v", err)
				return
			}
		case <-clientClosed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
