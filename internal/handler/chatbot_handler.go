package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/response"
	"cabinet-service/pkg/validator"
)

type ChatbotHandler struct {
	service     service.ChatbotService
	redisClient *redis.Client
	rateLimit   time.Duration
}

func NewChatbotHandler(svc service.ChatbotService, redisClient *redis.Client, rateLimit time.Duration) *ChatbotHandler {
	return &ChatbotHandler{
		service:     svc,
		redisClient: redisClient,
		rateLimit:   rateLimit,
	}
}

func (h *ChatbotHandler) SendMessage(c *gin.Context) {
	var input dto.ChatMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	role := response.GetUserRole(c)

	allowed, err := service.CheckAndSetRateLimit(c.Request.Context(), h.redisClient, userID, "chatbot", h.rateLimit)
	if err == nil && !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "trop de messages, patientez un instant"})
		return
	}

	resp := h.service.Respond(c.Request.Context(), input.Message, userID, role)
	c.JSON(http.StatusOK, gin.H{"success": true, "response": resp})
}

func (h *ChatbotHandler) GetSuggestions(c *gin.Context) {
	role := response.GetUserRole(c)
	c.JSON(http.StatusOK, gin.H{"suggestions": h.service.Suggestions(role)})
}

func (h *ChatbotHandler) GetWelcomeMessage(c *gin.Context) {
	role := response.GetUserRole(c)
	c.JSON(http.StatusOK, gin.H{"response": h.service.WelcomeMessage(role)})
}
