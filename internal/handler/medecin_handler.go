package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	commonDto "cabinet-service/pkg/dto"
	"cabinet-service/pkg/response"
	"cabinet-service/pkg/validator"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/service"
)

type MedecinHandler struct {
	userService service.UserService
	searchSvc   service.SearchService
}

func NewMedecinHandler(userService service.UserService, searchSvc service.SearchService) *MedecinHandler {
	return &MedecinHandler{userService: userService, searchSvc: searchSvc}
}

func (h *MedecinHandler) GetMedecins(c *gin.Context) {
	var filter commonDto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	medecins, meta, err := h.userService.ListMedecins(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": medecins, "meta": meta})
}

func (h *MedecinHandler) GetMedecin(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	medecin, err := h.userService.GetMedecin(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": medecin})
}

func (h *MedecinHandler) UpdateMedecin(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateMedecinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	if err := h.userService.UpdateMedecin(c.Request.Context(), id, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "médecin mis à jour"})
}

// SearchMedecins queries the search index by name or speciality.
func (h *MedecinHandler) SearchMedecins(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "le paramètre q est obligatoire"})
		return
	}

	hits, err := h.searchSvc.SearchMedecins(query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": hits})
}
