package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commonDto "cabinet-service/pkg/dto"
	"cabinet-service/pkg/response"
	"cabinet-service/pkg/validator"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/service"
)

type PatientHandler struct {
	userService service.UserService
}

func NewPatientHandler(userService service.UserService) *PatientHandler {
	return &PatientHandler{userService: userService}
}

// CreatePatient registers a patient account from the front desk. Unlike
// the admin user endpoint the role is not caller-controlled.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var input dto.CreatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.userService.CreateUser(c.Request.Context(), dto.CreateUserInput{
		Nom:           input.Nom,
		Prenom:        input.Prenom,
		Email:         input.Email,
		Password:      input.Password,
		Role:          model.RolePatient,
		Telephone:     input.Telephone,
		DateNaissance: input.DateNaissance,
		Adresse:       input.Adresse,
		NumeroSecu:    input.NumeroSecu,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

func (h *PatientHandler) GetPatients(c *gin.Context) {
	var filter commonDto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	patients, meta, err := h.userService.ListPatients(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": patients, "meta": meta})
}

func (h *PatientHandler) GetPatient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	patient, err := h.userService.GetPatient(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": patient})
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdatePatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	if err := h.userService.UpdatePatient(c.Request.Context(), id, input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "patient mis à jour"})
}
