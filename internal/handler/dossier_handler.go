package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	commonDto "cabinet-service/pkg/dto"
	"cabinet-service/pkg/response"
	"cabinet-service/pkg/validator"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/service"
)

type DossierHandler struct {
	service service.DossierService
}

func NewDossierHandler(svc service.DossierService) *DossierHandler {
	return &DossierHandler{service: svc}
}

func (h *DossierHandler) CreateDossier(c *gin.Context) {
	var input dto.CreateDossierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	dossier, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": dossier})
}

func (h *DossierHandler) GetDossiers(c *gin.Context) {
	var filter commonDto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	patientID := queryUint(c, "patient_id")
	medecinID := queryUint(c, "medecin_id")

	// A doctor only browses their own files; a patient their own record.
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	switch response.GetUserRole(c) {
	case model.RoleMedecin:
		medecinID = userID
	case model.RolePatient:
		patientID = userID
	}

	dossiers, meta, err := h.service.List(c.Request.Context(), filter, patientID, medecinID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dossiers, "meta": meta})
}

func (h *DossierHandler) GetDossier(c *gin.Context) {
	dossier, err := h.loadOwned(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dossier})
}

func (h *DossierHandler) DeleteDossier(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "dossier supprimé"})
}

func (h *DossierHandler) AddConsultation(c *gin.Context) {
	dossier, err := h.loadOwned(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateConsultationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	consultation, err := h.service.AddConsultation(c.Request.Context(), dossier.ID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": consultation})
}

func (h *DossierHandler) UpdateConsultation(c *gin.Context) {
	id, err := parseIDParam(c, "consultationId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateConsultationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	consultation, err := h.service.UpdateConsultation(c.Request.Context(), id, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": consultation})
}

func (h *DossierHandler) DeleteConsultation(c *gin.Context) {
	id, err := parseIDParam(c, "consultationId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteConsultation(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "consultation supprimée"})
}

func (h *DossierHandler) AddTraitement(c *gin.Context) {
	consultationID, err := parseIDParam(c, "consultationId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.CreateTraitementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	traitement, err := h.service.AddTraitement(c.Request.Context(), consultationID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": traitement})
}

func (h *DossierHandler) DeleteTraitement(c *gin.Context) {
	id, err := parseIDParam(c, "traitementId")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.DeleteTraitement(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "traitement supprimé"})
}

func (h *DossierHandler) loadOwned(c *gin.Context) (*model.DossierMedical, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	dossier, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		return nil, err
	}

	if err := service.CheckDossierAccess(dossier, userID, response.GetUserRole(c)); err != nil {
		return nil, err
	}

	return dossier, nil
}

func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}
