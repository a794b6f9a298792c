package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/apperror"
	"cabinet-service/pkg/response"
	"cabinet-service/pkg/validator"
)

type RendezVousHandler struct {
	service service.RendezVousService
}

func NewRendezVousHandler(svc service.RendezVousService) *RendezVousHandler {
	return &RendezVousHandler{service: svc}
}

func (h *RendezVousHandler) CreateRendezVous(c *gin.Context) {
	var input dto.CreateRendezVousInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// A patient always books for themselves; staff must name the patient.
	if response.GetUserRole(c) == model.RolePatient {
		input.PatientID = userID
	} else if input.PatientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "patient_id est obligatoire"})
		return
	}

	rdv, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": service.BuildRendezVousResponse(*rdv)})
}

func (h *RendezVousHandler) GetRendezVousList(c *gin.Context) {
	var filter dto.RendezVousFilterInput
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// Patients and doctors only see their own agenda.
	switch response.GetUserRole(c) {
	case model.RolePatient:
		filter.PatientID = userID
	case model.RoleMedecin:
		filter.MedecinID = userID
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result.Data, "meta": result.Meta})
}

func (h *RendezVousHandler) GetRendezVous(c *gin.Context) {
	rdv, err := h.loadOwned(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": service.BuildRendezVousResponse(*rdv)})
}

func (h *RendezVousHandler) UpdateRendezVous(c *gin.Context) {
	rdv, err := h.loadOwned(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.UpdateRendezVousInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), rdv.ID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": service.BuildRendezVousResponse(*updated)})
}

func (h *RendezVousHandler) ConfirmerRendezVous(c *gin.Context) {
	rdv, err := h.loadOwned(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Confirmer(c.Request.Context(), rdv.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "rendez-vous confirmé"})
}

func (h *RendezVousHandler) AnnulerRendezVous(c *gin.Context) {
	rdv, err := h.loadOwned(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Annuler(c.Request.Context(), rdv.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "rendez-vous annulé"})
}

func (h *RendezVousHandler) TerminerRendezVous(c *gin.Context) {
	rdv, err := h.loadOwned(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Terminer(c.Request.Context(), rdv.ID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "rendez-vous terminé"})
}

func (h *RendezVousHandler) DeleteRendezVous(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "rendez-vous supprimé"})
}

// loadOwned fetches the appointment and hides it from users who are
// neither a participant nor staff.
func (h *RendezVousHandler) loadOwned(c *gin.Context) (*model.RendezVous, error) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	rdv, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		return nil, err
	}

	switch response.GetUserRole(c) {
	case model.RolePatient:
		if rdv.PatientID != userID {
			return nil, apperror.ErrNotFound
		}
	case model.RoleMedecin:
		if rdv.MedecinID != userID {
			return nil, apperror.ErrNotFound
		}
	}

	return rdv, nil
}
