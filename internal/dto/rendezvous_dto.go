package dto

import (
	"time"

	commonDto "cabinet-service/pkg/dto"
)

type CreateRendezVousInput struct {
	DateHeure time.Time `json:"date_heure" binding:"required"`
	MedecinID uint      `json:"medecin_id" binding:"required"`
	PatientID uint      `json:"patient_id"`
	Motif     string    `json:"motif" binding:"max=255"`
}

type UpdateRendezVousInput struct {
	DateHeure *time.Time `json:"date_heure"`
	Motif     *string    `json:"motif" binding:"omitempty,max=255"`
	// UpdatedAt must carry the value the client last read; a mismatch
	// means someone else changed the appointment in between.
	UpdatedAt time.Time `json:"updated_at" binding:"required"`
}

type RendezVousFilterInput struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	Statut    string `form:"statut" binding:"omitempty,oneof='En attente' 'Confirmé' 'Annulé' 'Terminé'"`
	MedecinID uint   `form:"medecin_id"`
	PatientID uint   `form:"patient_id"`
}

type RendezVousResponse struct {
	ID        uint      `json:"id"`
	DateHeure time.Time `json:"date_heure"`
	Statut    string    `json:"statut"`
	Motif     string    `json:"motif"`
	Medecin   string    `json:"medecin"`
	Patient   string    `json:"patient"`
	MedecinID uint      `json:"medecin_id"`
	PatientID uint      `json:"patient_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaginatedRendezVousResponse struct {
	Data []RendezVousResponse     `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
