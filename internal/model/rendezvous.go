package model

import (
	"time"
)

// Statuts possibles d'un rendez-vous.
const (
	StatutEnAttente = "En attente"
	StatutConfirme  = "Confirmé"
	StatutAnnule    = "Annulé"
	StatutTermine   = "Terminé"
)

type RendezVous struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DateHeure time.Time `gorm:"not null;index" json:"date_heure"`
	Statut    string    `gorm:"size:20;not null;default:'En attente'" json:"statut"`
	Motif     string    `gorm:"size:255" json:"motif"`
	MedecinID uint      `gorm:"not null;index" json:"medecin_id"`
	PatientID uint      `gorm:"not null;index" json:"patient_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Medecin *Medecin `gorm:"foreignKey:MedecinID;constraint:OnDelete:CASCADE" json:"medecin,omitempty"`
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}
