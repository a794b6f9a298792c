package model

import (
	"time"
)

// DossierMedical regroupe les consultations d'un patient auprès d'un
// médecin: un dossier par couple patient/médecin.
type DossierMedical struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PatientID    uint      `gorm:"not null;uniqueIndex:idx_dossier_pair" json:"patient_id"`
	MedecinID    uint      `gorm:"not null;uniqueIndex:idx_dossier_pair" json:"medecin_id"`
	DateCreation time.Time `gorm:"autoCreateTime" json:"date_creation"`

	Patient       *Patient       `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Medecin       *Medecin       `gorm:"foreignKey:MedecinID;constraint:OnDelete:CASCADE" json:"medecin,omitempty"`
	Consultations []Consultation `gorm:"foreignKey:DossierID;constraint:OnDelete:CASCADE" json:"consultations,omitempty"`
}

type Consultation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	DossierID  uint      `gorm:"not null;index" json:"dossier_id"`
	Date       time.Time `gorm:"not null" json:"date"`
	Diagnostic string    `gorm:"type:text" json:"diagnostic"`
	Notes      string    `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	Traitements []Traitement `gorm:"foreignKey:ConsultationID;constraint:OnDelete:CASCADE" json:"traitements,omitempty"`
}

type Traitement struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConsultationID uint      `gorm:"not null;index" json:"consultation_id"`
	Medicament     string    `gorm:"size:150;not null" json:"medicament"`
	Posologie      string    `gorm:"size:255" json:"posologie"`
	Duree          string    `gorm:"size:100" json:"duree"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}
