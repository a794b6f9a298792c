package model

import (
	"time"
)

// Types de notification émis par les services.
const (
	NotifRappelRDV    = "Rappel RDV"
	NotifConfirmation = "Confirmation"
	NotifAnnulation   = "Annulation"
	NotifNouveauRDV   = "Nouveau RDV"
	NotifSucces       = "Succès"
	NotifErreur       = "Erreur"
)

type Notification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Type         string    `gorm:"size:50;not null" json:"type"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	DateCreation time.Time `gorm:"autoCreateTime;index" json:"date_creation"`
	EstLue       bool      `gorm:"default:false" json:"est_lue"`
	// RendezVousID is nullable: deleting the appointment keeps the
	// notification, deleting the user removes it.
	RendezVousID *uint `gorm:"index" json:"rendez_vous_id,omitempty"`
	UserID       uint  `gorm:"not null;index" json:"user_id"`

	RendezVous *RendezVous `gorm:"foreignKey:RendezVousID;constraint:OnDelete:SET NULL" json:"rendez_vous,omitempty"`
	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
