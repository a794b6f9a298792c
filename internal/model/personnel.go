package model

import (
	"time"
)

// PersonnelMedical couvre le personnel hors comptes applicatifs
// (infirmiers, aides-soignants, techniciens).
type PersonnelMedical struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nom       string    `gorm:"size:100;not null" json:"nom"`
	Prenom    string    `gorm:"size:100;not null" json:"prenom"`
	Fonction  string    `gorm:"size:100;not null" json:"fonction"`
	Telephone string    `gorm:"size:20" json:"telephone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type RessourceMedicale struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Nom        string    `gorm:"size:150;not null" json:"nom"`
	Type       string    `gorm:"size:100" json:"type"`
	Quantite   int       `gorm:"default:0" json:"quantite"`
	Disponible bool      `gorm:"default:true" json:"disponible"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
