package model

import (
	"time"
)

const (
	RoleAdmin      = "ADMIN"
	RoleMedecin    = "MEDECIN"
	RoleSecretaire = "SECRETAIRE"
	RolePatient    = "PATIENT"
	RoleUser       = "USER"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nom          string    `gorm:"size:100;not null" json:"nom"`
	Prenom       string    `gorm:"size:100;not null" json:"prenom"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	RoleID       *uint     `json:"role_id"`
	Role         Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	EstActif     bool      `gorm:"default:true" json:"est_actif"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Medecin    *Medecin    `gorm:"constraint:OnDelete:CASCADE" json:"medecin,omitempty"`
	Patient    *Patient    `gorm:"constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Secretaire *Secretaire `gorm:"constraint:OnDelete:CASCADE" json:"secretaire,omitempty"`
	Admin      *Admin      `gorm:"constraint:OnDelete:CASCADE" json:"admin,omitempty"`
}

// FullName is the display form used in notification and chatbot messages.
func (u User) FullName() string {
	return u.Prenom + " " + u.Nom
}

// Role-specific extensions share the user's primary key: one row per user,
// keyed on the account's role.

type Medecin struct {
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	Specialite string    `gorm:"size:100;not null" json:"specialite"`
	Telephone  string    `gorm:"size:20" json:"telephone"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Patient struct {
	UserID        uint       `gorm:"primaryKey" json:"user_id"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	Adresse       string     `gorm:"size:255" json:"adresse"`
	Telephone     string     `gorm:"size:20" json:"telephone"`
	NumeroSecu    string     `gorm:"size:30" json:"numero_secu"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Secretaire struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	Telephone string    `gorm:"size:20" json:"telephone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type Admin struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
