package dto

import "time"

// CreateUserInput covers admin and secretary account creation. Password is
// optional: when empty a provisional one is generated and returned once.
type CreateUserInput struct {
	Nom      string `json:"nom" binding:"required,min=2,max=100"`
	Prenom   string `json:"prenom" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	Role     string `json:"role" binding:"required,oneof=ADMIN MEDECIN SECRETAIRE PATIENT USER"`

	// Role-specific fields, read according to Role.
	Specialite    string     `json:"specialite"`
	Telephone     string     `json:"telephone"`
	DateNaissance *time.Time `json:"date_naissance"`
	Adresse       string     `json:"adresse"`
	NumeroSecu    string     `json:"numero_secu"`
}

// CreatePatientInput is the front-desk variant of account creation: the
// role is fixed to PATIENT so secretaries cannot mint staff accounts.
type CreatePatientInput struct {
	Nom      string `json:"nom" binding:"required,min=2,max=100"`
	Prenom   string `json:"prenom" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8"`

	Telephone     string     `json:"telephone"`
	DateNaissance *time.Time `json:"date_naissance"`
	Adresse       string     `json:"adresse"`
	NumeroSecu    string     `json:"numero_secu"`
}

type UpdateUserInput struct {
	Nom      *string `json:"nom" binding:"omitempty,min=2,max=100"`
	Prenom   *string `json:"prenom" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	EstActif *bool   `json:"est_actif"`
}

type CreatedUserResponse struct {
	User UserResponse `json:"user"`
	// ProvisionalPassword is only set when the server generated one.
	ProvisionalPassword string `json:"provisional_password,omitempty"`
}

type MedecinResponse struct {
	UserID     uint   `json:"user_id"`
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Email      string `json:"email"`
	Specialite string `json:"specialite"`
	Telephone  string `json:"telephone"`
}

type PatientResponse struct {
	UserID        uint       `json:"user_id"`
	Nom           string     `json:"nom"`
	Prenom        string     `json:"prenom"`
	Email         string     `json:"email"`
	DateNaissance *time.Time `json:"date_naissance,omitempty"`
	Adresse       string     `json:"adresse"`
	Telephone     string     `json:"telephone"`
	NumeroSecu    string     `json:"numero_secu"`
}

type UpdateMedecinInput struct {
	Specialite *string `json:"specialite" binding:"omitempty,min=2,max=100"`
	Telephone  *string `json:"telephone"`
}

type UpdatePatientInput struct {
	DateNaissance *time.Time `json:"date_naissance"`
	Adresse       *string    `json:"adresse"`
	Telephone     *string    `json:"telephone"`
	NumeroSecu    *string    `json:"numero_secu"`
}
