package dto

import "time"

type CreateDossierInput struct {
	PatientID uint `json:"patient_id" binding:"required"`
	MedecinID uint `json:"medecin_id" binding:"required"`
}

type CreateConsultationInput struct {
	Date       time.Time `json:"date" binding:"required"`
	Diagnostic string    `json:"diagnostic" binding:"required"`
	Notes      string    `json:"notes"`
}

type UpdateConsultationInput struct {
	Diagnostic *string `json:"diagnostic"`
	Notes      *string `json:"notes"`
}

type CreateTraitementInput struct {
	Medicament string `json:"medicament" binding:"required,max=150"`
	Posologie  string `json:"posologie" binding:"max=255"`
	Duree      string `json:"duree" binding:"max=100"`
}

type CreateRessourceInput struct {
	Nom        string `json:"nom" binding:"required,max=150"`
	Type       string `json:"type" binding:"max=100"`
	Quantite   int    `json:"quantite" binding:"min=0"`
	Disponible *bool  `json:"disponible"`
}

type CreatePersonnelInput struct {
	Nom       string `json:"nom" binding:"required,max=100"`
	Prenom    string `json:"prenom" binding:"required,max=100"`
	Fonction  string `json:"fonction" binding:"required,max=100"`
	Telephone string `json:"telephone" binding:"max=20"`
}
