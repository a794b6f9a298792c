package dto

import "time"

type NotificationResponse struct {
	ID           uint                `json:"id"`
	Type         string              `json:"type"`
	Message      string              `json:"message"`
	DateCreation time.Time           `json:"date_creation"`
	EstLue       bool                `json:"est_lue"`
	RendezVous   *RendezVousResponse `json:"rendez_vous,omitempty"`
}

type ReminderRunResponse struct {
	RendezVousExamines int `json:"rendez_vous_examines"`
	RappelsCrees       int `json:"rappels_crees"`
	RendezVousIgnores  int `json:"rendez_vous_ignores"`
}
