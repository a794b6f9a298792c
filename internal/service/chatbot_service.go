package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cabinet-service/internal/dto"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
)

// ChatbotService is a stateless keyword dispatcher: each call matches the
// normalized input against ordered keyword groups and returns a canned
// response, sometimes enriched with a data lookup. No conversation state
// is kept across calls.
type ChatbotService interface {
	Respond(ctx context.Context, message string, userID uint, role string) dto.ChatResponse
	Suggestions(role string) []string
	WelcomeMessage(role string) dto.ChatResponse
}

type chatbotService struct {
	rdvRepo  repository.RendezVousRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewChatbotService(rdvRepo repository.RendezVousRepository, userRepo repository.UserRepository) ChatbotService {
	return &chatbotService{
		rdvRepo:  rdvRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func containsAny(message string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

func isStaff(role string) bool {
	switch role {
	case model.RoleMedecin, model.RoleSecretaire, model.RoleAdmin:
		return true
	}
	return false
}

func quickActions(role string) []dto.ChatAction {
	if isStaff(role) {
		return []dto.ChatAction{
			{Label: "Agenda", URL: "/rendezvous"},
			{Label: "Patients", URL: "/patients"},
			{Label: "Ressources", URL: "/ressources"},
			{Label: "Notifications", URL: "/notifications"},
		}
	}
	return []dto.ChatAction{
		{Label: "Mes rendez-vous", URL: "/rendezvous"},
		{Label: "Prendre rendez-vous", URL: "/rendezvous/nouveau"},
		{Label: "Mon dossier", URL: "/dossiers"},
		{Label: "Notifications", URL: "/notifications"},
	}
}

// Respond evaluates the keyword groups in priority order; the first match
// wins. The role only changes which quick actions are offered, never the
// matching itself.
func (s *chatbotService) Respond(ctx context.Context, message string, userID uint, role string) dto.ChatResponse {
	msg := normalize(message)

	switch {
	case containsAny(msg, "bonjour", "bonsoir", "salut", "coucou", "hello"):
		return dto.ChatResponse{
			Message: "Bonjour ! Je suis l'assistant du cabinet. Comment puis-je vous aider ?",
			Type:    "info",
			Actions: quickActions(role),
		}

	case containsAny(msg, "annuler", "annulation", "reporter", "décaler", "decaler"):
		return dto.ChatResponse{
			Message: "Pour annuler ou reporter un rendez-vous, ouvrez la liste de vos rendez-vous et choisissez celui concerné. Une annulation est définitive.",
			Type:    "warning",
			Actions: []dto.ChatAction{
				{Label: "Mes rendez-vous", URL: "/rendezvous"},
			},
		}

	case containsAny(msg, "prendre rendez-vous", "prendre rdv", "nouveau rendez-vous", "nouveau rdv", "réserver", "reserver"):
		return dto.ChatResponse{
			Message: "Vous pouvez prendre rendez-vous en ligne en choisissant un médecin et un créneau.",
			Type:    "info",
			Actions: []dto.ChatAction{
				{Label: "Prendre rendez-vous", URL: "/rendezvous/nouveau"},
			},
		}

	case containsAny(msg, "prochain", "mon rendez-vous", "mon rdv", "quand est", "rendez-vous", "rdv"):
		return s.nextAppointment(ctx, userID, role)

	case containsAny(msg, "médecin", "medecin", "docteur", "spécialiste", "specialiste"):
		return s.doctorList(ctx, role)

	case containsAny(msg, "dossier", "consultation", "traitement", "ordonnance", "résultat", "resultat"):
		return dto.ChatResponse{
			Message: "Votre dossier médical regroupe vos consultations et traitements. Il est consultable en ligne et modifiable uniquement par votre médecin.",
			Type:    "info",
			Actions: []dto.ChatAction{
				{Label: "Mon dossier", URL: "/dossiers"},
			},
		}

	case containsAny(msg, "contact", "téléphone", "telephone", "adresse", "horaires", "joindre", "email"):
		return dto.ChatResponse{
			Message: "Le cabinet est ouvert du lundi au vendredi de 8h à 19h, le samedi de 9h à 12h. Téléphone : 01 23 45 67 89.",
			Type:    "info",
			Actions: nil,
		}

	case containsAny(msg, "urgence", "urgent", "grave", "samu"):
		return dto.ChatResponse{
			Message: "En cas d'urgence vitale, appelez immédiatement le 15 (SAMU) ou le 112. Ce service en ligne ne traite pas les urgences.",
			Type:    "error",
			Actions: nil,
		}

	case containsAny(msg, "aide", "aidez-moi", "comment faire", "help"):
		return dto.ChatResponse{
			Message: "Je peux vous renseigner sur vos rendez-vous, les médecins du cabinet, votre dossier médical et les coordonnées du cabinet.",
			Type:    "info",
			Actions: quickActions(role),
		}

	case containsAny(msg, "merci"):
		return dto.ChatResponse{
			Message: "Avec plaisir ! N'hésitez pas si vous avez d'autres questions.",
			Type:    "info",
		}

	case containsAny(msg, "au revoir", "à bientôt", "a bientot", "bonne journée", "bonne journee", "bye"):
		return dto.ChatResponse{
			Message: "Au revoir, prenez soin de vous !",
			Type:    "info",
		}

	default:
		return dto.ChatResponse{
			Message: "Je n'ai pas compris votre demande. Voici ce que je peux faire pour vous :",
			Type:    "info",
			Actions: quickActions(role),
		}
	}
}

func (s *chatbotService) nextAppointment(ctx context.Context, userID uint, role string) dto.ChatResponse {
	if userID == 0 || role != model.RolePatient {
		return dto.ChatResponse{
			Message: "Vous pouvez consulter l'agenda des rendez-vous depuis votre espace.",
			Type:    "info",
			Actions: []dto.ChatAction{{Label: "Rendez-vous", URL: "/rendezvous"}},
		}
	}

	rdv, err := s.rdvRepo.FindNextForPatient(ctx, userID, s.now())
	if err != nil || rdv == nil {
		// Absence of data is not an error: answer with a default.
		return dto.ChatResponse{
			Message: "Vous n'avez aucun rendez-vous à venir.",
			Type:    "info",
			Actions: []dto.ChatAction{{Label: "Prendre rendez-vous", URL: "/rendezvous/nouveau"}},
		}
	}

	medecin := "votre médecin"
	if rdv.Medecin != nil && rdv.Medecin.User != nil {
		medecin = "Dr " + rdv.Medecin.User.Nom
	}

	return dto.ChatResponse{
		Message: fmt.Sprintf("Votre prochain rendez-vous est le %s à %s avec %s (statut : %s).",
			rdv.DateHeure.Format("02/01/2006"), rdv.DateHeure.Format("15h04"), medecin, rdv.Statut),
		Type:    "info",
		Actions: []dto.ChatAction{{Label: "Mes rendez-vous", URL: "/rendezvous"}},
		Data:    rdv,
	}
}

func (s *chatbotService) doctorList(ctx context.Context, role string) dto.ChatResponse {
	medecins, err := s.userRepo.FindAllMedecins(ctx)
	if err != nil || len(medecins) == 0 {
		return dto.ChatResponse{
			Message: "La liste des médecins n'est pas disponible pour le moment.",
			Type:    "info",
		}
	}

	var lines []string
	for _, m := range medecins {
		if m.User == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("Dr %s (%s)", m.User.Nom, m.Specialite))
	}

	return dto.ChatResponse{
		Message: "Les médecins du cabinet : " + strings.Join(lines, ", ") + ".",
		Type:    "info",
		Actions: []dto.ChatAction{{Label: "Prendre rendez-vous", URL: "/rendezvous/nouveau"}},
		Data:    medecins,
	}
}

func (s *chatbotService) Suggestions(role string) []string {
	if isStaff(role) {
		return []string{
			"Quel est le planning du jour ?",
			"Liste des médecins",
			"Comment gérer les ressources ?",
			"Contact du cabinet",
		}
	}
	return []string{
		"Quand est mon prochain rendez-vous ?",
		"Je veux prendre rendez-vous",
		"Liste des médecins",
		"Comment accéder à mon dossier médical ?",
	}
}

func (s *chatbotService) WelcomeMessage(role string) dto.ChatResponse {
	return dto.ChatResponse{
		Message: "Bienvenue ! Je suis l'assistant virtuel du cabinet médical. Posez-moi une question ou choisissez une action.",
		Type:    "info",
		Actions: quickActions(role),
	}
}
