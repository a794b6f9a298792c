package server

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cabinet-service/internal/config"
	"cabinet-service/internal/handler"
	"cabinet-service/internal/middleware"
	"cabinet-service/internal/model"
	"cabinet-service/internal/repository"
	"cabinet-service/internal/service"
	"cabinet-service/pkg/storage"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	rdvRepo := repository.NewRendezVousRepository(db)
	dossierRepo := repository.NewDossierRepository(db)
	ressourceRepo := repository.NewRessourceRepository(db)

	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Printf("cloudinary storage unavailable, avatar upload disabled: %v", err)
		imageStorage = nil
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		host := cfg.MeiliSearchHost
		if !strings.HasPrefix(host, "http") {
			host = "http://" + host + ":7700"
		}
		meiliClient = meilisearch.New(host, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}
	searchSvc := service.NewSearchService(meiliClient)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo, imageStorage, searchSvc)
	notifSvc := service.NewNotificationService(notifRepo, redisClient)
	rdvSvc := service.NewRendezVousService(rdvRepo, userRepo, notifSvc)
	reminderSvc := service.NewReminderService(rdvRepo, notifRepo, notifSvc)
	chatbotSvc := service.NewChatbotService(rdvRepo, userRepo)
	dossierSvc := service.NewDossierService(dossierRepo, userRepo)
	ressourceSvc := service.NewRessourceService(ressourceRepo)

	authHandler := handler.NewAuthHandler(authSvc, userSvc)
	userHandler := handler.NewUserHandler(userSvc)
	medecinHandler := handler.NewMedecinHandler(userSvc, searchSvc)
	patientHandler := handler.NewPatientHandler(userSvc)
	rdvHandler := handler.NewRendezVousHandler(rdvSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc, reminderSvc, redisClient)
	chatbotHandler := handler.NewChatbotHandler(chatbotSvc, redisClient, cfg.ChatbotRateLimit)
	dossierHandler := handler.NewDossierHandler(dossierSvc)
	ressourceHandler := handler.NewRessourceHandler(ressourceSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/profile/me", authHandler.GetMe)
		protected.POST("/profile/avatar", userHandler.UploadAvatar)

		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireRoles(model.RoleAdmin))
		{
			adminGroup.POST("/users", userHandler.CreateUser)
			adminGroup.GET("/users", userHandler.GetUsers)
			adminGroup.GET("/users/:id", userHandler.GetUser)
			adminGroup.PUT("/users/:id", userHandler.UpdateUser)
			adminGroup.DELETE("/users/:id", userHandler.DeleteUser)
		}

		// Medecin routes
		protected.GET("/medecins", medecinHandler.GetMedecins)
		protected.GET("/medecins/search", medecinHandler.SearchMedecins)
		protected.GET("/medecins/:id", medecinHandler.GetMedecin)
		protected.PUT("/medecins/:id",
			authMiddleware.RequireRoles(model.RoleAdmin, model.RoleMedecin),
			medecinHandler.UpdateMedecin)

		// Patient routes
		staffOnly := authMiddleware.RequireRoles(model.RoleAdmin, model.RoleMedecin, model.RoleSecretaire)
		frontDesk := authMiddleware.RequireRoles(model.RoleAdmin, model.RoleSecretaire)
		protected.POST("/patients", frontDesk, patientHandler.CreatePatient)
		protected.GET("/patients", staffOnly, patientHandler.GetPatients)
		protected.GET("/patients/:id", staffOnly, patientHandler.GetPatient)
		protected.PUT("/patients/:id", staffOnly, patientHandler.UpdatePatient)

		// RendezVous routes
		protected.POST("/rendezvous", rdvHandler.CreateRendezVous)
		protected.GET("/rendezvous", rdvHandler.GetRendezVousList)
		protected.GET("/rendezvous/:id", rdvHandler.GetRendezVous)
		protected.PUT("/rendezvous/:id", rdvHandler.UpdateRendezVous)
		protected.PUT("/rendezvous/:id/confirmer",
			authMiddleware.RequireRoles(model.RoleAdmin, model.RoleMedecin, model.RoleSecretaire),
			rdvHandler.ConfirmerRendezVous)
		protected.PUT("/rendezvous/:id/annuler", rdvHandler.AnnulerRendezVous)
		protected.PUT("/rendezvous/:id/terminer",
			authMiddleware.RequireRoles(model.RoleAdmin, model.RoleMedecin),
			rdvHandler.TerminerRendezVous)
		protected.DELETE("/rendezvous/:id",
			authMiddleware.RequireRoles(model.RoleAdmin, model.RoleSecretaire),
			rdvHandler.DeleteRendezVous)

		// Notification routes
		protected.GET("/notifications", notifHandler.GetNotifications)
		protected.GET("/notifications/recentes", notifHandler.GetRecent)
		protected.GET("/notifications/unread-count", notifHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notifHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notifHandler.MarkAllAsRead)
		protected.DELETE("/notifications/:id", notifHandler.Delete)
		protected.GET("/notifications/ws", notifHandler.HandleWebSocket)
		protected.POST("/notifications/rappels",
			authMiddleware.RequireRoles(model.RoleAdmin),
			notifHandler.CreateReminders)

		// Chatbot routes
		protected.POST("/chatbot/message", chatbotHandler.SendMessage)
		protected.GET("/chatbot/suggestions", chatbotHandler.GetSuggestions)
		protected.GET("/chatbot/welcome", chatbotHandler.GetWelcomeMessage)

		// Dossier routes
		protected.POST("/dossiers",
			authMiddleware.RequireRoles(model.RoleAdmin, model.RoleMedecin, model.RoleSecretaire),
			dossierHandler.CreateDossier)
		protected.GET("/dossiers", dossierHandler.GetDossiers)
		protected.GET("/dossiers/:id", dossierHandler.GetDossier)
		protected.DELETE("/dossiers/:id",
			authMiddleware.RequireRoles(model.RoleAdmin),
			dossierHandler.DeleteDossier)

		medecinOnly := authMiddleware.RequireRoles(model.RoleAdmin, model.RoleMedecin)
		protected.POST("/dossiers/:id/consultations", medecinOnly, dossierHandler.AddConsultation)
		protected.PUT("/consultations/:consultationId", medecinOnly, dossierHandler.UpdateConsultation)
		protected.DELETE("/consultations/:consultationId", medecinOnly, dossierHandler.DeleteConsultation)
		protected.POST("/consultations/:consultationId/traitements", medecinOnly, dossierHandler.AddTraitement)
		protected.DELETE("/traitements/:traitementId", medecinOnly, dossierHandler.DeleteTraitement)

		// Ressource / personnel routes
		protected.GET("/ressources", ressourceHandler.GetRessources)
		protected.GET("/ressources/:id", ressourceHandler.GetRessource)
		protected.POST("/ressources", staffOnly, ressourceHandler.CreateRessource)
		protected.PUT("/ressources/:id", staffOnly, ressourceHandler.UpdateRessource)
		protected.DELETE("/ressources/:id", staffOnly, ressourceHandler.DeleteRessource)

		protected.GET("/personnel", staffOnly, ressourceHandler.GetPersonnelList)
		protected.GET("/personnel/:id", staffOnly, ressourceHandler.GetPersonnel)
		protected.POST("/personnel", staffOnly, ressourceHandler.CreatePersonnel)
		protected.PUT("/personnel/:id", staffOnly, ressourceHandler.UpdatePersonnel)
		protected.DELETE("/personnel/:id", staffOnly, ressourceHandler.DeletePersonnel)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
