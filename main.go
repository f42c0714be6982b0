package main

import (
	"log"

	api "edupath-backend/cmd/api"
	authdomain "edupath-backend/internal/auth/domain"
	authRepo "edupath-backend/internal/auth/repository"
	authUsecase "edupath-backend/internal/auth/usecase"
	mailboxdomain "edupath-backend/internal/mailbox/domain"
	mailboxRepo "edupath-backend/internal/mailbox/repository"
	mailboxUsecase "edupath-backend/internal/mailbox/usecase"
	offerdomain "edupath-backend/internal/offer/domain"
	offerRepo "edupath-backend/internal/offer/repository"
	offerUsecase "edupath-backend/internal/offer/usecase"
	studentdomain "edupath-backend/internal/student/domain"
	studentRepo "edupath-backend/internal/student/repository"
	studentUsecase "edupath-backend/internal/student/usecase"
	"edupath-backend/pkg/config"
	"edupath-backend/pkg/crypto"
	"edupath-backend/pkg/database"
	"edupath-backend/pkg/gmail"
	"edupath-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&studentdomain.Student{},
		&mailboxdomain.GmailConnection{},
		&mailboxdomain.EmailMessage{},
		&offerdomain.Offer{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Token vault must be usable before we accept any OAuth callback
	vault, err := crypto.NewVault(cfg.TokenEncryptionSecret)
	if err != nil {
		log.Fatal("Failed to initialize token vault:", err)
	}

	// Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	// Gmail gateway and OAuth client
	gateway := gmail.NewGateway()
	oauthCfg := gmail.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	studentRepository := studentRepo.NewStudentRepository(db)
	offerRepository := offerRepo.NewOfferRepository(db)
	connectionRepository := mailboxRepo.NewConnectionRepository(db)
	messageRepository := mailboxRepo.NewMessageRepository(db)

	// Initialize use cases
	authUc := authUsecase.NewAuthUsecase(userRepository, cfg)
	studentUc := studentUsecase.NewStudentUsecase(studentRepository)
	offerUc := offerUsecase.NewOfferUsecase(offerRepository)
	mailboxUc := mailboxUsecase.NewMailboxUsecase(
		connectionRepository,
		messageRepository,
		gateway,
		vault,
		cfg,
		collector,
		oauthCfg,
	)

	// HTTP server
	r := gin.Default()
	handler := api.NewHandler(authUc, studentUc, offerUc, mailboxUc)
	api.SetupRoutes(r, handler, registry)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
