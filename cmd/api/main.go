package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vantora/leadhub/internal/config"
	"github.com/vantora/leadhub/internal/infra/database"
	"github.com/vantora/leadhub/internal/infra/http/handlers"
	appmiddleware "github.com/vantora/leadhub/internal/infra/http/middleware"
	"github.com/vantora/leadhub/internal/infra/mail"
	"github.com/vantora/leadhub/internal/infra/queue"
	"github.com/vantora/leadhub/internal/infra/token"
	"github.com/vantora/leadhub/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	userRepo := database.NewUserRepository(db)

	// Adapters
	tokens := token.NewGenerator(cfg.TokenSecret, cfg.TokenIssuer)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// Worker: consumes lead events and mails the sales inbox.
	if cfg.MailConfigured() {
		sender := mail.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.SalesInbox)
		worker := queue.NewWorker(rabbitMQ.Ch, sender)
		go worker.Start(queue.QueueName)
	} else {
		log.Println("mail not configured, lead notifications disabled")
	}

	// Use cases
	authUC := usecase.NewAuthUseCase(userRepo, tokens)
	leadUC := usecase.NewLeadUseCase(leadRepo, producer)
	analyticsUC := usecase.NewAnalyticsUseCase(leadRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUC)
	leadHandler := handlers.NewLeadHandler(leadUC)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	authMiddleware := appmiddleware.NewAuth(tokens)

	// Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", authHandler.HandleRegister)
	r.Post("/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireToken)

		r.Get("/leads", leadHandler.HandleList)
		r.Get("/leads/stats", leadHandler.HandleStats)
		r.Get("/leads/{id}", leadHandler.HandleGet)
		r.Post("/leads", leadHandler.HandleCreate)
		r.Put("/leads/{id}", leadHandler.HandleUpdate)
		r.Delete("/leads/{id}", leadHandler.HandleDelete)

		r.Get("/analytics", analyticsHandler.HandleSummary)
		r.Get("/analytics/revenue", analyticsHandler.HandleRevenue)
	})

	addr := ":" + cfg.HTTPPort
	log.Printf("LeadHub API listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
