package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/gfranca7/branchboard/internal/infra/cache"
	"github.com/gfranca7/branchboard/internal/infra/database"
	"github.com/gfranca7/branchboard/internal/infra/http/handlers"
	appmiddleware "github.com/gfranca7/branchboard/internal/infra/http/middleware"
	"github.com/gfranca7/branchboard/internal/infra/mail"
	"github.com/gfranca7/branchboard/internal/infra/queue"
	"github.com/gfranca7/branchboard/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Stateful services (own their background sweeps)
	store := cache.New(usecase.DefaultDashboardTTL, time.Minute)
	store.Start()
	defer store.Stop()

	dashboardLimiter := appmiddleware.NewRateLimiter(60, time.Minute)
	dashboardLimiter.StartSweeper(10 * time.Minute)
	defer dashboardLimiter.Stop()

	optionsLimiter := appmiddleware.NewRateLimiter(120, time.Minute)
	optionsLimiter.StartSweeper(10 * time.Minute)
	defer optionsLimiter.Stop()

	// 2. Repositories
	leadRepo := database.NewLeadRepository(db)

	// 3. UseCases
	dashboardUC := usecase.NewDashboardUseCase(leadRepo, store)

	// 4. Lead-change events keep cached dashboards honest. Without a
	// broker the cache still expires by TTL, so this stays optional.
	var rabbitConn *amqp.Connection
	if host := os.Getenv("RABBITMQ_HOST"); host != "" {
		rabbitMQ, err := queue.NewRabbitMQ(
			os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
			host, os.Getenv("RABBITMQ_PORT"),
		)
		if err != nil {
			log.Printf("WARN RabbitMQ unavailable, falling back to TTL-only invalidation: %v", err)
		} else {
			defer rabbitMQ.Conn.Close()
			defer rabbitMQ.Ch.Close()

			if err := rabbitMQ.Setup(); err != nil {
				log.Fatalf("failed to declare lead-events topology: %v", err)
			}

			consumer := queue.NewConsumer(rabbitMQ.Ch, store)
			go consumer.Start(queue.QueueName)
			rabbitConn = rabbitMQ.Conn
		}
	}

	// 5. Daily branch digest (optional)
	if os.Getenv("DIGEST_ENABLED") == "true" {
		mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
		if mailPort == 0 {
			mailPort = 587
		}
		sender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), mailPort,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
		dimRepo := database.NewDimensionRepository(db)
		digest := usecase.NewDigestWorker(dashboardUC, dimRepo, sender, 24*time.Hour)
		go digest.Start(context.Background())
	}

	// 6. Handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(appmiddleware.ValidateFilters, dashboardLimiter.Handler("dashboard")).
			Get("/dashboard", dashboardHandler.HandleGet)
		r.With(optionsLimiter.Handler("options")).
			Get("/dashboard/options", dashboardHandler.HandleOptions)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Branchboard API listening on :%s", port)
	http.ListenAndServe(":"+port, r)
}
