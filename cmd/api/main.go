package main

import (
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/urbancruise/cruise-lms/internal/infra/database"
	"github.com/urbancruise/cruise-lms/internal/infra/http/handlers"
	"github.com/urbancruise/cruise-lms/internal/infra/http/middleware"
	"github.com/urbancruise/cruise-lms/internal/infra/integration/googleads"
	"github.com/urbancruise/cruise-lms/internal/infra/integration/meta"
	"github.com/urbancruise/cruise-lms/internal/infra/integration/twilio"
	"github.com/urbancruise/cruise-lms/internal/infra/integration/urlfetch"
	"github.com/urbancruise/cruise-lms/internal/infra/job"
	"github.com/urbancruise/cruise-lms/internal/infra/mail"
	"github.com/urbancruise/cruise-lms/internal/infra/queue"
	"github.com/urbancruise/cruise-lms/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewPostgres(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	activityRepo := database.NewActivityLogRepository(db)

	// 2. External clients (explicit config, no package-load globals)
	metaClient := meta.NewClient(
		os.Getenv("META_ACCESS_TOKEN"),
		os.Getenv("META_AD_ACCOUNT_ID"),
		os.Getenv("META_WEBHOOK_VERIFY_TOKEN"),
	)
	googleClient := googleads.NewClient(googleads.Config{
		ClientID:       os.Getenv("GOOGLE_ADS_CLIENT_ID"),
		ClientSecret:   os.Getenv("GOOGLE_ADS_CLIENT_SECRET"),
		DeveloperToken: os.Getenv("GOOGLE_ADS_DEVELOPER_TOKEN"),
		CustomerID:     os.Getenv("GOOGLE_ADS_CUSTOMER_ID"),
		RefreshToken:   os.Getenv("GOOGLE_ADS_REFRESH_TOKEN"),
	})
	smsClient := twilio.NewClient(
		os.Getenv("TWILIO_SID"),
		os.Getenv("TWILIO_AUTH_TOKEN"),
		os.Getenv("TWILIO_PHONE_NUMBER"),
	)

	mailPort, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	if mailPort == 0 {
		mailPort = 587
	}
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), mailPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"), os.Getenv("ADMIN_EMAIL"),
	)

	// 3. Notification queue + worker. A broken broker degrades to
	// no notifications, it never blocks ingestion.
	var producer usecase.NotificationPublisher
	var amqpConn *amqp091.Connection
	rabbitMQ, err := queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unavailable, lead notifications disabled: %v", err)
	} else {
		amqpConn = rabbitMQ.Conn
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
		worker := queue.NewWorker(rabbitMQ.Ch, mailSender, smsClient, os.Getenv("ADMIN_PHONE"))
		go worker.Start(queue.QueueName)
	}

	// 4. Core pipeline + use cases
	resolver := usecase.NewDuplicateResolver(leadRepo)
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, activityRepo)
	websiteLeadUC := usecase.NewCreateWebsiteLeadUseCase(resolver, producer)
	importFileUC := usecase.NewImportLeadsUseCase(resolver, activityRepo)
	importURLUC := usecase.NewImportFromURLUseCase(resolver, urlfetch.NewClient())
	syncUC := usecase.NewSyncLeadsUseCase(resolver, metaClient, googleClient)
	summaryUC := usecase.NewDailySummaryUseCase(leadRepo, mailSender)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, activityRepo, createLeadUC)
	websiteHandler := handlers.NewWebsiteHandler(websiteLeadUC)
	syncHandler := handlers.NewSyncHandler(syncUC, metaClient)
	importHandler := handlers.NewImportHandler(importFileUC, importURLUC)
	exportHandler := handlers.NewExportHandler(leadRepo)
	notificationHandler := handlers.NewNotificationHandler(mailSender, smsClient)
	activityHandler := handlers.NewActivityHandler(activityRepo)

	healthHandler := handlers.NewHealthHandler(db, amqpConn, metaClient, googleClient)

	// 6. Scheduler (hourly + 30-min polls, daily summary, log purge)
	scheduler := job.NewScheduler(syncUC, summaryUC, activityRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{frontendURL(), "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-User-Name", "X-User-Email"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.List)
			r.Get("/filter", leadHandler.List)
			r.Post("/", leadHandler.Create)
			r.Get("/{id}", leadHandler.Get)
			r.Put("/{id}", leadHandler.Update)
			r.Put("/{id}/assign", leadHandler.Assign)
			r.Delete("/{id}", leadHandler.Delete)
		})

		r.Post("/website/leads", websiteHandler.CreateLead)

		r.Route("/meta", func(r chi.Router) {
			r.Post("/fetch-leads", syncHandler.FetchMetaLeads)
			r.Get("/webhook", syncHandler.VerifyWebhook)
			r.Post("/webhook", syncHandler.ReceiveWebhook)
			r.Get("/validate-token", syncHandler.ValidateMetaToken)
		})
		r.Post("/google/fetch-leads", syncHandler.FetchGoogleLeads)
		r.Post("/sync", syncHandler.RunAll)

		r.Post("/import/leads", importHandler.ImportFile)
		r.Post("/import/leads/url", importHandler.ImportFromURL)
		r.Get("/export/leads", exportHandler.ExportLeads)

		r.Post("/notifications/email", notificationHandler.SendEmail)
		r.Post("/notifications/sms", notificationHandler.SendSMS)

		r.Get("/activity/recent", activityHandler.Recent)
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 UrbanCruise LMS API running on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func frontendURL() string {
	if u := os.Getenv("FRONTEND_URL"); u != "" {
		return u
	}
	return "http://localhost:3000"
}
