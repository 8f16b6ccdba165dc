// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/backlinkoo/backlinkoo-backend/internal/config"
	"github.com/backlinkoo/backlinkoo-backend/internal/content"
	"github.com/backlinkoo/backlinkoo-backend/internal/controller"
	"github.com/backlinkoo/backlinkoo-backend/internal/db"
	"github.com/backlinkoo/backlinkoo-backend/internal/pipeline"
	"github.com/backlinkoo/backlinkoo-backend/internal/platform"
	"github.com/backlinkoo/backlinkoo-backend/internal/publisher"
	"github.com/backlinkoo/backlinkoo-backend/internal/queue"
	"github.com/backlinkoo/backlinkoo-backend/internal/repository"
	"github.com/backlinkoo/backlinkoo-backend/internal/verify"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	attemptRepo := &repository.AttemptRepository{DB: conn}
	linkRepo := &repository.PublishedLinkRepository{DB: conn}
	statusRepo := &repository.PlatformStatusRepository{DB: conn}

	processor := &pipeline.Processor{
		Selector:  platform.NewSelector(statusRepo, attemptRepo),
		Generator: content.NewGenerator(cfg.OpenAIKey, cfg.OpenAIModel),
		Publishers: map[string]publisher.Publisher{
			"telegraph": publisher.NewTelegraphPublisher(cfg.TelegraphBaseURL, nil),
			"writeas":   publisher.NewWriteasPublisher(cfg.WriteasBaseURL, cfg.WriteasToken, nil),
		},
		Verifier:       verify.NewVerifier(cfg.VerifyTimeout),
		Attempts:       attemptRepo,
		Links:          linkRepo,
		Campaigns:      campaignRepo,
		PublishTimeout: cfg.PublishTimeout,
	}

	var q queue.Queue
	q, err = queue.NewAMQPQueue(cfg.AMQPURL)
	if err != nil {
		log.Println("⚠️ RabbitMQ unavailable, enqueue endpoint will run in-memory:", err)
		q = queue.NewInMemoryQueue()
	}

	campaignController := &controller.CampaignController{
		Campaigns: campaignRepo,
		Attempts:  attemptRepo,
		Links:     linkRepo,
		Processor: processor,
		Queue:     q,
	}
	dnsController := &controller.DNSController{
		Client: &http.Client{Timeout: 15 * time.Second},
	}

	r := chi.NewRouter()

	// Campaign routes
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Get("/campaigns/{id}/links", campaignController.ListLinks)
	r.Post("/campaigns/process", campaignController.ProcessCampaign)
	r.Post("/campaigns/{id}/enqueue", campaignController.EnqueueCampaign)

	// DNS routes
	r.Post("/dns/records/get", dnsController.GetRecords)
	r.Post("/dns/records/update", dnsController.UpdateRecords)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(r)

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
