// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"

	"github.com/backlinkoo/backlinkoo-backend/internal/config"
	"github.com/backlinkoo/backlinkoo-backend/internal/content"
	"github.com/backlinkoo/backlinkoo-backend/internal/db"
	"github.com/backlinkoo/backlinkoo-backend/internal/pipeline"
	"github.com/backlinkoo/backlinkoo-backend/internal/platform"
	"github.com/backlinkoo/backlinkoo-backend/internal/publisher"
	"github.com/backlinkoo/backlinkoo-backend/internal/queue"
	"github.com/backlinkoo/backlinkoo-backend/internal/repository"
	"github.com/backlinkoo/backlinkoo-backend/internal/verify"
)

func main() {
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

	// Connect to RabbitMQ
	amqpConn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal("Failed to connect to RabbitMQ:", err)
	}
	defer amqpConn.Close()

	ch, err := amqpConn.Channel()
	if err != nil {
		log.Fatal("Failed to open a channel:", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"campaign_process", // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		log.Fatal("Failed to declare queue:", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal("Failed to register consumer:", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var job queue.ProcessJob
			if err := json.Unmarshal(d.Body, &job); err != nil {
				log.Println("Invalid job:", err)
				d.Ack(false)
				continue
			}

			if err := processCampaign(job.CampaignID, processor, campaignRepo); err != nil {
				log.Println("Failed to process campaign:", err)
				// Retry logic: requeue up to maxRetries times. Nack would
				// redeliver the original headers unchanged, so the retry
				// counter is carried by re-publishing instead.
				retries := retryCount(d.Headers)
				if retries < maxRetries {
					republish(ch, q.Name, d.Body, retries+1)
				} else {
					log.Printf("Job permanently failed after %d attempts: campaign %d", maxRetries, job.CampaignID)
				}
			}

			d.Ack(false)
		}
	}()

	log.Println("Worker running, waiting for messages...")
	<-forever
}

const maxRetries = 3

// retryCount reads the x-retry-count header, tolerating the integer widths
// AMQP clients deliver.
func retryCount(headers amqp.Table) int {
	switch v := headers["x-retry-count"].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	default:
		return 0
	}
}

// republish puts the job back on the queue with an incremented retry header.
func republish(ch *amqp.Channel, queueName string, body []byte, retries int) {
	err := ch.Publish("", queueName, false, false, amqp.Publishing{
		ContentType: "application/json",
		Headers:     amqp.Table{"x-retry-count": int32(retries)},
		Body:        body,
	})
	if err != nil {
		log.Println("⚠️ failed to requeue job:", err)
	}
}

func processCampaign(campaignID int, processor *pipeline.Processor, campaigns repository.CampaignRepositoryInterface) error {
	campaign, err := campaigns.GetByID(campaignID)
	if err != nil {
		return err
	}

	result, err := processor.Process(context.Background(), pipeline.Request{
		CampaignID: campaign.ID,
		Keyword:    campaign.Keyword,
		AnchorText: campaign.AnchorText,
		TargetURL:  campaign.TargetURL,
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Campaign %d published to %s: %s (attempt %s, %dms)",
		campaign.ID, result.Platform, result.PublishedURL, result.AttemptID, result.ResponseTimeMS)

	if campaign.Status == "draft" {
		if err := campaigns.UpdateStatus(campaign.ID, "active"); err != nil {
			log.Println("⚠️ failed to update campaign status:", err)
		}
	}
	return nil
}
