// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
	"github.com/backlinkoo/backlinkoo-backend/internal/pipeline"
	"github.com/backlinkoo/backlinkoo-backend/internal/queue"
	"github.com/backlinkoo/backlinkoo-backend/internal/repository"
)

type CampaignController struct {
	Campaigns repository.CampaignRepositoryInterface
	Attempts  repository.AttemptRepositoryInterface
	Links     repository.PublishedLinkRepositoryInterface
	Processor *pipeline.Processor
	Queue     queue.Queue
}

type CampaignDetails struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	TargetURL   string         `json:"target_url"`
	Keyword     string         `json:"keyword"`
	AnchorText  string         `json:"anchor_text"`
	Status      string         `json:"status"`
	LinksFound  int            `json:"links_found"`
	LinksPosted int            `json:"links_posted"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
	Stats       map[string]int `json:"stats"`
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string `json:"name"`
		TargetURL  string `json:"target_url"`
		Keyword    string `json:"keyword"`
		AnchorText string `json:"anchor_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.TargetURL == "" || body.Keyword == "" || body.AnchorText == "" {
		http.Error(w, "target_url, keyword and anchor_text are required", http.StatusBadRequest)
		return
	}

	campaign := &model.Campaign{
		Name:       body.Name,
		TargetURL:  body.TargetURL,
		Keyword:    body.Keyword,
		AnchorText: body.AnchorText,
		Status:     "draft",
	}
	if err := c.Campaigns.Create(campaign); err != nil {
		http.Error(w, "failed to create campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	campaigns, total, err := c.Campaigns.ListCampaigns(offset, pageSize, status)
	if err != nil {
		http.Error(w, "failed to fetch campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": campaigns,
		"pagination": map[string]int{
			"page":        page,
			"page_size":   pageSize,
			"total_count": total,
			"total_pages": totalPages,
		},
	})
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := c.Campaigns.GetByID(id)
	if err != nil {
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusNotFound)
		return
	}

	stats, err := c.Attempts.StatsByCampaign(id)
	if err != nil {
		log.Println("⚠️ failed to fetch attempt stats:", err)
		stats = map[string]int{}
	}
	total := 0
	for _, n := range stats {
		total += n
	}
	stats["total"] = total

	details := &CampaignDetails{
		ID:          campaign.ID,
		Name:        campaign.Name,
		TargetURL:   campaign.TargetURL,
		Keyword:     campaign.Keyword,
		AnchorText:  campaign.AnchorText,
		Status:      campaign.Status,
		LinksFound:  campaign.LinksFound,
		LinksPosted: campaign.LinksPosted,
		CreatedAt:   campaign.CreatedAt,
		UpdatedAt:   campaign.UpdatedAt,
		Stats:       stats,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}

func (c *CampaignController) ListLinks(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	links, err := c.Links.ListByCampaign(id)
	if err != nil {
		http.Error(w, "failed to fetch links: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": links})
}

// ProcessCampaign runs one pipeline invocation synchronously. The response
// is always binary success/failure; degraded intermediate steps (template
// fallback, swallowed recorder errors) are not reported.
func (c *CampaignController) ProcessCampaign(w http.ResponseWriter, r *http.Request) {
	var body pipeline.Request
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.CampaignID == 0 || body.Keyword == "" || body.AnchorText == "" || body.TargetURL == "" {
		http.Error(w, "campaignId, keyword, anchorText and targetUrl are required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	result, err := c.Processor.Process(r.Context(), body)
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	json.NewEncoder(w).Encode(result)
}

// EnqueueCampaign hands the pipeline run to the worker via the queue.
func (c *CampaignController) EnqueueCampaign(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	if _, err := c.Campaigns.GetByID(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := c.Queue.Publish("campaign_process", queue.ProcessJob{CampaignID: id}); err != nil {
		http.Error(w, "failed to enqueue campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"queued":      true,
		"campaign_id": id,
	})
}
