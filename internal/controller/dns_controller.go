// internal/controller/dns_controller.go
package controller

import (
	"encoding/json"
	"net/http"

	"github.com/backlinkoo/backlinkoo-backend/internal/model"
	"github.com/backlinkoo/backlinkoo-backend/internal/registrar"
)

// DNSController exposes the registrar get/update endpoints. Credentials are
// per-request: nothing is cached server-side.
type DNSController struct {
	Client *http.Client // outbound client shared by the registrar variants
}

type dnsRequest struct {
	Domain      string                `json:"domain"`
	Credentials registrar.Credentials `json:"credentials"`
	Records     []model.DNSRecord     `json:"records,omitempty"`
}

func (c *DNSController) GetRecords(w http.ResponseWriter, r *http.Request) {
	var body dnsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	reg, err := registrar.New(body.Credentials, c.Client)
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	records, err := reg.GetRecords(r.Context(), body.Domain)
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"records": records,
	})
}

func (c *DNSController) UpdateRecords(w http.ResponseWriter, r *http.Request) {
	var body dnsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	reg, err := registrar.New(body.Credentials, c.Client)
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	result, err := reg.UpdateRecords(r.Context(), body.Domain, body.Records)
	if err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":        result.Failed == 0,
		"recordsUpdated": result.Updated,
		"recordsCreated": result.Created,
		"recordsFailed":  result.Failed,
		"errors":         result.Errors,
		"details":        result.Details,
	})
}
