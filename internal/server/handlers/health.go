package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/marketpulse/pulse/pkg/types"
)

// Health probes the store and the archive and reports component status.
// It always answers 200; degradation lives in the body.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	dbUp := h.store.Ping(r.Context()) == nil
	s3Up := h.archive.Ping(r.Context())

	status := types.StatusUnhealthy
	switch {
	case dbUp && s3Up:
		status = types.StatusHealthy
	case dbUp || s3Up:
		status = types.StatusDegraded
	}

	_ = json.NewEncoder(w).Encode(types.HealthResponse{
		Status:    status,
		Database:  dbUp,
		S3:        s3Up,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
