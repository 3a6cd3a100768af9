package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/marketpulse/pulse/internal/metrics"
	"github.com/marketpulse/pulse/pkg/types"
)

// Object listing bounds.
const (
	DefaultObjectLimit = 10
	MaxObjectLimit     = 100
)

// ListObjects enumerates archived S3 objects for inspection. It is not part
// of any business logic path.
func (h *Handlers) ListObjects(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	limit := DefaultObjectLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > MaxObjectLimit {
			h.writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100", nil)
			return
		}
		limit = parsed
	}

	objects, err := h.archive.List(r.Context(), prefix, limit)
	if err != nil {
		metrics.ObjectListFailures.Add(1)
		h.writeError(w, http.StatusInternalServerError, "failed to list S3 objects", err)
		return
	}
	if objects == nil {
		objects = []types.ObjectInfo{}
	}
	_ = json.NewEncoder(w).Encode(types.ObjectListResponse{
		Prefix:  prefix,
		Limit:   limit,
		Count:   len(objects),
		Objects: objects,
	})
}
