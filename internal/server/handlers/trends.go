package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/marketpulse/pulse/pkg/types"
)

// History query bounds, enforced here rather than in the store.
const (
	DefaultHistoryDays = 7
	MaxHistoryDays     = 365
)

// SentimentToday returns per-sentiment average confidence for the current
// UTC calendar day. No data yields an empty trends list, not an error.
func (h *Handlers) SentimentToday(w http.ResponseWriter, r *http.Request) {
	trends, err := h.store.TodayAverages(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve today's sentiment data", err)
		return
	}
	if trends == nil {
		trends = []types.TrendAverage{}
	}
	_ = json.NewEncoder(w).Encode(types.TodayResponse{
		Date:   time.Now().UTC().Format("2006-01-02"),
		Trends: trends,
	})
}

// Trend returns all-time record counts per sentiment.
func (h *Handlers) Trend(w http.ResponseWriter, r *http.Request) {
	trends, err := h.store.AllTimeCounts(r.Context())
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve sentiment trends", err)
		return
	}
	if trends == nil {
		trends = []types.TrendCount{}
	}
	_ = json.NewEncoder(w).Encode(types.TrendResponse{Trends: trends})
}

// History returns per-day, per-sentiment counts over a trailing window of
// days (default 7, bounds 1..365).
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	days := DefaultHistoryDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > MaxHistoryDays {
			h.writeError(w, http.StatusBadRequest, "days must be an integer between 1 and 365", nil)
			return
		}
		days = parsed
	}

	entries, err := h.store.History(r.Context(), days)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve historical data", err)
		return
	}
	if entries == nil {
		entries = []types.HistoryEntry{}
	}
	_ = json.NewEncoder(w).Encode(types.HistoryResponse{Days: days, History: entries})
}
