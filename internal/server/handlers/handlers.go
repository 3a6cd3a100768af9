// Package handlers implements the HTTP request handlers for the Pulse API.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/marketpulse/pulse/pkg/types"
)

// RecordStore is the persistence surface the handlers depend on.
type RecordStore interface {
	InsertRecord(ctx context.Context, text, sentiment string, confidence float64) (types.SentimentRecord, error)
	TodayAverages(ctx context.Context) ([]types.TrendAverage, error)
	AllTimeCounts(ctx context.Context) ([]types.TrendCount, error)
	History(ctx context.Context, days int) ([]types.HistoryEntry, error)
	Ping(ctx context.Context) error
}

// Classifier produces a sentiment label and confidence for a text.
type Classifier interface {
	Classify(ctx context.Context, text string) (types.Classification, error)
}

// Archive is the best-effort blob archival surface. The Save methods report
// success as a boolean and never propagate errors.
type Archive interface {
	SaveRawText(ctx context.Context, text string, metadata map[string]any) bool
	SaveResult(ctx context.Context, text, sentiment string, confidence float64) bool
	List(ctx context.Context, prefix string, limit int) ([]types.ObjectInfo, error)
	Ping(ctx context.Context) bool
}

// Handlers contains all HTTP handler dependencies.
type Handlers struct {
	store      RecordStore
	classifier Classifier
	archive    Archive
	logger     *slog.Logger
}

// New creates a new Handlers instance.
func New(store RecordStore, classifier Classifier, archive Archive) *Handlers {
	return &Handlers{
		store:      store,
		classifier: classifier,
		archive:    archive,
		logger:     slog.Default(),
	}
}

// SetLogger overrides the default logger.
func (h *Handlers) SetLogger(l *slog.Logger) {
	if l != nil {
		h.logger = l
	}
}

// writeError logs the internal error and returns a JSON error to the client.
func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		h.logger.Error(msg, "error", err, "status", status)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
