package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/marketpulse/pulse/internal/metrics"
	"github.com/marketpulse/pulse/pkg/types"
)

// MaxTextLength is the boundary-layer cap on analyzed text, counted in
// characters rather than bytes.
const MaxTextLength = 5000

// Analyze classifies the submitted text, persists the result, and archives
// the raw text plus the derived result. Classification failure is fatal to
// the request; persistence and archival degrade into response flags.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text     string         `json:"text"`
		SaveToS3 *bool          `json:"save_to_s3"`
		Metadata map[string]any `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		metrics.ValidationFailures.Add(1)
		h.writeError(w, http.StatusBadRequest, "invalid JSON", err)
		return
	}

	if strings.TrimSpace(body.Text) == "" {
		metrics.ValidationFailures.Add(1)
		h.writeError(w, http.StatusBadRequest, "text cannot be empty", nil)
		return
	}
	if utf8.RuneCountInString(body.Text) > MaxTextLength {
		metrics.ValidationFailures.Add(1)
		h.writeError(w, http.StatusBadRequest, "text too long (max 5000 characters)", nil)
		return
	}

	metrics.AnalysesTotal.Add(1)

	result, err := h.classifier.Classify(r.Context(), body.Text)
	if err != nil {
		metrics.ClassificationFailures.Add(1)
		h.writeError(w, http.StatusInternalServerError, "analysis failed", err)
		return
	}

	saveToS3 := body.SaveToS3 == nil || *body.SaveToS3

	// The insert and the two archive writes are independent and individually
	// best-effort; run them concurrently and collect outcome flags.
	var (
		record          types.SentimentRecord
		insertErr       error
		rawOK, resultOK bool
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		record, insertErr = h.store.InsertRecord(ctx, body.Text, result.Label, result.Confidence)
		return nil
	})
	if saveToS3 {
		g.Go(func() error {
			rawOK = h.archive.SaveRawText(ctx, body.Text, body.Metadata)
			return nil
		})
		g.Go(func() error {
			resultOK = h.archive.SaveResult(ctx, body.Text, result.Label, result.Confidence)
			return nil
		})
	}
	_ = g.Wait()

	dbSaved := insertErr == nil
	if insertErr != nil {
		metrics.InsertFailures.Add(1)
		h.logger.Error("failed to persist sentiment record", "sentiment", result.Label, "error", insertErr)
	}

	timestamp := time.Now().UTC()
	if dbSaved {
		timestamp = record.Timestamp.UTC()
	}

	_ = json.NewEncoder(w).Encode(types.AnalyzeResponse{
		Sentiment:       result.Label,
		Confidence:      result.Confidence,
		Timestamp:       timestamp.Format(time.RFC3339),
		SavedToDatabase: dbSaved,
		SavedToS3:       saveToS3 && rawOK && resultOK,
	})
}
