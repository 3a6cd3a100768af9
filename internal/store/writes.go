package store

import (
	"context"
	"fmt"
	"math"

	"github.com/marketpulse/pulse/pkg/types"
)

// InsertRecord appends one sentiment record. The id and timestamp are
// assigned by the database and returned in the record. The store requires a
// non-empty sentiment and a finite confidence but deliberately does not
// enforce the [0,1] range; that is the classification adapter's contract.
func (s *Store) InsertRecord(ctx context.Context, text, sentiment string, confidence float64) (types.SentimentRecord, error) {
	rec := types.SentimentRecord{
		Text:       text,
		Sentiment:  sentiment,
		Confidence: confidence,
	}
	if sentiment == "" {
		return rec, fmt.Errorf("sentiment must not be empty")
	}
	if math.IsNaN(confidence) || math.IsInf(confidence, 0) {
		return rec, fmt.Errorf("confidence must be finite, got %v", confidence)
	}

	err := s.pool.QueryRow(ctx, `
		INSERT INTO sentiment_data (text, sentiment, confidence)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp
	`, text, sentiment, confidence).Scan(&rec.ID, &rec.Timestamp)
	if err != nil {
		return rec, fmt.Errorf("insert sentiment record: %w", err)
	}
	return rec, nil
}
