// Package types defines the public domain types for the Pulse sentiment analysis service.
package types

import "time"

// Sentiment labels as produced by the upstream classifier. The store treats
// sentiment as an opaque non-empty string; this set exists for adapters and tests.
const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
	SentimentMixed    = "MIXED"
)

// SentimentRecord is one persisted analysis observation. Records are
// append-only: id and timestamp are assigned by the store on insert and
// rows are never updated or deleted by this service.
type SentimentRecord struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	Sentiment  string    `json:"sentiment"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// Classification is the normalized output of the classification adapter:
// the winning label and its raw score. Confidence is the argmax score as
// returned upstream, not a renormalized probability.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// TrendAverage is one row of the today-average aggregation.
type TrendAverage struct {
	Sentiment         string  `json:"sentiment"`
	AverageConfidence float64 `json:"average_confidence"`
}

// TrendCount is one row of the all-time count aggregation.
type TrendCount struct {
	Sentiment string `json:"sentiment"`
	Count     int64  `json:"count"`
}

// HistoryEntry is one (calendar date, sentiment) bucket of the N-day history.
// Date is the UTC calendar date in YYYY-MM-DD form.
type HistoryEntry struct {
	Date      string `json:"date"`
	Sentiment string `json:"sentiment"`
	Count     int64  `json:"count"`
}

// ObjectInfo describes one archived object, for inspection endpoints only.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}
