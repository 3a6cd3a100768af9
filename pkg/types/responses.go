package types

// Response envelopes for the HTTP API. Kept public so server tests and API
// consumers can decode them directly.

// AnalyzeResponse is the POST /api/analyze envelope. SavedToDatabase and
// SavedToS3 report best-effort downstream outcomes; a false value never
// implies a non-2xx response.
type AnalyzeResponse struct {
	Sentiment       string  `json:"sentiment"`
	Confidence      float64 `json:"confidence"`
	Timestamp       string  `json:"timestamp"`
	SavedToDatabase bool    `json:"saved_to_database"`
	SavedToS3       bool    `json:"saved_to_s3"`
}

// TodayResponse is the GET /api/sentiment/today envelope.
type TodayResponse struct {
	Date   string         `json:"date"`
	Trends []TrendAverage `json:"trends"`
}

// TrendResponse is the GET /api/trend envelope.
type TrendResponse struct {
	Trends []TrendCount `json:"trends"`
}

// HistoryResponse is the GET /api/history envelope.
type HistoryResponse struct {
	Days    int            `json:"days"`
	History []HistoryEntry `json:"history"`
}

// HealthResponse is the GET /api/health envelope. The endpoint always
// answers 200; degradation is expressed in Status and the component flags.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  bool   `json:"database"`
	S3        bool   `json:"s3"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse.Status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ObjectListResponse is the GET /api/s3/objects envelope.
type ObjectListResponse struct {
	Prefix  string       `json:"prefix"`
	Limit   int          `json:"limit"`
	Count   int          `json:"count"`
	Objects []ObjectInfo `json:"objects"`
}
