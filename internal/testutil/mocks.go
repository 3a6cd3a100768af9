// Package testutil provides shared test doubles for Pulse.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/marketpulse/pulse/internal/server/handlers"
	"github.com/marketpulse/pulse/pkg/types"
)

// Compile-time interface satisfaction checks.
var (
	_ handlers.RecordStore = (*MockStore)(nil)
	_ handlers.Classifier  = (*MockClassifier)(nil)
	_ handlers.Archive     = (*MockArchive)(nil)
)

// MockStore is an in-memory RecordStore implementation for testing.
type MockStore struct {
	mu      sync.Mutex
	records []types.SentimentRecord
	nextID  int64

	InsertErr error // returned by InsertRecord when set
	QueryErr  error // returned by the aggregation queries when set
	PingErr   error // returned by Ping when set

	Today     []types.TrendAverage
	AllTime   []types.TrendCount
	HistoryFn func(days int) []types.HistoryEntry
}

// NewMockStore creates a new in-memory mock store.
func NewMockStore() *MockStore {
	return &MockStore{nextID: 1}
}

func (m *MockStore) InsertRecord(_ context.Context, text, sentiment string, confidence float64) (types.SentimentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return types.SentimentRecord{}, m.InsertErr
	}
	if sentiment == "" {
		return types.SentimentRecord{}, fmt.Errorf("sentiment must not be empty")
	}
	rec := types.SentimentRecord{
		ID:         m.nextID,
		Text:       text,
		Sentiment:  sentiment,
		Confidence: confidence,
		Timestamp:  time.Now().UTC(),
	}
	m.nextID++
	m.records = append(m.records, rec)
	return rec, nil
}

// Records returns a copy of the inserted records.
func (m *MockStore) Records() []types.SentimentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.SentimentRecord, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MockStore) TodayAverages(_ context.Context) ([]types.TrendAverage, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return m.Today, nil
}

func (m *MockStore) AllTimeCounts(_ context.Context) ([]types.TrendCount, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return m.AllTime, nil
}

func (m *MockStore) History(_ context.Context, days int) ([]types.HistoryEntry, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	if m.HistoryFn != nil {
		return m.HistoryFn(days), nil
	}
	return nil, nil
}

func (m *MockStore) Ping(_ context.Context) error { return m.PingErr }

// MockClassifier returns a fixed classification or error.
type MockClassifier struct {
	Result types.Classification
	Err    error

	mu    sync.Mutex
	calls int
	last  string
}

func (m *MockClassifier) Classify(_ context.Context, text string) (types.Classification, error) {
	m.mu.Lock()
	m.calls++
	m.last = text
	m.mu.Unlock()
	if m.Err != nil {
		return types.Classification{}, m.Err
	}
	return m.Result, nil
}

// Calls returns how many times Classify was invoked.
func (m *MockClassifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastText returns the most recently classified text.
func (m *MockClassifier) LastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// MockArchive records archival calls and simulates failures.
type MockArchive struct {
	mu         sync.Mutex
	rawTexts   []string
	results    []types.Classification
	RawFail    bool
	ResultFail bool
	PingDown   bool

	Objects []types.ObjectInfo
	ListErr error
}

func (m *MockArchive) SaveRawText(_ context.Context, text string, _ map[string]any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RawFail {
		return false
	}
	m.rawTexts = append(m.rawTexts, text)
	return true
}

func (m *MockArchive) SaveResult(_ context.Context, _, sentiment string, confidence float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ResultFail {
		return false
	}
	m.results = append(m.results, types.Classification{Label: sentiment, Confidence: confidence})
	return true
}

func (m *MockArchive) List(_ context.Context, prefix string, limit int) ([]types.ObjectInfo, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if limit > len(m.Objects) {
		limit = len(m.Objects)
	}
	return m.Objects[:limit], nil
}

func (m *MockArchive) Ping(_ context.Context) bool { return !m.PingDown }

// RawTexts returns the archived raw texts.
func (m *MockArchive) RawTexts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.rawTexts))
	copy(out, m.rawTexts)
	return out
}

// Results returns the archived analysis results.
func (m *MockArchive) Results() []types.Classification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Classification, len(m.results))
	copy(out, m.results)
	return out
}
