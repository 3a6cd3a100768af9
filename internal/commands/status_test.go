package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpulse/pulse/pkg/types"
)

type stubCountStore struct {
	counts []types.TrendCount
	err    error
}

func (s *stubCountStore) AllTimeCounts(context.Context) ([]types.TrendCount, error) {
	return s.counts, s.err
}

type stubBucketPinger struct {
	up     bool
	pinged bool
}

func (s *stubBucketPinger) Ping(context.Context) bool {
	s.pinged = true
	return s.up
}

func TestPrintStatus_ProbesS3WhenDatabaseDown(t *testing.T) {
	var buf bytes.Buffer
	arc := &stubBucketPinger{up: true}

	err := printStatus(context.Background(), &buf, nil, errors.New("connection refused"), arc, "market-sentiment")
	require.NoError(t, err)

	assert.True(t, arc.pinged)
	out := buf.String()
	assert.Contains(t, out, "database: unreachable")
	assert.Contains(t, out, "s3: OK (bucket market-sentiment)")
}

func TestPrintStatus_CountsTable(t *testing.T) {
	var buf bytes.Buffer
	st := &stubCountStore{counts: []types.TrendCount{
		{Sentiment: types.SentimentPositive, Count: 12},
		{Sentiment: types.SentimentNegative, Count: 3},
	}}

	err := printStatus(context.Background(), &buf, st, nil, &stubBucketPinger{up: false}, "market-sentiment")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "database: OK")
	assert.Contains(t, out, "s3: unreachable (bucket market-sentiment)")
	assert.Contains(t, out, "POSITIVE")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "15")
}

func TestPrintStatus_NoRecordsYet(t *testing.T) {
	var buf bytes.Buffer

	err := printStatus(context.Background(), &buf, &stubCountStore{}, nil, &stubBucketPinger{up: true}, "b")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No sentiment records yet.")
}
