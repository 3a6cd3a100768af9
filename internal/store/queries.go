package store

import (
	"context"

	"github.com/marketpulse/pulse/pkg/types"
)

// Calendar-date bucketing is always done in UTC so results do not depend on
// the server or session time zone.

// TodayAverages returns the mean confidence per sentiment over records whose
// timestamp falls on the current UTC calendar day. An empty result is not an
// error. No ordering is guaranteed.
func (s *Store) TodayAverages(ctx context.Context) ([]types.TrendAverage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sentiment, AVG(confidence)
		FROM sentiment_data
		WHERE (timestamp AT TIME ZONE 'UTC')::date = (NOW() AT TIME ZONE 'UTC')::date
		GROUP BY sentiment
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []types.TrendAverage
	for rows.Next() {
		var t types.TrendAverage
		if err := rows.Scan(&t.Sentiment, &t.AverageConfidence); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// AllTimeCounts returns the record count per sentiment over all records.
func (s *Store) AllTimeCounts(ctx context.Context) ([]types.TrendCount, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT sentiment, COUNT(*)
		FROM sentiment_data
		GROUP BY sentiment
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []types.TrendCount
	for rows.Next() {
		var t types.TrendCount
		if err := rows.Scan(&t.Sentiment, &t.Count); err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// History returns per-day, per-sentiment counts for records within the
// trailing window of the given number of days, ordered by ascending date.
// Callers are expected to bound days at the HTTP layer; the query itself
// performs no range enforcement.
func (s *Store) History(ctx context.Context, days int) ([]types.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT to_char((timestamp AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD'), sentiment, COUNT(*)
		FROM sentiment_data
		WHERE timestamp >= NOW() - make_interval(days => $1)
		GROUP BY (timestamp AT TIME ZONE 'UTC')::date, sentiment
		ORDER BY (timestamp AT TIME ZONE 'UTC')::date
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var e types.HistoryEntry
		if err := rows.Scan(&e.Date, &e.Sentiment, &e.Count); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
