package store

const schemaDDL = `
CREATE TABLE IF NOT EXISTS sentiment_data (
    id         BIGSERIAL PRIMARY KEY,
    text       TEXT NOT NULL,
    sentiment  TEXT NOT NULL,
    confidence DOUBLE PRECISION NOT NULL,
    timestamp  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_sentiment_data_timestamp ON sentiment_data (timestamp);
CREATE INDEX IF NOT EXISTS idx_sentiment_data_sentiment ON sentiment_data (sentiment);
`
