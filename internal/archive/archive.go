// Package archive persists raw text and derived sentiment results to S3.
// Archival is advisory: the Postgres store is the system of record, and the
// write paths here report success as a boolean instead of propagating errors.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"

	"github.com/marketpulse/pulse/internal/metrics"
	"github.com/marketpulse/pulse/pkg/types"
)

// Default object key prefixes.
const (
	DefaultRawPrefix    = "raw/text"
	DefaultResultPrefix = "processed/sentiment"
)

// S3API is the subset of the S3 client used by Store.
type S3API interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, input *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store archives texts and analysis results in an S3 bucket.
type Store struct {
	client       S3API
	bucket       string
	rawPrefix    string
	resultPrefix string
	logger       *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClient sets a custom S3 client (useful for testing).
func WithClient(c S3API) Option {
	return func(s *Store) { s.client = c }
}

// WithPrefixes overrides the raw and result key prefixes.
func WithPrefixes(raw, result string) Option {
	return func(s *Store) {
		if raw != "" {
			s.rawPrefix = strings.Trim(raw, "/")
		}
		if result != "" {
			s.resultPrefix = strings.Trim(result, "/")
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an S3-backed archive store. An endpoint override switches to
// static credentials for local stacks such as MinIO.
func New(bucket, region, endpoint string, opts ...Option) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3 bucket name required")
	}
	s := &Store{
		bucket:       bucket,
		rawPrefix:    DefaultRawPrefix,
		resultPrefix: DefaultResultPrefix,
		logger:       slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.client == nil {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(region))
		}
		if endpoint != "" {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("local", "local", ""),
			))
		}
		cfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		var clientOpts []func(*s3.Options)
		if endpoint != "" {
			clientOpts = append(clientOpts, func(o *s3.Options) {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			})
		}
		s.client = s3.NewFromConfig(cfg, clientOpts...)
	}
	return s, nil
}

// key builds {prefix}/{date}/{ULID}.{ext}. ULIDs are timestamp-derived and
// lexicographically sortable, so keys keep the original time ordering without
// same-millisecond collisions.
func (s *Store) key(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s.%s", prefix, now.UTC().Format("2006-01-02"), ulid.Make(), ext)
}

// SaveRawText archives the original input text with optional metadata.
// It never propagates a failure; it logs and reports false instead.
func (s *Store) SaveRawText(ctx context.Context, text string, metadata map[string]any) bool {
	now := time.Now()
	meta := map[string]string{
		"timestamp": now.UTC().Format(time.RFC3339),
		"source":    "pulse-sentiment-api",
	}
	for k, v := range metadata {
		meta[k] = fmt.Sprint(v)
	}

	key := s.key(s.rawPrefix, "txt", now)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(text),
		ContentType: aws.String("text/plain"),
		Metadata:    meta,
	})
	if err != nil {
		metrics.ArchiveFailures.Add(1)
		s.logger.Error("failed to archive raw text", "key", key, "error", err)
		return false
	}
	return true
}

// resultDocument is the JSON body written by SaveResult.
type resultDocument struct {
	Timestamp   string  `json:"timestamp"`
	Text        string  `json:"text"`
	Sentiment   string  `json:"sentiment"`
	Confidence  float64 `json:"confidence"`
	ProcessedBy string  `json:"processed_by"`
}

// SaveResult archives the analysis outcome as a JSON document. Like
// SaveRawText it reports success as a boolean and never propagates errors.
func (s *Store) SaveResult(ctx context.Context, text, sentiment string, confidence float64) bool {
	now := time.Now()
	doc := resultDocument{
		Timestamp:   now.UTC().Format(time.RFC3339),
		Text:        text,
		Sentiment:   sentiment,
		Confidence:  confidence,
		ProcessedBy: "aws_comprehend",
	}
	body, err := json.Marshal(doc)
	if err != nil {
		metrics.ArchiveFailures.Add(1)
		s.logger.Error("failed to marshal analysis result", "error", err)
		return false
	}

	key := s.key(s.resultPrefix, "json", now)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"timestamp":  doc.Timestamp,
			"sentiment":  sentiment,
			"confidence": fmt.Sprintf("%g", confidence),
		},
	})
	if err != nil {
		metrics.ArchiveFailures.Add(1)
		s.logger.Error("failed to archive analysis result", "key", key, "error", err)
		return false
	}
	return true
}

// List enumerates archived objects under a prefix, for inspection endpoints
// only; nothing in the analyze path depends on it.
func (s *Store) List(ctx context.Context, prefix string, limit int) ([]types.ObjectInfo, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}

	objects := make([]types.ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		info := types.ObjectInfo{Key: aws.ToString(obj.Key)}
		if obj.Size != nil {
			info.Size = *obj.Size
		}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		objects = append(objects, info)
	}
	return objects, nil
}

// Ping probes bucket reachability. Health reporting only.
func (s *Store) Ping(ctx context.Context) bool {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		s.logger.Warn("S3 bucket unreachable", "bucket", s.bucket, "error", err)
		return false
	}
	return true
}
