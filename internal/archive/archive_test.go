package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	putInput  *s3.PutObjectInput
	putErr    error
	listInput *s3.ListObjectsV2Input
	listOut   *s3.ListObjectsV2Output
	listErr   error
	headErr   error
}

func (m *mockS3) PutObject(_ context.Context, input *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.putInput = input
	return &s3.PutObjectOutput{}, m.putErr
}

func (m *mockS3) ListObjectsV2(_ context.Context, input *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.listInput = input
	if m.listOut == nil {
		m.listOut = &s3.ListObjectsV2Output{}
	}
	return m.listOut, m.listErr
}

func (m *mockS3) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, m.headErr
}

func newTestStore(t *testing.T, mock *mockS3) *Store {
	t.Helper()
	s, err := New("market-sentiment", "us-east-1", "", WithClient(mock))
	require.NoError(t, err)
	return s
}

func TestSaveRawText(t *testing.T) {
	mock := &mockS3{}
	s := newTestStore(t, mock)

	ok := s.SaveRawText(context.Background(), "stocks tumbled", map[string]any{"ticker": "ACME", "attempt": 2})
	assert.True(t, ok)

	require.NotNil(t, mock.putInput)
	assert.Equal(t, "market-sentiment", *mock.putInput.Bucket)
	assert.True(t, strings.HasPrefix(*mock.putInput.Key, "raw/text/"+time.Now().UTC().Format("2006-01-02")+"/"))
	assert.True(t, strings.HasSuffix(*mock.putInput.Key, ".txt"))
	assert.Equal(t, "text/plain", *mock.putInput.ContentType)
	assert.Equal(t, "ACME", mock.putInput.Metadata["ticker"])
	assert.Equal(t, "2", mock.putInput.Metadata["attempt"])
	assert.NotEmpty(t, mock.putInput.Metadata["timestamp"])

	body, err := io.ReadAll(mock.putInput.Body)
	require.NoError(t, err)
	assert.Equal(t, "stocks tumbled", string(body))
}

func TestSaveRawText_FailureReturnsFalse(t *testing.T) {
	mock := &mockS3{putErr: errors.New("access denied")}
	s := newTestStore(t, mock)

	assert.False(t, s.SaveRawText(context.Background(), "text", nil))
}

func TestSaveResult(t *testing.T) {
	mock := &mockS3{}
	s := newTestStore(t, mock)

	ok := s.SaveResult(context.Background(), "stocks tumbled", "NEGATIVE", 0.87)
	assert.True(t, ok)

	require.NotNil(t, mock.putInput)
	assert.True(t, strings.HasPrefix(*mock.putInput.Key, "processed/sentiment/"))
	assert.True(t, strings.HasSuffix(*mock.putInput.Key, ".json"))
	assert.Equal(t, "application/json", *mock.putInput.ContentType)
	assert.Equal(t, "NEGATIVE", mock.putInput.Metadata["sentiment"])
	assert.Equal(t, "0.87", mock.putInput.Metadata["confidence"])

	var doc resultDocument
	raw, err := io.ReadAll(mock.putInput.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "stocks tumbled", doc.Text)
	assert.Equal(t, "NEGATIVE", doc.Sentiment)
	assert.InDelta(t, 0.87, doc.Confidence, 1e-9)
	assert.Equal(t, "aws_comprehend", doc.ProcessedBy)
}

func TestSaveResult_FailureReturnsFalse(t *testing.T) {
	mock := &mockS3{putErr: errors.New("no such bucket")}
	s := newTestStore(t, mock)

	assert.False(t, s.SaveResult(context.Background(), "text", "NEUTRAL", 0.5))
}

func TestCustomPrefixes(t *testing.T) {
	mock := &mockS3{}
	s, err := New("bucket", "us-east-1", "", WithClient(mock), WithPrefixes("inputs/", "/outputs"))
	require.NoError(t, err)

	s.SaveRawText(context.Background(), "text", nil)
	assert.True(t, strings.HasPrefix(*mock.putInput.Key, "inputs/"))

	s.SaveResult(context.Background(), "text", "NEUTRAL", 0.5)
	assert.True(t, strings.HasPrefix(*mock.putInput.Key, "outputs/"))
}

func TestList(t *testing.T) {
	modified := time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC)
	mock := &mockS3{listOut: &s3.ListObjectsV2Output{
		Contents: []s3types.Object{
			{Key: aws.String("raw/text/2026-08-12/x.txt"), Size: aws.Int64(42), LastModified: &modified},
			{Key: aws.String("raw/text/2026-08-12/y.txt"), Size: aws.Int64(7), LastModified: &modified},
		},
	}}
	s := newTestStore(t, mock)

	objects, err := s.List(context.Background(), "raw/", 25)
	require.NoError(t, err)
	require.Len(t, objects, 2)

	assert.Equal(t, "raw/", *mock.listInput.Prefix)
	assert.Equal(t, int32(25), *mock.listInput.MaxKeys)
	assert.Equal(t, "raw/text/2026-08-12/x.txt", objects[0].Key)
	assert.Equal(t, int64(42), objects[0].Size)
	assert.Equal(t, modified, objects[0].LastModified)
}

func TestList_ErrorPropagates(t *testing.T) {
	mock := &mockS3{listErr: errors.New("timeout")}
	s := newTestStore(t, mock)

	_, err := s.List(context.Background(), "", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing objects")
}

func TestPing(t *testing.T) {
	s := newTestStore(t, &mockS3{})
	assert.True(t, s.Ping(context.Background()))

	s = newTestStore(t, &mockS3{headErr: errors.New("forbidden")})
	assert.False(t, s.Ping(context.Background()))
}

func TestNew_MissingBucket(t *testing.T) {
	_, err := New("", "us-east-1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket name required")
}
