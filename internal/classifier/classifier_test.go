package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comptypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpulse/pulse/pkg/types"
)

type mockComprehend struct {
	lastInput *comprehend.DetectSentimentInput
	out       *comprehend.DetectSentimentOutput
	err       error
	calls     int
}

func (m *mockComprehend) DetectSentiment(_ context.Context, input *comprehend.DetectSentimentInput, _ ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error) {
	m.calls++
	m.lastInput = input
	return m.out, m.err
}

func scoreOutput(sentiment comptypes.SentimentType, pos, neg, neu, mix float32) *comprehend.DetectSentimentOutput {
	return &comprehend.DetectSentimentOutput{
		Sentiment: sentiment,
		SentimentScore: &comptypes.SentimentScore{
			Positive: aws.Float32(pos),
			Negative: aws.Float32(neg),
			Neutral:  aws.Float32(neu),
			Mixed:    aws.Float32(mix),
		},
	}
}

func TestClassify_ArgmaxScore(t *testing.T) {
	mock := &mockComprehend{out: scoreOutput(comptypes.SentimentTypePositive, 0.91, 0.02, 0.05, 0.02)}
	c, err := New("us-east-1", "", WithAPI(mock))
	require.NoError(t, err)

	result, err := c.Classify(context.Background(), "markets surged on strong earnings")
	require.NoError(t, err)

	assert.Equal(t, types.SentimentPositive, result.Label)
	assert.InDelta(t, 0.91, result.Confidence, 1e-6)
	assert.Equal(t, "markets surged on strong earnings", *mock.lastInput.Text)
	assert.Equal(t, comptypes.LanguageCodeEn, mock.lastInput.LanguageCode)
}

func TestClassify_ConfidenceIsMaxAcrossLabels(t *testing.T) {
	// The reported confidence is the highest per-label score even when the
	// upstream label does not match it exactly.
	mock := &mockComprehend{out: scoreOutput(comptypes.SentimentTypeMixed, 0.2, 0.1, 0.25, 0.45)}
	c, err := New("us-east-1", "", WithAPI(mock))
	require.NoError(t, err)

	result, err := c.Classify(context.Background(), "good and bad news")
	require.NoError(t, err)
	assert.Equal(t, types.SentimentMixed, result.Label)
	assert.InDelta(t, 0.45, result.Confidence, 1e-6)
}

func TestClassify_UpstreamErrorPropagates(t *testing.T) {
	mock := &mockComprehend{err: errors.New("throttled")}
	c, err := New("us-east-1", "", WithAPI(mock))
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detect sentiment")
	// No retry.
	assert.Equal(t, 1, mock.calls)
}

func TestClassify_MissingScoreIsAnError(t *testing.T) {
	mock := &mockComprehend{out: &comprehend.DetectSentimentOutput{Sentiment: comptypes.SentimentTypeNeutral}}
	c, err := New("us-east-1", "", WithAPI(mock))
	require.NoError(t, err)

	_, err = c.Classify(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing score")
}

func TestClassify_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	mock := &mockComprehend{err: errors.New("unavailable")}
	c, err := New("us-east-1", "", WithAPI(mock), WithBreaker(CircuitBreakerConfig{
		FailThreshold: 2,
		Cooldown:      time.Hour,
		FailWindow:    time.Hour,
	}))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.Classify(ctx, "text")
	require.Error(t, err)
	_, err = c.Classify(ctx, "text")
	require.Error(t, err)

	// Third call fails fast without reaching the upstream.
	_, err = c.Classify(ctx, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit open")
	assert.Equal(t, 2, mock.calls)
}

func TestClassify_BreakerRecoversAfterCooldown(t *testing.T) {
	mock := &mockComprehend{err: errors.New("unavailable")}
	c, err := New("us-east-1", "", WithAPI(mock), WithBreaker(CircuitBreakerConfig{
		FailThreshold: 1,
		Cooldown:      10 * time.Millisecond,
		FailWindow:    time.Hour,
	}))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = c.Classify(ctx, "text")
	require.Error(t, err)
	assert.Equal(t, CircuitOpen, c.breaker.State())

	time.Sleep(20 * time.Millisecond)

	mock.err = nil
	mock.out = scoreOutput(comptypes.SentimentTypeNegative, 0.1, 0.8, 0.05, 0.05)
	result, err := c.Classify(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, types.SentimentNegative, result.Label)
	assert.Equal(t, CircuitClosed, c.breaker.State())
}
