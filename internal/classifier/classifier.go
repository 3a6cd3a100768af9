// Package classifier adapts AWS Comprehend sentiment detection to the
// classification contract used by the HTTP layer.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	comptypes "github.com/aws/aws-sdk-go-v2/service/comprehend/types"

	"github.com/marketpulse/pulse/pkg/types"
)

const defaultTimeout = 10 * time.Second

// ComprehendAPI is the subset of the Comprehend client used by Client.
type ComprehendAPI interface {
	DetectSentiment(ctx context.Context, input *comprehend.DetectSentimentInput, opts ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
}

// Client calls Comprehend and normalizes its output to a label plus the
// winning label's raw score. Failures are never retried here; a circuit
// breaker sheds load when the upstream keeps failing.
type Client struct {
	api     ComprehendAPI
	breaker *CircuitBreaker
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithAPI sets a custom Comprehend client (useful for testing).
func WithAPI(api ComprehendAPI) Option {
	return func(c *Client) { c.api = api }
}

// WithTimeout bounds each DetectSentiment call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBreaker overrides the default circuit breaker settings.
func WithBreaker(cfg CircuitBreakerConfig) Option {
	return func(c *Client) { c.breaker = NewCircuitBreaker(cfg) }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Comprehend-backed classifier client. An endpoint override
// switches to static credentials for local stacks.
func New(region, endpoint string, opts ...Option) (*Client, error) {
	c := &Client{
		breaker: NewCircuitBreaker(DefaultCircuitBreakerConfig()),
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.api == nil {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(region))
		}
		if endpoint != "" {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider("local", "local", ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		var clientOpts []func(*comprehend.Options)
		if endpoint != "" {
			clientOpts = append(clientOpts, func(o *comprehend.Options) {
				o.BaseEndpoint = aws.String(endpoint)
			})
		}
		c.api = comprehend.NewFromConfig(awsCfg, clientOpts...)
	}
	return c, nil
}

// Classify detects the sentiment of text and returns the winning label with
// its score. The score is the argmax of Comprehend's per-label scores, not a
// renormalized probability.
func (c *Client) Classify(ctx context.Context, text string) (types.Classification, error) {
	if !c.breaker.Allow() {
		return types.Classification{}, fmt.Errorf("classifier circuit open: upstream failing")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.api.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: comptypes.LanguageCodeEn,
	})
	if err != nil {
		c.breaker.RecordFailure()
		return types.Classification{}, fmt.Errorf("detect sentiment: %w", err)
	}
	if out.SentimentScore == nil {
		c.breaker.RecordFailure()
		return types.Classification{}, fmt.Errorf("detect sentiment: response missing score")
	}
	c.breaker.RecordSuccess()

	return types.Classification{
		Label:      string(out.Sentiment),
		Confidence: maxScore(out.SentimentScore),
	}, nil
}

func maxScore(s *comptypes.SentimentScore) float64 {
	var best float32
	for _, v := range []*float32{s.Positive, s.Negative, s.Neutral, s.Mixed} {
		if v != nil && *v > best {
			best = *v
		}
	}
	return float64(best)
}
