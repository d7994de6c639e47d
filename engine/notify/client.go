package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"

	"github.com/greetly/greetly/engine/core"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 2 * time.Second
)

// Config carries the gateway settings for one client. BackoffBase is the
// wait before the first retry and doubles per attempt; tests shrink it to
// run synchronously.
type Config struct {
	URL         string
	APIKey      string
	From        string
	To          string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
}

// Client posts one consolidated message to the HTTP messaging gateway,
// retrying transient failures with exponential backoff. It knows nothing
// about matches; callers decide whether a message should be sent at all.
type Client struct {
	http *resty.Client
	cfg  Config
	now  func() time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &Client{http: httpClient, cfg: cfg, now: time.Now}
}

type sendRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// Deliver sends the message, retrying every failure class identically up
// to the attempt cap. The outcome always reports the attempt count and the
// instant of the final attempt; error text is redacted before it can reach
// a PipelineResult.
func (c *Client) Deliver(ctx context.Context, message string) core.DeliveryOutcome {
	payload := sendRequest{To: c.cfg.To, From: c.cfg.From, Message: message}
	backoff := retry.WithMaxRetries(uint64(c.cfg.MaxAttempts-1), retry.NewExponential(c.cfg.BackoffBase))

	attempts := 0
	messageID := ""
	var lastErr error
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		resp, err := c.http.R().SetContext(ctx).SetBody(payload).Post(c.cfg.URL)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			return retry.RetryableError(lastErr)
		}
		if resp.IsSuccess() {
			messageID = extractMessageID(resp.Body())
			return nil
		}
		lastErr = classifyStatus(resp.StatusCode())
		return retry.RetryableError(lastErr)
	})

	outcome := core.DeliveryOutcome{Timestamp: c.now(), Attempts: attempts}
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		outcome.ErrorDescription = core.RedactError(lastErr)
		return outcome
	}
	outcome.Success = true
	outcome.MessageID = messageID
	return outcome
}

// classifyStatus maps a non-2xx status onto a human-readable prefix. The
// classification feeds error text only; the retry loop treats every class
// the same.
func classifyStatus(status int) error {
	switch {
	case status == 401 || status == 403:
		return fmt.Errorf("authentication rejected: status %d", status)
	case status == 400:
		return fmt.Errorf("gateway rejected request: status %d", status)
	default:
		return fmt.Errorf("gateway returned status %d", status)
	}
}

// extractMessageID pulls a provider-issued identifier out of the response
// body, falling back to a sentinel when the provider omits one.
func extractMessageID(body []byte) string {
	for _, key := range []string{"messageId", "message_id", "id"} {
		if v := gjson.GetBytes(body, key); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return "unknown"
}
