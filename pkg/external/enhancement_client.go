package external

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/assessment-report-engine/internal/domain"
)

// ErrEnhancementFailed is returned for any enhancement call that did not yield usable text
var ErrEnhancementFailed = errors.New("text enhancement failed")

// EnhancementConfig represents configuration for the text-enhancement service client
type EnhancementConfig struct {
	BaseURL        string               `json:"base_url"`
	APIKey         string               `json:"api_key"`
	Timeout        time.Duration        `json:"timeout"`
	RateLimit      int                  `json:"rate_limit"` // requests per second
	CircuitBreaker CircuitBreakerConfig `json:"circuit_breaker"`
}

// EnhanceRequest is the body posted to the enhancement service
type EnhanceRequest struct {
	Section     string `json:"section"`
	Content     string `json:"content"`
	DetailLevel string `json:"detail_level"`
	Format      string `json:"format"`
}

// EnhanceResponse is the body returned by the enhancement service
type EnhanceResponse struct {
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// EnhancementClient calls the external text-enhancement service with rate limiting,
// a circuit breaker and an optional response cache. It implements domain.TextEnhancer.
type EnhancementClient struct {
	httpClient *resty.Client
	rateLimit  *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	cache      domain.Cache
	logger     *logrus.Logger
}

// NewEnhancementClient creates a new enhancement client. cache may be nil.
func NewEnhancementClient(config EnhancementConfig, cache domain.Cache, logger *logrus.Logger) *EnhancementClient {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RateLimit <= 0 {
		config.RateLimit = 5
	}
	if config.CircuitBreaker.MaxRequests == 0 {
		config.CircuitBreaker = DefaultCircuitBreakerConfig()
	}

	client := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if config.APIKey != "" {
		client.SetAuthToken(config.APIKey)
	}

	return &EnhancementClient{
		httpClient: client,
		rateLimit:  rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		breaker:    NewCircuitBreaker("enhancement", config.CircuitBreaker, logger),
		cache:      cache,
		logger:     logger,
	}
}

// Enhance post-processes a generated section. Any failure, including an empty or
// malformed response, is returned as an error wrapping ErrEnhancementFailed.
func (c *EnhancementClient) Enhance(ctx context.Context, sectionName, rawContent string, opts domain.EnhanceOptions) (string, error) {
	req := EnhanceRequest{
		Section:     sectionName,
		Content:     rawContent,
		DetailLevel: string(opts.DetailLevel),
		Format:      string(opts.Format),
	}

	key := c.cacheKey(req)
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	if err := c.rateLimit.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit wait: %v", ErrEnhancementFailed, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: service unavailable (circuit breaker open)", ErrEnhancementFailed)
		}
		return "", fmt.Errorf("%w: %v", ErrEnhancementFailed, err)
	}

	enhanced := result.(string)
	if c.cache != nil {
		c.cache.Set(ctx, key, enhanced)
	}

	c.logger.WithFields(logrus.Fields{
		"section": sectionName,
		"raw_len": len(rawContent),
		"out_len": len(enhanced),
	}).Debug("Section enhanced")

	return enhanced, nil
}

func (c *EnhancementClient) post(ctx context.Context, req EnhanceRequest) (string, error) {
	var response EnhanceResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&response).
		Post("/enhance")
	if err != nil {
		return "", fmt.Errorf("enhancement request failed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("enhancement service returned status %d", resp.StatusCode())
	}
	if response.Error != "" {
		return "", fmt.Errorf("enhancement service error: %s", response.Error)
	}
	if strings.TrimSpace(response.Content) == "" {
		return "", errors.New("enhancement service returned empty content")
	}

	return response.Content, nil
}

func (c *EnhancementClient) cacheKey(req EnhanceRequest) string {
	hash := sha256.Sum256([]byte(strings.Join([]string{req.Section, req.DetailLevel, req.Format, req.Content}, "::")))
	return "enhance:" + hex.EncodeToString(hash[:])
}

// State returns the circuit breaker state
func (c *EnhancementClient) State() gobreaker.State {
	return c.breaker.State()
}
