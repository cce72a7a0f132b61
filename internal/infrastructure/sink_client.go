package infrastructure

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"campaigngo/internal/domain"
	"campaigngo/pkg/logger"
	"campaigngo/pkg/metrics"

	"golang.org/x/time/rate"
)

const sinkAPI = "sink"

// implements domain.CampaignExporter by POSTing created campaigns to a webhook
type SinkClient struct {
	client      *http.Client
	sinkURL     string
	sinkSecret  string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewSinkClient(sinkURL, sinkSecret string, timeout time.Duration, perSecond int, logger *logger.Logger, metrics *metrics.Metrics) *SinkClient {
	if perSecond <= 0 {
		perSecond = 10
	}
	return &SinkClient{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sinkURL:     sinkURL,
		sinkSecret:  sinkSecret,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(rate.Limit(perSecond), perSecond),
	}
}

func (c *SinkClient) Export(ctx context.Context, campaign domain.ParsedCampaign) error {
	if c.sinkURL == "" {
		return fmt.Errorf("sink URL not configured")
	}

	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPICall(sinkAPI, "rate_limit", time.Since(start))
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	payload, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sinkURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Campaign-ID", campaign.ID)
	if c.sinkSecret != "" {
		req.Header.Set("X-Signature", Sign(c.sinkSecret, payload))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPICall(sinkAPI, "network_error", time.Since(start))
		return fmt.Errorf("failed to export campaign: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordExternalAPICall(sinkAPI, fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return fmt.Errorf("sink API returned status %d", resp.StatusCode)
	}

	c.metrics.RecordExternalAPICall(sinkAPI, "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":         c.sinkURL,
		"duration":    duration,
		"campaign_id": campaign.ID,
	}).Info("Exported campaign")

	return nil
}

// Sign returns the hex HMAC-SHA256 of payload, as sent in X-Signature.
func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
