package facematch

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/config"
)

// Match is one candidate from the enrolled-person collection
type Match struct {
	PersonID   string  `json:"person_id"`
	Confidence float64 `json:"confidence"`
}

// Matcher is the external face search contract consumed by the
// pipeline. An empty result or a failure both degrade to "unknown"
// upstream; the matcher never decides whether an event is dropped.
type Matcher interface {
	Search(ctx context.Context, image []byte) ([]Match, error)
}

type searchRequest struct {
	Image string `json:"image"`
}

type searchResponse struct {
	Matches []Match `json:"matches"`
	Error   string  `json:"error,omitempty"`
}

// Client calls the face matching service over HTTP
type Client struct {
	httpClient *resty.Client
}

func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.MatcherURL).
		SetTimeout(cfg.MatcherTimeout).
		SetRetryCount(cfg.MatcherRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if cfg.MatcherAPIKey != "" {
		client.SetHeader("X-API-Key", cfg.MatcherAPIKey)
	}

	log.Info().Str("url", cfg.MatcherURL).Dur("timeout", cfg.MatcherTimeout).Msg("Face matcher client initialized")
	return &Client{httpClient: client}
}

// Search submits image bytes and returns candidate matches, possibly
// none
func (c *Client) Search(ctx context.Context, image []byte) ([]Match, error) {
	request := searchRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	}

	var response searchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("/v1/faces/search")

	if err != nil {
		return nil, fmt.Errorf("face search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("face search returned status %d", resp.StatusCode())
	}
	if response.Error != "" {
		return nil, fmt.Errorf("face search error: %s", response.Error)
	}

	return response.Matches, nil
}

// Known reports whether any candidate clears the confidence threshold
func Known(matches []Match, minConfidence float64) bool {
	for _, m := range matches {
		if m.Confidence >= minConfidence {
			return true
		}
	}
	return false
}
