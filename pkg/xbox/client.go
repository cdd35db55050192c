package xbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/angelsmp/discord-whitelist/pkg/config"
)

// ErrProfileNotFound is returned when the lookup service has no profile
// for the requested gamertag.
var ErrProfileNotFound = errors.New("xbox profile not found")

// maxResponseSize bounds lookup response bodies; XUIDs are short.
const maxResponseSize = 1 << 10

// Lookup resolves a gamertag to its numeric XUID
type Lookup interface {
	LookupXUID(ctx context.Context, gamertag string) (string, error)
}

// Client calls the external Xbox profile lookup service
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a profile lookup client from configuration
func NewClient(cfg *config.XboxConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// LookupXUID resolves a gamertag to its decimal XUID string.
// A 404 from the service maps to ErrProfileNotFound; any other non-200
// response is an upstream failure.
func (c *Client) LookupXUID(ctx context.Context, gamertag string) (string, error) {
	endpoint := fmt.Sprintf("%s/xuid/%s", c.baseURL, url.PathEscape(gamertag))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("build xuid request: %w", err)
	}
	req.Header.Set("X-AUTH", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("xuid lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrProfileNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("xuid lookup: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("read xuid response: %w", err)
	}

	xuid := strings.TrimSpace(string(body))
	if xuid == "" {
		return "", fmt.Errorf("xuid lookup: empty response for %q", gamertag)
	}

	c.logger.Debug("Resolved gamertag", zap.String("gamertag", gamertag), zap.String("xuid", xuid))
	return xuid, nil
}
