package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

var _ Enhancer = (*HTTPClient)(nil)

// HTTPClient calls a remote generation endpoint. Calls are bounded by a
// timeout and a token-bucket limiter; a call that would exceed the limit is
// rejected immediately instead of waiting.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPClient creates a client posting to endpoint. rps <= 0 disables rate
// limiting.
func NewHTTPClient(endpoint string, timeout time.Duration, rps float64, burst int) *HTTPClient {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}
	return &HTTPClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Enhance posts req and returns the generated recipe. The reply must report
// success and carry a complete recipe.
func (c *HTTPClient) Enhance(ctx context.Context, req Request) (domain.Recipe, error) {
	if !c.limiter.Allow() {
		return domain.Recipe{}, fmt.Errorf("%w: rate limited", domain.ErrEnhancementUnavailable)
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: marshal request: %w", domain.ErrEnhancementUnavailable, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: create request: %w", domain.ErrEnhancementUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.AccessToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: call generator: %w", domain.ErrEnhancementUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: read response: %w", domain.ErrEnhancementUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Recipe{}, fmt.Errorf("%w: generator returned status %d: %s",
			domain.ErrEnhancementUnavailable, resp.StatusCode, string(body))
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: unmarshal response: %w", domain.ErrEnhancementUnavailable, err)
	}
	if !out.Success || out.Recipe == nil {
		return domain.Recipe{}, fmt.Errorf("%w: generator reported failure: %s", domain.ErrEnhancementUnavailable, out.Error)
	}
	if !out.Recipe.Complete() {
		return domain.Recipe{}, fmt.Errorf("%w: generated recipe is missing fields", domain.ErrEnhancementUnavailable)
	}

	return *out.Recipe, nil
}
