// Package enhancer provides the optional generation step layered in front of
// the rule-based customizer. Every failure is reported as
// domain.ErrEnhancementUnavailable so callers can fall back unconditionally.
package enhancer

import (
	"context"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

// Request is the generation payload, shared by the remote client and the
// generate endpoint.
type Request struct {
	Preferences string          `json:"preferences"`
	Category    domain.Category `json:"category"`
	BaseRecipe  domain.Recipe   `json:"baseRecipe"`

	// AccessToken is forwarded as a bearer token, never serialized.
	AccessToken string `json:"-"`
}

// Response is the generation reply.
type Response struct {
	Success bool           `json:"success"`
	Recipe  *domain.Recipe `json:"recipe,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type Enhancer interface {
	Enhance(ctx context.Context, req Request) (domain.Recipe, error)
}
