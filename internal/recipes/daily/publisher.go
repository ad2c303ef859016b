// Package daily caches and announces the recipe of the day.
package daily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/catalog"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

const (
	cacheKeyPrefix = "coffee:daily:" // coffee:daily:{category}
	Channel        = "coffee:daily"
	cacheTTL       = 24 * time.Hour
	dateLayout     = "2006-01-02"
)

var ErrNotCached = errors.New("daily recipe not cached")

// Announcement is the payload cached and published for each category.
type Announcement struct {
	Category domain.Category `json:"category"`
	Date     string          `json:"date"`
	Recipe   domain.Recipe   `json:"recipe"`
}

// Publisher computes today's recipe per category, caches it in Redis and
// publishes it on Channel.
type Publisher struct {
	client   *redis.Client
	selector *catalog.Selector
	now      func() time.Time
	logger   *zap.Logger
}

func NewPublisher(client *redis.Client, selector *catalog.Selector, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		client:   client,
		selector: selector,
		now:      time.Now,
		logger:   logger,
	}
}

// RunOnce refreshes every category. Categories without recipes are skipped.
func (p *Publisher) RunOnce(ctx context.Context) error {
	now := p.now()

	for _, cat := range domain.Categories {
		recipe, err := p.selector.TodayAt(now, cat)
		if errors.Is(err, domain.ErrEmptyCatalog) {
			p.logger.Warn("no recipes for category", zap.String("category", string(cat)))
			continue
		}
		if err != nil {
			return err
		}

		data, err := json.Marshal(Announcement{
			Category: cat,
			Date:     now.Format(dateLayout),
			Recipe:   recipe,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal daily recipe: %w", err)
		}

		pipe := p.client.Pipeline()
		pipe.Set(ctx, cacheKey(cat), data, cacheTTL)
		pipe.Publish(ctx, Channel, data)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to publish daily recipe: %w", err)
		}

		p.logger.Info("daily recipe published",
			zap.String("category", string(cat)),
			zap.String("recipe_id", recipe.ID),
		)
	}
	return nil
}

// Cached returns the last announcement stored for cat.
func (p *Publisher) Cached(ctx context.Context, cat domain.Category) (Announcement, error) {
	data, err := p.client.Get(ctx, cacheKey(cat)).Bytes()
	if err == redis.Nil {
		return Announcement{}, ErrNotCached
	}
	if err != nil {
		return Announcement{}, fmt.Errorf("failed to get daily recipe: %w", err)
	}

	var a Announcement
	if err := json.Unmarshal(data, &a); err != nil {
		return Announcement{}, fmt.Errorf("failed to unmarshal daily recipe: %w", err)
	}
	return a, nil
}

// Subscribe streams announcements until ctx is done. The returned channel
// is closed when the subscription ends.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan Announcement, error) {
	sub := p.client.Subscribe(ctx, Channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to daily recipes: %w", err)
	}

	out := make(chan Announcement)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var a Announcement
				if err := json.Unmarshal([]byte(msg.Payload), &a); err != nil {
					p.logger.Warn("dropping malformed daily announcement", zap.Error(err))
					continue
				}
				select {
				case out <- a:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func cacheKey(cat domain.Category) string {
	return cacheKeyPrefix + string(cat)
}
