package daily

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/catalog"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

func setupPublisher(t *testing.T, now time.Time) (*Publisher, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	p := NewPublisher(client, catalog.NewSelector(catalog.Default()), nil)
	p.now = func() time.Time { return now }
	return p, mr
}

func TestRunOnce_CachesEachCategory(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 30, 0, 0, time.Local)
	p, mr := setupPublisher(t, now)
	ctx := context.Background()

	require.NoError(t, p.RunOnce(ctx))

	raw, err := mr.Get("coffee:daily:brewing")
	require.NoError(t, err)
	var a Announcement
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, "2", a.Recipe.ID)
	assert.Equal(t, "2025-01-01", a.Date)

	assert.Equal(t, cacheTTL, mr.TTL("coffee:daily:espresso"))

	cached, err := p.Cached(ctx, domain.CategoryEspresso)
	require.NoError(t, err)
	assert.Equal(t, "7", cached.Recipe.ID)
}

func TestCached_Missing(t *testing.T) {
	p, _ := setupPublisher(t, time.Now())

	_, err := p.Cached(context.Background(), domain.CategoryBrewing)
	assert.ErrorIs(t, err, ErrNotCached)
}

func TestSubscribe_ReceivesAnnouncements(t *testing.T) {
	p, _ := setupPublisher(t, time.Date(2025, 1, 5, 8, 0, 0, 0, time.Local))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := p.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, p.RunOnce(ctx))

	got := map[domain.Category]string{}
	for len(got) < len(domain.Categories) {
		select {
		case a := <-ch:
			got[a.Category] = a.Recipe.ID
		case <-ctx.Done():
			t.Fatal("timed out waiting for announcements")
		}
	}
	assert.Equal(t, "1", got[domain.CategoryBrewing])
}

func TestRunOnce_RedisDown(t *testing.T) {
	p, mr := setupPublisher(t, time.Now())
	mr.Close()

	assert.Error(t, p.RunOnce(context.Background()))
}

func TestNewScheduler(t *testing.T) {
	p, _ := setupPublisher(t, time.Now())

	_, err := NewScheduler("not a schedule", p, nil)
	assert.Error(t, err)

	s, err := NewScheduler("", p, nil)
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 1)
}
