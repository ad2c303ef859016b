package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

const (
	favoriteKeyPrefix   = "coffee:fav:"  // coffee:fav:{user_id}:{recipe_id}
	userFavoritesPrefix = "coffee:user:" // coffee:user:{user_id}:favorites
)

// FavoriteRepository handles Redis operations for saved recipes
type FavoriteRepository struct {
	client *redis.Client
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(client *redis.Client) *FavoriteRepository {
	return &FavoriteRepository{client: client}
}

// Save stores a favorite. A favorite with the same user and recipe ID
// replaces the earlier one.
func (r *FavoriteRepository) Save(ctx context.Context, fav *domain.Favorite) error {
	if fav.UserID == "" {
		return fmt.Errorf("favorite user id is required")
	}
	if fav.ID == "" {
		fav.ID = domain.NewCustomID()
	}
	if fav.SavedAt.IsZero() {
		fav.SavedAt = time.Now().UTC()
	}

	data, err := json.Marshal(fav)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.favoriteKey(fav.UserID, fav.ID), data, 0)
	pipe.SAdd(ctx, r.userFavoritesKey(fav.UserID), fav.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// Get retrieves a single favorite
func (r *FavoriteRepository) Get(ctx context.Context, userID, recipeID string) (*domain.Favorite, error) {
	data, err := r.client.Get(ctx, r.favoriteKey(userID, recipeID)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrFavoriteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	var fav domain.Favorite
	if err := json.Unmarshal(data, &fav); err != nil {
		return nil, fmt.Errorf("failed to unmarshal favorite: %w", err)
	}
	return &fav, nil
}

// ListByUser returns a user's favorites, most recently saved first.
// Index entries whose payload has gone missing are skipped.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	ids, err := r.client.SMembers(ctx, r.userFavoritesKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for user: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Favorite{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.favoriteKey(userID, id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var fav domain.Favorite
		if err := json.Unmarshal([]byte(s), &fav); err != nil {
			return nil, fmt.Errorf("failed to unmarshal favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		if favorites[i].SavedAt.Equal(favorites[j].SavedAt) {
			return favorites[i].ID < favorites[j].ID
		}
		return favorites[i].SavedAt.After(favorites[j].SavedAt)
	})
	return favorites, nil
}

// Delete removes a favorite
func (r *FavoriteRepository) Delete(ctx context.Context, userID, recipeID string) error {
	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, r.favoriteKey(userID, recipeID))
	pipe.SRem(ctx, r.userFavoritesKey(userID), recipeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if del.Val() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) favoriteKey(userID, recipeID string) string {
	return fmt.Sprintf("%s%s:%s", favoriteKeyPrefix, userID, recipeID)
}

func (r *FavoriteRepository) userFavoritesKey(userID string) string {
	return fmt.Sprintf("%s%s:favorites", userFavoritesPrefix, userID)
}
