// Package service coordinates catalog selection, customization, the optional
// enhancer and per-user storage.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/coffeecraft/coffeecraft-backend/internal/auth"
	"github.com/coffeecraft/coffeecraft-backend/internal/logging"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/catalog"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/customizer"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/enhancer"
)

// FavoriteStore persists saved recipes per user.
type FavoriteStore interface {
	Save(ctx context.Context, fav *domain.Favorite) error
	Get(ctx context.Context, userID, recipeID string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
	Delete(ctx context.Context, userID, recipeID string) error
}

// HistoryStore records generated recipes per user.
type HistoryStore interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error)
}

// CustomizeResult is a customized recipe and how it was produced.
type CustomizeResult struct {
	Recipe domain.Recipe `json:"recipe"`
	Source string        `json:"source"`
}

// GenerateRequest asks the flavor generator to enrich a recipe. When
// BaseRecipe is nil a random recipe from Category is used.
type GenerateRequest struct {
	Preferences string
	Category    string
	BaseRecipe  *domain.Recipe
}

type RecipeService struct {
	selector   *catalog.Selector
	customizer *customizer.Customizer
	generator  *enhancer.FlavorGenerator
	enhancer   enhancer.Enhancer
	favorites  FavoriteStore
	history    HistoryStore
	logger     *zap.Logger
}

type Option func(*RecipeService)

// WithEnhancer puts e in front of the rule-based customizer.
func WithEnhancer(e enhancer.Enhancer) Option {
	return func(s *RecipeService) { s.enhancer = e }
}

func WithFavorites(store FavoriteStore) Option {
	return func(s *RecipeService) { s.favorites = store }
}

func WithHistory(store HistoryStore) Option {
	return func(s *RecipeService) { s.history = store }
}

func WithGenerator(g *enhancer.FlavorGenerator) Option {
	return func(s *RecipeService) { s.generator = g }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *RecipeService) { s.logger = l }
}

func NewRecipeService(selector *catalog.Selector, c *customizer.Customizer, opts ...Option) *RecipeService {
	s := &RecipeService{
		selector:   selector,
		customizer: c,
		generator:  enhancer.NewFlavorGenerator(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the recipes of category, or the whole catalog for "".
func (s *RecipeService) List(category string) ([]domain.Recipe, error) {
	if category == "" {
		return s.selector.Catalog().All(), nil
	}
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.selector.ByCategory(cat), nil
}

// Today returns the recipe of the day for category on the calendar day of
// at. A zero at means now; an empty category means the whole catalog.
func (s *RecipeService) Today(category string, at time.Time) (domain.Recipe, error) {
	cat, err := optionalCategory(category)
	if err != nil {
		return domain.Recipe{}, err
	}
	if at.IsZero() {
		return s.selector.Today(cat)
	}
	return s.selector.TodayAt(at, cat)
}

func (s *RecipeService) Random(category string) (domain.Recipe, error) {
	cat, err := optionalCategory(category)
	if err != nil {
		return domain.Recipe{}, err
	}
	return s.selector.Random(cat)
}

// optionalCategory parses category; an empty value selects the whole catalog.
func optionalCategory(category string) (domain.Category, error) {
	if category == "" {
		return "", nil
	}
	return domain.ParseCategory(category)
}

func (s *RecipeService) Get(id string) (domain.Recipe, error) {
	return s.selector.Get(id)
}

// Customize picks a random base recipe from category and tailors it to
// preferences. The enhancer is tried first when configured; any failure
// falls back to the rule-based customizer. Signed-in callers get a history
// entry.
func (s *RecipeService) Customize(ctx context.Context, sess *auth.Session, preferences, category string) (CustomizeResult, error) {
	cat, err := domain.ParseCategory(category)
	if err != nil {
		return CustomizeResult{}, err
	}

	base, err := s.selector.Random(cat)
	if err != nil {
		return CustomizeResult{}, err
	}

	log := logging.FromContext(ctx, s.logger).With(
		zap.String("category", string(cat)),
		zap.String("base_recipe", base.ID),
	)

	result, ok := s.tryEnhance(ctx, log, sess, preferences, cat, base)
	if !ok {
		custom, err := s.customizer.Customize(&base, preferences)
		if err != nil {
			return CustomizeResult{}, err
		}
		result = CustomizeResult{Recipe: custom, Source: domain.SourceRules}
	}

	s.recordHistory(ctx, log, sess, preferences, result.Recipe)

	log.Debug("recipe customized",
		zap.String("recipe_id", result.Recipe.ID),
		zap.String("source", result.Source),
	)
	return result, nil
}

func (s *RecipeService) tryEnhance(ctx context.Context, log *zap.Logger, sess *auth.Session, preferences string, cat domain.Category, base domain.Recipe) (CustomizeResult, bool) {
	if s.enhancer == nil {
		return CustomizeResult{}, false
	}

	req := enhancer.Request{
		Preferences: preferences,
		Category:    cat,
		BaseRecipe:  base,
	}
	if sess != nil {
		req.AccessToken = sess.Token
	}

	out, err := s.enhancer.Enhance(ctx, req)
	if err == nil && !out.Complete() {
		err = domain.ErrEnhancementUnavailable
	}
	if err != nil {
		log.Warn("enhancement unavailable, using rules", zap.Error(err))
		return CustomizeResult{}, false
	}
	return CustomizeResult{Recipe: out, Source: domain.SourceEnhanced}, true
}

// Generate applies the flavor generator to a base recipe. Text matching no
// flavor profile returns the base unchanged.
func (s *RecipeService) Generate(ctx context.Context, sess *auth.Session, req GenerateRequest) (domain.Recipe, error) {
	var base domain.Recipe
	if req.BaseRecipe != nil {
		base = req.BaseRecipe.Clone()
		if !base.Complete() {
			return domain.Recipe{}, domain.ErrInvalidRecipe
		}
	} else {
		cat, err := domain.ParseCategory(req.Category)
		if err != nil {
			return domain.Recipe{}, err
		}
		if base, err = s.selector.Random(cat); err != nil {
			return domain.Recipe{}, err
		}
	}

	out, _ := s.generator.Generate(base, req.Preferences)

	log := logging.FromContext(ctx, s.logger)
	s.recordHistory(ctx, log, sess, req.Preferences, out)
	return out, nil
}

// recordHistory is best-effort; failures are logged and swallowed.
func (s *RecipeService) recordHistory(ctx context.Context, log *zap.Logger, sess *auth.Session, preferences string, recipe domain.Recipe) {
	if sess == nil || sess.UID == "" || s.history == nil {
		return
	}
	entry := &domain.HistoryEntry{
		UserID:      sess.UID,
		Preferences: preferences,
		Recipe:      recipe,
	}
	if err := s.history.Create(ctx, entry); err != nil {
		log.Warn("failed to record recipe history", zap.String("user_id", sess.UID), zap.Error(err))
	}
}

// SaveFavorite stores recipe for the signed-in user.
func (s *RecipeService) SaveFavorite(ctx context.Context, sess *auth.Session, recipe domain.Recipe) (domain.Favorite, error) {
	if err := s.requireUser(sess, s.favorites != nil); err != nil {
		return domain.Favorite{}, err
	}

	fav := domain.Favorite{Recipe: recipe.Clone(), UserID: sess.UID}
	if err := s.favorites.Save(ctx, &fav); err != nil {
		logging.FromContext(ctx, s.logger).Error("failed to save favorite", zap.String("user_id", sess.UID), zap.Error(err))
		return domain.Favorite{}, err
	}
	return fav, nil
}

func (s *RecipeService) ListFavorites(ctx context.Context, sess *auth.Session) ([]domain.Favorite, error) {
	if err := s.requireUser(sess, s.favorites != nil); err != nil {
		return nil, err
	}
	return s.favorites.ListByUser(ctx, sess.UID)
}

func (s *RecipeService) GetFavorite(ctx context.Context, sess *auth.Session, recipeID string) (domain.Favorite, error) {
	if err := s.requireUser(sess, s.favorites != nil); err != nil {
		return domain.Favorite{}, err
	}
	fav, err := s.favorites.Get(ctx, sess.UID, recipeID)
	if err != nil {
		return domain.Favorite{}, err
	}
	return *fav, nil
}

func (s *RecipeService) DeleteFavorite(ctx context.Context, sess *auth.Session, recipeID string) error {
	if err := s.requireUser(sess, s.favorites != nil); err != nil {
		return err
	}
	return s.favorites.Delete(ctx, sess.UID, recipeID)
}

// History lists the signed-in user's generated recipes, newest first.
func (s *RecipeService) History(ctx context.Context, sess *auth.Session, limit int) ([]domain.HistoryEntry, error) {
	if err := s.requireUser(sess, s.history != nil); err != nil {
		return nil, err
	}
	return s.history.ListByUser(ctx, sess.UID, limit)
}

func (s *RecipeService) requireUser(sess *auth.Session, configured bool) error {
	if sess == nil || sess.UID == "" {
		return domain.ErrUnauthenticated
	}
	if !configured {
		return domain.ErrStorageDisabled
	}
	return nil
}
