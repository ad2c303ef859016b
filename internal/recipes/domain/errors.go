package domain

import "errors"

var (
	ErrEmptyCatalog           = errors.New("no recipes match the requested category")
	ErrInvalidCategory        = errors.New("invalid recipe category")
	ErrInvalidDifficulty      = errors.New("invalid recipe difficulty")
	ErrRecipeNotFound         = errors.New("recipe not found")
	ErrNilRecipe              = errors.New("base recipe is required")
	ErrEnhancementUnavailable = errors.New("recipe enhancement unavailable")
	ErrFavoriteNotFound       = errors.New("favorite not found")
	ErrInvalidRecipe          = errors.New("recipe is missing required fields")
	ErrUnauthenticated        = errors.New("sign in required")
	ErrStorageDisabled        = errors.New("storage is not configured")
)
