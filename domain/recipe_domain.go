package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetSuggestions  = "recipe suggestions generated successfully"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessGetSavedRecipes = "saved recipes retrieved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageNoItemsForRecipes      = "no items in your fridge to generate recipes from"
	MessageFailedGetSuggestions   = "failed to generate recipe suggestions"
	MessageFailedSaveRecipe       = "failed to save recipe"
	MessageFailedGetSavedRecipes  = "failed to retrieve saved recipes"
	MessageFailedDeleteRecipe     = "failed to delete recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrGeminiAPIFailed          = errors.New("gemini API processing failed")
)

type (
	RecipeIngredient struct {
		Item     string `json:"item"`
		Quantity string `json:"quantity"`
		Owned    bool   `json:"owned"`
	}

	// RecipeSuggestion is one AI-generated recipe. UsesExpiringItems is
	// recomputed locally from the caller's fridge, never trusted from the
	// model output.
	RecipeSuggestion struct {
		Title             string             `json:"title"`
		Description       string             `json:"description"`
		Ingredients       []RecipeIngredient `json:"ingredients"`
		Instructions      []string           `json:"instructions"`
		UsesExpiringItems []string           `json:"uses_expiring_items"`
	}

	RecipeSuggestionsResponse struct {
		Recipes []RecipeSuggestion `json:"recipes"`
		Message string             `json:"message"`
	}

	SaveRecipeRequest struct {
		Title             string             `json:"title" validate:"required"`
		Description       string             `json:"description"`
		Ingredients       []RecipeIngredient `json:"ingredients" validate:"required,dive"`
		Instructions      []string           `json:"instructions" validate:"required"`
		UsesExpiringItems []string           `json:"uses_expiring_items"`
	}

	SavedRecipeResponse struct {
		ID                uint               `json:"id"`
		Title             string             `json:"title"`
		Description       string             `json:"description"`
		Ingredients       []RecipeIngredient `json:"ingredients"`
		Instructions      []string           `json:"instructions"`
		UsesExpiringItems []string           `json:"uses_expiring_items"`
		SavedAt           time.Time          `json:"saved_at"`
	}
)
