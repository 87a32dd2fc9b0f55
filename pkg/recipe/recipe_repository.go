package recipe

import (
	"context"

	"fridge-tracker-backend/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateSavedRecipe(ctx context.Context, recipe *entities.SavedRecipe) error
		GetSavedRecipeByID(ctx context.Context, id uint) (*entities.SavedRecipe, error)
		GetSavedRecipes(ctx context.Context, userID uint) ([]*entities.SavedRecipe, error)
		DeleteSavedRecipe(ctx context.Context, id uint) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateSavedRecipe(ctx context.Context, recipe *entities.SavedRecipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetSavedRecipeByID(ctx context.Context, id uint) (*entities.SavedRecipe, error) {
	var recipe entities.SavedRecipe
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetSavedRecipes(ctx context.Context, userID uint) ([]*entities.SavedRecipe, error) {
	var recipes []*entities.SavedRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) DeleteSavedRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.SavedRecipe{}).Error
}
