package recipe

import (
	"context"
	"testing"
	"time"

	"fridge-tracker-backend/domain"
	"fridge-tracker-backend/entities"
	"fridge-tracker-backend/pkg/fridge"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeRecipeRepository is an in-memory RecipeRepository for service tests.
type fakeRecipeRepository struct {
	nextID  uint
	recipes map[uint]*entities.SavedRecipe
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{nextID: 1, recipes: make(map[uint]*entities.SavedRecipe)}
}

func (r *fakeRecipeRepository) CreateSavedRecipe(_ context.Context, recipe *entities.SavedRecipe) error {
	recipe.ID = r.nextID
	r.nextID++
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *fakeRecipeRepository) GetSavedRecipeByID(_ context.Context, id uint) (*entities.SavedRecipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (r *fakeRecipeRepository) GetSavedRecipes(_ context.Context, userID uint) ([]*entities.SavedRecipe, error) {
	out := make([]*entities.SavedRecipe, 0, len(r.recipes))
	for id := uint(1); id < r.nextID; id++ {
		if recipe, ok := r.recipes[id]; ok && recipe.UserID == userID {
			out = append(out, recipe)
		}
	}
	return out, nil
}

func (r *fakeRecipeRepository) DeleteSavedRecipe(_ context.Context, id uint) error {
	delete(r.recipes, id)
	return nil
}

// emptyFridgeRepository satisfies fridge.FridgeRepository with an always
// empty fridge; GetSuggestions only needs GetItems.
type emptyFridgeRepository struct{}

func (emptyFridgeRepository) AddItem(context.Context, *entities.FridgeItem) error { return nil }
func (emptyFridgeRepository) GetItemByID(context.Context, uint) (*entities.FridgeItem, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyFridgeRepository) DeleteItem(context.Context, uint) (int64, error) { return 0, nil }
func (emptyFridgeRepository) GetItems(context.Context, uint) ([]*entities.FridgeItem, error) {
	return nil, nil
}
func (emptyFridgeRepository) DeleteAllItems(context.Context, uint) (int64, error) { return 0, nil }
func (emptyFridgeRepository) CreateReceiptScan(context.Context, *entities.ReceiptScan) error {
	return nil
}
func (emptyFridgeRepository) GetReceiptScanByID(context.Context, string) (*entities.ReceiptScan, error) {
	return nil, gorm.ErrRecordNotFound
}
func (emptyFridgeRepository) UpdateReceiptScan(context.Context, *entities.ReceiptScan) error {
	return nil
}

var _ fridge.FridgeRepository = emptyFridgeRepository{}

func TestGetSuggestionsEmptyFridge(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepository(), emptyFridgeRepository{})

	res, err := svc.GetSuggestions(context.Background(), 1)
	require.NoError(t, err, "an empty fridge is not an error")
	assert.Empty(t, res.Recipes)
	assert.Equal(t, domain.MessageNoItemsForRecipes, res.Message)
}

func TestParseRecipes(t *testing.T) {
	raw := `{"recipes":[{"title":"Veggie Stir Fry","description":"Quick dinner","ingredients":[{"item":"Carrots","quantity":"2"},{"item":"Soy Sauce","quantity":"1 tbsp"}],"instructions":["Chop","Fry"]}]}`

	recipes, err := parseRecipes(raw)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	assert.Equal(t, "Veggie Stir Fry", recipes[0].Title)
	require.Len(t, recipes[0].Ingredients, 2)
	assert.Equal(t, "Carrots", recipes[0].Ingredients[0].Item)
	assert.Equal(t, "2", recipes[0].Ingredients[0].Quantity)
	assert.Equal(t, []string{"Chop", "Fry"}, recipes[0].Instructions)
	assert.NotNil(t, recipes[0].UsesExpiringItems)
}

func TestParseRecipesBareStringIngredients(t *testing.T) {
	raw := `{"recipes":[{"title":"Toast","ingredients":["Bread","Butter"],"instructions":["Toast it"]}]}`

	recipes, err := parseRecipes(raw)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	require.Len(t, recipes[0].Ingredients, 2)
	assert.Equal(t, "Bread", recipes[0].Ingredients[0].Item)
	assert.Empty(t, recipes[0].Ingredients[0].Quantity)
}

func TestParseRecipesMissingFields(t *testing.T) {
	recipes, err := parseRecipes(`{"recipes":[{"title":"Mystery Dish"}]}`)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Empty(t, recipes[0].Ingredients)
	assert.NotNil(t, recipes[0].Instructions)
	assert.Empty(t, recipes[0].Instructions)
}

func TestParseRecipesStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"recipes\":[{\"title\":\"Soup\",\"ingredients\":[],\"instructions\":[]}]}\n```"

	recipes, err := parseRecipes(raw)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Soup", recipes[0].Title)
}

func TestParseRecipesSurroundingProse(t *testing.T) {
	raw := "Sure! Here are your recipes:\n{\"recipes\":[{\"title\":\"Salad\"}]}\nEnjoy!"

	recipes, err := parseRecipes(raw)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
}

func TestParseRecipesRejectsGarbage(t *testing.T) {
	_, err := parseRecipes("I could not come up with anything")
	assert.Error(t, err)
}

func TestCrossReference(t *testing.T) {
	recipes := []domain.RecipeSuggestion{
		{
			Title: "Omelette",
			Ingredients: []domain.RecipeIngredient{
				{Item: "Fresh Eggs"},
				{Item: "Cheddar cheese"},
				{Item: "Truffle Oil"},
			},
		},
	}

	crossReference(recipes, []string{"eggs", "Cheese"}, []string{"eggs"})

	assert.True(t, recipes[0].Ingredients[0].Owned, "substring match is case-insensitive")
	assert.True(t, recipes[0].Ingredients[1].Owned)
	assert.False(t, recipes[0].Ingredients[2].Owned)
	assert.Equal(t, []string{"eggs"}, recipes[0].UsesExpiringItems)
}

func TestCrossReferenceIgnoresModelClaims(t *testing.T) {
	recipes := []domain.RecipeSuggestion{
		{
			Title:             "Pasta",
			Ingredients:       []domain.RecipeIngredient{{Item: "Spaghetti", Owned: true}},
			UsesExpiringItems: []string{"made up by the model"},
		},
	}

	crossReference(recipes, []string{"tomatoes"}, []string{"tomatoes"})

	assert.False(t, recipes[0].Ingredients[0].Owned)
	assert.Empty(t, recipes[0].UsesExpiringItems)
}

func TestMatchesAnyBothDirections(t *testing.T) {
	// Ingredient text containing an owned name, and an owned name
	// containing the ingredient text, both count.
	assert.True(t, matchesAny("cheddar cheese", []string{"cheese"}))
	assert.True(t, matchesAny("milk", []string{"whole milk 2L"}))
	assert.False(t, matchesAny("saffron", []string{"milk", "cheese"}))
}

func TestSaveAndGetSavedRecipes(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepository(), emptyFridgeRepository{})
	ctx := context.Background()

	saved, err := svc.SaveRecipe(ctx, domain.SaveRecipeRequest{
		Title:       "Frittata",
		Description: "Uses up the eggs",
		Ingredients: []domain.RecipeIngredient{
			{Item: "Eggs", Quantity: "6", Owned: true},
		},
		Instructions:      []string{"Whisk", "Bake"},
		UsesExpiringItems: []string{"Eggs"},
	}, 1)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.WithinDuration(t, time.Now(), saved.SavedAt, time.Minute)

	recipes, err := svc.GetSavedRecipes(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	// Round-trips through the JSON text columns intact.
	assert.Equal(t, "Frittata", recipes[0].Title)
	require.Len(t, recipes[0].Ingredients, 1)
	assert.Equal(t, "Eggs", recipes[0].Ingredients[0].Item)
	assert.True(t, recipes[0].Ingredients[0].Owned)
	assert.Equal(t, []string{"Whisk", "Bake"}, recipes[0].Instructions)
	assert.Equal(t, []string{"Eggs"}, recipes[0].UsesExpiringItems)
}

func TestGetSavedRecipesScopedToUser(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepository(), emptyFridgeRepository{})
	ctx := context.Background()

	_, err := svc.SaveRecipe(ctx, domain.SaveRecipeRequest{Title: "Mine", Instructions: []string{"x"}}, 1)
	require.NoError(t, err)
	_, err = svc.SaveRecipe(ctx, domain.SaveRecipeRequest{Title: "Theirs", Instructions: []string{"x"}}, 2)
	require.NoError(t, err)

	recipes, err := svc.GetSavedRecipes(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Mine", recipes[0].Title)
}

func TestDeleteSavedRecipe(t *testing.T) {
	svc := NewRecipeService(newFakeRecipeRepository(), emptyFridgeRepository{})
	ctx := context.Background()

	saved, err := svc.SaveRecipe(ctx, domain.SaveRecipeRequest{Title: "Gone soon", Instructions: []string{"x"}}, 1)
	require.NoError(t, err)

	err = svc.DeleteSavedRecipe(ctx, saved.ID, 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	require.NoError(t, svc.DeleteSavedRecipe(ctx, saved.ID, 1))

	err = svc.DeleteSavedRecipe(ctx, saved.ID, 1)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestIsExpiringForRecipes(t *testing.T) {
	now := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)

	expired := now.AddDate(0, 0, -2)
	soon := now.AddDate(0, 0, 3)
	fresh := now.AddDate(0, 0, 10)

	assert.True(t, isExpiringForRecipes(&entities.FridgeItem{ExpiryDate: &expired}, now))
	assert.True(t, isExpiringForRecipes(&entities.FridgeItem{ExpiryDate: &soon}, now))
	assert.False(t, isExpiringForRecipes(&entities.FridgeItem{ExpiryDate: &fresh}, now))
	assert.False(t, isExpiringForRecipes(&entities.FridgeItem{}, now))
}
