package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fridge-tracker-backend/domain"
	"fridge-tracker-backend/entities"
	"fridge-tracker-backend/internal/utils"
	"fridge-tracker-backend/pkg/fridge"

	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GetSuggestions(ctx context.Context, userID uint) (domain.RecipeSuggestionsResponse, error)
		SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID uint) (domain.SavedRecipeResponse, error)
		GetSavedRecipes(ctx context.Context, userID uint) ([]domain.SavedRecipeResponse, error)
		DeleteSavedRecipe(ctx context.Context, id uint, userID uint) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		fridgeRepository fridge.FridgeRepository
	}
)

func NewRecipeService(recipeRepository RecipeRepository, fridgeRepository fridge.FridgeRepository) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		fridgeRepository: fridgeRepository,
	}
}

func (s *recipeService) GetSuggestions(ctx context.Context, userID uint) (domain.RecipeSuggestionsResponse, error) {
	items, err := s.fridgeRepository.GetItems(ctx, userID)
	if err != nil {
		return domain.RecipeSuggestionsResponse{}, err
	}

	if len(items) == 0 {
		return domain.RecipeSuggestionsResponse{
			Recipes: []domain.RecipeSuggestion{},
			Message: domain.MessageNoItemsForRecipes,
		}, nil
	}

	now := time.Now()

	// Soonest-expiring first so the prompt leads with what needs using up.
	sorted := fridge.SortItems(items, fridge.SortState{Key: fridge.SortByExpiry, Direction: fridge.SortAsc})

	ownedNames := make([]string, 0, len(sorted))
	expiringNames := make([]string, 0, len(sorted))
	promptLines := make([]string, 0, len(sorted))

	for _, item := range sorted {
		ownedNames = append(ownedNames, item.Name)
		promptLines = append(promptLines, describeItem(item, now))
		if isExpiringForRecipes(item, now) {
			expiringNames = append(expiringNames, item.Name)
		}
	}

	recipes, err := s.generateRecipes(ctx, promptLines)
	if err != nil {
		return domain.RecipeSuggestionsResponse{}, domain.ErrGeminiAPIFailed
	}

	crossReference(recipes, ownedNames, expiringNames)

	message := fmt.Sprintf("Generated %d recipe suggestions.", len(recipes))
	if len(recipes) == 0 {
		message = "Could not generate any recipes from your fridge contents."
	}

	return domain.RecipeSuggestionsResponse{
		Recipes: recipes,
		Message: message,
	}, nil
}

// isExpiringForRecipes matches the recipe prompt's notion of expiring:
// anything with a known date up to three days out, already-expired
// included.
func isExpiringForRecipes(item *entities.FridgeItem, now time.Time) bool {
	if item.ExpiryDate == nil {
		return false
	}
	state := fridge.ClassifyExpiry(item.ExpiryDate, now)
	return state == fridge.ExpiryExpired || state == fridge.ExpiryExpiringSoon
}

func describeItem(item *entities.FridgeItem, now time.Time) string {
	category := "uncategorised"
	if item.Category != nil {
		category = *item.Category
	}

	quantity := 1
	if item.Quantity != nil {
		quantity = *item.Quantity
	}

	expiry := "No expiry date"
	if item.ExpiryDate != nil {
		expiry = fmt.Sprintf("Expires: %s", item.ExpiryDate.Format("2006-01-02"))
		if isExpiringForRecipes(item, now) {
			expiry += " - EXPIRING SOON"
		}
	}

	return fmt.Sprintf("%s (Category: %s, Quantity: %d, %s)", item.Name, category, quantity, expiry)
}

const recipePrompt = "You are a cooking assistant that helps reduce food waste. Here are the items in my fridge:\n%s\n\n" +
	"Suggest 2 different recipes that use as many of these ingredients as possible, especially the ones marked EXPIRING SOON. " +
	"Respond ONLY with a valid JSON object of the form " +
	"{\"recipes\": [{\"title\": string, \"description\": string, \"ingredients\": [{\"item\": string, \"quantity\": string}], \"instructions\": [string]}]}. " +
	"Do not include any explanations, markdown formatting, or extra text."

// generateRecipes calls Gemini once with a bounded timeout and parses the
// structured recipe payload. Failures are surfaced, never retried.
func (s *recipeService) generateRecipes(ctx context.Context, promptLines []string) ([]domain.RecipeSuggestion, error) {
	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return nil, fmt.Errorf("GEMINI_MODEL not set")
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": fmt.Sprintf(recipePrompt, strings.Join(promptLines, "\n")),
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.7,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, domain.ErrGeminiAPIFailed
	}

	return parseRecipes(geminiResp.Candidates[0].Content.Parts[0].Text)
}

// parseRecipes decodes the model's recipe payload defensively: missing
// arrays become empty, missing strings become empty strings, and an
// ingredient given as a bare string becomes an item with no quantity.
func parseRecipes(responseText string) ([]domain.RecipeSuggestion, error) {
	responseText = utils.CleanModelJSON(responseText)

	var payload struct {
		Recipes []struct {
			Title        string            `json:"title"`
			Description  string            `json:"description"`
			Ingredients  []json.RawMessage `json:"ingredients"`
			Instructions []string          `json:"instructions"`
		} `json:"recipes"`
	}

	if err := json.Unmarshal([]byte(responseText), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse recipe response: %w", err)
	}

	recipes := make([]domain.RecipeSuggestion, 0, len(payload.Recipes))
	for _, raw := range payload.Recipes {
		ingredients := make([]domain.RecipeIngredient, 0, len(raw.Ingredients))
		for _, rawIng := range raw.Ingredients {
			var obj struct {
				Item     string `json:"item"`
				Quantity string `json:"quantity"`
			}
			if err := json.Unmarshal(rawIng, &obj); err == nil && obj.Item != "" {
				ingredients = append(ingredients, domain.RecipeIngredient{Item: obj.Item, Quantity: obj.Quantity})
				continue
			}

			var text string
			if err := json.Unmarshal(rawIng, &text); err == nil && text != "" {
				ingredients = append(ingredients, domain.RecipeIngredient{Item: text})
			}
		}

		instructions := raw.Instructions
		if instructions == nil {
			instructions = []string{}
		}

		recipes = append(recipes, domain.RecipeSuggestion{
			Title:             raw.Title,
			Description:       raw.Description,
			Ingredients:       ingredients,
			Instructions:      instructions,
			UsesExpiringItems: []string{},
		})
	}

	return recipes, nil
}

// crossReference recomputes the owned flags and the expiring-item usage
// for each recipe locally. Matching is case-insensitive substring in
// either direction; the model's own claims are ignored.
func crossReference(recipes []domain.RecipeSuggestion, ownedNames, expiringNames []string) {
	for i := range recipes {
		for j := range recipes[i].Ingredients {
			recipes[i].Ingredients[j].Owned = matchesAny(recipes[i].Ingredients[j].Item, ownedNames)
		}

		used := make([]string, 0, len(expiringNames))
		for _, expiring := range expiringNames {
			for _, ingredient := range recipes[i].Ingredients {
				if strings.Contains(strings.ToLower(ingredient.Item), strings.ToLower(expiring)) {
					used = append(used, expiring)
					break
				}
			}
		}
		recipes[i].UsesExpiringItems = used
	}
}

func matchesAny(ingredient string, names []string) bool {
	lowered := strings.ToLower(ingredient)
	for _, name := range names {
		lowerName := strings.ToLower(name)
		if strings.Contains(lowered, lowerName) || strings.Contains(lowerName, lowered) {
			return true
		}
	}
	return false
}

func (s *recipeService) SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID uint) (domain.SavedRecipeResponse, error) {
	ingredientsJSON, err := json.Marshal(req.Ingredients)
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}
	instructionsJSON, err := json.Marshal(req.Instructions)
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}
	expiringJSON, err := json.Marshal(req.UsesExpiringItems)
	if err != nil {
		return domain.SavedRecipeResponse{}, err
	}

	saved := &entities.SavedRecipe{
		UserID:            userID,
		Title:             req.Title,
		Description:       req.Description,
		Ingredients:       string(ingredientsJSON),
		Instructions:      string(instructionsJSON),
		UsesExpiringItems: string(expiringJSON),
		SavedAt:           time.Now(),
	}

	if err := s.recipeRepository.CreateSavedRecipe(ctx, saved); err != nil {
		return domain.SavedRecipeResponse{}, err
	}

	return toSavedRecipeResponse(saved), nil
}

func (s *recipeService) GetSavedRecipes(ctx context.Context, userID uint) ([]domain.SavedRecipeResponse, error) {
	recipes, err := s.recipeRepository.GetSavedRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.SavedRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toSavedRecipeResponse(recipe))
	}
	return response, nil
}

func (s *recipeService) DeleteSavedRecipe(ctx context.Context, id uint, userID uint) error {
	recipe, err := s.recipeRepository.GetSavedRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if recipe.UserID != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}

	return s.recipeRepository.DeleteSavedRecipe(ctx, id)
}

func toSavedRecipeResponse(saved *entities.SavedRecipe) domain.SavedRecipeResponse {
	var ingredients []domain.RecipeIngredient
	if err := json.Unmarshal([]byte(saved.Ingredients), &ingredients); err != nil {
		ingredients = []domain.RecipeIngredient{}
	}

	var instructions []string
	if err := json.Unmarshal([]byte(saved.Instructions), &instructions); err != nil {
		instructions = []string{}
	}

	var expiring []string
	if err := json.Unmarshal([]byte(saved.UsesExpiringItems), &expiring); err != nil {
		expiring = []string{}
	}

	return domain.SavedRecipeResponse{
		ID:                saved.ID,
		Title:             saved.Title,
		Description:       saved.Description,
		Ingredients:       ingredients,
		Instructions:      instructions,
		UsesExpiringItems: expiring,
		SavedAt:           saved.SavedAt,
	}
}
