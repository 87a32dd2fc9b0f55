package fridge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fridge-tracker-backend/domain"
	"fridge-tracker-backend/internal/utils"
)

// receiptExtraction is the wire shape the model is asked to produce for a
// receipt image. Both arrays may come back missing or empty.
type receiptExtraction struct {
	FoodItems []struct {
		Item        string `json:"item"`
		ReceiptName string `json:"receiptName"`
		Category    string `json:"category"`
		Quantity    int    `json:"quantity"`
		ExpiresIn   int    `json:"expiresIn"`
	} `json:"foodItems"`
	NonFoodItems []struct {
		Item string `json:"item"`
	} `json:"nonFoodItems"`
}

const defaultNonFoodExpiryDays = 14

// NormalizeExtraction turns a raw extraction into review items. The model
// output is treated as unreliable: categories outside the closed set fall
// back to miscellaneous, quantities below 1 become 1, and non-food items
// are kept visible but flagged out of the insert.
func NormalizeExtraction(ext receiptExtraction) []domain.ReviewItem {
	items := make([]domain.ReviewItem, 0, len(ext.FoodItems)+len(ext.NonFoodItems))

	for _, food := range ext.FoodItems {
		name := strings.TrimSpace(food.Item)
		if name == "" {
			name = strings.TrimSpace(food.ReceiptName)
		}
		if name == "" {
			continue
		}

		quantity := food.Quantity
		if quantity < 1 {
			quantity = 1
		}

		expiryDays := food.ExpiresIn
		if expiryDays < 0 {
			expiryDays = 0
		}

		items = append(items, domain.ReviewItem{
			Name:         name,
			OriginalName: food.ReceiptName,
			Category:     NormalizeCategory(food.Category),
			Quantity:     quantity,
			ExpiryDays:   expiryDays,
			IsFood:       true,
		})
	}

	for _, nonFood := range ext.NonFoodItems {
		name := strings.TrimSpace(nonFood.Item)
		if name == "" {
			continue
		}
		items = append(items, domain.ReviewItem{
			Name:         name,
			OriginalName: name,
			Category:     CategoryFallback,
			Quantity:     1,
			ExpiryDays:   defaultNonFoodExpiryDays,
			IsFood:       false,
		})
	}

	return items
}

// FoodItemsToAdd filters the reviewed items down to the ones queued for
// insertion. Only items with the food flag on make the cut.
func FoodItemsToAdd(items []domain.ReviewItem) []domain.ReviewItem {
	toAdd := make([]domain.ReviewItem, 0, len(items))
	for _, item := range items {
		if item.IsFood {
			toAdd = append(toAdd, item)
		}
	}
	return toAdd
}

// parseExtraction decodes the model's receipt response. Missing arrays
// decode to empty slices rather than errors.
func parseExtraction(responseText string) (receiptExtraction, error) {
	var ext receiptExtraction
	if err := json.Unmarshal([]byte(utils.CleanModelJSON(responseText)), &ext); err != nil {
		return receiptExtraction{}, fmt.Errorf("failed to parse receipt extraction: %w", err)
	}
	return ext, nil
}

const receiptPrompt = "You are reading a supermarket receipt image. Extract every line item and respond ONLY with a valid JSON object with two arrays: " +
	"'foodItems', each entry having 'item' (a clean human-readable food name), 'receiptName' (the exact text on the receipt), " +
	"'category' (one of: %s), 'quantity' (number) and 'expiresIn' (estimated days until the item expires, number), " +
	"and 'nonFoodItems', each entry having only 'item'. " +
	"Do not include any explanations, markdown formatting, or extra text."

func detectMimeType(imageFile *multipart.FileHeader) string {
	mimeType := imageFile.Header.Get("Content-Type")
	if mimeType != "" {
		return mimeType
	}

	switch strings.ToLower(filepath.Ext(imageFile.Filename)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// extractReceiptItems sends the receipt image to Gemini and parses the
// structured extraction. Single attempt, bounded timeout; a failure is
// surfaced to the caller, never retried.
func (s *fridgeService) extractReceiptItems(ctx context.Context, imageFile *multipart.FileHeader) (receiptExtraction, error) {
	file, err := imageFile.Open()
	if err != nil {
		return receiptExtraction{}, err
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return receiptExtraction{}, err
	}

	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return receiptExtraction{}, fmt.Errorf("GEMINI_API_KEY not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return receiptExtraction{}, fmt.Errorf("GEMINI_MODEL not set")
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": fmt.Sprintf(receiptPrompt, strings.Join(Categories, ", ")),
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": detectMimeType(imageFile),
							"data":      base64.StdEncoding.EncodeToString(fileData),
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return receiptExtraction{}, err
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return receiptExtraction{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return receiptExtraction{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return receiptExtraction{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
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
		return receiptExtraction{}, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return receiptExtraction{}, domain.ErrGeminiProcessingFailed
	}

	return parseExtraction(geminiResp.Candidates[0].Content.Parts[0].Text)
}
