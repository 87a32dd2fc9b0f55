package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessScanReceipt  = "receipt processed successfully"
	MessageSuccessSaveScanned  = "scanned items saved to fridge"
	MessageFailedScanReceipt   = "failed to process receipt"
	MessageFailedSaveScanned   = "failed to save scanned items"
	MessageFailedUploadReceipt = "failed to upload receipt"

	ErrReceiptProcessingFailed = errors.New("receipt processing failed")
	ErrInvalidReceiptScan      = errors.New("invalid receipt scan ID")
	ErrNoFoodItems             = errors.New("no food items to add to the fridge")
	ErrGeminiProcessingFailed  = errors.New("gemini processing failed")
)

type (
	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	// ReviewItem is one extracted receipt line presented to the user for
	// review before insertion. Non-food items are listed but excluded from
	// the insert unless the user toggles IsFood on.
	ReviewItem struct {
		Name         string `json:"name" validate:"required"`
		OriginalName string `json:"original_name"`
		Category     string `json:"category"`
		Quantity     int    `json:"quantity" validate:"min=0"`
		ExpiryDays   int    `json:"expiry_days"`
		IsFood       bool   `json:"is_food"`
	}

	ScanReceiptResponse struct {
		ScanID   string       `json:"scan_id"`
		ImageURL string       `json:"image_url"`
		Items    []ReviewItem `json:"items"`
	}

	SaveScannedItemsRequest struct {
		ScanID string       `json:"scan_id" validate:"required,uuid"`
		Items  []ReviewItem `json:"items" validate:"required,dive"`
	}

	// ScannedItemResult reports the outcome of one item in a bulk insert.
	// A failed item never aborts the rest of the batch.
	ScannedItemResult struct {
		Success bool   `json:"success"`
		Item    string `json:"item"`
		Error   string `json:"error,omitempty"`
	}

	SaveScannedItemsResponse struct {
		Results []ScannedItemResult `json:"results"`
		Added   int                 `json:"added"`
	}
)
