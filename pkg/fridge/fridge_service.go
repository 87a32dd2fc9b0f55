package fridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"fridge-tracker-backend/domain"
	"fridge-tracker-backend/entities"
	"fridge-tracker-backend/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FridgeService interface {
		AddItem(ctx context.Context, req domain.AddFridgeItemRequest, userID uint) (domain.FridgeItemResponse, error)
		GetItems(ctx context.Context, userID uint, filter FilterState, sortState SortState) (domain.FridgeListResponse, error)
		DeleteItem(ctx context.Context, id uint, userID uint) error
		EmptyFridge(ctx context.Context, userID uint) (int64, error)
		SeedFridge(ctx context.Context, userID uint) (int, error)
		ScanReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID uint) (domain.ScanReceiptResponse, error)
		SaveScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID uint) (domain.SaveScannedItemsResponse, error)
	}

	fridgeService struct {
		fridgeRepository FridgeRepository
		s3               storage.AwsS3
	}
)

func NewFridgeService(fridgeRepository FridgeRepository, s3 storage.AwsS3) FridgeService {
	return &fridgeService{
		fridgeRepository: fridgeRepository,
		s3:               s3,
	}
}

const dateLayout = "2006-01-02"

func (s *fridgeService) AddItem(ctx context.Context, req domain.AddFridgeItemRequest, userID uint) (domain.FridgeItemResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.FridgeItemResponse{}, domain.ErrItemNameRequired
	}

	var category *string
	if req.Category != "" {
		if !IsValidCategory(req.Category) {
			return domain.FridgeItemResponse{}, domain.ErrUnknownCategory
		}
		category = &req.Category
	}

	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return domain.FridgeItemResponse{}, domain.ErrInvalidQuantity
		}
		quantity = *req.Quantity
	}

	var expiryDate *time.Time
	if req.ExpiryDate != "" {
		parsed, err := time.Parse(dateLayout, req.ExpiryDate)
		if err != nil {
			return domain.FridgeItemResponse{}, domain.ErrInvalidExpiryDate
		}
		expiryDate = &parsed
	}

	item := &entities.FridgeItem{
		Name:       name,
		Category:   category,
		Quantity:   &quantity,
		ExpiryDate: expiryDate,
		AddedByID:  userID,
	}

	if err := s.fridgeRepository.AddItem(ctx, item); err != nil {
		return domain.FridgeItemResponse{}, err
	}

	return decorateItem(item, time.Now()), nil
}

func (s *fridgeService) GetItems(ctx context.Context, userID uint, filter FilterState, sortState SortState) (domain.FridgeListResponse, error) {
	items, err := s.fridgeRepository.GetItems(ctx, userID)
	if err != nil {
		return domain.FridgeListResponse{}, err
	}

	now := time.Now()
	visible := SortItems(ApplyFilters(items, filter, now), sortState)

	response := make([]domain.FridgeItemResponse, 0, len(visible))
	for _, item := range visible {
		response = append(response, decorateItem(item, now))
	}

	return domain.FridgeListResponse{
		Items: response,
		Total: len(response),
	}, nil
}

func (s *fridgeService) DeleteItem(ctx context.Context, id uint, userID uint) error {
	item, err := s.fridgeRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}

	if item.AddedByID != userID {
		return domain.ErrUnauthorizedAccess
	}

	affected, err := s.fridgeRepository.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Raced with another delete of the same id.
		return domain.ErrItemNotFound
	}
	return nil
}

func (s *fridgeService) EmptyFridge(ctx context.Context, userID uint) (int64, error) {
	return s.fridgeRepository.DeleteAllItems(ctx, userID)
}

func (s *fridgeService) SeedFridge(ctx context.Context, userID uint) (int, error) {
	now := time.Now()
	added := 0

	for _, seed := range seedItems {
		category := seed.Category
		quantity := seed.Quantity

		var expiryDate *time.Time
		if !seed.NoExpiry {
			expiry := now.AddDate(0, 0, seed.ExpiryDays)
			expiryDate = &expiry
		}

		item := &entities.FridgeItem{
			Name:       seed.Name,
			Category:   &category,
			Quantity:   &quantity,
			ExpiryDate: expiryDate,
			AddedByID:  userID,
		}

		if err := s.fridgeRepository.AddItem(ctx, item); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}

func (s *fridgeService) ScanReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID uint) (domain.ScanReceiptResponse, error) {
	scanID := uuid.New()
	fileName := fmt.Sprintf("receipt-%s", scanID.String())
	objectKey, err := s.s3.UploadFile(fileName, req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.ScanReceiptResponse{}, err
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)

	receiptScan := &entities.ReceiptScan{
		ID:       scanID,
		UserID:   userID,
		ImageURL: imageURL,
		Status:   "Pending",
	}

	if err := s.fridgeRepository.CreateReceiptScan(ctx, receiptScan); err != nil {
		_ = s.s3.DeleteFile(objectKey)
		return domain.ScanReceiptResponse{}, err
	}

	extraction, err := s.extractReceiptItems(ctx, req.ReceiptImage)
	if err != nil {
		// The failed scan keeps its record for auditing, but not the
		// orphaned image.
		s.discardScanImage(receiptScan)
		receiptScan.Status = "Failed"
		receiptScan.Results = err.Error()
		_ = s.fridgeRepository.UpdateReceiptScan(ctx, receiptScan)
		return domain.ScanReceiptResponse{}, domain.ErrReceiptProcessingFailed
	}

	resultsJSON, _ := json.Marshal(extraction)
	receiptScan.Status = "Processed"
	receiptScan.Results = string(resultsJSON)
	if err := s.fridgeRepository.UpdateReceiptScan(ctx, receiptScan); err != nil {
		return domain.ScanReceiptResponse{}, err
	}

	return domain.ScanReceiptResponse{
		ScanID:   scanID.String(),
		ImageURL: imageURL,
		Items:    NormalizeExtraction(extraction),
	}, nil
}

func (s *fridgeService) SaveScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID uint) (domain.SaveScannedItemsResponse, error) {
	scan, err := s.fridgeRepository.GetReceiptScanByID(ctx, req.ScanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SaveScannedItemsResponse{}, domain.ErrInvalidReceiptScan
		}
		return domain.SaveScannedItemsResponse{}, err
	}

	if scan.UserID != userID {
		return domain.SaveScannedItemsResponse{}, domain.ErrUnauthorizedAccess
	}

	toAdd := FoodItemsToAdd(req.Items)
	if len(toAdd) == 0 {
		return domain.SaveScannedItemsResponse{}, domain.ErrNoFoodItems
	}

	now := time.Now()
	scanIDStr := scan.ID.String()
	results := make([]domain.ScannedItemResult, 0, len(toAdd))
	added := 0

	for _, reviewItem := range toAdd {
		item, buildErr := scannedItemEntity(reviewItem, userID, scanIDStr, now)
		if buildErr == nil {
			buildErr = s.fridgeRepository.AddItem(ctx, item)
		}

		// One bad item never aborts the rest of the batch.
		if buildErr != nil {
			results = append(results, domain.ScannedItemResult{
				Success: false,
				Item:    reviewItem.Name,
				Error:   buildErr.Error(),
			})
			continue
		}

		added++
		results = append(results, domain.ScannedItemResult{
			Success: true,
			Item:    reviewItem.Name,
		})
	}

	scan.Status = "Completed"
	if err := s.fridgeRepository.UpdateReceiptScan(ctx, scan); err != nil {
		return domain.SaveScannedItemsResponse{}, err
	}

	return domain.SaveScannedItemsResponse{
		Results: results,
		Added:   added,
	}, nil
}

// discardScanImage removes a scan's uploaded image. The record only
// stores the public link, so the object key is recovered from it.
func (s *fridgeService) discardScanImage(receiptScan *entities.ReceiptScan) {
	if key := s.s3.GetObjectKeyFromLink(receiptScan.ImageURL); key != "" {
		_ = s.s3.DeleteFile(key)
	}
	receiptScan.ImageURL = ""
}

func scannedItemEntity(reviewItem domain.ReviewItem, userID uint, scanID string, now time.Time) (*entities.FridgeItem, error) {
	name := strings.TrimSpace(reviewItem.Name)
	if name == "" {
		return nil, domain.ErrItemNameRequired
	}

	category := NormalizeCategory(reviewItem.Category)

	quantity := reviewItem.Quantity
	if quantity < 1 {
		quantity = 1
	}

	var expiryDate *time.Time
	if reviewItem.ExpiryDays > 0 {
		expiry := now.AddDate(0, 0, reviewItem.ExpiryDays)
		expiryDate = &expiry
	}

	return &entities.FridgeItem{
		Name:          name,
		Category:      &category,
		Quantity:      &quantity,
		ExpiryDate:    expiryDate,
		AddedByID:     userID,
		ReceiptScanID: &scanID,
	}, nil
}

func decorateItem(item *entities.FridgeItem, now time.Time) domain.FridgeItemResponse {
	return domain.FridgeItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Category:    itemCategory(item),
		Quantity:    itemQuantity(item),
		ExpiryDate:  item.ExpiryDate,
		ExpiryState: string(ClassifyExpiry(item.ExpiryDate, now)),
		ExpiryLabel: ExpiryLabel(item.ExpiryDate, now),
		CategoryTag: CategoryTag(item.Category),
		CreatedAt:   item.CreatedAt,
	}
}
