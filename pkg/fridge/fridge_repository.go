package fridge

import (
	"context"

	"fridge-tracker-backend/entities"

	"gorm.io/gorm"
)

type (
	FridgeRepository interface {
		AddItem(ctx context.Context, item *entities.FridgeItem) error
		GetItemByID(ctx context.Context, id uint) (*entities.FridgeItem, error)
		DeleteItem(ctx context.Context, id uint) (int64, error)
		GetItems(ctx context.Context, userID uint) ([]*entities.FridgeItem, error)
		DeleteAllItems(ctx context.Context, userID uint) (int64, error)

		// Receipt scanning related
		CreateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error
		GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error)
		UpdateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error
	}

	fridgeRepository struct {
		db *gorm.DB
	}
)

func NewFridgeRepository(db *gorm.DB) FridgeRepository {
	return &fridgeRepository{db: db}
}

func (r *fridgeRepository) AddItem(ctx context.Context, item *entities.FridgeItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *fridgeRepository) GetItemByID(ctx context.Context, id uint) (*entities.FridgeItem, error) {
	var item entities.FridgeItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *fridgeRepository) DeleteItem(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FridgeItem{})
	return result.RowsAffected, result.Error
}

func (r *fridgeRepository) GetItems(ctx context.Context, userID uint) ([]*entities.FridgeItem, error) {
	var items []*entities.FridgeItem
	if err := r.db.WithContext(ctx).
		Where("added_by_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *fridgeRepository) DeleteAllItems(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("added_by_id = ?", userID).Delete(&entities.FridgeItem{})
	return result.RowsAffected, result.Error
}

func (r *fridgeRepository) CreateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Create(receiptScan).Error
}

func (r *fridgeRepository) GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error) {
	var receiptScan entities.ReceiptScan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receiptScan).Error; err != nil {
		return nil, err
	}
	return &receiptScan, nil
}

func (r *fridgeRepository) UpdateReceiptScan(ctx context.Context, receiptScan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Save(receiptScan).Error
}
