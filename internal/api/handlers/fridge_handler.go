package handlers

import (
	"errors"

	"fridge-tracker-backend/domain"
	"fridge-tracker-backend/internal/api/presenters"
	"fridge-tracker-backend/pkg/fridge"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FridgeHandler interface {
		AddItem(c *fiber.Ctx) error
		GetItems(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		EmptyFridge(c *fiber.Ctx) error
		SeedFridge(c *fiber.Ctx) error
		ScanReceipt(c *fiber.Ctx) error
		SaveScannedItems(c *fiber.Ctx) error
	}

	fridgeHandler struct {
		fridgeService fridge.FridgeService
		validator     *validator.Validate
	}
)

func NewFridgeHandler(fridgeService fridge.FridgeService, validator *validator.Validate) FridgeHandler {
	return &fridgeHandler{
		fridgeService: fridgeService,
		validator:     validator,
	}
}

func (h *fridgeHandler) AddItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.AddFridgeItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	res, err := h.fridgeService.AddItem(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddItem)
}

func (h *fridgeHandler) GetItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	filter := fridge.FilterState{
		Category:     c.Query("category", ""),
		ExpiringOnly: c.QueryBool("expiring_only", false),
		LowStockOnly: c.QueryBool("low_stock_only", false),
	}

	sortState := fridge.SortState{
		Key:       fridge.SortKey(c.Query("sort_by", string(fridge.SortByName))),
		Direction: fridge.SortDirection(c.Query("sort_dir", string(fridge.SortAsc))),
	}

	res, err := h.fridgeService.GetItems(c.Context(), userID, filter, sortState)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetItems)
}

func (h *fridgeHandler) DeleteItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	itemID, err := c.ParamsInt("id")
	if err != nil || itemID < 1 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteItem, domain.ErrItemNotFound)
	}

	if err := h.fridgeService.DeleteItem(c.Context(), uint(itemID), userID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteItem, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteItem, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteItem)
}

func (h *fridgeHandler) EmptyFridge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	removed, err := h.fridgeService.EmptyFridge(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmptyFridge, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"removed": removed}, fiber.StatusOK, domain.MessageSuccessEmptyFridge)
}

func (h *fridgeHandler) SeedFridge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	added, err := h.fridgeService.SeedFridge(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSeedFridge, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"added": added}, fiber.StatusCreated, domain.MessageSuccessSeedFridge)
}

func (h *fridgeHandler) ScanReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.UploadReceiptRequest)

	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.ReceiptImage = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.fridgeService.ScanReceipt(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrReceiptProcessingFailed) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedScanReceipt, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedScanReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessScanReceipt)
}

func (h *fridgeHandler) SaveScannedItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.SaveScannedItemsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveScanned, err)
	}

	res, err := h.fridgeService.SaveScannedItems(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReceiptScan) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedSaveScanned, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedSaveScanned, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveScanned, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveScanned)
}
