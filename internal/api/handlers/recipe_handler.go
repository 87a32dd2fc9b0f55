package handlers

import (
	"errors"

	"fridge-tracker-backend/domain"
	"fridge-tracker-backend/internal/api/presenters"
	"fridge-tracker-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetSuggestions(c *fiber.Ctx) error
		SaveRecipe(c *fiber.Ctx) error
		GetSavedRecipes(c *fiber.Ctx) error
		DeleteSavedRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) GetSuggestions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.recipeService.GetSuggestions(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGeminiAPIFailed) {
			return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedGetSuggestions, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSuggestions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSuggestions)
}

func (h *recipeHandler) SaveRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	req := new(domain.SaveRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRecipe, err)
	}

	res, err := h.recipeService.SaveRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) GetSavedRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	res, err := h.recipeService.GetSavedRecipes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSavedRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"recipes": res}, fiber.StatusOK, domain.MessageSuccessGetSavedRecipes)
}

func (h *recipeHandler) DeleteSavedRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	recipeID, err := c.ParamsInt("id")
	if err != nil || recipeID < 1 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, domain.ErrRecipeNotFound)
	}

	if err := h.recipeService.DeleteSavedRecipe(c.Context(), uint(recipeID), userID); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteRecipe, err)
		}
		if errors.Is(err, domain.ErrUnauthorizedRecipeAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedDeleteRecipe, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}
