package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/babycare/shop-api/internal/core/ports"
)

type CategoryHandler struct {
	catalog ports.CatalogService
}

func NewCategoryHandler(catalog ports.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List handles GET /categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All Categories retrieved successfully", categories)
}

// Create handles POST /categories and the legacy POST /category.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Router       /categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), ports.CategoryInput{
		Name:        req.Name,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Category created successfully", category)
}
