package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/babycare/shop-api/internal/api/metrics"
	"github.com/babycare/shop-api/internal/core/ports"
)

// ProductHandler serves the product catalog.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List handles GET /products.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      500  {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "All Products retrieved successfully", products)
}

// Search handles GET /baby-accessories. The category query parameter is
// matched case-insensitively; without it every product is returned.
//
// @Summary      Search products by category
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category substring"
// @Success      200       {object}  searchResponse
// @Failure      500       {object}  errorResponse
// @Router       /baby-accessories [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.catalog.SearchByCategory(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, searchResponse{Status: true, Message: "success", Data: products})
}

// Get handles GET /products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product retrieved successfully", product)
}

// Create handles POST /products and the legacy POST /product.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), ports.ProductInput{
		Title:       req.Title,
		Image:       req.Image,
		Category:    req.Category,
		Price:       req.Price,
		PrevPrice:   req.PrevPrice,
		IsFlashSale: req.IsFlashSale,
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	return respond(c, http.StatusCreated, "Product created successfully", product)
}

// Update handles PUT /products/:id. Only the fields present in the body change.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  envelope
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), ports.ProductPatch{
		Title:       req.Title,
		Image:       req.Image,
		Category:    req.Category,
		Price:       req.Price,
		PrevPrice:   req.PrevPrice,
		IsFlashSale: req.IsFlashSale,
		Rating:      req.Rating,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	return respond(c, http.StatusOK, "Product updated successfully", product)
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  envelope
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	return respond(c, http.StatusOK, "Product deleted successfully", nil)
}
