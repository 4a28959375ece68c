package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myShopSense/domain"
	"myShopSense/pkg/logger"
)

type (
	ProductHandler struct {
		validate       *validator.Validate
		productService ProductService
	}

	ProductService interface {
		GetAllProducts(ctx context.Context) ([]domain.Product, error)
		GetProductByID(ctx context.Context, id uint64) (*domain.Product, error)
		CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
		UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
		DeleteProduct(ctx context.Context, id uint64) error
	}

	ProductRequest struct {
		ProductID       uint64  `json:"product_id" validate:"required"`
		ProductName     string  `json:"product_name" validate:"required"`
		ProductCategory string  `json:"product_category" validate:"required"`
		Unit            string  `json:"unit"`
		NormalPrice     float64 `json:"normal_price" validate:"required,gt=0"`
		Quantity        float64 `json:"quantity" validate:"gte=0"`
	}
)

func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{
		validate:       validator.New(),
		productService: svc,
	}
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	products, err := h.productService.GetAllProducts(c.Request().Context())
	if err != nil {
		logger.Error("Failed to get all products", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	product, err := h.productService.GetProductByID(c.Request().Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(product))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product := domain.Product{
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		Unit:            req.Unit,
		NormalPrice:     req.NormalPrice,
		Quantity:        req.Quantity,
	}

	created, err := h.productService.CreateProduct(c.Request().Context(), &product)
	if err != nil {
		logger.Error("Failed to create product", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	product := domain.Product{
		ID:              id,
		ProductID:       req.ProductID,
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		Unit:            req.Unit,
		NormalPrice:     req.NormalPrice,
		Quantity:        req.Quantity,
	}

	updated, err := h.productService.UpdateProduct(c.Request().Context(), &product)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product ID"})
	}

	if err := h.productService.DeleteProduct(c.Request().Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("product deleted"))
}
