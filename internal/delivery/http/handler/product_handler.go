package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/internal/middleware"
	productUsecase "storefront/internal/usecase/product"
	"storefront/pkg/utils"
)

type ProductHandler struct {
	service *productUsecase.Service
}

func NewProductHandler(service *productUsecase.Service) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.List)
	router.GET("/products/:id", h.Get)
}

func (h *ProductHandler) RegisterReviewRoutes(router *gin.RouterGroup) {
	router.PUT("/review", h.UpsertReview)
	router.GET("/reviews", h.GetReviews)
	router.DELETE("/reviews", h.DeleteReview)
}

func (h *ProductHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/products", h.GetAll)
	router.POST("/products/new", h.Create)
	router.PUT("/products/:id", h.Update)
	router.DELETE("/products/:id", h.Delete)
}

// List serves the filtered, paginated catalog. The envelope keeps the
// unfiltered productCount separate from filteredProductsCount: the first
// drives the "N products" headline, the second the pagination of the
// filtered view.
func (h *ProductHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"productCount":          resp.ProductCount,
		"filteredProductsCount": resp.FilteredProductsCount,
		"resPerPage":            resp.ResPerPage,
		"products":              resp.Products,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.service.Get(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", product)
}

func (h *ProductHandler) GetAll(c *gin.Context) {
	products, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "User not resolved")
		return
	}

	var request productUsecase.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Name = utils.SanitizeString(request.Name)
	request.Description = utils.SanitizeText(request.Description)

	product, err := h.service.Create(c.Request.Context(), user.ID, &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Product created successfully", product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var request productUsecase.UpdateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.service.Update(c.Request.Context(), productID, &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product updated successfully", product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), productID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Product deleted successfully", nil)
}

func (h *ProductHandler) UpsertReview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "User not resolved")
		return
	}

	var request productUsecase.CreateReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	request.Comment = utils.SanitizeText(request.Comment)

	product, err := h.service.UpsertReview(c.Request.Context(), user, &request)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review saved", product)
}

func (h *ProductHandler) GetReviews(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	reviews, err := h.service.GetReviews(c.Request.Context(), productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", reviews)
}

func (h *ProductHandler) DeleteReview(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}
	reviewID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID format")
		return
	}

	if err := h.service.DeleteReview(c.Request.Context(), productID, reviewID); err != nil {
		respondWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review deleted", nil)
}
