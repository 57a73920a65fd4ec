package handlers

import (
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/services"
	"farmbiz-service/utils"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type BusinessHandler struct {
	businessService services.IBusinessService
}

func NewBusinessHandler(businessService services.IBusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

func (h *BusinessHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/create-business/", h.CreateBusiness)
	r.GET("/list-businesses/", h.ListBusinesses)
	r.POST("/add-review/", h.AddReview)
	r.GET("/businesses/:business_id/reviews/", h.GetBusinessReviews)
	r.POST("/businesses/:business_id/products/", h.CreateProduct)
}

func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	var req models.CreateBusinessRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	image, imageClose, err := openFormFile(c, "image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image upload"})
		return
	}
	if imageClose != nil {
		defer imageClose()
	}

	if _, err := h.businessService.CreateBusiness(c.Request.Context(), req, image); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondEntityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Business created successfully"})
}

func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	page, err := utils.GetQueryParamAsInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.businessService.SearchBusinesses(c.Request.Context(), c.Query("q"), c.Query("category"), page)
	if err != nil {
		log.Printf("business search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BusinessHandler) AddReview(c *gin.Context) {
	var req models.AddReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if _, err := h.businessService.AddReview(c.Request.Context(), req); err != nil {
		respondEntityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully"})
}

func (h *BusinessHandler) GetBusinessReviews(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("business_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid business id"})
		return
	}

	result, err := h.businessService.GetBusinessReviews(c.Request.Context(), businessID)
	if err != nil {
		respondEntityError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BusinessHandler) CreateProduct(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("business_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_BUSINESS_ID", "invalid business id"))
		return
	}

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_PAYLOAD", "invalid request payload"))
		return
	}

	product, err := h.businessService.CreateProduct(c.Request.Context(), businessID, req)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse("BUSINESS_NOT_FOUND", notFoundMessage(err)))
			return
		}
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_PRODUCT", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(product))
}
