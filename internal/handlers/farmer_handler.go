package handlers

import (
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/services"
	"farmbiz-service/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FarmerHandler struct {
	farmerService services.IFarmerService
}

func NewFarmerHandler(farmerService services.IFarmerService) *FarmerHandler {
	return &FarmerHandler{farmerService: farmerService}
}

func (h *FarmerHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/farmers/", h.CreateFarmer)
	r.GET("/farmers/:farmer_id", h.GetFarmer)
}

func (h *FarmerHandler) CreateFarmer(c *gin.Context) {
	var req models.CreateFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_PAYLOAD", "invalid request payload"))
		return
	}

	farmer, err := h.farmerService.CreateFarmer(c.Request.Context(), req)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse("TIER_NOT_FOUND", notFoundMessage(err)))
			return
		}
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_FARMER", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(farmer))
}

func (h *FarmerHandler) GetFarmer(c *gin.Context) {
	farmerID, err := strconv.ParseInt(c.Param("farmer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_FARMER_ID", "invalid farmer id"))
		return
	}

	profile, err := h.farmerService.GetFarmerProfile(c.Request.Context(), farmerID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse("FARMER_NOT_FOUND", notFoundMessage(err)))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.CreateErrorResponse("INTERNAL_ERROR", "failed to load farmer profile"))
		return
	}

	c.JSON(http.StatusOK, utils.CreateSuccessResponse(profile))
}
