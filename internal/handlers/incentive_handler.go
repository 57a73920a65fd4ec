package handlers

import (
	"errors"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/services"
	"farmbiz-service/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IncentiveHandler struct {
	incentiveService services.IIncentiveService
}

func NewIncentiveHandler(incentiveService services.IIncentiveService) *IncentiveHandler {
	return &IncentiveHandler{incentiveService: incentiveService}
}

func (h *IncentiveHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/redeem-incentives/", h.RedeemIncentives)
	r.POST("/incentives/", h.CreateIncentive)
}

func (h *IncentiveHandler) RedeemIncentives(c *gin.Context) {
	var req models.RedeemIncentivesRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	err := h.incentiveService.RedeemIncentive(c.Request.Context(), req.FarmerID)
	if err != nil {
		if errors.Is(err, services.ErrNoIncentives) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No incentives available for redemption"})
			return
		}
		respondEntityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Incentives redeemed successfully"})
}

type createIncentiveRequest struct {
	FarmerID int64 `json:"farmer_id"`
	Points   int   `json:"points"`
}

func (h *IncentiveHandler) CreateIncentive(c *gin.Context) {
	var req createIncentiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_PAYLOAD", "invalid request payload"))
		return
	}

	incentive, err := h.incentiveService.CreateIncentive(c.Request.Context(), req.FarmerID, req.Points)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, utils.CreateErrorResponse("FARMER_NOT_FOUND", notFoundMessage(err)))
			return
		}
		c.JSON(http.StatusBadRequest, utils.CreateErrorResponse("INVALID_INCENTIVE", err.Error()))
		return
	}

	c.JSON(http.StatusCreated, utils.CreateSuccessResponse(incentive))
}
