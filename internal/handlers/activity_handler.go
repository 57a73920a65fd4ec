package handlers

import (
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/services"
	"farmbiz-service/utils"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService services.IActivityService
}

func NewActivityHandler(activityService services.IActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

func (h *ActivityHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/log_activity/", h.LogActivity)
	r.GET("/activities/", h.SearchActivities)
	r.POST("/collaborations/", h.CreateCollaboration)
	r.GET("/collaborations/:collaboration_id/farmers/", h.GetCollaborationFarmers)
}

func (h *ActivityHandler) LogActivity(c *gin.Context) {
	var req models.LogActivityRequest
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

	video, videoClose, err := openFormFile(c, "video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video upload"})
		return
	}
	if videoClose != nil {
		defer videoClose()
	}

	activity, err := h.activityService.LogActivity(c.Request.Context(), req, image, video)
	if err != nil {
		respondEntityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Activity logged",
		"block_hash": activity.BlockHash,
	})
}

func (h *ActivityHandler) SearchActivities(c *gin.Context) {
	activities, err := h.activityService.SearchActivities(c.Request.Context(), c.Query("q"))
	if err != nil {
		log.Printf("activity search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) CreateCollaboration(c *gin.Context) {
	var req models.CreateCollaborationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	collaboration, err := h.activityService.CreateCollaboration(c.Request.Context(), req)
	if err != nil {
		respondEntityError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Collaboration created",
		"block_hash": collaboration.BlockHash,
	})
}

func (h *ActivityHandler) GetCollaborationFarmers(c *gin.Context) {
	collaborationID, err := strconv.ParseInt(c.Param("collaboration_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collaboration id"})
		return
	}

	page, err := utils.GetQueryParamAsInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.activityService.GetCollaborationFarmers(c.Request.Context(), collaborationID, c.Query("q"), page)
	if err != nil {
		respondEntityError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// openFormFile returns the named multipart file as a MediaUpload, or nil when
// the field is absent.
func openFormFile(c *gin.Context, field string) (*services.MediaUpload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile || err == http.ErrNotMultipart {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return newMediaUpload(fileHeader)
}

func newMediaUpload(fileHeader *multipart.FileHeader) (*services.MediaUpload, func(), error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}
	upload := &services.MediaUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
		Size:        fileHeader.Size,
	}
	return upload, func() { file.Close() }, nil
}
