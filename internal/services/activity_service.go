package services

import (
	"context"
	"farmbiz-service/internal/cache"
	"farmbiz-service/internal/database/minio"
	"farmbiz-service/internal/event"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/repository"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MediaUpload carries one multipart file from a handler to object storage.
type MediaUpload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
	Size        int64
}

type IActivityService interface {
	LogActivity(ctx context.Context, req models.LogActivityRequest, image, video *MediaUpload) (*models.FarmingActivity, error)
	SearchActivities(ctx context.Context, query string) ([]models.ActivitySummary, error)
	CreateCollaboration(ctx context.Context, req models.CreateCollaborationRequest) (*models.Collaboration, error)
	GetCollaborationFarmers(ctx context.Context, collaborationID int64, query string, page int) (*models.CollaborationFarmersResult, error)
}

type ActivityService struct {
	activityRepo repository.IActivityRepository
	farmerRepo   repository.IFarmerRepository
	weather      IWeatherService
	cache        cache.Store
	storage      *minio.MinioClient
	events       *event.Publisher

	// Each ledger appends behind its own mutex so concurrent requests never
	// chain against the same previous hash.
	activityChainMu      sync.Mutex
	collaborationChainMu sync.Mutex
}

func NewActivityService(
	activityRepo repository.IActivityRepository,
	farmerRepo repository.IFarmerRepository,
	weather IWeatherService,
	cacheStore cache.Store,
	storage *minio.MinioClient,
	events *event.Publisher,
) IActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		farmerRepo:   farmerRepo,
		weather:      weather,
		cache:        cacheStore,
		storage:      storage,
		events:       events,
	}
}

func (s *ActivityService) LogActivity(ctx context.Context, req models.LogActivityRequest, image, video *MediaUpload) (*models.FarmingActivity, error) {
	if strings.TrimSpace(req.Practice) == "" {
		return nil, fmt.Errorf("practice is required")
	}
	category := models.ActivityCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("invalid activity category: %s", req.Category)
	}

	if _, err := s.farmerRepo.GetFarmerByID(req.FarmerID); err != nil {
		return nil, err
	}

	activity := &models.FarmingActivity{
		FarmerID:          req.FarmerID,
		Practice:          req.Practice,
		Category:          category,
		Details:           req.Details,
		InputQuantity:     req.InputQuantity,
		OutputQuantity:    req.OutputQuantity,
		WeatherConditions: s.weather.GetConditions(ctx, req.Location),
	}

	if image != nil {
		url, err := s.uploadMedia(ctx, minio.Storage.ActivityImages, image)
		if err != nil {
			return nil, fmt.Errorf("failed to upload activity image: %w", err)
		}
		activity.ImageURL = &url
	}
	if video != nil {
		url, err := s.uploadMedia(ctx, minio.Storage.ActivityVideos, video)
		if err != nil {
			return nil, fmt.Errorf("failed to upload activity video: %w", err)
		}
		activity.VideoURL = &url
	}

	s.activityChainMu.Lock()
	err := s.activityRepo.CreateActivity(activity)
	s.activityChainMu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, event.TypeActivityLogged, map[string]any{
		"activity_id": activity.ID,
		"farmer_id":   activity.FarmerID,
		"practice":    activity.Practice,
		"block_hash":  activity.BlockHash,
	}); err != nil {
		log.Printf("failed to publish activity event: %v", err)
	}

	return activity, nil
}

func (s *ActivityService) uploadMedia(ctx context.Context, bucket string, upload *MediaUpload) (string, error) {
	objectName := uuid.New().String() + filepath.Ext(upload.FileName)
	return s.storage.UploadFile(ctx, bucket, objectName, upload.ContentType, upload.Reader, upload.Size)
}

// SearchActivities serves the activity feed cache-aside. Freshly logged
// activities stay invisible to a cached query until its key expires.
func (s *ActivityService) SearchActivities(ctx context.Context, query string) ([]models.ActivitySummary, error) {
	key := cache.ActivitySearchKey(query)

	var cached []models.ActivitySummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	activities, err := s.activityRepo.SearchActivities(query)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, key, activities, cache.ActivitySearchTTL); err != nil {
		log.Printf("failed to cache activity search %q: %v", query, err)
	}
	return activities, nil
}

func (s *ActivityService) CreateCollaboration(ctx context.Context, req models.CreateCollaborationRequest) (*models.Collaboration, error) {
	if len(req.Farmers) == 0 {
		return nil, fmt.Errorf("collaboration requires at least one farmer")
	}
	for _, f := range req.Farmers {
		if _, err := s.farmerRepo.GetFarmerByID(f.FarmerID); err != nil {
			return nil, err
		}
	}

	collaboration := &models.Collaboration{
		ActivityID: req.ActivityID,
		Notes:      req.Notes,
	}

	s.collaborationChainMu.Lock()
	err := s.activityRepo.CreateCollaboration(collaboration, req.Farmers)
	s.collaborationChainMu.Unlock()
	if err != nil {
		return nil, err
	}

	return collaboration, nil
}

const collaborationFarmersPageSize = 10

// GetCollaborationFarmers caches the full member list per collaboration and
// applies the name filter and pagination per request.
func (s *ActivityService) GetCollaborationFarmers(ctx context.Context, collaborationID int64, query string, page int) (*models.CollaborationFarmersResult, error) {
	key := cache.CollaborationFarmersKey(collaborationID)

	var members []models.CollaborationMember
	hit, err := s.cache.GetJSON(ctx, key, &members)
	if err != nil || !hit {
		if _, err := s.activityRepo.GetCollaborationByID(collaborationID); err != nil {
			return nil, err
		}
		members, err = s.activityRepo.GetCollaborationFarmers(collaborationID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetJSON(ctx, key, members, cache.CollaborationFarmersTTL); err != nil {
			log.Printf("failed to cache collaboration farmers %d: %v", collaborationID, err)
		}
	}

	if query != "" {
		filtered := make([]models.CollaborationMember, 0, len(members))
		for _, m := range members {
			if strings.Contains(strings.ToLower(m.FarmerName), strings.ToLower(query)) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	page = clampPage(page, len(members), collaborationFarmersPageSize)
	pagination := buildPagination(page, len(members), collaborationFarmersPageSize)

	start := (page - 1) * collaborationFarmersPageSize
	if start > len(members) {
		start = len(members)
	}
	end := start + collaborationFarmersPageSize
	if end > len(members) {
		end = len(members)
	}

	return &models.CollaborationFarmersResult{
		Farmers:    members[start:end],
		Pagination: pagination,
	}, nil
}
