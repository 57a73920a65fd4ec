package services

import (
	"context"
	"farmbiz-service/internal/cache"
	"farmbiz-service/internal/database/minio"
	"farmbiz-service/internal/event"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/repository"
	"fmt"
	"log"
	"strings"
)

const businessSearchPageSize = 10

type IBusinessService interface {
	CreateBusiness(ctx context.Context, req models.CreateBusinessRequest, image *MediaUpload) (*models.Business, error)
	SearchBusinesses(ctx context.Context, query, category string, page int) (*models.BusinessSearchResult, error)
	AddReview(ctx context.Context, req models.AddReviewRequest) (*models.Review, error)
	GetBusinessReviews(ctx context.Context, businessID int64) (*models.BusinessReviews, error)
	CreateProduct(ctx context.Context, businessID int64, req models.CreateProductRequest) (*models.Product, error)
}

type BusinessService struct {
	businessRepo repository.IBusinessRepository
	farmerRepo   repository.IFarmerRepository
	userRepo     repository.IUserRepository
	cache        cache.Store
	storage      *minio.MinioClient
	events       *event.Publisher
}

func NewBusinessService(
	businessRepo repository.IBusinessRepository,
	farmerRepo repository.IFarmerRepository,
	userRepo repository.IUserRepository,
	cacheStore cache.Store,
	storage *minio.MinioClient,
	events *event.Publisher,
) IBusinessService {
	return &BusinessService{
		businessRepo: businessRepo,
		farmerRepo:   farmerRepo,
		userRepo:     userRepo,
		cache:        cacheStore,
		storage:      storage,
		events:       events,
	}
}

func (s *BusinessService) CreateBusiness(ctx context.Context, req models.CreateBusinessRequest, image *MediaUpload) (*models.Business, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("business name is required")
	}
	category := models.BusinessCategory(req.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("invalid business category: %s", req.Category)
	}

	if _, err := s.farmerRepo.GetFarmerByID(req.FarmerID); err != nil {
		return nil, err
	}

	business := &models.Business{
		FarmerID:         req.FarmerID,
		Name:             req.Name,
		Description:      req.Description,
		ContactInfo:      req.ContactInfo,
		Category:         category,
		ProductsServices: req.ProductsServices,
	}

	if image != nil {
		objectName := req.Name + "-" + image.FileName
		url, err := s.storage.UploadFile(ctx, minio.Storage.BusinessImages, objectName, image.ContentType, image.Reader, image.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to upload business image: %w", err)
		}
		business.ImageURL = &url
	}

	if err := s.businessRepo.CreateBusiness(business); err != nil {
		return nil, err
	}

	// Search caches for this category are left alone; the new business shows
	// up once the matching keys expire.
	return business, nil
}

// SearchBusinesses serves the marketplace listing cache-aside, one key per
// (query, category, page) triple.
func (s *BusinessService) SearchBusinesses(ctx context.Context, query, category string, page int) (*models.BusinessSearchResult, error) {
	if page < 1 {
		page = 1
	}
	key := cache.BusinessSearchKey(query, category, page)

	var cached models.BusinessSearchResult
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	count, err := s.businessRepo.CountBusinesses(query, category)
	if err != nil {
		return nil, err
	}

	// A page past the end snaps to the last page; the cache key keeps the
	// requested page number.
	page = clampPage(page, count, businessSearchPageSize)
	offset := (page - 1) * businessSearchPageSize
	businesses, err := s.businessRepo.SearchBusinesses(query, category, businessSearchPageSize, offset)
	if err != nil {
		return nil, err
	}

	result := &models.BusinessSearchResult{
		Businesses: businesses,
		Pagination: buildPagination(page, count, businessSearchPageSize),
	}

	if err := s.cache.SetJSON(ctx, key, result, cache.BusinessSearchTTL); err != nil {
		log.Printf("failed to cache business search %q/%q page %d: %v", query, category, page, err)
	}
	return result, nil
}

// AddReview stores the review and evicts that business's review cache. This
// is the only write path that invalidates a cache key; search caches keep
// serving the previous average rating until they expire.
func (s *BusinessService) AddReview(ctx context.Context, req models.AddReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if _, err := s.businessRepo.GetBusinessByID(req.BusinessID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByID(req.UserID); err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:     req.UserID,
		BusinessID: req.BusinessID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.businessRepo.CreateReview(review); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, cache.BusinessReviewsKey(req.BusinessID)); err != nil {
		log.Printf("failed to evict review cache for business %d: %v", req.BusinessID, err)
	}

	if err := s.events.Publish(ctx, event.TypeReviewAdded, map[string]any{
		"review_id":   review.ID,
		"business_id": review.BusinessID,
		"rating":      review.Rating,
	}); err != nil {
		log.Printf("failed to publish review event: %v", err)
	}

	return review, nil
}

func (s *BusinessService) GetBusinessReviews(ctx context.Context, businessID int64) (*models.BusinessReviews, error) {
	key := cache.BusinessReviewsKey(businessID)

	var cached models.BusinessReviews
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	if _, err := s.businessRepo.GetBusinessByID(businessID); err != nil {
		return nil, err
	}

	reviews, err := s.businessRepo.GetBusinessReviews(businessID)
	if err != nil {
		return nil, err
	}
	average, err := s.businessRepo.GetAverageRating(businessID)
	if err != nil {
		return nil, err
	}

	result := &models.BusinessReviews{
		BusinessID:    businessID,
		Reviews:       reviews,
		AverageRating: average,
	}

	if err := s.cache.SetJSON(ctx, key, result, cache.BusinessReviewsTTL); err != nil {
		log.Printf("failed to cache reviews for business %d: %v", businessID, err)
	}
	return result, nil
}

func (s *BusinessService) CreateProduct(ctx context.Context, businessID int64, req models.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("product price must be positive")
	}
	if _, err := s.businessRepo.GetBusinessByID(businessID); err != nil {
		return nil, err
	}

	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	product := &models.Product{
		BusinessID:   businessID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Availability: availability,
	}
	if err := s.businessRepo.CreateProduct(product); err != nil {
		return nil, err
	}
	return product, nil
}
