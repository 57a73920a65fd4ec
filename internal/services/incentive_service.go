package services

import (
	"context"
	"errors"
	"farmbiz-service/internal/event"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/repository"
	"fmt"
	"log"
)

// ErrNoIncentives signals that the farmer has no unredeemed incentives left.
var ErrNoIncentives = errors.New("no incentives available for redemption")

type IIncentiveService interface {
	CreateIncentive(ctx context.Context, farmerID int64, points int) (*models.Incentive, error)
	RedeemIncentive(ctx context.Context, farmerID int64) error
	ListIncentives(ctx context.Context, farmerID int64) ([]models.Incentive, error)
}

type IncentiveService struct {
	incentiveRepo repository.IIncentiveRepository
	farmerRepo    repository.IFarmerRepository
	events        *event.Publisher
}

func NewIncentiveService(
	incentiveRepo repository.IIncentiveRepository,
	farmerRepo repository.IFarmerRepository,
	events *event.Publisher,
) IIncentiveService {
	return &IncentiveService{
		incentiveRepo: incentiveRepo,
		farmerRepo:    farmerRepo,
		events:        events,
	}
}

func (s *IncentiveService) CreateIncentive(ctx context.Context, farmerID int64, points int) (*models.Incentive, error) {
	if points <= 0 {
		return nil, fmt.Errorf("incentive points must be positive")
	}
	if _, err := s.farmerRepo.GetFarmerByID(farmerID); err != nil {
		return nil, err
	}

	incentive := &models.Incentive{FarmerID: farmerID, Points: points}
	if err := s.incentiveRepo.CreateIncentive(incentive); err != nil {
		return nil, err
	}
	return incentive, nil
}

// RedeemIncentive flips the farmer's oldest unredeemed incentive. The flip is
// a single conditional update, so two concurrent redemptions of the last
// incentive cannot both succeed.
func (s *IncentiveService) RedeemIncentive(ctx context.Context, farmerID int64) error {
	if _, err := s.farmerRepo.GetFarmerByID(farmerID); err != nil {
		return err
	}

	redeemed, err := s.incentiveRepo.RedeemFirstAvailable(farmerID)
	if err != nil {
		return err
	}
	if !redeemed {
		return ErrNoIncentives
	}

	if err := s.events.Publish(ctx, event.TypeIncentiveRedeemed, map[string]any{
		"farmer_id": farmerID,
	}); err != nil {
		log.Printf("failed to publish incentive event: %v", err)
	}
	return nil
}

func (s *IncentiveService) ListIncentives(ctx context.Context, farmerID int64) ([]models.Incentive, error) {
	if _, err := s.farmerRepo.GetFarmerByID(farmerID); err != nil {
		return nil, err
	}
	return s.incentiveRepo.GetIncentivesByFarmerID(farmerID)
}
