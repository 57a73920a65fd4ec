package services

import (
	"context"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/repository"
	"fmt"
	"strings"
)

type FarmerProfile struct {
	Farmer models.Farmer `json:"farmer"`
	Farms  []models.Farm `json:"farms"`
}

type IFarmerService interface {
	CreateFarmer(ctx context.Context, req models.CreateFarmerRequest) (*models.Farmer, error)
	GetFarmerProfile(ctx context.Context, farmerID int64) (*FarmerProfile, error)
}

type FarmerService struct {
	farmerRepo repository.IFarmerRepository
}

func NewFarmerService(farmerRepo repository.IFarmerRepository) IFarmerService {
	return &FarmerService{farmerRepo: farmerRepo}
}

func (s *FarmerService) CreateFarmer(ctx context.Context, req models.CreateFarmerRequest) (*models.Farmer, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("farmer name is required")
	}
	if req.FarmSize <= 0 {
		return nil, fmt.Errorf("farm size must be positive")
	}

	experience := models.ExperienceLevel(req.ExperienceLevel)
	switch experience {
	case models.ExperienceBeginner, models.ExperienceIntermediate, models.ExperienceAdvanced:
	default:
		return nil, fmt.Errorf("invalid experience level: %s", req.ExperienceLevel)
	}

	farmType := models.FarmType(req.FarmType)
	switch farmType {
	case models.FarmTypeArable, models.FarmTypePasture, models.FarmTypeMixed:
	default:
		return nil, fmt.Errorf("invalid farm type: %s", req.FarmType)
	}

	if req.TierID != nil {
		if _, err := s.farmerRepo.GetTierByID(*req.TierID); err != nil {
			return nil, err
		}
	}

	farmer := &models.Farmer{
		Name:            req.Name,
		Location:        req.Location,
		ContactDetails:  req.ContactDetails,
		ExperienceLevel: experience,
		Specialization:  req.Specialization,
		FarmSize:        req.FarmSize,
		FarmType:        farmType,
		Equipment:       req.Equipment,
		Certifications:  req.Certifications,
		TierID:          req.TierID,
	}
	if err := s.farmerRepo.CreateFarmer(farmer); err != nil {
		return nil, err
	}
	return farmer, nil
}

func (s *FarmerService) GetFarmerProfile(ctx context.Context, farmerID int64) (*FarmerProfile, error) {
	farmer, err := s.farmerRepo.GetFarmerByID(farmerID)
	if err != nil {
		return nil, err
	}
	farms, err := s.farmerRepo.GetFarmsByFarmerID(farmerID)
	if err != nil {
		return nil, err
	}
	return &FarmerProfile{Farmer: *farmer, Farms: farms}, nil
}
