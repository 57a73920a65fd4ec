package services

import (
	"context"
	"farmbiz-service/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIncentiveRepo struct {
	incentives []models.Incentive
}

func (r *stubIncentiveRepo) CreateIncentive(incentive *models.Incentive) error {
	incentive.ID = int64(len(r.incentives) + 1)
	r.incentives = append(r.incentives, *incentive)
	return nil
}

func (r *stubIncentiveRepo) RedeemFirstAvailable(farmerID int64) (bool, error) {
	for i := range r.incentives {
		if r.incentives[i].FarmerID == farmerID && !r.incentives[i].Redeemed {
			r.incentives[i].Redeemed = true
			return true, nil
		}
	}
	return false, nil
}

func (r *stubIncentiveRepo) GetIncentivesByFarmerID(farmerID int64) ([]models.Incentive, error) {
	var out []models.Incentive
	for _, inc := range r.incentives {
		if inc.FarmerID == farmerID {
			out = append(out, inc)
		}
	}
	return out, nil
}

func TestRedeemIncentiveSecondRedemptionFails(t *testing.T) {
	repo := &stubIncentiveRepo{}
	svc := NewIncentiveService(repo, newStubFarmerRepo(1), nil)

	_, err := svc.CreateIncentive(context.Background(), 1, 100)
	require.NoError(t, err)

	require.NoError(t, svc.RedeemIncentive(context.Background(), 1))

	err = svc.RedeemIncentive(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoIncentives)
}

func TestRedeemIncentiveUnknownFarmer(t *testing.T) {
	svc := NewIncentiveService(&stubIncentiveRepo{}, newStubFarmerRepo(), nil)

	err := svc.RedeemIncentive(context.Background(), 9)

	require.Error(t, err)
	assert.EqualError(t, err, "farmer not found")
}

func TestCreateIncentiveRequiresPositivePoints(t *testing.T) {
	svc := NewIncentiveService(&stubIncentiveRepo{}, newStubFarmerRepo(1), nil)

	_, err := svc.CreateIncentive(context.Background(), 1, 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}

func TestListIncentivesKeepsRedeemedRows(t *testing.T) {
	repo := &stubIncentiveRepo{}
	svc := NewIncentiveService(repo, newStubFarmerRepo(1), nil)

	_, err := svc.CreateIncentive(context.Background(), 1, 50)
	require.NoError(t, err)
	_, err = svc.CreateIncentive(context.Background(), 1, 75)
	require.NoError(t, err)

	require.NoError(t, svc.RedeemIncentive(context.Background(), 1))

	incentives, err := svc.ListIncentives(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, incentives, 2)
	assert.True(t, incentives[0].Redeemed)
	assert.False(t, incentives[1].Redeemed)
}
