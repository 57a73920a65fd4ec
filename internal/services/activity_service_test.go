package services

import (
	"context"
	"farmbiz-service/internal/cache"
	"farmbiz-service/internal/hashchain"
	"farmbiz-service/internal/models"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubActivityRepo struct {
	activities     []models.FarmingActivity
	collaborations []models.Collaboration
	members        map[int64][]models.CollaborationMember
	searchCalls    int
	lastActivity   string
	lastCollab     string
}

func newStubActivityRepo() *stubActivityRepo {
	return &stubActivityRepo{
		members:      map[int64][]models.CollaborationMember{},
		lastActivity: hashchain.Sentinel,
		lastCollab:   hashchain.Sentinel,
	}
}

func (r *stubActivityRepo) CreateActivity(activity *models.FarmingActivity) error {
	activity.ID = int64(len(r.activities) + 1)
	activity.Date = time.Now().UTC()
	activity.BlockHash = hashchain.BlockHash(r.lastActivity, activity.Practice, activity.Date)
	r.lastActivity = activity.BlockHash
	r.activities = append(r.activities, *activity)
	return nil
}

func (r *stubActivityRepo) GetActivityByID(id int64) (*models.FarmingActivity, error) {
	for i := range r.activities {
		if r.activities[i].ID == id {
			return &r.activities[i], nil
		}
	}
	return nil, fmt.Errorf("activity not found")
}

func (r *stubActivityRepo) SearchActivities(query string) ([]models.ActivitySummary, error) {
	r.searchCalls++
	var out []models.ActivitySummary
	for _, a := range r.activities {
		out = append(out, models.ActivitySummary{
			Practice:  a.Practice,
			Category:  a.Category,
			BlockHash: a.BlockHash,
			Date:      a.Date,
		})
	}
	return out, nil
}

func (r *stubActivityRepo) CreateCollaboration(collaboration *models.Collaboration, farmers []models.CollaborationFarmerInput) error {
	activity, err := r.GetActivityByID(collaboration.ActivityID)
	if err != nil {
		return err
	}
	collaboration.ID = int64(len(r.collaborations) + 1)
	collaboration.BlockHash = hashchain.BlockHash(r.lastCollab, activity.Practice, time.Now().UTC())
	r.lastCollab = collaboration.BlockHash
	r.collaborations = append(r.collaborations, *collaboration)
	for _, f := range farmers {
		r.members[collaboration.ID] = append(r.members[collaboration.ID], models.CollaborationMember{
			FarmerID:   f.FarmerID,
			FarmerName: fmt.Sprintf("farmer-%d", f.FarmerID),
			Role:       f.Role,
		})
	}
	return nil
}

func (r *stubActivityRepo) GetCollaborationByID(id int64) (*models.Collaboration, error) {
	for i := range r.collaborations {
		if r.collaborations[i].ID == id {
			return &r.collaborations[i], nil
		}
	}
	return nil, fmt.Errorf("collaboration not found")
}

func (r *stubActivityRepo) GetCollaborationFarmers(collaborationID int64) ([]models.CollaborationMember, error) {
	return r.members[collaborationID], nil
}

type staticWeather struct{ conditions string }

func (w staticWeather) GetConditions(ctx context.Context, location string) string {
	return w.conditions
}

func newActivityServiceForTest(repo *stubActivityRepo, farmers *stubFarmerRepo, cacheStore *stubCache) IActivityService {
	return NewActivityService(repo, farmers, staticWeather{conditions: "clear sky"}, cacheStore, nil, nil)
}

func TestLogActivityChainsBlockHashes(t *testing.T) {
	repo := newStubActivityRepo()
	svc := newActivityServiceForTest(repo, newStubFarmerRepo(1), newStubCache())

	first, err := svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 1, Practice: "planting maize", Category: "planting", Location: "Nakuru",
	}, nil, nil)
	require.NoError(t, err)

	second, err := svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 1, Practice: "harvesting maize", Category: "harvesting", Location: "Nakuru",
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, hashchain.BlockHash(hashchain.Sentinel, "planting maize", first.Date), first.BlockHash)
	assert.Equal(t, hashchain.BlockHash(first.BlockHash, "harvesting maize", second.Date), second.BlockHash)
	assert.Equal(t, "clear sky", first.WeatherConditions)
}

func TestLogActivityRejectsUnknownFarmer(t *testing.T) {
	svc := newActivityServiceForTest(newStubActivityRepo(), newStubFarmerRepo(), newStubCache())

	_, err := svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 42, Practice: "planting", Category: "planting",
	}, nil, nil)

	require.Error(t, err)
	assert.EqualError(t, err, "farmer not found")
}

func TestLogActivityRejectsInvalidCategory(t *testing.T) {
	svc := newActivityServiceForTest(newStubActivityRepo(), newStubFarmerRepo(1), newStubCache())

	_, err := svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 1, Practice: "planting", Category: "astronomy",
	}, nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid activity category")
}

func TestSearchActivitiesCacheHitSkipsStore(t *testing.T) {
	repo := newStubActivityRepo()
	cacheStore := newStubCache()
	svc := newActivityServiceForTest(repo, newStubFarmerRepo(1), cacheStore)

	_, err := svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 1, Practice: "planting maize", Category: "planting",
	}, nil, nil)
	require.NoError(t, err)

	first, err := svc.SearchActivities(context.Background(), "maize")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.searchCalls)

	second, err := svc.SearchActivities(context.Background(), "maize")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.searchCalls, "second lookup must come from cache")
}

func TestSearchActivitiesCachedResultGoesStale(t *testing.T) {
	repo := newStubActivityRepo()
	cacheStore := newStubCache()
	svc := newActivityServiceForTest(repo, newStubFarmerRepo(1), cacheStore)

	results, err := svc.SearchActivities(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, results)

	// A new activity does not evict the search key.
	_, err = svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 1, Practice: "planting maize", Category: "planting",
	}, nil, nil)
	require.NoError(t, err)

	stale, err := svc.SearchActivities(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, stale, "new activity stays invisible until the key expires")

	// Expiry is simulated by dropping the key.
	require.NoError(t, cacheStore.Delete(context.Background(), cache.ActivitySearchKey("")))

	fresh, err := svc.SearchActivities(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}

func TestCreateCollaborationChainsIndependently(t *testing.T) {
	repo := newStubActivityRepo()
	svc := newActivityServiceForTest(repo, newStubFarmerRepo(1, 2), newStubCache())

	activity, err := svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 1, Practice: "soil prep", Category: "soil_preparation",
	}, nil, nil)
	require.NoError(t, err)

	collab, err := svc.CreateCollaboration(context.Background(), models.CreateCollaborationRequest{
		ActivityID: activity.ID,
		Notes:      "shared tilling",
		Farmers:    []models.CollaborationFarmerInput{{FarmerID: 1, Role: "lead"}, {FarmerID: 2, Role: "helper"}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, collab.BlockHash)
	assert.NotEqual(t, activity.BlockHash, collab.BlockHash)
}

func TestCreateCollaborationRequiresFarmers(t *testing.T) {
	svc := newActivityServiceForTest(newStubActivityRepo(), newStubFarmerRepo(1), newStubCache())

	_, err := svc.CreateCollaboration(context.Background(), models.CreateCollaborationRequest{ActivityID: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one farmer")
}

func TestGetCollaborationFarmersFiltersAndPaginates(t *testing.T) {
	repo := newStubActivityRepo()
	svc := newActivityServiceForTest(repo, newStubFarmerRepo(1), newStubCache())

	activity, err := svc.LogActivity(context.Background(), models.LogActivityRequest{
		FarmerID: 1, Practice: "soil prep", Category: "soil_preparation",
	}, nil, nil)
	require.NoError(t, err)

	// 25 members: 3 pages of 10.
	farmers := newStubFarmerRepo()
	inputs := make([]models.CollaborationFarmerInput, 0, 25)
	for i := int64(1); i <= 25; i++ {
		farmers.farmers[i] = &models.Farmer{ID: i}
		inputs = append(inputs, models.CollaborationFarmerInput{FarmerID: i, Role: "member"})
	}
	svc = newActivityServiceForTest(repo, farmers, newStubCache())

	collab, err := svc.CreateCollaboration(context.Background(), models.CreateCollaborationRequest{
		ActivityID: activity.ID,
		Farmers:    inputs,
	})
	require.NoError(t, err)

	page1, err := svc.GetCollaborationFarmers(context.Background(), collab.ID, "", 1)
	require.NoError(t, err)
	assert.Len(t, page1.Farmers, 10)
	assert.Equal(t, 3, page1.Pagination.TotalPages)
	assert.False(t, page1.Pagination.HasPrevious)
	assert.True(t, page1.Pagination.HasNext)

	page3, err := svc.GetCollaborationFarmers(context.Background(), collab.ID, "", 3)
	require.NoError(t, err)
	assert.Len(t, page3.Farmers, 5)
	assert.True(t, page3.Pagination.HasPrevious)
	assert.False(t, page3.Pagination.HasNext)

	filtered, err := svc.GetCollaborationFarmers(context.Background(), collab.ID, "farmer-2", 1)
	require.NoError(t, err)
	// farmer-2 plus farmer-20..farmer-25.
	assert.Len(t, filtered.Farmers, 7)

	// A page past the end lands on the last page.
	clamped, err := svc.GetCollaborationFarmers(context.Background(), collab.ID, "", 99)
	require.NoError(t, err)
	assert.Len(t, clamped.Farmers, 5)
	assert.Equal(t, 3, clamped.Pagination.CurrentPage)
	assert.False(t, clamped.Pagination.HasNext)
}

func TestGetCollaborationFarmersUnknownCollaboration(t *testing.T) {
	svc := newActivityServiceForTest(newStubActivityRepo(), newStubFarmerRepo(1), newStubCache())

	_, err := svc.GetCollaborationFarmers(context.Background(), 9, "", 1)

	require.Error(t, err)
	assert.EqualError(t, err, "collaboration not found")
}
