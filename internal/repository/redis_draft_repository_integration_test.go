package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"meal-server/internal/models"
	"meal-server/internal/repository"
)

type DraftRepositorySuite struct {
	suite.Suite
	ctx         context.Context
	container   *tcredis.RedisContainer
	redisClient *redis.Client
	repo        repository.DraftRepository
	cache       repository.MealListCache
}

func (s *DraftRepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(1*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start redis container")
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "6379/tcp")
	require.NoError(s.T(), err)

	s.redisClient = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	require.NoError(s.T(), s.redisClient.Ping(s.ctx).Err(), "Failed to connect to test redis")

	s.repo = repository.NewRedisDraftRepository(s.redisClient, 24*time.Hour, zap.NewNop())
	s.cache = repository.NewRedisMealListCache(s.redisClient, 5*time.Minute, zap.NewNop())
}

func (s *DraftRepositorySuite) TearDownSuite() {
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *DraftRepositorySuite) SetupTest() {
	require.NoError(s.T(), s.redisClient.FlushAll(s.ctx).Err())
}

func (s *DraftRepositorySuite) newDraft(userID string, createdAt time.Time) *models.Draft {
	return &models.Draft{
		ID:            uuid.New(),
		UserID:        userID,
		OriginalInput: "test meal",
		Status:        models.StatusPending,
		CreatedAt:     createdAt,
	}
}

func (s *DraftRepositorySuite) TestCreateAndGet() {
	draft := s.newDraft("user-1", time.Now().UTC())
	require.NoError(s.T(), s.repo.Create(s.ctx, draft))

	got, err := s.repo.Get(s.ctx, draft.ID)
	require.NoError(s.T(), err)
	s.Equal(draft.ID, got.ID)
	s.Equal(draft.UserID, got.UserID)
	s.Equal(models.StatusPending, got.Status)

	// Both the record and the index entry must exist.
	ttl, err := s.redisClient.TTL(s.ctx, "meal_draft:"+draft.ID.String()).Result()
	require.NoError(s.T(), err)
	s.Greater(ttl, time.Duration(0), "draft record must carry a TTL")

	count, err := s.redisClient.ZCard(s.ctx, "user_drafts:user-1").Result()
	require.NoError(s.T(), err)
	s.EqualValues(1, count)
}

func (s *DraftRepositorySuite) TestGetMissingDraft() {
	_, err := s.repo.Get(s.ctx, uuid.New())
	s.ErrorIs(err, models.ErrDraftNotFound)
}

func (s *DraftRepositorySuite) TestUpdatePreservesTTL() {
	draft := s.newDraft("user-1", time.Now().UTC())
	require.NoError(s.T(), s.repo.Create(s.ctx, draft))

	draft.Status = models.StatusComplete
	draft.Meal = &models.Meal{Name: "Test Meal"}
	require.NoError(s.T(), s.repo.Update(s.ctx, draft))

	got, err := s.repo.Get(s.ctx, draft.ID)
	require.NoError(s.T(), err)
	s.Equal(models.StatusComplete, got.Status)
	require.NotNil(s.T(), got.Meal)
	s.Equal("Test Meal", got.Meal.Name)

	ttl, err := s.redisClient.TTL(s.ctx, "meal_draft:"+draft.ID.String()).Result()
	require.NoError(s.T(), err)
	s.Greater(ttl, time.Duration(0), "update must not strip the TTL")
}

func (s *DraftRepositorySuite) TestDeleteRemovesRecordAndIndexEntry() {
	draft := s.newDraft("user-1", time.Now().UTC())
	require.NoError(s.T(), s.repo.Create(s.ctx, draft))
	require.NoError(s.T(), s.repo.Delete(s.ctx, draft))

	_, err := s.repo.Get(s.ctx, draft.ID)
	s.ErrorIs(err, models.ErrDraftNotFound)

	count, err := s.redisClient.ZCard(s.ctx, "user_drafts:user-1").Result()
	require.NoError(s.T(), err)
	s.EqualValues(0, count)
}

func (s *DraftRepositorySuite) TestListByUserPaginatesNewestFirst() {
	base := time.Now().UTC().Truncate(time.Second)
	var created []*models.Draft
	for i := 0; i < 5; i++ {
		draft := s.newDraft("user-1", base.Add(time.Duration(i)*time.Second))
		require.NoError(s.T(), s.repo.Create(s.ctx, draft))
		created = append(created, draft)
	}
	// A different owner's draft must never appear in the listing.
	require.NoError(s.T(), s.repo.Create(s.ctx, s.newDraft("user-2", base)))

	page1, err := s.repo.ListByUser(s.ctx, "user-1", 2, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), page1.Drafts, 2)
	s.Equal(created[4].ID, page1.Drafts[0].ID)
	s.Equal(created[3].ID, page1.Drafts[1].ID)
	require.NotEmpty(s.T(), page1.Next)
	s.Equal(created[3].ID.String(), page1.Next)

	page2, err := s.repo.ListByUser(s.ctx, "user-1", 2, page1.Next)
	require.NoError(s.T(), err)
	require.Len(s.T(), page2.Drafts, 2)
	s.Equal(created[2].ID, page2.Drafts[0].ID)
	s.Equal(created[1].ID, page2.Drafts[1].ID)

	page3, err := s.repo.ListByUser(s.ctx, "user-1", 2, page2.Next)
	require.NoError(s.T(), err)
	require.Len(s.T(), page3.Drafts, 1)
	s.Equal(created[0].ID, page3.Drafts[0].ID)
	s.Empty(page3.Next, "last page must not advertise a next cursor")
}

func (s *DraftRepositorySuite) TestListByUserRejectsUnknownCursor() {
	require.NoError(s.T(), s.repo.Create(s.ctx, s.newDraft("user-1", time.Now().UTC())))

	_, err := s.repo.ListByUser(s.ctx, "user-1", 10, uuid.NewString())
	s.ErrorIs(err, models.ErrInvalidCursor)
}

func (s *DraftRepositorySuite) TestListByUserEmptyForUnknownUser() {
	page, err := s.repo.ListByUser(s.ctx, "nobody", 10, "")
	require.NoError(s.T(), err)
	s.Empty(page.Drafts)
	s.Empty(page.Next)
}

func (s *DraftRepositorySuite) TestListByUserPrunesExpiredEntries() {
	base := time.Now().UTC()
	kept := s.newDraft("user-1", base.Add(time.Second))
	expired := s.newDraft("user-1", base)
	require.NoError(s.T(), s.repo.Create(s.ctx, kept))
	require.NoError(s.T(), s.repo.Create(s.ctx, expired))

	// Simulate TTL expiry of the record while its index entry survives.
	require.NoError(s.T(), s.redisClient.Del(s.ctx, "meal_draft:"+expired.ID.String()).Err())

	page, err := s.repo.ListByUser(s.ctx, "user-1", 10, "")
	require.NoError(s.T(), err)
	require.Len(s.T(), page.Drafts, 1)
	s.Equal(kept.ID, page.Drafts[0].ID)

	// The stale index entry is pruned on read.
	count, err := s.redisClient.ZCard(s.ctx, "user_drafts:user-1").Result()
	require.NoError(s.T(), err)
	s.EqualValues(1, count)
}

func (s *DraftRepositorySuite) TestMealListCacheRoundTrip() {
	page := &models.MealPage{
		Meals: []models.StoredMeal{{ID: "meal-1", UserID: "user-1", Meal: models.Meal{Name: "Pasta"}}},
		Next:  "meal-1",
	}

	_, ok := s.cache.Get(s.ctx, "user-1", 10, "")
	s.False(ok, "cold cache must miss")

	s.cache.Set(s.ctx, "user-1", 10, "", page)

	got, ok := s.cache.Get(s.ctx, "user-1", 10, "")
	require.True(s.T(), ok)
	s.Equal(page.Next, got.Next)
	require.Len(s.T(), got.Meals, 1)
	s.Equal("meal-1", got.Meals[0].ID)

	// Different limit or cursor addresses a different entry.
	_, ok = s.cache.Get(s.ctx, "user-1", 20, "")
	s.False(ok)
	_, ok = s.cache.Get(s.ctx, "user-1", 10, "meal-1")
	s.False(ok)
}

func (s *DraftRepositorySuite) TestMealListCacheInvalidateDropsAllPages() {
	page := &models.MealPage{}
	s.cache.Set(s.ctx, "user-1", 10, "", page)
	s.cache.Set(s.ctx, "user-1", 10, "meal-5", page)
	s.cache.Set(s.ctx, "user-1", 20, "", page)
	s.cache.Set(s.ctx, "user-2", 10, "", page)

	s.cache.Invalidate(s.ctx, "user-1")

	for _, next := range []string{"", "meal-5"} {
		_, ok := s.cache.Get(s.ctx, "user-1", 10, next)
		s.False(ok, "all of the owner's pages must be gone")
	}
	_, ok := s.cache.Get(s.ctx, "user-1", 20, "")
	s.False(ok)

	_, ok = s.cache.Get(s.ctx, "user-2", 10, "")
	s.True(ok, "other owners' pages must survive")
}

func TestDraftRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(DraftRepositorySuite))
}
