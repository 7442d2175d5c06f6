package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawcare/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	docs  map[models.Category]models.CategorySettings
	reads int
}

func (r *memRepo) Get(_ context.Context, c models.Category) (*models.CategorySettings, error) {
	r.reads++
	s, ok := r.docs[c]
	if !ok {
		return nil, models.ErrSettingsNotFound
	}
	return &s, nil
}

func (r *memRepo) List(context.Context) ([]models.CategorySettings, error) {
	var out []models.CategorySettings
	for _, s := range r.docs {
		out = append(out, s)
	}
	return out, nil
}

func (r *memRepo) Upsert(_ context.Context, s *models.CategorySettings) error {
	r.docs[s.Category] = *s
	return nil
}

func (r *memRepo) EnsureIndexes(context.Context) error { return nil }

type memCache struct {
	values  map[string]string
	failGet bool
}

func (c *memCache) Get(_ context.Context, key string) *redis.StringCmd {
	if c.failGet {
		return redis.NewStringResult("", errors.New("connection refused"))
	}
	v, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		c.values[key] = string(v)
	case string:
		c.values[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *memCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(c.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func labSettings() models.CategorySettings {
	return models.CategorySettings{
		Category: models.CategoryLab,
		Policy: models.BookingTimePolicy{
			Start:              "09:00",
			End:                "17:00",
			GapBetween:         30,
			PerGapLimitBooking: 2,
		},
		Fee:      50000,
		Currency: "inr",
	}
}

func newService() (*DefaultSettingsService, *memRepo, *memCache) {
	repo := &memRepo{docs: map[models.Category]models.CategorySettings{models.CategoryLab: labSettings()}}
	cache := &memCache{values: map[string]string{}}
	return NewDefaultSettingsService(repo, cache, time.Minute, zap.NewNop()), repo, cache
}

func TestGetReadsThroughCache(t *testing.T) {
	svc, repo, cache := newService()
	ctx := context.Background()

	first, err := svc.Get(ctx, models.CategoryLab)
	require.NoError(t, err)
	assert.Equal(t, "09:00", first.Policy.Start)
	assert.Contains(t, cache.values, "policy:lab")

	second, err := svc.Get(ctx, models.CategoryLab)
	require.NoError(t, err)
	assert.Equal(t, first.Policy, second.Policy)
	assert.Equal(t, 1, repo.reads)
}

func TestGetSurvivesCacheOutage(t *testing.T) {
	svc, repo, cache := newService()
	cache.failGet = true

	s, err := svc.Get(context.Background(), models.CategoryLab)
	require.NoError(t, err)
	assert.Equal(t, 30, s.Policy.GapBetween)
	assert.Equal(t, 1, repo.reads)
}

func TestGetMissingCategory(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Get(context.Background(), models.CategoryGrooming)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.RejectionCode(err))
}

func TestUpdateInvalidatesCache(t *testing.T) {
	svc, _, cache := newService()
	ctx := context.Background()

	_, err := svc.Get(ctx, models.CategoryLab)
	require.NoError(t, err)

	updated := labSettings()
	updated.Policy.End = "18:00"
	require.NoError(t, svc.Update(ctx, &updated, "admin-1"))
	assert.NotContains(t, cache.values, "policy:lab")

	got, err := svc.Get(ctx, models.CategoryLab)
	require.NoError(t, err)
	assert.Equal(t, "18:00", got.Policy.End)
	assert.Equal(t, "admin-1", got.UpdatedBy)
}

func TestUpdateRejectsInvalidPolicy(t *testing.T) {
	svc, repo, _ := newService()

	bad := labSettings()
	bad.Policy.GapBetween = 0
	err := svc.Update(context.Background(), &bad, "admin-1")
	require.Error(t, err)
	assert.Equal(t, models.CodeInvalidInput, models.RejectionCode(err))
	assert.Equal(t, 30, repo.docs[models.CategoryLab].Policy.GapBetween)
}

func TestServiceWithoutCache(t *testing.T) {
	repo := &memRepo{docs: map[models.Category]models.CategorySettings{models.CategoryLab: labSettings()}}
	svc := NewDefaultSettingsService(repo, nil, 0, zap.NewNop())

	_, err := svc.Get(context.Background(), models.CategoryLab)
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), models.CategoryLab)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.reads)
}
