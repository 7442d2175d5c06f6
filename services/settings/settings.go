package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	settingsRepo "pawcare/database/repository/settings"
	"pawcare/models"
	"pawcare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is the subset of the Redis client the policy cache needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SettingsService serves per-category booking policies to the booking flow and the admin API.
type SettingsService interface {
	Get(ctx context.Context, category models.Category) (*models.CategorySettings, error)
	Update(ctx context.Context, settings *models.CategorySettings, actor string) error
	List(ctx context.Context) ([]models.CategorySettings, error)
}

// DefaultSettingsService reads through the cache and writes through the repository.
type DefaultSettingsService struct {
	Repo   settingsRepo.SettingsRepository
	Cache  Cache // optional
	TTL    time.Duration
	Logger *zap.Logger
}

func NewDefaultSettingsService(repo settingsRepo.SettingsRepository, cache Cache, ttl time.Duration, logger *zap.Logger) *DefaultSettingsService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DefaultSettingsService{Repo: repo, Cache: cache, TTL: ttl, Logger: logger}
}

func cacheKey(category models.Category) string {
	return utils.PolicyCachePrefix + string(category)
}

// Get returns the category settings, preferring a cached copy. Cache errors only cost a
// database round trip.
func (s *DefaultSettingsService) Get(ctx context.Context, category models.Category) (*models.CategorySettings, error) {
	key := cacheKey(category)
	if s.Cache != nil {
		raw, err := s.Cache.Get(ctx, key).Result()
		switch {
		case err == nil:
			var cached models.CategorySettings
			if jerr := json.Unmarshal([]byte(raw), &cached); jerr == nil {
				return &cached, nil
			}
			s.Logger.Warn("discarding undecodable cached policy", zap.String("key", key))
		case !errors.Is(err, redis.Nil):
			s.Logger.Warn("policy cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	settings, err := s.Repo.Get(ctx, category)
	if err != nil {
		if errors.Is(err, models.ErrSettingsNotFound) {
			return nil, models.NewSlotError(models.CodeNotFound,
				fmt.Sprintf("no booking settings configured for %s", category))
		}
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(settings); err == nil {
			if err := s.Cache.Set(ctx, key, data, s.TTL).Err(); err != nil {
				s.Logger.Warn("policy cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return settings, nil
}

// Update validates and stores new settings, then drops the cached copy so the next booking
// sees them.
func (s *DefaultSettingsService) Update(ctx context.Context, settings *models.CategorySettings, actor string) error {
	if err := settings.Policy.Validate(); err != nil {
		return models.NewSlotError(models.CodeInvalidInput, err.Error())
	}
	if settings.Fee < 0 {
		return models.NewSlotError(models.CodeInvalidInput, "fee must not be negative")
	}
	settings.UpdatedAt = time.Now().UTC()
	settings.UpdatedBy = actor

	if err := s.Repo.Upsert(ctx, settings); err != nil {
		return err
	}

	if s.Cache != nil {
		if err := s.Cache.Del(ctx, cacheKey(settings.Category)).Err(); err != nil {
			s.Logger.Error("failed to invalidate policy cache", zap.String("category", settings.Category.String()), zap.Error(err))
		}
	}
	s.Logger.Info("category settings updated",
		zap.String("category", settings.Category.String()),
		zap.String("by", actor))
	return nil
}

func (s *DefaultSettingsService) List(ctx context.Context) ([]models.CategorySettings, error) {
	return s.Repo.List(ctx)
}
