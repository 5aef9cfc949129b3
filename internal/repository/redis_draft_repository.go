package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"meal-server/internal/models"
)

const (
	draftKeyPrefix     = "meal_draft:"
	draftIndexPrefix   = "user_drafts:"
	draftListHardLimit = 100
)

// Compile-time check to ensure redisDraftRepository implements DraftRepository
var _ DraftRepository = (*redisDraftRepository)(nil)

type redisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisDraftRepository creates a Redis-backed DraftRepository. Drafts
// expire after ttl; the owner index is pruned lazily when expired entries
// are encountered during listing.
func NewRedisDraftRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) DraftRepository {
	return &redisDraftRepository{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisDraftRepo"),
	}
}

func draftKey(id uuid.UUID) string {
	return draftKeyPrefix + id.String()
}

func draftIndexKey(userID string) string {
	return draftIndexPrefix + userID
}

// Create writes the draft and its index entry in one pipeline so readers
// never observe one without the other.
func (r *redisDraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft %s: %w", draft.ID, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, draftKey(draft.ID), data, r.ttl)
	pipe.ZAdd(ctx, draftIndexKey(draft.UserID), redis.Z{
		Score:  float64(draft.CreatedAt.UnixNano()),
		Member: draft.ID.String(),
	})
	// Keep the index alive at least as long as its newest draft.
	pipe.Expire(ctx, draftIndexKey(draft.UserID), r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to create draft in redis",
			zap.String("draftID", draft.ID.String()),
			zap.String("userID", draft.UserID),
			zap.Error(err))
		return fmt.Errorf("%w: failed to create draft: %v", models.ErrUpstreamUnavailable, err)
	}
	return nil
}

func (r *redisDraftRepository) Get(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	data, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrDraftNotFound
		}
		r.logger.Error("Failed to get draft from redis", zap.String("draftID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to get draft: %v", models.ErrUpstreamUnavailable, err)
	}

	var draft models.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		r.logger.Error("Corrupted draft data in redis", zap.String("draftID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("corrupted draft data for %s: %w", id, err)
	}
	return &draft, nil
}

// Update overwrites the record while preserving the TTL set at creation, so
// an edited draft does not outlive its original window.
func (r *redisDraftRepository) Update(ctx context.Context, draft *models.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft %s: %w", draft.ID, err)
	}

	if err := r.client.Set(ctx, draftKey(draft.ID), data, redis.KeepTTL).Err(); err != nil {
		r.logger.Error("Failed to update draft in redis", zap.String("draftID", draft.ID.String()), zap.Error(err))
		return fmt.Errorf("%w: failed to update draft: %v", models.ErrUpstreamUnavailable, err)
	}
	return nil
}

// Delete removes the draft record and its index entry in one pipeline. The
// index entry is never retained after the record is gone.
func (r *redisDraftRepository) Delete(ctx context.Context, draft *models.Draft) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, draftKey(draft.ID))
	pipe.ZRem(ctx, draftIndexKey(draft.UserID), draft.ID.String())

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to delete draft from redis",
			zap.String("draftID", draft.ID.String()),
			zap.String("userID", draft.UserID),
			zap.Error(err))
		return fmt.Errorf("%w: failed to delete draft: %v", models.ErrUpstreamUnavailable, err)
	}
	return nil
}

func (r *redisDraftRepository) ListByUser(ctx context.Context, userID string, limit int, cursor string) (*models.DraftPage, error) {
	if limit <= 0 || limit > draftListHardLimit {
		limit = 20
	}
	indexKey := draftIndexKey(userID)

	max := "+inf"
	if cursor != "" {
		score, err := r.client.ZScore(ctx, indexKey, cursor).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, models.ErrInvalidCursor
			}
			return nil, fmt.Errorf("%w: failed to resolve cursor: %v", models.ErrUpstreamUnavailable, err)
		}
		max = "(" + strconv.FormatInt(int64(score), 10)
	}

	// Fetch one extra to decide whether a next page exists.
	ids, err := r.client.ZRevRangeByScore(ctx, indexKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   max,
		Count: int64(limit + 1),
	}).Result()
	if err != nil {
		r.logger.Error("Failed to list draft index", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to list drafts: %v", models.ErrUpstreamUnavailable, err)
	}

	hasNextPage := len(ids) > limit
	if hasNextPage {
		ids = ids[:limit]
	}

	page := &models.DraftPage{Drafts: make([]models.Draft, 0, len(ids))}
	if len(ids) == 0 {
		return page, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = draftKeyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to fetch drafts for index page", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: failed to fetch drafts: %v", models.ErrUpstreamUnavailable, err)
	}

	var stale []interface{}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Draft expired but its index entry survived; prune it.
			stale = append(stale, ids[i])
			continue
		}
		var draft models.Draft
		if err := json.Unmarshal([]byte(raw), &draft); err != nil {
			r.logger.Warn("Skipping corrupted draft in listing", zap.String("draftID", ids[i]), zap.Error(err))
			continue
		}
		page.Drafts = append(page.Drafts, draft)
	}

	if len(stale) > 0 {
		if err := r.client.ZRem(ctx, indexKey, stale...).Err(); err != nil {
			r.logger.Warn("Failed to prune stale index entries", zap.String("userID", userID), zap.Error(err))
		}
	}

	if hasNextPage && len(page.Drafts) > 0 {
		page.Next = page.Drafts[len(page.Drafts)-1].ID.String()
	}
	return page, nil
}
