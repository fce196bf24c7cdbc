package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edulane/edulane-backend/internal/config"
	"github.com/edulane/edulane-backend/internal/model"
)

// paperTTL bounds staleness if an invalidation is ever missed.
const paperTTL = 12 * time.Hour

// ExamPaperCache stores sanitized exam papers in Redis so exam-taking reads
// skip PostgreSQL. The cached value is the already-sanitized model.ExamPaper;
// answer keys are never written to the cache.
type ExamPaperCache struct {
	rdb *redis.Client
}

// NewExamPaperCache creates a new ExamPaperCache.
func NewExamPaperCache(rdb *redis.Client) *ExamPaperCache {
	return &ExamPaperCache{rdb: rdb}
}

// Get retrieves the cached paper for a course. A cache miss returns (nil, nil).
func (c *ExamPaperCache) Get(ctx context.Context, courseID string) (*model.ExamPaper, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.ExamPaperKey(courseID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get exam paper: %w", err)
	}

	paper := &model.ExamPaper{}
	if err := json.Unmarshal([]byte(raw), paper); err != nil {
		return nil, fmt.Errorf("decode exam paper: %w", err)
	}
	return paper, nil
}

// Set stores the paper for its course.
func (c *ExamPaperCache) Set(ctx context.Context, paper *model.ExamPaper) error {
	raw, err := json.Marshal(paper)
	if err != nil {
		return fmt.Errorf("encode exam paper: %w", err)
	}
	return c.rdb.Set(ctx, config.CacheKey.ExamPaperKey(paper.CourseID.String()), raw, paperTTL).Err()
}

// Invalidate drops the cached paper for a course. Called on any admin exam
// mutation so students never see a stale question set.
func (c *ExamPaperCache) Invalidate(ctx context.Context, courseID string) error {
	return c.rdb.Del(ctx, config.CacheKey.ExamPaperKey(courseID)).Err()
}
