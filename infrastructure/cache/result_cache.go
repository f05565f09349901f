package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hireboard/domain/model"

	"github.com/redis/go-redis/v9"
)

const resultTTL = 24 * time.Hour

// ResultCache keeps the latest dispatch result array per job so the status
// endpoint can show partial-success state without re-dispatching.
type ResultCache struct {
	client *redis.Client
}

func NewResultCache(client *redis.Client) *ResultCache {
	return &ResultCache{client: client}
}

func resultKey(jobID string) string { return "social:results:" + jobID }

func (c *ResultCache) SetResults(ctx context.Context, jobID string, results []*model.SocialResult) error {
	if c.client == nil {
		return nil
	}
	b, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, resultKey(jobID), b, resultTTL).Err()
}

func (c *ResultCache) GetResults(ctx context.Context, jobID string) ([]*model.SocialResult, error) {
	if c.client == nil {
		return nil, nil
	}
	b, err := c.client.Get(ctx, resultKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var results []*model.SocialResult
	if err := json.Unmarshal(b, &results); err != nil {
		return nil, err
	}
	return results, nil
}
