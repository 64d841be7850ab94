package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"call-insights/internal/db"
	"call-insights/internal/models"

	"github.com/redis/go-redis/v9"
)

// DefaultReportTTL is how long a computed report stays cached
const DefaultReportTTL = 5 * time.Minute

// ReportKey identifies a cached report by its query parameters
type ReportKey struct {
	ClientID       string
	Window         models.DateRange
	TopKeywords    int
	MinOccurrences int
}

// String renders the key as analytics:report:<client>:<start>:<end>:<params>
func (k ReportKey) String() string {
	return fmt.Sprintf("%s%s:%d:%d:top=%d,min=%d",
		reportKeyPrefix,
		clientSegment(k.ClientID),
		k.Window.Start.Unix(),
		k.Window.End.Unix(),
		k.TopKeywords,
		k.MinOccurrences,
	)
}

func clientSegment(clientID string) string {
	if clientID == "" {
		return "all"
	}
	return clientID
}

// ReportCache stores computed reports for a limited time
type ReportCache interface {
	// Get returns ErrCacheMiss when no live entry exists
	Get(ctx context.Context, key ReportKey) (*models.AnalysisReport, error)
	Set(ctx context.Context, key ReportKey, report *models.AnalysisReport) error
	// Invalidate drops every report for clientID, or all reports when clientID is empty
	Invalidate(ctx context.Context, clientID string) (int, error)
}

const (
	reportKeyPrefix         = "analytics:report:"
	reportIndexKey          = "analytics:report-index:all"
	reportClientIndexPrefix = "analytics:report-index:client:"
	reportClientsKey        = "analytics:report-index:clients"
)

// RedisReportCache implements ReportCache using Redis
type RedisReportCache struct {
	client *db.RedisClient
	ttl    time.Duration
}

// NewRedisReportCache creates a Redis-based report cache
func NewRedisReportCache(client *db.RedisClient, ttl time.Duration) *RedisReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &RedisReportCache{client: client, ttl: ttl}
}

func (c *RedisReportCache) Get(ctx context.Context, key ReportKey) (*models.AnalysisReport, error) {
	k := key.String()
	value, err := c.client.Get(ctx, k)
	if err != nil {
		if isKeyNotFound(err) {
			return nil, ErrCacheMiss
		}
		return nil, NewRepositoryError("get_report", k, err, "")
	}

	var report models.AnalysisReport
	if err := json.Unmarshal([]byte(value), &report); err != nil {
		return nil, NewRepositoryError("get_report", k, err, "failed to unmarshal report")
	}
	return &report, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key ReportKey, report *models.AnalysisReport) error {
	k := key.String()
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return NewRepositoryError("set_report", k, err, "failed to marshal report")
	}

	clientIndex := reportClientIndexPrefix + clientSegment(key.ClientID)

	// Use transaction for atomicity
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, k, reportJSON, c.ttl)
	pipe.SAdd(ctx, reportIndexKey, k)
	pipe.SAdd(ctx, clientIndex, k)
	pipe.SAdd(ctx, reportClientsKey, clientSegment(key.ClientID))
	pipe.Expire(ctx, reportIndexKey, c.ttl)
	pipe.Expire(ctx, clientIndex, c.ttl)
	pipe.Expire(ctx, reportClientsKey, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return NewRepositoryError("set_report", k, err, "failed to execute transaction")
	}
	return nil
}

func (c *RedisReportCache) Invalidate(ctx context.Context, clientID string) (int, error) {
	if clientID == "" {
		return c.invalidateAll(ctx)
	}

	clientIndex := reportClientIndexPrefix + clientID
	keys, err := c.client.SMembers(ctx, clientIndex)
	if err != nil {
		return 0, NewRepositoryError("invalidate_reports", clientID, err, "failed to read index")
	}
	if len(keys) == 0 {
		return 0, nil
	}

	members := make([]any, len(keys))
	for i, k := range keys {
		members[i] = k
	}

	pipe := c.client.TxPipeline()
	deleted := pipe.Del(ctx, keys...)
	pipe.SRem(ctx, reportIndexKey, members...)
	pipe.SRem(ctx, reportClientsKey, clientID)
	pipe.Del(ctx, clientIndex)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, NewRepositoryError("invalidate_reports", clientID, err, "failed to execute transaction")
	}
	return int(deleted.Val()), nil
}

func (c *RedisReportCache) invalidateAll(ctx context.Context) (int, error) {
	keys, err := c.client.SMembers(ctx, reportIndexKey)
	if err != nil {
		return 0, NewRepositoryError("invalidate_reports", "", err, "failed to read index")
	}
	clients, err := c.client.SMembers(ctx, reportClientsKey)
	if err != nil {
		return 0, NewRepositoryError("invalidate_reports", "", err, "failed to read client index")
	}

	indexKeys := []string{reportIndexKey, reportClientsKey}
	for _, client := range clients {
		indexKeys = append(indexKeys, reportClientIndexPrefix+client)
	}

	pipe := c.client.TxPipeline()
	var deleted *redis.IntCmd
	if len(keys) > 0 {
		deleted = pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, indexKeys...)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, NewRepositoryError("invalidate_reports", "", err, "failed to execute transaction")
	}
	if deleted == nil {
		return 0, nil
	}
	return int(deleted.Val()), nil
}

func isKeyNotFound(err error) bool {
	return errors.Is(err, db.ErrKeyNotFound)
}
