// db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// CacheProject stores a project under a lookup kind ("id", "geid" or
// "code") with the short project cache TTL.
func CacheProject(ctx context.Context, kind, value string, project *model.Project) error {
	if RedisClient == nil {
		return nil
	}
	projectJSON, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	key := fmt.Sprintf("project:%s:%s", kind, value)
	ttl := viper.GetDuration("redis.projectCacheTTL")
	err = RedisClient.Set(ctx, key, projectJSON, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to cache project: %w", err)
	}

	logger.Debug("Project cached successfully", zap.String("key", key))
	return nil
}

// GetCachedProject returns a cached project, or nil on a miss.
func GetCachedProject(ctx context.Context, kind, value string) (*model.Project, error) {
	if RedisClient == nil {
		return nil, nil
	}
	key := fmt.Sprintf("project:%s:%s", kind, value)
	projectJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Project not found in cache", zap.String("key", key))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get project from cache: %w", err)
	}

	var project model.Project
	err = json.Unmarshal([]byte(projectJSON), &project)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}

	logger.Debug("Project retrieved from cache", zap.String("key", key))
	return &project, nil
}

// DeleteCachedProject removes every cache entry of a project.
func DeleteCachedProject(ctx context.Context, project *model.Project) error {
	if RedisClient == nil {
		return nil
	}
	keys := []string{
		fmt.Sprintf("project:id:%s", project.ID),
		fmt.Sprintf("project:code:%s", project.Code),
	}
	if project.GlobalEntityID != "" {
		keys = append(keys, fmt.Sprintf("project:geid:%s", project.GlobalEntityID))
	}
	err := RedisClient.Del(ctx, keys...).Err()
	if err != nil {
		return fmt.Errorf("failed to delete project from cache: %w", err)
	}
	logger.Debug("Project deleted from cache", zap.String("code", project.Code))
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
