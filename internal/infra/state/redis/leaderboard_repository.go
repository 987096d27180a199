package redisstate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"trivia-arena/internal/repository"
)

// RedisLeaderboardRepository 是 LeaderboardRepository 接口的 Redis 实现。
// 排行榜存储为一个 ZSET：member 是用户 ID，score 是积分。
type RedisLeaderboardRepository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisLeaderboardRepository 创建 RedisLeaderboardRepository 实例
func NewRedisLeaderboardRepository(client *redis.Client, keyPrefix string) *RedisLeaderboardRepository {
	if client == nil {
		panic("redis client cannot be nil for RedisLeaderboardRepository")
	}
	if keyPrefix == "" {
		keyPrefix = "ta:" // 默认前缀 "ta:" (trivia-arena)
	}
	return &RedisLeaderboardRepository{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (r *RedisLeaderboardRepository) leaderboardKey() string {
	return r.keyPrefix + "leaderboard"
}

// UpdateScore 写入或更新一名用户的排行榜积分。
func (r *RedisLeaderboardRepository) UpdateScore(ctx context.Context, userID uint, ratingValue int) error {
	key := r.leaderboardKey()
	member := strconv.FormatUint(uint64(userID), 10)
	err := r.client.ZAdd(ctx, key, &redis.Z{
		Score:  float64(ratingValue),
		Member: member,
	}).Err()
	if err != nil {
		return fmt.Errorf("redis: failed to update leaderboard score for user %d on %s: %w", userID, key, err)
	}
	return nil
}

// Top 按积分降序返回前 limit 名。
func (r *RedisLeaderboardRepository) Top(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	key := r.leaderboardKey()
	results, err := r.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to read leaderboard top %d from %s: %w", limit, key, err)
	}

	entries := make([]repository.LeaderboardEntry, 0, len(results))
	for _, z := range results {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, parseErr := strconv.ParseUint(member, 10, 64)
		if parseErr != nil {
			logrus.Warnf("redis: skipping malformed leaderboard member '%v': %v", z.Member, parseErr)
			continue
		}
		entries = append(entries, repository.LeaderboardEntry{
			UserID: uint(id),
			Rating: int(z.Score),
		})
	}
	return entries, nil
}

// RemoveUser 从排行榜移除一名用户。
func (r *RedisLeaderboardRepository) RemoveUser(ctx context.Context, userID uint) error {
	key := r.leaderboardKey()
	member := strconv.FormatUint(uint64(userID), 10)
	if err := r.client.ZRem(ctx, key, member).Err(); err != nil {
		return fmt.Errorf("redis: failed to remove user %d from leaderboard %s: %w", userID, key, err)
	}
	return nil
}
