package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/moviemates/gamecore-backend/internal/entity"
)

type LeaderboardRepository interface {
	AppendLeaderboardEntry(ctx context.Context, entry *entity.LeaderboardEntry) error
	QueryLeaderboard(ctx context.Context, category string, limit int) ([]*entity.LeaderboardEntry, error)
}

type dbLeaderboard struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &dbLeaderboard{
		client: client,
	}
}

func (that *dbLeaderboard) AppendLeaderboardEntry(ctx context.Context, entry *entity.LeaderboardEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal leaderboard entry: %w", err)
	}

	entryKey := "leaderboard:" + entry.Category
	if err = that.client.RPush(ctx, entryKey, entryJSON).Err(); err != nil {
		return fmt.Errorf("failed to append leaderboard entry: %w", err)
	}

	return nil
}

// QueryLeaderboard returns stored entries in insertion order; ranking is the
// reader's job. A limit of zero or below returns everything.
func (that *dbLeaderboard) QueryLeaderboard(ctx context.Context, category string, limit int) ([]*entity.LeaderboardEntry, error) {
	entryKey := "leaderboard:" + category

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	response, err := that.client.LRange(ctx, entryKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	entries := make([]*entity.LeaderboardEntry, 0, len(response))
	for _, raw := range response {
		var entry entity.LeaderboardEntry
		if err = json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal leaderboard entry: %w", err)
		}

		entries = append(entries, &entry)
	}

	return entries, nil
}
