package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
)

type store interface {
	AppendLeaderboardEntry(ctx context.Context, entry *entity.LeaderboardEntry) error
	QueryLeaderboard(ctx context.Context, category string, limit int) ([]*entity.LeaderboardEntry, error)
}

// Leaderboard records finalized scores and projects rankings at read time.
type Leaderboard struct {
	logger *slog.Logger
	store  store
}

func New(logger *slog.Logger, store store) *Leaderboard {
	return &Leaderboard{
		logger: logger.With("component", "leaderboard"),
		store:  store,
	}
}

// Record appends the entry through the persistence collaborator. A store
// failure is logged and swallowed: the caller already holds the in-memory
// result and the quiz flow must not abort over archival.
func (that *Leaderboard) Record(ctx context.Context, entry *entity.LeaderboardEntry) {
	if err := that.store.AppendLeaderboardEntry(ctx, entry); err != nil {
		that.logger.Error("failed to record entry",
			"username", entry.Username, "category", entry.Category,
			"error", fmt.Errorf("%w: %w", apperror.ErrPersistenceFailure, err))
	}
}

// Top returns at most k entries for the category, ranked by score descending,
// then streak descending, then earliest submission. The ranking is applied
// here on every read; storage order is never trusted.
func (that *Leaderboard) Top(ctx context.Context, category string, k int) ([]*entity.LeaderboardEntry, error) {
	entries, err := that.store.QueryLeaderboard(ctx, category, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	Rank(entries)

	if k >= 0 && len(entries) > k {
		entries = entries[:k]
	}

	return entries, nil
}

// Rank sorts entries in place by the leaderboard's tie-break order.
func Rank(entries []*entity.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})
}
