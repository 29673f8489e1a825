package entity

import "time"

// LeaderboardEntry is immutable once written. Ranking is always a read-time
// projection; storage order carries no meaning.
type LeaderboardEntry struct {
	Username    string    `json:"username"`
	Category    string    `json:"category"`
	Score       int       `json:"score"`
	Streak      int       `json:"streak"`
	SubmittedAt time.Time `json:"submitted_at"`
}
