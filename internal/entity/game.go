package entity

import (
	"math/rand"
	"time"
)

const (
	StatusWaiting  = "waiting"
	StatusActive   = "active"
	StatusFinished = "finished"

	KindGrid = "grid"
	KindQuiz = "quiz"

	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

// Game holds all state for one room: lifecycle status, participants and the
// kind-specific payload. Exactly one of Grid or Quiz is non-nil.
type Game struct {
	ID         string       `json:"id"`
	Kind       string       `json:"kind"`
	Status     string       `json:"status"`
	Difficulty string       `json:"difficulty,omitempty"`
	Players    []*Player    `json:"players,omitempty"`
	Winner     string       `json:"winner,omitempty"`
	Grid       *GridPayload `json:"grid,omitempty"`
	Quiz       *QuizPayload `json:"quiz,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`

	// Rng is this game's own random source. Rooms run in parallel and
	// math/rand sources are not safe for concurrent use, so sharing one
	// across games is not allowed.
	Rng *rand.Rand `json:"-"`
}

// GridPayload is the board state of a tic-tac-toe style game. MoveLog is
// append-only; its length always equals the number of non-empty cells.
type GridPayload struct {
	Board   [9]string `json:"board"`
	MoveLog []Move    `json:"move_log"`
}

type Move struct {
	Mark     string    `json:"mark"`
	Cell     int       `json:"cell"`
	PlayedAt time.Time `json:"played_at"`
}

func NewGridGame(id, difficulty string) *Game {
	return &Game{
		ID:         id,
		Kind:       KindGrid,
		Status:     StatusWaiting,
		Difficulty: difficulty,
		Grid:       &GridPayload{},
		CreatedAt:  time.Now().UTC(),
	}
}

func NewQuizGame(id, category string, questionTotal int) *Game {
	return &Game{
		ID:        id,
		Kind:      KindQuiz,
		Status:    StatusActive,
		Quiz:      &QuizPayload{Category: category, QuestionTotal: questionTotal},
		CreatedAt: time.Now().UTC(),
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsGrid() bool {
	return that.Kind == KindGrid
}

func (that *Game) IsWithBot() bool {
	for _, player := range that.Players {
		if player.IsBot() {
			return true
		}
	}

	return false
}

func (that *Game) PlayerByMark(mark string) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// RandomMarks deals X and O in random order from the injected source, so tests
// can pin the assignment with a fixed seed.
func RandomMarks(rng *rand.Rand) (string, string) {
	if rng.Intn(2) == 0 {
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
