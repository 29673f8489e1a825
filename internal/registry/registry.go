package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
)

var (
	ErrGameStillLive   = errors.New("game is still live")
	ErrUnknownGameKind = errors.New("unknown game kind")
)

// Registry owns the room id -> game mapping. Each room carries its own lock,
// so moves in one room never contend with another room.
type Registry struct {
	logger *slog.Logger

	mu    sync.Mutex
	rooms map[string]*room
}

type room struct {
	mu   sync.Mutex
	game *entity.Game
}

func New(logger *slog.Logger) *Registry {
	return &Registry{
		logger: logger.With("component", "registry"),
		rooms:  make(map[string]*room),
	}
}

// Create allocates a game for the room. A finished game still in memory is
// replaced; a live one makes the call fail with ErrGameAlreadyExists.
func (that *Registry) Create(roomID, kind, difficulty string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if existing, ok := that.rooms[roomID]; ok {
		existing.mu.Lock()
		finished := existing.game.IsFinished()
		existing.mu.Unlock()

		if !finished {
			return nil, fmt.Errorf("%w: room %s", apperror.ErrGameAlreadyExists, roomID)
		}
	}

	var game *entity.Game
	switch kind {
	case entity.KindQuiz:
		game = entity.NewQuizGame(roomID, "", 0)
	case entity.KindGrid:
		game = entity.NewGridGame(roomID, difficulty)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGameKind, kind)
	}

	that.rooms[roomID] = &room{game: game}
	that.logger.Debug("game created", "roomID", roomID, "kind", kind)

	return game, nil
}

func (that *Registry) Get(roomID string) (*entity.Game, error) {
	existing, err := that.room(roomID)
	if err != nil {
		return nil, err
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	return existing.game, nil
}

// WithRoom runs fn with the room's lock held, serializing all mutation of one
// game. fn must not block on I/O; archive and generator calls belong outside.
func (that *Registry) WithRoom(roomID string, fn func(game *entity.Game) error) error {
	existing, err := that.room(roomID)
	if err != nil {
		return err
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	return fn(existing.game)
}

// End force-finishes an abandoned game without declaring a winner. Ending an
// unknown or already finished room is a no-op.
func (that *Registry) End(roomID string) {
	existing, err := that.room(roomID)
	if err != nil {
		return
	}

	existing.mu.Lock()
	defer existing.mu.Unlock()

	if existing.game.IsFinished() {
		return
	}

	existing.game.Status = entity.StatusFinished
	that.logger.Info("game abandoned", "roomID", roomID)
}

// Remove evicts a finished game from memory.
func (that *Registry) Remove(roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, ok := that.rooms[roomID]
	if !ok {
		return nil
	}

	existing.mu.Lock()
	finished := existing.game.IsFinished()
	existing.mu.Unlock()

	if !finished {
		return fmt.Errorf("%w: room %s", ErrGameStillLive, roomID)
	}

	delete(that.rooms, roomID)

	return nil
}

func (that *Registry) room(roomID string) (*room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	existing, ok := that.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: room %s", apperror.ErrGameNotFound, roomID)
	}

	return existing, nil
}
