package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
	"github.com/moviemates/gamecore-backend/internal/grid"
	"github.com/moviemates/gamecore-backend/internal/repository"
)

const gridCategory = "grid"
const gridWinScore = 10

var (
	ErrWrongGameKind   = errors.New("operation does not match the game kind")
	ErrPlayerNotInGame = errors.New("player is not part of this game")
)

type gameRegistry interface {
	Create(roomID, kind, difficulty string) (*entity.Game, error)
	Get(roomID string) (*entity.Game, error)
	WithRoom(roomID string, fn func(game *entity.Game) error) error
	End(roomID string)
	Remove(roomID string) error
}

type moveArchive interface {
	AppendMove(ctx context.Context, record *repository.MoveRecord) error
}

type scoreRecorder interface {
	Record(ctx context.Context, entry *entity.LeaderboardEntry)
}

type GamePlayService interface {
	CreateGame(ctx context.Context, roomID string, host *entity.Player, difficulty string, withBot bool) (*entity.Game, error)
	JoinGame(ctx context.Context, roomID string, player *entity.Player) (*entity.Game, error)
	MakeTurn(ctx context.Context, roomID, playerID string, cell int) (*entity.Game, error)
	GetGame(roomID string) (*entity.Game, error)
	EndGame(roomID string)
	RemoveGame(roomID string) error
}

type gamePlayService struct {
	logger *slog.Logger

	// newRNG seeds one random source per created game; rooms never share one
	newRNG func() *rand.Rand

	registry   gameRegistry
	botService BotService
	moveRepo   moveArchive
	recorder   scoreRecorder
}

func NewGamePlayService(logger *slog.Logger, newRNG func() *rand.Rand, registry gameRegistry, botService BotService, moveRepo moveArchive, recorder scoreRecorder) GamePlayService {
	return &gamePlayService{
		logger:     logger.With("component", "gameplay"),
		newRNG:     newRNG,
		registry:   registry,
		botService: botService,
		moveRepo:   moveRepo,
		recorder:   recorder,
	}
}

// CreateGame allocates a grid game for the room. A bot game starts
// immediately with randomized marks; the bot opens when it holds X.
func (that *gamePlayService) CreateGame(ctx context.Context, roomID string, host *entity.Player, difficulty string, withBot bool) (*entity.Game, error) {
	game, err := that.registry.Create(roomID, entity.KindGrid, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game.Rng = that.newRNG()

	host.GameID = game.ID
	host.Mark = entity.PlayerX
	game.Players = []*entity.Player{host}

	if !withBot {
		return game, nil
	}

	records, err := that.addBotToGame(game, host)
	if err != nil {
		return nil, fmt.Errorf("failed to add bot to game: %w", err)
	}

	that.archiveMoves(ctx, records)

	return game, nil
}

func (that *gamePlayService) addBotToGame(game *entity.Game, host *entity.Player) ([]*repository.MoveRecord, error) {
	botPlayer := entity.NewBotPlayer(game.ID, "")

	hostMark, botMark := entity.RandomMarks(game.Rng)
	host.Mark = hostMark
	botPlayer.Mark = botMark

	game.Players = append(game.Players, botPlayer)
	game.Status = entity.StatusActive

	if botMark != entity.PlayerX {
		return nil, nil
	}

	if err := that.botService.MakeTurn(game); err != nil {
		return nil, fmt.Errorf("bot failed to make first turn: %w", err)
	}

	return moveRecords(game, 0), nil
}

// JoinGame seats the second player; the game goes active once both slots are
// filled.
func (that *gamePlayService) JoinGame(_ context.Context, roomID string, player *entity.Player) (*entity.Game, error) {
	var joined *entity.Game

	err := that.registry.WithRoom(roomID, func(game *entity.Game) error {
		if !game.IsGrid() {
			return fmt.Errorf("%w: %s", ErrWrongGameKind, game.Kind)
		}

		if len(game.Players) >= 2 {
			return fmt.Errorf("%w: room %s is full", apperror.ErrGameAlreadyExists, roomID)
		}

		// only a waiting game has an open seat; an abandoned game stays finished
		if !game.IsWaiting() {
			return fmt.Errorf("%w: room %s status %s", apperror.ErrGameNotActive, roomID, game.Status)
		}

		player.GameID = game.ID
		player.Mark = entity.PlayerO

		game.Players = append(game.Players, player)
		game.Status = entity.StatusActive
		joined = game

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	return joined, nil
}

// MakeTurn applies the player's move and, in a bot game, the bot's reply
// before returning. Archival and leaderboard writes happen after the room
// lock is released.
func (that *gamePlayService) MakeTurn(ctx context.Context, roomID, playerID string, cell int) (*entity.Game, error) {
	var (
		result  *entity.Game
		records []*repository.MoveRecord
	)

	err := that.registry.WithRoom(roomID, func(game *entity.Game) error {
		if !game.IsGrid() {
			return fmt.Errorf("%w: %s", ErrWrongGameKind, game.Kind)
		}

		player := playerInGame(game, playerID)
		if player == nil {
			return fmt.Errorf("%w: player %s in room %s", ErrPlayerNotInGame, playerID, roomID)
		}

		before := len(game.Grid.MoveLog)

		if err := grid.ApplyMove(game, player.Mark, cell); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if game.IsActive() && game.IsWithBot() {
			if err := that.botService.MakeTurn(game); err != nil {
				return fmt.Errorf("bot reply failed: %w", err)
			}
		}

		result = game
		records = moveRecords(game, before)

		return nil
	})
	if err != nil {
		return nil, err
	}

	that.archiveMoves(ctx, records)

	if result.IsFinished() {
		that.recordGridResult(ctx, result)
	}

	return result, nil
}

func (that *gamePlayService) GetGame(roomID string) (*entity.Game, error) {
	game, err := that.registry.Get(roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// EndGame abandons the room without declaring a winner.
func (that *gamePlayService) EndGame(roomID string) {
	that.registry.End(roomID)
}

func (that *gamePlayService) RemoveGame(roomID string) error {
	if err := that.registry.Remove(roomID); err != nil {
		return fmt.Errorf("failed to remove game: %w", err)
	}

	return nil
}

// recordGridResult emits a leaderboard entry when a human won the game. Ties
// and bot wins leave no trace on the board.
func (that *gamePlayService) recordGridResult(ctx context.Context, game *entity.Game) {
	if game.Winner == "" || game.Winner == entity.PlayerTie {
		return
	}

	winner := game.PlayerByMark(game.Winner)
	if winner == nil || winner.IsBot() {
		return
	}

	username := winner.Name
	if username == "" {
		username = winner.ID
	}

	that.recorder.Record(ctx, &entity.LeaderboardEntry{
		Username:    username,
		Category:    gridCategory,
		Score:       gridWinScore,
		SubmittedAt: time.Now().UTC(),
	})
}

func (that *gamePlayService) archiveMoves(ctx context.Context, records []*repository.MoveRecord) {
	for _, record := range records {
		if err := that.moveRepo.AppendMove(ctx, record); err != nil {
			that.logger.Error("failed to archive move",
				"roomID", record.RoomID, "cell", record.Move.Cell,
				"error", fmt.Errorf("%w: %w", apperror.ErrPersistenceFailure, err))
		}
	}
}

func playerInGame(game *entity.Game, playerID string) *entity.Player {
	for _, player := range game.Players {
		if player.ID == playerID {
			return player
		}
	}

	return nil
}

// moveRecords snapshots the moves appended since the given log offset.
func moveRecords(game *entity.Game, from int) []*repository.MoveRecord {
	log := game.Grid.MoveLog

	records := make([]*repository.MoveRecord, 0, len(log)-from)
	for _, move := range log[from:] {
		playerID := ""
		if player := game.PlayerByMark(move.Mark); player != nil {
			playerID = player.ID
		}

		records = append(records, &repository.MoveRecord{
			RoomID:   game.ID,
			PlayerID: playerID,
			Move:     move,
		})
	}

	return records
}
