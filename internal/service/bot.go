package service

import (
	"errors"
	"fmt"

	"github.com/moviemates/gamecore-backend/internal/bot"
	"github.com/moviemates/gamecore-backend/internal/entity"
	"github.com/moviemates/gamecore-backend/internal/grid"
)

var (
	ErrBotNotFound    = errors.New("bot player not found")
	ErrNoRandomSource = errors.New("game has no random source")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct{}

// NewBotService builds the bot. The random source for the easy and medium
// tiers comes from the game itself, one seeded source per room.
func NewBotService() BotService {
	return &botService{}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	if game.Rng == nil && game.Difficulty != entity.DifficultyHard {
		return fmt.Errorf("%w: room %s", ErrNoRandomSource, game.ID)
	}

	opponentMark := entity.PlayerX
	if botPlayer.Mark == entity.PlayerX {
		opponentMark = entity.PlayerO
	}

	chosenCell, err := bot.ChooseMove(game.Grid.Board, botPlayer.Mark, opponentMark, game.Difficulty, game.Rng)
	if err != nil {
		return fmt.Errorf("bot failed to choose a cell: %w", err)
	}

	if err = grid.ApplyMove(game, botPlayer.Mark, chosenCell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
