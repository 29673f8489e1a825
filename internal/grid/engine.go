package grid

import (
	"fmt"
	"time"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ApplyMove validates and applies one move for the given mark, appends it to
// the move log and updates the game status from terminal detection.
func ApplyMove(gameInstance *entity.Game, mark string, cell int) error {
	if !gameInstance.IsActive() {
		return fmt.Errorf("%w: status %s", apperror.ErrGameNotActive, gameInstance.Status)
	}

	if err := validateMove(gameInstance.Grid, mark, cell); err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	payload := gameInstance.Grid
	payload.Board[cell] = mark
	payload.MoveLog = append(payload.MoveLog, entity.Move{
		Mark:     mark,
		Cell:     cell,
		PlayedAt: time.Now().UTC(),
	})

	updateGameStatus(gameInstance)

	return nil
}

// ExpectedMark returns the mark that moves next. X always opens, so the mover
// is determined by move-log parity alone.
func ExpectedMark(payload *entity.GridPayload) string {
	if len(payload.MoveLog)%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}

// validateMove - checks if the move is legal on the current board.
func validateMove(payload *entity.GridPayload, mark string, cell int) error {
	if cell < 0 || cell >= len(payload.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if ExpectedMark(payload) != mark {
		return apperror.ErrNotYourTurn
	}

	if payload.Board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// updateGameStatus - checks for a terminal position after a move.
func updateGameStatus(gameInstance *entity.Game) {
	switch result := DetectTerminal(gameInstance.Grid.Board); result {
	case entity.PlayerX, entity.PlayerO:
		gameInstance.Winner = result
		gameInstance.Status = entity.StatusFinished
	case entity.PlayerTie:
		gameInstance.Winner = entity.PlayerTie
		gameInstance.Status = entity.StatusFinished
	}
}

// DetectTerminal reports the winning mark if any of the 8 lines is filled by
// one mark, entity.PlayerTie on a full board with no winner, and the empty
// string while the game can continue.
func DetectTerminal(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return ""
		}
	}

	return entity.PlayerTie
}
