package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
)

func newActiveGame() *entity.Game {
	game := entity.NewGridGame("123", entity.DifficultyEasy)
	game.Status = entity.StatusActive

	return game
}

func TestApplyMove(t *testing.T) {
	t.Run("ApplyMove", func(t *testing.T) {
		// Given: an active game with an empty board
		game := newActiveGame()

		// When: player X moves to cell 0
		err := ApplyMove(game, entity.PlayerX, 0)
		require.NoError(t, err)

		// Then: the board and the move log reflect the move
		require.Equal(t, entity.PlayerX, game.Grid.Board[0])
		require.Len(t, game.Grid.MoveLog, 1)
		require.Equal(t, 0, game.Grid.MoveLog[0].Cell)
		require.Equal(t, entity.StatusActive, game.Status)

		// Then: the expected mover toggled to O
		require.Equal(t, entity.PlayerO, ExpectedMark(game.Grid))
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: an active game with cell 0 taken by X
		game := newActiveGame()
		err := ApplyMove(game, entity.PlayerX, 0)
		require.NoError(t, err)

		// When: player O tries the same cell
		err = ApplyMove(game, entity.PlayerO, 0)

		// Then: an ErrCellOccupied error must be returned and nothing is logged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Len(t, game.Grid.MoveLog, 1)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: an active game where X is the expected mover
		game := newActiveGame()

		// When: player O tries to open
		err := ApplyMove(game, entity.PlayerO, 1)

		// Then: an ErrNotYourTurn error must be returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		require.Equal(t, entity.EmptyCell, game.Grid.Board[1])
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		// Given: an active game
		game := newActiveGame()

		// When: moving outside the board, both directions
		err := ApplyMove(game, entity.PlayerX, 9)
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)

		err = ApplyMove(game, entity.PlayerX, -1)
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Error on game not active", func(t *testing.T) {
		// Given: a game still waiting for the second player
		game := entity.NewGridGame("123", entity.DifficultyEasy)

		// When: player X tries to move before the game started
		err := ApplyMove(game, entity.PlayerX, 0)

		// Then: an ErrGameNotActive error must be returned
		require.ErrorIs(t, err, apperror.ErrGameNotActive)

		// Given: the game finished
		game.Status = entity.StatusFinished

		// Then: further moves are also rejected
		err = ApplyMove(game, entity.PlayerX, 0)
		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: X holds cells 0 and 1, O holds 3 and 4
		game := newActiveGame()
		for _, move := range []struct {
			mark string
			cell int
		}{
			{entity.PlayerX, 0}, {entity.PlayerO, 3},
			{entity.PlayerX, 1}, {entity.PlayerO, 4},
		} {
			require.NoError(t, ApplyMove(game, move.mark, move.cell))
		}

		// When: X completes the top row at cell 2
		err := ApplyMove(game, entity.PlayerX, 2)
		require.NoError(t, err)

		// Then: the game is finished with X as the winner
		require.Equal(t, entity.StatusFinished, game.Status)
		require.Equal(t, entity.PlayerX, game.Winner)

		// Then: no move is accepted after the terminal transition
		err = ApplyMove(game, entity.PlayerO, 5)
		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Board cells always match move log length", func(t *testing.T) {
		// Given: a full legal game ending in a tie
		game := newActiveGame()
		moves := []struct {
			mark string
			cell int
		}{
			{entity.PlayerX, 0}, {entity.PlayerO, 4},
			{entity.PlayerX, 8}, {entity.PlayerO, 1},
			{entity.PlayerX, 7}, {entity.PlayerO, 6},
			{entity.PlayerX, 2}, {entity.PlayerO, 5},
			{entity.PlayerX, 3},
		}

		// When: moves are applied one by one
		for i, move := range moves {
			require.NoError(t, ApplyMove(game, move.mark, move.cell))

			filled := 0
			for _, cell := range game.Grid.Board {
				if cell != entity.EmptyCell {
					filled++
				}
			}

			// Then: the number of marked cells equals the log length
			require.Equal(t, i+1, filled)
			require.Len(t, game.Grid.MoveLog, i+1)
		}

		// Then: the full board with no line is a tie
		require.Equal(t, entity.StatusFinished, game.Status)
		require.Equal(t, entity.PlayerTie, game.Winner)
	})
}

func TestDetectTerminal(t *testing.T) {
	t.Run("Winner X on a row", func(t *testing.T) {
		// Given: X completed the top row
		board := [9]string{"X", "X", "X", "O", "O", "", "", "", ""}

		// Then: X is reported as the winner
		require.Equal(t, entity.PlayerX, DetectTerminal(board))
	})

	t.Run("Winner O on a column", func(t *testing.T) {
		// Given: O completed the middle column
		board := [9]string{"X", "O", "X", "", "O", "X", "", "O", ""}

		// Then: O is reported as the winner
		require.Equal(t, entity.PlayerO, DetectTerminal(board))
	})

	t.Run("Winner on a diagonal", func(t *testing.T) {
		// Given: X completed the main diagonal
		board := [9]string{"X", "O", "", "O", "X", "", "", "", "X"}

		require.Equal(t, entity.PlayerX, DetectTerminal(board))
	})

	t.Run("Ongoing game", func(t *testing.T) {
		// Given: a position with empty cells and no line
		board := [9]string{"X", "O", "X", "", "O", "", "X", "", ""}

		// Then: no terminal result is reported
		require.Equal(t, "", DetectTerminal(board))
	})

	t.Run("Tie on a full board", func(t *testing.T) {
		// Given: a full board with no three-in-a-row
		board := [9]string{"O", "X", "O", "O", "X", "X", "X", "O", "X"}

		// Then: the game is a tie
		assert.Equal(t, entity.PlayerTie, DetectTerminal(board))
	})

	t.Run("Symmetric under mark swap", func(t *testing.T) {
		// Given: a set of terminal and non-terminal positions
		boards := [][9]string{
			{"X", "X", "X", "O", "O", "", "", "", ""},
			{"X", "O", "X", "", "O", "", "X", "", ""},
			{"O", "X", "O", "O", "X", "X", "X", "O", "X"},
			{},
		}

		for _, board := range boards {
			// When: every mark on the board is swapped
			var swapped [9]string
			for i, cell := range board {
				switch cell {
				case entity.PlayerX:
					swapped[i] = entity.PlayerO
				case entity.PlayerO:
					swapped[i] = entity.PlayerX
				}
			}

			// Then: the terminal result is mirrored the same way
			want := DetectTerminal(board)
			switch want {
			case entity.PlayerX:
				want = entity.PlayerO
			case entity.PlayerO:
				want = entity.PlayerX
			}

			require.Equal(t, want, DetectTerminal(swapped))
		}
	})

	t.Run("X wins by completing the top row at cell 2", func(t *testing.T) {
		// Given: X holds 0 and 1, O holds 3 and 4
		game := newActiveGame()
		game.Grid.Board = [9]string{"X", "X", "", "O", "O", "", "", "", ""}
		game.Grid.MoveLog = []entity.Move{
			{Mark: "X", Cell: 0}, {Mark: "O", Cell: 3},
			{Mark: "X", Cell: 1}, {Mark: "O", Cell: 4},
		}

		// When: X plays cell 2
		require.NoError(t, ApplyMove(game, entity.PlayerX, 2))

		// Then: X wins
		require.Equal(t, entity.PlayerX, game.Winner)
	})
}
