package bot

import (
	"fmt"
	"math/rand"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
	"github.com/moviemates/gamecore-backend/internal/grid"
)

// searchOrder lists cells center first, then corners, then edges. It improves
// alpha-beta cutoffs and makes the full search open in the center.
var searchOrder = [9]int{4, 0, 2, 6, 8, 1, 3, 5, 7}

// ChooseMove picks a legal cell for aiMark at the given difficulty. The rng is
// injected per game so easy and medium tiers stay reproducible under a fixed
// seed; the hard tier is fully deterministic and never consults it.
//
// The caller is expected to have checked for a terminal position already;
// a full board returns ErrNoLegalMoves.
func ChooseMove(board [9]string, aiMark, opponentMark, difficulty string, rng *rand.Rand) (int, error) {
	empty := emptyCells(board)
	if len(empty) == 0 {
		return 0, apperror.ErrNoLegalMoves
	}

	switch difficulty {
	case entity.DifficultyHard:
		return bestMove(board, aiMark, opponentMark), nil
	case entity.DifficultyMedium:
		return greedyMove(board, aiMark, opponentMark, empty, rng), nil
	case entity.DifficultyEasy:
		return empty[rng.Intn(len(empty))], nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q", difficulty)
	}
}

func emptyCells(board [9]string) []int {
	cells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// greedyMove is the 1-ply medium tier: take an immediate win, otherwise block
// the opponent's immediate win, otherwise fall back to a random cell.
func greedyMove(board [9]string, aiMark, opponentMark string, empty []int, rng *rand.Rand) int {
	if cell, ok := winningCell(board, aiMark); ok {
		return cell
	}

	if cell, ok := winningCell(board, opponentMark); ok {
		return cell
	}

	return empty[rng.Intn(len(empty))]
}

// winningCell finds an empty cell that completes a line for the given mark.
func winningCell(board [9]string, mark string) (int, bool) {
	for _, cell := range searchOrder {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = mark
		won := grid.DetectTerminal(board) == mark
		board[cell] = entity.EmptyCell

		if won {
			return cell, true
		}
	}

	return 0, false
}

// bestMove runs exhaustive minimax with alpha-beta pruning. The board caps
// the tree at 9 plies, so no depth limit or time budget is needed.
func bestMove(board [9]string, aiMark, opponentMark string) int {
	bestScore := -100
	bestCell := -1

	for _, cell := range searchOrder {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = aiMark
		score := minimax(board, aiMark, opponentMark, 1, false, -100, 100)
		board[cell] = entity.EmptyCell

		if score > bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	return bestCell
}

// minimax scores a position from the AI's perspective. Wins are depth-adjusted
// so the search prefers the fastest win and the slowest loss.
func minimax(board [9]string, aiMark, opponentMark string, depth int, maximizing bool, alpha, beta int) int {
	switch grid.DetectTerminal(board) {
	case aiMark:
		return 10 - depth
	case opponentMark:
		return depth - 10
	case entity.PlayerTie:
		return 0
	}

	if maximizing {
		best := -100
		for _, cell := range searchOrder {
			if board[cell] != entity.EmptyCell {
				continue
			}

			board[cell] = aiMark
			score := minimax(board, aiMark, opponentMark, depth+1, false, alpha, beta)
			board[cell] = entity.EmptyCell

			best = max(best, score)
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}

		return best
	}

	best := 100
	for _, cell := range searchOrder {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = opponentMark
		score := minimax(board, aiMark, opponentMark, depth+1, true, alpha, beta)
		board[cell] = entity.EmptyCell

		best = min(best, score)
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}

	return best
}
