package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotActive     = errors.New("game is not active")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrNoLegalMoves      = errors.New("no legal moves left")

	ErrGeneratorUnavailable = errors.New("content generator unavailable")
	ErrPersistenceFailure   = errors.New("persistence store failure")
)
