package quiz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
)

const pointsPerCorrect = 10

var (
	ErrNoCurrentQuestion      = errors.New("no question is pending")
	ErrQuestionAlreadyPending = errors.New("a question is already pending")
)

// Result is what a submission returns to the caller: the verdict plus the
// updated running totals.
type Result struct {
	Correct  bool `json:"correct"`
	Score    int  `json:"score"`
	Streak   int  `json:"streak"`
	Finished bool `json:"finished"`
}

// AttachQuestion makes the supplied question the pending one. The previous
// question must have been answered first.
func AttachQuestion(gameInstance *entity.Game, question *entity.Question) error {
	if !gameInstance.IsActive() {
		return fmt.Errorf("%w: status %s", apperror.ErrGameNotActive, gameInstance.Status)
	}

	if gameInstance.Quiz.Current != nil {
		return ErrQuestionAlreadyPending
	}

	gameInstance.Quiz.Current = question

	return nil
}

// SubmitAnswer scores the submission against the pending question's canonical
// answer, updates score and streak, advances the question index and finishes
// the quiz once the configured question count is reached.
//
// Matching is intentionally strict: trim + lowercase, then exact equality.
func SubmitAnswer(gameInstance *entity.Game, submitted string) (Result, error) {
	if !gameInstance.IsActive() {
		return Result{}, fmt.Errorf("%w: status %s", apperror.ErrGameNotActive, gameInstance.Status)
	}

	payload := gameInstance.Quiz
	if payload.Current == nil {
		return Result{}, ErrNoCurrentQuestion
	}

	correct := Normalize(submitted) == Normalize(payload.Current.Answer)
	if correct {
		payload.Score += pointsPerCorrect
		payload.Streak++
	} else {
		payload.Streak = 0
	}

	payload.AnswerLog = append(payload.AnswerLog, entity.Answer{
		QuestionID: payload.Current.ID,
		Submitted:  submitted,
		Correct:    correct,
	})

	payload.Current = nil
	payload.QuestionIndex++

	if payload.QuestionIndex >= payload.QuestionTotal {
		gameInstance.Status = entity.StatusFinished
	}

	return Result{
		Correct:  correct,
		Score:    payload.Score,
		Streak:   payload.Streak,
		Finished: gameInstance.IsFinished(),
	}, nil
}

// Normalize applies the answer-matching policy: whitespace and case only.
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
