package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
)

func newQuiz(total int) *entity.Game {
	return entity.NewQuizGame("room-1", "movies", total)
}

func TestAttachQuestion(t *testing.T) {
	t.Run("Attaches a question to an active quiz", func(t *testing.T) {
		// Given: an active quiz with no pending question
		game := newQuiz(3)
		question := &entity.Question{ID: "q1", Prompt: "capital of France?", Answer: "Paris"}

		// When: the question is attached
		err := AttachQuestion(game, question)

		// Then: it becomes the pending question
		require.NoError(t, err)
		require.Equal(t, question, game.Quiz.Current)
	})

	t.Run("Error when a question is already pending", func(t *testing.T) {
		// Given: a quiz with a pending question
		game := newQuiz(3)
		require.NoError(t, AttachQuestion(game, &entity.Question{ID: "q1", Answer: "a"}))

		// When: another question is attached before an answer
		err := AttachQuestion(game, &entity.Question{ID: "q2", Answer: "b"})

		// Then: an ErrQuestionAlreadyPending error must be returned
		require.ErrorIs(t, err, ErrQuestionAlreadyPending)
	})

	t.Run("Error on finished quiz", func(t *testing.T) {
		game := newQuiz(3)
		game.Status = entity.StatusFinished

		err := AttachQuestion(game, &entity.Question{ID: "q1", Answer: "a"})
		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("Correct answer scores ten and extends the streak", func(t *testing.T) {
		// Given: a quiz with a pending question
		game := newQuiz(3)
		require.NoError(t, AttachQuestion(game, &entity.Question{ID: "q1", Answer: "Paris"}))

		// When: the canonical answer is submitted with noise around it
		result, err := SubmitAnswer(game, "  paris ")

		// Then: the submission is correct and totals advance
		require.NoError(t, err)
		require.True(t, result.Correct)
		require.Equal(t, 10, result.Score)
		require.Equal(t, 1, result.Streak)
		require.False(t, result.Finished)

		// Then: the pending question is consumed and the log grows
		require.Nil(t, game.Quiz.Current)
		require.Equal(t, 1, game.Quiz.QuestionIndex)
		require.Len(t, game.Quiz.AnswerLog, 1)
	})

	t.Run("Wrong answer resets the streak, never the score", func(t *testing.T) {
		// Given: a quiz with one correct answer already in
		game := newQuiz(3)
		require.NoError(t, AttachQuestion(game, &entity.Question{ID: "q1", Answer: "Paris"}))
		_, err := SubmitAnswer(game, "paris")
		require.NoError(t, err)

		// When: the next answer is wrong
		require.NoError(t, AttachQuestion(game, &entity.Question{ID: "q2", Answer: "Rome"}))
		result, err := SubmitAnswer(game, "Milan")

		// Then: streak resets while the score stands
		require.NoError(t, err)
		require.False(t, result.Correct)
		require.Equal(t, 10, result.Score)
		require.Equal(t, 0, result.Streak)
	})

	t.Run("Partial matches are rejected", func(t *testing.T) {
		// Given: a pending question with a two-word answer
		game := newQuiz(3)
		require.NoError(t, AttachQuestion(game, &entity.Question{ID: "q1", Answer: "Steven Spielberg"}))

		// When: only part of the answer is submitted
		result, err := SubmitAnswer(game, "Spielberg")

		// Then: the strict policy marks it wrong
		require.NoError(t, err)
		assert.False(t, result.Correct)
	})

	t.Run("Error without a pending question", func(t *testing.T) {
		game := newQuiz(3)

		_, err := SubmitAnswer(game, "anything")
		require.ErrorIs(t, err, ErrNoCurrentQuestion)
	})

	t.Run("Quiz finishes after the configured question count", func(t *testing.T) {
		// Given: answers correct, correct, wrong, correct over a 4-question quiz
		game := newQuiz(4)
		answers := []struct {
			submitted string
			canonical string
		}{
			{"a", "a"}, {"b", "b"}, {"nope", "c"}, {"d", "d"},
		}

		var last Result
		for i, answer := range answers {
			question := &entity.Question{ID: fmt.Sprintf("q%d", i), Answer: answer.canonical}
			require.NoError(t, AttachQuestion(game, question))

			var err error
			last, err = SubmitAnswer(game, answer.submitted)
			require.NoError(t, err)
		}

		// Then: final score is 30 with a trailing streak of 1
		require.Equal(t, 30, last.Score)
		require.Equal(t, 1, last.Streak)
		require.True(t, last.Finished)
		require.Equal(t, entity.StatusFinished, game.Status)

		// Then: score always equals 10 x correct entries in the log
		correct := 0
		for _, entry := range game.Quiz.AnswerLog {
			if entry.Correct {
				correct++
			}
		}
		require.Equal(t, 10*correct, game.Quiz.Score)

		// Then: no submission is accepted after the quiz finished
		_, err := SubmitAnswer(game, "late")
		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})
}
