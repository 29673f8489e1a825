package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/moviemates/gamecore-backend/internal/apperror"
	"github.com/moviemates/gamecore-backend/internal/entity"
	"github.com/moviemates/gamecore-backend/internal/quiz"
)

type questionSupplier interface {
	NextQuestion(ctx context.Context, category string, index int) *entity.Question
}

type QuizService interface {
	StartQuiz(ctx context.Context, roomID string, player *entity.Player, category string) (*entity.Game, error)
	NextQuestion(ctx context.Context, roomID string) (*entity.Question, error)
	SubmitAnswer(ctx context.Context, roomID, submitted string) (quiz.Result, error)
}

type quizService struct {
	logger *slog.Logger

	registry      gameRegistry
	supplier      questionSupplier
	recorder      scoreRecorder
	questionTotal int
}

func NewQuizService(logger *slog.Logger, registry gameRegistry, supplier questionSupplier, recorder scoreRecorder, questionTotal int) QuizService {
	return &quizService{
		logger:        logger.With("component", "quiz"),
		registry:      registry,
		supplier:      supplier,
		recorder:      recorder,
		questionTotal: questionTotal,
	}
}

func (that *quizService) StartQuiz(_ context.Context, roomID string, player *entity.Player, category string) (*entity.Game, error) {
	game, err := that.registry.Create(roomID, entity.KindQuiz, "")
	if err != nil {
		return nil, fmt.Errorf("failed to start quiz: %w", err)
	}

	player.GameID = game.ID
	game.Players = []*entity.Player{player}
	game.Quiz.Category = category
	game.Quiz.QuestionTotal = that.questionTotal

	return game, nil
}

// NextQuestion supplies the pending question, requesting a fresh one from the
// generator when none is pending. The generator call runs outside the room
// lock; only the snapshot and the attach hold it.
func (that *quizService) NextQuestion(ctx context.Context, roomID string) (*entity.Question, error) {
	var (
		pending  *entity.Question
		category string
		index    int
	)

	err := that.registry.WithRoom(roomID, func(game *entity.Game) error {
		if game.IsGrid() {
			return fmt.Errorf("%w: %s", ErrWrongGameKind, game.Kind)
		}

		if !game.IsActive() {
			return fmt.Errorf("%w: status %s", apperror.ErrGameNotActive, game.Status)
		}

		if game.Quiz.Current != nil {
			pending = game.Quiz.Current
			return nil
		}

		category = game.Quiz.Category
		index = game.Quiz.QuestionIndex

		return nil
	})
	if err != nil {
		return nil, err
	}

	if pending != nil {
		return pending, nil
	}

	question := that.supplier.NextQuestion(ctx, category, index)

	err = that.registry.WithRoom(roomID, func(game *entity.Game) error {
		attachErr := quiz.AttachQuestion(game, question)
		// a concurrent caller got there first; serve its question instead
		if errors.Is(attachErr, quiz.ErrQuestionAlreadyPending) {
			question = game.Quiz.Current
			return nil
		}

		return attachErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to attach question: %w", err)
	}

	return question, nil
}

// SubmitAnswer scores the submission under the room lock and, once the quiz
// finishes, records the leaderboard entry after releasing it.
func (that *quizService) SubmitAnswer(ctx context.Context, roomID, submitted string) (quiz.Result, error) {
	var (
		result quiz.Result
		entry  *entity.LeaderboardEntry
	)

	err := that.registry.WithRoom(roomID, func(game *entity.Game) error {
		if game.IsGrid() {
			return fmt.Errorf("%w: %s", ErrWrongGameKind, game.Kind)
		}

		var submitErr error
		result, submitErr = quiz.SubmitAnswer(game, submitted)
		if submitErr != nil {
			return submitErr
		}

		if result.Finished {
			entry = finalEntry(game)
		}

		return nil
	})
	if err != nil {
		return quiz.Result{}, err
	}

	if entry != nil {
		that.recorder.Record(ctx, entry)
		that.logger.Info("quiz finished",
			"roomID", roomID, "score", entry.Score, "streak", entry.Streak)
	}

	return result, nil
}

func finalEntry(game *entity.Game) *entity.LeaderboardEntry {
	username := ""
	if len(game.Players) > 0 {
		username = game.Players[0].Name
		if username == "" {
			username = game.Players[0].ID
		}
	}

	return &entity.LeaderboardEntry{
		Username:    username,
		Category:    game.Quiz.Category,
		Score:       game.Quiz.Score,
		Streak:      game.Quiz.Streak,
		SubmittedAt: time.Now().UTC(),
	}
}
