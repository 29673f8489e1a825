package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moviemates/gamecore-backend/internal/config"
	"github.com/moviemates/gamecore-backend/internal/generator"
	"github.com/moviemates/gamecore-backend/internal/leaderboard"
	"github.com/moviemates/gamecore-backend/internal/registry"
	"github.com/moviemates/gamecore-backend/internal/repository"
	"github.com/moviemates/gamecore-backend/internal/repository/storage"
	"github.com/moviemates/gamecore-backend/internal/service"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// Core bundles the engine's public services for the surrounding app: the web
// layers talk to these and never to the packages underneath.
type Core struct {
	GamePlay    service.GamePlayService
	Quiz        service.QuizService
	Leaderboard *leaderboard.Leaderboard
}

// NewCore wires the engine against the given collaborators. generatorClient
// may be nil; the quiz then runs entirely off the fallback bank.
func NewCore(logger *slog.Logger, conf *config.Config, redisStorage *storage.RedisStorage, generatorClient generator.Client) *Core {
	moveRepo := repository.NewMoveRepository(redisStorage.Connection)
	leaderboardRepo := repository.NewLeaderboardRepository(redisStorage.Connection)

	board := leaderboard.New(logger, leaderboardRepo)
	rooms := registry.New(logger)

	// one independently seeded source per game, never shared across rooms
	newRNG := func() *rand.Rand {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	botService := service.NewBotService()

	adapter := generator.NewAdapter(logger, generatorClient, time.Duration(conf.Generator.TimeoutSeconds)*time.Second)

	return &Core{
		GamePlay:    service.NewGamePlayService(logger, newRNG, rooms, botService, moveRepo, board),
		Quiz:        service.NewQuizService(logger, rooms, adapter, board, conf.Quiz.QuestionCount),
		Leaderboard: board,
	}
}

// RunApp - runs the engine standalone: connect storage, wire the core and
// wait for a shutdown signal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	core := NewCore(logger, conf, redisStorage, nil)

	// read-only self-check against the store before reporting ready
	if _, err = core.Leaderboard.Top(ctx, "grid", 1); err != nil {
		return fmt.Errorf("leaderboard self-check failed: %w", err)
	}

	log.Info("Engine core ready", "defaultDifficulty", conf.Game.DefaultDifficulty)

	<-ctx.Done()
	log.Info("Application context canceled, shutting down")

	return nil
}
