// A minimalistic Go playout engine: random games guided by the moggy
// playout policy, which saves groups from atari unless they would only run
// into a ladder.
// Based on michi-go, the Go port of michi.py by Petr Baudis <pasky@ucw.cz>.
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/traveller42/moggy-go/internal/bootstrap"
	"github.com/traveller42/moggy-go/internal/moggy"
	"github.com/traveller42/moggy-go/internal/playout"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(args)
	if err != nil {
		logger.Errorw("Failed to setup configuration", zap.Error(err))
		return 2
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	log := logger.With("run", uuid.NewString())

	start, err := cfg.Board()
	if err != nil {
		log.Errorw("Failed to load position", zap.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	newPolicy := func(worker int, rnd *rand.Rand) playout.Policy {
		return moggy.New(cfg.Policy, moggy.Config{
			DebugLevel: cfg.Debug,
			Randomness: rnd,
			Log:        log.Named("moggy").With("worker", worker),
		})
	}
	pcfg := playout.Config{
		MaxMoves:      cfg.MaxMoves,
		ProbHeuristic: cfg.ProbHeuristic,
		Komi:          cfg.Komi,
	}

	log.Infow("Start", "size", start.Size(), "playouts", cfg.Playouts, "workers", cfg.Workers, "seed", cfg.Seed)
	began := time.Now()
	summary, err := playout.RunBatch(ctx, start, cfg.Playouts, cfg.Workers, cfg.Seed, newPolicy, pcfg)
	if err != nil {
		log.Errorw("Playouts failed", zap.Error(err))
		return 1
	}
	elapsed := time.Since(began)

	log.Infow("End",
		"playouts", summary.Playouts,
		"black_winrate", summary.BlackWinRate(),
		"black_wins", summary.BlackWins,
		"white_wins", summary.WhiteWins,
		"repeated", summary.Repeated,
		"mean_moves", summary.MeanMoves,
		"mean_policy_moves", summary.MeanHeuristic,
		"elapsed", elapsed,
	)
	return 0
}

func NewLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
