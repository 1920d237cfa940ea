// Package playout plays random games to the end, asking a policy for forced
// moves and falling back to random legal moves.
package playout

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/traveller42/moggy-go/internal/board"
	"github.com/traveller42/moggy-go/internal/moggy"
)

const (
	// ProbHeuristic is the probability of a policy suggestion being taken.
	ProbHeuristic = 0.9
	Komi          = 7.5
)

type Policy interface {
	Choose(b moggy.Board, color board.Stone) (board.Coord, bool)
	Assess(b moggy.Board, m board.Move) (float64, bool)
}

type Rand interface {
	Intn(n int) int
	Float64() float64
}

type Config struct {
	MaxMoves      int // 0 means three times the number of points
	ProbHeuristic float64
	Komi          float64
}

func DefaultConfig() Config {
	return Config{ProbHeuristic: ProbHeuristic, Komi: Komi}
}

type Result struct {
	Score     float64 // from Black's point of view, komi included
	Winner    board.Stone
	Moves     int
	Heuristic int // moves suggested by the policy
	Repeated  bool
}

// Run plays a random game from start, which is left untouched. The side to
// move is the opponent of start's last move.
func Run(start *board.Board, policy Policy, rnd Rand, cfg Config) Result {
	b := start.Copy()
	maxMoves := cfg.MaxMoves
	if maxMoves <= 0 {
		maxMoves = 3 * b.Size() * b.Size()
	}
	seen := map[uint64]struct{}{b.Hash(): {}}
	color := b.LastMove().Color.Other()

	var res Result
	passes := 0
	for res.Moves < maxMoves && passes < 2 {
		c, heuristic := board.Pass, false
		if rnd.Float64() < cfg.ProbHeuristic {
			// the suggestion may save a group of either color
			if hc, ok := policy.Choose(b, color); ok && b.IsValidEscape(color, hc) {
				c, heuristic = hc, true
			}
		}
		if !heuristic {
			c = randomMove(b, policy, rnd, color)
		}
		if err := b.Play(board.Move{Coord: c, Color: color}); err != nil {
			// both sources only offer legal points
			panic(err)
		}

		res.Moves++
		if heuristic {
			res.Heuristic++
		}
		if c.IsPass() {
			passes++
		} else {
			passes = 0
			h := b.Hash()
			if _, ok := seen[h]; ok {
				res.Repeated = true
				break
			}
			seen[h] = struct{}{}
		}
		color = color.Other()
	}

	res.Score = b.Score(cfg.Komi)
	switch {
	case res.Score > 0:
		res.Winner = board.Black
	case res.Score < 0:
		res.Winner = board.White
	}
	return res
}

// randomMove walks the empty points from a random offset, skipping our own
// true eyes. A point the policy weights is taken with that probability;
// otherwise the first legal point wins. No legal point means pass.
func randomMove(b *board.Board, policy Policy, rnd Rand, color board.Stone) board.Coord {
	empties := b.Empties()
	if len(empties) == 0 {
		return board.Pass
	}
	first := board.Pass
	i0 := rnd.Intn(len(empties))
	for i := range empties {
		c := empties[(i0+i)%len(empties)]
		if b.IsEye(c) == color || !b.IsValidEscape(color, c) {
			continue
		}
		if w, ok := policy.Assess(b, board.Move{Coord: c, Color: color}); ok && rnd.Float64() < w {
			return c
		}
		if first.IsPass() {
			first = c
		}
	}
	return first
}

type Summary struct {
	Playouts      int
	BlackWins     int
	WhiteWins     int
	Repeated      int
	MeanMoves     float64
	MeanHeuristic float64
}

func (s Summary) BlackWinRate() float64 {
	if s.Playouts == 0 {
		return 0
	}
	return float64(s.BlackWins) / float64(s.Playouts)
}

// NewPolicyFunc builds the policy for one worker; rnd is that worker's own
// generator.
type NewPolicyFunc func(worker int, rnd *rand.Rand) Policy

// RunBatch plays n games from start on workers goroutines. Every worker owns
// its policy, generator (seeded with seed plus the worker number) and board
// copies, so the outcome depends only on the arguments.
func RunBatch(ctx context.Context, start *board.Board, n, workers int, seed int64, newPolicy NewPolicyFunc, cfg Config) (Summary, error) {
	if n < 0 {
		return Summary{}, fmt.Errorf("invalid playout count %d", n)
	}
	if workers < 1 {
		return Summary{}, fmt.Errorf("invalid worker count %d", workers)
	}

	results := make([]Result, n)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rnd := moggy.NewRandomness(seed + int64(w))
			policy := newPolicy(w, rnd)
			for i := w; i < n; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				results[i] = Run(start, policy, rnd, cfg)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	s := Summary{Playouts: n}
	var moves, heuristic int
	for _, r := range results {
		switch r.Winner {
		case board.Black:
			s.BlackWins++
		case board.White:
			s.WhiteWins++
		}
		if r.Repeated {
			s.Repeated++
		}
		moves += r.Moves
		heuristic += r.Heuristic
	}
	if n > 0 {
		s.MeanMoves = float64(moves) / float64(n)
		s.MeanHeuristic = float64(heuristic) / float64(n)
	}
	return s, nil
}
