// Package moggy is a playout policy: fast tactical checks that pick a forced
// move for the current ply of a random game, or weight candidate moves for
// probabilistic sampling.
//
// Currently it knows one thing: save (or capture) groups in atari, unless the
// escape is suicide or runs into a simple ladder.
package moggy

import (
	"math/rand"
	"strings"
	"time"

	"github.com/bszcz/mt19937_64"
	"go.uber.org/zap"

	"github.com/traveller42/moggy-go/internal/board"
)

// Board is the read-only view of a position the policy works on.
// CoordXY must accept points up to two cells outside the board and report
// them as board.OffBoard.
type Board interface {
	At(c board.Coord) board.Stone
	CoordXY(x, y int) board.Coord
	XY(c board.Coord) (x, y int)
	GroupAt(c board.Coord) board.Group
	Liberties(g board.Group) int
	FirstLiberty(g board.Group) board.Coord
	Neighbors(c board.Coord) [4]board.Coord
	Groups() []board.Group
	IsValidEscape(color board.Stone, c board.Coord) bool
	String() string
}

type Randomness interface {
	Intn(n int) int
}

// NewRandomness returns a Mersenne Twister backed generator seeded with seed.
// It is not safe for concurrent use; give every playout thread its own.
func NewRandomness(seed int64) *rand.Rand {
	src := mt19937_64.New()
	src.Seed(seed)
	return rand.New(src)
}

type Config struct {
	DebugLevel int
	Randomness Randomness
	Log        *zap.SugaredLogger
}

type Policy struct {
	debugLevel int
	rand       Randomness
	log        *zap.SugaredLogger
}

// New builds a policy from a colon-separated list of key or key=value
// options. Unknown options are reported and ignored.
func New(arg string, cfg Config) *Policy {
	p := &Policy{
		debugLevel: cfg.DebugLevel,
		rand:       cfg.Randomness,
		log:        cfg.Log,
	}
	if p.rand == nil {
		p.rand = NewRandomness(time.Now().UnixNano())
	}
	if p.log == nil {
		p.log = newLogger()
	}

	for _, optspec := range strings.Split(arg, ":") {
		if optspec == "" {
			continue
		}
		optname, _, _ := strings.Cut(optspec, "=")
		// no parameters yet
		p.log.Warnf("playout-moggy: invalid policy argument %s or missing value", optname)
	}
	return p
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar().Named("moggy")
}

// debugl reports whether diagnostics of level n are enabled.
func (p *Policy) debugl(n int) bool {
	return p.debugLevel > n
}

// Choose returns the move to play in this ply of the playout, or false if the
// policy has no suggestion and the caller should fall back to a random move.
func (p *Policy) Choose(b Board, color board.Stone) (board.Coord, bool) {
	if p.debugl(4) {
		p.log.Debugf("choosing for %s\n%s", color, b)
	}

	// any groups in atari?
	if c, ok := p.globalAtariCheck(b); ok {
		return c, true
	}
	return board.Pass, false
}

// criticalWeight marks a move that saves or captures a group in atari.
const criticalWeight = 1.0

// Assess weights a candidate move. The boolean is false when the policy has
// no opinion; such a move must be left out of this policy's contribution, not
// weighted as zero.
func (p *Policy) Assess(b Board, m board.Move) (float64, bool) {
	if m.Coord.IsPass() {
		return 0, false
	}
	if p.debugl(4) {
		p.log.Debugf("assessing %s %d\n%s", m.Color, int(m.Coord), b)
	}

	// are we dealing with atari?
	for _, n := range b.Neighbors(m.Coord) {
		g := b.GroupAt(n)
		if g == board.NoGroup || b.Liberties(g) != 1 {
			continue
		}
		if c, ok := p.groupAtariCheck(b, g); ok && c == m.Coord {
			return criticalWeight, true
		}
	}
	return 0, false
}
