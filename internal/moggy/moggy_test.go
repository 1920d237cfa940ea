package moggy

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/traveller42/moggy-go/internal/board"
)

var _ Board = (*board.Board)(nil)

// fixedRand always picks the same offset.
type fixedRand int

func (f fixedRand) Intn(n int) int { return int(f) % n }

type failRand struct{ t *testing.T }

func (f failRand) Intn(n int) int {
	f.t.Fatalf("unexpected Intn(%d)", n)
	return 0
}

// countingBoard records how the policy probes the board.
type countingBoard struct {
	*board.Board
	at   int
	libs map[board.Group]int
}

func newCountingBoard(b *board.Board) *countingBoard {
	return &countingBoard{Board: b, libs: make(map[board.Group]int)}
}

func (c *countingBoard) At(x board.Coord) board.Stone {
	c.at++
	return c.Board.At(x)
}

func (c *countingBoard) Liberties(g board.Group) int {
	c.libs[g]++
	return c.Board.Liberties(g)
}

func mustParse(t *testing.T, rows ...string) *board.Board {
	t.Helper()
	b, err := board.Parse(rows...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func newTestPolicy(t *testing.T, r Randomness) *Policy {
	return New("", Config{DebugLevel: 7, Randomness: r, Log: zaptest.NewLogger(t).Sugar()})
}

// white E5 is in atari at E4; the ladder runs toward the lower right corner
var supportedLadder = []string{
	".........",
	".........",
	".........",
	"....X....",
	"...XOX...",
	"...X.....",
	".........",
	".........",
	".........",
}

func TestPolicyArguments(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	New("foo:bar=2::", Config{Randomness: fixedRand(0), Log: zap.New(core).Sugar()})
	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(entries))
	}
	for i, name := range []string{"foo", "bar"} {
		want := "playout-moggy: invalid policy argument " + name + " or missing value"
		if entries[i].Message != want {
			t.Errorf("diagnostic %d = %q, want %q", i, entries[i].Message, want)
		}
	}

	core, logs = observer.New(zap.WarnLevel)
	New("", Config{Randomness: fixedRand(0), Log: zap.New(core).Sugar()})
	if logs.Len() != 0 {
		t.Errorf("empty argument string produced %d diagnostics", logs.Len())
	}
}

func TestDebugLevelGatesDiagnostics(t *testing.T) {
	b := mustParse(t, supportedLadder...)

	core, logs := observer.New(zap.DebugLevel)
	p := New("", Config{Randomness: fixedRand(0), Log: zap.New(core).Sugar()})
	p.Choose(b, board.Black)
	if logs.Len() != 0 {
		t.Errorf("debug level 0 produced %d diagnostics", logs.Len())
	}

	core, logs = observer.New(zap.DebugLevel)
	p = New("", Config{DebugLevel: 7, Randomness: fixedRand(0), Log: zap.New(core).Sugar()})
	p.Choose(b, board.Black)
	if logs.FilterMessageSnippet("horiz step").Len() == 0 {
		t.Errorf("debug level 7 should trace ladder steps")
	}
}

func TestNewRandomnessIsDeterministic(t *testing.T) {
	r1, r2 := NewRandomness(42), NewRandomness(42)
	for i := 0; i < 100; i++ {
		if a, b := r1.Intn(1000), r2.Intn(1000); a != b {
			t.Fatalf("draw %d: %d != %d", i, a, b)
		}
	}
}

func TestChooseSavesAtari(t *testing.T) {
	b := mustParse(t,
		".........",
		".........",
		".........",
		"....X....",
		"...XOX...",
		".........",
		".........",
		".........",
		".........",
	)
	for base := 0; base < len(b.Groups()); base++ {
		p := newTestPolicy(t, fixedRand(base))
		c, ok := p.Choose(b, board.Black)
		if !ok || c != b.CoordXY(4, 5) {
			t.Errorf("base %d: Choose = %s, %v; want E4", base, b.CoordString(c), ok)
		}
	}
}

func TestChooseSkipsLostLadder(t *testing.T) {
	b := mustParse(t, supportedLadder...)
	p := newTestPolicy(t, fixedRand(0))
	if c, ok := p.Choose(b, board.White); ok {
		t.Errorf("Choose = %s, want no move", b.CoordString(c))
	}
}

func TestGlobalAtariCheckEmptyBoard(t *testing.T) {
	p := newTestPolicy(t, failRand{t})
	if c, ok := p.globalAtariCheck(board.New(9)); ok || c != board.Pass {
		t.Errorf("globalAtariCheck = %v, %v; want pass", c, ok)
	}
	if c, ok := p.Choose(board.New(19), board.Black); ok || c != board.Pass {
		t.Errorf("Choose = %v, %v; want pass", c, ok)
	}
}

func TestGlobalAtariCheckVisitsEveryGroupOnce(t *testing.T) {
	b := mustParse(t,
		"X...O....",
		".........",
		"..X...X..",
		".........",
		".O...X...",
		".........",
		"XX....OO.",
		"........O",
		"...X.....",
	)
	groups := b.Groups()
	if len(groups) != 10 {
		t.Fatalf("got %d groups, want 10", len(groups))
	}
	for base := 0; base < len(groups); base++ {
		cb := newCountingBoard(b)
		p := newTestPolicy(t, fixedRand(base))
		if c, ok := p.globalAtariCheck(cb); ok {
			t.Fatalf("base %d: unexpected move %s", base, b.CoordString(c))
		}
		if len(cb.libs) != len(groups) {
			t.Errorf("base %d: examined %d groups, want %d", base, len(cb.libs), len(groups))
		}
		for _, g := range groups {
			if cb.libs[g] != 1 {
				t.Errorf("base %d: group %s examined %d times", base, b.CoordString(board.Coord(g)), cb.libs[g])
			}
		}
	}
}

func TestGlobalAtariCheckRotation(t *testing.T) {
	b := mustParse(t,
		".X.......",
		"XOX......",
		".........",
		".........",
		".........",
		"......X..",
		".....XOX.",
		".........",
		".........",
	)
	groups := b.Groups()
	for base := range groups {
		var want board.Coord
		for i := range groups {
			g := groups[(base+i)%len(groups)]
			if b.At(board.Coord(g)) == board.White {
				want = b.FirstLiberty(g)
				break
			}
		}
		p := newTestPolicy(t, fixedRand(base))
		if c, ok := p.globalAtariCheck(b); !ok || c != want {
			t.Errorf("base %d: got %s, want %s", base, b.CoordString(c), b.CoordString(want))
		}
	}
}

func TestAssessPass(t *testing.T) {
	b := mustParse(t, supportedLadder...)
	p := newTestPolicy(t, fixedRand(0))
	for _, color := range []board.Stone{board.Black, board.White} {
		if w, ok := p.Assess(b, board.Move{Coord: board.Pass, Color: color}); ok {
			t.Errorf("Assess(pass) = %v, want no opinion", w)
		}
	}
}

func TestAssessCriticalMove(t *testing.T) {
	rows := []string{
		".........",
		".........",
		".........",
		"....X....",
		"...XOX...",
		".........",
		".........",
		".........",
		".........",
	}
	b := mustParse(t, rows...)
	p := newTestPolicy(t, fixedRand(0))
	lib := b.CoordXY(4, 5)
	for _, color := range []board.Stone{board.Black, board.White} {
		if w, ok := p.Assess(b, board.Move{Coord: lib, Color: color}); !ok || w != 1.0 {
			t.Errorf("Assess(%s E4) = %v, %v; want 1", color, w, ok)
		}
	}
	if w, ok := p.Assess(b, board.Move{Coord: b.CoordXY(7, 7), Color: board.Black}); ok {
		t.Errorf("Assess(H2) = %v, want no opinion", w)
	}

	// with a second liberty the same point is no longer critical
	rows[3] = "........."
	b = mustParse(t, rows...)
	if b.Liberties(b.GroupAt(b.CoordXY(4, 4))) != 2 {
		t.Fatalf("white should have two liberties")
	}
	if w, ok := p.Assess(b, board.Move{Coord: lib, Color: board.White}); ok {
		t.Errorf("Assess(E4) = %v, want no opinion", w)
	}

	// a lost ladder is not worth saving
	b = mustParse(t, supportedLadder...)
	if w, ok := p.Assess(b, board.Move{Coord: lib, Color: board.White}); ok {
		t.Errorf("Assess(E4) in a ladder = %v, want no opinion", w)
	}
}
