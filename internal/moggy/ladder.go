package moggy

import (
	"github.com/traveller42/moggy-go/internal/board"
)

// ladderCatcher tells if the point at (x, y) is friendly to the one who
// catches the ladder.
func ladderCatcher(b Board, x, y int, laddered board.Stone) bool {
	s := b.At(b.CoordXY(x, y))
	return s == laddered.Other() || s == board.OffBoard
}

type offset struct {
	dx, dy int
}

// ladderDir is one kind of ladder step: where it moves, the point straight
// ahead of the new position and the point diagonally behind it.
type ladderDir struct {
	name   string
	step   offset
	ahead  offset
	behind offset
}

type ladder struct {
	b      Board
	x, y   int
	lcolor board.Stone
}

func (l *ladder) at(o offset) board.Stone {
	return l.b.At(l.b.CoordXY(l.x+o.dx, l.y+o.dy))
}

// ladderCatches tells whether escaping from atari at lib, the last liberty of
// laddered, runs into a tight ladder that captures the group. This is very
// trivial and gets a lot of corner cases wrong; it needs to be fast, not
// complete. Anything that is not a simple tight ladder counts as escaping.
func (p *Policy) ladderCatches(b Board, lib board.Coord, laddered board.Group) bool {
	lcolor := b.At(board.Coord(laddered))

	// figure out the ladder direction
	x, y := b.XY(lib)
	xd, yd := 0, 0
	if b.At(b.CoordXY(x+1, y)) == board.Empty {
		xd = 1
	} else if b.At(b.CoordXY(x-1, y)) == board.Empty {
		xd = -1
	}
	if b.At(b.CoordXY(x, y+1)) == board.Empty {
		yd = 1
	} else if b.At(b.CoordXY(x, y-1)) == board.Empty {
		yd = -1
	}

	// Only tight ladders, and only simple ones: exactly one of the two
	// points behind the liberty may hold a catcher.
	horizFirst := xd != 0 && ladderCatcher(b, x-xd, y, lcolor)
	if xd == 0 || yd == 0 || horizFirst == ladderCatcher(b, x, y-yd, lcolor) {
		// probably a non-simple ladder or suicide
		if p.debugl(5) {
			p.log.Debugf("non-simple ladder at %d,%d", x, y)
		}
		return false
	}

	l := &ladder{b: b, x: x, y: y, lcolor: lcolor}
	horiz := ladderDir{name: "horiz", step: offset{xd, 0}, ahead: offset{xd, 0}, behind: offset{-2 * xd, yd}}
	vert := ladderDir{name: "vert", step: offset{0, yd}, ahead: offset{0, yd}, behind: offset{xd, -2 * yd}}

	if horizFirst {
		if caught, done := p.ladderStep(l, horiz); done {
			return caught
		}
	}
	// every step moves toward the edge, and the margin is all catchers
	for {
		if caught, done := p.ladderStep(l, vert); done {
			return caught
		}
		if caught, done := p.ladderStep(l, horiz); done {
			return caught
		}
	}
}

// ladderStep plays the ladder one point further along d and reports whether
// that decides it.
func (p *Policy) ladderStep(l *ladder, d ladderDir) (caught, done bool) {
	if p.debugl(6) {
		p.log.Debugf("%d,%d %s step %d,%d", l.x, l.y, d.name, d.step.dx, d.step.dy)
	}
	l.x += d.step.dx
	l.y += d.step.dy

	if l.at(offset{}) != board.Empty {
		// we hit a stone
		if ladderCatcher(l.b, l.x, l.y, l.lcolor) {
			return true, true
		}
		// Our own group with more than one liberty breaks the ladder; one
		// that is in atari itself does not, and the scan goes on past it.
		if l.b.Liberties(l.b.GroupAt(l.b.CoordXY(l.x, l.y))) > 1 {
			return false, true
		}
		return false, false
	}

	// A new empty point; look for indirect ladder breakers. The point ahead
	// decides either way. Behind only our own stone counts, a catcher there
	// would mean forking one step earlier.
	switch l.at(d.ahead) {
	case l.lcolor:
		return false, true
	case l.lcolor.Other():
		return true, true
	}
	if l.at(d.behind) == l.lcolor {
		return false, true
	}
	return false, false
}
