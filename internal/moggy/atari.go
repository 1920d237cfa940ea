package moggy

import (
	"github.com/traveller42/moggy-go/internal/board"
)

// groupAtariCheck returns the liberty that saves g from atari, if g is in
// atari and escaping there is neither suicide nor a lost ladder.
func (p *Policy) groupAtariCheck(b Board, g board.Group) (board.Coord, bool) {
	color := b.At(board.Coord(g))
	if color == board.OffBoard {
		// bogus group
		return board.Pass, false
	}
	if b.Liberties(g) != 1 {
		return board.Pass, false
	}
	lib := b.FirstLiberty(g)
	if p.debugl(4) {
		p.log.Debugf("atari at %d of color %s", int(lib), color)
	}

	// do not suicide...
	if !b.IsValidEscape(color, lib) {
		return board.Pass, false
	}
	if p.debugl(4) {
		p.log.Debug("...escape route valid")
	}

	// ...or play out ladders
	if p.ladderCatches(b, lib, g) {
		return board.Pass, false
	}
	if p.debugl(4) {
		p.log.Debug("...no ladder")
	}
	return lib, true
}

// globalAtariCheck looks for a group on the board that can be saved from
// atari. The scan starts at a random group so that repeated playouts of the
// same shape do not always favour the same one.
func (p *Policy) globalAtariCheck(b Board) (board.Coord, bool) {
	groups := b.Groups()
	if len(groups) == 0 {
		return board.Pass, false
	}

	base := p.rand.Intn(len(groups))
	for _, g := range groups[base:] {
		if c, ok := p.groupAtariCheck(b, g); ok {
			return c, true
		}
	}
	for _, g := range groups[:base] {
		if c, ok := p.groupAtariCheck(b, g); ok {
			return c, true
		}
	}
	return board.Pass, false
}
