package board

import (
	"errors"
	"fmt"
)

var (
	ErrOffBoard = errors.New("move is off the board")
	ErrOccupied = errors.New("point is occupied")
	ErrKo       = errors.New("retakes ko")
	ErrSuicide  = errors.New("suicide")
)

// Play applies m to the board. An illegal move leaves the board untouched.
func (b *Board) Play(m Move) error {
	if m.Coord.IsPass() {
		b.ko = Pass
		b.last = m
		return nil
	}
	if err := b.legal(m.Color, m.Coord); err != nil {
		return fmt.Errorf("%s %s: %w", m.Color, b.CoordString(m.Coord), err)
	}

	// are we playing into an enemy's eye?
	inEnemyEye := b.IsEyeish(m.Coord) == m.Color.Other()

	b.cells[m.Coord] = byte(m.Color)
	captured := 0
	singleCap := Pass
	for _, d := range b.Neighbors(m.Coord) {
		if Stone(b.cells[d]) != m.Color.Other() {
			continue
		}
		g := b.groupOf[d]
		if g == NoGroup || len(b.libs[g]) != 1 {
			continue
		}
		n := b.remove(g)
		if n == 1 {
			singleCap = d
		}
		captured += n
	}
	b.captures[m.Color] += captured
	b.rebuild()

	b.ko = Pass
	if inEnemyEye && captured == 1 {
		b.ko = singleCap
		b.koColor = m.Color.Other()
	}
	b.last = m
	return nil
}

// remove takes every stone of g off the board and returns how many there were.
// Group bookkeeping is stale until the next rebuild.
func (b *Board) remove(g Group) int {
	s := b.cells[g]
	n := 0
	stack := append(b.stack[:0], Coord(g))
	b.cells[g] = byte(Empty)
	for len(stack) > 0 {
		var c Coord
		c, stack = stack[len(stack)-1], stack[:len(stack)-1]
		n++
		for _, d := range b.Neighbors(c) {
			if b.cells[d] == s && b.groupOf[d] == g {
				b.cells[d] = byte(Empty)
				stack = append(stack, d)
			}
		}
	}
	b.stack = stack
	return n
}

func (b *Board) legal(color Stone, c Coord) error {
	if color != Black && color != White {
		return fmt.Errorf("invalid color %d", color)
	}
	if !b.OnBoard(c) {
		return ErrOffBoard
	}
	if Stone(b.cells[c]) != Empty {
		return ErrOccupied
	}
	if c == b.ko && color == b.koColor {
		return ErrKo
	}
	if b.suicide(color, c) {
		return ErrSuicide
	}
	return nil
}

// suicide reports whether a stone of color at the empty point c would be left
// without liberties.
func (b *Board) suicide(color Stone, c Coord) bool {
	for _, d := range b.Neighbors(c) {
		switch Stone(b.cells[d]) {
		case Empty:
			return false
		case color:
			// connecting to self without removing its last liberty
			if len(b.libs[b.groupOf[d]]) > 1 {
				return false
			}
		case color.Other():
			// a capture always leaves a liberty
			if len(b.libs[b.groupOf[d]]) == 1 {
				return false
			}
		}
	}
	return true
}

// IsValidEscape reports whether color may play at c as a legal, non-suicidal
// move. The ko point is refused only to the side the ko binds.
func (b *Board) IsValidEscape(color Stone, c Coord) bool {
	return b.legal(color, c) == nil
}

// IsEyeish tests if c is inside a single-color diamond and returns the
// diamond color, or Empty; this could be an eye, but also a false one.
func (b *Board) IsEyeish(c Coord) Stone {
	eyecolor := Empty
	for _, d := range b.Neighbors(c) {
		s := Stone(b.cells[d])
		switch {
		case s == OffBoard:
			continue
		case s == Empty:
			return Empty
		case eyecolor == Empty:
			eyecolor = s
		case s != eyecolor:
			return Empty
		}
	}
	return eyecolor
}

// IsEye tests if c is an eye and returns its color, or Empty.
func (b *Board) IsEye(c Coord) Stone {
	eyecolor := b.IsEyeish(c)
	if eyecolor == Empty {
		return Empty
	}

	// eye-like shape, but it could be a falsified eye
	falseCount := 0
	atEdge := false
	for _, d := range b.DiagNeighbors(c) {
		switch Stone(b.cells[d]) {
		case OffBoard:
			atEdge = true
		case eyecolor.Other():
			falseCount++
		}
	}
	if atEdge {
		falseCount++
	}
	if falseCount >= 2 {
		return Empty
	}
	return eyecolor
}

// Score computes the area score from Black's point of view: stones plus empty
// regions bordered by a single color, minus komi. Regions touching both
// colors (seki, rare) count for nobody. This assumes a final position with
// all dead stones captured.
func (b *Board) Score(komi float64) float64 {
	var black, white int
	epoch := b.nextEpoch()
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			c := b.CoordXY(x, y)
			switch Stone(b.cells[c]) {
			case Black:
				black++
			case White:
				white++
			case Empty:
				if b.mark[c] == epoch {
					continue
				}
				n, touches := b.region(c, epoch)
				switch touches {
				case 1 << Black:
					black += n
				case 1 << White:
					white += n
				}
			}
		}
	}
	return float64(black-white) - komi
}

// region floodfills the empty area at c, returning its size and a bitmask of
// the stone colors bordering it.
func (b *Board) region(c Coord, epoch uint32) (n int, touches int) {
	b.mark[c] = epoch
	stack := append(b.stack[:0], c)
	for len(stack) > 0 {
		c, stack = stack[len(stack)-1], stack[:len(stack)-1]
		n++
		for _, d := range b.Neighbors(c) {
			switch s := Stone(b.cells[d]); s {
			case Empty:
				if b.mark[d] != epoch {
					b.mark[d] = epoch
					stack = append(stack, d)
				}
			case Black, White:
				touches |= 1 << s
			}
		}
	}
	b.stack = stack
	return n, touches
}
