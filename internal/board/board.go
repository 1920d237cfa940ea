// Package board is a plain Go board for playouts: a padded stone grid, group
// bookkeeping with ordered liberty lists, and simple Chinese rules (captures,
// suicide, simple ko).
package board

import (
	"fmt"
	"strings"

	"github.com/OneOfOne/xxhash"
)

// Given a board of size NxN we keep the position in a padded grid with a
// margin of two off-board cells on every side, so that neighbor and ladder
// probes up to two cells away from any on-board point stay inside the array.
// Coordinates are just indices into that grid.
const margin = 2

type Stone uint8

const (
	Empty Stone = iota
	Black
	White
	OffBoard
)

// Other returns the opposing color; Empty and OffBoard map to themselves.
func (s Stone) Other() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return s
}

func (s Stone) String() string {
	switch s {
	case Empty:
		return "."
	case Black:
		return "X"
	case White:
		return "O"
	}
	return "#"
}

// Coord is an index into the padded grid.
type Coord int

// Pass is never a grid coordinate.
const Pass Coord = -1

func (c Coord) IsPass() bool {
	return c == Pass
}

// Group is identified by the coordinate of one of its stones.
type Group Coord

// NoGroup is returned for empty and off-board cells. Coordinate 0 is a
// margin cell, so it is never a stone.
const NoGroup Group = 0

type Move struct {
	Coord Coord
	Color Stone
}

type Board struct {
	size   int
	stride int

	cells   []byte
	groupOf []Group
	libs    [][]Coord // indexed by group representative
	groups  []Group

	ko       Coord
	koColor  Stone // the side barred from retaking at ko
	last     Move
	captures [4]int

	// scratch for flood fills
	mark  []uint32
	epoch uint32
	stack []Coord
}

// New returns an empty size x size board.
func New(size int) *Board {
	if size < 1 || size > MaxSize {
		panic(fmt.Sprintf("board: invalid size %d", size))
	}
	stride := size + 2*margin
	n := stride * stride
	b := &Board{
		size:    size,
		stride:  stride,
		cells:   make([]byte, n),
		groupOf: make([]Group, n),
		libs:    make([][]Coord, n),
		mark:    make([]uint32, n),
		ko:      Pass,
		last:    Move{Coord: Pass, Color: White},
	}
	for i := range b.cells {
		b.cells[i] = byte(OffBoard)
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			b.cells[b.CoordXY(x, y)] = byte(Empty)
		}
	}
	return b
}

// Parse builds a board from rows of '.', 'X' (black) and 'O' (white), top row
// first. Stones are placed as given, without capture or legality checks; a
// group left without liberties is an error.
func Parse(rows ...string) (*Board, error) {
	if len(rows) == 0 || len(rows) > MaxSize {
		return nil, fmt.Errorf("board: %d rows, want 1..%d", len(rows), MaxSize)
	}
	b := New(len(rows))
	for y, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != b.size {
			return nil, fmt.Errorf("board: row %d has %d points, want %d", y+1, len(row), b.size)
		}
		for x := 0; x < b.size; x++ {
			var s Stone
			switch row[x] {
			case '.', '+':
				s = Empty
			case 'X', 'x', '@':
				s = Black
			case 'O', 'o':
				s = White
			default:
				return nil, fmt.Errorf("board: row %d: unexpected %q", y+1, row[x])
			}
			b.cells[b.CoordXY(x, y)] = byte(s)
		}
	}
	b.rebuild()
	for _, g := range b.groups {
		if len(b.libs[g]) == 0 {
			return nil, fmt.Errorf("board: group at %s has no liberties", b.CoordString(Coord(g)))
		}
	}
	return b, nil
}

// Copy returns an independent copy of b.
func (b *Board) Copy() *Board {
	cp := *b
	cp.cells = append([]byte(nil), b.cells...)
	cp.groupOf = append([]Group(nil), b.groupOf...)
	cp.libs = make([][]Coord, len(b.libs))
	for _, g := range b.groups {
		cp.libs[g] = append([]Coord(nil), b.libs[g]...)
	}
	cp.groups = append([]Group(nil), b.groups...)
	cp.mark = make([]uint32, len(b.mark))
	cp.epoch = 0
	cp.stack = nil
	return &cp
}

func (b *Board) Size() int {
	return b.size
}

// CoordXY maps board coordinates (0-based, y growing downward) to a grid
// index. x and y may reach up to two cells outside the board.
func (b *Board) CoordXY(x, y int) Coord {
	return Coord((y+margin)*b.stride + x + margin)
}

// XY is the inverse of CoordXY.
func (b *Board) XY(c Coord) (x, y int) {
	return int(c)%b.stride - margin, int(c)/b.stride - margin
}

func (b *Board) OnBoard(c Coord) bool {
	return c >= 0 && int(c) < len(b.cells) && Stone(b.cells[c]) != OffBoard
}

func (b *Board) At(c Coord) Stone {
	return Stone(b.cells[c])
}

func (b *Board) AtXY(x, y int) Stone {
	return Stone(b.cells[b.CoordXY(x, y)])
}

func (b *Board) GroupAt(c Coord) Group {
	return b.groupOf[c]
}

// Liberties returns the liberty count of g.
func (b *Board) Liberties(g Group) int {
	if g == NoGroup {
		return 0
	}
	return len(b.libs[g])
}

// FirstLiberty returns the first liberty of g, or Pass if it has none.
func (b *Board) FirstLiberty(g Group) Coord {
	if g == NoGroup || len(b.libs[g]) == 0 {
		return Pass
	}
	return b.libs[g][0]
}

// LibertyList returns the ordered liberties of g. The slice is owned by the board.
func (b *Board) LibertyList(g Group) []Coord {
	if g == NoGroup {
		return nil
	}
	return b.libs[g]
}

// Groups returns the live groups in board scan order. The slice is owned by
// the board and stays valid until the next Play.
func (b *Board) Groups() []Group {
	return b.groups
}

// neighbors of c
func (b *Board) Neighbors(c Coord) [4]Coord {
	s := Coord(b.stride)
	return [4]Coord{c - 1, c + 1, c - s, c + s}
}

// diagonal neighbors of c
func (b *Board) DiagNeighbors(c Coord) [4]Coord {
	s := Coord(b.stride)
	return [4]Coord{c - s - 1, c - s + 1, c + s - 1, c + s + 1}
}

func (b *Board) LastMove() Move {
	return b.last
}

// Ko returns the simple ko point and the color that may not play there, or
// Pass if there is no ko.
func (b *Board) Ko() (Coord, Stone) {
	if b.ko == Pass {
		return Pass, Empty
	}
	return b.ko, b.koColor
}

// Captures returns the number of stones captured by color so far.
func (b *Board) Captures(color Stone) int {
	return b.captures[color&3]
}

// Empties returns all empty points in scan order.
func (b *Board) Empties() []Coord {
	var out []Coord
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			c := b.CoordXY(x, y)
			if Stone(b.cells[c]) == Empty {
				out = append(out, c)
			}
		}
	}
	return out
}

// Hash fingerprints the stone grid.
func (b *Board) Hash() uint64 {
	return xxhash.Checksum64(b.cells)
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		fmt.Fprintf(&sb, "%2d ", b.size-y)
		for x := 0; x < b.size; x++ {
			sb.WriteString(b.AtXY(x, y).String())
			if x != b.size-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for x := 0; x < b.size; x++ {
		sb.WriteByte(colstr[x])
		if x != b.size-1 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// rebuild recomputes group membership and liberty lists from the stone grid
// by flood filling every chain.
func (b *Board) rebuild() {
	for _, g := range b.groups {
		b.libs[g] = b.libs[g][:0]
	}
	b.groups = b.groups[:0]
	for i := range b.groupOf {
		b.groupOf[i] = NoGroup
	}
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			c := b.CoordXY(x, y)
			s := Stone(b.cells[c])
			if s != Black && s != White || b.groupOf[c] != NoGroup {
				continue
			}
			b.fill(c, s)
		}
	}
}

// fill floodfills the chain of color s starting at c, recording it as a new group.
func (b *Board) fill(c Coord, s Stone) {
	g := Group(c)
	libs := b.libs[g][:0]
	epoch := b.nextEpoch()
	b.groupOf[c] = g
	stack := append(b.stack[:0], c)
	for len(stack) > 0 {
		c, stack = stack[len(stack)-1], stack[:len(stack)-1]
		for _, d := range b.Neighbors(c) {
			switch Stone(b.cells[d]) {
			case s:
				if b.groupOf[d] == NoGroup {
					b.groupOf[d] = g
					stack = append(stack, d)
				}
			case Empty:
				if b.mark[d] != epoch {
					b.mark[d] = epoch
					libs = append(libs, d)
				}
			}
		}
	}
	b.stack = stack
	b.libs[g] = libs
	b.groups = append(b.groups, g)
}

func (b *Board) nextEpoch() uint32 {
	b.epoch++
	if b.epoch == 0 {
		for i := range b.mark {
			b.mark[i] = 0
		}
		b.epoch = 1
	}
	return b.epoch
}
