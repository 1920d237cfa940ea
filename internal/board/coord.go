package board

import (
	"fmt"
	"strconv"
	"strings"
)

const colstr = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// MaxSize is the largest board with a column letter for every line.
const MaxSize = len(colstr)

// CoordString renders c as a GTP vertex such as "D4"; row 1 is the bottom line.
func (b *Board) CoordString(c Coord) string {
	if c.IsPass() {
		return "pass"
	}
	if !b.OnBoard(c) {
		return fmt.Sprintf("offboard(%d)", int(c))
	}
	x, y := b.XY(c)
	return fmt.Sprintf("%c%d", colstr[x], b.size-y)
}

// ParseCoord is the inverse of CoordString.
func (b *Board) ParseCoord(s string) (Coord, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) < 2 {
		return Pass, fmt.Errorf("invalid vertex %q", s)
	}
	x := strings.IndexByte(colstr, s[0])
	row, err := strconv.Atoi(s[1:])
	if err != nil || x < 0 || x >= b.size || row < 1 || row > b.size {
		return Pass, fmt.Errorf("invalid vertex %q", s)
	}
	return b.CoordXY(x, b.size-row), nil
}
