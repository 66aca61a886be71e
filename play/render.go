package play

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hex2048/game"
	"hex2048/utils"
)

const cellWidth = 6

// Render draws the board as a hexagon, one line per row, shifting each row
// by half a cell per step away from the middle row.
func Render(w io.Writer, board *game.Board) {
	var sb strings.Builder
	row := -1
	for pos := range board.Geometry().ValidPositions() {
		if pos.X != row {
			if row >= 0 {
				sb.WriteString("\n")
			}
			row = pos.X
			sb.WriteString(strings.Repeat(" ", utils.Abs(row-(board.Size()-1))*cellWidth/2))
		}
		label := "."
		if t, ok := board.Tile(pos); ok {
			label = strconv.Itoa(t.Value())
		}
		fmt.Fprintf(&sb, "%*s", cellWidth, label)
	}
	sb.WriteString("\n")
	fmt.Fprint(w, sb.String())
}
