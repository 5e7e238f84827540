package dungeon

import (
	"bufio"
	"io"
	"strings"
)

// WriteText печатает карту построчно: строка - x от 0 до size.X включительно,
// столбец - y от 0 до size.Y включительно.
// '0' - пол, '1' - стена, 'x' - пустота.
func WriteText(w io.Writer, grid TileGrid, size Point) error {
	bw := bufio.NewWriter(w)
	for row := 0; row <= size.X; row++ {
		for col := 0; col <= size.Y; col++ {
			t, ok := grid.At(Point{X: row, Y: col})
			switch {
			case !ok:
				bw.WriteByte('x')
			case t == Wall:
				bw.WriteByte('1')
			default:
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteText печатает карту (см. пакетную WriteText)
func (m *BSPMap) WriteText(w io.Writer) error {
	return WriteText(w, m.tiles, m.size)
}

func (m *BSPMap) String() string {
	var sb strings.Builder
	_ = m.WriteText(&sb)
	return sb.String()
}
