package canvas

import (
	"strings"

	"github.com/fatih/color"

	"github.com/charlie0129/segbar/pkg/levelbar"
)

var _ levelbar.Canvas = &Terminal{}

// Terminal is a Canvas made of character cells. Each cell covers
// cellWidth x cellHeight pixels and takes the colour of the last fill
// covering its centre.
type Terminal struct {
	cellWidth  int
	cellHeight int
	cells      [][]*levelbar.Color
}

// NewTerminal returns a grid large enough to hold width x height pixels.
func NewTerminal(width, height, cellWidth, cellHeight int) *Terminal {
	cellWidth = max(cellWidth, 1)
	cellHeight = max(cellHeight, 1)
	cols := (max(width, 0) + cellWidth - 1) / cellWidth
	rows := max((max(height, 0)+cellHeight-1)/cellHeight, 1)

	cells := make([][]*levelbar.Color, rows)
	for y := range cells {
		cells[y] = make([]*levelbar.Color, cols)
	}

	return &Terminal{
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		cells:      cells,
	}
}

func (t *Terminal) FillRect(r levelbar.Rect, c levelbar.Color) {
	for y, row := range t.cells {
		cy := y*t.cellHeight + t.cellHeight/2
		if cy < r.Top || cy >= r.Bottom {
			continue
		}
		for x := range row {
			cx := x*t.cellWidth + t.cellWidth/2
			if cx < r.Left || cx >= r.Right {
				continue
			}
			cc := c
			row[x] = &cc
		}
	}
}

// Cell returns the colour of cell (x, y) and whether it was painted.
func (t *Terminal) Cell(x, y int) (levelbar.Color, bool) {
	if y < 0 || y >= len(t.cells) || x < 0 || x >= len(t.cells[y]) || t.cells[y][x] == nil {
		return levelbar.Color{}, false
	}
	return *t.cells[y][x], true
}

func (t *Terminal) Size() (cols, rows int) {
	return len(t.cells[0]), len(t.cells)
}

// String renders painted cells as full blocks in the nearest ANSI colour
// and unpainted cells as spaces.
func (t *Terminal) String() string {
	var sb strings.Builder
	for y, row := range t.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c == nil {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(color.New(nearestANSI(*c)).Sprint("█"))
		}
	}
	return sb.String()
}

var ansiPalette = []struct {
	attr color.Attribute
	rgb  levelbar.Color
}{
	{color.FgBlack, levelbar.Color{R: 0x00, G: 0x00, B: 0x00}},
	{color.FgRed, levelbar.Color{R: 0xCD, G: 0x00, B: 0x00}},
	{color.FgGreen, levelbar.Color{R: 0x00, G: 0xCD, B: 0x00}},
	{color.FgYellow, levelbar.Color{R: 0xCD, G: 0xCD, B: 0x00}},
	{color.FgBlue, levelbar.Color{R: 0x00, G: 0x00, B: 0xEE}},
	{color.FgMagenta, levelbar.Color{R: 0xCD, G: 0x00, B: 0xCD}},
	{color.FgCyan, levelbar.Color{R: 0x00, G: 0xCD, B: 0xCD}},
	{color.FgWhite, levelbar.Color{R: 0xE5, G: 0xE5, B: 0xE5}},
	{color.FgHiBlack, levelbar.Color{R: 0x7F, G: 0x7F, B: 0x7F}},
	{color.FgHiRed, levelbar.Color{R: 0xFF, G: 0x00, B: 0x00}},
	{color.FgHiGreen, levelbar.Color{R: 0x00, G: 0xFF, B: 0x00}},
	{color.FgHiYellow, levelbar.Color{R: 0xFF, G: 0xFF, B: 0x00}},
	{color.FgHiBlue, levelbar.Color{R: 0x5C, G: 0x5C, B: 0xFF}},
	{color.FgHiMagenta, levelbar.Color{R: 0xFF, G: 0x00, B: 0xFF}},
	{color.FgHiCyan, levelbar.Color{R: 0x00, G: 0xFF, B: 0xFF}},
	{color.FgHiWhite, levelbar.Color{R: 0xFF, G: 0xFF, B: 0xFF}},
}

func nearestANSI(c levelbar.Color) color.Attribute {
	best := ansiPalette[0].attr
	bestDist := -1
	for _, p := range ansiPalette {
		dr := int(c.R) - int(p.rgb.R)
		dg := int(c.G) - int(p.rgb.G)
		db := int(c.B) - int(p.rgb.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = p.attr, d
		}
	}
	return best
}
