package canvas

import (
	"bytes"
	imgcolor "image/color"
	"image/png"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/segbar/pkg/levelbar"
)

func testRenderer(level int) *levelbar.Renderer {
	// 3 segments of 100px, 10px apart.
	r := levelbar.New(levelbar.Options{
		SegmentCount:    3,
		SegmentSpacing:  10,
		BatteryLevel:    level,
		LevelColor:      levelbar.Green,
		BackgroundColor: levelbar.LightGray,
	}, nil)
	r.Resize(320, 20)
	return r
}

func sameColor(t *testing.T, want, got imgcolor.Color, msgAndArgs ...interface{}) {
	t.Helper()
	wr, wg, wb, wa := want.RGBA()
	gr, gg, gb, ga := got.RGBA()
	assert.Equal(t, []uint32{wr, wg, wb, wa}, []uint32{gr, gg, gb, ga}, msgAndArgs...)
}

func TestImage_Pixels(t *testing.T) {
	r := testRenderer(50)
	img := NewImage(r.Width(), r.Height())
	r.Draw(img)

	// 50% of 3 segments: first full, second half (150% of one segment).
	tests := []struct {
		x    int
		want imgcolor.Color
	}{
		{x: 5, want: levelbar.Green},
		{x: 95, want: levelbar.Green},
		{x: 105, want: imgcolor.Transparent},
		{x: 115, want: levelbar.Green},
		{x: 155, want: levelbar.Green},
		{x: 165, want: levelbar.LightGray},
		{x: 205, want: levelbar.LightGray},
		{x: 225, want: levelbar.LightGray},
		{x: 315, want: levelbar.LightGray},
	}
	for _, tt := range tests {
		sameColor(t, tt.want, img.Image().At(tt.x, 10), "pixel x=%d", tt.x)
	}
}

func TestRenderPNG(t *testing.T) {
	r := testRenderer(100)

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(r, &buf))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, decoded.Bounds().Dx())
	assert.Equal(t, 20, decoded.Bounds().Dy())
	sameColor(t, levelbar.Green, decoded.At(300, 5))
}

func TestImage_SkipsEmptyRect(t *testing.T) {
	img := NewImage(10, 10)
	img.FillRect(levelbar.Rect{Left: 2, Top: 0, Right: 2, Bottom: 10}, levelbar.Green)
	sameColor(t, imgcolor.Transparent, img.Image().At(2, 5))
}

func TestTerminal_Cells(t *testing.T) {
	r := testRenderer(50)
	term := NewTerminal(r.Width(), r.Height(), 10, 20)

	cols, rows := term.Size()
	require.Equal(t, 32, cols)
	require.Equal(t, 1, rows)

	r.Draw(term)

	want := map[int]*levelbar.Color{
		0:  &levelbar.Green,
		9:  &levelbar.Green,
		10: nil, // gap
		11: &levelbar.Green,
		15: &levelbar.Green,
		16: &levelbar.LightGray,
		20: &levelbar.LightGray,
		21: nil,
		31: &levelbar.LightGray,
	}
	for x, w := range want {
		c, ok := term.Cell(x, 0)
		if w == nil {
			assert.False(t, ok, "cell %d should be empty", x)
			continue
		}
		require.True(t, ok, "cell %d should be painted", x)
		assert.Equal(t, *w, c, "cell %d", x)
	}
}

func TestTerminal_String(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	r := testRenderer(0)
	term := NewTerminal(r.Width(), r.Height(), 10, 10)
	r.Draw(term)

	line := "██████████ ██████████ ██████████"
	assert.Equal(t, line+"\n"+line, term.String())
}

func TestNearestANSI(t *testing.T) {
	assert.Equal(t, color.FgHiGreen, nearestANSI(levelbar.Green))
	assert.Equal(t, color.FgWhite, nearestANSI(levelbar.LightGray))
	assert.Equal(t, color.FgBlack, nearestANSI(levelbar.Color{R: 5, G: 5, B: 5}))
}
