package levelbar

// segmentRect returns the full rectangle of segment i.
func (r *Renderer) segmentRect(i int) Rect {
	left := i * (r.segmentWidth + r.opts.SegmentSpacing)
	return Rect{
		Left:   left,
		Top:    0,
		Right:  left + r.segmentWidth,
		Bottom: r.height,
	}
}

// fill returns how many segments are completely filled at the current level,
// and the filled share of the next one as numerator/100.
//
// level / (100/n) and (level mod (100/n)) * n / 100 are evaluated as the
// integer quotient and remainder of level*n by 100, so a full bar never
// loses a segment to floating point rounding.
func (r *Renderer) fill() (full, partialPercent int) {
	scaled := r.opts.BatteryLevel * r.opts.SegmentCount
	return scaled / 100, scaled % 100
}

// Render returns the commands that paint the whole widget: every segment in
// the background colour first, then the filled segments and the partially
// filled boundary segment in the level colour.
func (r *Renderer) Render() []DrawCommand {
	n := r.opts.SegmentCount
	full, partial := r.fill()

	cmds := make([]DrawCommand, 0, n+full+1)

	for i := 0; i < n; i++ {
		cmds = append(cmds, DrawCommand{
			Rect:  r.segmentRect(i),
			Color: r.opts.BackgroundColor,
			Layer: LayerBackground,
		})
	}

	for i := 0; i < full; i++ {
		cmds = append(cmds, DrawCommand{
			Rect:  r.segmentRect(i),
			Color: r.opts.LevelColor,
			Layer: LayerLevel,
		})
	}

	if full >= n {
		return cmds
	}

	boundary := r.segmentRect(full)
	boundary.Right = boundary.Left + r.segmentWidth*partial/100
	cmds = append(cmds, DrawCommand{
		Rect:  boundary,
		Color: r.opts.LevelColor,
		Layer: LayerLevel,
	})

	return cmds
}

// Draw renders onto c.
func (r *Renderer) Draw(c Canvas) {
	for _, cmd := range r.Render() {
		c.FillRect(cmd.Rect, cmd.Color)
	}
}

// Recorder is a Canvas that keeps every fill it receives.
type Recorder struct {
	Commands []DrawCommand
}

func (rec *Recorder) FillRect(r Rect, c Color) {
	rec.Commands = append(rec.Commands, DrawCommand{Rect: r, Color: c})
}
