package levelbar

// Renderer computes the fill commands of a segmented level bar.
//
// A Renderer is not safe for concurrent use. Every setter and Resize
// recomputes the layout and then calls the redraw callback, if any.
type Renderer struct {
	opts Options

	width  int
	height int

	segmentWidth int

	onInvalidate func()
}

// New returns a Renderer configured with opts. Out-of-range values in opts
// are clamped the same way the setters clamp them. onInvalidate may be nil.
func New(opts Options, onInvalidate func()) *Renderer {
	r := &Renderer{}
	r.opts.SegmentCount = clampSegmentCount(opts.SegmentCount)
	r.opts.SegmentSpacing = clampSpacing(opts.SegmentSpacing)
	r.opts.BatteryLevel = clampLevel(opts.BatteryLevel)
	r.opts.LevelColor = opts.LevelColor
	r.opts.BackgroundColor = opts.BackgroundColor
	r.layout()
	r.onInvalidate = onInvalidate
	return r
}

func clampLevel(v int) int {
	switch {
	case v > 100:
		return 100
	case v < 0:
		return 0
	default:
		return v
	}
}

func clampSegmentCount(n int) int {
	return min(max(n, 1), MaxSegmentCount)
}

func clampSpacing(px int) int {
	return min(max(px, 0), MaxSegmentSpacing)
}

// SetBatteryLevel stores v clamped to [0, 100].
func (r *Renderer) SetBatteryLevel(v int) {
	r.opts.BatteryLevel = clampLevel(v)
	r.invalidate()
}

func (r *Renderer) SetLevelColor(c Color) {
	r.opts.LevelColor = c
	r.invalidate()
}

func (r *Renderer) SetBackgroundColor(c Color) {
	r.opts.BackgroundColor = c
	r.invalidate()
}

// SetSegmentCount stores n clamped to [1, MaxSegmentCount].
func (r *Renderer) SetSegmentCount(n int) {
	r.opts.SegmentCount = clampSegmentCount(n)
	r.invalidate()
}

// SetSegmentSpacing stores px clamped to [0, MaxSegmentSpacing].
func (r *Renderer) SetSegmentSpacing(px int) {
	r.opts.SegmentSpacing = clampSpacing(px)
	r.invalidate()
}

// SetOptions replaces every option at once and requests a single redraw.
func (r *Renderer) SetOptions(opts Options) {
	r.opts.SegmentCount = clampSegmentCount(opts.SegmentCount)
	r.opts.SegmentSpacing = clampSpacing(opts.SegmentSpacing)
	r.opts.BatteryLevel = clampLevel(opts.BatteryLevel)
	r.opts.LevelColor = opts.LevelColor
	r.opts.BackgroundColor = opts.BackgroundColor
	r.invalidate()
}

// Resize is the size-changed notification. Negative sizes are treated as 0.
func (r *Renderer) Resize(width, height int) {
	r.width = max(width, 0)
	r.height = max(height, 0)
	r.invalidate()
}

func (r *Renderer) BatteryLevel() int { return r.opts.BatteryLevel }

func (r *Renderer) LevelColor() Color { return r.opts.LevelColor }

func (r *Renderer) BackgroundColor() Color { return r.opts.BackgroundColor }

func (r *Renderer) SegmentCount() int { return r.opts.SegmentCount }

func (r *Renderer) SegmentSpacing() int { return r.opts.SegmentSpacing }

func (r *Renderer) Options() Options { return r.opts }

func (r *Renderer) Width() int { return r.width }

func (r *Renderer) Height() int { return r.height }

// SegmentWidth is the width of one segment for the current viewport.
func (r *Renderer) SegmentWidth() int { return r.segmentWidth }

// Fill returns how many segments are completely filled and the filled
// share of the boundary segment in percent.
func (r *Renderer) Fill() (full, partialPercent int) {
	return r.fill()
}

// UnitPercentage is the percentage represented by one full segment.
func (r *Renderer) UnitPercentage() float64 {
	return 100 / float64(r.opts.SegmentCount)
}

func (r *Renderer) invalidate() {
	r.layout()
	if r.onInvalidate != nil {
		r.onInvalidate()
	}
}

func (r *Renderer) layout() {
	n := r.opts.SegmentCount
	r.segmentWidth = max((r.width-r.opts.SegmentSpacing*(n-1))/n, 0)
}
