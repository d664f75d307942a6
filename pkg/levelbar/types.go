package levelbar

import "image"

const (
	DefaultSegmentCount   = 3
	DefaultSegmentSpacing = 30
	DefaultBatteryLevel   = 50
)

const (
	// MaxSegmentCount keeps level*count and the command list small.
	MaxSegmentCount = 1000
	// MaxSegmentSpacing bounds spacing*(count-1).
	MaxSegmentSpacing = 1 << 16
)

// Options holds the configurable values of a level bar.
type Options struct {
	SegmentCount    int   `json:"segmentCount"`
	SegmentSpacing  int   `json:"segmentSpacing"`
	BatteryLevel    int   `json:"batteryLevel"`
	LevelColor      Color `json:"levelColor"`
	BackgroundColor Color `json:"backgroundColor"`
}

// DefaultOptions returns 3 segments 30px apart, half full, green on light gray.
func DefaultOptions() Options {
	return Options{
		SegmentCount:    DefaultSegmentCount,
		SegmentSpacing:  DefaultSegmentSpacing,
		BatteryLevel:    DefaultBatteryLevel,
		LevelColor:      Green,
		BackgroundColor: LightGray,
	}
}

// Rect is a rectangle in pixel coordinates. Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func (r Rect) Dx() int { return r.Right - r.Left }

func (r Rect) Dy() int { return r.Bottom - r.Top }

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// Layer tells which pass of a render a command belongs to.
type Layer string

const (
	LayerBackground Layer = "background"
	LayerLevel      Layer = "level"
)

// DrawCommand is a single "fill this rectangle with this colour" instruction.
type DrawCommand struct {
	Rect  Rect  `json:"rect"`
	Color Color `json:"color"`
	Layer Layer `json:"layer"`
}

// Canvas is a drawing surface. Fills are destructive: the last fill
// covering a pixel decides its colour.
type Canvas interface {
	FillRect(r Rect, c Color)
}
