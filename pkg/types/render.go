package types

import "github.com/charlie0129/segbar/pkg/levelbar"

// OptionsResponse is the live state of the daemon's level bar.
type OptionsResponse struct {
	levelbar.Options
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	SegmentWidth   int     `json:"segmentWidth"`
	Unit           float64 `json:"unitPercentage"`
	FullSegments   int     `json:"fullSegments"`
	PartialPercent int     `json:"partialPercent"`
	FollowSystem   bool    `json:"followSystem"`
}

// RenderResponse is one render pass of the level bar.
type RenderResponse struct {
	Width          int                    `json:"width"`
	Height         int                    `json:"height"`
	SegmentWidth   int                    `json:"segmentWidth"`
	FullSegments   int                    `json:"fullSegments"`
	PartialPercent int                    `json:"partialPercent"`
	Commands       []levelbar.DrawCommand `json:"commands"`
}

func NewRenderResponse(r *levelbar.Renderer) RenderResponse {
	full, partial := r.Fill()
	return RenderResponse{
		Width:          r.Width(),
		Height:         r.Height(),
		SegmentWidth:   r.SegmentWidth(),
		FullSegments:   full,
		PartialPercent: partial,
		Commands:       r.Render(),
	}
}

// Size is the body of PUT /size.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}
