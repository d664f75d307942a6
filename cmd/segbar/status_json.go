package main

import (
	"encoding/json"
	"math"

	"github.com/spf13/cobra"

	"github.com/charlie0129/segbar/pkg/levelbar"
)

type statusJSON struct {
	Bar           statusBarJSON     `json:"bar"`
	Battery       statusBatteryJSON `json:"battery"`
	Configuration statusConfigJSON  `json:"configuration"`
}

type statusBarJSON struct {
	BatteryLevelPercent int     `json:"batteryLevelPercent"`
	FullSegments        int     `json:"fullSegments"`
	BoundaryPercent     int     `json:"boundaryPercent"`
	UnitPercent         float64 `json:"unitPercent"`
	SegmentWidthPx      int     `json:"segmentWidthPx"`
}

type statusBatteryJSON struct {
	// SystemLevelPercent is nil when the machine reports no battery.
	SystemLevelPercent *int `json:"systemLevelPercent"`
	Batteries          int  `json:"batteries"`
	FollowSystem       bool `json:"followSystem"`
}

type statusConfigJSON struct {
	WidthPx         int            `json:"widthPx"`
	HeightPx        int            `json:"heightPx"`
	SegmentCount    int            `json:"segmentCount"`
	SegmentSpacing  int            `json:"segmentSpacingPx"`
	LevelColor      levelbar.Color `json:"levelColor"`
	BackgroundColor levelbar.Color `json:"backgroundColor"`
}

func printStatusJSON(cmd *cobra.Command, data *statusData) error {
	opts := data.options

	out := statusJSON{
		Bar: statusBarJSON{
			BatteryLevelPercent: opts.BatteryLevel,
			FullSegments:        opts.FullSegments,
			BoundaryPercent:     opts.PartialPercent,
			UnitPercent:         math.Round(opts.Unit*100) / 100,
			SegmentWidthPx:      opts.SegmentWidth,
		},
		Battery: statusBatteryJSON{
			FollowSystem: opts.FollowSystem,
		},
		Configuration: statusConfigJSON{
			WidthPx:         opts.Width,
			HeightPx:        opts.Height,
			SegmentCount:    opts.SegmentCount,
			SegmentSpacing:  opts.SegmentSpacing,
			LevelColor:      opts.LevelColor,
			BackgroundColor: opts.BackgroundColor,
		},
	}

	if data.system != nil {
		level := data.system.Level
		out.Battery.SystemLevelPercent = &level
		out.Battery.Batteries = data.system.Batteries
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
