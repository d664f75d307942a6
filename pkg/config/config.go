package config

import (
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/segbar/pkg/levelbar"
)

type Config interface {
	SegmentCount() int
	SegmentSpacing() int
	BatteryLevel() int
	LevelColor() levelbar.Color
	BackgroundColor() levelbar.Color
	Width() int
	Height() int
	FollowSystem() bool
	SyncIntervalSeconds() int
	AllowNonRootAccess() bool

	SetSegmentCount(int)
	SetSegmentSpacing(int)
	SetBatteryLevel(int)
	SetLevelColor(levelbar.Color)
	SetBackgroundColor(levelbar.Color)
	SetSize(width, height int)
	SetFollowSystem(bool)
	SetAllowNonRootAccess(bool)

	// Options returns the level bar options stored in this config.
	Options() levelbar.Options
	LogrusFields() logrus.Fields

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
