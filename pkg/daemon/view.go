package daemon

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/segbar/pkg/config"
	"github.com/charlie0129/segbar/pkg/events"
	"github.com/charlie0129/segbar/pkg/levelbar"
)

var (
	conf config.Config

	// view is the live level bar. levelbar.Renderer is single-threaded,
	// every access goes through viewMu.
	view   *levelbar.Renderer
	viewMu = &sync.Mutex{}

	hub = events.NewEventHub()
)

// initView builds the live level bar from the loaded config.
func initView() {
	viewMu.Lock()
	defer viewMu.Unlock()

	view = levelbar.New(conf.Options(), publishInvalidated)
	view.Resize(conf.Width(), conf.Height())
}

// applyConfig pushes the config into the live level bar, e.g. after a
// reload.
func applyConfig() {
	viewMu.Lock()
	defer viewMu.Unlock()

	opts := conf.Options()
	if conf.FollowSystem() {
		// Keep the level read from the system, the stored one is stale.
		opts.BatteryLevel = view.BatteryLevel()
	}
	view.SetOptions(opts)
	view.Resize(conf.Width(), conf.Height())
}

// publishInvalidated is the redraw callback of the live level bar. It runs
// with viewMu held.
func publishInvalidated() {
	ev := events.InvalidatedEvent{
		Options: view.Options(),
		Width:   view.Width(),
		Height:  view.Height(),
		Ts:      time.Now().Unix(),
	}
	logrus.WithFields(logrus.Fields{
		"batteryLevel": ev.Options.BatteryLevel,
		"segmentCount": ev.Options.SegmentCount,
		"width":        ev.Width,
		"height":       ev.Height,
	}).Trace("level bar invalidated")
	hub.Publish(events.Invalidated, ev)
}

// withView runs fn with exclusive access to the live level bar.
func withView(fn func(v *levelbar.Renderer)) {
	viewMu.Lock()
	defer viewMu.Unlock()
	fn(view)
}
