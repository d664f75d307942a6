package gui

import (
	"context"
	"fmt"
	"time"

	"github.com/getlantern/systray"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/segbar/pkg/client"
	"github.com/charlie0129/segbar/pkg/events"
	"github.com/charlie0129/segbar/pkg/types"
	"github.com/charlie0129/segbar/pkg/version"
)

const refreshInterval = 10 * time.Second

type tray struct {
	api    *client.Client
	width  int
	height int

	mStatus   *systray.MenuItem
	mSegments *systray.MenuItem
	mFollow   *systray.MenuItem
}

func Run(unixSocketPath string, width, height int) {
	logrus.WithField("version", version.Version).WithField("gitCommit", version.GitCommit).Info("segbar tray")

	t := &tray{
		api:    client.NewClient(unixSocketPath),
		width:  width,
		height: height,
	}
	systray.Run(t.onReady, onExit)
}

func (t *tray) onReady() {
	systray.SetTitle("Loading...")
	systray.SetTooltip("segbar - segmented battery level")

	t.mStatus = systray.AddMenuItem("Level: -", "Current battery level")
	t.mStatus.Disable()

	t.mSegments = systray.AddMenuItem("Segments: -", "Segment layout")
	t.mSegments.Disable()

	systray.AddSeparator()

	t.mFollow = systray.AddMenuItemCheckbox("Follow System Battery", "Show the charge of this machine's battery", false)

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the tray")

	ctx, cancel := context.WithCancel(context.Background())
	evCh := t.api.SubscribeEvents(ctx)

	go func() {
		for {
			select {
			case <-mQuit.ClickedCh:
				cancel()
				systray.Quit()
				return
			case <-t.mFollow.ClickedCh:
				t.toggleFollow()
			case ev, ok := <-evCh:
				if !ok {
					return
				}
				if ev.Name != events.Invalidated {
					logrus.WithField("event", ev.Name).Debug("ignoring event")
					continue
				}
				if p, err := events.DecodeAs[events.InvalidatedEvent](ev); err == nil {
					logrus.WithFields(logrus.Fields{
						"batteryLevel": p.Options.BatteryLevel,
						"segmentCount": p.Options.SegmentCount,
					}).Debug("level bar invalidated")
				}
				t.refresh()
			case <-time.After(refreshInterval):
				t.refresh()
			}
		}
	}()

	t.refresh()
}

func onExit() {
	logrus.Info("segbar tray exiting")
}

func (t *tray) toggleFollow() {
	enable := !t.mFollow.Checked()
	if _, err := t.api.SetFollowSystem(enable); err != nil {
		logrus.Errorf("failed to set follow system: %v", err)
		return
	}
	t.refresh()
}

func (t *tray) refresh() {
	opts, err := t.api.GetOptions()
	if err != nil {
		systray.SetTitle("Offline")
		t.mStatus.SetTitle("Status: Disconnected")
		t.mSegments.SetTitle("Segments: -")
		logrus.Warnf("cannot connect to daemon: %v", err)
		return
	}

	icon, err := t.api.GetRenderPNG(t.width, t.height)
	if err != nil {
		logrus.Errorf("failed to render tray icon: %v", err)
	} else {
		systray.SetIcon(icon)
	}

	title, status, segments := menuTitles(opts)
	systray.SetTitle(title)
	t.mStatus.SetTitle(status)
	t.mSegments.SetTitle(segments)
	if opts.FollowSystem {
		t.mFollow.Check()
	} else {
		t.mFollow.Uncheck()
	}
}

func menuTitles(opts *types.OptionsResponse) (title, status, segments string) {
	title = fmt.Sprintf("%d%%", opts.BatteryLevel)

	source := "manual"
	if opts.FollowSystem {
		source = "system"
	}
	status = fmt.Sprintf("Level: %d%% (%s)", opts.BatteryLevel, source)

	unit := "segments"
	if opts.SegmentCount == 1 {
		unit = "segment"
	}
	segments = fmt.Sprintf("Segments: %d %s, %dpx apart", opts.SegmentCount, unit, opts.SegmentSpacing)

	return title, status, segments
}
