package daemon

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/segbar/pkg/levelbar"
)

// syncLoop keeps the live level bar at the system battery level while
// follow-system is enabled. The interval is re-read every iteration so
// config reloads take effect.
func syncLoop(ctx context.Context) {
	syncOnce()
	for {
		interval := time.Duration(conf.SyncIntervalSeconds()) * time.Second
		select {
		case <-ctx.Done():
			logrus.Debug("sync loop stopped")
			return
		case <-time.After(interval):
			syncOnce()
		}
	}
}

// syncOnce applies the system battery level to the live level bar. It
// returns whether the level changed.
func syncOnce() bool {
	if !conf.FollowSystem() {
		return false
	}

	st, err := systemStatus()
	if err != nil {
		logrus.Warnf("failed to read system battery level: %v", err)
		return false
	}

	changed := false
	withView(func(v *levelbar.Renderer) {
		if v.BatteryLevel() == st.Level {
			return
		}
		logrus.WithFields(logrus.Fields{
			"from": v.BatteryLevel(),
			"to":   st.Level,
		}).Debug("battery level changed")
		v.SetBatteryLevel(st.Level)
		changed = true
	})

	return changed
}
