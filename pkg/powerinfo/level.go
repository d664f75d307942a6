package powerinfo

import (
	"math"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoBattery is returned when no battery reports a usable capacity.
var ErrNoBattery = pkgerrors.New("no battery found")

// getAllBatteries is replaced in tests.
var getAllBatteries = battery.GetAll

// SystemStatus reads every battery of the machine.
func SystemStatus() (*Status, error) {
	batteries, err := getAllBatteries()
	if err != nil && len(batteries) == 0 {
		return nil, pkgerrors.Wrap(err, "failed to read batteries")
	}
	if err != nil {
		// Some batteries failed, use the ones that did not.
		logrus.Debugf("partial battery read: %v", err)
	}

	return statusFromBatteries(batteries)
}

// SystemLevel returns the machine's charge in percent.
func SystemLevel() (int, error) {
	st, err := SystemStatus()
	if err != nil {
		return 0, err
	}
	return st.Level, nil
}

func statusFromBatteries(batteries []*battery.Battery) (*Status, error) {
	st := &Status{}
	for _, bat := range batteries {
		if bat == nil || bat.Full <= 0 {
			continue
		}
		st.Current += bat.Current
		st.Full += bat.Full
		st.Batteries++
	}

	if st.Batteries == 0 {
		return nil, ErrNoBattery
	}

	level := int(math.Round(st.Current / st.Full * 100))
	st.Level = min(max(level, 0), 100)

	return st, nil
}
