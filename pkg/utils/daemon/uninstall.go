package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func Uninstall() error {
	logrus.Infof("stopping segbar")

	// if the unit doesn't exist, there is nothing to stop or remove
	_, err := os.Stat(unitPath)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.Infof("%s does not exist, nothing to do", unitPath)
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", unitPath, err)
	}

	if err := systemctl("disable", "--now", filepath.Base(unitPath)); err != nil {
		return fmt.Errorf("failed to stop segbar: %w. Are you root?", err)
	}

	logrus.Infof("removing systemd unit")

	err = os.Remove(unitPath)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w. Are you root?", unitPath, err)
	}

	return systemctl("daemon-reload")
}
