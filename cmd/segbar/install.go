package main

import (
	"errors"
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/segbar/pkg/config"
	daemonutils "github.com/charlie0129/segbar/pkg/utils/daemon"
)

// geteuid is replaced in tests.
var geteuid = os.Geteuid

var errNotRoot = errors.New("you must run this command as root")

// requireRoot fails before anything under /etc is touched.
func requireRoot() error {
	if geteuid() != 0 {
		return errNotRoot
	}
	return nil
}

// NewInstallCommand .
func NewInstallCommand() *cobra.Command {
	allowNonRootAccess := false

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install segbar daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Install segbar daemon as a systemd service (system-wide).

This makes segbar run in the background and automatically start on boot. You must run this command as root.

By default, only root user is allowed to access the segbar daemon. As a result, you will need to run segbar client as root to change the level bar. If you want to allow non-root users, i.e., you, to access the daemon, you can use the --allow-non-root-access flag, so you don't have to use sudo every time.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireRoot(); err != nil {
				return err
			}

			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}

			conf.SetAllowNonRootAccess(allowNonRootAccess)
			if allowNonRootAccess {
				logrus.Info("non-root users are allowed to access the segbar daemon.")
			} else {
				logrus.Info("only root user is allowed to access the segbar daemon.")
			}

			// The daemon reads the config on start, so it must exist first.
			err = conf.Save()
			if err != nil {
				return pkgerrors.Wrapf(err, "failed to save config")
			}

			err = daemonutils.Install(configPath, unixSocketPath)
			if err != nil {
				return fmt.Errorf("failed to install daemon: %v", err)
			}

			logrus.Infof("installation succeeded")

			exePath, _ := os.Executable()

			cmd.Printf("systemd will use current binary (%s) at startup so please make sure you do not move this binary. Once this binary is moved or deleted, you will need to run `segbar install' again.\n", exePath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&allowNonRootAccess, "allow-non-root-access", false, "Allow non-root users to access segbar daemon.")

	return cmd
}

// NewUninstallCommand .
func NewUninstallCommand() *cobra.Command {
	purgeConfig := false

	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Uninstall segbar daemon (system-wide)",
		GroupID: gInstallation,
		Long: `Uninstall segbar daemon from systemd (system-wide).

This stops segbar and removes its systemd unit.

You must run this command as root.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireRoot(); err != nil {
				return err
			}

			err := daemonutils.Uninstall()
			if err != nil {
				return fmt.Errorf("failed to uninstall daemon: %v", err)
			}

			if purgeConfig {
				logrus.Infof("removing config %s", configPath)
				if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
					return pkgerrors.Wrapf(err, "failed to remove config %s", configPath)
				}
			}

			cmd.Println("successfully uninstalled")

			if !purgeConfig {
				cmd.Printf("Your config is kept in %s, in case you want to use `segbar' again. Run `segbar uninstall --purge-config' to remove it as well.\n", configPath)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&purgeConfig, "purge-config", false, "Also remove the config file.")

	return cmd
}
