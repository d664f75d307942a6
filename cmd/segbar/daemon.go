package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/segbar/pkg/daemon"
	"github.com/charlie0129/segbar/pkg/version"
)

var (
	// alwaysAllowNonRootAccess makes the daemon socket world-writable
	// regardless of the config file.
	alwaysAllowNonRootAccess = false
)

// NewDaemonCommand runs the daemon that owns the live level bar, serving it
// on --daemon-socket and persisting changes to --config.
func NewDaemonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "daemon",
		Hidden:  true,
		Short:   "Run segbar daemon in the foreground",
		GroupID: gAdvanced,
		RunE: func(_ *cobra.Command, _ []string) error {
			logrus.WithFields(logrus.Fields{
				"version":            version.Version,
				"commit":             version.GitCommit,
				"config":             configPath,
				"socket":             unixSocketPath,
				"alwaysAllowNonRoot": alwaysAllowNonRootAccess,
			}).Info("segbar daemon starting")
			return daemon.Run(configPath, unixSocketPath, alwaysAllowNonRootAccess)
		},
	}

	f := cmd.Flags()

	f.BoolVar(&alwaysAllowNonRootAccess, "always-allow-non-root-access", false,
		"Always allow non-root users to access the daemon.")

	return cmd
}
