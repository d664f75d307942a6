package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/charlie0129/segbar/pkg/client"
	"github.com/charlie0129/segbar/pkg/gui"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/segbar.sock"
	configPath     = "/etc/segbar.json"
)

const annotationUsesDaemon = "segbar/uses-daemon"

var apiClient *client.Client

var (
	gBasic        = "Basic:"
	gAdvanced     = "Advanced:"
	gInstallation = "Installation:"
	commandGroups = []string{
		gBasic,
		gAdvanced,
		gInstallation,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

// bindEnv fills every flag the user did not set from its SEGBAR_*
// environment variable, e.g. --daemon-socket from SEGBAR_DAEMON_SOCKET.
func bindEnv(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix("segbar")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for --%s from environment: %w", f.Name, err))
		}
	})

	return errors.Join(errs...)
}

// usesDaemon reports whether cmd talks to the daemon over its socket.
func usesDaemon(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationUsesDaemon] == "true" {
			return true
		}
	}
	return false
}

func warnVersionMismatch() {
	clientVersion, daemonVersion, err := getVersion()
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			logrus.Error("segbar daemon is too old to report its version. Reinstall it so that the client and the daemon are the same version.")
		}
		return
	}

	if daemonVersion != clientVersion {
		logrus.WithFields(logrus.Fields{
			"clientVersion": clientVersion,
			"daemonVersion": daemonVersion,
		}).Warn("Version mismatch between client and daemon. segbar may not work as expected.")
	}
}

func handleCmdError(err error) {
	if errors.Is(err, client.ErrDaemonNotRunning) {
		fmt.Fprintln(os.Stderr, "\nError: segbar daemon is not running")
		fmt.Fprintln(os.Stderr, "Is the daemon running? Have you installed it?")
	} else if errors.Is(err, client.ErrPermissionDenied) {
		fmt.Fprintln(os.Stderr, "\nError: Permission Denied")
		fmt.Fprintln(os.Stderr, "  - Try running the command again with 'sudo'")
		fmt.Fprintln(os.Stderr, "  - Or reinstall the daemon with the '--allow-non-root-access' flag to grant permissions to your user")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segbar",
		Short: "segbar draws a segmented battery level bar",
		Long: `segbar draws a segmented battery level bar: a row of equal segments where the
battery level fills the segments from the left, the boundary segment partially.

Render it once with 'segbar render', or run the daemon and show it in the
system tray with 'segbar tray'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindEnv(cmd); err != nil {
				return err
			}
			if err := setupLogger(); err != nil {
				return err
			}

			apiClient = client.NewClient(unixSocketPath)
			if usesDaemon(cmd) {
				warnVersionMismatch()
			}

			return nil
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "segbar daemon unix socket path")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewRenderCommand(),
		NewDaemonCommand(),
		NewVersionCommand(),
		NewLevelCommand(),
		NewSegmentsCommand(),
		NewSpacingCommand(),
		NewColorCommand(),
		NewSizeCommand(),
		NewFollowSystemCommand(),
		NewStatusCommand(),
		NewInstallCommand(),
		NewUninstallCommand(),
		gui.NewGUICommand(&unixSocketPath, gBasic),
	)

	return cmd
}
