package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func parseIntArg(args []string, valueName string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("invalid number of arguments")
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", valueName, err)
	}

	return value, nil
}

// logResponse logs what the daemon said about a change, then what the
// client believes happened.
func logResponse(ret string, format string, a ...interface{}) {
	if ret != "" {
		logrus.Infof("daemon responded: %s", ret)
	}
	logrus.Infof(format, a...)
}

func newEnableDisableCommand(
	use, short, long string,
	setFunc func(bool) (string, error),
) *cobra.Command {
	cmd := &cobra.Command{
		Use:         use,
		Short:       short,
		Long:        long,
		GroupID:     gAdvanced,
		Annotations: map[string]string{annotationUsesDaemon: "true"},
	}

	for _, enabled := range []bool{true, false} {
		verb, title := "enable", "Enable"
		if !enabled {
			verb, title = "disable", "Disable"
		}
		cmd.AddCommand(&cobra.Command{
			Use:   verb,
			Short: title + " " + use,
			RunE: func(_ *cobra.Command, _ []string) error {
				ret, err := setFunc(enabled)
				if err != nil {
					return fmt.Errorf("failed to %s %s: %w", verb, use, err)
				}
				logResponse(ret, "successfully %sd %s", verb, use)
				return nil
			},
		})
	}

	return cmd
}
