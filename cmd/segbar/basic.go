package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/charlie0129/segbar/pkg/version"
)

var daemonAnnotations = map[string]string{annotationUsesDaemon: "true"}

func getVersion() (clientVersion, daemonVersion string, err error) {
	daemonVersion, err = apiClient.GetVersion()
	if err != nil {
		return version.Version, "", err
	}
	return version.Version, daemonVersion, nil
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("%s %s\n", version.Version, version.GitCommit)
		},
	}
}

func NewLevelCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "level [percentage]",
		Short:       "Set the battery level shown by the bar",
		GroupID:     gBasic,
		Annotations: daemonAnnotations,
		Long: `Set the battery level shown by the bar.

This is a percentage from 0 to 100. Values outside that range are clamped.

If follow-system is enabled, the daemon replaces the level with the system
battery level on its next sync.`,
		RunE: func(_ *cobra.Command, args []string) error {
			level, err := parseIntArg(args, "level")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetBatteryLevel(level)
			if err != nil {
				return fmt.Errorf("failed to set battery level: %w", err)
			}

			logResponse(ret, "successfully set battery level to %d%%", min(max(level, 0), 100))

			return nil
		},
	}
}

func NewSegmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "segments [count]",
		Short:       "Set the number of segments",
		GroupID:     gBasic,
		Annotations: daemonAnnotations,
		Long: `Set the number of segments the bar is divided into.

The count must be at least 1. Segment width is recomputed from the bar width.`,
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := parseIntArg(args, "segment count")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetSegmentCount(n)
			if err != nil {
				return fmt.Errorf("failed to set segment count: %w", err)
			}

			logResponse(ret, "successfully set segment count to %d", n)

			return nil
		},
	}
}

func NewSpacingCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "spacing [pixels]",
		Short:       "Set the gap between segments",
		GroupID:     gAdvanced,
		Annotations: daemonAnnotations,
		Long: `Set the gap between adjacent segments in pixels.

The gap must not be negative. Segment width is recomputed from the bar width.`,
		RunE: func(_ *cobra.Command, args []string) error {
			px, err := parseIntArg(args, "spacing")
			if err != nil {
				return err
			}

			ret, err := apiClient.SetSegmentSpacing(px)
			if err != nil {
				return fmt.Errorf("failed to set segment spacing: %w", err)
			}

			logResponse(ret, "successfully set segment spacing to %dpx", px)

			return nil
		},
	}
}

func NewColorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "color",
		Short:       "Set the level or background color",
		GroupID:     gBasic,
		Annotations: daemonAnnotations,
		Long: `Set the color used for the filled part of the bar (level) or for the
unfilled segments (background).

Colors are written as #rrggbb, #rgb, or a name such as green, red or lightgray.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "level [color]",
			Short: "Set the level color",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				ret, err := apiClient.SetLevelColor(args[0])
				if err != nil {
					return fmt.Errorf("failed to set level color: %w", err)
				}

				logResponse(ret, "successfully set level color to %s", args[0])

				return nil
			},
		},
		&cobra.Command{
			Use:   "background [color]",
			Short: "Set the background color",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				ret, err := apiClient.SetBackgroundColor(args[0])
				if err != nil {
					return fmt.Errorf("failed to set background color: %w", err)
				}

				logResponse(ret, "successfully set background color to %s", args[0])

				return nil
			},
		},
	)

	return cmd
}

func NewSizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "size [width] [height]",
		Short:       "Resize the bar",
		GroupID:     gAdvanced,
		Annotations: daemonAnnotations,
		Long: `Resize the bar the daemon renders, in pixels.

The tray and 'segbar status' may still ask for their own size when rendering.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			w, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid width: %v", err)
			}
			h, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid height: %v", err)
			}

			ret, err := apiClient.SetSize(w, h)
			if err != nil {
				return fmt.Errorf("failed to resize: %w", err)
			}

			logResponse(ret, "successfully resized to %dx%d", w, h)

			return nil
		},
	}
}

func NewFollowSystemCommand() *cobra.Command {
	return newEnableDisableCommand(
		"follow-system",
		"follow the system battery level",
		`Keep the bar at the system battery level.

When enabled, the daemon reads the system battery level periodically and
updates the bar with it. Levels set with 'segbar level' are overwritten on the
next sync.`,
		func(enabled bool) (string, error) {
			return apiClient.SetFollowSystem(enabled)
		},
	)
}
