package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/charlie0129/segbar/pkg/powerinfo"
	"github.com/charlie0129/segbar/pkg/types"
)

type statusData struct {
	options *types.OptionsResponse
	render  *types.RenderResponse
	system  *powerinfo.Status
}

// fetchStatusData gathers all data required for the status command from the daemon.
func fetchStatusData() (*statusData, error) {
	opts, err := apiClient.GetOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	render, err := apiClient.GetRender(0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get render: %w", err)
	}

	// Machines without a battery still have a level bar to show.
	system, err := apiClient.GetSystemLevel()
	if err != nil {
		system = nil
	}

	return &statusData{
		options: opts,
		render:  render,
		system:  system,
	}, nil
}

func NewStatusCommand() *cobra.Command {
	columns := defaultPreviewColumns
	asJSON := false

	cmd := &cobra.Command{
		Use:         "status",
		GroupID:     gBasic,
		Annotations: daemonAnnotations,
		Short:       "Get the current status of segbar",
		Long:        `Get the level bar the daemon is showing, its options, and the system battery level.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := fetchStatusData()
			if err != nil {
				return err
			}

			if asJSON {
				return printStatusJSON(cmd, data)
			}

			printStatus(cmd, data, columns)

			return nil
		},
	}

	cmd.Flags().IntVar(&columns, "columns", columns, "terminal columns used to draw the bar")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")

	return cmd
}

func printStatus(cmd *cobra.Command, data *statusData, columns int) {
	opts := data.options

	cmd.Println(bold("Level bar:"))
	cmd.Println("  " + terminalPreview(data.render.Width, data.render.Height, data.render.Commands, columns))
	cmd.Printf("  Battery level: %s\n", bold("%d%%", opts.BatteryLevel))
	cmd.Printf("  Filled: %s\n", bold("%d full segments + %d%% of the next", opts.FullSegments, opts.PartialPercent))
	cmd.Printf("  Each segment holds: %s\n", bold("%.1f%%", opts.Unit))
	cmd.Println()

	cmd.Println(bold("Battery status:"))
	if data.system != nil {
		cmd.Printf("  System battery level: %s\n", bold("%d%%", data.system.Level))
		cmd.Printf("  Batteries: %s\n", bold("%d", data.system.Batteries))
	} else {
		cmd.Printf("  System battery level: %s\n", color.YellowString("unavailable"))
	}
	cmd.Printf("  Follow system battery level: %s\n", bool2Text(opts.FollowSystem))
	cmd.Println()

	cmd.Println(bold("Bar configuration:"))
	cmd.Printf("  Size: %s\n", bold("%dx%d px", opts.Width, opts.Height))
	cmd.Printf("  Segments: %s\n", bold("%d", opts.SegmentCount))
	cmd.Printf("  Segment width: %s\n", bold("%d px", opts.SegmentWidth))
	cmd.Printf("  Segment spacing: %s\n", bold("%d px", opts.SegmentSpacing))
	cmd.Printf("  Level color: %s\n", bold("%s", opts.LevelColor))
	cmd.Printf("  Background color: %s\n", bold("%s", opts.BackgroundColor))
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
