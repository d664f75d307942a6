package gui

import (
	"github.com/spf13/cobra"
)

func NewGUICommand(unixSocketPath *string, groupID string) *cobra.Command {
	var width, height int

	cmd := &cobra.Command{
		Use:     "tray",
		Aliases: []string{"gui"},
		Short:   "Show the level bar in the system tray",
		GroupID: groupID,
		Long: `Show the daemon's level bar as a system tray icon.

The icon is rendered by the daemon at the given size and refreshed every time the level bar changes. The tray menu shows the current level and segment layout and lets you toggle following the system battery.`,
		Run: func(_ *cobra.Command, _ []string) {
			Run(*unixSocketPath, width, height)
		},
	}

	f := cmd.Flags()
	f.IntVar(&width, "icon-width", 48, "tray icon width in pixels")
	f.IntVar(&height, "icon-height", 16, "tray icon height in pixels")

	return cmd
}
