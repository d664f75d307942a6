package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/charlie0129/segbar/pkg/canvas"
	"github.com/charlie0129/segbar/pkg/config"
	"github.com/charlie0129/segbar/pkg/levelbar"
	"github.com/charlie0129/segbar/pkg/powerinfo"
	"github.com/charlie0129/segbar/pkg/types"
)

const (
	formatTerm = "term"
	formatPNG  = "png"
	formatJSON = "json"

	defaultPreviewColumns = 40
)

// systemLevel is replaced in tests.
var systemLevel = powerinfo.SystemLevel

type renderOptions struct {
	level           int
	segments        int
	spacing         int
	levelColor      string
	backgroundColor string
	width           int
	height          int
	system          bool
	format          string
	output          string
	columns         int
}

// NewRenderCommand renders a level bar locally, without the daemon.
func NewRenderCommand() *cobra.Command {
	o := renderOptions{
		level:           levelbar.DefaultBatteryLevel,
		segments:        levelbar.DefaultSegmentCount,
		spacing:         levelbar.DefaultSegmentSpacing,
		levelColor:      levelbar.Green.String(),
		backgroundColor: levelbar.LightGray.String(),
		width:           340,
		height:          20,
		format:          formatTerm,
		columns:         defaultPreviewColumns,
	}

	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Render a level bar once",
		GroupID: gBasic,
		Long: `Render a level bar once and print it, without talking to the daemon.

The bar can be printed as colored blocks in the terminal (term), written as a
PNG image (png), or listed as draw commands (json).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.system {
				level, err := systemLevel()
				if err != nil {
					return pkgerrors.Wrap(err, "failed to read system battery level")
				}
				logrus.Debugf("using system battery level %d%%", level)
				o.level = level
			}

			r, err := o.renderer()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if o.output != "" && o.output != "-" {
				f, err := os.Create(o.output)
				if err != nil {
					return pkgerrors.Wrapf(err, "failed to create %s", o.output)
				}
				defer f.Close()
				w = f
			}

			return writeRender(w, r, o.format, o.columns)
		},
	}

	f := cmd.Flags()
	f.IntVar(&o.level, "level", o.level, "battery level in percent, 0-100")
	f.BoolVar(&o.system, "system", false, "use the system battery level instead of --level")
	f.IntVar(&o.segments, "segments", o.segments, "number of segments")
	f.IntVar(&o.spacing, "spacing", o.spacing, "gap between segments in pixels")
	f.StringVar(&o.levelColor, "level-color", o.levelColor, "color of the filled part")
	f.StringVar(&o.backgroundColor, "background-color", o.backgroundColor, "color of the unfilled segments")
	f.IntVar(&o.width, "width", o.width, "bar width in pixels")
	f.IntVar(&o.height, "height", o.height, "bar height in pixels")
	f.StringVarP(&o.format, "format", "f", o.format, "output format (term, png, json)")
	f.StringVarP(&o.output, "output", "o", "", "write to this file instead of stdout")
	f.IntVar(&o.columns, "columns", o.columns, "terminal columns used by the term format")

	return cmd
}

func (o *renderOptions) renderer() (*levelbar.Renderer, error) {
	if o.width < 0 || o.height < 0 || o.width > config.MaxSize || o.height > config.MaxSize {
		return nil, fmt.Errorf("width and height must be between 0 and %d, got %dx%d", config.MaxSize, o.width, o.height)
	}
	if o.segments < 1 || o.segments > levelbar.MaxSegmentCount {
		return nil, fmt.Errorf("segment count must be between 1 and %d, got %d", levelbar.MaxSegmentCount, o.segments)
	}

	lc, err := levelbar.ParseColor(o.levelColor)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid level color")
	}
	bc, err := levelbar.ParseColor(o.backgroundColor)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "invalid background color")
	}

	r := levelbar.New(levelbar.Options{
		SegmentCount:    o.segments,
		SegmentSpacing:  o.spacing,
		BatteryLevel:    o.level,
		LevelColor:      lc,
		BackgroundColor: bc,
	}, nil)
	r.Resize(o.width, o.height)

	return r, nil
}

func writeRender(w io.Writer, r *levelbar.Renderer, format string, columns int) error {
	switch format {
	case formatTerm:
		_, err := fmt.Fprintln(w, terminalPreview(r.Width(), r.Height(), r.Render(), columns))
		return err
	case formatPNG:
		return canvas.RenderPNG(r, w)
	case formatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err := enc.Encode(types.NewRenderResponse(r))
		if err != nil {
			return pkgerrors.Wrap(err, "failed to encode draw commands")
		}
		_, err = w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("unknown format %q, expected one of %s, %s, %s", format, formatTerm, formatPNG, formatJSON)
	}
}

// terminalPreview replays draw commands onto a single row of terminal
// cells, about columns wide.
func terminalPreview(width, height int, cmds []levelbar.DrawCommand, columns int) string {
	columns = max(columns, 1)
	cellWidth := max((width+columns-1)/columns, 1)

	t := canvas.NewTerminal(width, height, cellWidth, max(height, 1))
	for _, c := range cmds {
		t.FillRect(c.Rect, c.Color)
	}

	return t.String()
}
