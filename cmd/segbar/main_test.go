package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/segbar/pkg/levelbar"
	"github.com/charlie0129/segbar/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldSocket, oldConfig, oldLevel := unixSocketPath, configPath, logLevel
	t.Cleanup(func() {
		unixSocketPath, configPath, logLevel = oldSocket, oldConfig, oldLevel
	})

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestRender_JSON(t *testing.T) {
	out, err := execute(t, "render", "--format", "json",
		"--width", "500", "--height", "20", "--segments", "5", "--spacing", "0", "--level", "42")
	require.NoError(t, err)

	var r types.RenderResponse
	require.NoError(t, json.Unmarshal([]byte(out), &r))

	assert.Equal(t, 500, r.Width)
	assert.Equal(t, 100, r.SegmentWidth)
	assert.Equal(t, 2, r.FullSegments)
	assert.Equal(t, 10, r.PartialPercent)
	require.Len(t, r.Commands, 8)
	for _, c := range r.Commands[:5] {
		assert.Equal(t, levelbar.LayerBackground, c.Layer)
	}
	assert.Equal(t, levelbar.Rect{Left: 200, Top: 0, Right: 210, Bottom: 20}, r.Commands[7].Rect)
	assert.Equal(t, levelbar.Green, r.Commands[7].Color)
}

func TestRender_Term(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	out, err := execute(t, "render", "--width", "40", "--height", "4",
		"--segments", "4", "--spacing", "0", "--columns", "40")
	require.NoError(t, err)

	line := strings.TrimRight(out, "\n")
	assert.Equal(t, 40, utf8.RuneCountInString(line))
	assert.Equal(t, strings.Repeat("█", 40), line)
}

func TestRender_PNG(t *testing.T) {
	out, err := execute(t, "render", "-f", "png", "--width", "30", "--height", "10")
	require.NoError(t, err)

	img, err := png.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())
}

func TestRender_SystemLevel(t *testing.T) {
	old := systemLevel
	systemLevel = func() (int, error) { return 100, nil }
	t.Cleanup(func() { systemLevel = old })

	out, err := execute(t, "render", "--system", "--format", "json",
		"--width", "300", "--segments", "3", "--spacing", "0")
	require.NoError(t, err)

	var r types.RenderResponse
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	// All three segments full, no boundary.
	assert.Len(t, r.Commands, 6)
}

func TestRender_Errors(t *testing.T) {
	_, err := execute(t, "render", "--format", "svg")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "render", "--level-color", "nope")
	assert.ErrorContains(t, err, "invalid level color")

	_, err = execute(t, "render", "--format", "png", "--width", "4000000000", "--height", "10")
	assert.ErrorContains(t, err, "width and height")

	_, err = execute(t, "render", "--segments", "1125899906842624")
	assert.ErrorContains(t, err, "segment count")
}

func TestBindEnv(t *testing.T) {
	t.Setenv("SEGBAR_DAEMON_SOCKET", "/tmp/segbar-test.sock")

	_, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/segbar-test.sock", unixSocketPath)

	_, err = execute(t, "--daemon-socket", "/tmp/explicit.sock", "version")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit.sock", unixSocketPath)
}

func TestBindEnv_Invalid(t *testing.T) {
	t.Setenv("SEGBAR_LEVEL", "high")

	_, err := execute(t, "render")
	assert.ErrorContains(t, err, "--level")
}

func TestParseIntArg(t *testing.T) {
	v, err := parseIntArg([]string{"42"}, "level")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = parseIntArg([]string{"4", "2"}, "level")
	assert.Error(t, err)

	_, err = parseIntArg([]string{"x"}, "level")
	assert.ErrorContains(t, err, "invalid level")
}

func TestInstall_RequiresRoot(t *testing.T) {
	old := geteuid
	geteuid = func() int { return 1000 }
	t.Cleanup(func() { geteuid = old })

	cfg := filepath.Join(t.TempDir(), "segbar.json")

	_, err := execute(t, "--config", cfg, "install")
	assert.ErrorIs(t, err, errNotRoot)
	_, statErr := os.Stat(cfg)
	assert.True(t, os.IsNotExist(statErr), "config must not be written without root")

	_, err = execute(t, "--config", cfg, "uninstall", "--purge-config")
	assert.ErrorIs(t, err, errNotRoot)
}
