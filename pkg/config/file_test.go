package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/segbar/pkg/levelbar"
	"github.com/charlie0129/segbar/pkg/utils/ptr"
)

func TestNewFile_Missing(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "segbar.json"))
	require.NoError(t, err)

	assert.Equal(t, levelbar.DefaultOptions(), f.Options())
	assert.Equal(t, 120, f.Width())
	assert.Equal(t, 40, f.Height())
	assert.False(t, f.FollowSystem())
	assert.Equal(t, 30, f.SyncIntervalSeconds())
	assert.False(t, f.AllowNonRootAccess())
}

func TestNewFile_Empty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "segbar.json")
	require.NoError(t, os.WriteFile(p, []byte("  \n"), 0644))

	f, err := NewFile(p)
	require.NoError(t, err)
	assert.Equal(t, levelbar.DefaultOptions(), f.Options())
}

func TestNewFile_Invalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "segbar.json")
	require.NoError(t, os.WriteFile(p, []byte("{"), 0644))

	_, err := NewFile(p)
	assert.Error(t, err)
}

func TestFile_SaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "segbar.json")
	f, err := NewFile(p)
	require.NoError(t, err)

	f.SetSegmentCount(5)
	f.SetSegmentSpacing(4)
	f.SetBatteryLevel(42)
	f.SetLevelColor(levelbar.MustParseColor("#ff0000"))
	f.SetBackgroundColor(levelbar.MustParseColor("black"))
	f.SetSize(200, 30)
	f.SetFollowSystem(true)
	require.NoError(t, f.Save())

	loaded, err := NewFile(p)
	require.NoError(t, err)

	assert.Equal(t, levelbar.Options{
		SegmentCount:    5,
		SegmentSpacing:  4,
		BatteryLevel:    42,
		LevelColor:      levelbar.Color{R: 0xff},
		BackgroundColor: levelbar.Color{},
	}, loaded.Options())
	assert.Equal(t, 200, loaded.Width())
	assert.Equal(t, 30, loaded.Height())
	assert.True(t, loaded.FollowSystem())
}

func TestFile_Clamping(t *testing.T) {
	f := NewFileFromConfig(&RawFileConfig{
		SegmentCount:        ptr.To(0),
		SegmentSpacing:      ptr.To(-3),
		BatteryLevel:        ptr.To(150),
		LevelColor:          ptr.To("not-a-color"),
		SyncIntervalSeconds: ptr.To(-1),
	}, "")

	assert.Equal(t, 1, f.SegmentCount())
	assert.Equal(t, 0, f.SegmentSpacing())
	assert.Equal(t, 100, f.BatteryLevel())
	assert.Equal(t, levelbar.Green, f.LevelColor())
	assert.Equal(t, 30, f.SyncIntervalSeconds())

	f.SetBatteryLevel(-5)
	assert.Equal(t, 0, f.BatteryLevel())
	f.SetSegmentCount(-2)
	assert.Equal(t, 1, f.SegmentCount())
}

func TestFile_UpperBounds(t *testing.T) {
	f := NewFileFromConfig(&RawFileConfig{
		SegmentCount:   ptr.To(1125899906842624),
		SegmentSpacing: ptr.To(1 << 40),
		Width:          ptr.To(4000000000),
		Height:         ptr.To(MaxSize + 1),
	}, "")

	assert.Equal(t, levelbar.MaxSegmentCount, f.SegmentCount())
	assert.Equal(t, levelbar.MaxSegmentSpacing, f.SegmentSpacing())
	assert.Equal(t, MaxSize, f.Width())
	assert.Equal(t, MaxSize, f.Height())

	f.SetSize(-1, 1<<30)
	assert.Equal(t, 0, f.Width())
	assert.Equal(t, MaxSize, f.Height())
}

func TestFile_SaveWithoutPath(t *testing.T) {
	f := NewFileFromConfig(nil, "")
	assert.Error(t, f.Save())
}

func TestNewRawFileConfigFromConfig(t *testing.T) {
	_, err := NewRawFileConfigFromConfig(nil)
	assert.Error(t, err)

	f := NewFileFromConfig(nil, "")
	raw, err := NewRawFileConfigFromConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 3, *raw.SegmentCount)
	assert.Equal(t, "#00ff00", *raw.LevelColor)
	assert.Equal(t, "#cccccc", *raw.BackgroundColor)
}
