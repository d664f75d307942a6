package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/segbar/pkg/levelbar"
	"github.com/charlie0129/segbar/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		SegmentCount:    ptr.To(levelbar.DefaultSegmentCount),
		SegmentSpacing:  ptr.To(levelbar.DefaultSegmentSpacing),
		BatteryLevel:    ptr.To(levelbar.DefaultBatteryLevel),
		LevelColor:      ptr.To(levelbar.Green.String()),
		BackgroundColor: ptr.To(levelbar.LightGray.String()),
		Width:           ptr.To(120),
		Height:          ptr.To(40),
		// Reading the system battery is opt-in, so a freshly installed
		// daemon shows exactly what it was told to show.
		FollowSystem:        ptr.To(false),
		SyncIntervalSeconds: ptr.To(30),
		AllowNonRootAccess:  ptr.To(false),
	}
)

// MaxSize is the largest width or height, in pixels, the daemon renders.
const MaxSize = 4096

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	SegmentCount        *int    `json:"segmentCount,omitempty"`
	SegmentSpacing      *int    `json:"segmentSpacing,omitempty"`
	BatteryLevel        *int    `json:"batteryLevel,omitempty"`
	LevelColor          *string `json:"levelColor,omitempty"`
	BackgroundColor     *string `json:"backgroundColor,omitempty"`
	Width               *int    `json:"width,omitempty"`
	Height              *int    `json:"height,omitempty"`
	FollowSystem        *bool   `json:"followSystem,omitempty"`
	SyncIntervalSeconds *int    `json:"syncIntervalSeconds,omitempty"`
	AllowNonRootAccess  *bool   `json:"allowNonRootAccess,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		SegmentCount:        ptr.To(c.SegmentCount()),
		SegmentSpacing:      ptr.To(c.SegmentSpacing()),
		BatteryLevel:        ptr.To(c.BatteryLevel()),
		LevelColor:          ptr.To(c.LevelColor().String()),
		BackgroundColor:     ptr.To(c.BackgroundColor().String()),
		Width:               ptr.To(c.Width()),
		Height:              ptr.To(c.Height()),
		FollowSystem:        ptr.To(c.FollowSystem()),
		SyncIntervalSeconds: ptr.To(c.SyncIntervalSeconds()),
		AllowNonRootAccess:  ptr.To(c.AllowNonRootAccess()),
	}

	return rawConfig, nil
}

func (f *File) rlock() func() {
	if f.c == nil {
		panic("config is nil")
	}
	f.mu.RLock()
	return f.mu.RUnlock
}

func (f *File) lock() func() {
	if f.c == nil {
		panic("config is nil")
	}
	f.mu.Lock()
	return f.mu.Unlock
}

func (f *File) SegmentCount() int {
	defer f.rlock()()
	return min(max(ptr.Deref(f.c.SegmentCount, *defaultFileConfig.SegmentCount), 1), levelbar.MaxSegmentCount)
}

func (f *File) SegmentSpacing() int {
	defer f.rlock()()
	return min(max(ptr.Deref(f.c.SegmentSpacing, *defaultFileConfig.SegmentSpacing), 0), levelbar.MaxSegmentSpacing)
}

func (f *File) BatteryLevel() int {
	defer f.rlock()()
	return min(max(ptr.Deref(f.c.BatteryLevel, *defaultFileConfig.BatteryLevel), 0), 100)
}

func (f *File) LevelColor() levelbar.Color {
	defer f.rlock()()
	return parseColorOrDefault("levelColor", f.c.LevelColor, *defaultFileConfig.LevelColor)
}

func (f *File) BackgroundColor() levelbar.Color {
	defer f.rlock()()
	return parseColorOrDefault("backgroundColor", f.c.BackgroundColor, *defaultFileConfig.BackgroundColor)
}

func parseColorOrDefault(field string, s *string, def string) levelbar.Color {
	if s == nil {
		return levelbar.MustParseColor(def)
	}

	c, err := levelbar.ParseColor(*s)
	if err != nil {
		logrus.WithField(field, *s).Warnf("invalid color in config, using default %s: %v", def, err)
		return levelbar.MustParseColor(def)
	}

	return c
}

func (f *File) Width() int {
	defer f.rlock()()
	return min(max(ptr.Deref(f.c.Width, *defaultFileConfig.Width), 0), MaxSize)
}

func (f *File) Height() int {
	defer f.rlock()()
	return min(max(ptr.Deref(f.c.Height, *defaultFileConfig.Height), 0), MaxSize)
}

func (f *File) FollowSystem() bool {
	defer f.rlock()()
	return ptr.Deref(f.c.FollowSystem, *defaultFileConfig.FollowSystem)
}

func (f *File) SyncIntervalSeconds() int {
	defer f.rlock()()
	interval := ptr.Deref(f.c.SyncIntervalSeconds, *defaultFileConfig.SyncIntervalSeconds)
	if interval <= 0 {
		return *defaultFileConfig.SyncIntervalSeconds
	}
	return interval
}

func (f *File) AllowNonRootAccess() bool {
	defer f.rlock()()
	return ptr.Deref(f.c.AllowNonRootAccess, *defaultFileConfig.AllowNonRootAccess)
}

func (f *File) SetSegmentCount(n int) {
	defer f.lock()()
	f.c.SegmentCount = ptr.To(min(max(n, 1), levelbar.MaxSegmentCount))
}

func (f *File) SetSegmentSpacing(px int) {
	defer f.lock()()
	f.c.SegmentSpacing = ptr.To(min(max(px, 0), levelbar.MaxSegmentSpacing))
}

func (f *File) SetBatteryLevel(level int) {
	defer f.lock()()
	f.c.BatteryLevel = ptr.To(min(max(level, 0), 100))
}

func (f *File) SetLevelColor(c levelbar.Color) {
	defer f.lock()()
	f.c.LevelColor = ptr.To(c.String())
}

func (f *File) SetBackgroundColor(c levelbar.Color) {
	defer f.lock()()
	f.c.BackgroundColor = ptr.To(c.String())
}

func (f *File) SetSize(width, height int) {
	defer f.lock()()
	f.c.Width = ptr.To(min(max(width, 0), MaxSize))
	f.c.Height = ptr.To(min(max(height, 0), MaxSize))
}

func (f *File) SetFollowSystem(b bool) {
	defer f.lock()()
	f.c.FollowSystem = &b
}

func (f *File) SetAllowNonRootAccess(b bool) {
	defer f.lock()()
	f.c.AllowNonRootAccess = &b
}

func (f *File) Options() levelbar.Options {
	return levelbar.Options{
		SegmentCount:    f.SegmentCount(),
		SegmentSpacing:  f.SegmentSpacing(),
		BatteryLevel:    f.BatteryLevel(),
		LevelColor:      f.LevelColor(),
		BackgroundColor: f.BackgroundColor(),
	}
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	if f.filepath == "" {
		return pkgerrors.New("config has no file path")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"segmentCount":        f.SegmentCount(),
		"segmentSpacing":      f.SegmentSpacing(),
		"batteryLevel":        f.BatteryLevel(),
		"levelColor":          f.LevelColor().String(),
		"backgroundColor":     f.BackgroundColor().String(),
		"width":               f.Width(),
		"height":              f.Height(),
		"followSystem":        f.FollowSystem(),
		"syncIntervalSeconds": f.SyncIntervalSeconds(),
		"allowNonRootAccess":  f.AllowNonRootAccess(),
	}
}
