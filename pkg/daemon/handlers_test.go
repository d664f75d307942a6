package daemon

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/segbar/pkg/config"
	"github.com/charlie0129/segbar/pkg/events"
	"github.com/charlie0129/segbar/pkg/levelbar"
	"github.com/charlie0129/segbar/pkg/powerinfo"
	"github.com/charlie0129/segbar/pkg/types"
)

// setupTest points the daemon state at a fresh config file and returns the
// router and the config path.
func setupTest(t *testing.T) (http.Handler, string) {
	t.Helper()

	p := filepath.Join(t.TempDir(), "segbar.json")
	f, err := config.NewFile(p)
	require.NoError(t, err)
	f.SetSize(340, 20)
	conf = f

	hub = events.NewEventHub()
	initView()

	origStatus := systemStatus
	systemStatus = func() (*powerinfo.Status, error) {
		return &powerinfo.Status{Level: 77, Batteries: 1}, nil
	}
	t.Cleanup(func() { systemStatus = origStatus })

	return setupRoutes(), p
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSetBatteryLevel(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
		want int
	}{
		{name: "in range", body: "42", code: http.StatusCreated, want: 42},
		{name: "clamped high", body: "150", code: http.StatusCreated, want: 100},
		{name: "clamped low", body: "-5", code: http.StatusCreated, want: 0},
		{name: "not a number", body: `"x"`, code: http.StatusBadRequest, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, p := setupTest(t)

			rec := do(t, h, http.MethodPut, "/level", tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.want, view.BatteryLevel())

			if tt.code == http.StatusCreated {
				saved, err := config.NewFile(p)
				require.NoError(t, err)
				assert.Equal(t, tt.want, saved.BatteryLevel())
			}
		})
	}
}

func TestSetSegmentCount(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodPut, "/segment-count", "0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 3, view.SegmentCount())

	rec = do(t, h, http.MethodPut, "/segment-count", "4")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 4, view.SegmentCount())
	// (340 - 30*3) / 4
	assert.Equal(t, 62, view.SegmentWidth())
	assert.Equal(t, 4, conf.SegmentCount())
}

func TestSetSegmentSpacing(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodPut, "/segment-spacing", "-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/segment-spacing", "5")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 5, view.SegmentSpacing())
	assert.Equal(t, 110, view.SegmentWidth())
}

func TestSetColors(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodPut, "/level-color", `"#ff0000"`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, levelbar.Color{R: 0xff}, view.LevelColor())

	rec = do(t, h, http.MethodPut, "/background-color", `"black"`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, levelbar.Color{}, view.BackgroundColor())
	assert.Equal(t, levelbar.Color{}, conf.BackgroundColor())

	rec = do(t, h, http.MethodPut, "/level-color", `"nope"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, levelbar.Color{R: 0xff}, view.LevelColor())
}

func TestSetSize(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodPut, "/size", `{"width":640,"height":48}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 640, view.Width())
	assert.Equal(t, 48, view.Height())
	assert.Equal(t, 193, view.SegmentWidth())
	assert.Equal(t, 640, conf.Width())

	rec = do(t, h, http.MethodPut, "/size", `{"width":-1,"height":48}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPut, "/size", `{"width":4000000000,"height":4000000000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, "/size", `{"width":4097,"height":10}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 640, view.Width())
	assert.Equal(t, 640, conf.Width())
}

func TestUpperBounds(t *testing.T) {
	h, p := setupTest(t)

	rec := do(t, h, http.MethodPut, "/segment-count", "1125899906842624")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodPut, "/segment-count", "1001")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 3, view.SegmentCount())

	rec = do(t, h, http.MethodPut, "/segment-spacing", "4097")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 30, view.SegmentSpacing())

	saved, err := config.NewFile(p)
	require.NoError(t, err)
	assert.Equal(t, 3, saved.SegmentCount())

	rec = do(t, h, http.MethodGet, "/render", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/render.png?width=4000000000&height=4000000000", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodGet, "/render?width=10&height=4097", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The largest accepted count still renders.
	rec = do(t, h, http.MethodPut, "/segment-count", "1000")
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodGet, "/render", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 500, resp.FullSegments)
}

func TestGetRender(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/render", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 340, resp.Width)
	assert.Equal(t, 20, resp.Height)
	// (340 - 60) / 3
	assert.Equal(t, 93, resp.SegmentWidth)
	assert.Equal(t, view.Render(), resp.Commands)

	rec = do(t, h, http.MethodGet, "/render?width=100&height=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Width)
	assert.Equal(t, 13, resp.SegmentWidth)
	// The live view keeps its size.
	assert.Equal(t, 340, view.Width())

	rec = do(t, h, http.MethodGet, "/render?width=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRenderPNG(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/render.png?width=64&height=16", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
}

func TestGetOptions(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/options", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.OptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, levelbar.DefaultOptions(), resp.Options)
	assert.Equal(t, 93, resp.SegmentWidth)
	assert.Equal(t, 1, resp.FullSegments)
	assert.Equal(t, 50, resp.PartialPercent)
	assert.False(t, resp.FollowSystem)
}

func TestFollowSystem(t *testing.T) {
	h, _ := setupTest(t)

	assert.False(t, syncOnce(), "sync must do nothing while follow-system is off")

	rec := do(t, h, http.MethodPut, "/follow-system", "true")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, conf.FollowSystem())
	assert.Equal(t, 77, view.BatteryLevel())

	assert.False(t, syncOnce(), "unchanged level must not redraw")

	rec = do(t, h, http.MethodGet, "/system-level", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var st powerinfo.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 77, st.Level)
}

func TestSyncLoopStops(t *testing.T) {
	setupTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		syncLoop(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sync loop did not stop")
	}
}

func TestInvalidatedEvents(t *testing.T) {
	h, _ := setupTest(t)

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	rec := do(t, h, http.MethodPut, "/level", "64")
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case ev := <-ch:
		assert.Equal(t, events.Invalidated, ev.Name)
		payload, err := events.DecodeAs[events.InvalidatedEvent](ev)
		require.NoError(t, err)
		assert.Equal(t, 64, payload.Options.BatteryLevel)
		assert.Equal(t, 340, payload.Width)
	case <-time.After(time.Second):
		t.Fatal("no invalidated event")
	}
}

func TestApplyConfig(t *testing.T) {
	setupTest(t)

	conf.SetSegmentCount(6)
	conf.SetSize(100, 8)
	applyConfig()

	assert.Equal(t, 6, view.SegmentCount())
	assert.Equal(t, 100, view.Width())
	assert.Equal(t, 8, view.Height())
}

func TestGetConfig(t *testing.T) {
	h, _ := setupTest(t)

	rec := do(t, h, http.MethodGet, "/config", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw config.RawFileConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.NotNil(t, raw.Width)
	assert.Equal(t, 340, *raw.Width)
}
