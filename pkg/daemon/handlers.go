package daemon

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/segbar/pkg/canvas"
	"github.com/charlie0129/segbar/pkg/config"
	"github.com/charlie0129/segbar/pkg/levelbar"
	"github.com/charlie0129/segbar/pkg/powerinfo"
	"github.com/charlie0129/segbar/pkg/types"
	"github.com/charlie0129/segbar/pkg/version"
)

// systemStatus is replaced in tests.
var systemStatus = powerinfo.SystemStatus

func abortWith(c *gin.Context, code int, err error) {
	c.IndentedJSON(code, err.Error())
	_ = c.AbortWithError(code, err)
}

// saveConfig persists the config and replies 500 if that fails.
func saveConfig(c *gin.Context) bool {
	if err := conf.Save(); err != nil {
		logrus.Errorf("saveConfig failed: %v", err)
		abortWith(c, http.StatusInternalServerError, err)
		return false
	}
	return true
}

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		abortWith(c, http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getOptions(c *gin.Context) {
	var resp types.OptionsResponse
	withView(func(v *levelbar.Renderer) {
		full, partial := v.Fill()
		resp = types.OptionsResponse{
			Options:        v.Options(),
			Width:          v.Width(),
			Height:         v.Height(),
			SegmentWidth:   v.SegmentWidth(),
			Unit:           v.UnitPercentage(),
			FullSegments:   full,
			PartialPercent: partial,
		}
	})
	resp.FollowSystem = conf.FollowSystem()
	c.IndentedJSON(http.StatusOK, resp)
}

func setBatteryLevel(c *gin.Context) {
	var l int
	if err := c.BindJSON(&l); err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return
	}

	var stored int
	withView(func(v *levelbar.Renderer) {
		v.SetBatteryLevel(l)
		stored = v.BatteryLevel()
	})
	conf.SetBatteryLevel(stored)
	if !saveConfig(c) {
		return
	}

	logrus.Infof("set battery level to %d%%", stored)

	msg := fmt.Sprintf("set battery level to %d%%", stored)
	if stored != l {
		msg += fmt.Sprintf(" (%d is out of range)", l)
	}
	if conf.FollowSystem() {
		msg += ". follow-system is enabled, the level will be replaced by the system battery level on the next sync."
	}

	c.IndentedJSON(http.StatusCreated, msg)
}

func setSegmentCount(c *gin.Context) {
	var n int
	if err := c.BindJSON(&n); err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return
	}

	if n < 1 || n > levelbar.MaxSegmentCount {
		abortWith(c, http.StatusBadRequest, fmt.Errorf("segment count must be between 1 and %d, got %d", levelbar.MaxSegmentCount, n))
		return
	}

	var segmentWidth int
	withView(func(v *levelbar.Renderer) {
		v.SetSegmentCount(n)
		segmentWidth = v.SegmentWidth()
	})
	conf.SetSegmentCount(n)
	if !saveConfig(c) {
		return
	}

	ret := fmt.Sprintf("set segment count to %d, segment width is now %dpx", n, segmentWidth)
	logrus.Info(ret)

	c.IndentedJSON(http.StatusCreated, ret)
}

func setSegmentSpacing(c *gin.Context) {
	var px int
	if err := c.BindJSON(&px); err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return
	}

	if px < 0 || px > config.MaxSize {
		abortWith(c, http.StatusBadRequest, fmt.Errorf("segment spacing must be between 0 and %dpx, got %d", config.MaxSize, px))
		return
	}

	var segmentWidth int
	withView(func(v *levelbar.Renderer) {
		v.SetSegmentSpacing(px)
		segmentWidth = v.SegmentWidth()
	})
	conf.SetSegmentSpacing(px)
	if !saveConfig(c) {
		return
	}

	ret := fmt.Sprintf("set segment spacing to %dpx, segment width is now %dpx", px, segmentWidth)
	logrus.Info(ret)

	c.IndentedJSON(http.StatusCreated, ret)
}

func bindColor(c *gin.Context) (levelbar.Color, bool) {
	var s string
	if err := c.BindJSON(&s); err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return levelbar.Color{}, false
	}

	col, err := levelbar.ParseColor(s)
	if err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return levelbar.Color{}, false
	}

	return col, true
}

func setLevelColor(c *gin.Context) {
	col, ok := bindColor(c)
	if !ok {
		return
	}

	withView(func(v *levelbar.Renderer) { v.SetLevelColor(col) })
	conf.SetLevelColor(col)
	if !saveConfig(c) {
		return
	}

	logrus.Infof("set level color to %s", col)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func setBackgroundColor(c *gin.Context) {
	col, ok := bindColor(c)
	if !ok {
		return
	}

	withView(func(v *levelbar.Renderer) { v.SetBackgroundColor(col) })
	conf.SetBackgroundColor(col)
	if !saveConfig(c) {
		return
	}

	logrus.Infof("set background color to %s", col)

	c.IndentedJSON(http.StatusCreated, "ok")
}

func setSize(c *gin.Context) {
	var s types.Size
	if err := c.BindJSON(&s); err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return
	}

	if err := checkSize(s.Width, s.Height); err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return
	}

	var segmentWidth int
	withView(func(v *levelbar.Renderer) {
		v.Resize(s.Width, s.Height)
		segmentWidth = v.SegmentWidth()
	})
	conf.SetSize(s.Width, s.Height)
	if !saveConfig(c) {
		return
	}

	ret := fmt.Sprintf("resized to %dx%d, segment width is now %dpx", s.Width, s.Height, segmentWidth)
	logrus.Info(ret)

	c.IndentedJSON(http.StatusCreated, ret)
}

func setFollowSystem(c *gin.Context) {
	var b bool
	if err := c.BindJSON(&b); err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return
	}

	conf.SetFollowSystem(b)
	if !saveConfig(c) {
		return
	}

	logrus.Infof("set follow system to %t", b)

	if b {
		// Do not wait for the next sync.
		syncOnce()
	}

	c.IndentedJSON(http.StatusCreated, "ok")
}

func checkSize(w, h int) error {
	if w < 0 || h < 0 || w > config.MaxSize || h > config.MaxSize {
		return fmt.Errorf("width and height must be between 0 and %d, got %dx%d", config.MaxSize, w, h)
	}
	return nil
}

// sizeOverride reads the optional width/height query parameters.
func sizeOverride(c *gin.Context) (w, h int, ok bool, err error) {
	ws, hs := c.Query("width"), c.Query("height")
	if ws == "" && hs == "" {
		return 0, 0, false, nil
	}

	w, err = strconv.Atoi(ws)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid width %q", ws)
	}
	h, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid height %q", hs)
	}
	if err := checkSize(w, h); err != nil {
		return 0, 0, false, err
	}

	return w, h, true, nil
}

// renderTarget returns the renderer a request should draw with: the live
// one, or a detached copy when the request asks for another size.
func renderTarget(c *gin.Context, fn func(r *levelbar.Renderer)) bool {
	w, h, override, err := sizeOverride(c)
	if err != nil {
		abortWith(c, http.StatusBadRequest, err)
		return false
	}

	withView(func(v *levelbar.Renderer) {
		if !override {
			fn(v)
			return
		}
		r := levelbar.New(v.Options(), nil)
		r.Resize(w, h)
		fn(r)
	})

	return true
}

func getRender(c *gin.Context) {
	var resp types.RenderResponse
	ok := renderTarget(c, func(r *levelbar.Renderer) {
		resp = types.NewRenderResponse(r)
	})
	if !ok {
		return
	}

	c.IndentedJSON(http.StatusOK, resp)
}

func getRenderPNG(c *gin.Context) {
	var buf bytes.Buffer
	var renderErr error
	ok := renderTarget(c, func(r *levelbar.Renderer) {
		renderErr = canvas.RenderPNG(r, &buf)
	})
	if !ok {
		return
	}

	if renderErr != nil {
		logrus.Errorf("getRenderPNG failed: %v", renderErr)
		abortWith(c, http.StatusInternalServerError, renderErr)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func getEvents(c *gin.Context) {
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	logrus.Debugf("event subscriber connected, %d active", hub.Subscribers())

	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func getSystemLevel(c *gin.Context) {
	st, err := systemStatus()
	if err != nil {
		logrus.Errorf("getSystemLevel failed: %v", err)
		abortWith(c, http.StatusInternalServerError, err)
		return
	}

	c.IndentedJSON(http.StatusOK, st)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
