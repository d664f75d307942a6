package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/segbar/pkg/config"
	"github.com/charlie0129/segbar/pkg/powerinfo"
	"github.com/charlie0129/segbar/pkg/types"
)

func (c *Client) putMessage(path, data string) (string, error) {
	ret, err := c.Put(path, data)
	if err != nil {
		return "", err
	}
	return parseStringResponse(ret), nil
}

func (c *Client) SetBatteryLevel(level int) (string, error) {
	return c.putMessage("/level", strconv.Itoa(level))
}

func (c *Client) SetSegmentCount(n int) (string, error) {
	return c.putMessage("/segment-count", strconv.Itoa(n))
}

func (c *Client) SetSegmentSpacing(px int) (string, error) {
	return c.putMessage("/segment-spacing", strconv.Itoa(px))
}

func (c *Client) SetLevelColor(color string) (string, error) {
	return c.putMessage("/level-color", strconv.Quote(color))
}

func (c *Client) SetBackgroundColor(color string) (string, error) {
	return c.putMessage("/background-color", strconv.Quote(color))
}

func (c *Client) SetSize(width, height int) (string, error) {
	payload, err := json.Marshal(types.Size{Width: width, Height: height})
	if err != nil {
		return "", err
	}
	return c.putMessage("/size", string(payload))
}

func (c *Client) SetFollowSystem(enabled bool) (string, error) {
	return c.putMessage("/follow-system", strconv.FormatBool(enabled))
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetOptions() (*types.OptionsResponse, error) {
	ret, err := c.Get("/options")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get options")
	}

	var opts types.OptionsResponse
	if err := json.Unmarshal([]byte(ret), &opts); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal options")
	}

	return &opts, nil
}

func sizeQuery(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	q := url.Values{}
	q.Set("width", strconv.Itoa(width))
	q.Set("height", strconv.Itoa(height))
	return "?" + q.Encode()
}

// GetRender returns the draw commands of the daemon's level bar. A positive
// width and height render at that size instead of the configured one.
func (c *Client) GetRender(width, height int) (*types.RenderResponse, error) {
	ret, err := c.Get("/render" + sizeQuery(width, height))
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get render")
	}

	var r types.RenderResponse
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal render")
	}

	return &r, nil
}

// GetRenderPNG returns the daemon's level bar as PNG. A positive width and
// height render at that size instead of the configured one.
func (c *Client) GetRenderPNG(width, height int) ([]byte, error) {
	b, err := c.do(http.MethodGet, "/render.png"+sizeQuery(width, height), "")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get png render")
	}
	return b, nil
}

func (c *Client) GetSystemLevel() (*powerinfo.Status, error) {
	ret, err := c.Get("/system-level")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get system battery level")
	}

	var st powerinfo.Status
	if err := json.Unmarshal([]byte(ret), &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal system battery level: %w", err)
	}

	return &st, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}
	return parseStringResponse(ret), nil
}

// parseStringResponse unquotes a JSON string response. Anything else is
// returned as is.
func parseStringResponse(resp string) string {
	var s string
	if err := json.Unmarshal([]byte(resp), &s); err != nil {
		return resp
	}
	return s
}
