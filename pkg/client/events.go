package client

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/segbar/pkg/events"
)

// reconnectDelay is how long SubscribeEvents waits before reconnecting
// after the stream broke.
var reconnectDelay = 2 * time.Second

// SubscribeEvents streams daemon events until ctx is cancelled. It
// reconnects when the daemon goes away. The returned channel is closed once
// ctx is done.
func (c *Client) SubscribeEvents(ctx context.Context) <-chan events.Event {
	ch := make(chan events.Event, 16)

	go func() {
		defer close(ch)
		for {
			err := c.streamEvents(ctx, ch)
			if ctx.Err() != nil {
				return
			}
			logrus.WithError(err).Debug("event stream ended, reconnecting")

			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectDelay):
			}
		}
	}()

	return ch
}

func (c *Client) streamEvents(ctx context.Context, ch chan<- events.Event) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://unix/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return readEvents(ctx, bufio.NewScanner(resp.Body), ch)
}

// readEvents parses a text/event-stream. Only the event and data fields
// are used by the daemon.
func readEvents(ctx context.Context, sc *bufio.Scanner, ch chan<- events.Event) error {
	var name string
	var data strings.Builder

	for sc.Scan() {
		line := sc.Text()
		switch {
		case line == "":
			if name == "" && data.Len() == 0 {
				continue
			}
			ev := events.Event{Name: name, Data: []byte(data.String())}
			name = ""
			data.Reset()
			select {
			case ch <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}

	return sc.Err()
}
