package client

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/segbar/pkg/events"
)

func TestReadEvents(t *testing.T) {
	stream := "event:levelbar.invalidated\ndata:{\"width\":10}\n\n" +
		": comment\n\n" +
		"event: other\ndata: a\ndata: b\n\n"

	ch := make(chan events.Event, 4)
	err := readEvents(context.Background(), bufio.NewScanner(strings.NewReader(stream)), ch)
	require.NoError(t, err)
	close(ch)

	var got []events.Event
	for ev := range ch {
		got = append(got, ev)
	}

	require.Len(t, got, 2)
	assert.Equal(t, events.Invalidated, got[0].Name)
	assert.JSONEq(t, `{"width":10}`, string(got[0].Data))
	assert.Equal(t, "other", got[1].Name)
	assert.Equal(t, "a\nb", string(got[1].Data))
}
