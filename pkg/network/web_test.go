package network

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readData(t *testing.T, r *bufio.Reader) string {
	t.Helper()

	for {
		line, err := r.ReadBytes('\n')
		require.NoError(t, err)

		if data, ok := bytes.CutPrefix(line, []byte("data: ")); ok {
			return string(bytes.TrimSpace(data))
		}
	}
}

func TestBroadcaster_PublishDuringRegistration(t *testing.T) {
	b := NewBroadcaster[int](log.New(io.Discard))

	var (
		mu    sync.Mutex
		saved []int
	)

	published := make(chan error, 1)

	// A value published while the client registers must show up once,
	// either in the replayed history or live.
	initial := func() []int {
		go func() {
			published <- b.Publish(1, func() error {
				mu.Lock()
				defer mu.Unlock()
				saved = append(saved, 1)
				return nil
			})
		}()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		return slices.Clone(saved)
	}

	ts := httptest.NewServer(b.Serve(initial))
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	r := bufio.NewReader(res.Body)

	assert.Equal(t, "1", readData(t, r))
	require.NoError(t, <-published)

	require.NoError(t, b.Publish(2, nil))
	assert.Equal(t, "2", readData(t, r))
}

func TestBroadcaster_CommitFailure(t *testing.T) {
	b := NewBroadcaster[int](log.New(io.Discard))

	err := b.Publish(1, func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}
