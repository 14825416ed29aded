package network

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

const clientBuffer = 10

// Broadcaster fans values of T out to every connected server-sent events
// client. Slow clients miss values rather than block the broadcaster.
type Broadcaster[T any] struct {
	mu         sync.Mutex
	webClients map[*WebClient[T]]struct{}
	logger     *log.Logger
}

func NewBroadcaster[T any](logger *log.Logger) *Broadcaster[T] {
	return &Broadcaster[T]{
		webClients: make(map[*WebClient[T]]struct{}),
		logger:     logger,
	}
}

// Publish runs commit, if any, and sends msg to every client. Both happen
// while no client is registering, so a client sees msg either in its
// history or live, never both. msg is not sent when commit fails.
func (b *Broadcaster[T]) Publish(msg T, commit func() error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if commit != nil {
		err := commit()
		if err != nil {
			return err
		}
	}

	for c := range b.webClients {
		select {
		case c.send <- msg:
		default:
			b.logger.Debug("dropping event for slow web client")
		}
	}

	return nil
}

// Serve streams events to the client of r until it disconnects. initial
// is called while the client is registered and its values are sent first,
// so a new client sees recent history rather than an empty feed.
func (b *Broadcaster[T]) Serve(initial func() []T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addEventHeaders(w)

		ctx, cancel := context.WithCancel(r.Context())

		c := &WebClient[T]{
			send:   make(chan T, clientBuffer),
			conn:   w,
			done:   ctx.Done(),
			cancel: cancel,
		}

		var history []T

		b.mu.Lock()
		b.webClients[c] = struct{}{}
		if initial != nil {
			history = initial()
		}
		b.mu.Unlock()

		b.logger.Infof("Web client connected @ %s", r.RemoteAddr)

		defer func() {
			b.mu.Lock()
			delete(b.webClients, c)
			b.mu.Unlock()
			c.cancel()
			b.logger.Infof("Web client disconnected @ %s", r.RemoteAddr)
		}()

		err := c.serve(history)
		if err != nil {
			b.logger.Error(err)
		}
	}
}

func addEventHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

type WebClient[T any] struct {
	send   chan T
	conn   http.ResponseWriter
	done   <-chan struct{}
	cancel context.CancelFunc
}

func (c *WebClient[T]) serve(history []T) error {
	rc := http.NewResponseController(c.conn)

	// The headers go out now so clients know the stream is open even when
	// there is nothing to replay.
	c.conn.WriteHeader(http.StatusOK)
	_ = rc.Flush()

	for _, msg := range history {
		err := c.write(rc, msg)
		if err != nil {
			return err
		}
	}

	for {
		select {
		case msg := <-c.send:
			err := c.write(rc, msg)
			if err != nil {
				return err
			}
		case <-c.done:
			return nil
		}
	}
}

func (c *WebClient[T]) write(rc *http.ResponseController, msg T) error {
	j, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed serving web client")
	}

	_, err = fmt.Fprintf(c.conn, "data: %s\n\n", j)
	if err != nil {
		return errors.Wrap(err, "failed serving web client")
	}

	_ = rc.Flush()

	return nil
}
