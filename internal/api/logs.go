package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quarterdeckhq/quarterdeck/internal/logging"
)

// DefaultLogTail is the number of historical lines requested when the
// caller does not say otherwise.
const DefaultLogTail = 100

// Frame types on the log stream.
const (
	FrameLog   = "log"
	FrameError = "error"
	FrameEOF   = "eof"
)

// LogTarget identifies the pod to stream logs from.
type LogTarget struct {
	Namespace string
	Pod       string
	Container string // empty means the server picks the first container
	Tail      int    // historical lines to replay; 0 means DefaultLogTail
	Follow    bool
}

// LogFrame is one message on the stream.
type LogFrame struct {
	Type      string    `json:"type"`
	Line      string    `json:"line,omitempty"`
	Container string    `json:"container,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// LogStream is one open log stream. Frames arrive in order on Frames();
// the channel closes when the stream ends, whether by server EOF, read
// error or Close. A stream is owned by exactly one viewer.
type LogStream struct {
	frames    chan LogFrame
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newLogStream(cancel context.CancelFunc) *LogStream {
	return &LogStream{
		frames: make(chan LogFrame, 64),
		cancel: cancel,
	}
}

// Frames returns the ordered frame channel.
func (s *LogStream) Frames() <-chan LogFrame {
	return s.frames
}

// Close tears the stream down. Safe to call repeatedly.
func (s *LogStream) Close() {
	s.closeOnce.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// StreamLogs opens a WebSocket log stream for the target pod. The
// returned stream must be closed by the caller.
func (c *HTTPClient) StreamLogs(ctx context.Context, target LogTarget) (*LogStream, error) {
	endpoint, err := c.streamURL(target)
	if err != nil {
		return nil, fmt.Errorf("build log stream URL: %w", err)
	}

	header := http.Header{}
	header.Set("X-Request-ID", newRequestID())
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	conn, resp, err := c.dialer.DialContext(ctx, endpoint, header)
	c.stats.record(serviceLogs, time.Since(start), err)
	if err != nil {
		if resp != nil {
			defer resp.Body.Close()
			if resp.StatusCode >= 400 {
				return nil, decodeError(resp)
			}
		}
		return nil, fmt.Errorf("dial log stream: %w", err)
	}

	logging.Info("Log stream opened", "namespace", target.Namespace,
		"pod", target.Pod, "container", target.Container)

	streamCtx, cancel := context.WithCancel(ctx)
	stream := newLogStream(cancel)

	// Closing the connection is the only way to unblock ReadJSON.
	go func() {
		<-streamCtx.Done()
		conn.Close()
	}()

	go func() {
		timer := logging.Start("log stream " + target.Namespace + "/" + target.Pod)
		relayed := 0
		defer func() {
			logging.EndWithCount(timer, relayed)
		}()
		defer close(stream.frames)
		defer cancel()

		for {
			var frame LogFrame
			if rerr := conn.ReadJSON(&frame); rerr != nil {
				if streamCtx.Err() == nil && !websocket.IsCloseError(rerr,
					websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					select {
					case stream.frames <- LogFrame{Type: FrameError, Line: rerr.Error()}:
					default:
					}
				}
				return
			}

			select {
			case stream.frames <- frame:
				relayed++
			case <-streamCtx.Done():
				return
			}

			if frame.Type == FrameEOF {
				return
			}
		}
	}()

	return stream, nil
}

func (c *HTTPClient) streamURL(target LogTarget) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path = fmt.Sprintf("%s/pods/%s/%s/logs/stream", apiPrefix,
		url.PathEscape(target.Namespace), url.PathEscape(target.Pod))

	tail := target.Tail
	if tail <= 0 {
		tail = DefaultLogTail
	}

	query := url.Values{}
	if target.Container != "" {
		query.Set("container", target.Container)
	}
	query.Set("tail", strconv.Itoa(tail))
	query.Set("follow", strconv.FormatBool(target.Follow))
	u.RawQuery = query.Encode()

	return u.String(), nil
}
