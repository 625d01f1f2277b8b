// Package monitor reports sweep lifecycle events to an external socket.io
// endpoint, so long-running training sweeps can be observed from a
// dashboard. Reporting is strictly best-effort: a missing or failing
// monitor never fails the sweep.
package monitor

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/seqsweep/internal/ctxlog"
)

// connectTimeout bounds the initial handshake.
const connectTimeout = 15 * time.Second

// Reporter emits lifecycle events over a connected socket.io client.
// A nil Reporter is a valid no-op, which lets callers wire it
// unconditionally.
type Reporter struct {
	client *socket.Socket
}

// Connect dials the monitor endpoint over websocket and waits for the
// handshake to complete.
func Connect(ctx context.Context, rawURL string) (*Reporter, error) {
	logger := ctxlog.FromContext(ctx).With("monitor", rawURL)
	logger.Info("Connecting to sweep monitor...")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse monitor URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Monitor connected.", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		connectChan <- err
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("monitor connection failed: %w", err)
		}
		return &Reporter{client: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while connecting to monitor")
	case <-time.After(connectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v connecting to monitor", connectTimeout)
	}
}

// Close disconnects the underlying client.
func (r *Reporter) Close() {
	if r == nil || r.client == nil {
		return
	}
	r.client.Disconnect()
}

// emit sends one event with a payload; no-op on a nil reporter.
func (r *Reporter) emit(event string, payload map[string]any) {
	if r == nil || r.client == nil {
		return
	}
	r.client.Emit(event, payload)
}

// SweepStart announces a sweep of n presets.
func (r *Reporter) SweepStart(mode string, presets int) {
	r.emit("sweep:start", map[string]any{"mode": mode, "presets": presets})
}

// RunStart announces one preset run.
func (r *Reporter) RunStart(preset string) {
	r.emit("run:start", map[string]any{"preset": preset})
}

// RunFinish reports the outcome of one preset run.
func (r *Reporter) RunFinish(preset string, err error, duration time.Duration) {
	payload := map[string]any{
		"preset":      preset,
		"duration_ms": duration.Milliseconds(),
		"ok":          err == nil,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	r.emit("run:finish", payload)
}

// SweepFinish reports the end of the sweep.
func (r *Reporter) SweepFinish(failed int) {
	r.emit("sweep:finish", map[string]any{"failed": failed})
}
