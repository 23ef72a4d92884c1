// Package metrics provides lightweight, lock-free counters for tracking
// runtime statistics of a hem session: compilations, bytes emitted,
// dev-server requests and watch rebuilds.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for a hem session.
// Every method tolerates a nil receiver and then records nothing.
type Collector struct {
	compilesTotal atomic.Int64
	bytesOut      atomic.Int64
	requestsTotal atomic.Int64
	rebuildsTotal atomic.Int64
	errorsTotal   atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastBuild    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Compile metrics ──────────────────────────────────────────────────

// FileCompiled records one successful compilation producing n bytes.
func (c *Collector) FileCompiled(n int64) {
	if c == nil {
		return
	}
	c.compilesTotal.Add(1)
	c.bytesOut.Add(n)
}

// TotalCompiles returns the number of files compiled.
func (c *Collector) TotalCompiles() int64 {
	if c == nil {
		return 0
	}
	return c.compilesTotal.Load()
}

// TotalBytesOut returns the total bytes produced by compilers.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Server / watch metrics ───────────────────────────────────────────

// RequestServed records one dev-server request.
func (c *Collector) RequestServed() {
	if c == nil {
		return
	}
	c.requestsTotal.Add(1)
}

// TotalRequests returns the dev-server request count.
func (c *Collector) TotalRequests() int64 {
	if c == nil {
		return 0
	}
	return c.requestsTotal.Load()
}

// Rebuilt records a completed package build.
func (c *Collector) Rebuilt() {
	if c == nil {
		return
	}
	c.rebuildsTotal.Add(1)
	c.mu.Lock()
	c.lastBuild = time.Now()
	c.mu.Unlock()
}

// TotalRebuilds returns the number of completed package builds.
func (c *Collector) TotalRebuilds() int64 {
	if c == nil {
		return 0
	}
	return c.rebuildsTotal.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	CompilesTotal    int64  `json:"compiles_total"`
	BytesOut         int64  `json:"bytes_out"`
	RequestsTotal    int64  `json:"requests_total"`
	RebuildsTotal    int64  `json:"rebuilds_total"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastBuild        string `json:"last_build,omitempty"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:        time.Since(c.startTime).Truncate(time.Second).String(),
		CompilesTotal: c.compilesTotal.Load(),
		BytesOut:      c.bytesOut.Load(),
		RequestsTotal: c.requestsTotal.Load(),
		RebuildsTotal: c.rebuildsTotal.Load(),
		ErrorsTotal:   c.errorsTotal.Load(),
	}
	if !c.lastBuild.IsZero() {
		s.LastBuild = c.lastBuild.Format(time.RFC3339)
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as an indented JSON string.
func (c *Collector) JSON() string {
	s := c.Snapshot()
	data, _ := json.MarshalIndent(s, "", "  ")
	return string(data)
}
