package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug lines to a
// logger. The CLI installs it when running with --verbose.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger, or to log.Default() if nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

// Install registers h for all hook categories.
func (h *LogHooks) Install() {
	SetLayoutHooks(h)
	SetStoreHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnRestart(_ context.Context, reason string, nodeCount int) {
	h.logger.Debug("layout restart", "reason", reason, "nodes", nodeCount)
}

func (h *LogHooks) OnRest(_ context.Context, ticks int, d time.Duration) {
	h.logger.Debug("layout at rest", "ticks", ticks, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnStoreHit(_ context.Context, backend string) {
	h.logger.Debug("store hit", "backend", backend)
}

func (h *LogHooks) OnStoreMiss(_ context.Context, backend string) {
	h.logger.Debug("store miss", "backend", backend)
}

func (h *LogHooks) OnStoreSet(_ context.Context, backend string, size int) {
	h.logger.Debug("store set", "backend", backend, "bytes", size)
}

func (h *LogHooks) OnStoreError(_ context.Context, backend, op string, err error) {
	h.logger.Warn("store error", "backend", backend, "op", op, "err", err)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}
