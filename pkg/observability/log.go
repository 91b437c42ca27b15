package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns a [Hooks] whose every category logs to logger.
func NewLogHooks(logger *log.Logger) Hooks {
	h := &LogHooks{Logger: logger}
	return Hooks{Validation: h, Cache: h, HTTP: h}
}

func (h *LogHooks) OnLoadStart(_ context.Context, dir string) {
	h.Logger.Debug("load start", "dir", dir)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, dir string, rows int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("load failed", "dir", dir, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("load complete", "dir", dir, "rows", rows, "duration", d)
}

func (h *LogHooks) OnValidateComplete(_ context.Context, dir string, findings int, d time.Duration) {
	h.Logger.Debug("validate complete", "dir", dir, "findings", findings, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}
