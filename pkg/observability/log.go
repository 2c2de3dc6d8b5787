package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline and cache events as debug log lines. The CLI
// registers it for --verbose runs.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to l, tagged with the "hooks" prefix.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnAdaptStart(_ context.Context, kind string) {
	h.logger.Debug("adapt start", "kind", kind)
}

func (h *LogHooks) OnAdaptComplete(_ context.Context, kind string, rows int, d time.Duration, err error) {
	h.done("adapt", err, "kind", kind, "rows", rows, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, rows, cols int) {
	h.logger.Debug("render start", "rows", rows, "columns", cols)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, width, height int, d time.Duration, err error) {
	h.done("render", err, "width", width, "height", height, "duration", d)
}

func (h *LogHooks) OnEncodeComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.done("encode", err, "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) done(stage string, err error, keyvals ...any) {
	if err != nil {
		h.logger.Debug(stage+" failed", append(keyvals, "error", err)...)
		return
	}
	h.logger.Debug(stage+" done", keyvals...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
