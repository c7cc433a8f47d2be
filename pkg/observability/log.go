package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// RegisterLogger installs a [LogHooks] for all event categories.
func RegisterLogger(l *log.Logger) {
	h := LogHooks{Logger: l}
	SetPipelineHooks(h)
	SetAnnotatorHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func ms(d time.Duration) time.Duration { return d.Round(time.Millisecond) }

func (h LogHooks) OnAnnotateStart(_ context.Context, annotator string, textLen int) {
	h.Logger.Debug("annotate start", "annotator", annotator, "chars", textLen)
}

func (h LogHooks) OnAnnotateComplete(_ context.Context, annotator string, tokens int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("annotate failed", "annotator", annotator, "duration", ms(d), "error", err)
		return
	}
	h.Logger.Debug("annotate done", "annotator", annotator, "tokens", tokens, "duration", ms(d))
}

func (h LogHooks) OnStage(_ context.Context, stage string, nodes, edges int, d time.Duration) {
	h.Logger.Debug("stage", "stage", stage, "nodes", nodes, "edges", edges, "duration", ms(d))
}

func (h LogHooks) OnAnalyzeComplete(_ context.Context, linking string, d time.Duration, err error) {
	h.Logger.Debug("analysis", "linking", linking, "duration", ms(d), "ok", err == nil)
}

func (h LogHooks) OnLoad(_ context.Context, choice string, d time.Duration, err error) {
	h.Logger.Debug("annotator load", "choice", choice, "duration", ms(d), "ok", err == nil)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", ms(d))
}

func (h LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Debug("http error", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ PipelineHooks  = LogHooks{}
	_ AnnotatorHooks = LogHooks{}
	_ CacheHooks     = LogHooks{}
	_ HTTPHooks      = LogHooks{}
)
