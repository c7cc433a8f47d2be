package annotate

import (
	"context"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	perrors "github.com/matzehuels/phrasenet/pkg/errors"
	"github.com/matzehuels/phrasenet/pkg/httputil"
	"github.com/matzehuels/phrasenet/pkg/observability"
)

// Registry maps annotator choices to factories and caches the loaded
// annotators. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	loaded    map[string]Annotator
	group     singleflight.Group

	Logger *log.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		loaded:    make(map[string]Annotator),
		Logger:    log.New(io.Discard),
	}
}

// Endpoints holds the service URLs of the remote annotators. An empty URL
// leaves that choice unregistered.
type Endpoints struct {
	Spacy  string
	Stanza string
}

// NewDefaultRegistry registers builtin plus any remote annotator with a
// configured endpoint.
func NewDefaultRegistry(ep Endpoints, logger *log.Logger) *Registry {
	r := NewRegistry()
	if logger != nil {
		r.Logger = logger
	}
	r.Register(ChoiceBuiltin, func(context.Context) (Annotator, error) {
		return NewBuiltin(), nil
	})
	for choice, url := range map[string]string{ChoiceSpacy: ep.Spacy, ChoiceStanza: ep.Stanza} {
		if url == "" {
			continue
		}
		r.Register(choice, RemoteFactory(choice, url))
	}
	return r
}

// RemoteFactory returns a factory that loads the HTTP annotator at url.
func RemoteFactory(choice, url string) Factory {
	return func(ctx context.Context) (Annotator, error) {
		if err := perrors.ValidateURL(url); err != nil {
			return nil, err
		}
		return LoadRemote(ctx, choice, httputil.NewClient(url, nil))
	}
}

// Register adds or replaces the factory for choice. A previously loaded
// annotator for choice is kept until [Registry.Reload].
func (r *Registry) Register(choice string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[choice] = f
}

// Choices returns the registered choices in sorted order.
func (r *Registry) Choices() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for c := range r.factories {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Loaded reports whether choice has a loaded annotator.
func (r *Registry) Loaded(choice string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.loaded[choice]
	return ok
}

// Get returns the annotator for choice, loading it on first use.
//
// An unregistered choice returns an INVALID_INPUT error. A failed load
// returns ANNOTATOR_UNAVAILABLE and is not cached, so a later call retries.
func (r *Registry) Get(ctx context.Context, choice string) (Annotator, error) {
	r.mu.RLock()
	a, ok := r.loaded[choice]
	_, known := r.factories[choice]
	r.mu.RUnlock()
	if ok {
		return a, nil
	}
	if !known {
		return nil, perrors.New(perrors.ErrCodeInvalidInput,
			"unknown annotator %q (available: %v)", choice, r.Choices())
	}
	return r.load(ctx, choice)
}

// Reload discards the loaded annotator for choice, if any, and loads a
// fresh one. Annotators implementing io.Closer are closed after the swap.
func (r *Registry) Reload(ctx context.Context, choice string) (Annotator, error) {
	r.mu.Lock()
	old, had := r.loaded[choice]
	_, known := r.factories[choice]
	delete(r.loaded, choice)
	r.mu.Unlock()

	if !known {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "unknown annotator %q", choice)
	}
	a, err := r.load(ctx, choice)
	if had {
		if c, ok := old.(io.Closer); ok {
			_ = c.Close()
		}
	}
	return a, err
}

func (r *Registry) load(ctx context.Context, choice string) (Annotator, error) {
	v, err, shared := r.group.Do(choice, func() (any, error) {
		r.mu.RLock()
		a, ok := r.loaded[choice]
		f := r.factories[choice]
		r.mu.RUnlock()
		if ok {
			return a, nil
		}

		r.Logger.Debug("loading annotator", "choice", choice)
		start := time.Now()
		a, err := f(ctx)
		observability.Annotator().OnLoad(ctx, choice, time.Since(start), err)
		if err != nil {
			r.Logger.Warn("annotator unavailable", "choice", choice, "error", err)
			return nil, err
		}

		r.mu.Lock()
		r.loaded[choice] = a
		r.mu.Unlock()
		r.Logger.Info("loaded annotator", "choice", choice, "duration", time.Since(start).Round(time.Millisecond))
		return a, nil
	})
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeAnnotatorUnavailable, err, "annotator %q could not be loaded", choice)
	}
	if shared {
		r.Logger.Debug("joined in-flight annotator load", "choice", choice)
	}
	return v.(Annotator), nil
}

// Close closes every loaded annotator that implements io.Closer and empties
// the cache.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for choice, a := range r.loaded {
		if c, ok := a.(io.Closer); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
		delete(r.loaded, choice)
	}
	return first
}
