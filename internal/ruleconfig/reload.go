package ruleconfig

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dshills/autopair/internal/logging"
	"github.com/dshills/autopair/internal/rules"
)

// Reloader owns a rule index compiled from a configuration file and
// recompiles it when the file changes. Index loads are lock-free; the
// compiled index is swapped atomically, and a failed reload keeps the
// previous index so typing is never left without rules.
type Reloader struct {
	path     string
	loader   *Loader
	defaults map[string][]rules.Definition
	debounce time.Duration
	log      zerolog.Logger

	index atomic.Pointer[rules.Index]

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithDefaults sets the base definitions that configuration entries
// override key by key.
func WithDefaults(defs map[string][]rules.Definition) ReloaderOption {
	return func(r *Reloader) { r.defaults = defs }
}

// WithDebounce sets how long to wait after a file event before
// reloading, coalescing editor write bursts. The default is 100ms.
func WithDebounce(d time.Duration) ReloaderOption {
	return func(r *Reloader) { r.debounce = d }
}

// NewReloader loads and compiles the configuration at path and starts
// watching it. The initial load must succeed; later reload failures
// only log and keep the previous index. The watch covers the file's
// directory, since editors commonly replace files by rename.
func NewReloader(path string, opts ...ReloaderOption) (*Reloader, error) {
	r := &Reloader{
		path:     path,
		loader:   NewLoader(),
		debounce: 100 * time.Millisecond,
		log:      logging.GetLogger("ruleconfig"),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	idx, err := r.compile()
	if err != nil {
		r.loader.Close()
		return nil, err
	}
	r.index.Store(idx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.loader.Close()
		return nil, err
	}
	r.watcher = watcher
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		r.loader.Close()
		return nil, err
	}

	r.wg.Add(1)
	go r.run()
	return r, nil
}

// Index returns the current compiled rule index.
func (r *Reloader) Index() *rules.Index {
	return r.index.Load()
}

// Close stops watching and releases resources.
func (r *Reloader) Close() error {
	close(r.done)
	err := r.watcher.Close()
	r.wg.Wait()
	r.loader.Close()
	return err
}

// compile loads the file, merges it over the defaults, and compiles.
func (r *Reloader) compile() (*rules.Index, error) {
	loaded, err := r.loader.Load(r.path)
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]rules.Definition, len(r.defaults)+len(loaded))
	for key, defs := range r.defaults {
		merged[key] = defs
	}
	for key, defs := range loaded {
		merged[key] = defs
	}
	return rules.Compile(merged)
}

// run watches for changes to the configuration file.
func (r *Reloader) run() {
	defer r.wg.Done()

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-r.done:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(r.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			pending = timer.C

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.log.Warn().Err(err).Msg("config watch error")

		case <-pending:
			pending = nil
			idx, err := r.compile()
			if err != nil {
				r.log.Error().Err(err).Str("path", r.path).Msg("config reload failed, keeping previous rules")
				continue
			}
			r.index.Store(idx)
			r.log.Info().Str("path", r.path).Int("rules", idx.Len()).Msg("rules reloaded")
		}
	}
}
