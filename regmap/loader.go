package regmap

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"golang.org/x/sync/singleflight"

	"github.com/sarchlab/pmicdump/fileio"
)

// ErrNoDocument is the fallback reason when no document path is configured.
var ErrNoDocument = errors.New("no definition document configured")

const loadKey = "definitions"

// Load reads and builds a definition document. Unlike Loader it does not fall
// back: I/O failures are returned as *fileio.IOError and content failures as
// *FormatError.
func Load(store fileio.Store, path string) (*Map, error) {
	data, err := store.ReadBytes(path)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(data, FormatFromPath(path))
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Source = path
		}
		return nil, err
	}

	return Build(doc, path)
}

// Loader resolves the definition map once and caches it. Concurrent callers
// share a single load; after that, GetOrLoad is a lock-free read.
type Loader struct {
	path   string
	store  fileio.Store
	logger logr.Logger

	group   singleflight.Group
	mu      sync.Mutex
	current atomic.Pointer[Map]
	loads   atomic.Int64
}

// LoaderOption is a functional option for configuring the Loader.
type LoaderOption func(*Loader)

// WithStore sets where the document is read from. The default is the local
// file system.
func WithStore(store fileio.Store) LoaderOption {
	return func(l *Loader) {
		l.store = store
	}
}

// WithLogger sets the logger used for fallback and warning diagnostics.
func WithLogger(logger logr.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader for the document at path. An empty path always
// resolves to the generated map.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:   path,
		store:  fileio.OSStore{},
		logger: logr.Discard(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// GetOrLoad returns the cached map, loading it on first use. It never fails:
// a missing or invalid document yields the generated map.
func (l *Loader) GetOrLoad() *Map {
	if m := l.current.Load(); m != nil {
		return m
	}

	v, _, _ := l.group.Do(loadKey, func() (interface{}, error) {
		l.mu.Lock()
		defer l.mu.Unlock()

		if m := l.current.Load(); m != nil {
			return m, nil
		}
		m := l.resolve()
		l.current.Store(m)
		return m, nil
	})

	return v.(*Map)
}

// Reload discards the cached map and resolves it again.
func (l *Loader) Reload() *Map {
	l.mu.Lock()
	defer l.mu.Unlock()

	m := l.resolve()
	l.current.Store(m)
	return m
}

// Cached returns the current map, or nil if nothing has been loaded.
func (l *Loader) Cached() *Map {
	return l.current.Load()
}

// Loads returns how many resolutions have run.
func (l *Loader) Loads() int64 {
	return l.loads.Load()
}

func (l *Loader) resolve() *Map {
	l.loads.Add(1)

	if l.path == "" {
		return l.fallback(ErrNoDocument)
	}

	m, err := Load(l.store, l.path)
	if err != nil {
		return l.fallback(err)
	}

	for _, w := range m.Warnings {
		l.logger.V(1).Info("definition warning", "source", l.path, "warning", w)
	}
	l.logger.V(1).Info("loaded definitions",
		"source", l.path, "model", m.Model, "version", m.Version)

	return m
}

func (l *Loader) fallback(reason error) *Map {
	m := Generated()
	m.Fallback = reason

	if !errors.Is(reason, ErrNoDocument) {
		l.logger.Info("using generated definitions",
			"source", l.path, "reason", reason.Error(),
			"ioError", fileio.IsIOError(reason))
	}

	return m
}
