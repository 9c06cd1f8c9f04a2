package dump

import (
	"context"
	"runtime"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/pmicdump/fileio"
	"github.com/sarchlab/pmicdump/regmap"
)

type parseOptions struct {
	source     string
	capturedAt time.Time
	logger     logr.Logger
	workers    int
}

// Option is a functional option for Parse and Load.
type Option func(*parseOptions)

// WithSource sets the dump's source label.
func WithSource(source string) Option {
	return func(o *parseOptions) {
		o.source = source
	}
}

// WithCapturedAt sets the capture time. The default is the parse time.
func WithCapturedAt(t time.Time) Option {
	return func(o *parseOptions) {
		o.capturedAt = t
	}
}

// WithLogger sets the logger used for size-mismatch warnings.
func WithLogger(logger logr.Logger) Option {
	return func(o *parseOptions) {
		o.logger = logger
	}
}

// WithWorkers bounds the number of registers decoded concurrently. The
// default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *parseOptions) {
		o.workers = n
	}
}

// Parse decodes a register buffer. Buffers that are not exactly Size bytes
// are zero-padded or truncated and reported through SizeMismatch; this is not
// an error. Parse only fails if ctx is cancelled.
func Parse(ctx context.Context, data []byte, defs *regmap.Map, opts ...Option) (*Dump, error) {
	o := parseOptions{
		capturedAt: time.Now(),
		logger:     logr.Discard(),
		workers:    runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	d := newDump(defs, o.source, o.capturedAt)
	copy(d.raw[:], data)
	if len(data) != Size {
		d.sizeMismatch = &SizeMismatch{Got: len(data)}
		o.logger.Info("dump size mismatch", "source", o.source, "got", len(data), "want", Size)
	}

	// Each address owns its own slot of d.regs, so the workers need no lock.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for addr := 0; addr < Size; addr++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d.regs[addr] = newParsedRegister(defs.Lookup(uint8(addr)), d.raw[addr])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return d, nil
}

// Load reads a dump file through store and parses it.
func Load(ctx context.Context, store fileio.Store, path string, defs *regmap.Map, opts ...Option) (*Dump, error) {
	data, err := store.ReadBytes(path)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{WithSource(path)}, opts...)
	return Parse(ctx, data, defs, opts...)
}
