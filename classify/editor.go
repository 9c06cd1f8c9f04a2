package classify

import (
	"github.com/go-logr/logr"

	"github.com/sarchlab/pmicdump/codec"
	"github.com/sarchlab/pmicdump/dump"
)

// Editor validates edits and applies the accepted ones to a dump.
type Editor struct {
	logger logr.Logger
}

// EditorOption is a functional option for NewEditor.
type EditorOption func(*Editor)

// WithLogger sets the logger that records applied and rejected edits.
func WithLogger(logger logr.Logger) EditorOption {
	return func(e *Editor) {
		e.logger = logger
	}
}

// NewEditor creates an Editor.
func NewEditor(opts ...EditorOption) *Editor {
	e := &Editor{logger: logr.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply validates newRaw against the register at addr and writes it into d
// when the verdict allows.
func (e *Editor) Apply(d *dump.Dump, addr uint8, newRaw int) Verdict {
	r, ok := d.Register(addr)
	if !ok {
		return reject("no register at 0x%02X", addr)
	}

	verdict := ValidateValue(r.Def, newRaw, int(r.Raw))
	if !verdict.OK {
		e.logger.V(1).Info("edit rejected", "address", addr, "value", newRaw, "reason", verdict.Reason)
		return verdict
	}

	old := r.Raw
	if err := d.ApplyEdit(addr, uint8(newRaw)); err != nil {
		return reject("%v", err)
	}

	e.logger.V(1).Info("edit applied", "address", addr, "old", old, "new", newRaw,
		"advisory", verdict.Advisory)
	return verdict
}

// ApplyFields encodes the given field texts on top of the register's current
// value and applies the result.
func (e *Editor) ApplyFields(d *dump.Dump, addr uint8, values map[string]string) Verdict {
	r, ok := d.Register(addr)
	if !ok {
		return reject("no register at 0x%02X", addr)
	}

	raw, err := codec.EncodeRegister(r.Def, values, r.Raw)
	if err != nil {
		return reject("%v", err)
	}

	return e.Apply(d, addr, int(raw))
}

// Reset restores the register at addr to its default value, subject to the
// same checks as Apply.
func (e *Editor) Reset(d *dump.Dump, addr uint8) Verdict {
	r, ok := d.Register(addr)
	if !ok {
		return reject("no register at 0x%02X", addr)
	}
	return e.Apply(d, addr, int(r.Default))
}
