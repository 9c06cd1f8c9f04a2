// Package dump parses captured 256-byte PMIC register dumps into decoded
// registers and applies edits to them.
package dump

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/pmicdump/fileio"
	"github.com/sarchlab/pmicdump/regmap"
)

// Size is the length of a complete dump.
const Size = regmap.NumRegisters

// ErrNoRegister is returned when editing an address the dump does not hold.
var ErrNoRegister = errors.New("register not present in dump")

// HookPosRegisterEdit marks hook invocations made after a register edit. The
// hook context's Item is a copy of the edited *ParsedRegister and Detail is
// an Edit.
var HookPosRegisterEdit = &sim.HookPos{Name: "RegisterEdit"}

// Edit describes one applied register change.
type Edit struct {
	Address uint8
	Old     uint8
	New     uint8
}

// SizeMismatch reports an input buffer that was not exactly Size bytes long.
// It is informational: the buffer was padded with zeros or truncated.
type SizeMismatch struct {
	Got int
}

func (e *SizeMismatch) Error() string {
	if e.Got < Size {
		return fmt.Sprintf("dump is %d bytes, expected %d: zero-padded", e.Got, Size)
	}
	return fmt.Sprintf("dump is %d bytes, expected %d: truncated", e.Got, Size)
}

// Dump is a captured register snapshot and its decoded registers. All edits
// go through ApplyEdit, which keeps the raw buffer and the decoded registers
// in step. Accessors return copies, so a Dump may be read while another
// goroutine edits it.
type Dump struct {
	*sim.HookableBase

	// ID uniquely identifies this dump within the process.
	ID string

	// Source is the path or label the bytes came from.
	Source string

	CapturedAt time.Time

	mu           sync.RWMutex
	raw          [Size]byte
	regs         [Size]*ParsedRegister
	defs         *regmap.Map
	sizeMismatch *SizeMismatch
}

func newDump(defs *regmap.Map, source string, capturedAt time.Time) *Dump {
	return &Dump{
		HookableBase: sim.NewHookableBase(),
		ID:           xid.New().String(),
		Source:       source,
		CapturedAt:   capturedAt,
		defs:         defs,
	}
}

// Definitions returns the map the dump was parsed with.
func (d *Dump) Definitions() *regmap.Map {
	return d.defs
}

// SizeMismatch returns the size problem of the input buffer, or nil.
func (d *Dump) SizeMismatch() *SizeMismatch {
	return d.sizeMismatch
}

// Register returns a copy of the parsed register at addr. Later edits do
// not show through it.
func (d *Dump) Register(addr uint8) (*ParsedRegister, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r := d.regs[addr]
	if r == nil {
		return nil, false
	}
	return r.Clone(), true
}

// Registers returns copies of all parsed registers in address order.
func (d *Dump) Registers() []*ParsedRegister {
	d.mu.RLock()
	defer d.mu.RUnlock()

	regs := make([]*ParsedRegister, 0, Size)
	for _, r := range d.regs {
		if r != nil {
			regs = append(regs, r.Clone())
		}
	}
	return regs
}

// Changed returns the registers whose value differs from the default.
func (d *Dump) Changed() []*ParsedRegister {
	var changed []*ParsedRegister
	for _, r := range d.Registers() {
		if r.IsChanged() {
			changed = append(changed, r)
		}
	}
	return changed
}

// Bytes returns a copy of the raw buffer.
func (d *Dump) Bytes() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]byte, Size)
	copy(out, d.raw[:])
	return out
}

// ApplyEdit sets the register at addr to newRaw. The decoded text, the bit
// states and the raw buffer byte are updated together. Hooks registered with
// AcceptHook are invoked afterwards.
func (d *Dump) ApplyEdit(addr, newRaw uint8) error {
	d.mu.Lock()
	r := d.regs[addr]
	if r == nil {
		d.mu.Unlock()
		return fmt.Errorf("address 0x%02X: %w", addr, ErrNoRegister)
	}

	edit := Edit{Address: addr, Old: r.Raw, New: newRaw}
	r.set(newRaw)
	d.raw[addr] = newRaw
	snapshot := r.Clone()
	d.mu.Unlock()

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    HookPosRegisterEdit,
		Item:   snapshot,
		Detail: edit,
	})

	return nil
}

// ResetToDefault sets the register at addr back to its default value.
func (d *Dump) ResetToDefault(addr uint8) error {
	r, ok := d.Register(addr)
	if !ok {
		return fmt.Errorf("address 0x%02X: %w", addr, ErrNoRegister)
	}
	return d.ApplyEdit(addr, r.Default)
}

// Save writes the raw buffer to path.
func (d *Dump) Save(store fileio.Store, path string) error {
	if err := store.WriteBytes(path, d.Bytes()); err != nil {
		return fmt.Errorf("failed to save dump: %w", err)
	}
	return nil
}
