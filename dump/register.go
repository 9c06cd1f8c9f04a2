package dump

import (
	"github.com/sarchlab/pmicdump/codec"
	"github.com/sarchlab/pmicdump/regmap"
)

// ParsedRegister is one decoded register of a dump.
type ParsedRegister struct {
	Address uint8
	Raw     uint8

	// Default is copied from the definition at parse time.
	Default uint8

	Decoded string

	// Bits holds the state of each bit, index 0 being the least significant.
	Bits [8]bool

	Def *regmap.RegisterDefinition
}

func newParsedRegister(def *regmap.RegisterDefinition, raw byte) *ParsedRegister {
	r := &ParsedRegister{
		Address: def.Address,
		Default: def.Default,
		Def:     def,
	}
	r.set(raw)
	return r
}

// set re-derives everything that depends on the raw value.
func (r *ParsedRegister) set(raw byte) {
	r.Raw = raw
	r.Decoded = codec.DecodeRegister(r.Def, raw)
	r.Bits = codec.BitStates(raw)
}

// IsChanged reports whether the raw value differs from the default.
func (r *ParsedRegister) IsChanged() bool {
	return r.Raw != r.Default
}

// Bit reports whether bit i of the raw value is set.
func (r *ParsedRegister) Bit(i int) bool {
	if i < 0 || i >= len(r.Bits) {
		return false
	}
	return r.Bits[i]
}

// Name returns the register's short name.
func (r *ParsedRegister) Name() string {
	return r.Def.Name
}

// FieldValue returns the raw value of the named field.
func (r *ParsedRegister) FieldValue(name string) (uint8, bool) {
	f, ok := r.Def.Field(name)
	if !ok {
		return 0, false
	}
	return f.Bits.Extract(r.Raw), true
}

// Clone returns a copy that shares only the definition.
func (r *ParsedRegister) Clone() *ParsedRegister {
	c := *r
	return &c
}
