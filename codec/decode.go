// Package codec converts between raw register bytes, bit-field values, and
// their human-readable physical representations.
package codec

import (
	"fmt"
	"strings"

	"github.com/sarchlab/pmicdump/regmap"
)

// FieldSeparator joins per-field decodes in a register decode.
const FieldSeparator = " | "

// Flag labels.
const (
	Active   = "Active"
	Inactive = "Inactive"
)

// rawText formats a value as hex and decimal.
func rawText(v uint8) string {
	return fmt.Sprintf("0x%02X (%d)", v, v)
}

// DecodeField converts an extracted field value to display text.
func DecodeField(f *regmap.FieldDefinition, value uint8) string {
	if f.Kind == regmap.KindReserved {
		return rawText(value)
	}

	if label, ok := f.EnumLabel(value); ok {
		return label
	}

	switch f.Kind {
	case regmap.KindFlag:
		if flagActive(f, value) {
			return Active
		}
		return Inactive
	case regmap.KindEnum:
		return fmt.Sprintf("Unknown (%d)", value)
	case regmap.KindBinary:
		return fmt.Sprintf("%0*b", int(f.Bits.Width()), value)
	case regmap.KindDecimal:
		return fmt.Sprintf("%d", value)
	}

	if l, ok := scaleFor(f.Kind, f.Scale); ok {
		return l.format(value)
	}
	return rawText(value)
}

func flagActive(f *regmap.FieldDefinition, value uint8) bool {
	set := value != 0
	if f.ActiveHigh == nil {
		return set
	}
	if *f.ActiveHigh {
		return set
	}
	return !set
}

// DecodeRegister converts a whole register byte to display text. A known
// special decoder takes precedence; otherwise each field is decoded and the
// results joined. Registers without fields show the raw value.
func DecodeRegister(def *regmap.RegisterDefinition, raw byte) string {
	if dec, ok := Special(def.Special); ok {
		return dec(raw)
	}

	if len(def.Fields) == 0 {
		return fmt.Sprintf("0x%02X", raw)
	}

	parts := make([]string, 0, len(def.Fields))
	for i := range def.Fields {
		f := &def.Fields[i]
		parts = append(parts, f.Name+": "+DecodeField(f, f.Bits.Extract(raw)))
	}
	return strings.Join(parts, FieldSeparator)
}

// BitStates returns the state of each bit, index 0 being the least
// significant.
func BitStates(raw byte) [8]bool {
	var bits [8]bool
	for i := range bits {
		bits[i] = raw&(1<<uint(i)) != 0
	}
	return bits
}
