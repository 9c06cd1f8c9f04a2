package regmap

import (
	"fmt"
	"strings"
)

// ProtectedLow and ProtectedHigh bound the vendor region that is always
// treated as protected.
const (
	ProtectedLow  = 0x40
	ProtectedHigh = 0x6F
)

// NumRegisters is the size of the register space.
const NumRegisters = 256

// CategoryReserved is the category of registers with no defined function.
const CategoryReserved = "Reserved"

// electricalMarkers are the short-name markers of voltage and current
// registers.
var electricalMarkers = []string{"VOLT", "CURR"}

// FieldDefinition describes one bit field of a register.
type FieldDefinition struct {
	Bits        BitRange
	Name        string
	Description string
	Kind        FieldKind

	// ActiveHigh is the polarity of a flag field. nil means the bit value
	// alone decides.
	ActiveHigh *bool

	// Enum maps the decimal string of a field value to a label.
	Enum map[string]string

	Scale Scale
}

// EnumLabel returns the label for v if the field has one.
func (f *FieldDefinition) EnumLabel(v uint8) (string, bool) {
	if len(f.Enum) == 0 {
		return "", false
	}
	label, ok := f.Enum[fmt.Sprint(v)]
	return label, ok
}

// RegisterDefinition describes one register address.
type RegisterDefinition struct {
	Address     uint8
	Name        string
	FullName    string
	Category    string
	Default     uint8
	Access      AccessKind
	Description string
	Fields      []FieldDefinition

	// Protected marks the register protected in addition to the fixed
	// vendor region.
	Protected bool

	// AllowProtectedWrite exempts a protected register from the write deny.
	AllowProtectedWrite bool

	Special SpecialKind

	// SpecialTag is the tag as written in the source document.
	SpecialTag string

	electrical bool
}

// DefaultRegister returns the generated reserved definition for addr.
func DefaultRegister(addr uint8) *RegisterDefinition {
	def := &RegisterDefinition{
		Address:  addr,
		Name:     fmt.Sprintf("RESERVED_%02X", addr),
		FullName: "Reserved",
		Category: CategoryReserved,
		Access:   AccessRV,
	}
	def.Resolve()
	return def
}

// Electrical reports whether the register carries a voltage or current
// marker in its short name.
func (d *RegisterDefinition) Electrical() bool {
	return d.electrical
}

// InProtectedRegion reports whether the address lies in the vendor region.
func (d *RegisterDefinition) InProtectedRegion() bool {
	return d.Address >= ProtectedLow && d.Address <= ProtectedHigh
}

// Field returns the field with the given name, compared case-insensitively.
func (d *RegisterDefinition) Field(name string) (*FieldDefinition, bool) {
	for i := range d.Fields {
		if strings.EqualFold(d.Fields[i].Name, name) {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

// CoveredMask returns the bits that belong to some field.
func (d *RegisterDefinition) CoveredMask() byte {
	var mask byte
	for _, f := range d.Fields {
		mask |= f.Bits.Mask()
	}
	return mask
}

// Resolve derives the name-based metadata once, after the definition
// is otherwise complete.
func (d *RegisterDefinition) Resolve() {
	upper := strings.ToUpper(d.Name)
	d.electrical = false
	for _, m := range electricalMarkers {
		if strings.Contains(upper, m) {
			d.electrical = true
			break
		}
	}

	if d.InProtectedRegion() {
		d.Protected = true
	}

	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Scale == ScaleDefault {
			f.Scale = inferScale(d, f)
		}
	}
}

// specialScales maps a whole-register decoder to the field scale that decodes
// the same byte identically.
var specialScales = map[SpecialKind]Scale{
	SpecialSwaVoltage:      ScaleSwitcher,
	SpecialSwbVoltage:      ScaleSwitcher,
	SpecialSwcVoltage:      ScaleSwitcherHigh,
	SpecialAdcRead:         ScaleADC,
	SpecialAdcReadWide:     ScaleADCWide,
	SpecialSoftStartDual:   ScaleSoftStart,
	SpecialSoftStartSingle: ScaleSoftStart,
}

// inferScale derives a field's scale from the register's special decoder,
// then from the register and field names. It only runs for documents that
// do not name the scale explicitly.
func inferScale(d *RegisterDefinition, f *FieldDefinition) Scale {
	reg := strings.ToUpper(d.Name)
	name := strings.ToUpper(f.Name)

	switch f.Kind {
	case KindVoltage:
		if strings.Contains(name, "PGL") || strings.Contains(name, "MARGIN") {
			return ScaleMargin
		}
		if s, ok := specialScales[d.Special]; ok && s != ScaleSoftStart {
			return s
		}
		switch {
		case strings.HasPrefix(reg, "SWC") && strings.Contains(reg, "VOLT"):
			return ScaleSwitcherHigh
		case strings.HasPrefix(reg, "SW") && strings.Contains(reg, "VOLT"):
			return ScaleSwitcher
		case strings.Contains(reg, "ADC"):
			return ScaleADC
		}
	case KindTime:
		if specialScales[d.Special] == ScaleSoftStart {
			return ScaleSoftStart
		}
		if strings.Contains(name, "SOFT") || strings.Contains(reg, "SOFT") {
			return ScaleSoftStart
		}
	}
	return ScaleDefault
}
