package classify

import (
	"fmt"

	"github.com/sarchlab/pmicdump/regmap"
)

// Verdict is the outcome of validating an edit. A rejected edit has OK false
// and a Reason. An accepted edit may still carry an Advisory.
type Verdict struct {
	OK       bool
	Reason   string
	Advisory string
}

func reject(format string, args ...interface{}) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

func (v Verdict) String() string {
	switch {
	case !v.OK:
		return "rejected: " + v.Reason
	case v.Advisory != "":
		return "ok: " + v.Advisory
	default:
		return "ok"
	}
}

// ValidateValue decides whether newRaw may be written to the register def
// currently holding originalRaw.
func ValidateValue(def *regmap.RegisterDefinition, newRaw, originalRaw int) Verdict {
	switch def.Access {
	case regmap.AccessRO, regmap.AccessROE, regmap.AccessRV:
		return reject("%s is %s and cannot be written", def.Name, def.Access)
	case regmap.AccessUnknown:
		return reject("%s has no access kind and cannot be written", def.Name)
	}

	if IsProtected(def) && !def.AllowProtectedWrite {
		return reject("%s at 0x%02X is protected", def.Name, def.Address)
	}

	if newRaw < 0 || newRaw > 0xFF {
		return reject("value %d is outside 0..255", newRaw)
	}

	raw := uint8(newRaw)
	for i := range def.Fields {
		f := &def.Fields[i]
		v := f.Bits.Extract(raw)
		if v > f.Bits.Max() {
			return reject("field %s value %d exceeds %d", f.Name, v, f.Bits.Max())
		}
		if len(f.Enum) > 0 {
			if _, ok := f.EnumLabel(v); !ok {
				return reject("field %s value %d is not a defined option", f.Name, v)
			}
		}
	}

	verdict := Verdict{OK: true}
	if def.Access == regmap.AccessW1O && newRaw&^originalRaw != 0 {
		verdict.Advisory = fmt.Sprintf(
			"%s is write-one-to-clear; 0x%02X sets bits that were clear in 0x%02X",
			def.Name, newRaw, originalRaw&0xFF)
	}

	return verdict
}
