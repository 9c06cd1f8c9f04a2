package codec

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sarchlab/pmicdump/regmap"
)

// ErrUnparseable is returned when a text value matches no accepted form.
var ErrUnparseable = errors.New("unparseable value")

// ErrOutOfRange is returned when a value parses but does not fit the field.
var ErrOutOfRange = errors.New("value out of range")

// ErrUnknownField is returned by EncodeRegister for a field name the register
// does not define.
var ErrUnknownField = errors.New("unknown field")

// numberPattern matches a decimal number with an optional unit suffix.
var numberPattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))\s*([A-Za-zµ°%]*)$`)

var flagWords = map[string]bool{
	"active": true, "on": true, "true": true, "set": true, "enabled": true, "enable": true,
	"inactive": false, "off": false, "false": false, "clear": false, "disabled": false, "disable": false,
}

// EncodeField converts display text back to a field value. Accepted forms,
// tried in order: a number (with an optional unit for physical kinds), an
// enum key or label, a flag keyword, and a 0x hex literal. A value beyond the
// field width is an ErrOutOfRange error.
func EncodeField(f *regmap.FieldDefinition, text string) (uint8, error) {
	s := strings.TrimSpace(text)

	if f.Kind == regmap.KindEnum {
		if v, ok := matchEnum(f, s); ok {
			return v, nil
		}
	}

	if v, ok := encodeNumber(f, s); ok {
		return fitField(f, text, v)
	}

	if v, ok := matchEnum(f, s); ok {
		return v, nil
	}

	if f.Kind == regmap.KindFlag {
		if active, ok := flagWords[strings.ToLower(s)]; ok {
			return encodeFlag(f, active), nil
		}
	}

	if v, ok := parseHex(s); ok {
		return fitField(f, text, int64(v))
	}

	return 0, fmt.Errorf("%w %q for field %s", ErrUnparseable, text, f.Name)
}

// encodeNumber returns the field value for a numeric text, before any range
// check.
func encodeNumber(f *regmap.FieldDefinition, s string) (int64, bool) {
	if f.Kind == regmap.KindBinary {
		if v, err := strconv.ParseUint(strings.TrimPrefix(s, "0b"), 2, 8); err == nil {
			return int64(v), true
		}
	}

	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	x, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	if l, ok := scaleFor(f.Kind, f.Scale); ok {
		factor, ok := l.unitFactor(m[2])
		if !ok {
			return 0, false
		}
		return l.raw(x * factor), true
	}

	if m[2] != "" || x < 0 || x != math.Trunc(x) {
		return 0, false
	}
	return int64(math.Min(x, math.MaxUint16)), true
}

func encodeFlag(f *regmap.FieldDefinition, active bool) uint8 {
	set := active
	if f.ActiveHigh != nil && !*f.ActiveHigh {
		set = !active
	}
	if set {
		return 1
	}
	return 0
}

// matchEnum finds a key or label equal to s under Unicode case folding.
func matchEnum(f *regmap.FieldDefinition, s string) (uint8, bool) {
	if len(f.Enum) == 0 {
		return 0, false
	}

	fold := cases.Fold()
	want := fold.String(s)
	for key, label := range f.Enum {
		if fold.String(key) != want && fold.String(label) != want {
			continue
		}
		v, err := strconv.ParseUint(key, 10, 8)
		if err != nil {
			continue
		}
		return uint8(v), true
	}
	return 0, false
}

// parseHex accepts a 0x literal, optionally followed by other text such as
// the decimal part of a raw display.
func parseHex(s string) (uint64, bool) {
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	if len(s) < 3 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return 0, false
	}
	v, err := strconv.ParseUint(s[2:], 16, 8)
	if err != nil {
		return 0, false
	}
	return v, true
}

func fitField(f *regmap.FieldDefinition, text string, v int64) (uint8, error) {
	if v < 0 || v > int64(f.Bits.Max()) {
		return 0, fmt.Errorf("%w: %q for field %s (0..%d)", ErrOutOfRange, text, f.Name, f.Bits.Max())
	}
	return uint8(v), nil
}

// EncodeRegister sets the named fields of base to the given text values and
// returns the resulting byte. Bits outside the named fields keep their value
// from base.
func EncodeRegister(def *regmap.RegisterDefinition, values map[string]string, base byte) (byte, error) {
	raw := base
	for name, text := range values {
		f, ok := def.Field(name)
		if !ok {
			return base, fmt.Errorf("%w %s in register %s", ErrUnknownField, name, def.Name)
		}

		v, err := EncodeField(f, text)
		if err != nil {
			return base, err
		}
		raw = f.Bits.Insert(raw, v)
	}
	return raw, nil
}
