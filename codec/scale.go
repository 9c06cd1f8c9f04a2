package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/sarchlab/pmicdump/regmap"
)

// linear maps a raw field value n to offset + step*n base units, displayed
// after dividing by div.
type linear struct {
	offset float64
	step   float64
	div    float64
	unit   string
	prec   int

	// sign is prepended to the formatted magnitude.
	sign string
}

var (
	voltsDefault = linear{offset: 0, step: 5, div: 1000, unit: "V", prec: 3}
	voltsSW      = linear{offset: 800, step: 5, div: 1000, unit: "V", prec: 3}
	voltsSWHigh  = linear{offset: 1500, step: 5, div: 1000, unit: "V", prec: 3}
	voltsADC     = linear{offset: 0, step: 15, div: 1000, unit: "V", prec: 3}
	voltsADCWide = linear{offset: 0, step: 70, div: 1000, unit: "V", prec: 3}
	marginPct    = linear{offset: 5, step: 2.5, div: 1, unit: "%", prec: -1, sign: "-"}
	amps         = linear{offset: 0, step: 125, div: 1000, unit: "A", prec: 3}
	watts        = linear{offset: 0, step: 125, div: 1000, unit: "W", prec: 3}
	millis       = linear{offset: 0, step: 1, div: 1, unit: "ms", prec: 0}
	softStart    = linear{offset: 1, step: 1, div: 1, unit: "ms", prec: 0}
	kilohertz    = linear{offset: 750, step: 250, div: 1, unit: "kHz", prec: 0}
	celsius      = linear{offset: 105, step: 10, div: 1, unit: "°C", prec: 0}
)

// scaleFor returns the mapping of a physical field. ok is false for kinds
// without a physical unit.
func scaleFor(kind regmap.FieldKind, scale regmap.Scale) (linear, bool) {
	switch kind {
	case regmap.KindVoltage:
		switch scale {
		case regmap.ScaleSwitcher:
			return voltsSW, true
		case regmap.ScaleSwitcherHigh:
			return voltsSWHigh, true
		case regmap.ScaleADC:
			return voltsADC, true
		case regmap.ScaleADCWide:
			return voltsADCWide, true
		case regmap.ScaleMargin:
			return marginPct, true
		}
		return voltsDefault, true
	case regmap.KindCurrent:
		return amps, true
	case regmap.KindPower:
		return watts, true
	case regmap.KindTime:
		if scale == regmap.ScaleSoftStart {
			return softStart, true
		}
		return millis, true
	case regmap.KindFrequency:
		return kilohertz, true
	case regmap.KindTemperature:
		return celsius, true
	}
	return linear{}, false
}

func (l linear) value(n uint8) float64 {
	return (l.offset + l.step*float64(n)) / l.div
}

func (l linear) format(n uint8) string {
	return l.sign + strconv.FormatFloat(l.value(n), 'f', l.prec, 64) + l.unit
}

// raw inverts the mapping for a value in display units, rounding to the
// nearest step. The result may fall outside the field.
func (l linear) raw(x float64) int64 {
	if l.sign != "" {
		x = math.Abs(x)
	}

	n := math.Round((x*l.div - l.offset) / l.step)
	return int64(math.Max(math.Min(n, math.MaxUint16), -1))
}

// unitFactor converts a value written with unit suffix into the display unit
// of l. ok is false when the suffix does not belong to l.
func (l linear) unitFactor(suffix string) (float64, bool) {
	if suffix == "" || strings.EqualFold(suffix, l.unit) {
		return 1, true
	}

	switch l.unit {
	case "V", "A", "W":
		if suffix == "m"+l.unit {
			return 0.001, true
		}
	case "kHz":
		switch suffix {
		case "MHz":
			return 1000, true
		case "Hz":
			return 0.001, true
		}
	case "°C":
		if suffix == "C" || suffix == "degC" {
			return 1, true
		}
	case "ms":
		switch suffix {
		case "s":
			return 1000, true
		case "us", "µs":
			return 0.001, true
		}
	}
	return 0, false
}
