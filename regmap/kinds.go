package regmap

import "strings"

// AccessKind describes how a register may be accessed.
type AccessKind uint8

// Access kinds. AccessUnknown is the zero value and means the access kind was
// never set.
const (
	AccessUnknown AccessKind = iota
	AccessRO                 // Read-only
	AccessROE                // Read-only, error log
	AccessRW                 // Read-write
	AccessRWPE               // Read-write, protected/persistent
	AccessW                  // Write-only
	AccessW1O                // Write one to clear
	AccessRV                 // Reserved
)

var accessNames = [...]string{
	AccessUnknown: "",
	AccessRO:      "RO",
	AccessROE:     "ROE",
	AccessRW:      "RW",
	AccessRWPE:    "RWPE",
	AccessW:       "W",
	AccessW1O:     "W1O",
	AccessRV:      "RV",
}

// ParseAccessKind converts a document access string. Unknown strings yield
// AccessUnknown and ok == false.
func ParseAccessKind(s string) (AccessKind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, name := range accessNames {
		if name != "" && name == s {
			return AccessKind(i), true
		}
	}
	return AccessUnknown, false
}

func (a AccessKind) String() string {
	if int(a) < len(accessNames) {
		return accessNames[a]
	}
	return ""
}

// Writable reports whether the access kind permits writes at all.
func (a AccessKind) Writable() bool {
	switch a {
	case AccessRW, AccessRWPE, AccessW, AccessW1O:
		return true
	}
	return false
}

// FieldKind selects how a field value is turned into text.
type FieldKind uint8

// Field kinds.
const (
	KindRaw FieldKind = iota
	KindReserved
	KindFlag
	KindEnum
	KindBinary
	KindDecimal
	KindVoltage
	KindCurrent
	KindPower
	KindTime
	KindFrequency
	KindTemperature
)

var kindNames = [...]string{
	KindRaw:         "raw",
	KindReserved:    "reserved",
	KindFlag:        "flag",
	KindEnum:        "enum",
	KindBinary:      "binary",
	KindDecimal:     "decimal",
	KindVoltage:     "voltage",
	KindCurrent:     "current",
	KindPower:       "power",
	KindTime:        "time",
	KindFrequency:   "frequency",
	KindTemperature: "temperature",
}

// ParseFieldKind converts a document decode-kind string. Unknown strings yield
// KindRaw and ok == false.
func ParseFieldKind(s string) (FieldKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return FieldKind(i), true
		}
	}
	return KindRaw, false
}

func (k FieldKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "raw"
}

// Physical reports whether the kind has a physical-unit mapping.
func (k FieldKind) Physical() bool {
	switch k {
	case KindVoltage, KindCurrent, KindPower, KindTime, KindFrequency, KindTemperature:
		return true
	}
	return false
}

// Scale is the physical-unit variant of a field. It is resolved once when the
// definitions are built, so decoding never looks at names.
type Scale uint8

// Scales.
const (
	ScaleDefault      Scale = iota
	ScaleSwitcher           // 800 mV + 5 mV per step
	ScaleSwitcherHigh       // 1500 mV + 5 mV per step
	ScaleADC                // 15 mV per step
	ScaleADCWide            // 70 mV per step
	ScaleMargin             // power-good margin, 0 -> 5.0 %, 1 -> 7.5 %
	ScaleSoftStart          // 1 ms + 1 ms per step
)

var scaleNames = [...]string{
	ScaleDefault:      "",
	ScaleSwitcher:     "switcher",
	ScaleSwitcherHigh: "switcher-high",
	ScaleADC:          "adc",
	ScaleADCWide:      "adc-wide",
	ScaleMargin:       "margin",
	ScaleSoftStart:    "soft-start",
}

// ParseScale converts a document scale string.
func ParseScale(s string) (Scale, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range scaleNames {
		if name == s {
			return Scale(i), true
		}
	}
	return ScaleDefault, false
}

func (s Scale) String() string {
	if int(s) < len(scaleNames) {
		return scaleNames[s]
	}
	return ""
}

// SpecialKind names a whole-register decoder that overrides field decoding.
type SpecialKind uint8

// Special decoders.
const (
	SpecialNone SpecialKind = iota
	SpecialSwaVoltage
	SpecialSwbVoltage
	SpecialSwcVoltage
	SpecialThresholdAB
	SpecialThresholdC
	SpecialCurrent
	SpecialCurrentLow6
	SpecialSwitchingDual
	SpecialSwitchingSingle
	SpecialLdoVoltage
	SpecialOcpThreshold
	SpecialSoftStartDual
	SpecialSoftStartSingle
	SpecialOtpThreshold
	SpecialStatusGlobal
	SpecialStatusPowerGood
	SpecialStatusOverCurrent
	SpecialStatusErrorLog
	SpecialAdcRead
	SpecialAdcReadWide

	// SpecialUnknown is a tag that was present in a document but is not a
	// known decoder. Registers carrying it use field decoding.
	SpecialUnknown
)

var specialNames = [...]string{
	SpecialNone:              "",
	SpecialSwaVoltage:        "SwaVoltage",
	SpecialSwbVoltage:        "SwbVoltage",
	SpecialSwcVoltage:        "SwcVoltage",
	SpecialThresholdAB:       "ThresholdAB",
	SpecialThresholdC:        "ThresholdC",
	SpecialCurrent:           "Current",
	SpecialCurrentLow6:       "CurrentLow6",
	SpecialSwitchingDual:     "SwitchingDual",
	SpecialSwitchingSingle:   "SwitchingSingle",
	SpecialLdoVoltage:        "LdoVoltage",
	SpecialOcpThreshold:      "OcpThreshold",
	SpecialSoftStartDual:     "SoftStartDual",
	SpecialSoftStartSingle:   "SoftStartSingle",
	SpecialOtpThreshold:      "OtpThreshold",
	SpecialStatusGlobal:      "StatusGlobal",
	SpecialStatusPowerGood:   "StatusPowerGood",
	SpecialStatusOverCurrent: "StatusOverCurrent",
	SpecialStatusErrorLog:    "StatusErrorLog",
	SpecialAdcRead:           "AdcRead",
	SpecialAdcReadWide:       "AdcReadWide",
	SpecialUnknown:           "",
}

// ParseSpecialKind converts a document special-decode tag. The empty string
// is SpecialNone; unrecognised tags are SpecialUnknown.
func ParseSpecialKind(s string) SpecialKind {
	s = strings.TrimSpace(s)
	if s == "" {
		return SpecialNone
	}
	for i, name := range specialNames {
		if name != "" && strings.EqualFold(name, s) {
			return SpecialKind(i)
		}
	}
	return SpecialUnknown
}

func (s SpecialKind) String() string {
	if int(s) < len(specialNames) {
		return specialNames[s]
	}
	return ""
}

// SpecialKinds returns every known special decoder tag.
func SpecialKinds() []SpecialKind {
	kinds := make([]SpecialKind, 0, int(SpecialUnknown)-1)
	for k := SpecialSwaVoltage; k < SpecialUnknown; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}
