package regmap

import "strconv"

// builtin describes a register known to the generated map. Every address not
// listed here is generated as reserved.
type builtin struct {
	addr     uint8
	name     string
	fullName string
	category string
	def      uint8
	access   AccessKind
	special  SpecialKind
	desc     string
	fields   []FieldDefinition
}

func activeHigh(v bool) *bool { return &v }

func flagField(bit uint8, name, desc string, high bool) FieldDefinition {
	return FieldDefinition{Bits: Bit(bit), Name: name, Description: desc, Kind: KindFlag, ActiveHigh: activeHigh(high)}
}

func scaledField(hi, lo uint8, name string, kind FieldKind, scale Scale) FieldDefinition {
	return FieldDefinition{Bits: Bits(hi, lo), Name: name, Kind: kind, Scale: scale}
}

func enumField(hi, lo uint8, name string, labels ...string) FieldDefinition {
	enum := make(map[string]string, len(labels))
	for i, l := range labels {
		enum[strconv.Itoa(i)] = l
	}
	return FieldDefinition{Bits: Bits(hi, lo), Name: name, Kind: KindEnum, Enum: enum}
}

var builtins = []builtin{
	{0x04, "ERR_LOG_GLOBAL", "Global Error Log", "Status", 0x00, AccessROE, SpecialStatusErrorLog,
		"Latched errors from the previous power cycle.", nil},
	{0x05, "ERR_LOG_RAIL", "Rail Error Log", "Status", 0x00, AccessROE, SpecialNone,
		"Latched per-rail power-good failures.", []FieldDefinition{
			flagField(7, "SWA_PG_FAIL", "SWA power good failure", true),
			flagField(6, "SWB_PG_FAIL", "SWB power good failure", true),
			flagField(5, "SWC_PG_FAIL", "SWC power good failure", true),
			flagField(3, "LDO_PG_FAIL", "LDO power good failure", true),
		}},
	{0x06, "ERR_LOG_VIN", "Input Error Log", "Status", 0x00, AccessROE, SpecialNone,
		"Latched input supply errors.", []FieldDefinition{
			flagField(7, "VIN_OV", "Input over voltage", true),
			flagField(6, "VIN_UV", "Input under voltage", true),
		}},
	{0x08, "STATUS_GLOBAL", "Global Status", "Status", 0x00, AccessRO, SpecialStatusGlobal,
		"Live global status.", nil},
	{0x09, "STATUS_PWR_GOOD", "Power Good Status", "Status", 0x00, AccessRO, SpecialStatusPowerGood,
		"Live per-rail power-good failures.", nil},
	{0x0A, "STATUS_OVER_CURRENT", "Over Current Status", "Status", 0x00, AccessRO, SpecialStatusOverCurrent,
		"Live over-current warnings.", nil},
	{0x0B, "STATUS_TEMP", "Temperature Status", "Status", 0x00, AccessRO, SpecialNone,
		"Live temperature warnings.", []FieldDefinition{
			flagField(7, "HIGH_TEMP_WARN", "Junction above warning threshold", true),
			flagField(6, "OTP_SHUTDOWN", "Over-temperature shutdown", true),
		}},
	{0x0C, "SWA_CURRENT_METER", "SWA Output Current", "Telemetry", 0x00, AccessRO, SpecialCurrent,
		"SWA output current in 125 mA steps.", []FieldDefinition{
			scaledField(7, 0, "IOUT", KindCurrent, ScaleDefault),
		}},
	{0x0D, "SWB_CURRENT_METER", "SWB Output Current", "Telemetry", 0x00, AccessRO, SpecialCurrent,
		"SWB output current in 125 mA steps.", []FieldDefinition{
			scaledField(7, 0, "IOUT", KindCurrent, ScaleDefault),
		}},
	{0x0E, "SWC_CURRENT_METER", "SWC Output Current", "Telemetry", 0x00, AccessRO, SpecialCurrent,
		"SWC output current in 125 mA steps.", []FieldDefinition{
			scaledField(7, 0, "IOUT", KindCurrent, ScaleDefault),
		}},
	{0x0F, "LDO_CURRENT_METER", "LDO Output Current", "Telemetry", 0x00, AccessRO, SpecialCurrentLow6,
		"LDO output current in 125 mA steps over bits 5:0.", []FieldDefinition{
			scaledField(5, 0, "IOUT", KindCurrent, ScaleDefault),
		}},
	{0x10, "CLEAR_STATUS_0", "Clear Status 0", "Control", 0x00, AccessW1O, SpecialNone,
		"Write one to clear latched global status bits.", []FieldDefinition{
			flagField(7, "CLR_HIGH_TEMP", "Clear high temperature warning", true),
			flagField(6, "CLR_VIN_OV", "Clear input over voltage", true),
			flagField(5, "CLR_PG", "Clear power good failures", true),
		}},
	{0x11, "CLEAR_STATUS_1", "Clear Status 1", "Control", 0x00, AccessW1O, SpecialNone,
		"Write one to clear latched over-current bits.", []FieldDefinition{
			flagField(7, "CLR_SWA_OC", "Clear SWA over current", true),
			flagField(6, "CLR_SWB_OC", "Clear SWB over current", true),
			flagField(5, "CLR_SWC_OC", "Clear SWC over current", true),
		}},
	{0x14, "STATUS_MASK_0", "Status Mask 0", "Control", 0x00, AccessRW, SpecialNone,
		"Masks global status sources from the alert output.", []FieldDefinition{
			flagField(7, "MASK_HIGH_TEMP", "Mask high temperature warning", true),
			flagField(6, "MASK_VIN_OV", "Mask input over voltage", true),
			flagField(5, "MASK_PG", "Mask power good failures", true),
		}},
	{0x15, "STATUS_MASK_1", "Status Mask 1", "Control", 0x00, AccessRW, SpecialNone,
		"Masks over-current sources from the alert output.", []FieldDefinition{
			flagField(7, "MASK_SWA_OC", "Mask SWA over current", true),
			flagField(6, "MASK_SWB_OC", "Mask SWB over current", true),
			flagField(5, "MASK_SWC_OC", "Mask SWC over current", true),
		}},
	{0x1A, "OTP_THRESHOLD", "Over Temperature Threshold", "Protection", 0x02, AccessRW, SpecialOtpThreshold,
		"Junction temperature that forces shutdown.", []FieldDefinition{
			scaledField(2, 0, "OTP_LEVEL", KindTemperature, ScaleDefault),
		}},
	{0x1B, "TEMP_WARN_THRESHOLD", "Temperature Warning Threshold", "Protection", 0x01, AccessRW, SpecialNone,
		"Junction temperature that raises a warning.", []FieldDefinition{
			scaledField(2, 0, "WARN_LEVEL", KindTemperature, ScaleDefault),
		}},
	{0x1C, "OCP_WARN_THRESHOLD", "Over Current Warning Threshold", "Protection", 0x45, AccessRW, SpecialOcpThreshold,
		"Per-rail output current warning levels.", nil},
	{0x1D, "OCP_THRESHOLD", "Over Current Threshold", "Protection", 0x8A, AccessRW, SpecialOcpThreshold,
		"Per-rail output current limits.", nil},
	{0x20, "VIN_BULK_THRESHOLD", "Input Supply Thresholds", "Protection", 0x00, AccessRW, SpecialNone,
		"Input supply over-voltage and power-good levels.", []FieldDefinition{
			enumField(7, 6, "VIN_OV_LEVEL", "14.0V", "14.5V", "15.0V", "15.5V"),
			enumField(5, 4, "VIN_PG_LEVEL", "10.0V", "10.5V", "11.0V", "11.5V"),
		}},
	{0x21, "SWA_VOLTAGE", "SWA Output Voltage Setting", "Voltage", 0x78, AccessRWPE, SpecialSwaVoltage,
		"SWA output voltage, 800 mV plus 5 mV steps, and low power-good margin.", []FieldDefinition{
			scaledField(7, 1, "VOUT", KindVoltage, ScaleSwitcher),
			scaledField(0, 0, "PGL", KindVoltage, ScaleMargin),
		}},
	{0x22, "SWA_THRESHOLD", "SWA Output Thresholds", "Voltage", 0x00, AccessRW, SpecialThresholdAB,
		"SWA high/low threshold selection.", nil},
	{0x23, "SWB_VOLTAGE", "SWB Output Voltage Setting", "Voltage", 0x78, AccessRWPE, SpecialSwbVoltage,
		"SWB output voltage, 800 mV plus 5 mV steps, and low power-good margin.", []FieldDefinition{
			scaledField(7, 1, "VOUT", KindVoltage, ScaleSwitcher),
			scaledField(0, 0, "PGL", KindVoltage, ScaleMargin),
		}},
	{0x24, "SWB_THRESHOLD", "SWB Output Thresholds", "Voltage", 0x00, AccessRW, SpecialThresholdAB,
		"SWB high/low threshold selection.", nil},
	{0x25, "SWC_VOLTAGE", "SWC Output Voltage Setting", "Voltage", 0x3C, AccessRWPE, SpecialSwcVoltage,
		"SWC output voltage, 1500 mV plus 5 mV steps, and low power-good margin.", []FieldDefinition{
			scaledField(7, 1, "VOUT", KindVoltage, ScaleSwitcherHigh),
			scaledField(0, 0, "PGL", KindVoltage, ScaleMargin),
		}},
	{0x26, "SWC_THRESHOLD", "SWC Output Thresholds", "Voltage", 0x00, AccessRW, SpecialThresholdC,
		"SWC high/low threshold selection.", nil},
	{0x29, "SWA_SWB_SOFT_START", "SWA/SWB Soft Start Time", "Timing", 0x22, AccessRW, SpecialSoftStartDual,
		"Soft-start ramp time of SWA and SWB.", []FieldDefinition{
			scaledField(6, 4, "SWA_SOFT_START", KindTime, ScaleSoftStart),
			scaledField(2, 0, "SWB_SOFT_START", KindTime, ScaleSoftStart),
		}},
	{0x2A, "SWC_SOFT_START", "SWC Soft Start Time", "Timing", 0x02, AccessRW, SpecialSoftStartSingle,
		"Soft-start ramp time of SWC.", []FieldDefinition{
			scaledField(2, 0, "SWC_SOFT_START", KindTime, ScaleSoftStart),
		}},
	{0x2B, "LDO_VOLTAGE", "LDO Output Voltage Setting", "Voltage", 0x41, AccessRWPE, SpecialLdoVoltage,
		"1.8 V and 1.0 V LDO output settings.", []FieldDefinition{
			enumField(7, 6, "LDO_1V8", "1.7V", "1.8V", "1.9V", "2.0V"),
			enumField(1, 0, "LDO_1V0", "0.9V", "1.0V", "1.1V", "1.2V"),
		}},
	{0x2C, "SWA_SWB_MODE", "SWA/SWB Switching Mode", "Control", 0xDD, AccessRW, SpecialSwitchingDual,
		"Switching mode and frequency of SWA and SWB.", []FieldDefinition{
			enumField(7, 6, "SWA_MODE", "Mode 0", "Mode 1", "COT; DCM", "COT; CCM"),
			scaledField(5, 4, "SWA_FREQ", KindFrequency, ScaleDefault),
			enumField(3, 2, "SWB_MODE", "Mode 0", "Mode 1", "COT; DCM", "COT; CCM"),
			scaledField(1, 0, "SWB_FREQ", KindFrequency, ScaleDefault),
		}},
	{0x2D, "SWC_MODE", "SWC Switching Mode", "Control", 0xD0, AccessRW, SpecialSwitchingSingle,
		"Switching mode and frequency of SWC.", []FieldDefinition{
			enumField(7, 6, "SWC_MODE", "Mode 0", "Mode 1", "COT; DCM", "COT; CCM"),
			scaledField(5, 4, "SWC_FREQ", KindFrequency, ScaleDefault),
		}},
	{0x2F, "PMIC_CONTROL", "PMIC Control", "Control", 0x06, AccessRW, SpecialNone,
		"Global enable and programming controls.", []FieldDefinition{
			flagField(7, "SECURE_MODE", "Vendor region write lock", false),
			flagField(2, "VR_ENABLE", "Regulator enable", true),
			flagField(1, "PWR_GOOD_OUT", "Power good output enable", true),
		}},
	{0x30, "ADC_CONTROL", "ADC Control", "Telemetry", 0x00, AccessRW, SpecialNone,
		"ADC enable and channel selection.", []FieldDefinition{
			flagField(7, "ADC_ENABLE", "ADC enable", true),
			enumField(6, 3, "ADC_SELECT", "SWA", "SWB", "SWC", "Reserved", "VIN_BULK", "LDO_1V8", "LDO_1V0"),
		}},
	{0x31, "ADC_READ", "ADC Read Value", "Telemetry", 0x00, AccessRO, SpecialAdcRead,
		"Selected rail voltage in 15 mV steps.", []FieldDefinition{
			scaledField(7, 0, "ADC_VALUE", KindVoltage, ScaleADC),
		}},
	{0x32, "VIN_ADC_READ", "Input ADC Read Value", "Telemetry", 0x00, AccessRO, SpecialAdcReadWide,
		"Input supply voltage in 70 mV steps.", []FieldDefinition{
			scaledField(7, 0, "ADC_VALUE", KindVoltage, ScaleADCWide),
		}},
	{0x33, "PMIC_TEMPERATURE", "PMIC Temperature", "Telemetry", 0x00, AccessRO, SpecialNone,
		"Junction temperature range indicator.", []FieldDefinition{
			scaledField(7, 5, "TEMP", KindTemperature, ScaleDefault),
		}},
	{0x3B, "PMIC_REVISION", "PMIC Revision", "Identification", 0x12, AccessRO, SpecialNone,
		"Silicon revision.", []FieldDefinition{
			{Bits: Bits(7, 4), Name: "MAJOR", Kind: KindDecimal},
			{Bits: Bits(3, 0), Name: "MINOR", Kind: KindDecimal},
		}},
	{0x3C, "VENDOR_ID_0", "Vendor Identification Byte 0", "Identification", 0x8A, AccessRO, SpecialNone,
		"JEP-106 continuation count.", nil},
	{0x3D, "VENDOR_ID_1", "Vendor Identification Byte 1", "Identification", 0x8C, AccessRO, SpecialNone,
		"JEP-106 manufacturer code.", nil},
}

// Generated builds the default map: every address reserved, overlaid with the
// built-in table, and the vendor region protected.
func Generated() *Map {
	var defs [NumRegisters]*RegisterDefinition
	for addr := range defs {
		defs[addr] = DefaultRegister(uint8(addr))
	}

	for _, b := range builtins {
		def := &RegisterDefinition{
			Address:     b.addr,
			Name:        b.name,
			FullName:    b.fullName,
			Category:    b.category,
			Default:     b.def,
			Access:      b.access,
			Description: b.desc,
			Fields:      cloneFields(b.fields),
			Special:     b.special,
			SpecialTag:  b.special.String(),
		}
		def.Resolve()
		defs[b.addr] = def
	}

	m := newMap(defs)
	m.Version = DocumentVersion
	m.Model = "generic"
	m.Source = SourceGenerated
	return m
}

func cloneFields(fields []FieldDefinition) []FieldDefinition {
	if fields == nil {
		return nil
	}
	out := make([]FieldDefinition, len(fields))
	for i, f := range fields {
		out[i] = f
		if f.ActiveHigh != nil {
			out[i].ActiveHigh = activeHigh(*f.ActiveHigh)
		}
		if f.Enum != nil {
			out[i].Enum = make(map[string]string, len(f.Enum))
			for k, v := range f.Enum {
				out[i].Enum[k] = v
			}
		}
	}
	return out
}
