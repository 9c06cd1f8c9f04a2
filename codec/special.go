package codec

import (
	"fmt"
	"strings"

	"github.com/sarchlab/pmicdump/regmap"
)

// SpecialDecoder decodes a whole register byte.
type SpecialDecoder func(raw byte) string

// NoErrors is the decode of a status byte with no relevant bit set.
const NoErrors = "No Errors"

var specialDecoders = map[regmap.SpecialKind]SpecialDecoder{
	regmap.SpecialSwaVoltage:        railVoltage(800),
	regmap.SpecialSwbVoltage:        railVoltage(800),
	regmap.SpecialSwcVoltage:        railVoltage(1500),
	regmap.SpecialThresholdAB:       thresholds(pgLowAB),
	regmap.SpecialThresholdC:        thresholds(pgLowC),
	regmap.SpecialCurrent:           current(0xFF),
	regmap.SpecialCurrentLow6:       current(0x3F),
	regmap.SpecialSwitchingDual:     switchingDual,
	regmap.SpecialSwitchingSingle:   switchingSingle,
	regmap.SpecialLdoVoltage:        ldoVoltage,
	regmap.SpecialOcpThreshold:      ocpThreshold,
	regmap.SpecialSoftStartDual:     softStartDual,
	regmap.SpecialSoftStartSingle:   softStartSingle,
	regmap.SpecialOtpThreshold:      otpThreshold,
	regmap.SpecialStatusGlobal:      statusBits(statusGlobalPhrases),
	regmap.SpecialStatusPowerGood:   statusBits(statusPowerGoodPhrases),
	regmap.SpecialStatusOverCurrent: statusBits(statusOverCurrentPhrases),
	regmap.SpecialStatusErrorLog:    statusBits(statusErrorLogPhrases),
	regmap.SpecialAdcRead:           adcRead(0.015),
	regmap.SpecialAdcReadWide:       adcRead(0.070),
}

// Special returns the decoder registered for kind.
func Special(kind regmap.SpecialKind) (SpecialDecoder, bool) {
	dec, ok := specialDecoders[kind]
	return dec, ok
}

// railVoltage decodes a 7-bit setting in bits 7:1 as base + 5 mV steps, and
// bit 0 as the low power-good margin.
func railVoltage(baseMV int) SpecialDecoder {
	return func(raw byte) string {
		setting := int(raw>>1) & 0x7F
		mv := baseMV + setting*5
		return fmt.Sprintf("%.3fV, PGL: %s", float64(mv)/1000, marginPct.format(raw&0x01))
	}
}

// Threshold tables, indexed by a 2-bit code.
var (
	thresholdHigh   = [4]string{"+5%", "+7.5%", "+10%", "+12.5%"}
	thresholdLow    = [4]string{"-5%", "-7.5%", "-10%", "-12.5%"}
	pgHigh          = [4]string{"+3%", "+5%", "+7.5%", "+10%"}
	pgLowAB         = [4]string{"-3%", "-5%", "-7.5%", "-10%"}
	pgLowC          = [4]string{"-5%", "-7.5%", "-10%", "-15%"}
	modeLabels      = [4]string{"Mode 0", "Mode 1", "COT; DCM", "COT; CCM"}
	frequencyLabels = [4]string{"750kHz", "1000kHz", "1250kHz", "1500kHz"}
	ldo1V8Labels    = [4]string{"1.7V", "1.8V", "1.9V", "2.0V"}
	ldo1V0Labels    = [4]string{"0.9V", "1.0V", "1.1V", "1.2V"}
	ocpSWA          = [4]string{"3.0A", "3.5A", "4.0A", "4.5A"}
	ocpSWB          = [4]string{"3.0A", "3.5A", "4.0A", "4.5A"}
	ocpSWC          = [4]string{"1.5A", "2.0A", "2.5A", "3.0A"}
	otpCelsius      = [5]string{"105°C", "115°C", "125°C", "135°C", "145°C"}
)

func code2(raw byte, lo uint) byte {
	return (raw >> lo) & 0x03
}

func thresholds(pgLow [4]string) SpecialDecoder {
	return func(raw byte) string {
		return fmt.Sprintf("High: %s, Low: %s, PG High: %s, PG Low: %s",
			thresholdHigh[code2(raw, 6)],
			thresholdLow[code2(raw, 4)],
			pgHigh[code2(raw, 2)],
			pgLow[code2(raw, 0)])
	}
}

func current(mask byte) SpecialDecoder {
	return func(raw byte) string {
		return fmt.Sprintf("Current: %.3fA", float64(raw&mask)*0.125)
	}
}

func switching(mode, freq byte) string {
	return modeLabels[mode] + " @ " + frequencyLabels[freq]
}

func switchingDual(raw byte) string {
	return "SWA: " + switching(code2(raw, 6), code2(raw, 4)) +
		FieldSeparator + "SWB: " + switching(code2(raw, 2), code2(raw, 0))
}

func switchingSingle(raw byte) string {
	return switching(code2(raw, 6), code2(raw, 4))
}

func ldoVoltage(raw byte) string {
	return fmt.Sprintf("LDO 1.8V: %s, LDO 1.0V: %s", ldo1V8Labels[code2(raw, 6)], ldo1V0Labels[code2(raw, 0)])
}

func ocpThreshold(raw byte) string {
	return fmt.Sprintf("SWA: %s, SWB: %s, SWC: %s",
		ocpSWA[code2(raw, 6)], ocpSWB[code2(raw, 2)], ocpSWC[code2(raw, 0)])
}

func softStartMS(code byte) int {
	return 1 + int(code&0x07)
}

func softStartDual(raw byte) string {
	return fmt.Sprintf("SWA: %dms, SWB: %dms", softStartMS(raw>>4), softStartMS(raw))
}

func softStartSingle(raw byte) string {
	return fmt.Sprintf("Soft Start: %dms", softStartMS(raw))
}

func otpThreshold(raw byte) string {
	code := raw & 0x07
	if int(code) < len(otpCelsius) {
		return otpCelsius[code]
	}
	return fmt.Sprintf("Threshold %d", code)
}

// Status phrases by bit position. Empty entries are bits with no meaning.
var (
	statusGlobalPhrases = [8]string{
		7: "High Temperature Warning",
		6: "VIN Bulk Over Voltage",
		5: "Power Good Fault",
		4: "Over Current Warning",
		3: "Critical Temperature Shutdown",
		2: "VIN Bulk Under Voltage",
	}
	statusPowerGoodPhrases = [8]string{
		7: "SWA Power Not Good",
		6: "SWB Power Not Good",
		5: "SWC Power Not Good",
		3: "LDO 1.8V Power Not Good",
		2: "LDO 1.0V Power Not Good",
	}
	statusOverCurrentPhrases = [8]string{
		7: "SWA Over Current",
		6: "SWB Over Current",
		5: "SWC Over Current",
		3: "LDO Over Current",
	}
	statusErrorLogPhrases = [8]string{
		7: "Previous Shutdown: Over Temperature",
		6: "Previous Shutdown: VIN Over Voltage",
		5: "Previous Shutdown: Power Good Fault",
		4: "Previous Shutdown: Over Current",
		3: "Watchdog Reset",
	}
)

func statusBits(phrases [8]string) SpecialDecoder {
	return func(raw byte) string {
		var set []string
		for bit := 7; bit >= 0; bit-- {
			if phrases[bit] != "" && raw&(1<<uint(bit)) != 0 {
				set = append(set, phrases[bit])
			}
		}
		if len(set) == 0 {
			return NoErrors
		}
		return strings.Join(set, ", ")
	}
}

func adcRead(voltsPerStep float64) SpecialDecoder {
	return func(raw byte) string {
		return fmt.Sprintf("%.3fV", float64(raw)*voltsPerStep)
	}
}
