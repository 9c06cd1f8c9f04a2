package regmap_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pmicdump/codec"
	"github.com/sarchlab/pmicdump/regmap"
)

var _ = Describe("Generated map", func() {
	var m *regmap.Map

	BeforeEach(func() {
		m = regmap.Generated()
	})

	It("should be marked as generated", func() {
		Expect(m.IsGenerated()).To(BeTrue())
		Expect(m.Version).To(Equal(regmap.DocumentVersion))
		Expect(m.Registers()).To(HaveLen(regmap.NumRegisters))
	})

	It("should return a definition for every address", func() {
		for addr := 0; addr < regmap.NumRegisters; addr++ {
			def := m.Lookup(uint8(addr))
			Expect(def).NotTo(BeNil())
			Expect(def.Address).To(Equal(uint8(addr)))
		}
	})

	It("should generate reserved registers for unknown addresses", func() {
		def := m.Lookup(0xF0)
		Expect(def.Name).To(Equal("RESERVED_F0"))
		Expect(def.Access).To(Equal(regmap.AccessRV))
		Expect(def.Category).To(Equal(regmap.CategoryReserved))
		Expect(def.Default).To(Equal(uint8(0)))
	})

	It("should carry the built-in defaults", func() {
		def := m.Lookup(0x21)
		Expect(def.Name).To(Equal("SWA_VOLTAGE"))
		Expect(def.Default).To(Equal(uint8(0x78)))
		Expect(def.Access).To(Equal(regmap.AccessRWPE))
		Expect(def.Special).To(Equal(regmap.SpecialSwaVoltage))
		Expect(def.Electrical()).To(BeTrue())

		Expect(m.Lookup(0x1A).Special).To(Equal(regmap.SpecialOtpThreshold))
		Expect(m.Lookup(0x3C).Default).To(Equal(uint8(0x8A)))
	})

	It("should protect the whole vendor region", func() {
		for addr := regmap.ProtectedLow; addr <= regmap.ProtectedHigh; addr++ {
			def := m.Lookup(uint8(addr))
			Expect(def.Protected).To(BeTrue(), fmt.Sprintf("0x%02X", addr))
			Expect(def.InProtectedRegion()).To(BeTrue())
		}
		Expect(m.Lookup(regmap.ProtectedLow - 1).Protected).To(BeFalse())
		Expect(m.Lookup(regmap.ProtectedHigh + 1).Protected).To(BeFalse())
	})

	It("should find registers by name", func() {
		def, ok := m.ByName("OTP_THRESHOLD")
		Expect(ok).To(BeTrue())
		Expect(def.Address).To(Equal(uint8(0x1A)))

		_, ok = m.ByName("NOPE")
		Expect(ok).To(BeFalse())
	})

	It("should build independent maps", func() {
		other := regmap.Generated()
		other.Lookup(0x2C).Fields[0].Enum["0"] = "changed"
		Expect(m.Lookup(0x2C).Fields[0].Enum["0"]).To(Equal("Mode 0"))
	})

	Describe("Scale inference", func() {
		It("should infer the switcher scales from register names", func() {
			def := &regmap.RegisterDefinition{
				Name: "SWC_VOLTAGE",
				Fields: []regmap.FieldDefinition{
					{Bits: regmap.Bits(7, 1), Name: "VOUT", Kind: regmap.KindVoltage},
					{Bits: regmap.Bit(0), Name: "PGL", Kind: regmap.KindVoltage},
				},
			}
			def.Resolve()
			Expect(def.Fields[0].Scale).To(Equal(regmap.ScaleSwitcherHigh))
			Expect(def.Fields[1].Scale).To(Equal(regmap.ScaleMargin))
		})

		It("should take the scale from the special decoder before the names", func() {
			doc, err := regmap.ParseDocument([]byte(`{
  "version": "1.0.0",
  "registers": [
    {"address": "0x32", "name": "VIN_ADC_READ", "default": "0x00", "access": "RO",
     "special": "AdcReadWide", "fields": [{"bits": "7:0", "name": "ADC_VALUE", "type": "voltage"}]},
    {"address": "0x21", "name": "RAIL_A", "default": "0x78", "access": "RWPE",
     "special": "SwaVoltage", "fields": [
       {"bits": "7:1", "name": "VOUT", "type": "voltage"},
       {"bits": "0", "name": "PGL", "type": "voltage"}]},
    {"address": "0x2A", "name": "RAMP_C", "default": "0x02", "access": "RW",
     "special": "SoftStartSingle", "fields": [{"bits": "2:0", "name": "RAMP", "type": "time"}]}
  ]
}`), regmap.FormatJSON)
			Expect(err).NotTo(HaveOccurred())
			m, err := regmap.Build(doc, "inline")
			Expect(err).NotTo(HaveOccurred())

			vin := m.Lookup(0x32)
			f, ok := vin.Field("ADC_VALUE")
			Expect(ok).To(BeTrue())
			Expect(f.Scale).To(Equal(regmap.ScaleADCWide))
			Expect(codec.DecodeField(f, 100)).To(Equal("7.000V"))
			Expect(codec.DecodeRegister(vin, 100)).To(Equal("7.000V"))

			v, err := codec.EncodeField(f, "7.000V")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(uint8(100)))

			rail := m.Lookup(0x21)
			Expect(rail.Fields[0].Scale).To(Equal(regmap.ScaleSwitcher))
			Expect(rail.Fields[1].Scale).To(Equal(regmap.ScaleMargin))
			Expect(m.Lookup(0x2A).Fields[0].Scale).To(Equal(regmap.ScaleSoftStart))
		})

		It("should keep an explicit scale", func() {
			def := &regmap.RegisterDefinition{
				Name: "SWA_VOLTAGE",
				Fields: []regmap.FieldDefinition{
					{Bits: regmap.Bits(7, 0), Name: "VOUT", Kind: regmap.KindVoltage, Scale: regmap.ScaleADC},
				},
			}
			def.Resolve()
			Expect(def.Fields[0].Scale).To(Equal(regmap.ScaleADC))
		})

		It("should mark only voltage and current registers electrical", func() {
			for name, want := range map[string]bool{
				"SWA_VOLTAGE":       true,
				"LDO_CURRENT_METER": true,
				"ldo_voltage":       true,
				"OTP_THRESHOLD":     false,
			} {
				def := &regmap.RegisterDefinition{Name: name}
				def.Resolve()
				Expect(def.Electrical()).To(Equal(want), name)
			}
		})
	})
})
